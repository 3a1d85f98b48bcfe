package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/application/events"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/influx"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
	"github.com/gaidesk/gaidesk-backend/pkg/types"
)

const token string = "s3cr3t"

func TestAuthorize(t *testing.T) {
	is := is.New(t)

	is.True(errors.Is(Authorize("", token), ErrUnauthorized))
	is.True(errors.Is(Authorize("Basic abc", token), ErrUnauthorized))
	is.True(errors.Is(Authorize("bearer "+token, token), ErrUnauthorized))
	is.True(errors.Is(Authorize("Bearer wrong", token), ErrForbidden))
	is.NoErr(Authorize("Bearer "+token, token))
	is.NoErr(Authorize("Bearer   "+token+"  ", token))
}

func TestThatReadingWithSessionIsWrittenToAllSlots(t *testing.T) {
	is, store := testSetup(t)
	clock := time.UnixMilli(1761395651123)

	i := New(store, token, "GAIDESK-01", WithClock(func() time.Time { return clock }))

	receipt, err := i.Ingest(context.Background(), "Bearer "+token, []byte(`{"device":"D","t":24.5,"co2":800,"session_key":"K"}`))
	is.NoErr(err)

	is.True(receipt.OK)
	is.Equal(receipt.Device, "D")
	is.Equal(receipt.Key, "1761395651123")

	calls := store.SetCalls()
	is.Equal(len(calls), 3)
	is.Equal(calls[0].Path, "data/D/latest")
	is.Equal(calls[1].Path, "data/D/sessions/K/latest")
	is.Equal(calls[2].Path, "data/D/sessions/K/readings/1761395651123")

	reading := calls[2].Value.(map[string]any)
	_, hasDevice := reading["device"]
	is.True(!hasDevice)
	is.Equal(reading["t"], json.Number("24.5"))
	is.Equal(reading["ts"], int64(1761395651123))
}

func TestThatReadingWithoutSessionOnlyUpdatesLatest(t *testing.T) {
	is, store := testSetup(t)

	receipt, err := New(store, token, "GAIDESK-01").Ingest(context.Background(), "Bearer "+token, []byte(`{"t":21,"ts":1700000000000}`))
	is.NoErr(err)
	is.Equal(receipt.Device, "GAIDESK-01")

	calls := store.SetCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Path, "data/GAIDESK-01/latest")
	is.Equal(calls[0].Value.(map[string]any)["ts"], json.Number("1700000000000"))
}

func TestThatFailedAuthorizationWritesNothing(t *testing.T) {
	is, store := testSetup(t)
	i := New(store, token, "GAIDESK-01")

	_, err := i.Ingest(context.Background(), "", []byte(`{"t":1}`))
	is.True(errors.Is(err, ErrUnauthorized))

	_, err = i.Ingest(context.Background(), "Bearer nope", []byte(`{"t":1}`))
	is.True(errors.Is(err, ErrForbidden))

	is.Equal(len(store.SetCalls()), 0)
}

func TestThatNonObjectBodyIsRejected(t *testing.T) {
	is, store := testSetup(t)
	i := New(store, token, "GAIDESK-01")

	for _, body := range []string{``, `[1,2]`, `"text"`, `{"t":`, `42`} {
		_, err := i.Ingest(context.Background(), "Bearer "+token, []byte(body))
		is.True(errors.Is(err, ErrInvalidPayload))
	}

	is.Equal(len(store.SetCalls()), 0)
}

func TestThatDeviceWithPathSeparatorIsRejected(t *testing.T) {
	is, store := testSetup(t)

	_, err := New(store, token, "GAIDESK-01").Ingest(context.Background(), "Bearer "+token, []byte(`{"device":"a/b"}`))
	is.True(errors.Is(err, ErrInvalidPayload))
	is.Equal(len(store.SetCalls()), 0)
}

func TestThatFirstStoreErrorAborts(t *testing.T) {
	is := is.New(t)

	store := &realtimedb.StoreMock{
		SetFunc: func(ctx context.Context, path string, value any) error {
			if path == "data/D/sessions/K/latest" {
				return realtimedb.ErrRequestFailed
			}
			return nil
		},
	}

	_, err := New(store, token, "GAIDESK-01").Ingest(context.Background(), "Bearer "+token, []byte(`{"device":"D","session_key":"K"}`))
	is.True(errors.Is(err, realtimedb.ErrRequestFailed))
	is.Equal(len(store.SetCalls()), 2)
}

func TestThatKeysAreNonDecreasing(t *testing.T) {
	is, store := testSetup(t)
	i := New(store, token, "GAIDESK-01")

	previous := int64(0)
	for n := 0; n < 5; n++ {
		receipt, err := i.Ingest(context.Background(), "Bearer "+token, []byte(`{"session_key":"K"}`))
		is.NoErr(err)

		key, err := strconv.ParseInt(receipt.Key, 10, 64)
		is.NoErr(err)
		is.True(key >= previous)
		previous = key
	}
}

func TestThatMirrorAndEventsAreBestEffort(t *testing.T) {
	is, store := testSetup(t)

	mirror := &influx.MirrorMock{
		WriteFunc: func(ctx context.Context, device, sessionKey string, ts int64, reading map[string]any) error {
			return errors.New("influx down")
		},
	}
	sender := &events.EventSenderMock{
		SendFunc: func(ctx context.Context, evt events.ReadingIngested) error {
			return errors.New("no route to host")
		},
	}

	i := New(store, token, "GAIDESK-01", WithMirror(mirror), WithEventSender(sender))

	receipt, err := i.Ingest(context.Background(), "Bearer "+token, []byte(`{"device":"D","co2":900,"session_key":"K","ts":1700000000000}`))
	is.NoErr(err)
	is.True(receipt.OK)

	is.Equal(len(mirror.WriteCalls()), 1)
	is.Equal(mirror.WriteCalls()[0].SessionKey, "K")
	is.Equal(mirror.WriteCalls()[0].Ts, int64(1700000000000))

	is.Equal(len(sender.SendCalls()), 1)
	is.Equal(sender.SendCalls()[0].Evt.Key, receipt.Key)
}

func TestThatIngestedReadingsArePushedToLiveListeners(t *testing.T) {
	is, store := testSetup(t)

	publisher := &publisherMock{}
	i := New(store, token, "GAIDESK-01", WithPublisher(publisher))

	receipt, err := i.Ingest(context.Background(), "Bearer "+token, []byte(`{"device":"D","co2":900,"session_key":"K"}`))
	is.NoErr(err)

	is.Equal(len(publisher.published), 1)
	is.Equal(publisher.event, LiveEvent)

	live := publisher.published[0].(types.LiveReading)
	is.Equal(live.Device, "D")
	is.Equal(live.SessionKey, "K")
	is.Equal(live.Key, receipt.Key)
	_, hasDevice := live.Reading["device"]
	is.True(!hasDevice)
}

type publisherMock struct {
	event     string
	published []any
}

func (p *publisherMock) Publish(event string, data any) error {
	p.event = event
	p.published = append(p.published, data)
	return nil
}

func testSetup(t *testing.T) (*is.I, *realtimedb.StoreMock) {
	is := is.New(t)

	store := &realtimedb.StoreMock{
		SetFunc: func(ctx context.Context, path string, value any) error {
			return nil
		},
	}

	return is, store
}
