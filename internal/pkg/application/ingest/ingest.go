package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/application/events"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/influx"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/logging"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
	"github.com/gaidesk/gaidesk-backend/pkg/types"
)

var (
	ErrUnauthorized   = errors.New("missing bearer token")
	ErrForbidden      = errors.New("invalid token")
	ErrInvalidPayload = errors.New("invalid json")
)

const bearerPrefix string = "Bearer "

const LiveEvent string = "reading"

// Authorize checks an Authorization header against the shared device secret.
func Authorize(header, token string) error {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ErrUnauthorized
	}

	if strings.TrimSpace(header[len(bearerPrefix):]) != token {
		return ErrForbidden
	}

	return nil
}

type Ingester struct {
	store         realtimedb.Store
	token         string
	defaultDevice string
	mirror        influx.Mirror
	events        events.EventSender
	publisher     Publisher
	now           func() time.Time
}

// Publisher pushes named events to live listeners.
type Publisher interface {
	Publish(event string, data any) error
}

type Option func(*Ingester)

func WithMirror(m influx.Mirror) Option {
	return func(i *Ingester) {
		i.mirror = m
	}
}

func WithEventSender(e events.EventSender) Option {
	return func(i *Ingester) {
		i.events = e
	}
}

func WithPublisher(p Publisher) Option {
	return func(i *Ingester) {
		i.publisher = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(i *Ingester) {
		i.now = now
	}
}

func New(store realtimedb.Store, token, defaultDevice string, opts ...Option) *Ingester {
	i := &Ingester{
		store:         store,
		token:         token,
		defaultDevice: defaultDevice,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Ingest stores one reading posted by a device. The reading replaces the
// latest reading of the device and, when it names a session, the latest
// reading of that session. It is also appended to the reading log of the
// session under a key minted from the current time in milliseconds.
//
// Two readings for the same session ingested within the same millisecond
// share a key and the second one replaces the first.
func (i *Ingester) Ingest(ctx context.Context, authorization string, body []byte) (types.IngestReceipt, error) {
	if err := Authorize(authorization, i.token); err != nil {
		return types.IngestReceipt{}, err
	}

	v, err := realtimedb.Decode(body)
	if err != nil {
		return types.IngestReceipt{}, fmt.Errorf("%w: %s", ErrInvalidPayload, err.Error())
	}

	reading, ok := realtimedb.AsMap(v)
	if !ok {
		return types.IngestReceipt{}, ErrInvalidPayload
	}

	device := i.defaultDevice
	if d, ok := reading["device"].(string); ok && d != "" {
		device = d
	}
	delete(reading, "device")

	sessionKey := sessionKeyOf(reading["session_key"])

	latestPath, err := realtimedb.Path("data", device, "latest")
	if err != nil {
		return types.IngestReceipt{}, fmt.Errorf("%w: %s", ErrInvalidPayload, err.Error())
	}

	var sessionPath string
	if sessionKey != "" {
		sessionPath, err = realtimedb.Path("data", device, "sessions", sessionKey)
		if err != nil {
			return types.IngestReceipt{}, fmt.Errorf("%w: %s", ErrInvalidPayload, err.Error())
		}
	}

	now := i.now()
	ms := now.UnixMilli()
	key := strconv.FormatInt(ms, 10)

	if _, ok := reading["ts"]; !ok {
		reading["ts"] = ms
	}

	if err := i.store.Set(ctx, latestPath, reading); err != nil {
		return types.IngestReceipt{}, fmt.Errorf("failed to store latest reading of %s: %w", device, err)
	}

	if sessionPath != "" {
		if err := i.store.Set(ctx, sessionPath+"/latest", reading); err != nil {
			return types.IngestReceipt{}, fmt.Errorf("failed to store latest reading of session %s: %w", sessionKey, err)
		}

		if err := i.store.Set(ctx, sessionPath+"/readings/"+key, reading); err != nil {
			return types.IngestReceipt{}, fmt.Errorf("failed to append reading to session %s: %w", sessionKey, err)
		}
	}

	i.propagate(ctx, device, sessionKey, key, now, reading)

	return types.IngestReceipt{OK: true, Device: device, Key: key}, nil
}

func (i *Ingester) propagate(ctx context.Context, device, sessionKey, key string, now time.Time, reading map[string]any) {
	log := logging.GetFromContext(ctx)

	ts := now.UnixMilli()
	if t, ok := realtimedb.AsInt64(reading["ts"]); ok {
		ts = t
	}

	if i.mirror != nil {
		if err := i.mirror.Write(ctx, device, sessionKey, ts, reading); err != nil {
			log.Warn().Err(err).Str("device", device).Msg("failed to mirror reading")
		}
	}

	if i.events != nil {
		err := i.events.Send(ctx, events.ReadingIngested{
			Device:     device,
			SessionKey: sessionKey,
			Key:        key,
			Timestamp:  now,
			Reading:    reading,
		})
		if err != nil {
			log.Warn().Err(err).Str("device", device).Msg("failed to publish ingested reading")
		}
	}

	if i.publisher != nil {
		live := types.LiveReading{Device: device, SessionKey: sessionKey, Key: key, Reading: reading}
		if err := i.publisher.Publish(LiveEvent, live); err != nil {
			log.Warn().Err(err).Str("device", device).Msg("failed to push reading to live listeners")
		}
	}
}

func sessionKeyOf(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case json.Number:
		return k.String()
	}
	return ""
}
