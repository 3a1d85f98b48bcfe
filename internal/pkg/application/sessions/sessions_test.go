package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
)

func TestThatLatestSessionIsTheGreatestKey(t *testing.T) {
	is, ctx, store := testSetup(t, `{"data":{"D":{"sessions":{
		"2025-10-25T12-34-11Z":{"meta":{"status":"ended"}},
		"2025-10-26T08-00-00Z":{"meta":{"status":"running"}},
		"2025-10-26T07-59-59Z":{}
	}}}}`)

	s, err := ResolveLatest(ctx, store, "D")
	is.NoErr(err)
	is.Equal(s.Key, "2025-10-26T08-00-00Z")

	meta, ok := s.Meta()
	is.True(ok)
	is.Equal(meta["status"], "running")
}

func TestThatDeviceWithoutSessionsIsNotFound(t *testing.T) {
	is, ctx, store := testSetup(t, `{"data":{"D":{"latest":{"t":1}}}}`)

	_, err := ResolveLatest(ctx, store, "D")
	is.True(errors.Is(err, ErrSessionNotFound))
}

func TestThatNonMappingSessionsAreNotFound(t *testing.T) {
	is, ctx, store := testSetup(t, `{"data":{"D":{"sessions":"garbage"}}}`)

	_, err := ResolveLatest(ctx, store, "D")
	is.True(errors.Is(err, ErrSessionNotFound))
}

func TestThatStoreErrorsPropagate(t *testing.T) {
	is := is.New(t)

	store := &realtimedb.StoreMock{
		ShallowFunc: func(ctx context.Context, path string) ([]string, error) {
			return nil, realtimedb.ErrRequestFailed
		},
	}

	_, err := ResolveLatest(context.Background(), store, "D")
	is.True(errors.Is(err, realtimedb.ErrRequestFailed))
	is.True(!errors.Is(err, ErrSessionNotFound))
}

func TestClampLimit(t *testing.T) {
	is := is.New(t)

	is.Equal(ClampLimit(""), 50)
	is.Equal(ClampLimit("abc"), 50)
	is.Equal(ClampLimit("0"), 1)
	is.Equal(ClampLimit("-7"), 1)
	is.Equal(ClampLimit("25"), 25)
	is.Equal(ClampLimit("1000"), 200)
}

func TestThatReadingsAreSortedNewestFirstAndLimited(t *testing.T) {
	is := is.New(t)

	readings := decode(t, `{
		"1700000000100":{"ts":1700000000100,"t":21},
		"1700000000300":{"ts":1700000000300,"t":23},
		"1700000000200":{"ts":{".sv":"timestamp"},"t":22},
		"1700000000400":{"ts":1700000000400,"t":24},
		"broken":"not a reading"
	}`)

	shaped := ShapeReadings(readings, 3)
	is.Equal(len(shaped), 3)
	is.Equal(shaped[0].Key, "1700000000400")
	is.Equal(shaped[1].Key, "1700000000300")
	is.Equal(shaped[2].Key, "1700000000100")

	all := ShapeReadings(readings, 200)
	is.Equal(len(all), 4)

	last := all[3]
	is.Equal(last.Key, "1700000000200")
	is.Equal(last.Value.Timestamp, nil)
	is.Equal(last.Value.Temperature, json.Number("22"))

	for i := 1; i < len(all); i++ {
		is.True(orZero(all[i-1].Value.Timestamp) >= orZero(all[i].Value.Timestamp))
	}
}

func TestThatPlaceholderTimestampIsSerializedAsNull(t *testing.T) {
	is := is.New(t)

	shaped := ShapeReadings(decode(t, `{"k":{"ts":{".sv":"timestamp"},"co2":800}}`), 50)
	is.Equal(len(shaped), 1)

	b, err := json.Marshal(shaped)
	is.NoErr(err)
	is.True(strings.Contains(string(b), `"ts":null`))
	is.True(!strings.Contains(string(b), ".sv"))
}

func TestThatMissingFieldsAreNull(t *testing.T) {
	is := is.New(t)

	shaped := ShapeReading("k", map[string]any{"ts": json.Number("1700000000000.9")})
	is.Equal(*shaped.Value.Timestamp, int64(1700000000000))

	b, err := json.Marshal(shaped)
	is.NoErr(err)
	is.Equal(string(b), `{"key":"k","value":{"ts":1700000000000,"co2":null,"t":null,"F":null,"presence":null,"bpm":null,"dist":null,"session_start_ts":null}}`)
}

func TestThatReadingsComeFromLatestSession(t *testing.T) {
	is, ctx, store := testSetup(t, `{"data":{"D":{"sessions":{
		"A":{"readings":{"1":{"ts":1,"t":1}}},
		"B":{"readings":{"2":{"ts":2,"t":2},"3":{"ts":3,"t":3}}}
	}}}}`)

	shaped, err := Readings(ctx, store, "D", 50)
	is.NoErr(err)
	is.Equal(len(shaped), 2)
	is.Equal(shaped[0].Key, "3")
}

func TestThatSessionLatestIsUsedWhenThereAreNoReadings(t *testing.T) {
	is, ctx, store := testSetup(t, `{"data":{"D":{
		"latest":{"t":99},
		"sessions":{"A":{"latest":{"t":5,"ts":5}}}
	}}}`)

	shaped, err := Readings(ctx, store, "D", 50)
	is.NoErr(err)
	is.Equal(len(shaped), 1)
	is.Equal(shaped[0].Key, LatestKey)
	is.Equal(shaped[0].Value.Temperature, json.Number("5"))
}

func TestThatDeviceLatestIsUsedWhenThereAreNoSessions(t *testing.T) {
	is, ctx, store := testSetup(t, `{"data":{"D":{"latest":{"t":99}}}}`)

	shaped, err := Readings(ctx, store, "D", 50)
	is.NoErr(err)
	is.Equal(len(shaped), 1)
	is.Equal(shaped[0].Value.Temperature, json.Number("99"))
}

func TestThatUnknownDeviceHasNoReadings(t *testing.T) {
	is, ctx, store := testSetup(t, `{}`)

	shaped, err := Readings(ctx, store, "D", 50)
	is.NoErr(err)
	is.Equal(len(shaped), 0)
}

func TestThatDurationIsDerivedFromTimestamps(t *testing.T) {
	is, ctx, store := testSetup(t, `{"data":{"D":{"sessions":{"K":{"meta":{
		"start_ts":1000,"end_ts":5000,"status":"ended",
		"alerts":{"near":1,"co2":0,"warn1":2,"warn2":0},
		"stats":{"co2":{"min":400,"avg":650.5,"max":900}},
		"updated_ts":{".sv":"timestamp"}
	}}}}}}`)

	summary, err := ComposeSummary(ctx, store, "D")
	is.NoErr(err)
	is.Equal(summary.SessionKey, "K")
	is.Equal(summary.Meta.DurationSec, int64(4))
	is.Equal(*summary.Meta.Status, "ended")
	is.Equal(summary.Meta.Stats.CO2.Avg, json.Number("650.5"))
	is.Equal(summary.Meta.UpdatedTS, nil)

	b, err := json.Marshal(summary)
	is.NoErr(err)
	is.True(strings.Contains(string(b), `"duration_sec":4`))
	is.True(strings.Contains(string(b), `"device":"D"`))
	is.True(strings.Contains(string(b), `"session_key":"K"`))
}

func TestThatStoredDurationIsKept(t *testing.T) {
	is, ctx, store := testSetup(t, `{"data":{"D":{"sessions":{"K":{"meta":{
		"start_ts":1000,"end_ts":5000,"duration_sec":3600
	}}}}}}`)

	summary, err := ComposeSummary(ctx, store, "D")
	is.NoErr(err)
	is.Equal(summary.Meta.DurationSec, json.Number("3600"))
}

func TestThatDurationIsNullWithoutNumericTimestamps(t *testing.T) {
	is, ctx, store := testSetup(t, `{"data":{"D":{"sessions":{"K":{"meta":{
		"start_ts":1000,"end_ts":{".sv":"timestamp"}
	}}}}}}`)

	summary, err := ComposeSummary(ctx, store, "D")
	is.NoErr(err)
	is.Equal(summary.Meta.DurationSec, nil)
}

func TestThatSessionWithoutMetaIsReported(t *testing.T) {
	is, ctx, store := testSetup(t, `{"data":{"D":{"sessions":{"K":{"readings":{"1":{"t":1}}}}}}}`)

	summary, err := ComposeSummary(ctx, store, "D")
	is.NoErr(err)
	is.Equal(summary.Meta, nil)

	b, err := json.Marshal(summary)
	is.NoErr(err)
	is.Equal(string(b), `{"device":"D","session_key":"K","error":"no meta"}`)
}

func TestThatSummaryOfUnknownDeviceIsNotFound(t *testing.T) {
	is, ctx, store := testSetup(t, `{}`)

	_, err := ComposeSummary(ctx, store, "D")
	is.True(errors.Is(err, ErrSessionNotFound))
}

func testSetup(t *testing.T, tree string) (*is.I, context.Context, realtimedb.Store) {
	is := is.New(t)
	root := decode(t, tree)

	lookup := func(path string) any {
		var node any = root
		for _, k := range strings.Split(path, "/") {
			m, ok := node.(map[string]any)
			if !ok {
				return nil
			}
			node = m[k]
		}
		return node
	}

	store := &realtimedb.StoreMock{
		GetFunc: func(ctx context.Context, path string) (any, error) {
			return lookup(path), nil
		},
		ShallowFunc: func(ctx context.Context, path string) ([]string, error) {
			m, ok := lookup(path).(map[string]any)
			if !ok {
				return nil, nil
			}
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return keys, nil
		},
	}

	return is, context.Background(), store
}

func decode(t *testing.T, doc string) any {
	v, err := realtimedb.Decode([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return v
}
