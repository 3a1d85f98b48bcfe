package sessions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
	"github.com/gaidesk/gaidesk-backend/pkg/types"
)

const (
	DefaultLimit int = 50
	MinLimit     int = 1
	MaxLimit     int = 200
)

const LatestKey string = "latest"

// ClampLimit parses the limit query parameter. Anything that is not an
// integer gives the default.
func ClampLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultLimit
	}

	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}

	return n
}

// Timestamp returns the stored ts as integer milliseconds. Unresolved server
// values and anything non-numeric are unknown.
func Timestamp(v any) *int64 {
	if v == nil || realtimedb.IsServerValue(v) {
		return nil
	}

	ts, ok := realtimedb.AsInt64(v)
	if !ok {
		return nil
	}

	return &ts
}

func ShapeReading(key string, r map[string]any) types.ShapedReading {
	return types.ShapedReading{
		Key: key,
		Value: types.ReadingValue{
			Timestamp:      Timestamp(r["ts"]),
			CO2:            r["co2"],
			Temperature:    r["t"],
			Stress:         r["F"],
			Presence:       r["presence"],
			HeartRate:      r["bpm"],
			Distance:       r["dist"],
			SessionStartTS: r["session_start_ts"],
		},
	}
}

// ShapeReadings turns a readings collection into at most limit readings,
// newest first. Readings with an unknown timestamp are placed last.
func ShapeReadings(readings any, limit int) []types.ShapedReading {
	m, ok := realtimedb.AsMap(readings)
	if !ok {
		return []types.ShapedReading{}
	}

	shaped := make([]types.ShapedReading, 0, len(m))
	for k, v := range m {
		r, ok := realtimedb.AsMap(v)
		if !ok {
			continue
		}
		shaped = append(shaped, ShapeReading(k, r))
	}

	sort.Slice(shaped, func(i, j int) bool {
		ti, tj := orZero(shaped[i].Value.Timestamp), orZero(shaped[j].Value.Timestamp)
		if ti != tj {
			return ti > tj
		}
		return shaped[i].Key > shaped[j].Key
	})

	if limit < MinLimit {
		limit = MinLimit
	}

	if len(shaped) > limit {
		shaped = shaped[:limit]
	}

	return shaped
}

func orZero(ts *int64) int64 {
	if ts == nil {
		return 0
	}
	return *ts
}

// Readings returns the readings of the most recent session of a device. When
// that session has no readings, the latest reading of the session or else of
// the device is returned on its own.
func Readings(ctx context.Context, store realtimedb.Store, deviceID string, limit int) ([]types.ShapedReading, error) {
	session, err := ResolveLatest(ctx, store, deviceID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	if err == nil {
		shaped := ShapeReadings(session.Readings(), limit)
		if len(shaped) > 0 {
			return shaped, nil
		}

		if latest, ok := session.Latest(); ok {
			return []types.ShapedReading{ShapeReading(LatestKey, latest)}, nil
		}
	}

	path, err := realtimedb.Path("data", deviceID, LatestKey)
	if err != nil {
		return nil, err
	}

	latest, err := store.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest reading of %s: %w", deviceID, err)
	}

	if m, ok := realtimedb.AsMap(latest); ok && len(m) > 0 {
		return []types.ShapedReading{ShapeReading(LatestKey, m)}, nil
	}

	return []types.ShapedReading{}, nil
}
