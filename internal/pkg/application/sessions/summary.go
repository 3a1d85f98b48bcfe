package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
	"github.com/gaidesk/gaidesk-backend/pkg/types"
)

// ComposeSummary describes the most recent session of a device. A session
// that has not been finalized yet has no meta and is reported as such.
func ComposeSummary(ctx context.Context, store realtimedb.Store, deviceID string) (types.SessionSummary, error) {
	session, err := ResolveLatest(ctx, store, deviceID)
	if err != nil {
		return types.SessionSummary{}, err
	}

	summary := types.SessionSummary{
		Device:     deviceID,
		SessionKey: session.Key,
	}

	raw, ok := session.Meta()
	if !ok {
		return summary, nil
	}

	meta, err := toSessionMeta(raw)
	if err != nil {
		return types.SessionSummary{}, fmt.Errorf("malformed meta in session %s of %s: %w", session.Key, deviceID, err)
	}

	if _, present := raw["duration_sec"]; !present {
		meta.DurationSec = duration(raw["start_ts"], raw["end_ts"])
	}

	if realtimedb.IsServerValue(meta.UpdatedTS) {
		meta.UpdatedTS = nil
	}

	summary.Meta = meta

	return summary, nil
}

func duration(start, end any) any {
	if realtimedb.IsServerValue(start) || realtimedb.IsServerValue(end) {
		return nil
	}

	s, ok := realtimedb.AsNumber(start)
	if !ok {
		return nil
	}

	e, ok := realtimedb.AsNumber(end)
	if !ok {
		return nil
	}

	return int64(math.Floor((e - s) / 1000))
}

func toSessionMeta(raw map[string]any) (*types.SessionMeta, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	meta := &types.SessionMeta{}
	if err := dec.Decode(meta); err != nil {
		return nil, err
	}

	return meta, nil
}
