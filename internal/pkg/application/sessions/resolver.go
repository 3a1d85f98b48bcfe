package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
)

var ErrSessionNotFound = errors.New("no sessions")

type Session struct {
	Key  string
	Node map[string]any
}

func (s Session) Readings() any {
	return s.Node["readings"]
}

func (s Session) Latest() (map[string]any, bool) {
	m, ok := realtimedb.AsMap(s.Node["latest"])
	return m, ok && len(m) > 0
}

func (s Session) Meta() (map[string]any, bool) {
	m, ok := realtimedb.AsMap(s.Node["meta"])
	return m, ok && len(m) > 0
}

// ResolveLatest finds the most recent session of a device. Session keys are
// timestamps that sort chronologically, so the most recent session is the one
// with the greatest key.
func ResolveLatest(ctx context.Context, store realtimedb.Store, deviceID string) (Session, error) {
	path, err := realtimedb.Path("data", deviceID, "sessions")
	if err != nil {
		return Session{}, err
	}

	keys, err := store.Shallow(ctx, path)
	if err != nil {
		return Session{}, fmt.Errorf("failed to list sessions of %s: %w", deviceID, err)
	}

	if len(keys) == 0 {
		return Session{}, ErrSessionNotFound
	}

	latest := lo.Max(keys)

	node, err := store.Get(ctx, path+"/"+latest)
	if err != nil {
		return Session{}, fmt.Errorf("failed to fetch session %s of %s: %w", latest, deviceID, err)
	}

	m, ok := realtimedb.AsMap(node)
	if !ok {
		m = map[string]any{}
	}

	return Session{Key: latest, Node: m}, nil
}
