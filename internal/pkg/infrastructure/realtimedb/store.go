package realtimedb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidKey    = errors.New("invalid key")
	ErrRequestFailed = errors.New("realtime database request failed")
)

//go:generate moq -rm -out store_mock.go . Store

// Store is an accessor for a hierarchical JSON tree. Paths are slash
// separated and relative to the root of the tree.
type Store interface {
	// Get returns the subtree at path, or nil if nothing is stored there.
	Get(ctx context.Context, path string) (any, error)
	// Shallow returns the child keys at path. A missing or scalar node has no keys.
	Shallow(ctx context.Context, path string) ([]string, error)
	// Set replaces the subtree at path.
	Set(ctx context.Context, path string, value any) error
	// Update merges fields into the node at path, leaving other children untouched.
	Update(ctx context.Context, path string, fields map[string]any) error
}

const forbiddenKeyChars string = ".$#[]/"

// Path joins keys into a store path, rejecting keys that would be
// interpreted as path separators or query syntax by the database.
func Path(keys ...string) (string, error) {
	for _, k := range keys {
		if k == "" || strings.ContainsAny(k, forbiddenKeyChars) || strings.ContainsFunc(k, isControl) {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, k)
		}
	}
	return strings.Join(keys, "/"), nil
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

// ServerTimestamp is the placeholder a writer stores to have the database
// fill in its own clock.
var ServerTimestamp = map[string]any{".sv": "timestamp"}

func IsServerValue(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[".sv"]
	return ok
}

func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsNumber converts the numeric representations produced by the store
// implementations and by callers into a float64.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// AsInt64 is like AsNumber but keeps full precision for integral json.Number values.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}

	f, ok := AsNumber(v)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func decode(b []byte) (any, error) {
	if len(b) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Decode parses a JSON document the way the store implementations do,
// keeping numbers as json.Number.
func Decode(b []byte) (any, error) {
	return decode(b)
}
