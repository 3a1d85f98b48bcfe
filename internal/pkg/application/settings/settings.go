package settings

import (
	"context"
	"fmt"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
	"github.com/gaidesk/gaidesk-backend/pkg/types"
)

const Path string = "users/demo/settings"

const (
	DefaultCO2Threshold      float64 = 1000
	MinCO2Threshold          float64 = 400
	MaxCO2Threshold          float64 = 5000
	DefaultDistanceThreshold float64 = 50
	MinDistanceThreshold     float64 = 20
	MaxDistanceThreshold     float64 = 200
)

func Defaults() types.Settings {
	return types.Settings{
		PostureSensitivity: types.SensitivityMedium,
		BreathSensitivity:  types.SensitivityMedium,
		CO2Threshold:       DefaultCO2Threshold,
		DistanceThreshold:  DefaultDistanceThreshold,
	}
}

// Normalize builds a settings record from untrusted input. Unknown fields
// are ignored, missing or malformed fields get their default value and
// thresholds are clamped to their allowed range.
func Normalize(raw map[string]any) types.Settings {
	s := Defaults()

	if raw == nil {
		return s
	}

	s.PostureSensitivity = sensitivity(raw["posture_sensitivity"])
	s.BreathSensitivity = sensitivity(raw["breath_sensitivity"])

	if v, ok := realtimedb.AsNumber(raw["co2_threshold"]); ok {
		s.CO2Threshold = clamp(v, MinCO2Threshold, MaxCO2Threshold)
	}

	if v, ok := realtimedb.AsNumber(raw["distance_threshold"]); ok {
		s.DistanceThreshold = clamp(v, MinDistanceThreshold, MaxDistanceThreshold)
	}

	return s
}

func sensitivity(v any) types.Sensitivity {
	str, _ := v.(string)

	switch s := types.Sensitivity(str); s {
	case types.SensitivityLow, types.SensitivityMedium, types.SensitivityHigh:
		return s
	}

	return types.SensitivityMedium
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Get(ctx context.Context, store realtimedb.Store) (types.Settings, error) {
	v, err := store.Get(ctx, Path)
	if err != nil {
		return types.Settings{}, fmt.Errorf("failed to fetch settings: %w", err)
	}

	raw, _ := realtimedb.AsMap(v)

	return Normalize(raw), nil
}

// Save normalizes raw and replaces the stored record with the result.
func Save(ctx context.Context, store realtimedb.Store, raw map[string]any) (types.Settings, error) {
	s := Normalize(raw)

	err := store.Set(ctx, Path, s)
	if err != nil {
		return types.Settings{}, fmt.Errorf("failed to store settings: %w", err)
	}

	return s, nil
}
