package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/matryer/is"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
	"github.com/gaidesk/gaidesk-backend/pkg/types"
)

func TestThatMissingFieldsAreDefaulted(t *testing.T) {
	is := is.New(t)

	is.Equal(Normalize(nil), Defaults())
	is.Equal(Normalize(map[string]any{"theme": "dark"}), Defaults())
}

func TestThatThresholdsAreClamped(t *testing.T) {
	is := is.New(t)

	s := Normalize(map[string]any{
		"co2_threshold":      json.Number("12000"),
		"distance_threshold": 5,
	})
	is.Equal(s.CO2Threshold, MaxCO2Threshold)
	is.Equal(s.DistanceThreshold, MinDistanceThreshold)

	s = Normalize(map[string]any{"co2_threshold": 750.0, "distance_threshold": "far"})
	is.Equal(s.CO2Threshold, 750.0)
	is.Equal(s.DistanceThreshold, DefaultDistanceThreshold)
}

func TestThatUnknownSensitivityIsDefaulted(t *testing.T) {
	is := is.New(t)

	s := Normalize(map[string]any{"posture_sensitivity": "high", "breath_sensitivity": "extreme"})
	is.Equal(s.PostureSensitivity, types.SensitivityHigh)
	is.Equal(s.BreathSensitivity, types.SensitivityMedium)
}

func TestThatSaveStoresNormalizedRecord(t *testing.T) {
	is := is.New(t)

	store := &realtimedb.StoreMock{
		SetFunc: func(ctx context.Context, path string, value any) error {
			return nil
		},
	}

	s, err := Save(context.Background(), store, map[string]any{"co2_threshold": 300, "extra": true})
	is.NoErr(err)
	is.Equal(s.CO2Threshold, MinCO2Threshold)

	is.Equal(len(store.SetCalls()), 1)
	is.Equal(store.SetCalls()[0].Path, Path)
	is.Equal(store.SetCalls()[0].Value, s)
}

func TestThatGetNormalizesStoredRecord(t *testing.T) {
	is := is.New(t)

	store := &realtimedb.StoreMock{
		GetFunc: func(ctx context.Context, path string) (any, error) {
			return map[string]any{"breath_sensitivity": "low", "co2_threshold": json.Number("1500")}, nil
		},
	}

	s, err := Get(context.Background(), store)
	is.NoErr(err)
	is.Equal(s.BreathSensitivity, types.SensitivityLow)
	is.Equal(s.CO2Threshold, 1500.0)
	is.Equal(s.DistanceThreshold, DefaultDistanceThreshold)
}
