package types

import (
	"encoding/json"
)

// Reading is a single sensor sample as posted by a device. All metric fields
// are optional; the backend stores whatever the device sends.
type Reading struct {
	Device         string   `json:"device,omitempty"`
	SessionKey     string   `json:"session_key,omitempty"`
	Temperature    *float64 `json:"t,omitempty"`
	CO2            *float64 `json:"co2,omitempty"`
	Stress         *float64 `json:"F,omitempty"`
	Presence       *int     `json:"presence,omitempty"`
	HeartRate      *float64 `json:"bpm,omitempty"`
	Distance       *float64 `json:"dist,omitempty"`
	Timestamp      *int64   `json:"ts,omitempty"`
	SessionStartTS *int64   `json:"session_start_ts,omitempty"`
}

type ShapedReading struct {
	Key   string       `json:"key"`
	Value ReadingValue `json:"value"`
}

// ReadingValue is the fixed output schema of a shaped reading. Metric values
// are passed through as stored, nil when missing.
type ReadingValue struct {
	Timestamp      *int64 `json:"ts"`
	CO2            any    `json:"co2"`
	Temperature    any    `json:"t"`
	Stress         any    `json:"F"`
	Presence       any    `json:"presence"`
	HeartRate      any    `json:"bpm"`
	Distance       any    `json:"dist"`
	SessionStartTS any    `json:"session_start_ts"`
}

type MetricStats struct {
	Min any `json:"min"`
	Avg any `json:"avg"`
	Max any `json:"max"`
}

type SessionStats struct {
	Distance    *MetricStats `json:"dist,omitempty"`
	CO2         *MetricStats `json:"co2,omitempty"`
	Temperature *MetricStats `json:"temp,omitempty"`
	Risk        *MetricStats `json:"risk,omitempty"`
	Stress      *MetricStats `json:"F,omitempty"`
	HeartRate   *MetricStats `json:"bpm,omitempty"`
}

type AlertCounters struct {
	Near  any `json:"near"`
	CO2   any `json:"co2"`
	Warn1 any `json:"warn1"`
	Warn2 any `json:"warn2"`
}

type SessionMeta struct {
	StartISO    *string        `json:"start_iso"`
	EndISO      *string        `json:"end_iso"`
	StartTS     any            `json:"start_ts"`
	EndTS       any            `json:"end_ts"`
	DurationSec any            `json:"duration_sec"`
	Status      *string        `json:"status"`
	Alerts      *AlertCounters `json:"alerts"`
	Stats       *SessionStats  `json:"stats"`
	FinalState  *string        `json:"final_state"`
	UpdatedTS   any            `json:"updated_ts"`
}

// SessionSummary describes the most recent session of a device. A session
// without finalized metadata is reported with Meta set to nil.
type SessionSummary struct {
	Device     string
	SessionKey string
	Meta       *SessionMeta
}

const NoMetadata string = "no meta"

func (s SessionSummary) MarshalJSON() ([]byte, error) {
	if s.Meta == nil {
		return json.Marshal(struct {
			Device     string `json:"device"`
			SessionKey string `json:"session_key"`
			Error      string `json:"error"`
		}{
			Device:     s.Device,
			SessionKey: s.SessionKey,
			Error:      NoMetadata,
		})
	}

	return json.Marshal(struct {
		*SessionMeta
		Device     string `json:"device"`
		SessionKey string `json:"session_key"`
	}{
		SessionMeta: s.Meta,
		Device:      s.Device,
		SessionKey:  s.SessionKey,
	})
}

type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

type Settings struct {
	PostureSensitivity Sensitivity `json:"posture_sensitivity"`
	BreathSensitivity  Sensitivity `json:"breath_sensitivity"`
	CO2Threshold       float64     `json:"co2_threshold"`
	DistanceThreshold  float64     `json:"distance_threshold"`
}

type IngestReceipt struct {
	OK     bool   `json:"ok"`
	Device string `json:"device"`
	Key    string `json:"key"`
}

type LiveData struct {
	Device string `json:"device"`
	Data   any    `json:"data"`
}

// LiveReading is pushed to live listeners each time a reading is ingested.
type LiveReading struct {
	Device     string         `json:"device"`
	SessionKey string         `json:"session_key,omitempty"`
	Key        string         `json:"key"`
	Reading    map[string]any `json:"reading"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Device string `json:"device,omitempty"`
}
