package influx

import (
	"context"
	"fmt"
	"sort"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
)

const Measurement string = "gaidesk_readings"

//go:generate moq -rm -out mirror_mock.go . Mirror

// Mirror copies the numeric part of each ingested reading into a time
// series bucket.
type Mirror interface {
	Write(ctx context.Context, device, sessionKey string, ts int64, reading map[string]any) error
	Close()
}

type Config struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

type influxMirror struct {
	client influxdb2.Client
	org    string
	bucket string
}

func New(cfg Config) (Mirror, error) {
	if cfg.URL == "" || cfg.Org == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("influxdb url, org and bucket are required")
	}

	return &influxMirror{
		client: influxdb2.NewClient(cfg.URL, cfg.Token),
		org:    cfg.Org,
		bucket: cfg.Bucket,
	}, nil
}

func (m *influxMirror) Write(ctx context.Context, device, sessionKey string, ts int64, reading map[string]any) error {
	fields := NumericFields(reading)
	if len(fields) == 0 {
		return nil
	}

	tags := map[string]string{"device": device}
	if sessionKey != "" {
		tags["session_key"] = sessionKey
	}

	p := influxdb2.NewPoint(Measurement, tags, fields, time.UnixMilli(ts))

	err := m.client.WriteAPIBlocking(m.org, m.bucket).WritePoint(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to write reading to influxdb: %w", err)
	}

	return nil
}

func (m *influxMirror) Close() {
	m.client.Close()
}

// NumericFields returns the fields of a reading that can be stored as
// floats. Timestamps are part of the point and are left out.
func NumericFields(reading map[string]any) map[string]any {
	keys := make([]string, 0, len(reading))
	for k := range reading {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := map[string]any{}
	for _, k := range keys {
		if k == "ts" || k == "session_start_ts" {
			continue
		}
		if f, ok := realtimedb.AsNumber(reading[k]); ok {
			fields[k] = f
		}
	}

	return fields
}
