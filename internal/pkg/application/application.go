package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/application/events"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/application/ingest"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/application/sessions"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/application/settings"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/influx"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
	"github.com/gaidesk/gaidesk-backend/pkg/types"
)

//go:generate moq -rm -out application_mock.go . App

type App interface {
	Readings(ctx context.Context, deviceID string, limit int) ([]types.ShapedReading, error)
	SessionSummary(ctx context.Context, deviceID string) (types.SessionSummary, error)
	Devices(ctx context.Context) ([]string, error)
	Live(ctx context.Context, deviceID string) (types.LiveData, error)

	Settings(ctx context.Context) (types.Settings, error)
	SaveSettings(ctx context.Context, raw map[string]any) (types.Settings, error)

	Ingest(ctx context.Context, authorization string, body []byte) (types.IngestReceipt, error)

	DefaultDevice() string
}

type app struct {
	cfg      Config
	store    realtimedb.Store
	ingester *ingest.Ingester
}

func New(cfg Config, store realtimedb.Store, mirror influx.Mirror, sender events.EventSender, live ingest.Publisher) App {
	opts := []ingest.Option{}
	if mirror != nil {
		opts = append(opts, ingest.WithMirror(mirror))
	}
	if sender != nil {
		opts = append(opts, ingest.WithEventSender(sender))
	}
	if live != nil {
		opts = append(opts, ingest.WithPublisher(live))
	}

	return &app{
		cfg:      cfg,
		store:    store,
		ingester: ingest.New(store, cfg.APIToken, cfg.device(""), opts...),
	}
}

func (a *app) DefaultDevice() string {
	return a.cfg.device("")
}

func (a *app) Readings(ctx context.Context, deviceID string, limit int) ([]types.ShapedReading, error) {
	return sessions.Readings(ctx, a.store, a.cfg.device(deviceID), limit)
}

func (a *app) SessionSummary(ctx context.Context, deviceID string) (types.SessionSummary, error) {
	return sessions.ComposeSummary(ctx, a.store, a.cfg.device(deviceID))
}

// Devices lists the ids of devices that have reported at least once. A store
// without any such device yields the default device.
func (a *app) Devices(ctx context.Context) ([]string, error) {
	candidates, err := a.store.Shallow(ctx, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	devices := []string{}

	for _, id := range candidates {
		path, err := realtimedb.Path("data", id)
		if err != nil {
			continue
		}

		keys, err := a.store.Shallow(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect device %s: %w", id, err)
		}

		if lo.Contains(keys, "sessions") || lo.Contains(keys, "latest") {
			devices = append(devices, id)
		}
	}

	if len(devices) == 0 {
		return []string{a.DefaultDevice()}, nil
	}

	sort.Strings(devices)

	return devices, nil
}

func (a *app) Live(ctx context.Context, deviceID string) (types.LiveData, error) {
	device := a.cfg.device(deviceID)

	path, err := realtimedb.Path("data", device, "latest")
	if err != nil {
		return types.LiveData{}, err
	}

	data, err := a.store.Get(ctx, path)
	if err != nil {
		return types.LiveData{}, fmt.Errorf("failed to fetch latest reading of %s: %w", device, err)
	}

	return types.LiveData{Device: device, Data: data}, nil
}

func (a *app) Settings(ctx context.Context) (types.Settings, error) {
	return settings.Get(ctx, a.store)
}

func (a *app) SaveSettings(ctx context.Context, raw map[string]any) (types.Settings, error) {
	return settings.Save(ctx, a.store, raw)
}

func (a *app) Ingest(ctx context.Context, authorization string, body []byte) (types.IngestReceipt, error) {
	return a.ingester.Ingest(ctx, authorization, body)
}
