package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/application"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/application/events"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/application/webevents"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/influx"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/logging"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/repositories/database"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/router"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/tracing"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/presentation/api"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/presentation/gui"
)

const serviceName string = "gaidesk"

var serviceVersion string = "develop"

const defaultAPIToken string = "CHANGE_ME_32CHARS"

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	parseFlags(cfg, os.Args[1:])

	ctx, logger := logging.NewLogger(context.Background(), serviceName, serviceVersion, cfg.GetString("LOG_LEVEL"))
	logger.Info().Msg("starting up ...")

	cleanup, err := tracing.Init(ctx, logger, serviceName, serviceVersion)
	exitIf(err, logger, "failed to init tracing")
	defer cleanup()

	if cfg.GetString("API_TOKEN") == defaultAPIToken {
		logger.Warn().Msg("API_TOKEN is not set, devices authenticate with the default placeholder token")
	}

	store, err := newStore(ctx, cfg)
	exitIf(err, logger, "failed to create store", "backend", cfg.GetString("STORE_BACKEND"))

	mirror, err := newMirror(cfg)
	exitIf(err, logger, "failed to create influxdb mirror")
	if mirror != nil {
		defer mirror.Close()
	}

	sender, err := newEventSender(cfg)
	exitIf(err, logger, "failed to create event sender", "file", cfg.GetString("NOTIFICATIONS_FILE"))

	live := webevents.New()
	defer live.Shutdown()

	app := application.New(application.Config{
		DefaultDevice: cfg.GetString("DEFAULT_DEVICE"),
		APIToken:      cfg.GetString("API_TOKEN"),
	}, store, mirror, sender, live)

	r, err := setupRouter(ctx, logger, cfg, app, live)
	exitIf(err, logger, "failed to setup router")

	port := cfg.GetString("PORT")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("port", port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("failed to start request router")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down gracefully")
	}
}

// loadConfig reads configuration from the environment. Keys are the names
// of the environment variables.
func loadConfig() *viper.Viper {
	v := viper.New()

	v.SetDefault("PORT", "5000")
	v.SetDefault("API_TOKEN", defaultAPIToken)
	v.SetDefault("DEFAULT_DEVICE", application.DefaultDeviceID)
	v.SetDefault("STORE_BACKEND", "firebase")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_DBNAME", "gaidesk")
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	for _, key := range []string{
		"DATABASE_URL", "SERVICE_ACCOUNT_JSON", "SERVICE_ACCOUNT_PATH", "SQLITE_FILE",
		"POSTGRES_HOST", "POSTGRES_USER", "POSTGRES_PASSWORD",
		"INFLUXDB_URL", "INFLUXDB_TOKEN", "INFLUXDB_ORG", "INFLUXDB_BUCKET",
		"NOTIFICATIONS_FILE", "CORS_ALLOWED_ORIGINS", "TEMPLATES_DIR", "STATIC_DIR",
	} {
		v.SetDefault(key, "")
	}

	v.AutomaticEnv()

	return v
}

// parseFlags lets command line arguments override the environment.
func parseFlags(v *viper.Viper, args []string) {
	fs := flag.NewFlagSet(serviceName, flag.ExitOnError)

	apply := func(key string) func(string) error {
		return func(value string) error {
			v.Set(key, value)
			return nil
		}
	}

	fs.Func("port", "port to listen on", apply("PORT"))
	fs.Func("templates", "directory with html templates", apply("TEMPLATES_DIR"))
	fs.Func("static", "directory with static assets", apply("STATIC_DIR"))
	fs.Func("notifications", "notification subscribers configuration file", apply("NOTIFICATIONS_FILE"))
	fs.Func("store", "store backend, one of firebase, sqlite or postgres", apply("STORE_BACKEND"))

	_ = fs.Parse(args)
}

func newStore(ctx context.Context, v *viper.Viper) (realtimedb.Store, error) {
	switch backend := strings.ToLower(v.GetString("STORE_BACKEND")); backend {
	case "firebase":
		credentials, err := loadCredentials(v)
		if err != nil {
			return nil, err
		}

		return realtimedb.New(ctx, realtimedb.Config{
			DatabaseURL:     v.GetString("DATABASE_URL"),
			CredentialsJSON: credentials,
		})
	case "sqlite":
		return database.NewNodeStore(database.NewSQLiteConnector(ctx, v.GetString("SQLITE_FILE")))
	case "postgres":
		return database.NewNodeStore(database.NewPostgreSQLConnector(ctx, database.ConnectorConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetString("POSTGRES_PORT"),
			Username: v.GetString("POSTGRES_USER"),
			DbName:   v.GetString("POSTGRES_DBNAME"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			SslMode:  v.GetString("POSTGRES_SSLMODE"),
		}))
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// loadCredentials returns the service account key. Inline json takes
// precedence over a key file.
func loadCredentials(v *viper.Viper) ([]byte, error) {
	if inline := v.GetString("SERVICE_ACCOUNT_JSON"); inline != "" {
		return []byte(inline), nil
	}

	path := v.GetString("SERVICE_ACCOUNT_PATH")
	if path == "" {
		return nil, errors.New("no service account provided")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}

	return b, nil
}

func newMirror(v *viper.Viper) (influx.Mirror, error) {
	if v.GetString("INFLUXDB_URL") == "" {
		return nil, nil
	}

	return influx.New(influx.Config{
		URL:    v.GetString("INFLUXDB_URL"),
		Token:  v.GetString("INFLUXDB_TOKEN"),
		Org:    v.GetString("INFLUXDB_ORG"),
		Bucket: v.GetString("INFLUXDB_BUCKET"),
	})
}

func newEventSender(v *viper.Viper) (events.EventSender, error) {
	path := v.GetString("NOTIFICATIONS_FILE")
	if path == "" {
		return events.New(nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := events.LoadConfiguration(f)
	if err != nil {
		return nil, err
	}

	return events.New(cfg)
}

func setupRouter(ctx context.Context, logger zerolog.Logger, v *viper.Viper, app application.App, live webevents.WebEvents) (*chi.Mux, error) {
	var origins []string
	if o := v.GetString("CORS_ALLOWED_ORIGINS"); o != "" {
		origins = lo.Map(strings.Split(o, ","), func(origin string, _ int) string {
			return strings.TrimSpace(origin)
		})
	}

	r := router.New(serviceName, logger, origins)

	// the views install a recoverer and must be registered before any other route
	_, err := gui.RegisterHandlers(logger, r, gui.Config{
		TemplatesDir: v.GetString("TEMPLATES_DIR"),
		StaticDir:    v.GetString("STATIC_DIR"),
	})
	if err != nil {
		return nil, err
	}

	api.RegisterHandlers(ctx, r, app)
	r.Method(http.MethodGet, "/api/live/events", live.Handler())

	return r, nil
}

func exitIf(err error, logger zerolog.Logger, msg string, args ...string) {
	if err != nil {
		ctx := logger.With()
		for i := 0; i+1 < len(args); i += 2 {
			ctx = ctx.Str(args[i], args[i+1])
		}
		l := ctx.Logger()
		l.Fatal().Err(err).Msg(msg)
	}
}
