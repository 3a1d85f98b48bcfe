package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/application"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/application/ingest"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/application/sessions"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/logging"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/realtimedb"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/tracing"
	"github.com/gaidesk/gaidesk-backend/pkg/types"
)

var tracer = otel.Tracer("gaidesk/api")

const maxBodySize int64 = 1 << 20

func RegisterHandlers(ctx context.Context, router *chi.Mux, app application.App) *chi.Mux {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetFromContext(ctx)

	router.Route("/api", func(r chi.Router) {
		r.Get("/data", getReadingsHandler(log, app))
		r.Get("/session-summary", getSessionSummaryHandler(log, app))
		r.Get("/devices", getDevicesHandler(log, app))
		r.Get("/live", getLiveHandler(log, app))

		r.Get("/settings", getSettingsHandler(log, app))
		r.Post("/settings", postSettingsHandler(log, app))

		r.Post("/post", postReadingHandler(log, app))
	})

	return router
}

func getReadingsHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "get-readings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		ctx, requestLogger := addTraceIDToLoggerAndStoreInContext(ctx, span, log)

		device := r.URL.Query().Get("device")
		limit := sessions.ClampLimit(r.URL.Query().Get("limit"))

		span.SetAttributes(attribute.String("device", device), attribute.Int("limit", limit))

		readings, err := app.Readings(ctx, device, limit)
		if err != nil {
			requestLogger.Error().Err(err).Str("device", device).Msg("failed to fetch readings")
			writeStoreError(w, err, device)
			return
		}

		writeJSON(w, http.StatusOK, readings)
	}
}

func getSessionSummaryHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "get-session-summary")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		ctx, requestLogger := addTraceIDToLoggerAndStoreInContext(ctx, span, log)

		device := r.URL.Query().Get("device")
		if device == "" {
			device = app.DefaultDevice()
		}

		summary, err := app.SessionSummary(ctx, device)
		if errors.Is(err, sessions.ErrSessionNotFound) {
			requestLogger.Debug().Str("device", device).Msg("device has no sessions")
			writeJSON(w, http.StatusNotFound, types.ErrorResponse{Error: err.Error(), Device: device})
			err = nil
			return
		}
		if err != nil {
			requestLogger.Error().Err(err).Str("device", device).Msg("failed to compose session summary")
			writeStoreError(w, err, device)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func getDevicesHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "get-devices")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		ctx, requestLogger := addTraceIDToLoggerAndStoreInContext(ctx, span, log)

		devices, err := app.Devices(ctx)
		if err != nil {
			requestLogger.Error().Err(err).Msg("failed to list devices")
			writeStoreError(w, err, "")
			return
		}

		writeJSON(w, http.StatusOK, devices)
	}
}

func getLiveHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "get-live")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		ctx, requestLogger := addTraceIDToLoggerAndStoreInContext(ctx, span, log)

		device := r.URL.Query().Get("device")

		live, err := app.Live(ctx, device)
		if err != nil {
			requestLogger.Error().Err(err).Str("device", device).Msg("failed to fetch live data")
			writeStoreError(w, err, device)
			return
		}

		writeJSON(w, http.StatusOK, live)
	}
}

func getSettingsHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "get-settings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		ctx, requestLogger := addTraceIDToLoggerAndStoreInContext(ctx, span, log)

		s, err := app.Settings(ctx)
		if err != nil {
			requestLogger.Error().Err(err).Msg("failed to fetch settings")
			writeStoreError(w, err, "")
			return
		}

		writeJSON(w, http.StatusOK, s)
	}
}

func postSettingsHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "save-settings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		ctx, requestLogger := addTraceIDToLoggerAndStoreInContext(ctx, span, log)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to read body")
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: ingest.ErrInvalidPayload.Error()})
			return
		}

		v, err := realtimedb.Decode(body)
		raw, ok := realtimedb.AsMap(v)
		if err != nil || !ok {
			requestLogger.Debug().Msg("settings body is not a json object")
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: ingest.ErrInvalidPayload.Error()})
			err = nil
			return
		}

		s, err := app.SaveSettings(ctx, raw)
		if err != nil {
			requestLogger.Error().Err(err).Msg("failed to save settings")
			writeStoreError(w, err, "")
			return
		}

		writeJSON(w, http.StatusOK, s)
	}
}

func postReadingHandler(log zerolog.Logger, app application.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "ingest-reading")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		ctx, requestLogger := addTraceIDToLoggerAndStoreInContext(ctx, span, log)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to read body")
			writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: ingest.ErrInvalidPayload.Error()})
			return
		}

		receipt, err := app.Ingest(ctx, r.Header.Get("Authorization"), body)
		if err != nil {
			status := http.StatusInternalServerError
			msg := "internal server error"

			switch {
			case errors.Is(err, ingest.ErrUnauthorized):
				status, msg = http.StatusUnauthorized, ingest.ErrUnauthorized.Error()
			case errors.Is(err, ingest.ErrForbidden):
				status, msg = http.StatusForbidden, ingest.ErrForbidden.Error()
			case errors.Is(err, ingest.ErrInvalidPayload):
				status, msg = http.StatusBadRequest, ingest.ErrInvalidPayload.Error()
			}

			requestLogger.Error().Err(err).Int("status", status).Msg("rejected reading")
			writeJSON(w, status, types.ErrorResponse{Error: msg})
			return
		}

		requestLogger.Debug().Str("device", receipt.Device).Str("key", receipt.Key).Msg("reading stored")

		writeJSON(w, http.StatusOK, receipt)
	}
}

func addTraceIDToLoggerAndStoreInContext(ctx context.Context, span trace.Span, log zerolog.Logger) (context.Context, zerolog.Logger) {
	if span.SpanContext().HasTraceID() {
		log = log.With().Str("traceID", span.SpanContext().TraceID().String()).Logger()
	}

	return logging.NewContextWithLogger(ctx, log), log
}

func writeStoreError(w http.ResponseWriter, err error, device string) {
	if errors.Is(err, realtimedb.ErrInvalidKey) {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "invalid device", Device: device})
		return
	}

	writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Error: "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
