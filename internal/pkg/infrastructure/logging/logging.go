package logging

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

type loggerContextKey struct {
	name string
}

var loggerCtxKey = &loggerContextKey{"logger"}

func NewLogger(ctx context.Context, serviceName, serviceVersion, level string) (context.Context, zerolog.Logger) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout).Level(lvl).With().Timestamp().
		Str("service", strings.ToLower(serviceName)).
		Str("version", serviceVersion).
		Logger()

	ctx = NewContextWithLogger(ctx, logger)
	return ctx, logger
}

func NewContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	ctx = context.WithValue(ctx, loggerCtxKey, logger)
	return ctx
}

func GetFromContext(ctx context.Context) zerolog.Logger {
	logger, ok := ctx.Value(loggerCtxKey).(zerolog.Logger)

	if !ok {
		return log.Logger
	}

	return logger
}

// RequestLogger stores a request scoped logger in the request context. The trace
// id is added when the request is part of a sampled trace.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lc := logger.With().Str("method", r.Method).Str("path", r.URL.Path)

			if reqID := middleware.GetReqID(r.Context()); reqID != "" {
				lc = lc.Str("request_id", reqID)
			}

			if span := trace.SpanFromContext(r.Context()); span.SpanContext().HasTraceID() {
				lc = lc.Str("traceID", span.SpanContext().TraceID().String())
			}

			ctx := NewContextWithLogger(r.Context(), lc.Logger())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
