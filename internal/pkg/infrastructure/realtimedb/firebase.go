package realtimedb

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/logging"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/tracing"
)

var tracer = otel.Tracer("gaidesk/realtimedb")

var scopes = []string{
	"https://www.googleapis.com/auth/firebase.database",
	"https://www.googleapis.com/auth/userinfo.email",
}

type Config struct {
	DatabaseURL     string
	CredentialsJSON []byte
}

type firebaseStore struct {
	client *resty.Client
}

// New creates a Store talking to the REST API of a Firebase Realtime
// Database, authenticated with a service account.
func New(ctx context.Context, cfg Config) (Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database url is required")
	}

	creds, err := google.CredentialsFromJSON(ctx, cfg.CredentialsJSON, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: creds.TokenSource,
			Base:   otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	return NewWithClient(cfg.DatabaseURL, httpClient), nil
}

func NewWithClient(databaseURL string, httpClient *http.Client) Store {
	client := resty.NewWithClient(httpClient).
		SetBaseURL(strings.TrimSuffix(databaseURL, "/")).
		SetHeader("Accept", "application/json")

	return &firebaseStore{client: client}
}

func endpoint(path string) string {
	return "/" + strings.Trim(path, "/") + ".json"
}

func (s *firebaseStore) Get(ctx context.Context, path string) (any, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	span.SetAttributes(attribute.String("path", path))

	resp, err := s.client.R().SetContext(ctx).Get(endpoint(path))
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrRequestFailed, err.Error())
		return nil, err
	}
	if resp.IsError() {
		err = fmt.Errorf("%w: GET %s returned %d", ErrRequestFailed, path, resp.StatusCode())
		return nil, err
	}

	v, err := decode(resp.Body())
	if err != nil {
		err = fmt.Errorf("failed to decode response for %s: %w", path, err)
		return nil, err
	}

	return v, nil
}

func (s *firebaseStore) Shallow(ctx context.Context, path string) ([]string, error) {
	var err error
	ctx, span := tracer.Start(ctx, "shallow")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	span.SetAttributes(attribute.String("path", path))

	resp, err := s.client.R().SetContext(ctx).SetQueryParam("shallow", "true").Get(endpoint(path))
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrRequestFailed, err.Error())
		return nil, err
	}
	if resp.IsError() {
		err = fmt.Errorf("%w: GET %s returned %d", ErrRequestFailed, path, resp.StatusCode())
		return nil, err
	}

	v, err := decode(resp.Body())
	if err != nil {
		err = fmt.Errorf("failed to decode response for %s: %w", path, err)
		return nil, err
	}

	m, ok := AsMap(v)
	if !ok {
		return nil, nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys, nil
}

func (s *firebaseStore) Set(ctx context.Context, path string, value any) error {
	var err error
	ctx, span := tracer.Start(ctx, "set")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	span.SetAttributes(attribute.String("path", path))

	err = s.write(ctx, http.MethodPut, path, value)
	return err
}

func (s *firebaseStore) Update(ctx context.Context, path string, fields map[string]any) error {
	var err error
	ctx, span := tracer.Start(ctx, "update")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	span.SetAttributes(attribute.String("path", path))

	err = s.write(ctx, http.MethodPatch, path, fields)
	return err
}

func (s *firebaseStore) write(ctx context.Context, method, path string, body any) error {
	logger := logging.GetFromContext(ctx)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("print", "silent").
		SetBody(body).
		Execute(method, endpoint(path))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRequestFailed, err.Error())
	}
	if resp.IsError() {
		logger.Error().Str("path", path).Int("status", resp.StatusCode()).Msg("write rejected by realtime database")
		return fmt.Errorf("%w: %s %s returned %d", ErrRequestFailed, method, path, resp.StatusCode())
	}

	return nil
}
