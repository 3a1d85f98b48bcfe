package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/logging"
	"github.com/gaidesk/gaidesk-backend/internal/pkg/infrastructure/tracing"
	"github.com/gaidesk/gaidesk-backend/pkg/types"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

type GaideskClient interface {
	PostReading(ctx context.Context, reading types.Reading) (types.IngestReceipt, error)
	Readings(ctx context.Context, deviceID string, limit int) ([]types.ShapedReading, error)
}

type gaideskClient struct {
	url        string
	token      string
	httpClient http.Client
}

var tracer = otel.Tracer("gaidesk-client")

func New(gaideskURL, token string) GaideskClient {
	return &gaideskClient{
		url:   strings.TrimSuffix(gaideskURL, "/"),
		token: token,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *gaideskClient) PostReading(ctx context.Context, reading types.Reading) (types.IngestReceipt, error) {
	var err error
	ctx, span := tracer.Start(ctx, "post-reading")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	b, err := json.Marshal(reading)
	if err != nil {
		err = fmt.Errorf("failed to marshal reading: %w", err)
		return types.IngestReceipt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/post", bytes.NewReader(b))
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return types.IngestReceipt{}, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	receipt := types.IngestReceipt{}

	err = c.do(req, &receipt)
	if err != nil {
		return types.IngestReceipt{}, err
	}

	log.Debug().Str("device", receipt.Device).Str("key", receipt.Key).Msg("reading posted")

	return receipt, nil
}

func (c *gaideskClient) Readings(ctx context.Context, deviceID string, limit int) ([]types.ShapedReading, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-readings")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params := url.Values{}
	if deviceID != "" {
		params.Set("device", deviceID)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/api/data?"+params.Encode(), nil)
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return nil, err
	}

	readings := []types.ShapedReading{}

	err = c.do(req, &readings)
	if err != nil {
		return nil, err
	}

	return readings, nil
}

func (c *gaideskClient) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		e := types.ErrorResponse{}
		_ = json.Unmarshal(respBody, &e)

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, e.Error)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrForbidden, e.Error)
		case http.StatusBadRequest:
			return fmt.Errorf("%w: %s", ErrBadRequest, e.Error)
		}

		return fmt.Errorf("request failed with status code %d", resp.StatusCode)
	}

	err = json.Unmarshal(respBody, result)
	if err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return nil
}
