// Package content queries the headless content repository that holds the
// product catalog. Every result is validated before it is trusted.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/utafrali/audiophile/pkg/errors"
	"github.com/utafrali/audiophile/pkg/httpclient"
	"github.com/utafrali/audiophile/pkg/tracing"
	"github.com/utafrali/audiophile/pkg/validator"
)

const (
	serviceName = "content"
	tracerName  = "github.com/utafrali/audiophile/internal/content"

	maxResponseBytes = 4 << 20
)

// ErrSchemaMismatch is returned when a query result does not have the shape
// the caller declared. It is never retried or partially rendered.
var ErrSchemaMismatch = errors.New("content result does not match schema")

// ErrResponseTooLarge is returned when the content repository answers with
// more than the client is willing to buffer.
var ErrResponseTooLarge = errors.New("content response too large")

// errNoResult marks a null result for a single-document query.
var errNoResult = errors.New("content query returned no result")

var queryDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "content_query_duration_seconds",
		Help:    "Duration of content repository queries.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"query", "outcome"},
)

func init() {
	prometheus.MustRegister(queryDuration)
}

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy it.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Config locates a dataset in the content repository.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	// BaseURL overrides the project's API host, e.g. for the CDN or tests.
	BaseURL string
	Token   string
}

// QueryURL returns the query endpoint for the configured dataset.
func (c Config) QueryURL() string {
	base := c.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", c.ProjectID)
	}
	return fmt.Sprintf("%s/v%s/data/query/%s",
		strings.TrimRight(base, "/"), c.APIVersion, url.PathEscape(c.Dataset))
}

// Params are query parameters. Values are sent JSON encoded.
type Params map[string]any

// Client runs queries against the content repository.
type Client struct {
	doer     HTTPDoer
	endpoint string
	token    string
	maxBody  int64
	logger   *slog.Logger
}

// NewClient creates a content client.
func NewClient(cfg Config, doer HTTPDoer, logger *slog.Logger) *Client {
	return &Client{
		doer:     doer,
		endpoint: cfg.QueryURL(),
		token:    cfg.Token,
		maxBody:  maxResponseBytes,
		logger:   logger,
	}
}

type envelope struct {
	Result json.RawMessage `json:"result"`
}

// fetch runs a named query and decodes the validated result into T. When
// single is set a null result yields errNoResult.
func fetch[T any](ctx context.Context, c *Client, name, query string, params Params, single bool) (T, error) {
	var out T

	ctx, span := tracing.StartSpan(ctx, tracerName, "content."+name,
		attribute.String("content.query", name),
	)
	start := time.Now()

	raw, err := c.do(ctx, query, params)
	if err == nil {
		err = decode(raw, &out, single)
	}

	queryDuration.WithLabelValues(name, outcome(err)).Observe(time.Since(start).Seconds())
	tracing.EndSpan(span, err)

	if err != nil && errors.Is(err, ErrSchemaMismatch) {
		c.logger.ErrorContext(ctx, "content schema mismatch",
			slog.String("query", name),
			slog.String("error", err.Error()),
		)
	}
	return out, err
}

func (c *Client) do(ctx context.Context, query string, params Params) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("query", query)
	for k, v := range params {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode query param %s: %w", k, err)
		}
		q.Set("$"+k, string(b))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create content request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrServiceUnavail) {
			return nil, err
		}
		return nil, apperrors.Internal(fmt.Errorf("call content repository: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := httpclient.ParseResponseError(resp, serviceName)
		if errors.Is(err, apperrors.ErrServiceUnavail) {
			return nil, err
		}
		return nil, apperrors.Internal(err)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("read content response: %w", err))
	}
	if int64(len(body)) > c.maxBody {
		return nil, apperrors.Internal(fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, schemaError(fmt.Errorf("decode envelope: %w", err))
	}
	return env.Result, nil
}

func decode(raw json.RawMessage, dst any, single bool) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		if single {
			return errNoResult
		}
		return schemaError(errors.New("missing result"))
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(dst); err != nil {
		return schemaError(err)
	}

	var err error
	switch reflect.Indirect(reflect.ValueOf(dst)).Kind() {
	case reflect.Slice:
		err = validator.ValidateVar(reflect.Indirect(reflect.ValueOf(dst)).Interface(), "dive")
	case reflect.Struct:
		err = validator.Validate(dst)
	}
	if err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError wraps a decoding or validation failure so it maps to a 500
// and still matches ErrSchemaMismatch.
func schemaError(err error) error {
	return apperrors.Internal(fmt.Errorf("%w: %w", ErrSchemaMismatch, err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errNoResult):
		return "empty"
	case errors.Is(err, ErrSchemaMismatch):
		return "schema_mismatch"
	default:
		return "error"
	}
}
