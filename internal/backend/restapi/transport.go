// Package restapi implements service.Service over the task HTTP API.
package restapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	"realtodo/internal/service"
)

const (
	// DefaultBaseURL is the API origin used when none is configured.
	DefaultBaseURL = "http://localhost:8080"

	// RequestIDHeader carries a per-request id for server-side correlation.
	RequestIDHeader = "X-Request-Id"

	tracerName = "realtodo/restapi"
)

// RequestOptions describes one API call. Method defaults to GET.
// Token, when set, is sent as a bearer credential. Body, when non-nil,
// is sent as JSON.
type RequestOptions struct {
	Token  string
	Method string
	Body   any
}

// Payload is a response body. Bodies that are not JSON are kept as
// {"raw": text} rather than treated as failures.
type Payload struct {
	Status int
	Value  any

	body   []byte
	isJSON bool
}

// Decode unmarshals a JSON body into v.
func (p *Payload) Decode(v any) error {
	if len(p.body) == 0 {
		return fmt.Errorf("empty response body")
	}
	if !p.isJSON {
		return fmt.Errorf("response is not JSON: %q", truncate(string(p.body), 64))
	}
	return sonic.Unmarshal(p.body, v)
}

// Field returns a top-level string field of an object body, or "".
func (p *Payload) Field(name string) string {
	m, ok := p.Value.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[name].(string)
	return s
}

func parsePayload(status int, body []byte) *Payload {
	p := &Payload{Status: status, body: body}
	if len(body) == 0 {
		return p
	}
	var v any
	if err := sonic.Unmarshal(body, &v); err != nil {
		p.Value = map[string]any{"raw": string(body)}
		return p
	}
	p.Value = v
	p.isJSON = true
	return p
}

// Transport issues JSON requests against a fixed base URL.
type Transport struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

// Option configures a Transport.
type Option func(*Transport)

// WithHTTPClient sets the underlying HTTP client (for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) { t.http = c }
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			c := *t.http
			c.Timeout = d
			t.http = &c
		}
	}
}

// WithTracerProvider sets the tracer provider used for request spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(t *Transport) { t.tracer = tp.Tracer(tracerName) }
}

// NewTransport creates a Transport for baseURL.
func NewTransport(baseURL string, opts ...Option) *Transport {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	t := &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Do performs one call and returns the parsed payload.
// Non-2xx/3xx statuses return the payload together with a *service.Error.
// Failures to reach the server return a *service.NetworkError.
func (t *Transport) Do(ctx context.Context, path string, opts RequestOptions) (*Payload, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		data, err := sonic.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	ctx, span := t.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	if opts.Token != "" {
		(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"}).SetAuthHeader(req)
	}

	logger := log.WithFields(log.Fields{
		"method":     method,
		"path":       path,
		"request_id": reqID,
	})

	start := time.Now()
	resp, err := t.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		logger.WithError(err).Debug("api request failed")
		return nil, &service.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return nil, &service.NetworkError{Err: err}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	logger.WithFields(log.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("api request")

	p := parsePayload(resp.StatusCode, data)
	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		msg := p.Field("error")
		if msg == "" {
			msg = p.Field("message")
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		span.SetStatus(codes.Error, msg)
		return p, &service.Error{Status: resp.StatusCode, Message: msg}
	}
	return p, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
