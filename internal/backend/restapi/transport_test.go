package restapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"realtodo/internal/backend/restapi"
	"realtodo/internal/service"
)

// captured is what the test handler saw for one request.
type captured struct {
	method      string
	path        string
	contentType string
	auth        string
	requestID   string
	body        string
}

func newServer(t *testing.T, status int, contentType, body string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*got = captured{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			auth:        r.Header.Get("Authorization"),
			requestID:   r.Header.Get(restapi.RequestIDHeader),
			body:        string(data),
		}
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestDo_DefaultsToGetWithJSONHeader(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "application/json", `{"ok":true}`)
	tr := restapi.NewTransport(srv.URL)

	p, err := tr.Do(context.Background(), "/api/health", restapi.RequestOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.method != http.MethodGet {
		t.Errorf("expected GET, got %s", got.method)
	}
	if got.contentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", got.contentType)
	}
	if got.auth != "" {
		t.Errorf("expected no Authorization header, got %q", got.auth)
	}
	if got.body != "" {
		t.Errorf("expected no body, got %q", got.body)
	}
	if got.requestID == "" {
		t.Error("expected a request id header")
	}
	if p.Status != http.StatusOK {
		t.Errorf("expected status 200, got %d", p.Status)
	}
	m, ok := p.Value.(map[string]any)
	if !ok || m["ok"] != true {
		t.Errorf("expected parsed object, got %#v", p.Value)
	}
}

func TestDo_AttachesBearerAndBody(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "application/json", `{}`)
	tr := restapi.NewTransport(srv.URL + "/")

	_, err := tr.Do(context.Background(), "/api/todos", restapi.RequestOptions{
		Token:  "T1",
		Method: http.MethodPost,
		Body:   map[string]string{"title": "milk"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.auth != "Bearer T1" {
		t.Errorf("expected 'Bearer T1', got %q", got.auth)
	}
	if got.path != "/api/todos" {
		t.Errorf("expected path /api/todos, got %q", got.path)
	}
	if got.body != `{"title":"milk"}` {
		t.Errorf("expected JSON body, got %q", got.body)
	}
}

func TestDo_NonJSONSuccessIsWrapped(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "text/plain", "pong")
	tr := restapi.NewTransport(srv.URL)

	p, err := tr.Do(context.Background(), "/ping", restapi.RequestOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Field("raw") != "pong" {
		t.Errorf("expected raw fallback, got %#v", p.Value)
	}
	var v map[string]any
	if err := p.Decode(&v); err == nil {
		t.Error("expected Decode to fail on non-JSON body")
	}
}

func TestDo_EmptyBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "", "")
	tr := restapi.NewTransport(srv.URL)

	p, err := tr.Do(context.Background(), "/api/todos/1", restapi.RequestOptions{Method: http.MethodDelete})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Value != nil {
		t.Errorf("expected nil value for empty body, got %#v", p.Value)
	}
}

func TestDo_ErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error field", http.StatusUnauthorized, `{"error":"Invalid token"}`, "Invalid token"},
		{"message field", http.StatusBadRequest, `{"message":"title must not be blank"}`, "title must not be blank"},
		{"error wins over message", http.StatusConflict, `{"error":"Email already in use","message":"ignored"}`, "Email already in use"},
		{"non-JSON body", http.StatusInternalServerError, "Internal Error", "HTTP 500"},
		{"empty body", http.StatusNotFound, "", "HTTP 404"},
		{"non-string error", http.StatusBadGateway, `{"error":{"code":1}}`, "HTTP 502"},
		{"array body", http.StatusBadRequest, `["x"]`, "HTTP 400"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newServer(t, tc.status, "", tc.body)
			tr := restapi.NewTransport(srv.URL)

			p, err := tr.Do(context.Background(), "/x", restapi.RequestOptions{})
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, err.Error())
			}
			var apiErr *service.Error
			if !errors.As(err, &apiErr) || apiErr.Status != tc.status {
				t.Errorf("expected *service.Error with status %d, got %#v", tc.status, err)
			}
			if p == nil || p.Status != tc.status {
				t.Errorf("expected payload with status %d", tc.status)
			}
		})
	}
}

func TestDo_RedirectStatusIsSuccess(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotModified, "", "")
	tr := restapi.NewTransport(srv.URL)

	if _, err := tr.Do(context.Background(), "/api/todos", restapi.RequestOptions{}); err != nil {
		t.Errorf("expected 304 to be treated as success, got %v", err)
	}
}

func TestDo_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	tr := restapi.NewTransport(url)
	_, err := tr.Do(context.Background(), "/api/todos", restapi.RequestOptions{})
	if err == nil {
		t.Fatal("expected network error")
	}
	if !errors.Is(err, service.ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
	if service.StatusOf(err) != 0 {
		t.Errorf("expected no HTTP status on network failure")
	}
}

func TestDo_RecordsClientSpan(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, "application/json", `{"error":"Invalid token"}`)
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	tr := restapi.NewTransport(srv.URL, restapi.WithTracerProvider(tp))

	_, _ = tr.Do(context.Background(), "/api/todos", restapi.RequestOptions{Token: "bad"})

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "GET /api/todos" {
		t.Errorf("unexpected span name %q", spans[0].Name())
	}
	if spans[0].Status().Description != "Invalid token" {
		t.Errorf("expected error status on span, got %+v", spans[0].Status())
	}
}
