package xcclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/monitorconfig"
	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/payload"
	"go.uber.org/zap"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	calls  int
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	return m.doFunc(req)
}

func testDocument() *payload.Document {
	return payload.Build(&monitorconfig.Monitor{
		Name:              "example-monitor",
		URL:               "https://example.com",
		Interval:          "5m",
		FollowRedirects:   true,
		ResponseTimeoutMS: 10000,
		OnFailureCount:    2,
		AWSRegions:        []string{"ap-south-1"},
		Description:       "http monitor for https://example.com",
	})
}

func TestClient_EndpointURL(t *testing.T) {
	c := NewClient(Options{BaseURL: "https://acme.console.ves.volterra.io"}, zap.NewNop())

	got := c.EndpointURL("prod")
	want := "https://acme.console.ves.volterra.io/api/observability/synthetic_monitor/namespaces/prod/v1_http_monitors"
	if got != want {
		t.Errorf("EndpointURL() = %q, want %q", got, want)
	}
}

func TestClient_Create(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := NewClient(Options{
		BaseURL:  server.URL,
		APIToken: "secret-token",
	}, zap.NewNop())

	if err := c.Create(context.Background(), "default", testDocument()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/observability/synthetic_monitor/namespaces/default/v1_http_monitors" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotAuth != "APIToken secret-token" {
		t.Errorf("authorization: got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("content-type: got %q", gotContentType)
	}

	var doc map[string]any
	if err := json.Unmarshal(gotBody, &doc); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if _, ok := doc["metadata"]; !ok {
		t.Error("expected body to contain metadata")
	}
	if _, ok := doc["spec"]; !ok {
		t.Error("expected body to contain spec")
	}
}

func TestClient_Create_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"monitor already exists"}`))
	}))
	defer server.Close()

	c := NewClient(Options{BaseURL: server.URL, APIToken: "secret-token"}, zap.NewNop())

	err := c.Create(context.Background(), "default", testDocument())
	if err == nil {
		t.Fatal("expected error but got none")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("StatusCode: got %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "monitor already exists") {
		t.Errorf("Body: got %q", apiErr.Body)
	}
	if !strings.Contains(err.Error(), "409") {
		t.Errorf("expected error to surface the status code, got %q", err.Error())
	}
}

func TestClient_Create_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable\n"))
	}))
	defer server.Close()

	c := NewClient(Options{BaseURL: server.URL, APIToken: "secret-token"}, zap.NewNop())

	err := c.Create(context.Background(), "default", testDocument())
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Body != "upstream unavailable" {
		t.Errorf("Body: got %q", apiErr.Body)
	}
}

func TestClient_Create_DryRunNeverCallsNetwork(t *testing.T) {
	mock := &mockHTTPClient{
		doFunc: func(_ *http.Request) (*http.Response, error) {
			t.Fatal("dry-run must not perform a network call")
			return nil, nil
		},
	}

	c := &Client{
		options: Options{
			BaseURL:  "https://acme.console.ves.volterra.io",
			DryRun:   true,
			APIToken: "secret-token",
		},
		client: mock,
		logger: zap.NewNop(),
	}

	for i := 0; i < 5; i++ {
		if err := c.Create(context.Background(), "default", testDocument()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if mock.calls != 0 {
		t.Errorf("expected 0 network calls in dry-run, got %d", mock.calls)
	}
}
