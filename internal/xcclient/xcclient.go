// Package xcclient submits monitor create requests to the XC
// synthetic-monitor API, or renders them without sending in dry-run
// mode.
package xcclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/payload"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	createPathFormat = "/api/observability/synthetic_monitor/namespaces/%s/v1_http_monitors"

	requestTimeout = 30 * time.Second

	// Error bodies are surfaced to the operator; cap them so a
	// misbehaving endpoint cannot flood the output.
	maxErrorBodyBytes = 64 << 10
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	// BaseURL of the tenant console, e.g. https://acme.console.ves.volterra.io
	BaseURL string
	// APIToken sent as "Authorization: APIToken <token>".
	APIToken string
	// Insecure disables TLS verification of the API endpoint.
	Insecure bool
	// DryRun renders payloads instead of sending them.
	DryRun bool
}

type Client struct {
	options Options
	client  HTTPClient
	logger  *zap.Logger
}

func NewClient(options Options, logger *zap.Logger) *Client {
	transport := http.DefaultTransport
	if options.Insecure {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // operator opted in via -insecure
		}
	}

	return &Client{
		options: options,
		client: &http.Client{
			Timeout:   requestTimeout,
			Transport: NewLoggerMiddleware(logger, transport),
		},
		logger: logger,
	}
}

// APIError is a non-2xx response from the create endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// EndpointURL returns the create endpoint for a namespace.
func (c *Client) EndpointURL(namespace string) string {
	return c.options.BaseURL + fmt.Sprintf(createPathFormat, url.PathEscape(namespace))
}

// Create submits one monitor create request. In dry-run mode it logs
// the rendered payload and never touches the network. A non-2xx
// response is returned as an *APIError carrying status and body.
func (c *Client) Create(ctx context.Context, namespace string, doc *payload.Document) error {
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error encoding payload")
	}

	endpoint := c.EndpointURL(namespace)

	if c.options.DryRun {
		c.logger.Info("dry-run: would POST monitor",
			zap.String("url", endpoint),
			zap.String("payload", string(body)))
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "error creating http request")
	}
	req.Header.Set("Authorization", "APIToken "+c.options.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "error sending create request")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 == 2 {
		return nil
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Body:       readErrorBody(resp.Body),
	}
}

// readErrorBody drains the response body, re-indenting it when it is
// JSON so API error details stay readable.
func readErrorBody(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return ""
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return indented.String()
}
