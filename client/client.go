// Package client is the HTTP client used by the scenarios to talk to the service under test.
//
// It is a thin layer over net/http that applies default JSON headers, tags every request with an
// X-Request-Id, and writes both sides of each exchange to a framework.Logger so that a failing
// scenario's debug output shows exactly what was sent and received.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/fakeapi/rest-contract-tests/framework"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout is the per-request timeout when none is configured.
	DefaultTimeout = 30 * time.Second

	jsonContentType = "application/json"
	requestIDHeader = "X-Request-Id"

	// Bodies longer than this are truncated in debug output.
	maxLoggedBody = 500
)

// Client sends requests to one base URL. It is safe for concurrent use. Methods that return a
// modified client, such as WithLogger, never change the receiver.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
	logger     framework.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall timeout for each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout, Transport: c.httpClient.Transport}
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(name, value string) Option {
	return func(c *Client) {
		c.headers.Set(name, value)
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDebugLogger sets the logger that receives request and response details.
func WithDebugLogger(logger framework.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		headers:    make(http.Header),
		logger:     framework.NullLogger(),
	}
	c.headers.Set("Content-Type", jsonContentType)
	c.headers.Set("Accept", jsonContentType)
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the base URL of the service.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithLogger returns a copy of the client that writes debug output to logger. Scenarios use this
// to direct each test's traffic into that test's captured output.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	ret := *c
	if logger == nil {
		logger = framework.NullLogger()
	}
	ret.logger = logger
	return &ret
}

// Request describes an arbitrary request. Most callers should use Get, Post, Put, Patch or
// Delete instead; Request exists for the cases those cannot express, such as a raw malformed
// body, a missing Content-Type, or an undocumented method.
type Request struct {
	Method string
	Path   string

	// Body is sent verbatim. A nil Body sends no body at all.
	Body []byte

	// ContentType overrides the default Content-Type. If OmitContentType is true the header is
	// not sent at all.
	ContentType     string
	OmitContentType bool

	// Headers are added after the defaults and take precedence over them.
	Headers map[string]string
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

// Post sends a POST request with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPost, path, body)
}

// Put sends a PUT request with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPut, path, body)
}

// Patch sends a PATCH request with body encoded as JSON.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPatch, path, body)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s body for %s: %w", method, path, err)
	}
	return c.Do(ctx, Request{Method: method, Path: path, Body: data})
}

// Do sends a request. A non-2xx status is not an error; only transport failures are. Requests
// are never retried.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	url := c.baseURL + r.Path
	var body *bytes.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	var req *http.Request
	var err error
	if body == nil {
		req, err = http.NewRequestWithContext(ctx, r.Method, url, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, r.Method, url, body)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s request for %s: %w", r.Method, url, err)
	}

	for name, values := range c.headers {
		req.Header[name] = append([]string(nil), values...)
	}
	switch {
	case r.OmitContentType:
		req.Header.Del("Content-Type")
	case r.ContentType != "":
		req.Header.Set("Content-Type", r.ContentType)
	}
	for name, value := range r.Headers {
		req.Header.Set(name, value)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	c.logger.Printf("%s %s [%s] %s", r.Method, url, requestID, describeBody(req.Header.Get("Content-Type"), r.Body))
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("%s %s [%s] failed: %s", r.Method, url, requestID, err)
		return nil, fmt.Errorf("%s %s: %w", r.Method, url, err)
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body of %s %s: %w", r.Method, url, err)
	}

	ret := &Response{
		Method:   r.Method,
		URL:      url,
		Status:   resp.StatusCode,
		Header:   resp.Header,
		Body:     data,
		Duration: time.Since(start),
	}
	c.logger.Printf("=> %s in %s, %s", ret.StatusLine(), ret.Duration.Round(time.Millisecond),
		describeBody(ret.ContentType(), data))
	return ret, nil
}

// AwaitReachable polls the service root until it answers with any HTTP status, or until timeout
// elapses. Progress is written to output.
func (c *Client) AwaitReachable(ctx context.Context, timeout time.Duration, output framework.Logger) error {
	if output == nil {
		output = framework.NullLogger()
	}
	deadline := time.Now().Add(timeout)
	url := c.baseURL + "/"
	for {
		output.Printf("Making request to %s", url)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.httpClient.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			output.Printf("Got %d status from %s", resp.StatusCode, url)
			return nil
		}
		if !time.Now().Before(deadline) {
			return fmt.Errorf("service at %s was not reachable; result of last query was: %w", url, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond * 100):
		}
	}
}

func describeBody(contentType string, body []byte) string {
	if body == nil {
		return "(no body)"
	}
	s := string(body)
	if len(s) > maxLoggedBody {
		s = fmt.Sprintf("%s... (%d bytes total)", s[:maxLoggedBody], len(body))
	}
	if contentType == "" {
		contentType = "no content type"
	}
	return fmt.Sprintf("(%s) %s", contentType, s)
}
