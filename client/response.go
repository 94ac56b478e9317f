package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ErrMalformedBody is returned, wrapped, when a response body that should be JSON cannot be
// parsed. Scenarios that probe error handling treat this as an observable outcome rather than a
// test failure.
var ErrMalformedBody = errors.New("response body is not valid JSON")

// Response is a fully read HTTP response.
type Response struct {
	Method   string
	URL      string
	Status   int
	Header   http.Header
	Body     []byte
	Duration time.Duration
}

// StatusLine returns the status code with its standard text, such as "404 Not Found".
func (r *Response) StatusLine() string {
	if text := http.StatusText(r.Status); text != "" {
		return fmt.Sprintf("%d %s", r.Status, text)
	}
	return fmt.Sprintf("%d", r.Status)
}

// ContentType returns the raw Content-Type header.
func (r *Response) ContentType() string {
	return r.Header.Get("Content-Type")
}

// MediaType returns the Content-Type without parameters, such as "application/json".
func (r *Response) MediaType() string {
	mt, _, err := mime.ParseMediaType(r.ContentType())
	if err != nil {
		return ""
	}
	return mt
}

// IsJSON reports whether the response declares a JSON body.
func (r *Response) IsJSON() bool {
	return r.MediaType() == jsonContentType
}

// JSON parses the body as any JSON value.
func (r *Response) JSON() (ldvalue.Value, error) {
	var v ldvalue.Value
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return ldvalue.Null(), r.malformed(err)
	}
	return v, nil
}

// Decode parses the body into a Go value.
func (r *Response) Decode(into interface{}) error {
	if err := json.Unmarshal(r.Body, into); err != nil {
		return r.malformed(err)
	}
	return nil
}

func (r *Response) malformed(err error) error {
	return fmt.Errorf("%s %s returned %s: %w (%s)", r.Method, r.URL, r.StatusLine(), ErrMalformedBody, err)
}

func (r *Response) String() string {
	return fmt.Sprintf("%s %s => %s", r.Method, r.URL, r.StatusLine())
}
