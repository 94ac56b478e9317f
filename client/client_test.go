package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fakeapi/rest-contract-tests/framework"

	"github.com/google/uuid"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func takeRequest(t *testing.T, ch <-chan httphelpers.HTTPRequestInfo) httphelpers.HTTPRequestInfo {
	select {
	case r := <-ch:
		return r
	case <-time.After(time.Second):
		require.Fail(t, "timed out waiting for request")
		return httphelpers.HTTPRequestInfo{}
	}
}

func TestPostSendsJSONWithDefaultHeaders(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithJSONResponse(map[string]interface{}{"id": 101}, nil))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := New(server.URL + "/")
		body := ldvalue.ObjectBuild().Set("title", ldvalue.String("hello")).Build()

		resp, err := c.Post(context.Background(), "/posts", body)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
		assert.True(t, resp.IsJSON())

		r := takeRequest(t, requestsCh)
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "/posts", r.Request.URL.Path)
		assert.Equal(t, "application/json", r.Request.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Request.Header.Get("Accept"))
		assert.JSONEq(t, `{"title":"hello"}`, string(r.Body))

		_, err = uuid.Parse(r.Request.Header.Get("X-Request-Id"))
		assert.NoError(t, err)

		v, err := resp.JSON()
		require.NoError(t, err)
		assert.Equal(t, 101, v.GetByKey("id").IntValue())
	})
}

func TestEachRequestGetsItsOwnID(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := New(server.URL)
		_, err := c.Get(context.Background(), "/posts/1")
		require.NoError(t, err)
		_, err = c.Delete(context.Background(), "/posts/1")
		require.NoError(t, err)

		first, second := takeRequest(t, requestsCh), takeRequest(t, requestsCh)
		assert.Equal(t, "GET", first.Request.Method)
		assert.Equal(t, "DELETE", second.Request.Method)
		assert.Empty(t, first.Body)
		assert.NotEqual(t, first.Request.Header.Get("X-Request-Id"), second.Request.Header.Get("X-Request-Id"))
	})
}

func TestPutAndPatch(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := New(server.URL)
		_, err := c.Put(context.Background(), "/todos/1", map[string]bool{"completed": true})
		require.NoError(t, err)
		_, err = c.Patch(context.Background(), "/todos/1", map[string]string{"title": "x"})
		require.NoError(t, err)

		put, patch := takeRequest(t, requestsCh), takeRequest(t, requestsCh)
		assert.Equal(t, "PUT", put.Request.Method)
		assert.JSONEq(t, `{"completed":true}`, string(put.Body))
		assert.Equal(t, "PATCH", patch.Request.Method)
		assert.JSONEq(t, `{"title":"x"}`, string(patch.Body))
	})
}

func TestRawRequestControlsContentType(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(400))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := New(server.URL, WithHeader("X-Extra", "yes"))

		resp, err := c.Do(context.Background(), Request{
			Method: "POST", Path: "/posts", Body: []byte(`{"incomplete": json`), ContentType: "text/plain",
		})
		require.NoError(t, err)
		assert.Equal(t, 400, resp.Status)
		assert.Equal(t, "400 Bad Request", resp.StatusLine())

		r := takeRequest(t, requestsCh)
		assert.Equal(t, "text/plain", r.Request.Header.Get("Content-Type"))
		assert.Equal(t, "yes", r.Request.Header.Get("X-Extra"))
		assert.Equal(t, `{"incomplete": json`, string(r.Body))

		_, err = c.Do(context.Background(), Request{
			Method: "POST", Path: "/posts", Body: []byte(`{}`), OmitContentType: true,
			Headers: map[string]string{"Accept": "text/html"},
		})
		require.NoError(t, err)
		r = takeRequest(t, requestsCh)
		assert.Equal(t, "", r.Request.Header.Get("Content-Type"))
		assert.Equal(t, "text/html", r.Request.Header.Get("Accept"))
	})
}

func TestMalformedBody(t *testing.T) {
	headers := make(http.Header)
	headers.Set("Content-Type", "text/html; charset=utf-8")
	handler := httphelpers.HandlerWithResponse(500, headers, []byte("<html>oops</html>"))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		resp, err := New(server.URL).Get(context.Background(), "/posts")
		require.NoError(t, err)
		assert.False(t, resp.IsJSON())
		assert.Equal(t, "text/html", resp.MediaType())

		_, err = resp.JSON()
		assert.True(t, errors.Is(err, ErrMalformedBody))
		assert.Contains(t, err.Error(), "500 Internal Server Error")

		var into []interface{}
		assert.True(t, errors.Is(resp.Decode(&into), ErrMalformedBody))
	})
}

func TestRequestsAreLogged(t *testing.T) {
	handler := httphelpers.HandlerWithJSONResponse([]int{1, 2, 3}, nil)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		var logger framework.CapturingLogger
		c := New(server.URL).WithLogger(&logger)
		_, err := c.Post(context.Background(), "/albums", map[string]string{"title": strings.Repeat("z", 1000)})
		require.NoError(t, err)

		output := logger.Output()
		require.Len(t, output, 2)
		assert.Contains(t, output[0].Message, "POST "+server.URL+"/albums")
		assert.Contains(t, output[0].Message, "(1012 bytes total)")
		assert.Contains(t, output[1].Message, "200 OK")
		assert.Contains(t, output[1].Message, "[1,2,3]")
	})
}

func TestTransportErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	server.Close()

	_, err := New(server.URL, WithTimeout(time.Second)).Get(context.Background(), "/users")
	assert.Error(t, err)
}

func TestAwaitReachable(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithStatus(404), func(server *httptest.Server) {
		var output framework.CapturingLogger
		err := New(server.URL).AwaitReachable(context.Background(), time.Second, &output)
		assert.NoError(t, err)
		assert.NotEmpty(t, output.Output())
	})

	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	server.Close()
	err := New(server.URL).AwaitReachable(context.Background(), 200*time.Millisecond, nil)
	assert.Error(t, err)
}
