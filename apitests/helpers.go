package apitests

import (
	"fmt"

	"github.com/fakeapi/rest-contract-tests/client"
	"github.com/fakeapi/rest-contract-tests/models"
	"github.com/fakeapi/rest-contract-tests/schemas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// The request helpers fail the test immediately on a transport error. Any HTTP status, including
// 4xx and 5xx, is returned for the caller to check.

func (t *T) Get(path string) *client.Response {
	resp, err := t.client.Get(t.Context(), path)
	require.NoError(t, err)
	return resp
}

func (t *T) Post(path string, body interface{}) *client.Response {
	resp, err := t.client.Post(t.Context(), path, body)
	require.NoError(t, err)
	return resp
}

func (t *T) Put(path string, body interface{}) *client.Response {
	resp, err := t.client.Put(t.Context(), path, body)
	require.NoError(t, err)
	return resp
}

func (t *T) Patch(path string, body interface{}) *client.Response {
	resp, err := t.client.Patch(t.Context(), path, body)
	require.NoError(t, err)
	return resp
}

func (t *T) Delete(path string) *client.Response {
	resp, err := t.client.Delete(t.Context(), path)
	require.NoError(t, err)
	return resp
}

func (t *T) Do(r client.Request) *client.Response {
	resp, err := t.client.Do(t.Context(), r)
	require.NoError(t, err)
	return resp
}

// RequireStatus stops the test if the response does not have the expected status.
func (t *T) RequireStatus(resp *client.Response, status int) {
	require.Equal(t, status, resp.Status, "unexpected status for %s", resp)
}

// AssertRejected checks that a write was refused as a client error. Either 400 or 422 is
// acceptable. A JSON error body must have the shape of the error schema.
func (t *T) AssertRejected(resp *client.Response) {
	if !assert.Contains(t, []int{400, 422}, resp.Status, "expected %s to be rejected", resp) {
		return
	}
	if resp.IsJSON() && len(resp.Body) > 0 {
		result := schemas.Error.Validate(resp.Body)
		assert.True(t, result.Valid, "error body does not match the error schema: %s", result)
	}
}

// requireEntity checks a single-record response in three steps: the status, the structure of
// the body against the resource's JSON schema, and then the record against the model rules.
func (t *T) requireEntity(resp *client.Response, status int, r *resource) models.Entity {
	t.RequireStatus(resp, status)
	require.True(t, resp.IsJSON(), "expected a JSON response, got Content-Type %q", resp.ContentType())

	structure := r.item.Validate(resp.Body)
	require.True(t, structure.Valid, "%s response does not match the %s schema: %s",
		resp, r.schema.Name, structure)

	e, err := models.Decode(r.schema, resp.Body)
	require.NoError(t, err)
	if result := e.Validate(); !result.IsValid() {
		t.Debug("Model validation - %s: %s", r.schema.Name, result)
		require.Fail(t, fmt.Sprintf("%s record is not valid", r.schema.Name), "%s", result)
	}
	return e
}

// requireEntityList is the equivalent of requireEntity for a listing. Every element is checked.
func (t *T) requireEntityList(resp *client.Response, r *resource) []models.Entity {
	t.RequireStatus(resp, 200)

	structure := r.list.Validate(resp.Body)
	require.True(t, structure.Valid, "%s response does not match the %s schema: %s",
		resp, r.list.Name(), structure)

	items, err := models.DecodeList(r.schema, resp.Body)
	require.NoError(t, err)
	invalid := 0
	for _, e := range items {
		if result := e.Validate(); !result.IsValid() {
			t.Debug("Model validation - %s: %s", e, result)
			invalid++
		}
	}
	require.Zero(t, invalid, "%d of %d %s records are not valid", invalid, len(items), r.schema.Name)
	return items
}

// AssertEchoes checks that every property that was sent, other than id, came back unchanged.
func (t *T) AssertEchoes(sent ldvalue.Value, got models.Entity) {
	for _, k := range sent.Keys() {
		if k == "id" {
			continue
		}
		assert.JSONEq(t, sent.GetByKey(k).JSONString(), got.Get(k).JSONString(), "property %q", k)
	}
}

func (t *T) requireID(e models.Entity) int {
	id, ok := e.ID()
	require.True(t, ok, "record has no numeric id: %s", e)
	return id
}
