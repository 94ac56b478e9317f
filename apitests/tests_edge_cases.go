package apitests

import (
	"net/http"

	"github.com/fakeapi/rest-contract-tests/client"
	"github.com/fakeapi/rest-contract-tests/models"

	"github.com/stretchr/testify/assert"
)

func doEdgeCaseTests(t *T, r *resource) {
	gens := t.Generators()

	t.Run("malformed JSON", func(t *T) {
		for _, m := range models.MalformedJSONBodies {
			m := m
			t.Run(m.Description, func(t *T) {
				t.KnownIssue(IssueMalformedJSON)
				resp := t.Do(client.Request{Method: http.MethodPost, Path: r.schema.Path, Body: []byte(m.Body)})
				assert.Equal(t, 400, resp.Status)
			})
		}
	})

	t.Run("content type", func(t *T) {
		for _, p := range models.InvalidContentTypes {
			p := p
			t.Run(p.Description, func(t *T) {
				t.KnownIssue(IssueContentType)
				resp := t.Do(client.Request{
					Method:          http.MethodPost,
					Path:            r.schema.Path,
					Body:            []byte(gens.Generate(r.schema).String()),
					ContentType:     p.ContentType,
					OmitContentType: p.ContentType == "",
				})
				assert.Equal(t, 415, resp.Status)
			})
		}
	})

	t.Run("unsupported methods", func(t *T) {
		for _, m := range models.UnsupportedMethods {
			m := m
			path := r.schema.Path
			if m.OnItem {
				path = r.schema.ItemPath(gens.IDs(r.schema).GenerateRandomID())
			}
			t.Run(m.Method, func(t *T) {
				t.KnownIssue(IssueMethods)
				resp := t.Do(client.Request{Method: m.Method, Path: path})
				assert.Equal(t, 405, resp.Status)
			})
		}
	})

	t.Run("large payload", func(t *T) {
		t.KnownIssue(IssuePayloadSize)
		resp := t.Post(r.schema.Path, gens.LargePayload(r.schema))
		assert.Equal(t, 413, resp.Status)
	})

	t.Run("special characters", func(t *T) {
		t.KnownIssue(IssueSpecialChars)
		t.AssertRejected(t.Post(r.schema.Path, gens.SpecialCharacters(r.schema)))
	})

	t.Run("invalid payloads", func(t *T) {
		for _, p := range gens.InvalidPayloads(r.schema).All() {
			p := p
			t.Run(p.Name, func(t *T) {
				t.KnownIssue(IssueInvalidData)
				t.AssertRejected(t.Post(r.schema.Path, p.Body))
			})
		}
	})
}
