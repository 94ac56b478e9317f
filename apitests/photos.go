package apitests

import (
	"fmt"

	"github.com/fakeapi/rest-contract-tests/models"
	"github.com/fakeapi/rest-contract-tests/validation"

	"github.com/stretchr/testify/assert"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoPhotoTests(t *T) {
	r := resourceFor(models.PhotoSchema)
	doResourceTests(t, r)

	t.Run("urls are well formed", func(t *T) {
		for _, e := range t.requireEntityList(t.Get(r.schema.Path), r) {
			p := models.Photo{Entity: e}
			assert.Regexp(t, validation.URLPattern, p.URL(), "%s", p)
			assert.Regexp(t, validation.URLPattern, p.ThumbnailURL(), "%s", p)
		}
	})

	t.Run("reject invalid url", func(t *T) {
		for i, p := range t.Generators().Photos.GenerateWithInvalidURLs() {
			p := p
			t.Run(fmt.Sprintf("record %d", i+1), func(t *T) {
				t.KnownIssue(IssueURLFormat)
				t.Debug("url %q, thumbnailUrl %q", p.URL(), p.ThumbnailURL())
				resp := t.Post(r.schema.Path, p)
				assert.Equal(t, 400, resp.Status)
			})
		}
		// names are indexed because most of these values contain slashes
		for i, u := range models.InvalidURLs {
			u := u
			t.Run(fmt.Sprintf("value %d", i+1), func(t *T) {
				t.KnownIssue(IssueURLFormat)
				t.Debug("url %q", u)
				sent := t.Generators().Photos.Generate(ldvalue.OptionalInt{}).With("url", ldvalue.String(u))
				resp := t.Post(r.schema.Path, sent)
				assert.Equal(t, 400, resp.Status)
			})
		}
	})
}
