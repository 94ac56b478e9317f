package apitests

import (
	"github.com/fakeapi/rest-contract-tests/models"

	"github.com/stretchr/testify/assert"
)

func DoPostTests(t *T) {
	r := resourceFor(models.PostSchema)
	doResourceTests(t, r)

	t.Run("fixtures", func(t *T) {
		posts := t.Posts()
		if len(posts.ValidPosts) == 0 || len(posts.UpdateData) == 0 {
			t.Skip("no post fixtures loaded")
		}

		t.Run("create", func(t *T) {
			for _, p := range posts.Posts() {
				created := t.requireEntity(t.Post(r.schema.Path, p), 201, r)
				assert.Equal(t, r.schema.IDs.Max+1, t.requireID(created))
				t.AssertEchoes(p.AsValue(), created)
			}
		})

		t.Run("update", func(t *T) {
			sent := posts.Update()
			id := t.requireID(sent.Entity)
			updated := t.requireEntity(t.Put(r.schema.ItemPath(id), sent), 200, r)
			assert.Equal(t, id, t.requireID(updated))
			t.AssertEchoes(sent.AsValue(), updated)
		})

		t.Run("reject invalid", func(t *T) {
			for _, p := range posts.InvalidPosts {
				p := p
				t.Run(p.Description, func(t *T) {
					t.KnownIssue(IssueInvalidData)
					t.AssertRejected(t.Post(r.schema.Path, p.Data))
				})
			}
		})
	})
}
