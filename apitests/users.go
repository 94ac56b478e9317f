package apitests

import (
	"net/url"

	"github.com/fakeapi/rest-contract-tests/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoUserTests(t *T) {
	r := resourceFor(models.UserSchema)
	doResourceTests(t, r)

	t.Run("find by username", func(t *T) {
		id := t.Generators().IDs(r.schema).GenerateRandomID()
		user := models.User{Entity: t.requireEntity(t.Get(r.schema.ItemPath(id)), 200, r)}
		require.NotEmpty(t, user.Username())

		items := t.requireEntityList(t.Get(r.schema.Path+"?username="+url.QueryEscape(user.Username())), r)
		require.Len(t, items, 1)
		assert.Equal(t, id, t.requireID(items[0]))
	})

	t.Run("reject invalid email", func(t *T) {
		t.KnownIssue(IssueEmailFormat)
		t.AssertRejected(t.Post(r.schema.Path, t.Generators().Users.GenerateWithInvalidEmail()))
	})

	t.Run("fixtures", func(t *T) {
		users := t.Users()
		if len(users.ValidUsers) == 0 {
			t.Skip("no user fixtures loaded")
		}

		t.Run("create", func(t *T) {
			for _, u := range users.Users() {
				created := t.requireEntity(t.Post(r.schema.Path, u), 201, r)
				t.AssertEchoes(u.AsValue(), created)
			}
		})

		t.Run("update", func(t *T) {
			id := t.Generators().IDs(r.schema).GenerateRandomID()
			sent := users.Users()[0].WithID(id)
			updated := t.requireEntity(t.Put(r.schema.ItemPath(id), sent), 200, r)
			assert.Equal(t, id, t.requireID(updated))
			t.AssertEchoes(sent.AsValue(), updated)
		})

		t.Run("reject invalid", func(t *T) {
			for _, p := range users.InvalidUsers {
				p := p
				t.Run(p.Description, func(t *T) {
					t.KnownIssue(IssueInvalidData)
					t.AssertRejected(t.Post(r.schema.Path, p.Data))
				})
			}
		})
	})
}
