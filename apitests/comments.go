package apitests

import (
	"github.com/fakeapi/rest-contract-tests/models"
	"github.com/fakeapi/rest-contract-tests/validation"

	"github.com/stretchr/testify/assert"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoCommentTests(t *T) {
	r := resourceFor(models.CommentSchema)
	doResourceTests(t, r)

	t.Run("email addresses are well formed", func(t *T) {
		for _, e := range t.requireEntityList(t.Get(r.schema.Path), r) {
			c := models.Comment{Entity: e}
			assert.Regexp(t, validation.EmailPattern, c.Email(), "%s", c)
		}
	})

	t.Run("create minimal", func(t *T) {
		sent := t.Generators().Comments.GenerateMinimal(ldvalue.OptionalInt{})
		created := t.requireEntity(t.Post(r.schema.Path, sent), 201, r)
		t.AssertEchoes(sent.AsValue(), created)
	})

	t.Run("reject invalid email", func(t *T) {
		t.Run("not an address", func(t *T) {
			t.KnownIssue(IssueEmailFormat)
			t.AssertRejected(t.Post(r.schema.Path, t.Generators().Comments.GenerateWithInvalidEmail()))
		})
		for _, email := range models.InvalidEmails {
			email := email
			t.Run(email, func(t *T) {
				t.KnownIssue(IssueEmailFormat)
				sent := t.Generators().Comments.Generate(ldvalue.OptionalInt{}).With("email", ldvalue.String(email))
				t.AssertRejected(t.Post(r.schema.Path, sent))
			})
		}
	})
}
