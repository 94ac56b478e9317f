package apitests

import (
	"fmt"

	"github.com/fakeapi/rest-contract-tests/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoTodoTests(t *T) {
	r := resourceFor(models.TodoSchema)
	doResourceTests(t, r)

	t.Run("filter by completed", func(t *T) {
		for _, completed := range []bool{true, false} {
			items := t.requireEntityList(t.Get(fmt.Sprintf("%s?completed=%t", r.schema.Path, completed)), r)
			require.NotEmpty(t, items, "no todos with completed=%t", completed)
			for _, e := range items {
				assert.Equal(t, completed, models.Todo{Entity: e}.Completed(), "%s", e)
			}
		}
	})

	t.Run("completed values", func(t *T) {
		for _, v := range models.BooleanVariations {
			v := v
			t.Run(v.JSONString(), func(t *T) {
				sent := t.Generators().Todos.Generate(ldvalue.OptionalInt{}).With("completed", v)
				if v.Type() == ldvalue.BoolType {
					created := t.requireEntity(t.Post(r.schema.Path, sent), 201, r)
					assert.Equal(t, v.BoolValue(), models.Todo{Entity: created}.Completed())
					return
				}
				t.KnownIssue(IssueInvalidData)
				t.AssertRejected(t.Post(r.schema.Path, sent))
			})
		}
	})
}
