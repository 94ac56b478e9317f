package apitests

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doResourceTests runs the scenarios every resource shares.
func doResourceTests(t *T, r *resource) {
	t.Run("read", func(t *T) { doReadTests(t, r) })
	t.Run("write", func(t *T) { doWriteTests(t, r) })
	t.Run("edge cases", func(t *T) { doEdgeCaseTests(t, r) })
}

func doReadTests(t *T, r *resource) {
	ids := t.Generators().IDs(r.schema)

	t.Run("retrieve all", func(t *T) {
		items := t.requireEntityList(t.Get(r.schema.Path), r)
		assert.Len(t, items, r.schema.IDs.Max)
	})

	t.Run("retrieve by id", func(t *T) {
		id := ids.GenerateRandomID()
		e := t.requireEntity(t.Get(r.schema.ItemPath(id)), 200, r)
		assert.Equal(t, id, t.requireID(e))
	})

	if r.schema.ParentField != "" {
		t.Run("filter by "+r.schema.ParentField, func(t *T) {
			parentID := ids.GenerateRandomParentID()
			path := fmt.Sprintf("%s?%s=%d", r.schema.Path, r.schema.ParentField, parentID)
			items := t.requireEntityList(t.Get(path), r)
			require.NotEmpty(t, items, "no %s records for %s %d", r.name(), r.schema.ParentField, parentID)
			for _, e := range items {
				assert.Equal(t, parentID, e.Get(r.schema.ParentField).IntValue(), "%s", e)
			}
		})
	}

	for _, child := range childrenOf(r.schema) {
		child := child
		t.Run("nested "+child.name(), func(t *T) {
			id := ids.GenerateRandomID()
			items := t.requireEntityList(t.Get(r.schema.ItemPath(id)+child.schema.Path), child)
			require.NotEmpty(t, items, "%s %d has no %s", strings.ToLower(r.schema.Name), id, child.name())
			for _, e := range items {
				assert.Equal(t, id, e.Get(child.schema.ParentField).IntValue(), "%s", e)
			}
		})
	}

	t.Run("non-existent id", func(t *T) {
		resp := t.Get(r.schema.ItemPath(ids.GenerateNonExistentID()))
		assert.Equal(t, 404, resp.Status)
	})

	t.Run("invalid id format", func(t *T) {
		t.KnownIssue(IssueInvalidID)
		resp := t.Get(r.schema.ItemPath("invalid-id"))
		assert.Equal(t, 400, resp.Status)
	})
}
