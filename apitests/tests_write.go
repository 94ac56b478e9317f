package apitests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The service never persists writes, so these scenarios only check what each write returns. A
// created record always gets the id after the last one the service has.

func doWriteTests(t *T, r *resource) {
	gens := t.Generators()
	ids := gens.IDs(r.schema)

	t.Run("create", func(t *T) {
		sent := gens.Generate(r.schema)
		created := t.requireEntity(t.Post(r.schema.Path, sent), 201, r)
		assert.Equal(t, r.schema.IDs.Max+1, t.requireID(created))
		t.AssertEchoes(sent.AsValue(), created)
	})

	t.Run("update existing", func(t *T) {
		id := ids.GenerateRandomID()
		sent := gens.Generate(r.schema).WithID(id)
		updated := t.requireEntity(t.Put(r.schema.ItemPath(id), sent), 200, r)
		assert.Equal(t, id, t.requireID(updated))
		t.AssertEchoes(sent.AsValue(), updated)
	})

	t.Run("update non-existent", func(t *T) {
		t.KnownIssue(IssueUpdateMissing)
		id := ids.GenerateNonExistentID()
		resp := t.Put(r.schema.ItemPath(id), gens.Generate(r.schema).WithID(id))
		assert.Equal(t, 404, resp.Status)
	})

	t.Run("partial update", func(t *T) {
		id := ids.GenerateRandomID()
		patch := gens.PartialUpdate(r.schema)
		updated := t.requireEntity(t.Patch(r.schema.ItemPath(id), patch), 200, r)
		assert.Equal(t, id, t.requireID(updated))
		t.AssertEchoes(patch, updated)
	})

	t.Run("delete existing", func(t *T) {
		resp := t.Delete(r.schema.ItemPath(ids.GenerateRandomID()))
		require.True(t, resp.Status >= 200 && resp.Status < 300, "delete failed: %s", resp)
		t.KnownIssue(IssueDeleteStatus)
		assert.Equal(t, 204, resp.Status)
	})

	t.Run("delete non-existent", func(t *T) {
		t.KnownIssue(IssueDeleteMissing)
		resp := t.Delete(r.schema.ItemPath(ids.GenerateNonExistentID()))
		assert.Equal(t, 404, resp.Status)
	})
}
