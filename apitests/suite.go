package apitests

import (
	"context"

	"github.com/fakeapi/rest-contract-tests/framework"
)

// RunTestSuite runs every scenario against the service that config.Client points to.
func RunTestSuite(
	ctx context.Context,
	config Config,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	env := &environment{ctx: ctx, config: config}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("users", DoUserTests)
		t.Run("posts", DoPostTests)
		t.Run("comments", DoCommentTests)
		t.Run("albums", DoAlbumTests)
		t.Run("photos", DoPhotoTests)
		t.Run("todos", DoTodoTests)
		t.Run("models", DoModelTests)
	})
}
