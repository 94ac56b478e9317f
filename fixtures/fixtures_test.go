package fixtures

import (
	"testing"
	"testing/fstest"

	"github.com/fakeapi/rest-contract-tests/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPostsAreValid(t *testing.T) {
	data, err := LoadPosts()
	require.NoError(t, err)
	require.NotEmpty(t, data.ValidPosts)

	for i, p := range data.Posts() {
		result := p.WithID(i + 1).Validate()
		assert.True(t, result.IsValid(), "validPosts[%d]: %s", i, result)
	}
	for _, v := range data.UpdateData {
		result := models.AsPost(v).Validate()
		assert.True(t, result.IsValid(), "%s: %s", v.JSONString(), result)
	}
	id, ok := data.Update().ID()
	assert.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestEmbeddedInvalidPostsAreInvalid(t *testing.T) {
	data, err := LoadPosts()
	require.NoError(t, err)
	require.NotEmpty(t, data.InvalidPosts)

	for _, p := range data.InvalidPosts {
		t.Run(p.Description, func(t *testing.T) {
			assert.NotEmpty(t, p.Description)
			assert.False(t, models.AsPost(p.Data).WithID(1).Validate().IsValid())
		})
	}
}

func TestEmbeddedUsers(t *testing.T) {
	data, err := LoadUsers()
	require.NoError(t, err)

	for i, u := range data.Users() {
		result := u.WithID(i + 1).Validate()
		assert.True(t, result.IsValid(), "validUsers[%d]: %s", i, result)
	}
	require.NotEmpty(t, data.InvalidUsers)
	for _, u := range data.InvalidUsers {
		t.Run(u.Description, func(t *testing.T) {
			assert.False(t, models.AsUser(u.Data).WithID(1).Validate().IsValid())
		})
	}
}

func TestLoadFromDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"posts.json": {Data: []byte(`{"validPosts":[{"userId":2,"title":"hello there","body":"a body of some length"}],
			"updateData":[{"id":3,"userId":2,"title":"hello again","body":"another body of some length"}]}`)},
		"users.json": {Data: []byte(`{"validUsers":[{"name":"Bo","username":"bob","email":"b@c.de","address":{"street":"s","city":"c"}}]}`)},
	}

	posts, err := LoadPostsFrom(fsys)
	require.NoError(t, err)
	assert.Len(t, posts.ValidPosts, 1)
	assert.Empty(t, posts.InvalidPosts)
	assert.Equal(t, 2, posts.Posts()[0].UserID())

	users, err := LoadUsersFrom(fsys)
	require.NoError(t, err)
	assert.Equal(t, "bob", users.Users()[0].Username())
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPostsFrom(fstest.MapFS{})
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := LoadUsersFrom(fstest.MapFS{"users.json": {Data: []byte(`{"validUsers":`)}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "users.json")
	})

	t.Run("no update data", func(t *testing.T) {
		_, err := LoadPostsFrom(fstest.MapFS{"posts.json": {Data: []byte(`{"validPosts":[]}`)}})
		assert.EqualError(t, err, "posts.json: updateData must not be empty")
	})

	t.Run("no valid users", func(t *testing.T) {
		_, err := LoadUsersFrom(fstest.MapFS{"users.json": {Data: []byte(`{}`)}})
		assert.EqualError(t, err, "users.json: validUsers must not be empty")
	})
}
