package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestEveryRuleNamesADeclaredField(t *testing.T) {
	for _, s := range AllSchemas {
		t.Run(s.Name, func(t *testing.T) {
			for _, field := range s.Rules.Fields() {
				assert.Contains(t, s.Fields, field)
			}
			assert.Equal(t, "id", s.Fields[0])
			if s.ParentField != "" {
				assert.Contains(t, s.Fields, s.ParentField)
			}
			assert.False(t, s.IDs.Contains(s.MissingIDs.Min))
			assert.False(t, s.IDs.Contains(s.MissingIDs.Max))
		})
	}
}

func TestSchemaByName(t *testing.T) {
	assert.Equal(t, PostSchema, SchemaByName("Post"))
	assert.Equal(t, PostSchema, SchemaByName("/posts"))
	assert.Equal(t, PhotoSchema, SchemaByName("photos"))
	assert.Nil(t, SchemaByName("widgets"))
}

func TestItemPath(t *testing.T) {
	assert.Equal(t, "/posts/7", PostSchema.ItemPath(7))
	assert.Equal(t, "/users/abc", UserSchema.ItemPath("abc"))
}

func TestDecodeDropsUnknownFieldsAndKeepsNulls(t *testing.T) {
	e, err := Decode(PostSchema, []byte(`{"id":1,"userId":2,"title":null,"body":"x","extra":true}`))
	require.NoError(t, err)

	assert.True(t, e.Has("title"))
	assert.True(t, e.Get("title").IsNull())
	assert.False(t, e.Has("extra"))
	assert.JSONEq(t, `{"id":1,"userId":2,"title":null,"body":"x"}`, e.String())

	id, ok := e.ID()
	assert.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(PostSchema, []byte(`{"id":`))
	assert.Error(t, err)

	_, err = Decode(PostSchema, []byte(`[1,2]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a JSON object")

	_, err = DecodeList(PostSchema, []byte(`{}`))
	assert.Error(t, err)
}

func TestDecodeList(t *testing.T) {
	list, err := DecodeList(TodoSchema, []byte(`[{"id":1,"userId":1,"title":"abc","completed":false},"junk"]`))
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.True(t, list[0].Validate().IsValid())
	assert.False(t, list[1].Validate().IsValid())
}

func TestRoundTrip(t *testing.T) {
	g := NewGenerators(NewFaker(42))
	for _, s := range AllSchemas {
		original := g.Generate(s).WithID(3)
		data, err := json.Marshal(original)
		require.NoError(t, err)

		decoded, err := Decode(s, data)
		require.NoError(t, err)
		assert.True(t, original.AsValue().Equal(decoded.AsValue()), s.Name)
		assert.True(t, original.AsValue().Equal(FromValue(s, original.AsValue()).AsValue()), s.Name)
	}
}

func TestWithDoesNotModifyReceiver(t *testing.T) {
	p := NewPost(1, "a title", "a body long enough")
	changed := p.With("title", ldvalue.String("other"))
	ignored := p.With("nonsense", ldvalue.Int(1))
	removed := p.Without("body")

	assert.Equal(t, "a title", p.Title())
	assert.Equal(t, "other", changed.Title())
	assert.False(t, ignored.Has("nonsense"))
	assert.False(t, removed.Has("body"))
	assert.True(t, p.Has("body"))
}

func TestIDIsRequiredAndPositive(t *testing.T) {
	a := NewAlbum(1, "abc")
	assert.Equal(t, []string{"id is required"}, a.Validate().Errors)
	assert.Equal(t, []string{"id must be at least 1"}, a.WithID(0).Validate().Errors)
	assert.True(t, a.WithID(1).Validate().IsValid())

	_, ok := a.ID()
	assert.False(t, ok)
}

func TestPostBoundaries(t *testing.T) {
	p := NewPost(10, "abcde", "0123456789").WithID(1)
	assert.True(t, p.Validate().IsValid())

	assert.Equal(t, []string{"userId must be no more than 10"}, p.With("userId", ldvalue.Int(11)).Validate().Errors)
	assert.Equal(t, []string{"userId must be at least 1"}, p.With("userId", ldvalue.Int(0)).Validate().Errors)
	assert.Equal(t, []string{"title must be at least 5 characters long"},
		p.With("title", ldvalue.String("abcd")).Validate().Errors)
	assert.Equal(t, []string{"body must be at least 10 characters long"},
		p.With("body", ldvalue.String("short")).Validate().Errors)
}

func TestCommentWithInvalidEmail(t *testing.T) {
	c := NewComment(1, "Test User", "invalid-email", "Test comment body with sufficient length").WithID(1)
	result := c.Validate()
	assert.False(t, result.IsValid())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "email")
}

func TestTodoCompletedFalseIsValid(t *testing.T) {
	todo := NewTodo(1, "abc", false).WithID(1)
	assert.True(t, todo.Validate().IsValid())
	assert.False(t, todo.Completed())

	assert.Equal(t, []string{"completed must be of type boolean"},
		todo.With("completed", ldvalue.String("false")).Validate().Errors)
}

func TestPhotoURLs(t *testing.T) {
	p := NewPhoto(1, "abc", "http://example.com/a.png", "https://example.com/b.png").WithID(1)
	assert.True(t, p.Validate().IsValid())
	assert.Equal(t, []string{"url does not match required pattern"},
		p.With("url", ldvalue.String("ftp://example.com/a.png")).Validate().Errors)
}

func TestUserRules(t *testing.T) {
	valid := NewUser(UserFields{
		Name:     "Leanne Graham",
		Username: "Bret",
		Email:    "Sincere@april.biz",
		Address:  &Address{Street: "Kulas Light", City: "Gwenborough"},
	}).WithID(1)
	assert.True(t, valid.Validate().IsValid())

	t.Run("username pattern", func(t *testing.T) {
		assert.Equal(t, []string{"username does not match required pattern"},
			valid.With("username", ldvalue.String("bad name")).Validate().Errors)
	})

	t.Run("email without @", func(t *testing.T) {
		assert.Equal(t, []string{"email does not match required pattern", "Email must contain @ symbol"},
			valid.With("email", ldvalue.String("nope")).Validate().Errors)
	})

	t.Run("address", func(t *testing.T) {
		noCity := ldvalue.ObjectBuild().Set("street", ldvalue.String("x")).Build()
		assert.Equal(t, []string{"Address must have street and city"},
			valid.With("address", noCity).Validate().Errors)
		assert.Equal(t, []string{"address must be of type object", "Address must be an object"},
			valid.With("address", ldvalue.String("not an object")).Validate().Errors)
	})

	t.Run("optional fields", func(t *testing.T) {
		u := valid.With("phone", ldvalue.String("1-770-736-8031 x56442")).
			With("website", ldvalue.String("hildegard.org")).
			With("company", Company{Name: "Romaguera-Crona"}.AsValue())
		assert.True(t, u.Validate().IsValid())

		assert.Equal(t, []string{"Website must be a valid domain or URL"},
			u.With("website", ldvalue.String("nodots")).Validate().Errors)
		assert.Equal(t, []string{"Company must have a name"},
			u.With("company", ldvalue.ObjectBuild().Build()).Validate().Errors)
		assert.Len(t, u.With("phone", ldvalue.String("call me")).Validate().Errors, 1)
	})
}
