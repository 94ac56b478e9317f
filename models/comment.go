package models

import (
	"strings"

	"github.com/fakeapi/rest-contract-tests/validation"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// CommentSchema describes the /comments resource.
var CommentSchema = &Schema{
	Name:   "Comment",
	Path:   "/comments",
	Fields: []string{"id", "postId", "name", "email", "body"},
	Rules: validation.NewRuleSet(
		idRule,
		parentRule("postId", Range{1, 100}),
		textRule("name", 2, 100),
		validation.Rule{Field: "email", Type: validation.TypeString, Pattern: validation.EmailPattern},
		textRule("body", 10, 500),
	),
	ParentField: "postId",
	ParentRange: Range{1, 100},
	IDs:         Range{1, 500},
	MissingIDs:  Range{1000, 9999},
}

// Comment is a record of the /comments resource.
type Comment struct {
	Entity
}

// NewComment creates a comment with no id.
func NewComment(postID int, name, email, body string) Comment {
	return Comment{NewEntity(CommentSchema, map[string]ldvalue.Value{
		"postId": ldvalue.Int(postID),
		"name":   ldvalue.String(name),
		"email":  ldvalue.String(email),
		"body":   ldvalue.String(body),
	})}
}

// AsComment wraps a decoded JSON object as a comment.
func AsComment(v ldvalue.Value) Comment {
	return Comment{FromValue(CommentSchema, v)}
}

func (c Comment) PostID() int   { return c.Get("postId").IntValue() }
func (c Comment) Name() string  { return c.Get("name").StringValue() }
func (c Comment) Email() string { return c.Get("email").StringValue() }
func (c Comment) Body() string  { return c.Get("body").StringValue() }

// With returns a copy of the comment with one field overwritten.
func (c Comment) With(field string, value ldvalue.Value) Comment {
	return Comment{c.Entity.With(field, value)}
}

// WithID returns a copy of the comment with its id set.
func (c Comment) WithID(id int) Comment {
	return Comment{c.Entity.WithID(id)}
}

// CommentGenerator produces comment fixtures.
type CommentGenerator struct {
	idGenerator
}

// NewCommentGenerator creates a CommentGenerator using the given source of random data.
func NewCommentGenerator(f Faker) CommentGenerator {
	return CommentGenerator{idGenerator{schema: CommentSchema, faker: f}}
}

// Generate returns a valid comment with no id. If postID is undefined, a random valid post is
// chosen.
func (g CommentGenerator) Generate(postID ldvalue.OptionalInt) Comment {
	return NewComment(
		g.parentOrRandom(postID),
		fit(g.faker.Words(3), 2, 100),
		g.faker.Email(),
		fit(g.faker.Paragraph(), 10, 500),
	)
}

// GenerateMinimal returns a valid comment with a person's name and a single-sentence body.
func (g CommentGenerator) GenerateMinimal(postID ldvalue.OptionalInt) Comment {
	return NewComment(
		g.parentOrRandom(postID),
		fit(g.faker.FullName(), 2, 100),
		g.faker.Email(),
		fit(g.faker.Sentence(), 10, 500),
	)
}

// GenerateMultiple returns n valid comments on random posts.
func (g CommentGenerator) GenerateMultiple(n int) []Comment {
	ret := make([]Comment, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, g.Generate(ldvalue.OptionalInt{}))
	}
	return ret
}

// GeneratePartialUpdate returns a PATCH payload changing the name and body.
func (g CommentGenerator) GeneratePartialUpdate() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("name", ldvalue.String(fit(g.faker.FullName(), 2, 100))).
		Set("body", ldvalue.String(fit(g.faker.Paragraph(), 10, 500))).
		Build()
}

// GenerateWithInvalidEmail returns an otherwise valid comment whose email is not an address.
func (g CommentGenerator) GenerateWithInvalidEmail() Comment {
	return NewComment(1, "Test User", "invalid-email", "Test comment body with sufficient length")
}

// GenerateWithSpecialCharacters returns a comment with punctuation in its name and body.
func (g CommentGenerator) GenerateWithSpecialCharacters() Comment {
	return NewComment(1,
		"Comment with special chars: !@#$%^&*()",
		"test@example.com",
		"Test comment with special characters: !@#$%^&*()",
	)
}

// GenerateLargePayload returns a comment inflated to tens of thousands of characters.
func (g CommentGenerator) GenerateLargePayload() Comment {
	return NewComment(1,
		strings.Repeat("A", 10000),
		"test@"+strings.Repeat("b", 5000)+".com",
		strings.Repeat("C", 50000),
	)
}
