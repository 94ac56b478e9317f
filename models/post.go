package models

import (
	"strings"

	"github.com/fakeapi/rest-contract-tests/validation"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// PostSchema describes the /posts resource.
var PostSchema = &Schema{
	Name:   "Post",
	Path:   "/posts",
	Fields: []string{"id", "userId", "title", "body"},
	Rules: validation.NewRuleSet(
		idRule,
		parentRule("userId", Range{1, 10}),
		textRule("title", 5, 200),
		textRule("body", 10, 1000),
	),
	ParentField: "userId",
	ParentRange: Range{1, 10},
	IDs:         Range{1, 100},
	MissingIDs:  Range{1000, 9999},
}

// Post is a record of the /posts resource.
type Post struct {
	Entity
}

// NewPost creates a post with no id.
func NewPost(userID int, title, body string) Post {
	return Post{NewEntity(PostSchema, map[string]ldvalue.Value{
		"userId": ldvalue.Int(userID),
		"title":  ldvalue.String(title),
		"body":   ldvalue.String(body),
	})}
}

// AsPost wraps a decoded JSON object as a post.
func AsPost(v ldvalue.Value) Post {
	return Post{FromValue(PostSchema, v)}
}

func (p Post) UserID() int   { return p.Get("userId").IntValue() }
func (p Post) Title() string { return p.Get("title").StringValue() }
func (p Post) Body() string  { return p.Get("body").StringValue() }

// With returns a copy of the post with one field overwritten.
func (p Post) With(field string, value ldvalue.Value) Post {
	return Post{p.Entity.With(field, value)}
}

// WithID returns a copy of the post with its id set.
func (p Post) WithID(id int) Post {
	return Post{p.Entity.WithID(id)}
}

// PostGenerator produces post fixtures.
type PostGenerator struct {
	idGenerator
}

// NewPostGenerator creates a PostGenerator using the given source of random data.
func NewPostGenerator(f Faker) PostGenerator {
	return PostGenerator{idGenerator{schema: PostSchema, faker: f}}
}

// Generate returns a valid post with no id. If userID is undefined, a random valid user is
// chosen.
func (g PostGenerator) Generate(userID ldvalue.OptionalInt) Post {
	return NewPost(
		g.parentOrRandom(userID),
		fit(g.faker.Sentence(), 5, 200),
		fit(g.faker.Paragraph()+"\n\n"+g.faker.Paragraph(), 10, 1000),
	)
}

// GenerateMultiple returns n valid posts for random users.
func (g PostGenerator) GenerateMultiple(n int) []Post {
	ret := make([]Post, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, g.Generate(ldvalue.OptionalInt{}))
	}
	return ret
}

// GeneratePartialUpdate returns a PATCH payload changing the title and body.
func (g PostGenerator) GeneratePartialUpdate() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("title", ldvalue.String(fit(g.faker.Sentence(), 5, 200))).
		Set("body", ldvalue.String(fit(g.faker.Paragraph(), 10, 1000))).
		Build()
}

// GenerateWithSpecialCharacters returns a post with emoji, accented letters, HTML markup and
// symbols.
func (g PostGenerator) GenerateWithSpecialCharacters() Post {
	return NewPost(1,
		"🚀 Test with émojis & spëcial çhars",
		`Body with special chars: <script>alert("test")</script> & symbols: ©®™`,
	)
}

// GenerateLargePayload returns a post with a 10,000 character title and a 50,000 character body.
func (g PostGenerator) GenerateLargePayload() Post {
	return NewPost(1, strings.Repeat("A", 10000), strings.Repeat("B", 50000))
}
