package models

import (
	"strings"

	"github.com/fakeapi/rest-contract-tests/validation"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// AlbumSchema describes the /albums resource.
var AlbumSchema = &Schema{
	Name:   "Album",
	Path:   "/albums",
	Fields: []string{"id", "userId", "title"},
	Rules: validation.NewRuleSet(
		idRule,
		parentRule("userId", Range{1, 10}),
		textRule("title", 3, 100),
	),
	ParentField: "userId",
	ParentRange: Range{1, 10},
	IDs:         Range{1, 100},
	MissingIDs:  Range{1000, 9999},
}

// Album is a record of the /albums resource.
type Album struct {
	Entity
}

// NewAlbum creates an album with no id.
func NewAlbum(userID int, title string) Album {
	return Album{NewEntity(AlbumSchema, map[string]ldvalue.Value{
		"userId": ldvalue.Int(userID),
		"title":  ldvalue.String(title),
	})}
}

// AsAlbum wraps a decoded JSON object as an album.
func AsAlbum(v ldvalue.Value) Album {
	return Album{FromValue(AlbumSchema, v)}
}

func (a Album) UserID() int   { return a.Get("userId").IntValue() }
func (a Album) Title() string { return a.Get("title").StringValue() }

// With returns a copy of the album with one field overwritten.
func (a Album) With(field string, value ldvalue.Value) Album {
	return Album{a.Entity.With(field, value)}
}

// WithID returns a copy of the album with its id set.
func (a Album) WithID(id int) Album {
	return Album{a.Entity.WithID(id)}
}

// AlbumGenerator produces album fixtures.
type AlbumGenerator struct {
	idGenerator
}

// NewAlbumGenerator creates an AlbumGenerator using the given source of random data.
func NewAlbumGenerator(f Faker) AlbumGenerator {
	return AlbumGenerator{idGenerator{schema: AlbumSchema, faker: f}}
}

// Generate returns a valid album with no id. If userID is undefined, a random valid user is
// chosen.
func (g AlbumGenerator) Generate(userID ldvalue.OptionalInt) Album {
	return NewAlbum(g.parentOrRandom(userID), fit(g.faker.Words(3), 3, 100))
}

// GenerateMultiple returns n valid albums for random users.
func (g AlbumGenerator) GenerateMultiple(n int) []Album {
	ret := make([]Album, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, g.Generate(ldvalue.OptionalInt{}))
	}
	return ret
}

// GeneratePartialUpdate returns a PATCH payload changing the title.
func (g AlbumGenerator) GeneratePartialUpdate() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("title", ldvalue.String(fit(g.faker.Words(2), 3, 100))).
		Build()
}

// GenerateWithSpecialCharacters returns an album with punctuation in its title.
func (g AlbumGenerator) GenerateWithSpecialCharacters() Album {
	return NewAlbum(1, "Album with special chars: !@#$%^&*()")
}

// GenerateLargePayload returns an album with a 10,000 character title.
func (g AlbumGenerator) GenerateLargePayload() Album {
	return NewAlbum(1, strings.Repeat("A", 10000))
}
