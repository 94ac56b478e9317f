package models

import (
	"fmt"
	"strings"

	"github.com/fakeapi/rest-contract-tests/validation"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// PhotoSchema describes the /photos resource.
var PhotoSchema = &Schema{
	Name:   "Photo",
	Path:   "/photos",
	Fields: []string{"id", "albumId", "title", "url", "thumbnailUrl"},
	Rules: validation.NewRuleSet(
		idRule,
		parentRule("albumId", Range{1, 100}),
		textRule("title", 3, 100),
		validation.Rule{Field: "url", Type: validation.TypeString, Pattern: validation.URLPattern},
		validation.Rule{Field: "thumbnailUrl", Type: validation.TypeString, Pattern: validation.URLPattern},
	),
	ParentField: "albumId",
	ParentRange: Range{1, 100},
	IDs:         Range{1, 5000},
	MissingIDs:  Range{10000, 99999},
}

const placeholderImageBase = "https://via.placeholder.com"

// Photo is a record of the /photos resource.
type Photo struct {
	Entity
}

// NewPhoto creates a photo with no id.
func NewPhoto(albumID int, title, url, thumbnailURL string) Photo {
	return Photo{NewEntity(PhotoSchema, map[string]ldvalue.Value{
		"albumId":      ldvalue.Int(albumID),
		"title":        ldvalue.String(title),
		"url":          ldvalue.String(url),
		"thumbnailUrl": ldvalue.String(thumbnailURL),
	})}
}

// AsPhoto wraps a decoded JSON object as a photo.
func AsPhoto(v ldvalue.Value) Photo {
	return Photo{FromValue(PhotoSchema, v)}
}

func (p Photo) AlbumID() int         { return p.Get("albumId").IntValue() }
func (p Photo) Title() string        { return p.Get("title").StringValue() }
func (p Photo) URL() string          { return p.Get("url").StringValue() }
func (p Photo) ThumbnailURL() string { return p.Get("thumbnailUrl").StringValue() }

// With returns a copy of the photo with one field overwritten.
func (p Photo) With(field string, value ldvalue.Value) Photo {
	return Photo{p.Entity.With(field, value)}
}

// WithID returns a copy of the photo with its id set.
func (p Photo) WithID(id int) Photo {
	return Photo{p.Entity.WithID(id)}
}

// PhotoGenerator produces photo fixtures.
type PhotoGenerator struct {
	idGenerator
}

// NewPhotoGenerator creates a PhotoGenerator using the given source of random data.
func NewPhotoGenerator(f Faker) PhotoGenerator {
	return PhotoGenerator{idGenerator{schema: PhotoSchema, faker: f}}
}

// Generate returns a valid photo with no id, pointing at placeholder images. If albumID is
// undefined, a random valid album is chosen.
func (g PhotoGenerator) Generate(albumID ldvalue.OptionalInt) Photo {
	image := g.faker.Int(1000, 9999)
	return NewPhoto(
		g.parentOrRandom(albumID),
		fit(g.faker.Words(3), 3, 100),
		fmt.Sprintf("%s/600/%d", placeholderImageBase, image),
		fmt.Sprintf("%s/150/%d", placeholderImageBase, image),
	)
}

// GenerateMultiple returns n valid photos in random albums.
func (g PhotoGenerator) GenerateMultiple(n int) []Photo {
	ret := make([]Photo, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, g.Generate(ldvalue.OptionalInt{}))
	}
	return ret
}

// GeneratePartialUpdate returns a PATCH payload changing the title and url.
func (g PhotoGenerator) GeneratePartialUpdate() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("title", ldvalue.String(fit(g.faker.Words(2), 3, 100))).
		Set("url", ldvalue.String(fmt.Sprintf("%s/600/%d", placeholderImageBase, g.faker.Int(1000, 9999)))).
		Build()
}

// GenerateWithSpecialCharacters returns a photo with punctuation in its title.
func (g PhotoGenerator) GenerateWithSpecialCharacters() Photo {
	return NewPhoto(1,
		"Photo with special chars: !@#$%^&*()",
		"https://example.com/photo.jpg",
		"https://example.com/thumb.jpg",
	)
}

// GenerateLargePayload returns a photo with a 10,000 character title and 5,000 character urls.
func (g PhotoGenerator) GenerateLargePayload() Photo {
	return NewPhoto(1,
		strings.Repeat("A", 10000),
		"https://example.com/"+strings.Repeat("b", 5000)+".jpg",
		"https://example.com/"+strings.Repeat("c", 5000)+".jpg",
	)
}

// GenerateWithInvalidURLs returns three photos that are valid except for one url each: a bare
// word, a bad thumbnail, and a non-HTTP scheme.
func (g PhotoGenerator) GenerateWithInvalidURLs() []Photo {
	return []Photo{
		NewPhoto(1, "Test Photo", "not-a-url", "https://example.com/thumb.jpg"),
		NewPhoto(1, "Test Photo", "https://example.com/photo.jpg", "not-a-url"),
		NewPhoto(1, "Test Photo", "ftp://example.com/photo.jpg", "https://example.com/thumb.jpg"),
	}
}
