package models

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// AllSchemas lists every resource in the order the suite exercises them.
var AllSchemas = []*Schema{UserSchema, PostSchema, CommentSchema, AlbumSchema, PhotoSchema, TodoSchema}

// SchemaByName returns the schema with the given model name or collection path ("Post" or
// "/posts"), or nil.
func SchemaByName(name string) *Schema {
	for _, s := range AllSchemas {
		if s.Name == name || s.Path == name || s.Path == "/"+name {
			return s
		}
	}
	return nil
}

// Generators groups the fixture generators of every resource around one Faker, so that a single
// seed determines all generated data of a run.
type Generators struct {
	Users    UserGenerator
	Posts    PostGenerator
	Comments CommentGenerator
	Albums   AlbumGenerator
	Photos   PhotoGenerator
	Todos    TodoGenerator

	faker Faker
}

// NewGenerators creates the generators for all resources.
func NewGenerators(f Faker) Generators {
	return Generators{
		Users:    NewUserGenerator(f),
		Posts:    NewPostGenerator(f),
		Comments: NewCommentGenerator(f),
		Albums:   NewAlbumGenerator(f),
		Photos:   NewPhotoGenerator(f),
		Todos:    NewTodoGenerator(f),
		faker:    f,
	}
}

// Faker returns the underlying source of random data.
func (g Generators) Faker() Faker {
	return g.faker
}

// Generate returns a valid instance of any resource, with a random parent.
func (g Generators) Generate(schema *Schema) Entity {
	var none ldvalue.OptionalInt
	switch schema {
	case UserSchema:
		return g.Users.Generate().Entity
	case PostSchema:
		return g.Posts.Generate(none).Entity
	case CommentSchema:
		return g.Comments.Generate(none).Entity
	case AlbumSchema:
		return g.Albums.Generate(none).Entity
	case PhotoSchema:
		return g.Photos.Generate(none).Entity
	case TodoSchema:
		return g.Todos.Generate(none).Entity
	}
	return NewEntity(schema, nil)
}

// IDs returns the id generator of any resource.
func (g Generators) IDs(schema *Schema) IDSource {
	return idGenerator{schema: schema, faker: g.faker}
}

// PartialUpdate returns a PATCH payload for any resource.
func (g Generators) PartialUpdate(schema *Schema) ldvalue.Value {
	switch schema {
	case UserSchema:
		return g.Users.GeneratePartialUpdate()
	case PostSchema:
		return g.Posts.GeneratePartialUpdate()
	case CommentSchema:
		return g.Comments.GeneratePartialUpdate()
	case AlbumSchema:
		return g.Albums.GeneratePartialUpdate()
	case PhotoSchema:
		return g.Photos.GeneratePartialUpdate()
	case TodoSchema:
		return g.Todos.GeneratePartialUpdate()
	}
	return ldvalue.ObjectBuild().Build()
}

// SpecialCharacters returns the special-character fixture of any resource.
func (g Generators) SpecialCharacters(schema *Schema) Entity {
	switch schema {
	case UserSchema:
		return g.Users.GenerateWithSpecialCharacters().Entity
	case PostSchema:
		return g.Posts.GenerateWithSpecialCharacters().Entity
	case CommentSchema:
		return g.Comments.GenerateWithSpecialCharacters().Entity
	case AlbumSchema:
		return g.Albums.GenerateWithSpecialCharacters().Entity
	case PhotoSchema:
		return g.Photos.GenerateWithSpecialCharacters().Entity
	case TodoSchema:
		return g.Todos.GenerateWithSpecialCharacters().Entity
	}
	return NewEntity(schema, nil)
}

// LargePayload returns the oversized fixture of any resource.
func (g Generators) LargePayload(schema *Schema) Entity {
	switch schema {
	case UserSchema:
		return g.Users.GenerateLargePayload().Entity
	case PostSchema:
		return g.Posts.GenerateLargePayload().Entity
	case CommentSchema:
		return g.Comments.GenerateLargePayload().Entity
	case AlbumSchema:
		return g.Albums.GenerateLargePayload().Entity
	case PhotoSchema:
		return g.Photos.GenerateLargePayload().Entity
	case TodoSchema:
		return g.Todos.GenerateLargePayload().Entity
	}
	return NewEntity(schema, nil)
}
