// Package schemas checks the structure of response bodies against JSON schemas.
//
// This is a structural check only: property names, JSON types, required properties, and no
// unexpected properties. It is complementary to the semantic rules in the validation package,
// which know about value ranges and formats.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed definitions/*.json
var definitions embed.FS

// Schema is a compiled JSON schema.
type Schema struct {
	name     string
	raw      json.RawMessage
	compiled *gojsonschema.Schema
}

// Result is the outcome of a structural check.
type Result struct {
	Valid  bool
	Errors []string
}

func (r Result) String() string {
	if r.Valid {
		return "valid"
	}
	return "invalid: " + strings.Join(r.Errors, "; ")
}

var (
	Post    = mustLoad("post")
	User    = mustLoad("user")
	Comment = mustLoad("comment")
	Album   = mustLoad("album")
	Photo   = mustLoad("photo")
	Todo    = mustLoad("todo")
	Error   = mustLoad("error")
)

var byName = map[string]*Schema{
	"Post":    Post,
	"User":    User,
	"Comment": Comment,
	"Album":   Album,
	"Photo":   Photo,
	"Todo":    Todo,
}

// ForModel returns the schema for a model name such as "Post", or nil.
func ForModel(name string) *Schema {
	return byName[name]
}

func mustLoad(name string) *Schema {
	data, err := definitions.ReadFile("definitions/" + name + ".json")
	if err != nil {
		panic(err)
	}
	s, err := compile(name, data)
	if err != nil {
		panic(err)
	}
	return s
}

func compile(name string, data []byte) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}
	return &Schema{name: name, raw: data, compiled: compiled}, nil
}

// Name returns the schema's name, such as "post" or "[]post".
func (s *Schema) Name() string {
	return s.name
}

// ArrayOf returns a schema matching a JSON array whose every element matches s.
func ArrayOf(s *Schema) *Schema {
	data, err := json.Marshal(map[string]interface{}{
		"type":  "array",
		"items": s.raw,
	})
	if err != nil {
		panic(err)
	}
	ret, err := compile("[]"+s.name, data)
	if err != nil {
		panic(err)
	}
	return ret
}

// Validate checks a JSON document. A document that cannot be parsed is reported as invalid
// rather than as an error.
func (s *Schema) Validate(document []byte) Result {
	result, err := s.compiled.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("document could not be checked against %s: %s", s.name, err)}}
	}
	if result.Valid() {
		return Result{Valid: true}
	}
	ret := Result{}
	for _, e := range result.Errors() {
		ret.Errors = append(ret.Errors, e.String())
	}
	return ret
}

// ValidateValue checks any value that can be encoded as JSON, such as an ldvalue.Value.
func (s *Schema) ValidateValue(value interface{}) Result {
	data, err := json.Marshal(value)
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("value could not be encoded: %s", err)}}
	}
	return s.Validate(data)
}
