// Package models contains the six resource models of the service under test (users, posts,
// comments, albums, photos and todos), their validation rule tables, and generators for valid,
// boundary and deliberately malformed fixtures.
//
// Every model is an Entity underneath: an immutable set of JSON field values restricted to the
// fields its Schema declares. Field values are kept as ldvalue.Value rather than Go primitives,
// so that a response with a wrongly-typed or missing property can still be decoded and then
// reported by the rule engine instead of failing at the JSON layer.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/fakeapi/rest-contract-tests/validation"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Range is an inclusive integer range.
type Range struct {
	Min int
	Max int
}

// Contains reports whether n is in the range.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

func (r Range) random(f Faker) int {
	return f.Int(r.Min, r.Max)
}

// Schema describes one REST resource.
type Schema struct {
	// Name is the model name used in log output, such as "Post".
	Name string

	// Path is the collection path on the service, such as "/posts".
	Path string

	// Fields lists every JSON property of the resource in declaration order. Properties outside
	// this list are dropped when decoding.
	Fields []string

	// Rules is the semantic contract a valid instance satisfies.
	Rules validation.RuleSet

	// ParentField is the foreign key field, such as "userId", or "" for top-level resources.
	ParentField string

	// ParentRange is the range of valid parent ids.
	ParentRange Range

	// IDs is the range of ids the service is known to have populated.
	IDs Range

	// MissingIDs is a range of ids the service is known not to have.
	MissingIDs Range
}

// ItemPath returns the path of a single item in the collection.
func (s *Schema) ItemPath(id interface{}) string {
	return fmt.Sprintf("%s/%v", s.Path, id)
}

// HasField reports whether field is one of the resource's declared properties.
func (s *Schema) HasField(field string) bool {
	for _, f := range s.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Entity is a record of one resource. The zero value is not usable; create entities with
// NewEntity, Decode, FromValue, or one of the typed model constructors.
type Entity struct {
	schema *Schema
	values map[string]ldvalue.Value
}

// NewEntity creates an entity from field values. Fields that are not part of the schema are
// ignored; fields that are omitted remain absent.
func NewEntity(schema *Schema, values map[string]ldvalue.Value) Entity {
	e := Entity{schema: schema, values: make(map[string]ldvalue.Value, len(schema.Fields))}
	for k, v := range values {
		if schema.HasField(k) {
			e.values[k] = v
		}
	}
	return e
}

// FromValue creates an entity from a JSON object. A value that is not an object produces an
// entity with no fields, which will fail validation on every required field.
func FromValue(schema *Schema, v ldvalue.Value) Entity {
	values := make(map[string]ldvalue.Value)
	if v.Type() == ldvalue.ObjectType {
		for _, k := range v.Keys() {
			values[k] = v.GetByKey(k)
		}
	}
	return NewEntity(schema, values)
}

// Decode parses a JSON document into an entity.
func Decode(schema *Schema, data []byte) (Entity, error) {
	var v ldvalue.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return Entity{}, fmt.Errorf("decoding %s: %w", schema.Name, err)
	}
	if v.Type() != ldvalue.ObjectType {
		return Entity{}, fmt.Errorf("decoding %s: expected a JSON object but got %s", schema.Name, v.Type())
	}
	return FromValue(schema, v), nil
}

// DecodeList parses a JSON array of objects into entities.
func DecodeList(schema *Schema, data []byte) ([]Entity, error) {
	var v ldvalue.Value
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding %s list: %w", schema.Name, err)
	}
	return FromList(schema, v)
}

// FromList converts a JSON array value into entities.
func FromList(schema *Schema, v ldvalue.Value) ([]Entity, error) {
	if v.Type() != ldvalue.ArrayType {
		return nil, fmt.Errorf("decoding %s list: expected a JSON array but got %s", schema.Name, v.Type())
	}
	ret := make([]Entity, 0, v.Count())
	for i := 0; i < v.Count(); i++ {
		ret = append(ret, FromValue(schema, v.GetByIndex(i)))
	}
	return ret, nil
}

// Schema returns the entity's schema.
func (e Entity) Schema() *Schema {
	return e.schema
}

// Get returns a field value, or a null value if the field is absent.
func (e Entity) Get(field string) ldvalue.Value {
	return e.values[field]
}

// Has reports whether a field is present, even if its value is null.
func (e Entity) Has(field string) bool {
	_, ok := e.values[field]
	return ok
}

// With returns a copy of the entity with one field overwritten. This is the only way to change
// an entity; the receiver is never modified. Fields outside the schema are ignored.
func (e Entity) With(field string, value ldvalue.Value) Entity {
	ret := e.clone()
	if e.schema.HasField(field) {
		ret.values[field] = value
	}
	return ret
}

// Without returns a copy of the entity with a field removed.
func (e Entity) Without(field string) Entity {
	ret := e.clone()
	delete(ret.values, field)
	return ret
}

// ID returns the entity's id, if it has a numeric one.
func (e Entity) ID() (int, bool) {
	v := e.values["id"]
	if v.Type() != ldvalue.NumberType {
		return 0, false
	}
	return v.IntValue(), true
}

// WithID is shorthand for With("id", ldvalue.Int(id)).
func (e Entity) WithID(id int) Entity {
	return e.With("id", ldvalue.Int(id))
}

// Validate checks the entity against its schema's rule set.
func (e Entity) Validate() validation.Result {
	return e.schema.Rules.Validate(e)
}

// AsValue returns the entity as a JSON object containing only the fields that are present.
func (e Entity) AsValue() ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for _, f := range e.schema.Fields {
		if v, ok := e.values[f]; ok {
			b.Set(f, v)
		}
	}
	return b.Build()
}

// MarshalJSON encodes the entity as a JSON object.
func (e Entity) MarshalJSON() ([]byte, error) {
	return e.AsValue().MarshalJSON()
}

// String returns the JSON representation, for debug logging.
func (e Entity) String() string {
	return e.AsValue().JSONString()
}

func (e Entity) clone() Entity {
	values := make(map[string]ldvalue.Value, len(e.values)+1)
	for k, v := range e.values {
		values[k] = v
	}
	return Entity{schema: e.schema, values: values}
}

func optionalText(b ldvalue.ObjectBuilder, key, value string) {
	if value != "" {
		b.Set(key, ldvalue.String(value))
	}
}
