package models

import (
	"strings"
	"unicode/utf8"

	"github.com/fakeapi/rest-contract-tests/validation"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var idRule = validation.Rule{Field: "id", Type: validation.TypeNumber, Min: validation.Bound(1)}

func parentRule(field string, r Range) validation.Rule {
	return validation.Rule{
		Field: field,
		Type:  validation.TypeNumber,
		Min:   validation.Bound(r.Min),
		Max:   validation.Bound(r.Max),
	}
}

func textRule(field string, min, max int) validation.Rule {
	return validation.Rule{
		Field:     field,
		Type:      validation.TypeString,
		MinLength: validation.Bound(min),
		MaxLength: validation.Bound(max),
	}
}

// IDSource supplies id fixtures for one resource.
type IDSource interface {
	GenerateRandomID() int
	GenerateNonExistentID() int
	GenerateRandomParentID() int
}

// idGenerator is embedded in every model generator to supply id fixtures.
type idGenerator struct {
	schema *Schema
	faker  Faker
}

// GenerateRandomID returns an id within the range the service is known to have populated.
func (g idGenerator) GenerateRandomID() int {
	return g.schema.IDs.random(g.faker)
}

// GenerateNonExistentID returns an id the service is known not to have.
func (g idGenerator) GenerateNonExistentID() int {
	return g.schema.MissingIDs.random(g.faker)
}

// GenerateRandomParentID returns a valid foreign key value, or 0 for resources with no parent.
func (g idGenerator) GenerateRandomParentID() int {
	if g.schema.ParentField == "" {
		return 0
	}
	return g.schema.ParentRange.random(g.faker)
}

// parentOrRandom returns the supplied parent id, or a random valid one if it is undefined.
func (g idGenerator) parentOrRandom(parentID ldvalue.OptionalInt) int {
	if n, ok := parentID.Get(); ok && n != 0 {
		return n
	}
	return g.GenerateRandomParentID()
}

// fit trims or pads text so that its length in characters is within [min, max]. Generated text
// that would otherwise violate a length rule is made valid rather than discarded.
func fit(s string, min, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > max {
		s = strings.TrimSpace(string([]rune(s)[:max]))
	}
	if n := utf8.RuneCountInString(s); n < min {
		s += strings.Repeat(".", min-n)
	}
	return s
}
