// Package validation implements the declarative rule engine used to decide whether a record
// returned by (or sent to) the service under test is semantically valid.
//
// A RuleSet is a static, ordered table of per-field rules. It is built once per entity type and
// is safe to share between any number of concurrently running scenarios, since validation is a
// pure function of the record's current field values.
package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Type is the expected JSON type of a field.
type Type string

const (
	TypeNumber  Type = "number"
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
)

// Matches reports whether the runtime JSON type of v corresponds to t. An empty Type matches
// anything.
func (t Type) Matches(v ldvalue.Value) bool {
	switch t {
	case "":
		return true
	case TypeNumber:
		return v.Type() == ldvalue.NumberType
	case TypeString:
		return v.Type() == ldvalue.StringType
	case TypeBoolean:
		return v.Type() == ldvalue.BoolType
	case TypeObject:
		return v.Type() == ldvalue.ObjectType
	default:
		return false
	}
}

// Predicate is a custom check on a field value. It returns an empty string if the value is
// acceptable, or otherwise the error message to report. Predicates are only called with
// non-null values, but may receive a value of any JSON type.
type Predicate func(value ldvalue.Value) string

// Rule describes the constraints on a single field.
type Rule struct {
	// Field is the JSON property name.
	Field string

	// Type, if set, is the JSON type the value must have.
	Type Type

	// Optional fields may be null or absent. Fields are required unless this is set.
	Optional bool

	// Min and Max are inclusive numeric bounds, checked only for TypeNumber fields.
	Min ldvalue.OptionalInt
	Max ldvalue.OptionalInt

	// MinLength and MaxLength are inclusive bounds on the number of characters, checked only
	// for TypeString fields.
	MinLength ldvalue.OptionalInt
	MaxLength ldvalue.OptionalInt

	// Pattern, if set, must match the value.
	Pattern *regexp.Regexp

	// Check is an optional custom predicate, called after all other checks.
	Check Predicate
}

// Record is anything that can supply field values. An absent field must be reported as a
// null value.
type Record interface {
	Get(field string) ldvalue.Value
}

// Result is the outcome of a single validation call.
type Result struct {
	Errors []string
}

// IsValid returns true if no rule was violated.
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// String returns a short human-readable summary.
func (r Result) String() string {
	if r.IsValid() {
		return "valid"
	}
	return fmt.Sprintf("invalid: %q", r.Errors)
}

// RuleSet is an immutable, ordered collection of rules keyed by field name.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet creates a RuleSet. Rules are evaluated in the order given, so that the sequence of
// errors in a Result is reproducible. It panics if two rules name the same field, since that is
// a programming error in a static table.
func NewRuleSet(rules ...Rule) RuleSet {
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if seen[r.Field] {
			panic(fmt.Sprintf("duplicate validation rule for field %q", r.Field))
		}
		seen[r.Field] = true
	}
	return RuleSet{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the rules in declaration order.
func (s RuleSet) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}

// Rule returns the rule for a field, if any.
func (s RuleSet) Rule(field string) (Rule, bool) {
	for _, r := range s.rules {
		if r.Field == field {
			return r, true
		}
	}
	return Rule{}, false
}

// Fields returns the names of all fields covered by the rule set, in declaration order.
func (s RuleSet) Fields() []string {
	ret := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		ret = append(ret, r.Field)
	}
	return ret
}

// Validate checks every rule against the record and accumulates all violations. It never
// stops early, except that a missing required field skips its own remaining checks.
func (s RuleSet) Validate(record Record) Result {
	var errs []string
	for _, rule := range s.rules {
		errs = rule.check(record.Get(rule.Field), errs)
	}
	return Result{Errors: errs}
}

func (r Rule) check(value ldvalue.Value, errs []string) []string {
	if !r.Optional && isMissing(value) {
		return append(errs, fmt.Sprintf("%s is required", r.Field))
	}
	if value.IsNull() {
		return errs
	}

	if !r.Type.Matches(value) {
		errs = append(errs, fmt.Sprintf("%s must be of type %s", r.Field, r.Type))
	}

	if r.Pattern != nil && !r.Pattern.MatchString(textOf(value)) {
		errs = append(errs, fmt.Sprintf("%s does not match required pattern", r.Field))
	}

	if r.Type == TypeString && value.Type() == ldvalue.StringType {
		length := utf8.RuneCountInString(value.StringValue())
		if n, ok := r.MinLength.Get(); ok && length < n {
			errs = append(errs, fmt.Sprintf("%s must be at least %d characters long", r.Field, n))
		}
		if n, ok := r.MaxLength.Get(); ok && length > n {
			errs = append(errs, fmt.Sprintf("%s must be no more than %d characters long", r.Field, n))
		}
	}

	if r.Type == TypeNumber && value.Type() == ldvalue.NumberType {
		number := value.Float64Value()
		if n, ok := r.Min.Get(); ok && number < float64(n) {
			errs = append(errs, fmt.Sprintf("%s must be at least %d", r.Field, n))
		}
		if n, ok := r.Max.Get(); ok && number > float64(n) {
			errs = append(errs, fmt.Sprintf("%s must be no more than %d", r.Field, n))
		}
	}

	if r.Check != nil {
		if message := r.Check(value); message != "" {
			errs = append(errs, message)
		}
	}
	return errs
}

// isMissing treats null, absent and the empty string as missing. Zero and false are present.
func isMissing(value ldvalue.Value) bool {
	return value.IsNull() || (value.Type() == ldvalue.StringType && value.StringValue() == "")
}

// textOf is the text a pattern is matched against: the string itself for strings, and the JSON
// representation for anything else.
func textOf(value ldvalue.Value) string {
	if value.Type() == ldvalue.StringType {
		return value.StringValue()
	}
	return value.JSONString()
}
