package validation

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var (
	// EmailPattern accepts "local@domain.tld" with no whitespace and a single @.
	EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// URLPattern accepts absolute http and https URLs.
	URLPattern = regexp.MustCompile(`^https?://.+`)
)

// Bound is shorthand for a defined ldvalue.OptionalInt, for use in rule tables.
func Bound(n int) ldvalue.OptionalInt {
	return ldvalue.NewOptionalInt(n)
}

// RequireSubstring returns a predicate that fails with message if a string value does not
// contain substr. Non-string values are left to the type check.
func RequireSubstring(substr, message string) Predicate {
	return func(value ldvalue.Value) string {
		if value.Type() == ldvalue.StringType && !strings.Contains(value.StringValue(), substr) {
			return message
		}
		return ""
	}
}

// MatchText returns a predicate that fails with message if a non-empty string value does not
// match pattern.
func MatchText(pattern *regexp.Regexp, message string) Predicate {
	return func(value ldvalue.Value) string {
		if value.Type() != ldvalue.StringType || value.StringValue() == "" {
			return ""
		}
		if !pattern.MatchString(value.StringValue()) {
			return message
		}
		return ""
	}
}

// ObjectWithKeys returns a predicate requiring an object with a truthy value for every key.
// The message for a non-object is "<Label> must be an object"; a missing key produces
// "<Label> must have <k1> and <k2>".
func ObjectWithKeys(label string, keys ...string) Predicate {
	missing := fmt.Sprintf("%s must have %s", label, strings.Join(keys, " and "))
	return func(value ldvalue.Value) string {
		if value.Type() != ldvalue.ObjectType {
			return label + " must be an object"
		}
		for _, k := range keys {
			if !truthy(value.GetByKey(k)) {
				return missing
			}
		}
		return ""
	}
}

// ObjectWithStringKey returns a predicate requiring that an object value has a non-empty string
// property named key.
func ObjectWithStringKey(key, message string) Predicate {
	return func(value ldvalue.Value) string {
		v := value.GetByKey(key)
		if v.Type() != ldvalue.StringType || v.StringValue() == "" {
			return message
		}
		return ""
	}
}

// truthy mirrors the loose truthiness that a JSON client would apply: null, false, zero and the
// empty string are all falsy.
func truthy(v ldvalue.Value) bool {
	switch v.Type() {
	case ldvalue.NullType:
		return false
	case ldvalue.BoolType:
		return v.BoolValue()
	case ldvalue.NumberType:
		return v.Float64Value() != 0
	case ldvalue.StringType:
		return v.StringValue() != ""
	default:
		return true
	}
}
