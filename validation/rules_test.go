package validation

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type fakeRecord map[string]ldvalue.Value

func (r fakeRecord) Get(field string) ldvalue.Value {
	return r[field] // zero Value is null
}

var testRules = NewRuleSet(
	Rule{Field: "id", Type: TypeNumber, Min: Bound(1)},
	Rule{Field: "userId", Type: TypeNumber, Min: Bound(1), Max: Bound(10)},
	Rule{Field: "title", Type: TypeString, MinLength: Bound(5), MaxLength: Bound(200)},
	Rule{Field: "done", Type: TypeBoolean},
	Rule{Field: "note", Type: TypeString, Optional: true},
)

func validRecord() fakeRecord {
	return fakeRecord{
		"id":     ldvalue.Int(1),
		"userId": ldvalue.Int(10),
		"title":  ldvalue.String("hello"),
		"done":   ldvalue.Bool(false),
	}
}

func TestValidRecordHasNoErrors(t *testing.T) {
	result := testRules.Validate(validRecord())
	assert.True(t, result.IsValid())
	assert.Empty(t, result.Errors)
	assert.Equal(t, "valid", result.String())
}

func TestMissingRequiredFields(t *testing.T) {
	for _, missing := range []ldvalue.Value{ldvalue.Null(), ldvalue.String("")} {
		r := validRecord()
		r["title"] = missing
		result := testRules.Validate(r)
		assert.False(t, result.IsValid())
		assert.Equal(t, []string{"title is required"}, result.Errors)
	}

	r := validRecord()
	delete(r, "userId")
	assert.Equal(t, []string{"userId is required"}, testRules.Validate(r).Errors)
}

func TestZeroAndFalseAreNotMissing(t *testing.T) {
	r := validRecord()
	r["done"] = ldvalue.Bool(false)
	r["id"] = ldvalue.Int(0)
	result := testRules.Validate(r)
	assert.Equal(t, []string{"id must be at least 1"}, result.Errors)
}

func TestStringLengthBounds(t *testing.T) {
	r := validRecord()
	r["title"] = ldvalue.String("abcd")
	assert.Equal(t, []string{"title must be at least 5 characters long"}, testRules.Validate(r).Errors)

	r["title"] = ldvalue.String("abcde")
	assert.True(t, testRules.Validate(r).IsValid())

	long := make([]rune, 201)
	for i := range long {
		long[i] = 'x'
	}
	r["title"] = ldvalue.String(string(long))
	assert.Equal(t, []string{"title must be no more than 200 characters long"}, testRules.Validate(r).Errors)
}

func TestStringLengthCountsCharactersNotBytes(t *testing.T) {
	r := validRecord()
	r["title"] = ldvalue.String("ééééé")
	assert.True(t, testRules.Validate(r).IsValid())
}

func TestNumericBounds(t *testing.T) {
	r := validRecord()
	r["userId"] = ldvalue.Int(10)
	assert.True(t, testRules.Validate(r).IsValid())

	r["userId"] = ldvalue.Int(11)
	assert.Equal(t, []string{"userId must be no more than 10"}, testRules.Validate(r).Errors)

	r["userId"] = ldvalue.Float64(0.5)
	assert.Equal(t, []string{"userId must be at least 1"}, testRules.Validate(r).Errors)
}

func TestTypeMismatch(t *testing.T) {
	r := validRecord()
	r["userId"] = ldvalue.String("invalid")
	r["title"] = ldvalue.Int(123)
	r["done"] = ldvalue.String("not-a-boolean")
	result := testRules.Validate(r)
	assert.Equal(t, []string{
		"userId must be of type number",
		"title must be of type string",
		"done must be of type boolean",
	}, result.Errors)
}

func TestErrorsAccumulateInDeclarationOrder(t *testing.T) {
	result := testRules.Validate(fakeRecord{})
	assert.Equal(t, []string{
		"id is required",
		"userId is required",
		"title is required",
		"done is required",
	}, result.Errors)
}

func TestOptionalFieldMayBeAbsent(t *testing.T) {
	r := validRecord()
	r["note"] = ldvalue.Null()
	assert.True(t, testRules.Validate(r).IsValid())

	r["note"] = ldvalue.Int(3)
	assert.Equal(t, []string{"note must be of type string"}, testRules.Validate(r).Errors)
}

func TestPatternAndPredicate(t *testing.T) {
	rules := NewRuleSet(
		Rule{
			Field:   "email",
			Type:    TypeString,
			Pattern: EmailPattern,
			Check:   RequireSubstring("@", "Email must contain @ symbol"),
		},
	)
	assert.True(t, rules.Validate(fakeRecord{"email": ldvalue.String("a@b.co")}).IsValid())
	assert.Equal(t,
		[]string{"email does not match required pattern", "Email must contain @ symbol"},
		rules.Validate(fakeRecord{"email": ldvalue.String("invalid-email")}).Errors)
	assert.Equal(t,
		[]string{"email must be of type string", "email does not match required pattern"},
		rules.Validate(fakeRecord{"email": ldvalue.Int(456)}).Errors)
}

func TestEmailPattern(t *testing.T) {
	assert.True(t, EmailPattern.MatchString("a@b.co"))
	assert.False(t, EmailPattern.MatchString("missing@domain"))
	assert.False(t, EmailPattern.MatchString("@nodomain.com"))
	assert.False(t, EmailPattern.MatchString("spaces in@email.com"))
}

func TestURLPattern(t *testing.T) {
	assert.True(t, URLPattern.MatchString("https://example.com/x"))
	assert.True(t, URLPattern.MatchString("http://example.com"))
	assert.False(t, URLPattern.MatchString("ftp://example.com"))
	assert.False(t, URLPattern.MatchString("not-a-url"))
	assert.False(t, URLPattern.MatchString("https://"))
}

func TestObjectPredicates(t *testing.T) {
	address := ObjectWithKeys("Address", "street", "city")
	assert.Equal(t, "Address must be an object", address(ldvalue.String("not an object")))
	assert.Equal(t, "Address must have street and city",
		address(ldvalue.ObjectBuild().Set("street", ldvalue.String("Main St")).Build()))
	assert.Equal(t, "", address(ldvalue.ObjectBuild().
		Set("street", ldvalue.String("Main St")).
		Set("city", ldvalue.String("Springfield")).
		Build()))

	company := ObjectWithStringKey("name", "Company must have a name")
	assert.Equal(t, "Company must have a name", company(ldvalue.Int(789)))
	assert.Equal(t, "Company must have a name",
		company(ldvalue.ObjectBuild().Set("name", ldvalue.Int(1)).Build()))
	assert.Equal(t, "", company(ldvalue.ObjectBuild().Set("name", ldvalue.String("Acme")).Build()))
}

func TestMatchTextIgnoresEmptyAndNonStrings(t *testing.T) {
	check := MatchText(regexp.MustCompile(`^\d+$`), "digits only")
	assert.Equal(t, "", check(ldvalue.String("")))
	assert.Equal(t, "", check(ldvalue.Int(5)))
	assert.Equal(t, "", check(ldvalue.String("123")))
	assert.Equal(t, "digits only", check(ldvalue.String("12a")))
}

func TestRuleSetAccessors(t *testing.T) {
	assert.Equal(t, []string{"id", "userId", "title", "done", "note"}, testRules.Fields())
	rule, ok := testRules.Rule("userId")
	require.True(t, ok)
	assert.Equal(t, 10, rule.Max.IntValue())
	_, ok = testRules.Rule("nope")
	assert.False(t, ok)

	rules := testRules.Rules()
	rules[0].Field = "changed"
	assert.Equal(t, "id", testRules.Fields()[0])
}

func TestDuplicateRulePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRuleSet(Rule{Field: "a"}, Rule{Field: "a"})
	})
}

func TestResultIsFreshOnEveryCall(t *testing.T) {
	r := validRecord()
	r["id"] = ldvalue.Null()
	first := testRules.Validate(r)
	second := testRules.Validate(r)
	first.Errors[0] = "mutated"
	assert.Equal(t, "id is required", second.Errors[0])
}
