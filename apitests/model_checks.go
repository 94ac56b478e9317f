package apitests

import (
	"strings"

	"github.com/fakeapi/rest-contract-tests/models"
	"github.com/fakeapi/rest-contract-tests/validation"

	"github.com/stretchr/testify/assert"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DoModelTests checks the models and fixtures themselves. None of these scenarios contact the
// service; they catch a broken rule table or fixture file before it causes confusing failures
// elsewhere.
func DoModelTests(t *T) {
	for _, s := range models.AllSchemas {
		s := s
		t.Run(s.Name, func(t *T) {
			t.Run("generated instances are valid", func(t *T) {
				for i := 0; i < 10; i++ {
					e := t.Generators().Generate(s).WithID(i + 1)
					assert.True(t, e.Validate().IsValid(), "%s: %s", e, e.Validate())
				}
			})
			t.Run("rule boundaries", func(t *T) {
				doBoundaryTests(t, s)
			})
			t.Run("invalid payloads fail validation", func(t *T) {
				set := t.Generators().InvalidPayloads(s)
				for name, body := range map[string]ldvalue.Value{
					"empty object":   set.EmptyObject,
					"null values":    set.NullValues,
					"wrong types":    set.WrongTypes,
					"missing fields": set.MissingFields,
				} {
					e := models.FromValue(s, body).WithID(1)
					assert.False(t, e.Validate().IsValid(), "%s was accepted: %s", name, e)
				}
			})
		})
	}

	t.Run("fixtures", func(t *T) {
		posts, users := t.Posts(), t.Users()
		if len(posts.ValidPosts) == 0 && len(users.ValidUsers) == 0 {
			t.Skip("no fixtures loaded")
		}
		for _, p := range posts.Posts() {
			e := p.WithID(1)
			assert.True(t, e.Validate().IsValid(), "valid post fixture %s: %s", e, e.Validate())
		}
		for _, p := range posts.InvalidPosts {
			e := models.FromValue(models.PostSchema, p.Data).WithID(1)
			assert.False(t, e.Validate().IsValid(), "invalid post fixture %q passed validation", p.Description)
		}
		for _, u := range users.Users() {
			e := u.WithID(1)
			assert.True(t, e.Validate().IsValid(), "valid user fixture %s: %s", e, e.Validate())
		}
		for _, u := range users.InvalidUsers {
			e := models.FromValue(models.UserSchema, u.Data).WithID(1)
			assert.False(t, e.Validate().IsValid(), "invalid user fixture %q passed validation", u.Description)
		}
	})
}

// doBoundaryTests derives edge values from each rule's bounds: the bound itself must pass and
// the value one step past it must fail.
func doBoundaryTests(t *T, s *models.Schema) {
	base := t.Generators().Generate(s).WithID(1)
	check := func(r validation.Rule, value ldvalue.Value, valid bool) {
		e := base.With(r.Field, value)
		assert.Equal(t, valid, e.Validate().IsValid(), "%s = %s: %s", r.Field, value.JSONString(), e.Validate())
	}
	text := func(n int) ldvalue.Value {
		return ldvalue.String(strings.Repeat("a", n))
	}
	for _, r := range s.Rules.Rules() {
		if r.MinLength.IsDefined() {
			min := r.MinLength.IntValue()
			check(r, text(min), true)
			check(r, text(min-1), false)
		}
		if r.MaxLength.IsDefined() {
			max := r.MaxLength.IntValue()
			check(r, text(max), true)
			check(r, text(max+1), false)
		}
		if r.Min.IsDefined() {
			min := r.Min.IntValue()
			check(r, ldvalue.Int(min), true)
			check(r, ldvalue.Int(min-1), false)
		}
		if r.Max.IsDefined() {
			max := r.Max.IntValue()
			check(r, ldvalue.Int(max), true)
			check(r, ldvalue.Int(max+1), false)
		}
	}
}
