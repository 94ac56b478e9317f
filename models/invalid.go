package models

import (
	"github.com/fakeapi/rest-contract-tests/validation"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// InvalidPayloadSet is a catalogue of request bodies that a strict service should reject, or
// that exercise its handling of unusual input, for one resource.
type InvalidPayloadSet struct {
	EmptyObject       ldvalue.Value
	NullValues        ldvalue.Value
	WrongTypes        ldvalue.Value
	MissingFields     ldvalue.Value
	ExtraFields       ldvalue.Value
	SpecialCharacters ldvalue.Value
}

// NamedPayload is a request body with a short description for test names.
type NamedPayload struct {
	Name string
	Body ldvalue.Value
}

// All returns the catalogue entries in a fixed order.
func (s InvalidPayloadSet) All() []NamedPayload {
	return []NamedPayload{
		{"empty object", s.EmptyObject},
		{"null values", s.NullValues},
		{"wrong types", s.WrongTypes},
		{"missing fields", s.MissingFields},
		{"extra fields", s.ExtraFields},
		{"special characters", s.SpecialCharacters},
	}
}

// InvalidPayloads builds the negative payload catalogue for a resource. Null and wrongly typed
// values are derived from the schema's rule table, so every writable field is covered.
func (g Generators) InvalidPayloads(schema *Schema) InvalidPayloadSet {
	nulls := ldvalue.ObjectBuild()
	wrong := ldvalue.ObjectBuild()
	missing := ldvalue.ObjectBuild()
	firstText := true
	for _, r := range schema.Rules.Rules() {
		if r.Field == "id" {
			continue
		}
		nulls.Set(r.Field, ldvalue.Null())
		wrong.Set(r.Field, wrongTypeFor(r.Type))
		if firstText && r.Type == validation.TypeString {
			// keep a single text field and drop everything else
			missing.Set(r.Field, ldvalue.String(fit(g.faker.Words(3), 5, 100)))
			firstText = false
		}
	}

	extra := ldvalue.ObjectBuild()
	valid := g.Generate(schema).AsValue()
	for _, k := range valid.Keys() {
		extra.Set(k, valid.GetByKey(k))
	}
	extra.Set("extraField", ldvalue.String("should not be here"))

	return InvalidPayloadSet{
		EmptyObject:       ldvalue.ObjectBuild().Build(),
		NullValues:        nulls.Build(),
		WrongTypes:        wrong.Build(),
		MissingFields:     missing.Build(),
		ExtraFields:       extra.Build(),
		SpecialCharacters: specialCharacterPayload(schema),
	}
}

func wrongTypeFor(t validation.Type) ldvalue.Value {
	switch t {
	case validation.TypeNumber:
		return ldvalue.String("invalid")
	case validation.TypeString:
		return ldvalue.Int(123)
	case validation.TypeBoolean:
		return ldvalue.String("not-a-boolean")
	default:
		return ldvalue.String("not an object")
	}
}

func specialCharacterPayload(schema *Schema) ldvalue.Value {
	const decorated = " with 🎵 & special © characters ½"
	switch schema {
	case UserSchema:
		return NewUser(UserFields{
			Name:     "🚀 John O'Connor & Señor Smith",
			Username: "user_with_$pecial_chars",
			Email:    "special.chars+test@example.com",
			Address: &Address{
				Street:  "Street No. 123 1/2",
				Suite:   "Suite #42 (a)",
				City:    "Sao Paulo",
				Zipcode: "12345-678",
			},
			Phone:   "+1 (555) 123-4567 ext.123",
			Website: "http://example.com/~user",
			Company: &Company{
				Name:        "Company & Sons Ltd",
				CatchPhrase: "100% satisfaction (c) 2024",
				BS:          "innovative solutions",
			},
		}).AsValue()
	case PostSchema:
		return NewPost(1, "Post"+decorated, "Body"+decorated+" <b>bold</b>").AsValue()
	case CommentSchema:
		return NewComment(1, "User 🚀 O'Connor & Señor", "special+chars@example.com", "Comment"+decorated).AsValue()
	case AlbumSchema:
		return NewAlbum(1, "Album"+decorated).AsValue()
	case PhotoSchema:
		return NewPhoto(1, "Photo"+decorated,
			"https://example.com/special-photo-🌟.jpg",
			"https://example.com/special-thumb-✨.jpg").AsValue()
	case TodoSchema:
		return NewTodo(1, "Todo"+decorated, false).AsValue()
	}
	return ldvalue.ObjectBuild().Build()
}

// InvalidEmails are addresses that a strict email check would reject. Only some of them fail
// EmailPattern, which accepts anything shaped like local@domain.tld.
var InvalidEmails = []string{
	"invalid-email-format",
	"missing@domain",
	"@nodomain.com",
	"spaces in@email.com",
	"multiple@@at.com",
	"no.tld@domain",
	".starts.with.dot@domain.com",
	"ends.with.dot.@domain.com",
	"multiple..dots@domain.com",
}

// InvalidURLs are strings that are not usable image URLs.
var InvalidURLs = []string{
	"not-a-url",
	"ftp://invalid-protocol.com",
	"http:/missing-slash.com",
	"https://no-extension",
	"https://invalid#character.com",
	"https://multiple..dots.com",
	"https://space in url.com",
	"https://",
	"http://",
}

// BooleanVariations are values a client might send for a boolean field. Only the first two are
// actually booleans.
var BooleanVariations = []ldvalue.Value{
	ldvalue.Bool(true),
	ldvalue.Bool(false),
	ldvalue.String("true"),
	ldvalue.String("false"),
	ldvalue.Int(1),
	ldvalue.Int(0),
	ldvalue.String("yes"),
	ldvalue.String("no"),
	ldvalue.Null(),
}

// MalformedBody is a raw request body that is not a JSON object.
type MalformedBody struct {
	Description string
	Body        string
}

// MalformedJSONBodies are bodies for probing how the service handles unparseable input.
var MalformedJSONBodies = []MalformedBody{
	{"plain string", "invalid-json-string"},
	{"truncated object", `{"incomplete": json`},
	{"null literal", "null"},
	{"empty body", ""},
}

// ContentTypeProbe is a Content-Type header to send with an otherwise valid JSON body. An empty
// ContentType means the header is omitted.
type ContentTypeProbe struct {
	Description string
	ContentType string
}

// InvalidContentTypes are the headers used to probe content negotiation.
var InvalidContentTypes = []ContentTypeProbe{
	{"missing Content-Type", ""},
	{"incorrect Content-Type", "text/plain"},
}

// MethodProbe is an HTTP method the resource endpoints do not document. If OnItem is true the
// request goes to an item path, otherwise to the collection.
type MethodProbe struct {
	Method string
	OnItem bool
}

// UnsupportedMethods are the methods used to probe method handling.
var UnsupportedMethods = []MethodProbe{
	{"HEAD", true},
	{"OPTIONS", false},
}
