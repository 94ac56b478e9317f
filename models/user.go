package models

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fakeapi/rest-contract-tests/validation"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	phonePattern    = regexp.MustCompile(`^[\d\-+()\s.x]+$`)
)

// UserSchema describes the /users resource.
var UserSchema = &Schema{
	Name:   "User",
	Path:   "/users",
	Fields: []string{"id", "name", "username", "email", "address", "phone", "website", "company"},
	Rules: validation.NewRuleSet(
		idRule,
		validation.Rule{Field: "name", Type: validation.TypeString,
			MinLength: validation.Bound(2), MaxLength: validation.Bound(100)},
		validation.Rule{Field: "username", Type: validation.TypeString,
			MinLength: validation.Bound(3), MaxLength: validation.Bound(20), Pattern: usernamePattern},
		validation.Rule{Field: "email", Type: validation.TypeString, Pattern: validation.EmailPattern,
			Check: validation.RequireSubstring("@", "Email must contain @ symbol")},
		validation.Rule{Field: "address", Type: validation.TypeObject,
			Check: validation.ObjectWithKeys("Address", "street", "city")},
		validation.Rule{Field: "phone", Type: validation.TypeString, Optional: true,
			Check: validation.MatchText(phonePattern,
				"Phone must contain only digits, spaces, dashes, parentheses, dots and x")},
		validation.Rule{Field: "website", Type: validation.TypeString, Optional: true,
			Check: checkWebsite},
		validation.Rule{Field: "company", Type: validation.TypeObject, Optional: true,
			Check: validation.ObjectWithStringKey("name", "Company must have a name")},
	),
	IDs:        Range{1, 10},
	MissingIDs: Range{100, 999},
}

func checkWebsite(value ldvalue.Value) string {
	if value.Type() != ldvalue.StringType {
		return ""
	}
	s := value.StringValue()
	if s != "" && !strings.Contains(s, ".") &&
		!strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return "Website must be a valid domain or URL"
	}
	return ""
}

// Geo is a pair of coordinates, encoded as strings by the service.
type Geo struct {
	Lat string
	Lng string
}

// Address is the nested address object of a user.
type Address struct {
	Street  string
	Suite   string
	City    string
	Zipcode string
	Geo     *Geo
}

// AsValue encodes the address, omitting empty properties.
func (a Address) AsValue() ldvalue.Value {
	b := ldvalue.ObjectBuild()
	optionalText(b, "street", a.Street)
	optionalText(b, "suite", a.Suite)
	optionalText(b, "city", a.City)
	optionalText(b, "zipcode", a.Zipcode)
	if a.Geo != nil {
		b.Set("geo", ldvalue.ObjectBuild().
			Set("lat", ldvalue.String(a.Geo.Lat)).
			Set("lng", ldvalue.String(a.Geo.Lng)).
			Build())
	}
	return b.Build()
}

// Company is the nested company object of a user.
type Company struct {
	Name        string
	CatchPhrase string
	BS          string
}

// AsValue encodes the company, omitting empty properties.
func (c Company) AsValue() ldvalue.Value {
	b := ldvalue.ObjectBuild()
	optionalText(b, "name", c.Name)
	optionalText(b, "catchPhrase", c.CatchPhrase)
	optionalText(b, "bs", c.BS)
	return b.Build()
}

// UserFields holds the writable fields of a user. Empty strings and nil objects are omitted.
type UserFields struct {
	Name     string
	Username string
	Email    string
	Address  *Address
	Phone    string
	Website  string
	Company  *Company
}

// User is a record of the /users resource.
type User struct {
	Entity
}

// NewUser creates a user with no id.
func NewUser(f UserFields) User {
	values := make(map[string]ldvalue.Value)
	setText(values, "name", f.Name)
	setText(values, "username", f.Username)
	setText(values, "email", f.Email)
	if f.Address != nil {
		values["address"] = f.Address.AsValue()
	}
	setText(values, "phone", f.Phone)
	setText(values, "website", f.Website)
	if f.Company != nil {
		values["company"] = f.Company.AsValue()
	}
	return User{NewEntity(UserSchema, values)}
}

// AsUser wraps a decoded JSON object as a user.
func AsUser(v ldvalue.Value) User {
	return User{FromValue(UserSchema, v)}
}

func (u User) Name() string     { return u.Get("name").StringValue() }
func (u User) Username() string { return u.Get("username").StringValue() }
func (u User) Email() string    { return u.Get("email").StringValue() }

// With returns a copy of the user with one field overwritten.
func (u User) With(field string, value ldvalue.Value) User {
	return User{u.Entity.With(field, value)}
}

// WithID returns a copy of the user with its id set.
func (u User) WithID(id int) User {
	return User{u.Entity.WithID(id)}
}

// UserGenerator produces user fixtures.
type UserGenerator struct {
	idGenerator
}

// NewUserGenerator creates a UserGenerator using the given source of random data.
func NewUserGenerator(f Faker) UserGenerator {
	return UserGenerator{idGenerator{schema: UserSchema, faker: f}}
}

// Generate returns a valid user with no id.
func (g UserGenerator) Generate() User {
	f := g.faker
	return NewUser(UserFields{
		Name:     fit(f.FullName(), 2, 100),
		Username: fit(f.Username(), 3, 20),
		Email:    f.Email(),
		Address: &Address{
			Street:  f.Street(),
			Suite:   "Apt. " + strconv.Itoa(f.Int(100, 999)),
			City:    f.City(),
			Zipcode: f.ZipCode(),
			Geo: &Geo{
				Lat: strconv.FormatFloat(f.Latitude(), 'f', 4, 64),
				Lng: strconv.FormatFloat(f.Longitude(), 'f', 4, 64),
			},
		},
		Phone:   f.Phone(),
		Website: f.URL(),
		Company: &Company{
			Name:        f.CompanyName(),
			CatchPhrase: f.CatchPhrase(),
			BS:          f.Words(3),
		},
	})
}

// GenerateMultiple returns n valid users.
func (g UserGenerator) GenerateMultiple(n int) []User {
	ret := make([]User, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, g.Generate())
	}
	return ret
}

// GeneratePartialUpdate returns a PATCH payload changing the name and email.
func (g UserGenerator) GeneratePartialUpdate() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("name", ldvalue.String(fit(g.faker.FullName(), 2, 100))).
		Set("email", ldvalue.String(g.faker.Email())).
		Build()
}

// GenerateWithSpecialCharacters returns a user whose name contains emoji, accented letters and
// punctuation.
func (g UserGenerator) GenerateWithSpecialCharacters() User {
	return NewUser(UserFields{
		Name:     "🚀 User with émojis & spëcial çhars: !@#$%^&*()",
		Username: "special_user_123",
		Email:    "special@example.com",
		Address: &Address{
			Street:  "Special Street 123",
			City:    "Special City",
			Zipcode: "12345",
		},
	})
}

// GenerateLargePayload returns a user whose every field is inflated to thousands of characters.
func (g UserGenerator) GenerateLargePayload() User {
	return NewUser(UserFields{
		Name:     strings.Repeat("A", 10000),
		Username: strings.Repeat("B", 5000),
		Email:    "test@" + strings.Repeat("c", 5000) + ".com",
		Address: &Address{
			Street:  strings.Repeat("D", 1000),
			Suite:   strings.Repeat("E", 1000),
			City:    strings.Repeat("F", 1000),
			Zipcode: strings.Repeat("G", 1000),
		},
		Phone:   strings.Repeat("H", 1000),
		Website: strings.Repeat("I", 1000),
		Company: &Company{
			Name:        strings.Repeat("J", 1000),
			CatchPhrase: strings.Repeat("K", 1000),
			BS:          strings.Repeat("L", 1000),
		},
	})
}

// GenerateWithInvalidEmail returns an otherwise valid user whose email has no @.
func (g UserGenerator) GenerateWithInvalidEmail() User {
	u := g.Generate()
	return u.With("email", ldvalue.String("invalid-email-format"))
}

func setText(values map[string]ldvalue.Value, key, value string) {
	if value != "" {
		values[key] = ldvalue.String(value)
	}
}
