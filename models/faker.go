package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// Faker supplies the random data used by the fixture generators. Tests can substitute their
// own implementation, or use NewFaker with a fixed seed, to make generated fixtures
// reproducible.
type Faker interface {
	// Int returns a number in the inclusive range [min, max].
	Int(min, max int) int
	Words(n int) string
	Sentence() string
	Paragraph() string
	Email() string
	Boolean() bool

	FullName() string
	Username() string
	Phone() string
	URL() string
	Street() string
	City() string
	ZipCode() string
	CompanyName() string
	CatchPhrase() string
	Latitude() float64
	Longitude() float64
}

type gofakeitFaker struct {
	f *gofakeit.Faker
}

// NewFaker returns a Faker backed by gofakeit. A non-zero seed makes the sequence of values
// deterministic; a zero seed is random.
func NewFaker(seed int64) Faker {
	return gofakeitFaker{f: gofakeit.New(seed)}
}

func (g gofakeitFaker) Int(min, max int) int {
	if max <= min {
		return min
	}
	return g.f.Number(min, max)
}

func (g gofakeitFaker) Words(n int) string {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, g.f.LoremIpsumWord())
	}
	return strings.Join(words, " ")
}

func (g gofakeitFaker) Sentence() string {
	return g.f.LoremIpsumSentence(g.f.Number(4, 10))
}

func (g gofakeitFaker) Paragraph() string {
	return g.f.LoremIpsumParagraph(1, g.f.Number(3, 5), g.f.Number(6, 10), " ")
}

func (g gofakeitFaker) Email() string { return g.f.Email() }

func (g gofakeitFaker) Boolean() bool { return g.f.Bool() }

func (g gofakeitFaker) FullName() string { return g.f.FirstName() + " " + g.f.LastName() }

// Username is built from a lower-case word and digits so that it always satisfies the
// [A-Za-z0-9_.] username alphabet.
func (g gofakeitFaker) Username() string {
	word := strings.ToLower(g.f.LoremIpsumWord())
	if len(word) > 12 {
		word = word[:12]
	}
	return word + "_" + strconv.Itoa(g.f.Number(10, 9999))
}

func (g gofakeitFaker) Phone() string {
	p := g.f.Phone()
	if len(p) == 10 {
		return fmt.Sprintf("%s-%s-%s", p[0:3], p[3:6], p[6:])
	}
	return p
}

func (g gofakeitFaker) URL() string {
	return "https://" + strings.ToLower(g.f.LoremIpsumWord()) + "." + g.f.DomainSuffix()
}

func (g gofakeitFaker) Street() string { return g.f.Street() }

func (g gofakeitFaker) City() string { return g.f.City() }

func (g gofakeitFaker) ZipCode() string { return g.f.Zip() }

func (g gofakeitFaker) CompanyName() string { return g.f.Company() }

func (g gofakeitFaker) CatchPhrase() string { return g.f.BuzzWord() + " " + g.f.BS() }

func (g gofakeitFaker) Latitude() float64 { return g.f.Latitude() }

func (g gofakeitFaker) Longitude() float64 { return g.f.Longitude() }
