package mockapi

import (
	"fmt"
	"net/url"

	"github.com/fakeapi/rest-contract-tests/models"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const maxUsernameStem = 17

// store holds the generated records of every resource. It is never modified after creation:
// like the public service, the mock accepts writes but does not persist them.
type store struct {
	collections map[*models.Schema][]models.Entity
}

func newStore(seed int64) *store {
	gens := models.NewGenerators(models.NewFaker(seed))
	s := &store{collections: make(map[*models.Schema][]models.Entity)}
	for _, schema := range models.AllSchemas {
		count := schema.IDs.Max
		items := make([]models.Entity, 0, count)
		for id := 1; id <= count; id++ {
			e := gens.Generate(schema).WithID(id)
			if schema.ParentField != "" {
				e = e.With(schema.ParentField, ldvalue.Int(parentOf(id, count, schema.ParentRange.Max)))
			}
			if schema == models.UserSchema {
				e = e.With("username", ldvalue.String(uniqueUsername(e.Get("username").StringValue(), id)))
			}
			items = append(items, e)
		}
		s.collections[schema] = items
	}
	return s
}

// parentOf spreads count children evenly over parents 1..parents in id order, the way the
// public data set does (posts 1-10 belong to user 1, and so on).
func parentOf(id, count, parents int) int {
	return (id-1)*parents/count + 1
}

// uniqueUsername suffixes the id so that lookups by username find exactly one user.
func uniqueUsername(stem string, id int) string {
	if len(stem) > maxUsernameStem {
		stem = stem[:maxUsernameStem]
	}
	return fmt.Sprintf("%s%d", stem, id)
}

func (s *store) count(schema *models.Schema) int {
	return len(s.collections[schema])
}

// nextID is the id the service reports for a newly created record.
func (s *store) nextID(schema *models.Schema) int {
	return s.count(schema) + 1
}

func (s *store) find(schema *models.Schema, id int) (models.Entity, bool) {
	items := s.collections[schema]
	if id < 1 || id > len(items) {
		return models.Entity{}, false
	}
	return items[id-1], true
}

// query returns the records whose fields equal every query parameter. A parameter that names
// no field matches nothing.
func (s *store) query(schema *models.Schema, params url.Values) []models.Entity {
	ret := []models.Entity{}
	for _, e := range s.collections[schema] {
		if matches(e, params) {
			ret = append(ret, e)
		}
	}
	return ret
}

func matches(e models.Entity, params url.Values) bool {
	for field, values := range params {
		if !e.Has(field) {
			return false
		}
		actual := textOf(e.Get(field))
		found := false
		for _, v := range values {
			if v == actual {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func textOf(v ldvalue.Value) string {
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}
