package apitests

import (
	"strings"

	"github.com/fakeapi/rest-contract-tests/models"
	"github.com/fakeapi/rest-contract-tests/schemas"
)

// resource pairs a model with the JSON schemas for a single record and for a listing. The
// listing schema is compiled once here rather than per request.
type resource struct {
	schema *models.Schema
	item   *schemas.Schema
	list   *schemas.Schema
}

func (r *resource) name() string {
	return strings.TrimPrefix(r.schema.Path, "/")
}

var resources = makeResources()

func makeResources() map[*models.Schema]*resource {
	ret := make(map[*models.Schema]*resource)
	for _, s := range models.AllSchemas {
		item := schemas.ForModel(s.Name)
		ret[s] = &resource{schema: s, item: item, list: schemas.ArrayOf(item)}
	}
	return ret
}

func resourceFor(schema *models.Schema) *resource {
	return resources[schema]
}

// childrenOf returns the resources that can be listed under one record of parent, as in
// /users/1/posts.
func childrenOf(parent *models.Schema) []*resource {
	var ret []*resource
	key := strings.ToLower(parent.Name) + "Id"
	for _, s := range models.AllSchemas {
		if s.ParentField == key {
			ret = append(ret, resources[s])
		}
	}
	return ret
}
