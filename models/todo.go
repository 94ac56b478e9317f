package models

import (
	"strings"

	"github.com/fakeapi/rest-contract-tests/validation"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// TodoSchema describes the /todos resource.
var TodoSchema = &Schema{
	Name:   "Todo",
	Path:   "/todos",
	Fields: []string{"id", "userId", "title", "completed"},
	Rules: validation.NewRuleSet(
		idRule,
		parentRule("userId", Range{1, 10}),
		textRule("title", 3, 200),
		validation.Rule{Field: "completed", Type: validation.TypeBoolean},
	),
	ParentField: "userId",
	ParentRange: Range{1, 10},
	IDs:         Range{1, 200},
	MissingIDs:  Range{1000, 9999},
}

// Todo is a record of the /todos resource.
type Todo struct {
	Entity
}

// NewTodo creates a todo with no id.
func NewTodo(userID int, title string, completed bool) Todo {
	return Todo{NewEntity(TodoSchema, map[string]ldvalue.Value{
		"userId":    ldvalue.Int(userID),
		"title":     ldvalue.String(title),
		"completed": ldvalue.Bool(completed),
	})}
}

// AsTodo wraps a decoded JSON object as a todo.
func AsTodo(v ldvalue.Value) Todo {
	return Todo{FromValue(TodoSchema, v)}
}

func (t Todo) UserID() int     { return t.Get("userId").IntValue() }
func (t Todo) Title() string   { return t.Get("title").StringValue() }
func (t Todo) Completed() bool { return t.Get("completed").BoolValue() }

// With returns a copy of the todo with one field overwritten.
func (t Todo) With(field string, value ldvalue.Value) Todo {
	return Todo{t.Entity.With(field, value)}
}

// WithID returns a copy of the todo with its id set.
func (t Todo) WithID(id int) Todo {
	return Todo{t.Entity.WithID(id)}
}

// TodoGenerator produces todo fixtures.
type TodoGenerator struct {
	idGenerator
}

// NewTodoGenerator creates a TodoGenerator using the given source of random data.
func NewTodoGenerator(f Faker) TodoGenerator {
	return TodoGenerator{idGenerator{schema: TodoSchema, faker: f}}
}

// Generate returns a valid todo with no id. If userID is undefined, a random valid user is
// chosen.
func (g TodoGenerator) Generate(userID ldvalue.OptionalInt) Todo {
	return NewTodo(g.parentOrRandom(userID), fit(g.faker.Sentence(), 3, 200), g.faker.Boolean())
}

// GenerateMultiple returns n valid todos for random users.
func (g TodoGenerator) GenerateMultiple(n int) []Todo {
	ret := make([]Todo, 0, n)
	for i := 0; i < n; i++ {
		ret = append(ret, g.Generate(ldvalue.OptionalInt{}))
	}
	return ret
}

// GeneratePartialUpdate returns a PATCH payload changing the title and completion state.
func (g TodoGenerator) GeneratePartialUpdate() ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("title", ldvalue.String(fit(g.faker.Sentence(), 3, 200))).
		Set("completed", ldvalue.Bool(g.faker.Boolean())).
		Build()
}

// GenerateWithSpecialCharacters returns a todo whose title contains emoji and accented letters.
func (g TodoGenerator) GenerateWithSpecialCharacters() Todo {
	return NewTodo(1, "🚀 Todo with émojis & spëcial çhars: !@#$%^&*()", true)
}

// GenerateLargePayload returns a todo with a 10,000 character title.
func (g TodoGenerator) GenerateLargePayload() Todo {
	return NewTodo(1, strings.Repeat("A", 10000), true)
}
