package apitests

import (
	"context"
	"fmt"

	"github.com/fakeapi/rest-contract-tests/client"
	"github.com/fakeapi/rest-contract-tests/fixtures"
	"github.com/fakeapi/rest-contract-tests/framework"
	"github.com/fakeapi/rest-contract-tests/models"
)

// Config is everything a suite run needs. Client is required; the other fields have usable
// zero values, except that Generators must come from models.NewGenerators.
type Config struct {
	Client     *client.Client
	Generators models.Generators
	Posts      fixtures.PostData
	Users      fixtures.UserData

	// SkipKnownIssues skips scenarios affected by a known issue instead of letting them fail.
	SkipKnownIssues bool
}

type environment struct {
	ctx    context.Context
	config Config
}

// T represents a test or subtest in the REST API test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner, with debug output captured per test by the framework package.
// To make assertions, pass the *T to the assert and require packages as if it were a
// *testing.T.
//
// Every T has its own view of the HTTP client, which writes each request and response to that
// test's debug output.
type T struct {
	context *framework.Context
	env     *environment
	client  *client.Client
}

func newTestScope(context *framework.Context, env *environment) *T {
	return &T{
		context: context,
		env:     env,
		client:  env.config.Client.WithLogger(context.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// DebugLogger returns a Logger that writes to the test's debug output.
func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

// Skip stops the test and marks it as skipped.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

// KnownIssue declares that the rest of the test asserts behavior the public service is known
// not to have. The issue is attached to the test result; if the run skips known issues, the
// test stops here.
func (t *T) KnownIssue(issue Issue) {
	t.context.Note(issue.String())
	if t.env.config.SkipKnownIssues {
		t.context.SkipWithReason(fmt.Sprintf("known issue %s", issue))
	}
}

// Client returns the HTTP client for the service under test.
func (t *T) Client() *client.Client {
	return t.client
}

// Context returns the context for requests made by the test.
func (t *T) Context() context.Context {
	return t.env.ctx
}

// Generators returns the fixture generators. All tests in a run share one source of random data,
// so a run with a fixed seed is reproducible.
func (t *T) Generators() models.Generators {
	return t.env.config.Generators
}

// Faker returns the source of random data behind Generators.
func (t *T) Faker() models.Faker {
	return t.env.config.Generators.Faker()
}

// Posts returns the post fixture file.
func (t *T) Posts() fixtures.PostData {
	return t.env.config.Posts
}

// Users returns the user fixture file.
func (t *T) Users() fixtures.UserData {
	return t.env.config.Users
}
