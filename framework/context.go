package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the state of one running test. It plays the role of *testing.T for test logic that
// runs outside the Go test runner.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	notes       []string
	deferred    []func()
}

// Run executes the root test action and returns the accumulated results of it and all subtests.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
				c.failed = true
				var addError error
				if _, ok := r.(*Context); ok {
					if len(c.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				}
				if addError != nil {
					c.errors = append(c.errors, addError)
					c.env.testLogger.TestError(c.id, addError)
				}
			}
		}
		for i := len(c.deferred) - 1; i >= 0; i-- {
			c.deferred[i]()
		}
		if len(c.id.Path) == 0 {
			return // the root context is not itself a test
		}
		result := TestResult{
			TestID:     c.id,
			Errors:     c.errors,
			Skipped:    c.skipped,
			SkipReason: c.skipReason,
			Notes:      c.notes,
		}
		c.env.results.Tests = append(c.env.results.Tests, result)
		switch {
		case c.skipped:
			c.env.results.Skipped = append(c.env.results.Skipped, result)
		case c.failed:
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

// ID returns the test's identifier.
func (c *Context) ID() TestID {
	return c.id
}

// Run runs a subtest, unless the filter excludes it. A subtest that fails does not stop its
// parent; the parent only fails if it reports its own errors.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf records a failure without stopping the test.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// FailNow stops the test immediately. It must be called from the goroutine running the test.
func (c *Context) FailNow() {
	panic(c)
}

// Failed reports whether the test has recorded any failure.
func (c *Context) Failed() bool {
	return c.failed
}

// Skip stops the test immediately and marks it as skipped.
func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

// SkipWithReason is like Skip, but the reason is shown in the output.
func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Defer schedules a function to run when the test ends, whether or not it failed. Deferred
// functions run in reverse order.
func (c *Context) Defer(fn func()) {
	c.deferred = append(c.deferred, fn)
}

// Note attaches a short annotation to the test result, such as a reference to a known issue.
// Notes are also written to the debug output.
func (c *Context) Note(note string) {
	c.notes = append(c.notes, note)
	c.debugLogger.Printf("NOTE: %s", note)
}

// Debug writes to the test's debug output, which the TestLogger receives when the test ends.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// DebugLogger returns the test's debug output as a Logger.
func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
