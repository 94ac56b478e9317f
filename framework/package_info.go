// Package framework contains the test-runner infrastructure that is independent of the service
// being tested.
//
// There is a general notion of a test context which is similar to Go's *testing.T, allowing
// pieces of test logic to be associated with a hierarchical test identifier, to accumulate
// success/failure results, and to capture debug output that is only shown when it is wanted.
// Tests are selected with regex filters, and progress is reported through a TestLogger.
//
// The domain-specific code that knows what is being tested is responsible for providing a
// domain-specific test API on top of the test context.
package framework
