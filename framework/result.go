package framework

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Results is the outcome of a test run. Every test that actually ran appears in Tests, and
// additionally in Failures or Skipped as appropriate.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
	Notes      []string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Passed returns the number of tests that ran to completion without failing.
func (r Results) Passed() int {
	return len(r.Tests) - len(r.Failures) - len(r.Skipped)
}

// NoteCounts returns every distinct note attached to a test result, with how many tests carried
// it, sorted by note.
func (r Results) NoteCounts() []NoteCount {
	counts := make(map[string]int)
	for _, t := range r.Tests {
		for _, n := range t.Notes {
			counts[n]++
		}
	}
	ret := make([]NoteCount, 0, len(counts))
	for n, c := range counts {
		ret = append(ret, NoteCount{Note: n, Count: c})
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Note < ret[j].Note })
	return ret
}

type NoteCount struct {
	Note  string
	Count int
}

type TestID struct {
	Path []string
}

// Plus returns the ID of a subtest.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of a test run.
func PrintResults(w io.Writer, results Results) {
	if len(results.Failures) > 0 {
		fmt.Fprintln(w, "FAILED TESTS:")
		for _, f := range results.Failures {
			fmt.Fprintf(w, "  * %s\n", f.TestID)
		}
		fmt.Fprintln(w)
	}
	if notes := results.NoteCounts(); len(notes) > 0 {
		fmt.Fprintln(w, "Notes:")
		for _, n := range notes {
			fmt.Fprintf(w, "  %s (%d %s)\n", n.Note, n.Count, plural(n.Count, "test", "tests"))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d passed, %d failed, %d skipped\n", results.Passed(), len(results.Failures), len(results.Skipped))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// reformatError strips the "Error Trace" section that testify adds to assertion failures, since
// the stack positions it reports are inside the test harness and not useful in console output.
func reformatError(err error) error {
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	var kept []string
	inTrace := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Error Trace:") {
			inTrace = true
			continue
		}
		if inTrace {
			if strings.HasPrefix(trimmed, "Error:") || strings.HasPrefix(trimmed, "Messages:") ||
				strings.HasPrefix(trimmed, "Test:") {
				inTrace = false
			} else {
				continue
			}
		}
		kept = append(kept, trimmed)
	}
	return errors.New(strings.Join(kept, "\n"))
}
