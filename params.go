package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/fakeapi/rest-contract-tests/client"
	"github.com/fakeapi/rest-contract-tests/framework"
	"github.com/fakeapi/rest-contract-tests/mockapi"

	"github.com/alessio/shellescape"
	"gopkg.in/yaml.v3"
)

const defaultServiceURL = "https://jsonplaceholder.typicode.com"

type commandParams struct {
	serviceURL      string
	filters         framework.RegexFilters
	timeout         time.Duration
	seed            int64
	skipKnownIssues bool
	configFile      string
	mockMode        string
	fixturesDir     string
	debug           bool
	debugAll        bool
	noColor         bool
	headers         map[string]string
}

// configFile is the YAML form of the command-line parameters. Any flag given on the command line
// takes precedence over the same setting in the file.
type configFile struct {
	URL             string        `yaml:"url"`
	Run             []string      `yaml:"run"`
	Skip            []string      `yaml:"skip"`
	Timeout         time.Duration `yaml:"timeout"`
	Seed            int64         `yaml:"seed"`
	SkipKnownIssues bool          `yaml:"skipKnownIssues"`
	Mock            string        `yaml:"mock"`
	Fixtures        string        `yaml:"fixtures"`
	Debug           bool          `yaml:"debug"`
	DebugAll        bool          `yaml:"debugAll"`

	// Headers are added to every request, such as an API key for a proxy in front of the service.
	Headers map[string]string `yaml:"headers"`
}

func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.serviceURL, "url", defaultServiceURL, "base URL of the service under test")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.DurationVar(&c.timeout, "timeout", client.DefaultTimeout, "timeout for each request")
	fs.Int64Var(&c.seed, "seed", 0, "random seed for generated test data (0 = random)")
	fs.BoolVar(&c.skipKnownIssues, "skip-known-issues", false, "skip tests that are affected by a known issue")
	fs.StringVar(&c.configFile, "config", "", "YAML file providing defaults for any of these parameters")
	fs.StringVar(&c.mockMode, "mock", "", `run against a local mock service instead of -url ("lenient" or "strict")`)
	fs.StringVar(&c.fixturesDir, "fixtures", "", "directory containing posts.json and users.json (default: built-in)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}

	if c.configFile != "" {
		given := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { given[f.Name] = true })
		if err := c.applyConfigFile(given); err != nil {
			fmt.Fprintln(errOut, err)
			return false
		}
	}

	if c.mockMode != "" {
		if _, err := mockapi.ParseMode(c.mockMode); err != nil {
			fmt.Fprintln(errOut, err)
			fs.Usage()
			return false
		}
	}
	return true
}

func (c *commandParams) applyConfigFile(given map[string]bool) error {
	data, err := os.ReadFile(c.configFile)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var f configFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configFile, err)
	}

	if !given["url"] && f.URL != "" {
		c.serviceURL = f.URL
	}
	if !given["run"] {
		for _, p := range f.Run {
			if err := c.filters.MustMatch.Set(p); err != nil {
				return fmt.Errorf("config file %s, run %q: %w", c.configFile, p, err)
			}
		}
	}
	if !given["skip"] {
		for _, p := range f.Skip {
			if err := c.filters.MustNotMatch.Set(p); err != nil {
				return fmt.Errorf("config file %s, skip %q: %w", c.configFile, p, err)
			}
		}
	}
	if !given["timeout"] && f.Timeout > 0 {
		c.timeout = f.Timeout
	}
	if !given["seed"] && f.Seed != 0 {
		c.seed = f.Seed
	}
	if !given["skip-known-issues"] && f.SkipKnownIssues {
		c.skipKnownIssues = true
	}
	if !given["mock"] && f.Mock != "" {
		c.mockMode = f.Mock
	}
	if !given["fixtures"] && f.Fixtures != "" {
		c.fixturesDir = f.Fixtures
	}
	if !given["debug"] && f.Debug {
		c.debug = true
	}
	if !given["debug-all"] && f.DebugAll {
		c.debugAll = true
	}
	c.headers = f.Headers
	return nil
}

// rerunCommand returns a command line that repeats this run for the failed tests only. The seed
// is always included so the same data is generated.
func (c *commandParams) rerunCommand(program string, seed int64, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program)
	if c.configFile != "" {
		b.add("-config", c.configFile)
	}
	if c.mockMode != "" {
		b.add("-mock", c.mockMode)
	} else {
		b.add("-url", c.serviceURL)
	}
	b.add("-seed", fmt.Sprint(seed))
	if c.fixturesDir != "" {
		b.add("-fixtures", c.fixturesDir)
	}
	if c.skipKnownIssues {
		b.add("-skip-known-issues")
	}
	for _, f := range failures {
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	for _, p := range c.filters.MustNotMatch.Values() {
		b.add("-skip", p)
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
