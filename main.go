package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/fakeapi/rest-contract-tests/apitests"
	"github.com/fakeapi/rest-contract-tests/client"
	"github.com/fakeapi/rest-contract-tests/fixtures"
	"github.com/fakeapi/rest-contract-tests/framework"
	"github.com/fakeapi/rest-contract-tests/mockapi"
	"github.com/fakeapi/rest-contract-tests/models"

	"github.com/fatih/color"
)

const statusQueryTimeout = time.Second * 10

func main() {
	var params commandParams
	if !params.Read(os.Args, os.Stderr) {
		os.Exit(1)
	}
	os.Exit(run(params))
}

func run(params commandParams) int {
	if params.noColor {
		color.NoColor = true
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	seed := params.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	serviceURL := params.serviceURL
	if params.mockMode != "" {
		mode, _ := mockapi.ParseMode(params.mockMode)
		server, err := mockapi.Start("localhost:0", mockapi.NewHandler(mockapi.Options{
			Mode:   mode,
			Seed:   seed,
			Logger: mainDebugLogger,
		}))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer server.Close()
		serviceURL = server.URL()
		fmt.Printf("Started %s mock service at %s\n", mode, serviceURL)
	}

	posts, users, err := loadFixtures(params.fixturesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fixture error: %s\n", err)
		return 1
	}

	opts := []client.Option{
		client.WithTimeout(params.timeout),
		client.WithDebugLogger(mainDebugLogger),
	}
	for name, value := range params.headers {
		opts = append(opts, client.WithHeader(name, value))
	}
	apiClient := client.New(serviceURL, opts...)
	if err := apiClient.AwaitReachable(ctx, statusQueryTimeout, mainDebugLogger); err != nil {
		fmt.Fprintf(os.Stderr, "Service error: %s\n", err)
		return 1
	}

	fmt.Printf("Testing %s with random seed %d\n", serviceURL, seed)
	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		Output:               color.Output,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	config := apitests.Config{
		Client:          apiClient,
		Generators:      models.NewGenerators(models.NewFaker(seed)),
		Posts:           posts,
		Users:           users,
		SkipKnownIssues: params.skipKnownIssues,
	}
	results := apitests.RunTestSuite(ctx, config, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun the failed tests:")
		fmt.Println("  " + params.rerunCommand(os.Args[0], seed, results.Failures))
		return 1
	}
	return 0
}

func loadFixtures(dir string) (fixtures.PostData, fixtures.UserData, error) {
	if dir == "" {
		posts, err := fixtures.LoadPosts()
		if err != nil {
			return posts, fixtures.UserData{}, err
		}
		users, err := fixtures.LoadUsers()
		return posts, users, err
	}
	fsys := os.DirFS(dir)
	posts, err := fixtures.LoadPostsFrom(fsys)
	if err != nil {
		return posts, fixtures.UserData{}, err
	}
	users, err := fixtures.LoadUsersFrom(fsys)
	return posts, users, err
}
