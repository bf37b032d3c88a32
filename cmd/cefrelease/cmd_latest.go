package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/cefrelease/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/cefrelease/internal/domain-orchestrators"
	"github.com/ochairo/cefrelease/internal/domain/services"
)

func runLatest(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("latest", flag.ExitOnError)
	var flags catalogFlags
	flags.register(fs)
	var (
		quiet   = fs.Bool("quiet", false, "Suppress diagnostics (exit code indicates the result)")
		verbose = fs.Bool("verbose", false, "Print debug diagnostics")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: cefrelease latest [options]

Print the newest stable CEF version that is published on every required
platform. The version is printed alone on stdout; diagnostics go to stderr.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Exit Codes:
  0  A qualifying version was found
  1  No qualifying version exists
  2  Usage, config, network or malformed index error

Examples:
  cefrelease latest
  cefrelease latest --required windows64,linux64,macosx64,macosarm64
  CEF_VERSION=$(cefrelease latest --quiet)
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(exitError)
	}

	found, err := executeLatest(ctx, &flags, *quiet, *verbose)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitError)
	}
	if !found {
		os.Exit(exitNegative)
	}
}

func executeLatest(ctx context.Context, flags *catalogFlags, quiet, verbose bool) (bool, error) {
	cfg, err := flags.load(ctx)
	if err != nil {
		return false, err
	}

	logger := newLogger(quiet, verbose)
	orch := orchestrators.NewReleaseOrchestrator(
		gateways.NewCatalogFetcher(cfg.IndexURL),
		services.NewVersionSelector(),
		logger,
		cfg,
	)

	result, err := orch.ResolveLatest(ctx)
	if err != nil {
		return false, err
	}

	if !result.Found {
		if !quiet {
			fmt.Fprintln(os.Stderr, "No stable version found on all required platforms")
		}
		return false, nil
	}

	fmt.Println(result.Entry.Version)
	return true, nil
}
