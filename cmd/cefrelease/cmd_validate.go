package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ochairo/cefrelease/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/cefrelease/internal/domain-orchestrators"
	"github.com/ochairo/cefrelease/internal/domain/services"
)

func runValidate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var flags catalogFlags
	flags.register(fs)
	var (
		quiet   = fs.Bool("quiet", false, "Only output errors (exit code indicates success/failure)")
		verbose = fs.Bool("verbose", false, "Print debug diagnostics")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: cefrelease validate [options] <version>

Validate that a CEF version is stable and published on every required platform.

Arguments:
  version    CEF version as listed in the build index (required)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Exit Codes:
  0  Version is stable and available on all required platforms
  1  Validation failed (not found, beta, missing platforms)
  2  Usage error or system error

Examples:
  cefrelease validate 120.1.10+g3ce3184+chromium-120.0.6099.129
  cefrelease validate --quiet 120.1.10+g3ce3184+chromium-120.0.6099.129
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(exitError)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: version is required\n\n")
		fs.Usage()
		os.Exit(exitError)
	}

	ready, err := executeValidate(ctx, fs.Arg(0), &flags, *quiet, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	if !ready {
		os.Exit(exitNegative)
	}
}

func executeValidate(ctx context.Context, version string, flags *catalogFlags, quiet, verbose bool) (bool, error) {
	cfg, err := flags.load(ctx)
	if err != nil {
		return false, err
	}

	if !quiet {
		fmt.Printf("🔍 Validating CEF %s\n", version)
	}

	orch := orchestrators.NewReleaseOrchestrator(
		gateways.NewCatalogFetcher(cfg.IndexURL),
		services.NewVersionSelector(),
		newLogger(quiet, verbose),
		cfg,
	)

	report, err := orch.Validate(ctx, version)
	if err != nil {
		return false, err
	}

	if !quiet {
		fmt.Printf("\n Platform Validation:\n")
		if report.Channel != "" {
			fmt.Printf("  Channel: %s\n", report.Channel)
		}
		printPlatforms("Required platforms", report.RequiredPlatforms)
		printPlatforms("Available platforms", report.AvailablePlatforms)
		printPlatforms("Missing platforms", report.MissingPlatforms)
		fmt.Println()
	}

	if !report.IsReady() {
		if quiet {
			fmt.Fprintf(os.Stderr, "%s\n", report.ErrorMessage())
		} else {
			fmt.Printf("❌ FAILED: %s\n", report.ErrorMessage())
		}
		return false, nil
	}

	if !quiet {
		fmt.Println("✅ READY: Stable and available on all required platforms")
	}
	return true, nil
}

func printPlatforms(label string, platforms []string) {
	if len(platforms) == 0 {
		return
	}
	fmt.Printf("  %s: %s\n", label, strings.Join(platforms, ", "))
}
