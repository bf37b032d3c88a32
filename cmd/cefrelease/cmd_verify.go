package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/cefrelease/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/cefrelease/internal/domain-orchestrators"
	"github.com/ochairo/cefrelease/internal/domain/interfaces"
	gatewayInterfaces "github.com/ochairo/cefrelease/internal/domain/interfaces/gateways"
	"github.com/ochairo/cefrelease/internal/domain/services"
)

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var flags catalogFlags
	flags.register(fs)
	var (
		platform = fs.String("platform", "", "Platform the archives were downloaded for (default: primary platform)")
		dir      = fs.String("dir", ".", "Directory containing downloaded archives")
		keyring  = fs.String("keyring", "", "Public keyring file; enables detached signature checks (.asc/.sig)")
		keysURL  = fs.String("keys-url", "", "URL of a KEYS file; enables detached signature checks")
		quiet    = fs.Bool("quiet", false, "Only output errors (exit code indicates success/failure)")
		verbose  = fs.Bool("verbose", false, "Print debug diagnostics")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: cefrelease verify [options] <version>

Verify downloaded CEF archives against the SHA-1 checksums published in the
build index and, when a keyring is given, their detached OpenPGP signatures.

Arguments:
  version    CEF version as listed in the build index (required)

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Exit Codes:
  0  All archives found were verified
  1  Verification failed or no archives were found
  2  Usage error or system error

Examples:
  cefrelease verify --platform linux64 --dir ./deps 120.1.10+g3ce3184+chromium-120.0.6099.129
  cefrelease verify --keyring cef.asc 120.1.10+g3ce3184+chromium-120.0.6099.129
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

	opts := verifyOptions{
		version:  fs.Arg(0),
		platform: *platform,
		dir:      *dir,
		keyring:  *keyring,
		keysURL:  *keysURL,
		quiet:    *quiet,
		verbose:  *verbose,
	}

	ok, err := executeVerify(ctx, &flags, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	if !ok {
		os.Exit(exitNegative)
	}
}

type verifyOptions struct {
	version  string
	platform string
	dir      string
	keyring  string
	keysURL  string
	quiet    bool
	verbose  bool
}

func executeVerify(ctx context.Context, flags *catalogFlags, opts verifyOptions) (bool, error) {
	cfg, err := flags.load(ctx)
	if err != nil {
		return false, err
	}

	platform := opts.platform
	if platform == "" {
		platform = cfg.PrimaryPlatform
	}

	logger := newLogger(opts.quiet, opts.verbose)
	release := orchestrators.NewReleaseOrchestrator(
		gateways.NewCatalogFetcher(cfg.IndexURL),
		services.NewVersionSelector(),
		logger,
		cfg,
	)

	entry, err := release.Lookup(ctx, platform, opts.version)
	if err != nil {
		return false, err
	}

	// A nil interface disables signature checks
	var signatures gatewayInterfaces.SignatureVerifier
	if opts.keyring != "" || opts.keysURL != "" {
		gpg := gateways.NewGPGVerifier()
		if opts.keyring != "" {
			if err := gpg.ImportKeyFromFile(opts.keyring); err != nil {
				return false, err
			}
		}
		if opts.keysURL != "" {
			if err := gpg.ImportKeysFromURL(ctx, opts.keysURL); err != nil {
				return false, err
			}
		}
		logger.Debug("loaded keyring", interfaces.F("keys", gpg.KeyringSize()))
		signatures = gpg
	}

	finder := gateways.NewArtifactFinder()
	verifier := orchestrators.NewVerificationOrchestrator(finder, finder, gateways.NewChecksumVerifier(), signatures, logger)

	if !opts.quiet {
		fmt.Printf("🔍 Verifying CEF %s (%s) in %s\n\n", entry.Version, platform, opts.dir)
	}

	result, err := verifier.VerifyArtifacts(ctx, opts.dir, platform, entry)
	if err != nil {
		return false, err
	}

	if !opts.quiet {
		for _, r := range result.Results {
			name := filepath.Base(r.Artifact.Path)
			if r.OK() {
				suffix := ""
				if r.SignatureChecked {
					suffix = " (signature " + filepath.Base(r.SignaturePath) + ")"
				}
				fmt.Printf("✅ %s%s\n", name, suffix)
			} else {
				fmt.Printf("❌ %s: %s\n", name, r.Error)
			}
		}

		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		fmt.Printf("✅ Verified: %d archives\n", result.Passed)
		if result.Failed > 0 {
			fmt.Printf("❌ Failed: %d archives\n", result.Failed)
		}
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}

	if len(result.Results) == 0 {
		fmt.Fprintf(os.Stderr, "No archives of %s found in %s\n", opts.version, opts.dir)
	}

	return result.OK(), nil
}
