package main

import (
	"context"
	"fmt"
	"os"
)

// Exit codes shared by all subcommands
const (
	exitOK       = 0
	exitNegative = 1
	exitError    = 2
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitError)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "latest":
		runLatest(ctx, os.Args[2:])
	case "notes":
		runNotes(ctx, os.Args[2:])
	case "validate":
		runValidate(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(exitError)
	}
}

func printUsage() {
	fmt.Println(`cefrelease - CEF release pipeline helpers

Usage:
  cefrelease <command> [options]

Commands:
  latest    Print the newest stable CEF version available on all required platforms
  notes     Format VirusTotal analysis links as Markdown release notes
  validate  Check platform coverage and stability of a CEF version
  verify    Verify downloaded CEF archives against the build index

Use "cefrelease <command> --help" for more information about a command.`)
}
