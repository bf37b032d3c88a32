package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/ochairo/cefrelease/internal/domain/services"
)

func runNotes(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("notes", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "Pipeline config file (default .cefrelease.yml if present)")
		label      = fs.String("label", "", "Link label (default \"VirusTotal analysis\")")
		delimiter  = fs.String("delimiter", "", "Separator between file=url pairs (default \",\")")
		refEnv     = fs.String("ref-env", "", "Environment variable holding the git ref (default GITHUB_REF)")
		ref        = fs.String("ref", "", "Git ref to derive the version header from (overrides --ref-env)")
		output     = fs.String("output", "", "Write the notes to this file instead of stdout")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: cefrelease notes [options] <analysis>

Format a list of file=url pairs as Markdown release notes. When the git ref
is a tag, the notes start with a version header.

Arguments:
  analysis   Delimiter-separated file=url pairs, or "-" to read from stdin

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Exit Codes:
  0  Notes written
  2  Usage error or malformed analysis list

Examples:
  cefrelease notes "plugin.zip=https://www.virustotal.com/gui/file/abc"
  echo "$ANALYSIS" | cefrelease notes --output notes.md -
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(exitError)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: analysis list is required\n\n")
		fs.Usage()
		os.Exit(exitError)
	}

	opts := notesOptions{
		configPath: *configPath,
		label:      *label,
		delimiter:  *delimiter,
		refEnv:     *refEnv,
		ref:        *ref,
		output:     *output,
	}
	if err := executeNotes(ctx, fs.Arg(0), opts, afero.NewOsFs()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
}

type notesOptions struct {
	configPath string
	label      string
	delimiter  string
	refEnv     string
	ref        string
	output     string
}

func executeNotes(ctx context.Context, analysis string, opts notesOptions, fsys afero.Fs) error {
	cfg, err := loadConfig(ctx, opts.configPath)
	if err != nil {
		return err
	}

	notesCfg := cfg.Notes
	if opts.label != "" {
		notesCfg.Label = opts.label
	}
	if opts.delimiter != "" {
		notesCfg.Delimiter = opts.delimiter
	}
	if opts.refEnv != "" {
		notesCfg.RefEnv = opts.refEnv
	}

	if analysis == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read analysis from stdin: %w", err)
		}
		analysis = strings.TrimSpace(string(data))
	}

	ref := opts.ref
	if ref == "" {
		ref = os.Getenv(notesCfg.RefEnv)
	}

	notes, err := services.NewReleaseNotesService(notesCfg.Label, notesCfg.Delimiter).Format(analysis, ref)
	if err != nil {
		return err
	}

	if opts.output == "" {
		fmt.Println(notes.Body)
		return nil
	}

	if err := afero.WriteFile(fsys, opts.output, []byte(notes.Body+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write notes: %w", err)
	}
	return nil
}
