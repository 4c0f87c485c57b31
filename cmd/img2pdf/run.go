package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	img2pdf "github.com/alnah/go-img2pdf"
	"github.com/alnah/go-img2pdf/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input directory specified")
	ErrTooManyArgs  = errors.New("expected exactly one input directory")
	ErrWritePDF     = errors.New("failed to write PDF file")
	ErrInvalidFlags = errors.New("invalid flags")
)

// filePermissions is rw-r--r--: owner read+write, others read.
const filePermissions = 0o644

// timeResolution rounds verbose timing output.
const timeResolution = time.Millisecond

// run parses flags, resolves configuration, and drives the conversion.
func run(args []string, env *Environment) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "img2pdf %s\n", Version)
		return nil
	}

	// Load configuration
	cfg := config.DefaultConfig()
	if flags.config != "" {
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	if len(positional) == 0 {
		printUsage(env.Stderr)
		return ErrNoInput
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: got %d", ErrTooManyArgs, len(positional))
	}

	dir, err := filepath.Abs(positional[0])
	if err != nil {
		return fmt.Errorf("resolving input path: %w", err)
	}

	// Scan up front so progress lines appear before the heavy stages.
	listing, err := img2pdf.Collect(dir)
	if err != nil {
		return err
	}

	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Found %d image(s).\n", len(listing.Images))
		if listing.HasReadme() && !cfg.Readme.Skip {
			fmt.Fprintln(env.Stdout, "Converting README.md ...")
		}
		fmt.Fprintln(env.Stdout, "Rendering images ...")
	}

	start := env.Now()
	conv := img2pdf.NewConverter()
	result, err := conv.Convert(context.Background(), img2pdf.Input{
		Dir: dir,
		Page: &img2pdf.PageSettings{
			Size:   cfg.Page.Size,
			Margin: cfg.Page.Margin,
			DPI:    cfg.Page.DPI,
		},
		SkipReadme: cfg.Readme.Skip,
	})
	if err != nil {
		return err
	}

	outputPath := resolveOutputPath(dir, flags.output, cfg)
	if err := os.WriteFile(outputPath, result.PDF, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWritePDF, outputPath, err)
	}

	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "Written %d page(s) -> %s\n", result.Pages, outputPath)
	}
	if flags.verbose {
		fmt.Fprintf(env.Stderr, "Converted %d image(s), %d preface page(s) in %s\n",
			result.Images, result.PrefacePages, env.Now().Sub(start).Round(timeResolution))
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.pageSize != "" {
		cfg.Page.Size = flags.pageSize
	}
	if flags.margin != 0 {
		cfg.Page.Margin = flags.margin
	}
	if flags.dpi != 0 {
		cfg.Page.DPI = flags.dpi
	}
	if flags.noReadme {
		cfg.Readme.Skip = true
	}
}

// resolveOutputPath determines where the merged document is written.
// Default is <parent of dir>/<dir name>.pdf. An --output value ending in
// .pdf is used verbatim; any other value is treated as a directory.
func resolveOutputPath(dir, override string, cfg *config.Config) string {
	name := filepath.Base(dir) + ".pdf"

	if override != "" {
		if strings.HasSuffix(override, ".pdf") {
			return override
		}
		return filepath.Join(override, name)
	}
	if cfg.Output.Dir != "" {
		return filepath.Join(cfg.Output.Dir, name)
	}
	return filepath.Join(filepath.Dir(dir), name)
}
