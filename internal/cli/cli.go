// Package cli wires the restore engine to the command line: flag parsing,
// environment configuration, file I/O, and status reporting.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"restorelog/internal/logio"
	"restorelog/internal/report"
	"restorelog/internal/ui"
	"restorelog/pkg/restore"
)

// Run restores a development log using the provided CLI arguments. It
// returns a POSIX-style exit code indicating whether execution succeeded.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine, but other errors should be surfaced to help with debugging.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
			return 1
		}
	}

	defaultSentinel := os.Getenv("RESTORELOG_SENTINEL")
	if defaultSentinel == "" {
		defaultSentinel = restore.DefaultSentinel
	}

	flags := pflag.NewFlagSet("restorelog", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	sentinel := flags.String("sentinel", defaultSentinel, "marker prefix of top-level log sections")
	reportPath := flags.String("report", "", "write a JSON run report to this path")
	quiet := flags.BoolP("quiet", "q", false, "suppress status output (errors are still printed)")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: restorelog [flags] <log-file> <output-file>")
		fmt.Fprintln(stderr, "\nRestore the final version of a source file from a development log.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	positionals := flags.Args()
	if len(positionals) != 2 {
		flags.Usage()
		return 2
	}
	logPath, outputPath := positionals[0], positionals[1]

	printer := ui.NewPrinter(stderr, *quiet)
	printer.Header("--- Restoring from %s ---", filepath.Base(logPath))

	input, err := logio.ReadLog(logPath)
	if err != nil {
		printer.Error("%v", err)
		return 1
	}

	printer.Info("parsing snapshot and change records")
	result, err := restore.Restore(ctx, input, restore.Options{Sentinel: *sentinel})
	if err != nil {
		return failRun(printer, stderr, *reportPath, logPath, err)
	}

	for _, warning := range result.Warnings {
		printer.Warning("%s", warning)
	}
	printer.Info("applied %d change record(s)", result.DiffsApplied)

	if err := logio.WriteRestored(outputPath, result.Text); err != nil {
		printer.Error("%v", err)
		return 1
	}
	if *reportPath != "" {
		summary := report.Success(logPath, outputPath, result.DiffsApplied, result.Warnings)
		if err := summary.Write(*reportPath); err != nil {
			printer.Warning("%v", err)
		}
	}
	printer.Success("--- Wrote %s ---", outputPath)
	return 0
}

// failRun reports a failed restore. The output target is left untouched.
func failRun(printer *ui.Printer, stderr io.Writer, reportPath, logPath string, err error) int {
	var rerr *restore.Error
	if errors.As(err, &rerr) {
		fmt.Fprintln(stderr, restore.FormatError(rerr))
		if reportPath != "" {
			applied := rerr.DiffIndex - 1
			if applied < 0 {
				applied = 0
			}
			summary := report.Failed(logPath, applied, report.Failure{
				Code:      string(rerr.Code),
				Message:   rerr.Message,
				DiffIndex: rerr.DiffIndex,
				Line:      rerr.Line,
				Expected:  rerr.Expected,
				Actual:    rerr.Actual,
			})
			if werr := summary.Write(reportPath); werr != nil {
				printer.Warning("%v", werr)
			}
		}
		return 1
	}
	printer.Error("%v", err)
	return 1
}
