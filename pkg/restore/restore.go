package restore

import (
	"context"
	"fmt"
)

// Options configure a restore run.
type Options struct {
	// Sentinel overrides the marker prefix used by the log grammar. Empty
	// selects DefaultSentinel.
	Sentinel string
}

// Result is the outcome of a successful restore run.
type Result struct {
	// Text is the final restored text, without a trailing terminator.
	Text string
	// DiffsApplied is the number of change records applied.
	DiffsApplied int
	// Warnings lists skipped lines that carried an unknown marker. Advisory
	// only; a run with warnings still succeeded.
	Warnings []string
}

// Restore parses a development log and threads the snapshot through every
// change record in log order. The run is strictly fail-fast: the first error
// aborts it, tagged with the 1-based index of the failing record, and any
// partial text is discarded. There is no retry, reordering, or recovery.
func Restore(ctx context.Context, input string, opts Options) (*Result, error) {
	log, err := ParseLog(input, opts.Sentinel)
	if err != nil {
		return nil, err
	}

	result := &Result{Text: log.Snapshot}
	for _, block := range log.Diffs {
		if ctx.Err() != nil {
			return nil, &Error{Message: ctx.Err().Error(), Code: CodeCanceled, DiffIndex: block.Index}
		}
		next, warnings, applyErr := applyDiffLines(splitSourceLines(result.Text), block)
		if applyErr != nil {
			applyErr.DiffIndex = block.Index
			return nil, applyErr
		}
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("change record #%d: %s", block.Index, w))
		}
		result.Text = joinLines(next)
		result.DiffsApplied = block.Index
	}
	return result, nil
}
