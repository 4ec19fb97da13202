package restore

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Code classifies a restore failure.
type Code string

const (
	// CodeMissingInitialVersion means the log has no initial-version marker.
	CodeMissingInitialVersion Code = "MISSING_INITIAL_VERSION"
	// CodeUnrecognizedDiff means a change record body was neither hunks nor
	// an append-only block.
	CodeUnrecognizedDiff Code = "UNRECOGNIZED_DIFF_FORMAT"
	// CodeBadHunkHeader means an "@@" header could not be parsed.
	CodeBadHunkHeader Code = "BAD_HUNK_HEADER"
	// CodeContextMismatch means a context line did not match the source.
	CodeContextMismatch Code = "CONTEXT_MISMATCH"
	// CodeDeletionMismatch means a removed line did not match the source.
	CodeDeletionMismatch Code = "DELETION_MISMATCH"
	// CodeOverlappingHunk means a hunk anchored before the line cursor left
	// by the previous hunk.
	CodeOverlappingHunk Code = "OVERLAPPING_HUNK"
	// CodeCanceled means the surrounding context was canceled mid-run.
	CodeCanceled Code = "CANCELED"
)

// EOFMarker is reported as the actual content when a context or deletion
// check runs past the end of the source.
const EOFMarker = "EOF"

// Error represents a structured failure while restoring a log. It satisfies
// the error interface so it can be returned directly from the Restore and
// ApplyDiff helpers.
type Error struct {
	Message    string
	Code       Code
	DiffIndex  int    // 1-based index of the failing change record, 0 when not applicable
	Line       int    // 1-based line number in the pre-patch source, 0 when not applicable
	Expected   string // literal line the diff expected
	Actual     string // literal line found, or EOFMarker past end of source
	HunkHeader string // raw "@@" header of the failing hunk, when known
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return "restore error"
}

// FormatError renders an Error into a human readable message suitable for
// surfacing to end users. Mismatch failures include a small unified diff of
// the expected line against what the source actually contained.
func FormatError(err *Error) string {
	if err == nil {
		return "Unknown error occurred."
	}
	message := err.Message
	if message == "" {
		message = "Unknown error occurred."
	}

	var parts []string
	if err.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s] %s", err.Code, message))
	} else {
		parts = append(parts, message)
	}

	var where []string
	if err.DiffIndex > 0 {
		where = append(where, fmt.Sprintf("change record #%d", err.DiffIndex))
	}
	if err.Line > 0 {
		where = append(where, fmt.Sprintf("source line %d", err.Line))
	}
	if err.HunkHeader != "" {
		where = append(where, fmt.Sprintf("hunk %q", err.HunkHeader))
	}
	if len(where) > 0 {
		parts = append(parts, "at "+strings.Join(where, ", "))
	}

	if err.Code == CodeContextMismatch || err.Code == CodeDeletionMismatch {
		parts = append(parts, fmt.Sprintf("expected: %q", err.Expected))
		parts = append(parts, fmt.Sprintf("actual:   %q", err.Actual))
		if rendered := mismatchDiff(err.Expected, err.Actual); rendered != "" {
			parts = append(parts, "", rendered)
		}
	}

	return strings.Join(parts, "\n")
}

// mismatchDiff renders a one-line unified diff between the expected and
// actual content of a failed check. Returns "" when the actual side is EOF.
func mismatchDiff(expected, actual string) string {
	if actual == EOFMarker {
		return ""
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        []string{expected + "\n"},
		B:        []string{actual + "\n"},
		FromFile: "expected",
		ToFile:   "actual",
		Context:  1,
	})
	if err != nil {
		return ""
	}
	return strings.TrimRight(text, "\n")
}
