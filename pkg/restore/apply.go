package restore

import (
	"fmt"
	"strings"
)

// ApplyDiff applies one change record to the current source text and returns
// the next text. The input is never mutated; on failure no partially-applied
// result is returned. Warnings report skipped lines with an unknown marker
// and never affect the outcome.
//
// Lines are joined with "\n"; whether the final text carries a trailing
// terminator is left to the caller.
func ApplyDiff(source string, block DiffBlock) (string, []string, error) {
	lines, warnings, err := applyDiffLines(splitSourceLines(source), block)
	if err != nil {
		return "", nil, err
	}
	return joinLines(lines), warnings, nil
}

func applyDiffLines(source []string, block DiffBlock) ([]string, []string, *Error) {
	plan, err := parseDiffBody(block.Body)
	if err != nil {
		return nil, nil, err
	}

	if plan.appendOnly {
		result := make([]string, 0, len(source)+len(plan.appendLines))
		result = append(result, source...)
		result = append(result, plan.appendLines...)
		return result, nil, nil
	}

	if len(plan.hunks) == 0 {
		return append([]string(nil), source...), nil, nil
	}

	var (
		result   []string
		warnings []string
		cursor   int
	)
	for _, h := range plan.hunks {
		partial, cursorOut, warns, err := applyHunk(source, cursor, h)
		if err != nil {
			return nil, nil, err
		}
		result = append(result, partial...)
		warnings = append(warnings, warns...)
		cursor = cursorOut
	}
	if cursor < len(source) {
		result = append(result, source[cursor:]...)
	}
	return result, warnings, nil
}

// applyHunk applies a single hunk as a pure step of a fold: given the full
// source and the cursor left by the previous hunk, it returns the lines this
// hunk contributes to the result and the cursor for the next hunk.
func applyHunk(source []string, cursorIn int, h hunk) ([]string, int, []string, *Error) {
	anchor := h.anchor()
	if anchor < cursorIn {
		return nil, 0, nil, &Error{
			Message:    fmt.Sprintf("hunk anchors at line %d but a previous hunk already consumed the source through line %d", anchor+1, cursorIn),
			Code:       CodeOverlappingHunk,
			Line:       anchor + 1,
			HunkHeader: h.header,
		}
	}

	var partial []string
	// Copy-through: source lines strictly between the previous hunk's end and
	// this hunk's anchor pass into the result unchanged.
	if anchor > cursorIn {
		copyEnd := anchor
		if copyEnd > len(source) {
			copyEnd = len(source)
		}
		if copyEnd > cursorIn {
			partial = append(partial, source[cursorIn:copyEnd]...)
		}
	}

	cursor := anchor
	var warnings []string
	for _, op := range h.ops {
		switch op.kind {
		case opContext:
			if cursor >= len(source) || source[cursor] != op.text {
				return nil, 0, nil, mismatchError(CodeContextMismatch, "context line does not match source", source, cursor, op.text, h.header)
			}
			partial = append(partial, op.text)
			cursor++
		case opRemove:
			if cursor >= len(source) || source[cursor] != op.text {
				return nil, 0, nil, mismatchError(CodeDeletionMismatch, "line to delete does not match source", source, cursor, op.text, h.header)
			}
			cursor++
		case opAdd:
			partial = append(partial, op.text)
		case opUnknown:
			warnings = append(warnings, fmt.Sprintf("unrecognized diff line skipped: %q", op.raw))
		}
	}
	return partial, cursor, warnings, nil
}

func mismatchError(code Code, message string, source []string, cursor int, expected, header string) *Error {
	actual := EOFMarker
	if cursor < len(source) {
		actual = source[cursor]
	}
	return &Error{
		Message:    fmt.Sprintf("%s at line %d", message, cursor+1),
		Code:       code,
		Line:       cursor + 1,
		Expected:   expected,
		Actual:     actual,
		HunkHeader: header,
	}
}

// splitSourceLines splits "\n"-normalized text into lines: the empty string
// has no lines, and a single trailing terminator does not produce a final
// empty line.
func splitSourceLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
