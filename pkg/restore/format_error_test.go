package restore

import (
	"strings"
	"testing"
)

func TestFormatErrorNil(t *testing.T) {
	t.Parallel()

	if got := FormatError(nil); got != "Unknown error occurred." {
		t.Fatalf("FormatError(nil) = %q", got)
	}
}

func TestFormatErrorContextMismatchIncludesDiff(t *testing.T) {
	t.Parallel()

	rendered := FormatError(&Error{
		Message:    "context line does not match source at line 2",
		Code:       CodeContextMismatch,
		DiffIndex:  3,
		Line:       2,
		Expected:   "b",
		Actual:     "B",
		HunkHeader: "@@ -2,1 +2,1 @@",
	})

	for _, want := range []string{
		"[CONTEXT_MISMATCH]",
		"change record #3",
		"source line 2",
		`expected: "b"`,
		`actual:   "B"`,
		"--- expected",
		"+++ actual",
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("rendered error missing %q:\n%s", want, rendered)
		}
	}
}

func TestFormatErrorEOFSkipsDiffRendering(t *testing.T) {
	t.Parallel()

	rendered := FormatError(&Error{
		Message:   "context line does not match source at line 9",
		Code:      CodeContextMismatch,
		DiffIndex: 1,
		Line:      9,
		Expected:  "tail",
		Actual:    EOFMarker,
	})
	if strings.Contains(rendered, "+++ actual") {
		t.Fatalf("EOF mismatch should not render a diff:\n%s", rendered)
	}
	if !strings.Contains(rendered, `actual:   "EOF"`) {
		t.Fatalf("rendered error missing EOF marker:\n%s", rendered)
	}
}

func TestErrorMessageFallback(t *testing.T) {
	t.Parallel()

	var err *Error
	if err.Error() != "" {
		t.Fatalf("nil receiver should render empty message")
	}
	if (&Error{}).Error() != "restore error" {
		t.Fatalf("empty error should use fallback message")
	}
}
