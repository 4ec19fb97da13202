package restore

import (
	"strings"
	"testing"
)

func TestParseDiffBodyEmptyIsIdentity(t *testing.T) {
	t.Parallel()

	plan, err := parseDiffBody("")
	if err != nil {
		t.Fatalf("parseDiffBody returned error: %v", err)
	}
	if plan.appendOnly || len(plan.hunks) != 0 {
		t.Fatalf("expected empty plan, got %+v", plan)
	}
}

func TestParseDiffBodyAppendOnly(t *testing.T) {
	t.Parallel()

	body := strings.Join([]string{"+one", "", "   ", "+two"}, "\n")
	plan, err := parseDiffBody(body)
	if err != nil {
		t.Fatalf("parseDiffBody returned error: %v", err)
	}
	if !plan.appendOnly {
		t.Fatalf("expected append-only plan, got %+v", plan)
	}
	if len(plan.appendLines) != 2 || plan.appendLines[0] != "one" || plan.appendLines[1] != "two" {
		t.Fatalf("unexpected append lines: %#v", plan.appendLines)
	}
}

func TestParseDiffBodyUnrecognizedFormat(t *testing.T) {
	t.Parallel()

	_, err := parseDiffBody("this is not a diff")
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Code != CodeUnrecognizedDiff {
		t.Fatalf("unexpected code: %s", err.Code)
	}
}

func TestParseDiffBodySplitsHunksAtHeaders(t *testing.T) {
	t.Parallel()

	body := strings.Join([]string{
		"@@ -1,2 +1,2 @@",
		" a",
		"-b",
		"+B",
		"@@ -5,1 +5,1 @@",
		"-e",
		"+E",
	}, "\n")

	plan, err := parseDiffBody(body)
	if err != nil {
		t.Fatalf("parseDiffBody returned error: %v", err)
	}
	if len(plan.hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(plan.hunks))
	}
	if plan.hunks[0].oldStart != 1 || plan.hunks[1].oldStart != 5 {
		t.Fatalf("unexpected anchors: %d, %d", plan.hunks[0].oldStart, plan.hunks[1].oldStart)
	}
	if len(plan.hunks[0].ops) != 3 || len(plan.hunks[1].ops) != 2 {
		t.Fatalf("unexpected op counts: %d, %d", len(plan.hunks[0].ops), len(plan.hunks[1].ops))
	}
}

func TestParseHunkHeaderWithoutCounts(t *testing.T) {
	t.Parallel()

	plan, err := parseDiffBody("@@ -3 +3 @@\n+x")
	if err != nil {
		t.Fatalf("parseDiffBody returned error: %v", err)
	}
	if len(plan.hunks) != 1 || plan.hunks[0].oldStart != 3 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestParseHunkBadHeaderCarriesHeaderText(t *testing.T) {
	t.Parallel()

	_, err := parseDiffBody("@@ not a header @@\n x")
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Code != CodeBadHunkHeader {
		t.Fatalf("unexpected code: %s", err.Code)
	}
	if !strings.Contains(err.HunkHeader, "not a header") {
		t.Fatalf("header text missing from error: %+v", err)
	}
}

func TestHunkAnchorTreatsNonPositiveAsStartOfFile(t *testing.T) {
	t.Parallel()

	if got := (hunk{oldStart: 0}).anchor(); got != 0 {
		t.Fatalf("anchor for oldStart 0: got %d", got)
	}
	if got := (hunk{oldStart: 4}).anchor(); got != 3 {
		t.Fatalf("anchor for oldStart 4: got %d", got)
	}
}

func TestParseHunkSkipsEmptyLinesAndKeepsUnknown(t *testing.T) {
	t.Parallel()

	plan, err := parseDiffBody(strings.Join([]string{
		"@@ -1,1 +1,1 @@",
		"",
		" a",
		`\ No newline at end of file`,
	}, "\n"))
	if err != nil {
		t.Fatalf("parseDiffBody returned error: %v", err)
	}
	ops := plan.hunks[0].ops
	if len(ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(ops))
	}
	if ops[0].kind != opContext || ops[0].text != "a" {
		t.Fatalf("unexpected first op: %+v", ops[0])
	}
	if ops[1].kind != opUnknown || !strings.HasPrefix(ops[1].raw, `\`) {
		t.Fatalf("unexpected second op: %+v", ops[1])
	}
}
