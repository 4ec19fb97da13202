package restore

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// hunkHeaderRegex parses "@@ -<oldStart>[,<oldCount>] +<newStart>[,<newCount>] @@".
// Only oldStart matters for application; the remaining numbers are accepted
// and ignored.
var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))?`)

type opKind int

const (
	opContext opKind = iota
	opAdd
	opRemove
	opUnknown
)

// lineOp is one tagged line operation inside a hunk. For opUnknown the raw
// line is kept so the applicator can surface it in a warning.
type lineOp struct {
	kind opKind
	text string
	raw  string
}

// hunk is a contiguous patch unit: an old-file anchor plus ordered line
// operations. oldStart is 1-based; values <= 0 mean start of file.
type hunk struct {
	header   string
	oldStart int
	ops      []lineOp
}

// anchor returns the 0-based source index the hunk starts at.
func (h hunk) anchor() int {
	if h.oldStart > 0 {
		return h.oldStart - 1
	}
	return 0
}

// diffPlan is the parsed form of one change-record body: either a list of
// hunks, or an append-only tail for bodies without an "@@" header. An empty
// plan (no hunks, not append-only) applies as the identity.
type diffPlan struct {
	appendOnly  bool
	appendLines []string
	hunks       []hunk
}

// parseDiffBody turns a raw change-record body into a diffPlan.
//
// Bodies whose first line is not a hunk header are accepted only when every
// line is blank or "+"-prefixed; such blocks append their stripped lines
// after the current end of file. Anything else is an unrecognized format.
// Hunks are assumed already ordered by increasing old-line position and are
// not re-sorted.
func parseDiffBody(body string) (diffPlan, *Error) {
	if body == "" {
		return diffPlan{}, nil
	}
	lines := strings.Split(body, "\n")

	if !strings.HasPrefix(lines[0], "@@") {
		appendable := true
		for _, line := range lines {
			if !strings.HasPrefix(line, "+") && strings.TrimSpace(line) != "" {
				appendable = false
				break
			}
		}
		if !appendable {
			return diffPlan{}, &Error{
				Message: fmt.Sprintf("unrecognized diff format (no hunk header): %q", lines[0]),
				Code:    CodeUnrecognizedDiff,
			}
		}
		plan := diffPlan{appendOnly: true}
		for _, line := range lines {
			if strings.HasPrefix(line, "+") {
				plan.appendLines = append(plan.appendLines, line[1:])
			}
		}
		return plan, nil
	}

	var headerIndices []int
	for i, line := range lines {
		if strings.HasPrefix(line, "@@") {
			headerIndices = append(headerIndices, i)
		}
	}

	var plan diffPlan
	for i, start := range headerIndices {
		end := len(lines)
		if i+1 < len(headerIndices) {
			end = headerIndices[i+1]
		}
		h, err := parseHunk(lines[start], lines[start+1:end])
		if err != nil {
			return diffPlan{}, err
		}
		plan.hunks = append(plan.hunks, h)
	}
	return plan, nil
}

func parseHunk(header string, body []string) (hunk, *Error) {
	match := hunkHeaderRegex.FindStringSubmatch(strings.TrimSpace(header))
	if match == nil {
		return hunk{}, &Error{
			Message:    fmt.Sprintf("cannot parse hunk header: %q", header),
			Code:       CodeBadHunkHeader,
			HunkHeader: header,
		}
	}
	oldStart, err := strconv.Atoi(match[1])
	if err != nil {
		return hunk{}, &Error{
			Message:    fmt.Sprintf("invalid line number in hunk header %q: %v", header, err),
			Code:       CodeBadHunkHeader,
			HunkHeader: header,
		}
	}

	h := hunk{header: header, oldStart: oldStart}
	for _, line := range body {
		if line == "" {
			continue
		}
		op := lineOp{text: line[1:], raw: line}
		switch line[0] {
		case ' ':
			op.kind = opContext
		case '+':
			op.kind = opAdd
		case '-':
			op.kind = opRemove
		default:
			op.kind = opUnknown
			op.text = ""
		}
		h.ops = append(h.ops, op)
	}
	return h, nil
}
