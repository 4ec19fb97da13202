package restore

import "strings"

// DefaultSentinel prefixes every top-level marker line in a development log.
const DefaultSentinel = "\U0001f98a" // 🦊

const (
	initialMarkerText  = "=== Initial version of "
	codeChangesText    = "=== Code changes at"
	topLevelMarkerText = "==="
	prevVersionHeader  = "--- previous version"
	currVersionHeader  = "+++ current version"
)

// Log is the parsed form of a development log: the initial snapshot plus the
// ordered change records that follow it.
type Log struct {
	Snapshot string
	Diffs    []DiffBlock
}

// DiffBlock is one recorded change. Index is the 1-based position of the
// block in the log; application order equals log order.
type DiffBlock struct {
	Index int
	Body  string
}

// ParseLog extracts the initial snapshot and the ordered change records from
// raw log text. Line endings must already be normalized to "\n" by the
// caller. An empty sentinel selects DefaultSentinel.
//
// The function is pure: identical input always yields an identical Log or an
// identical error.
func ParseLog(input, sentinel string) (*Log, error) {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	lines := strings.Split(input, "\n")

	start := -1
	for i, line := range lines {
		if isInitialMarker(line, sentinel) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, &Error{
			Message: "log has no initial-version marker",
			Code:    CodeMissingInitialVersion,
		}
	}

	// The snapshot body runs from the line after the marker to the first
	// code-changes marker, or the end of the log. Capturing whole lines here
	// (instead of slicing raw text after the marker's newline) is what keeps
	// line numbering aligned for every later context check.
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if isCodeChangesMarker(lines[i], sentinel) {
			end = i
			break
		}
	}
	snapshot := strings.Join(lines[start+1:end], "\n")

	log := &Log{Snapshot: snapshot}
	for _, body := range scanDiffBodies(lines[end:], sentinel) {
		log.Diffs = append(log.Diffs, DiffBlock{Index: len(log.Diffs) + 1, Body: body})
	}
	return log, nil
}

// scanDiffBodies collects change-record bodies from the tail of the log, in
// file order. A record starts with the fixed two-line header and its body
// ends at the next top-level marker or end of input. Zero records is valid.
func scanDiffBodies(lines []string, sentinel string) []string {
	var bodies []string
	for i := 0; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") != prevVersionHeader {
			continue
		}
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		if j >= len(lines) || strings.TrimRight(lines[j], " \t") != currVersionHeader {
			continue
		}
		bodyStart := j + 1
		bodyEnd := len(lines)
		for k := bodyStart; k < len(lines); k++ {
			if isTopLevelMarker(lines[k], sentinel) {
				bodyEnd = k
				break
			}
		}
		bodies = append(bodies, strings.Join(lines[bodyStart:bodyEnd], "\n"))
		i = bodyEnd - 1
	}
	return bodies
}

func isInitialMarker(line, sentinel string) bool {
	rest, ok := strings.CutPrefix(line, sentinel)
	if !ok {
		return false
	}
	if !strings.HasPrefix(rest, initialMarkerText) {
		return false
	}
	return strings.HasSuffix(strings.TrimRight(rest, " \t"), " ===")
}

func isCodeChangesMarker(line, sentinel string) bool {
	rest, ok := strings.CutPrefix(line, sentinel)
	return ok && strings.HasPrefix(rest, codeChangesText)
}

func isTopLevelMarker(line, sentinel string) bool {
	rest, ok := strings.CutPrefix(line, sentinel)
	return ok && strings.HasPrefix(rest, topLevelMarkerText)
}
