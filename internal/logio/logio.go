// Package logio handles the file boundary of a restore run: reading log
// files with normalized line endings and writing restored output with a
// single trailing terminator.
package logio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadLog reads the whole log file and normalizes CRLF and bare CR line
// endings to "\n", so the parser only ever sees one terminator convention.
func ReadLog(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return normalized, nil
}

// WriteRestored writes the restored text to path, creating parent
// directories as needed. The text is normalized to end with exactly one
// terminator. Callers invoke this only after a fully successful run, so a
// failed run never clobbers an existing target.
func WriteRestored(path, text string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}
	normalized := strings.TrimRight(text, "\n") + "\n"
	if err := os.WriteFile(path, []byte(normalized), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
