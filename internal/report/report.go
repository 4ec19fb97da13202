// Package report produces the machine-readable summary of a restore run for
// consumption by surrounding tooling. The restore engine never depends on a
// report being written; it is advisory output only.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// reportSchema constrains the JSON shape written for tooling. Reports are
// validated against it before they are written.
const reportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["status", "logFile", "diffsApplied"],
  "additionalProperties": false,
  "properties": {
    "status": {"type": "string", "enum": ["ok", "failed"]},
    "logFile": {"type": "string"},
    "outputFile": {"type": "string"},
    "diffsApplied": {"type": "integer", "minimum": 0},
    "warnings": {"type": "array", "items": {"type": "string"}},
    "failure": {
      "type": "object",
      "required": ["code", "message"],
      "additionalProperties": false,
      "properties": {
        "code": {"type": "string"},
        "message": {"type": "string"},
        "diffIndex": {"type": "integer", "minimum": 0},
        "line": {"type": "integer", "minimum": 0},
        "expected": {"type": "string"},
        "actual": {"type": "string"}
      }
    }
  }
}`

var (
	schemaLoader     gojsonschema.JSONLoader
	schemaLoaderOnce sync.Once
)

// Failure describes why a run aborted.
type Failure struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	DiffIndex int    `json:"diffIndex,omitempty"`
	Line      int    `json:"line,omitempty"`
	Expected  string `json:"expected,omitempty"`
	Actual    string `json:"actual,omitempty"`
}

// Report summarizes one restore run.
type Report struct {
	Status       string   `json:"status"`
	LogFile      string   `json:"logFile"`
	OutputFile   string   `json:"outputFile,omitempty"`
	DiffsApplied int      `json:"diffsApplied"`
	Warnings     []string `json:"warnings,omitempty"`
	Failure      *Failure `json:"failure,omitempty"`
}

// Success builds a report for a completed run.
func Success(logFile, outputFile string, diffsApplied int, warnings []string) *Report {
	return &Report{
		Status:       "ok",
		LogFile:      logFile,
		OutputFile:   outputFile,
		DiffsApplied: diffsApplied,
		Warnings:     warnings,
	}
}

// Failed builds a report for an aborted run.
func Failed(logFile string, diffsApplied int, failure Failure) *Report {
	return &Report{
		Status:       "failed",
		LogFile:      logFile,
		DiffsApplied: diffsApplied,
		Failure:      &failure,
	}
}

// Validate checks a serialized report against the embedded schema and
// returns the collected issues on mismatch.
func Validate(data []byte) error {
	schemaLoaderOnce.Do(func() {
		schemaLoader = gojsonschema.NewStringLoader(reportSchema)
	})
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("report schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}
	issues := make([]string, 0, len(result.Errors()))
	for _, issue := range result.Errors() {
		issues = append(issues, issue.String())
	}
	return fmt.Errorf("report failed schema validation: %s", strings.Join(issues, "; "))
}

// Write serializes the report, validates it, and writes it to path.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := Validate(data); err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
