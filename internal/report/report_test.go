package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuccessReportValidates(t *testing.T) {
	r := Success("session.log", "out.py", 3, []string{"change record #2: skipped line"})

	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.NoError(t, Validate(data))
}

func TestFailedReportValidates(t *testing.T) {
	r := Failed("session.log", 1, Failure{
		Code:      "CONTEXT_MISMATCH",
		Message:   "context line does not match source at line 2",
		DiffIndex: 2,
		Line:      2,
		Expected:  "b",
		Actual:    "B",
	})

	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.NoError(t, Validate(data))
}

func TestValidateRejectsUnknownStatus(t *testing.T) {
	err := Validate([]byte(`{"status":"maybe","logFile":"a.log","diffsApplied":0}`))
	require.Error(t, err)
	require.ErrorContains(t, err, "schema validation")
}

func TestValidateRejectsMissingFields(t *testing.T) {
	err := Validate([]byte(`{"status":"ok"}`))
	require.Error(t, err)
}

func TestWriteProducesValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	r := Success("session.log", "out.py", 0, nil)
	require.NoError(t, r.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, Validate(data))

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "ok", decoded.Status)
	require.Equal(t, "out.py", decoded.OutputFile)
}
