package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRecordJSON = `{
	"id": "fda_20260810_F-1234-2026",
	"source": "FDA",
	"product_name": "Frozen Beef Lasagna",
	"reason": "Undeclared milk",
	"health_risk": "high",
	"distribution_scope": "national",
	"extracted_at": "2026-08-17T12:00:00Z"
}`

const invalidRecordJSON = `{
	"id": "fda_20260810_F-1234-2026",
	"source": "EPA",
	"health_risk": "catastrophic",
	"distribution_scope": "national",
	"extracted_at": "2026-08-17T12:00:00Z"
}`

func TestValidateCommand_MissingInputFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required flag(s) \"input\" not set")
}

func TestValidateCommand_ValidRecord(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	recordPath := filepath.Join(tmpDir, "record.json")
	require.NoError(t, os.WriteFile(recordPath, []byte(validRecordJSON), 0o644))

	cmd := exec.Command(binaryPath, "validate", "--input", recordPath)
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err, string(output))
	assert.Contains(t, string(output), "All 1 files valid")
}

func TestValidateCommand_InvalidRecord(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	recordPath := filepath.Join(tmpDir, "record.json")
	require.NoError(t, os.WriteFile(recordPath, []byte(invalidRecordJSON), 0o644))

	cmd := exec.Command(binaryPath, "validate", "--input", recordPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "FAIL "+recordPath)
	assert.Contains(t, string(output), "failed validation")
}

func TestValidateCommand_UnknownKind(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	recordPath := filepath.Join(tmpDir, "record.json")
	require.NoError(t, os.WriteFile(recordPath, []byte(validRecordJSON), 0o644))

	cmd := exec.Command(binaryPath, "validate", "--input", recordPath, "--kind", "raw")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown kind")
}
