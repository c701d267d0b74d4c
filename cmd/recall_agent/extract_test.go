package main

import (
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCommand_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	cmd := exec.Command(binaryPath, "extract",
		"--data-dir", filepath.Join(tmpDir, "data"))
	cmd.Env = envWithout("GEMINI_API_KEY")

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "GEMINI_API_KEY environment variable or --api-key flag is required")
}

func TestExtractCommand_EmptyRawDir(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	cmd := exec.Command(binaryPath, "extract",
		"--data-dir", filepath.Join(tmpDir, "data"),
		"--api-key", "dummy-key")
	cmd.Env = envWithout("GEMINI_API_KEY")

	output, err := cmd.CombinedOutput()

	// No raw records is not an error; the command reports it and exits 0.
	assert.NoError(t, err, string(output))
	assert.Contains(t, string(output), "No raw records to extract")
}

func TestAnalyzeCommand_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	cmd := exec.Command(binaryPath, "analyze",
		"--data-dir", filepath.Join(tmpDir, "data"))
	cmd.Env = envWithout("GEMINI_API_KEY")

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "GEMINI_API_KEY environment variable or --api-key flag is required")
}

func TestReportCommand_MissingAPIKey(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	cmd := exec.Command(binaryPath, "report",
		"--data-dir", filepath.Join(tmpDir, "data"))
	cmd.Env = envWithout("GEMINI_API_KEY")

	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "GEMINI_API_KEY environment variable or --api-key flag is required")
}
