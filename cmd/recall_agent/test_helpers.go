package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the recall_agent binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "recall_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}

// envWithout returns the current environment minus the named variables.
func envWithout(names ...string) []string {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}

	var env []string
	for _, e := range os.Environ() {
		keep := true
		for name := range drop {
			if len(e) > len(name) && e[:len(name)+1] == name+"=" {
				keep = false
				break
			}
		}
		if keep {
			env = append(env, e)
		}
	}
	return env
}
