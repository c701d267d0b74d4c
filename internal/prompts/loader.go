// Package prompts loads the LLM prompt templates used by the extraction,
// analysis, and reporting stages. Templates live in JSON files embedded at
// compile time, keyed by prompt name, so prompt wording can change without
// touching stage code.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var templateFS embed.FS

// Parsed files are cached; each file is read and unmarshaled at most once.
var (
	mu    sync.Mutex
	files = make(map[string]map[string]string)
)

// Get returns the prompt stored under key in the given file. The filename
// is bare (e.g. "extraction.json"), not a path.
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the stages cannot run without. A missing file
// or key is a packaging error, so it panics.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders in template with values from
// data. Placeholders with no matching key are left in place.
func Format(template string, data map[string]string) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{."+key+"}}", value)
	}
	return out
}

// List returns the prompt keys available in a file.
func List(filename string) ([]string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	return keys, nil
}

// ClearCache drops all cached files. Useful for testing.
func ClearCache() {
	mu.Lock()
	files = make(map[string]map[string]string)
	mu.Unlock()
}

func loadFile(filename string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()

	if prompts, ok := files[filename]; ok {
		return prompts, nil
	}

	data, err := templateFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	files[filename] = prompts
	return prompts, nil
}
