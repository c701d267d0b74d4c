// Package store manages the on-disk pipeline layout: raw, processed, and
// analyzed record directories plus the reports directory. Directories act as
// an append-only queue between pipeline stages; every stage writes new files
// and never updates in place.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vualidon/food-recall-agent/internal/types"
)

// Default locations, relative to the working directory.
const (
	DefaultDataDir    = "data"
	DefaultReportsDir = "reports"
)

// Subdirectories of the data directory, one per pipeline stage output.
const (
	RawDirName       = "raw"
	ProcessedDirName = "processed"
	AnalyzedDirName  = "analyzed"
)

// Store provides access to the pipeline's file layout.
type Store struct {
	dataDir    string
	reportsDir string
}

// New creates a Store rooted at the given directories. Empty arguments fall
// back to the defaults.
func New(dataDir, reportsDir string) *Store {
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	if reportsDir == "" {
		reportsDir = DefaultReportsDir
	}
	return &Store{dataDir: dataDir, reportsDir: reportsDir}
}

// Init ensures the full directory layout exists.
func (s *Store) Init() error {
	dirs := []string{
		s.RawDir(),
		s.ProcessedDir(),
		s.AnalyzedDir(),
		s.reportsDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// RawDir returns the raw record directory.
func (s *Store) RawDir() string { return filepath.Join(s.dataDir, RawDirName) }

// ProcessedDir returns the extracted record directory.
func (s *Store) ProcessedDir() string { return filepath.Join(s.dataDir, ProcessedDirName) }

// AnalyzedDir returns the analyzed record directory.
func (s *Store) AnalyzedDir() string { return filepath.Join(s.dataDir, AnalyzedDirName) }

// ReportsDir returns the reports directory.
func (s *Store) ReportsDir() string { return s.reportsDir }

// RawFilename returns the canonical filename for a raw recall.
// FDA records use the enforcement report date and recall number
// (fda_<yyyymmdd>_<recall_number>.json) so re-collection overwrites rather
// than duplicates. USDA records use the collection timestamp and a generated
// id (usda_<yyyymmddhhmmss>_<uuid>.json).
func RawFilename(r *types.RawRecall) string {
	source := strings.ToLower(string(r.Source))
	if r.Source == types.SourceFDA && r.ReportDate != "" {
		return fmt.Sprintf("%s_%s_%s.json", source, r.ReportDate, r.ID)
	}
	return fmt.Sprintf("%s_%s_%s.json", source, r.CollectedAt.Format("20060102150405"), r.ID)
}

// Stem returns the filename of a record path without its extension. The stem
// is the record's stable identity for all downstream stages.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SaveRaw writes a raw recall into the raw directory and returns its path.
func (s *Store) SaveRaw(r *types.RawRecall) (string, error) {
	path := filepath.Join(s.RawDir(), RawFilename(r))
	if err := writeJSON(path, r); err != nil {
		return "", err
	}
	return path, nil
}

// ReadRaw loads a raw recall from a file.
func (s *Store) ReadRaw(path string) (*types.RawRecall, error) {
	var r types.RawRecall
	if err := readJSON(path, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRaw returns all raw record paths in lexical order.
func (s *Store) ListRaw() ([]string, error) {
	return listJSON(s.RawDir())
}

// SaveRecord writes an extracted recall record keyed by its ID.
func (s *Store) SaveRecord(rec *types.RecallRecord) (string, error) {
	path := filepath.Join(s.ProcessedDir(), rec.ID+".json")
	if err := writeJSON(path, rec); err != nil {
		return "", err
	}
	return path, nil
}

// ReadRecord loads an extracted recall record from a file.
func (s *Store) ReadRecord(path string) (*types.RecallRecord, error) {
	var rec types.RecallRecord
	if err := readJSON(path, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListProcessed returns all extracted record paths in lexical order.
func (s *Store) ListProcessed() ([]string, error) {
	return listJSON(s.ProcessedDir())
}

// SaveAnalyzed writes an analyzed recall keyed by its ID.
func (s *Store) SaveAnalyzed(rec *types.AnalyzedRecall) (string, error) {
	path := filepath.Join(s.AnalyzedDir(), rec.ID+".json")
	if err := writeJSON(path, rec); err != nil {
		return "", err
	}
	return path, nil
}

// ReadAnalyzed loads an analyzed recall from a file.
func (s *Store) ReadAnalyzed(path string) (*types.AnalyzedRecall, error) {
	var rec types.AnalyzedRecall
	if err := readJSON(path, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAnalyzed returns all analyzed record paths in lexical order.
func (s *Store) ListAnalyzed() ([]string, error) {
	return listJSON(s.AnalyzedDir())
}

// SaveReport writes a report file and returns its path.
func (s *Store) SaveReport(filename, content string) (string, error) {
	path := filepath.Join(s.reportsDir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}

// ListReports returns all report paths in lexical order.
func (s *Store) ListReports() ([]string, error) {
	entries, err := os.ReadDir(s.reportsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", s.reportsDir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(s.reportsDir, entry.Name()))
	}
	return paths, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func listJSON(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}
