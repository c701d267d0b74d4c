package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a pipeline run record
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Days        int        `json:"days"`
	Status      string     `json:"status"`
	ReportPath  string     `json:"report_path,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RunStatus constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// ArtifactStep constants for known artifact types
const (
	StepRawRecalls      = "raw_recalls"
	StepRecallRecords   = "recall_records"
	StepAnalyzedRecalls = "analyzed_recalls"
	StepReportMarkdown  = "report_markdown"
)

// StepCategory constants group artifacts by pipeline stage
const (
	CategoryCollection = "collection"
	CategoryExtraction = "extraction"
	CategoryAnalysis   = "analysis"
	CategoryReporting  = "reporting"
)
