package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/vualidon/food-recall-agent/internal/types"
)

// GetRecallRecordsByRunID loads the extracted records artifact for a run
func (db *DB) GetRecallRecordsByRunID(ctx context.Context, runID uuid.UUID) ([]types.RecallRecord, error) {
	content, err := db.GetArtifact(ctx, runID, StepRecallRecords)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var records []types.RecallRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recall records: %w", err)
	}
	return records, nil
}

// GetAnalyzedRecallsByRunID loads the analyzed recalls artifact for a run
func (db *DB) GetAnalyzedRecallsByRunID(ctx context.Context, runID uuid.UUID) ([]types.AnalyzedRecall, error) {
	content, err := db.GetArtifact(ctx, runID, StepAnalyzedRecalls)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var recalls []types.AnalyzedRecall
	if err := json.Unmarshal(content, &recalls); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analyzed recalls: %w", err)
	}
	return recalls, nil
}

// GetReportByRunID loads the report markdown for a run
func (db *DB) GetReportByRunID(ctx context.Context, runID uuid.UUID) (string, error) {
	return db.GetTextArtifact(ctx, runID, StepReportMarkdown)
}
