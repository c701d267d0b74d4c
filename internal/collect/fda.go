package collect

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/vualidon/food-recall-agent/internal/openfda"
	"github.com/vualidon/food-recall-agent/internal/types"
)

// CollectFDA pulls enforcement reports from the openFDA API for the lookback
// window and writes one raw record per report. The recall number keys the
// record, so re-collecting the same window overwrites rather than duplicates.
func (c *Collector) CollectFDA(ctx context.Context) ([]string, error) {
	log.Printf("Collecting FDA recalls from the enforcement API")

	now := c.opts.Now()
	start := now.AddDate(0, 0, -c.opts.Days)

	var reports []openfda.Enforcement
	err := c.policy.Do(ctx, func() error {
		var apiErr error
		reports, apiErr = c.fda.Recent(ctx, start, now, c.fdaLimit())
		return apiErr
	})
	if err != nil {
		return nil, &Error{Source: types.SourceFDA, Message: "enforcement query failed", Cause: err}
	}

	var paths []string
	for i := range reports {
		report := &reports[i]

		raw, err := rawFromEnforcement(report, now)
		if err != nil {
			log.Printf("Warning: skipping FDA recall %s: %v", report.RecallNumber, err)
			continue
		}

		path, err := c.store.SaveRaw(raw)
		if err != nil {
			log.Printf("Warning: failed to save FDA recall %s: %v", report.RecallNumber, err)
			continue
		}
		paths = append(paths, path)
		c.verbosef("collected FDA recall %s (report date %s)", raw.ID, raw.ReportDate)
	}

	log.Printf("Collected %d FDA recall announcements", len(paths))
	return paths, nil
}

// rawFromEnforcement converts an enforcement report into a raw recall record.
func rawFromEnforcement(report *openfda.Enforcement, collectedAt time.Time) (*types.RawRecall, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, &Error{Source: types.SourceFDA, Message: "failed to encode enforcement report", Cause: err}
	}

	id := report.RecallNumber
	if id == "" {
		id = uuid.NewString()
	}

	return &types.RawRecall{
		Source:      types.SourceFDA,
		ID:          id,
		ReportDate:  report.ReportDate,
		Enforcement: payload,
		CollectedAt: collectedAt,
	}, nil
}
