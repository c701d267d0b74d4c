// Package steps enumerates the recall pipeline stages in execution order,
// mapping each stage to its database artifact step and category.
package steps

import (
	dbpkg "github.com/vualidon/food-recall-agent/internal/db"
)

// Stage describes one pipeline stage.
type Stage struct {
	Name        string `json:"name"`
	Step        string `json:"step"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Stage vars, in execution order.
var (
	StageCollect = Stage{
		Name:        "collect",
		Step:        dbpkg.StepRawRecalls,
		Category:    dbpkg.CategoryCollection,
		Description: "Collect recall announcements from FDA and USDA",
	}
	StageExtract = Stage{
		Name:        "extract",
		Step:        dbpkg.StepRecallRecords,
		Category:    dbpkg.CategoryExtraction,
		Description: "Extract structured recall records",
	}
	StageAnalyze = Stage{
		Name:        "analyze",
		Step:        dbpkg.StepAnalyzedRecalls,
		Category:    dbpkg.CategoryAnalysis,
		Description: "Estimate economic impact",
	}
	StageReport = Stage{
		Name:        "report",
		Step:        dbpkg.StepReportMarkdown,
		Category:    dbpkg.CategoryReporting,
		Description: "Generate the recall report",
	}
)

// Ordered lists the stages in the order the pipeline runs them.
var Ordered = []Stage{StageCollect, StageExtract, StageAnalyze, StageReport}

// Total returns the number of pipeline stages.
func Total() int {
	return len(Ordered)
}

// Lookup returns the stage with the given name.
func Lookup(name string) (Stage, bool) {
	for _, s := range Ordered {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}

// Position returns the 1-based position of the named stage, or 0 when the
// name is unknown.
func Position(name string) int {
	for i, s := range Ordered {
		if s.Name == name {
			return i + 1
		}
	}
	return 0
}
