package report

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/vualidon/food-recall-agent/internal/types"
)

// reportData is the data structure passed to the built-in report template.
type reportData struct {
	StartDate string
	EndDate   string
	Count     int
	Rows      []recallRow
}

// recallRow is one ranked recall in the built-in report.
type recallRow struct {
	Rank       int
	Title      string
	Product    string
	Brand      string
	Firm       string
	RecallDate string
	Reason     string
	HealthRisk string
	Impact     string
	Score      string
	Scope      string
	States     string
	CostRange  string
	Industry   string
	Reasoning  string
}

const markdownTemplate = `# Food Recall Report: {{.StartDate}} to {{.EndDate}}

## Executive Summary

There {{if eq .Count 1}}was{{else}}were{{end}} {{.Count}} food recall{{if ne .Count 1}}s{{end}} during this period, ranked below by
estimated economic impact.

## Ranked Recalls

| Rank | Product | Brand | Recalling Firm | Health Risk | Economic Impact | Impact Score |
|------|---------|-------|----------------|-------------|-----------------|--------------|
{{range .Rows}}| {{.Rank}} | {{escape .Product}} | {{escape .Brand}} | {{escape .Firm}} | {{.HealthRisk}} | {{.Impact}} | {{.Score}} |
{{end}}
## Recall Details
{{range .Rows}}
### {{.Rank}}. {{.Title}}

- **Product**: {{.Product}}
- **Brand**: {{.Brand}}
- **Recalling Firm**: {{.Firm}}
- **Recall Date**: {{.RecallDate}}
- **Reason**: {{.Reason}}
- **Health Risk**: {{.HealthRisk}}
- **Distribution**: {{.Scope}}{{if .States}} ({{.States}}){{end}}
- **Economic Impact**: {{.Impact}} (score {{.Score}}){{if .CostRange}}
- **Estimated Cost**: {{.CostRange}}{{end}}{{if .Industry}}
- **Affected Industry**: {{.Industry}}{{end}}
{{if .Reasoning}}
{{.Reasoning}}
{{end}}{{end}}`

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"escape": EscapeCell,
}).Parse(markdownTemplate))

// EscapeCell escapes characters that would break a markdown table cell
func EscapeCell(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + 8)

	for _, r := range text {
		switch r {
		case '|':
			result.WriteString(`\|`)
		case '\n', '\r':
			result.WriteRune(' ')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// RenderMarkdown renders the built-in report template over recalls in the
// given order. It is the fallback when no LLM narrative can be generated.
func RenderMarkdown(start, end time.Time, recalls []*types.AnalyzedRecall) (string, error) {
	data := buildReportData(start, end, recalls)

	var result strings.Builder
	if err := reportTemplate.Execute(&result, data); err != nil {
		return "", &TemplateError{Message: "failed to execute report template", Cause: err}
	}
	return result.String(), nil
}

// buildReportData constructs the template data from ranked recalls.
func buildReportData(start, end time.Time, recalls []*types.AnalyzedRecall) *reportData {
	data := &reportData{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Count:     len(recalls),
	}

	for i, rec := range recalls {
		row := recallRow{
			Rank:       i + 1,
			Title:      rec.Title,
			Product:    rec.ProductName,
			Brand:      rec.BrandName,
			Firm:       rec.RecallingFirm,
			RecallDate: "unknown",
			Reason:     rec.Reason,
			HealthRisk: string(rec.HealthRisk),
			Impact:     string(rec.EconomicImpact),
			Score:      fmt.Sprintf("%.1f", rec.ImpactScore),
			Scope:      string(rec.DistributionScope),
			States:     strings.Join(rec.DistributionStates, ", "),
			CostRange:  rec.ImpactDetail.EstimatedCostRange,
			Industry:   rec.ImpactDetail.AffectedIndustry,
			Reasoning:  rec.ImpactDetail.Reasoning,
		}
		if row.Title == "" {
			row.Title = row.Product
		}
		if rec.RecallDate != nil {
			row.RecallDate = rec.RecallDate.Format("2006-01-02")
		}
		data.Rows = append(data.Rows, row)
	}

	return data
}
