// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/vualidon/food-recall-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewLines is the number of report lines shown after a run
	previewLines = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecallRecord outputs a human-readable summary of an extracted recall.
func (p *Printer) PrintRecallRecord(rec *types.RecallRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ID:      %s\n", rec.ID))
	sb.WriteString(fmt.Sprintf("Source:  %s\n", rec.Source))
	sb.WriteString(fmt.Sprintf("Product: %s\n", rec.ProductName))
	if rec.BrandName != "" {
		sb.WriteString(fmt.Sprintf("Brand:   %s\n", rec.BrandName))
	}
	if rec.RecallingFirm != "" {
		sb.WriteString(fmt.Sprintf("Firm:    %s\n", rec.RecallingFirm))
	}
	if rec.RecallDate != nil {
		sb.WriteString(fmt.Sprintf("Date:    %s\n", rec.RecallDate.Format("2006-01-02")))
	}
	sb.WriteString(fmt.Sprintf("Risk:    %s\n", rec.HealthRisk))

	sb.WriteString(fmt.Sprintf("Scope:   %s", rec.DistributionScope))
	if len(rec.DistributionStates) > 0 {
		states := rec.DistributionStates
		extra := 0
		if len(states) > maxItemsToShow {
			extra = len(states) - maxItemsToShow
			states = states[:maxItemsToShow]
		}
		sb.WriteString(fmt.Sprintf(" (%s", strings.Join(states, ", ")))
		if extra > 0 {
			sb.WriteString(fmt.Sprintf(" +%d more", extra))
		}
		sb.WriteString(")")
	}
	sb.WriteString("\n")

	if rec.Reason != "" {
		sb.WriteString(fmt.Sprintf("Reason:  %s\n", rec.Reason))
	}

	p.printBox("EXTRACTED RECALL", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalyzedRecall outputs the impact assessment for a single recall.
func (p *Printer) PrintAnalyzedRecall(rec *types.AnalyzedRecall) {
	if rec == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ID:       %s\n", rec.ID))
	sb.WriteString(fmt.Sprintf("Product:  %s\n", rec.ProductName))
	sb.WriteString(fmt.Sprintf("Impact:   %s (score %.1f)\n", rec.EconomicImpact, rec.ImpactScore))
	if rec.ImpactDetail.EstimatedCostRange != "" {
		sb.WriteString(fmt.Sprintf("Cost:     %s\n", rec.ImpactDetail.EstimatedCostRange))
	}
	if rec.ImpactDetail.AffectedIndustry != "" {
		sb.WriteString(fmt.Sprintf("Industry: %s\n", rec.ImpactDetail.AffectedIndustry))
	}
	if rec.ImpactDetail.Reasoning != "" {
		sb.WriteString(fmt.Sprintf("Why:      %s\n", rec.ImpactDetail.Reasoning))
	}

	p.printBox("IMPACT ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs per-stage counts and the report location after a run.
func (p *Printer) PrintRunSummary(collected, extracted, analyzed int, reportPath string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Collected: %d raw announcements\n", collected))
	sb.WriteString(fmt.Sprintf("Extracted: %d recall records\n", extracted))
	sb.WriteString(fmt.Sprintf("Analyzed:  %d recalls\n", analyzed))
	sb.WriteString(fmt.Sprintf("Report:    %s", reportPath))

	p.printBox("PIPELINE SUMMARY", sb.String())
}

// PrintReportPreview prints the opening lines of the generated report.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReportPreview(content string) {
	if strings.TrimSpace(content) == "" {
		return
	}

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	count := min(len(lines), previewLines)

	fmt.Fprintln(p.out, "--- Report preview ---")
	for i := 0; i < count; i++ {
		fmt.Fprintln(p.out, lines[i])
	}
	if len(lines) > previewLines {
		fmt.Fprintf(p.out, "... (%d more lines)\n", len(lines)-previewLines)
	}
}
