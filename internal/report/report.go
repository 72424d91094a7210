// Package report renders analysis results as Markdown and HTML documents.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"autoviz/domain/table"
	"autoviz/internal/summary"
)

// BuildMarkdown assembles a human-readable report covering the column
// classification, suggested filters, recommended charts, and the quality
// profile of one snapshot.
func BuildMarkdown(snap *table.Snapshot, result table.AnalysisResult, profile summary.Profile) string {
	var b strings.Builder

	name := snap.Name
	if name == "" {
		name = "Dataset"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "%d rows, %d columns. Quality score %.2f/100.\n\n", profile.TotalRows, profile.TotalColumns, profile.QualityScore)

	writeColumnsSection(&b, snap, result)
	writeFiltersSection(&b, result)
	writeChartsSection(&b, result)
	writeQualitySection(&b, profile)

	return b.String()
}

func writeColumnsSection(b *strings.Builder, snap *table.Snapshot, result table.AnalysisResult) {
	b.WriteString("## Columns\n\n")
	b.WriteString("| Column | Type | Role | Unique | Null % |\n")
	b.WriteString("|--------|------|------|--------|--------|\n")
	for _, col := range snap.Columns {
		analysis, ok := result.Columns[col]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "| %s | %s | %s | %d | %.1f |\n",
			table.DisplayName(col), analysis.Type, analysis.Role,
			analysis.UniqueCount, analysis.NullRatio*100)
	}
	b.WriteString("\n")

	for _, col := range snap.Columns {
		analysis, ok := result.Columns[col]
		if !ok || analysis.Numeric == nil {
			continue
		}
		s := analysis.Numeric
		fmt.Fprintf(b, "**%s**: min %.2f, max %.2f, avg %.2f, median %.2f, std %.2f\n\n",
			table.DisplayName(col), s.Min, s.Max, s.Avg, s.Median, s.StdDev)
	}
}

func writeFiltersSection(b *strings.Builder, result table.AnalysisResult) {
	if len(result.Filters) == 0 {
		return
	}
	b.WriteString("## Suggested Filters\n\n")
	for _, f := range result.Filters {
		fmt.Fprintf(b, "- **%s** (%s)", table.DisplayName(f.Column), f.Type)
		switch {
		case len(f.Options) > 0:
			fmt.Fprintf(b, ": %d options", len(f.Options))
		case f.Min != nil && f.Max != nil:
			fmt.Fprintf(b, ": %.2f to %.2f", *f.Min, *f.Max)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeChartsSection(b *strings.Builder, result table.AnalysisResult) {
	if len(result.Charts) == 0 {
		return
	}
	b.WriteString("## Recommended Charts\n\n")
	for i, c := range result.Charts {
		detail := fmt.Sprintf("%s on %s", c.Type, strings.Join(c.Columns, ", "))
		if c.Aggregation != "" {
			detail += ", " + string(c.Aggregation)
		}
		fmt.Fprintf(b, "%d. **%s** (%s)\n", i+1, c.Title, detail)
	}
	b.WriteString("\n")
}

func writeQualitySection(b *strings.Builder, profile summary.Profile) {
	b.WriteString("## Data Quality\n\n")
	fmt.Fprintf(b, "- Missing cells: %d across %d columns\n", profile.TotalMissing, profile.ColumnsWithMissing)
	fmt.Fprintf(b, "- Duplicate rows: %d\n", profile.DuplicateRows)

	var incomplete []string
	for col, ratio := range profile.MissingRatioByColumn {
		if ratio > 0 {
			incomplete = append(incomplete, fmt.Sprintf("%s (%.1f%%)", col, ratio*100))
		}
	}
	if len(incomplete) > 0 {
		sort.Strings(incomplete)
		fmt.Fprintf(b, "- Columns with gaps: %s\n", strings.Join(incomplete, ", "))
	}
	b.WriteString("\n")
}

// RenderHTML converts a Markdown report into a standalone HTML fragment.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
