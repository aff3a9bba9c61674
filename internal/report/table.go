// Package report renders viability run summaries as text tables and charts.
package report

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/chengju279/viability-calculator/internal/app"
)

// RenderTable renders the run summary as an aligned text table.
func RenderTable(r app.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s\n", r.RunID)
	fmt.Fprintf(&b, "Generated %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	summary := uitable.New()
	summary.Separator = "  "
	summary.AddRow("Category", "Mean")
	summary.AddRow("blank", formatAverage(r.BlankAverage))
	summary.AddRow("negative control", formatAverage(r.NegativeAverage))
	summary.AddRow("test", formatAverage(r.TestAverage))
	b.WriteString(summary.String())
	b.WriteString("\n\n")

	wells := uitable.New()
	wells.Separator = "  "
	wells.AddRow("Well", "Category", "Raw", "Viability %")
	for _, c := range r.Cells {
		wells.AddRow(c.Ref, c.Category, c.Raw, c.Normalized)
	}
	b.WriteString(wells.String())
	b.WriteString("\n")

	if len(r.Groups) > 0 {
		b.WriteString("\n")
		groups := uitable.New()
		groups.Separator = "  "
		groups.AddRow("Group", "Anchor", "Wells", "Rectangular")
		for _, g := range r.Groups {
			groups.AddRow(fmt.Sprintf("%d", g.Number), g.Anchor, strings.Join(g.Refs, " "), fmt.Sprintf("%t", g.Rigid))
		}
		b.WriteString(groups.String())
		b.WriteString("\n")
	}

	return b.String()
}

func formatAverage(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
