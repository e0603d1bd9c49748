package cli

import (
	"fmt"
	"strings"

	"github.com/mkravets/payout-lens/internal/engine"
	"github.com/mkravets/payout-lens/internal/model"
	"github.com/mkravets/payout-lens/internal/report"
)

// RenderReport formats a full analysis report for the terminal. All
// monetary values are rounded to 2 decimal places here, at the
// presentation boundary.
func RenderReport(rep *engine.Report, taxRate float64) string {
	var b strings.Builder

	result := rep.Result

	b.WriteString(TitleStyle.Render("Payout report"))
	b.WriteString("\n")

	writeFigure(&b, "Revenue total", result.RevenueTotal)
	if result.Status == "" {
		writeFigure(&b, fmt.Sprintf("Tax (%.1f%%)", taxRate*100), result.TaxTotal)
	} else {
		writeFigure(&b, "Deductions", result.Deductions)
	}
	writeFigure(&b, "Cost of goods sold", result.COGSTotal)
	writeFigure(&b, "Net profit", result.ProfitTotal)
	if result.SoldQtyTotal > 0 {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			LabelStyle.Render(pad("Items sold")),
			ValueStyle.Render(fmt.Sprintf("%.0f", result.SoldQtyTotal))))
	}
	if result.Status != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			LabelStyle.Render(pad("Margin")),
			ValueStyle.Render(fmt.Sprintf("%.1f%%", result.Margin))))
		b.WriteString(fmt.Sprintf("  %s %s\n",
			LabelStyle.Render(pad("Status")),
			statusStyle(result.Status).Render(string(result.Status))))
	}

	b.WriteString("\n")
	b.WriteString(renderBreakdown(result))
	b.WriteString(renderRanking(rep.Ranking))

	for _, w := range rep.Warnings {
		b.WriteString(WarningStyle.Render("⚠ " + w))
		b.WriteString("\n")
	}

	return b.String()
}

func renderBreakdown(result *model.ComputationResult) string {
	if len(result.PerEntity) == 0 {
		return SubtleStyle.Render("No per-product data.") + "\n\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("By product"))
	b.WriteString("\n")
	for _, f := range result.PerEntity {
		b.WriteString(fmt.Sprintf("  %s revenue %s, profit %s\n",
			ValueStyle.Render(f.Code+":"),
			money(f.Revenue),
			money(f.Profit)))
	}
	b.WriteString("\n")
	return b.String()
}

func renderRanking(r report.Ranking) string {
	if r.NoData {
		return SubtleStyle.Render("No data for rankings.") + "\n\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Top by %s", r.Metric)))
	b.WriteString("\n")
	for _, f := range r.Best {
		b.WriteString(fmt.Sprintf("  + %s %s\n", f.Code, money(metricValue(r.Metric, f))))
	}
	for _, f := range r.Worst {
		b.WriteString(fmt.Sprintf("  - %s %s\n", f.Code, money(metricValue(r.Metric, f))))
	}
	b.WriteString("\n")
	return b.String()
}

func metricValue(m report.Metric, f model.EntityFigures) float64 {
	if m == report.MetricRevenue {
		return f.Revenue
	}
	return f.Profit
}

func money(v float64) string {
	s := fmt.Sprintf("%.2f", report.Round2(v))
	if v < 0 {
		return LossStyle.Render(s)
	}
	return ProfitStyle.Render(s)
}

func statusStyle(s model.HealthStatus) interface{ Render(...string) string } {
	switch s {
	case model.HealthCritical:
		return LossStyle
	case model.HealthMarginal:
		return WarningStyle
	default:
		return ProfitStyle
	}
}

func writeFigure(b *strings.Builder, label string, v float64) {
	fmt.Fprintf(b, "  %s %s\n", LabelStyle.Render(pad(label)), money(v))
}

func pad(label string) string {
	return fmt.Sprintf("%-20s", label+":")
}
