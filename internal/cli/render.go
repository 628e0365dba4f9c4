package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/carbonlens/carbonlens/internal/aggregate"
	"github.com/carbonlens/carbonlens/internal/quality"
	"github.com/carbonlens/carbonlens/internal/validation"
)

// Rendering constants.
const (
	barWidth     = 24
	sectionWidth = 64
)

//nolint:gochecknoglobals // Style values are cheap immutable render config.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(sectionWidth)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// progressBar renders a percentage as a fixed-width bar.
func progressBar(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// renderInventory writes the styled inventory report.
func renderInventory(w io.Writer, out inventoryOutput) {
	inv := out.Inventory

	var b strings.Builder
	b.WriteString(titleStyle.Render("GHG INVENTORY"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %s tonnes CO2e across %d records\n",
		aggregate.FormatCO2e(inv.TotalCO2e), inv.RecordCount))

	b.WriteString("\nBy scope:\n")
	for _, scope := range []string{"scope1", "scope2", "scope3"} {
		share, ok := inv.ByScope[scope]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("  %-8s %s %5.1f%%  %s t\n",
			scope, progressBar(share.Percent), share.Percent, aggregate.FormatCO2e(share.CO2e)))
	}

	b.WriteString("\nBy source:\n")
	for _, source := range inv.TopSources(5) {
		share := inv.BySource[source]
		b.WriteString(fmt.Sprintf("  %-24s %5.1f%%  %s t\n",
			source, share.Percent, aggregate.FormatCO2e(share.CO2e)))
	}

	if out.YearOverYear != nil {
		yoy := out.YearOverYear
		b.WriteString(fmt.Sprintf("\nYear over year: %s (%+.1f%% vs %s)\n",
			trendStyled(yoy.Direction), yoy.ChangePercent, yoy.PreviousYear))
	}

	if len(out.Equivalencies) > 0 {
		parts := make([]string, 0, len(out.Equivalencies))
		for _, eq := range out.Equivalencies {
			parts = append(parts, fmt.Sprintf("%s %s", eq.FormattedValue, eq.Label))
		}
		b.WriteString(dimStyle.Render("Equivalent to "+strings.Join(parts, ", or ")) + "\n")
	}

	fmt.Fprintln(w, sectionStyle.Render(strings.TrimRight(b.String(), "\n")))

	if len(out.Gaps) > 0 {
		renderGaps(w, out.Gaps)
	}
}

func trendStyled(direction string) string {
	switch direction {
	case aggregate.TrendIncreasing:
		return errorStyle.Render(direction)
	case aggregate.TrendDecreasing:
		return okStyle.Render(direction)
	default:
		return direction
	}
}

func renderGaps(w io.Writer, gaps []aggregate.ComplianceGap) {
	var b strings.Builder
	b.WriteString(titleStyle.Render("COMPLIANCE GAPS"))
	b.WriteString("\n")
	for _, gap := range gaps {
		b.WriteString(fmt.Sprintf("%s %s\n", gapStatusStyled(gap.Status), gap.Requirement))
		if gap.Status != aggregate.GapStatusCompliant && gap.Action != "" {
			b.WriteString(dimStyle.Render("    → "+gap.Action) + "\n")
		}
	}
	fmt.Fprintln(w, sectionStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func gapStatusStyled(status string) string {
	switch status {
	case aggregate.GapStatusCompliant:
		return okStyle.Render("[compliant]")
	case aggregate.GapStatusPartial:
		return warnStyle.Render("[partial]  ")
	default:
		return errorStyle.Render("[gap]      ")
	}
}

// renderValidationResult writes the styled validation report.
func renderValidationResult(w io.Writer, result quality.Result) {
	var b strings.Builder

	verdict := okStyle.Render("VALID")
	if !result.IsValid {
		verdict = errorStyle.Render("INVALID")
	}
	b.WriteString(titleStyle.Render("VALIDATION") + " " + verdict)
	b.WriteString(fmt.Sprintf("  score %.1f/100\n", result.Score))

	b.WriteString("\nQuality metrics:\n")
	for _, row := range []struct {
		label string
		value float64
	}{
		{"completeness", result.Metrics.Completeness},
		{"accuracy", result.Metrics.Accuracy},
		{"consistency", result.Metrics.Consistency},
		{"timeliness", result.Metrics.Timeliness},
		{"validity", result.Metrics.Validity},
		{"uniqueness", result.Metrics.Uniqueness},
	} {
		b.WriteString(fmt.Sprintf("  %-13s %s %5.1f\n", row.label, progressBar(row.value), row.value))
	}

	writeIssues(&b, "Errors", result.Errors, errorStyle)
	writeIssues(&b, "Warnings", result.Warnings, warnStyle)

	if len(result.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		for _, s := range result.Suggestions {
			b.WriteString(fmt.Sprintf("  [%s] %s\n", s.Priority, s.Message))
		}
	}

	fmt.Fprintln(w, sectionStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func writeIssues(b *strings.Builder, label string, issues []validation.Issue, style lipgloss.Style) {
	if len(issues) == 0 {
		return
	}
	b.WriteString("\n" + label + ":\n")
	for _, issue := range issues {
		b.WriteString(fmt.Sprintf("  %s %s: %s\n", style.Render("•"), issue.Field, issue.Message))
		if issue.Suggestion != "" {
			b.WriteString(dimStyle.Render("      "+issue.Suggestion) + "\n")
		}
	}
}
