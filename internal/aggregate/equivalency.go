package aggregate

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EPA equivalency factors (2024 edition), in kg CO2e per activity unit.
// Source: EPA Greenhouse Gas Equivalencies Calculator. The equivalency is
// the emission divided by the factor.
const (
	// EPAMilesDrivenFactor is kg CO2e per mile in an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPAHomeYearFactor is kg CO2e per year of average US home energy use.
	EPAHomeYearFactor = 6680.0

	// EPATreeSeedlingFactor is kg CO2e absorbed per tree seedling over 10 years.
	EPATreeSeedlingFactor = 60.0
)

// Equivalency expresses an inventory total as a relatable real-world
// quantity for report narratives.
type Equivalency struct {
	Label          string  `json:"label"`
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formattedValue"`
}

// printer is the locale-aware message printer for thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatCO2e formats a tonnes-CO2e figure with separators and one decimal.
func FormatCO2e(tonnes float64) string {
	return printer.Sprintf("%.1f", tonnes)
}

// Equivalencies converts a tonnes-CO2e total into EPA-based relatable
// figures. Returns nil for non-positive totals.
func Equivalencies(tonnesCO2e float64) []Equivalency {
	if tonnesCO2e <= 0 {
		return nil
	}

	kg := tonnesCO2e * 1000

	miles := kg / EPAMilesDrivenFactor
	homes := kg / EPAHomeYearFactor
	trees := kg / EPATreeSeedlingFactor

	return []Equivalency{
		{Label: "miles driven", Value: miles, FormattedValue: formatEquivalency(miles)},
		{Label: "homes' energy for one year", Value: homes, FormattedValue: formatEquivalency(homes)},
		{Label: "tree seedlings grown for 10 years", Value: trees, FormattedValue: formatEquivalency(trees)},
	}
}

// formatEquivalency rounds to the nearest integer with separators, switching
// to abbreviated notation above a million.
func formatEquivalency(v float64) string {
	const (
		million = 1_000_000
		billion = 1_000_000_000
	)
	switch {
	case v >= billion:
		return fmt.Sprintf("~%.1f billion", v/billion)
	case v >= million:
		return fmt.Sprintf("~%.1f million", v/million)
	default:
		return FormatNumber(int64(math.Round(v)))
	}
}
