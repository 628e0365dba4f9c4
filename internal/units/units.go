// Package units normalizes raw mass quantities into tonnes, the canonical
// unit every CO2-equivalent figure is expressed in.
package units

import (
	"context"
	"math"
	"strings"

	"github.com/carbonlens/carbonlens/internal/logging"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidQuantity indicates a negative, NaN, or infinite quantity.
// Mass quantities cannot be negative and must be finite.
const ErrInvalidQuantity = constError("invalid mass quantity")

// Conversion factors to tonnes.
const (
	// KilogramsToTonnes converts kilograms to tonnes.
	KilogramsToTonnes = 0.001

	// GramsToTonnes converts grams to tonnes.
	GramsToTonnes = 0.000001

	// TonnesToTonnes is the identity conversion.
	TonnesToTonnes = 1.0

	// PoundsToTonnes converts avoirdupois pounds to tonnes.
	PoundsToTonnes = 0.000453592
)

// Normalization is the outcome of a unit conversion.
type Normalization struct {
	// Tonnes is the quantity expressed in tonnes.
	Tonnes float64

	// Unit is the unit the caller supplied, unmodified.
	Unit string

	// Recognized is false when the unit was unknown and the quantity was
	// passed through as if already in tonnes. Callers that cannot tolerate
	// the lossy fallback must check this flag.
	Recognized bool
}

// factorFor returns the conversion factor to tonnes for a unit string and
// whether the unit is recognized. Matching is case-insensitive.
func factorFor(unit string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "kilogram", "kilograms":
		return KilogramsToTonnes, true
	case "g", "gram", "grams":
		return GramsToTonnes, true
	case "t", "tonne", "tonnes", "ton", "tons":
		return TonnesToTonnes, true
	case "lb", "lbs", "pound", "pounds":
		return PoundsToTonnes, true
	default:
		return 0, false
	}
}

// ToTonnes converts a mass quantity in any recognized unit to tonnes.
//
// Recognized units: kilogram (kg), gram (g), tonne (t, tonnes, ton), pound
// (lb, lbs). Matching is case-insensitive.
//
// Unknown units are NOT an error: the quantity is passed through unchanged
// and treated as already being in tonnes, with Recognized set to false and a
// warning logged. This lossy fallback is long-standing reporting behavior;
// the flag exists so callers can tighten it without a signature change.
//
// Returns ErrInvalidQuantity for negative, NaN, or infinite quantities.
func ToTonnes(ctx context.Context, quantity float64, unit string) (Normalization, error) {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity < 0 {
		return Normalization{}, ErrInvalidQuantity
	}

	factor, ok := factorFor(unit)
	if !ok {
		logging.FromContext(ctx).Warn().
			Str("component", "units").
			Str("unit", unit).
			Float64("quantity", quantity).
			Msg("unrecognized unit, treating quantity as tonnes")
		return Normalization{Tonnes: quantity, Unit: unit, Recognized: false}, nil
	}

	return Normalization{Tonnes: quantity * factor, Unit: unit, Recognized: true}, nil
}

// IsRecognized reports whether the unit string is a supported mass unit.
func IsRecognized(unit string) bool {
	_, ok := factorFor(unit)
	return ok
}
