package units

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTonnes(t *testing.T) {
	tests := []struct {
		name       string
		quantity   float64
		unit       string
		wantTonnes float64
	}{
		{name: "kilograms", quantity: 1000, unit: "kg", wantTonnes: 1},
		{name: "kilogram alias", quantity: 500, unit: "kilograms", wantTonnes: 0.5},
		{name: "grams", quantity: 1_000_000, unit: "g", wantTonnes: 1},
		{name: "tonnes identity", quantity: 2.5, unit: "t", wantTonnes: 2.5},
		{name: "tonne alias", quantity: 3, unit: "tonnes", wantTonnes: 3},
		{name: "ton alias", quantity: 1, unit: "ton", wantTonnes: 1},
		{name: "pounds", quantity: 1000, unit: "lb", wantTonnes: 0.453592},
		{name: "pound alias", quantity: 1000, unit: "pounds", wantTonnes: 0.453592},
		{name: "uppercase KG", quantity: 1000, unit: "KG", wantTonnes: 1},
		{name: "zero quantity", quantity: 0, unit: "kg", wantTonnes: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			norm, err := ToTonnes(context.Background(), tt.quantity, tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantTonnes, norm.Tonnes, 1e-9)
			assert.True(t, norm.Recognized)
			assert.Equal(t, tt.unit, norm.Unit)
		})
	}
}

func TestToTonnesUnknownUnitPassThrough(t *testing.T) {
	// Unknown units pass through as tonnes. The fallback is lossy and must
	// be observable via the Recognized flag.
	norm, err := ToTonnes(context.Background(), 42, "bushels")
	require.NoError(t, err)
	assert.Equal(t, 42.0, norm.Tonnes)
	assert.False(t, norm.Recognized)
}

func TestToTonnesInvalidQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
	}{
		{name: "negative", quantity: -1},
		{name: "NaN", quantity: math.NaN()},
		{name: "positive infinity", quantity: math.Inf(1)},
		{name: "negative infinity", quantity: math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToTonnes(context.Background(), tt.quantity, "kg")
			require.ErrorIs(t, err, ErrInvalidQuantity)
		})
	}
}

func TestIsRecognized(t *testing.T) {
	assert.True(t, IsRecognized("kg"))
	assert.True(t, IsRecognized("Tonnes"))
	assert.False(t, IsRecognized("bushels"))
	assert.False(t, IsRecognized(""))
}
