package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnit_Dimension(t *testing.T) {
	tests := []struct {
		unit     Unit
		expected Dimension
	}{
		{UnitKilograms, DimensionMass},
		{UnitGrams, DimensionMass},
		{UnitPounds, DimensionMass},
		{UnitOunces, DimensionMass},
		{UnitLiters, DimensionVolume},
		{UnitMilliliters, DimensionVolume},
		{UnitCount, DimensionCount},
		{Unit("bushels"), DimensionUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.unit.Dimension())
		})
	}
}

func TestUnit_BaseFactor(t *testing.T) {
	assert.Equal(t, 1000.0, UnitKilograms.BaseFactor())
	assert.Equal(t, 1.0, UnitGrams.BaseFactor())
	assert.Equal(t, 453.592, UnitPounds.BaseFactor())
	assert.Equal(t, 28.3495, UnitOunces.BaseFactor())
	assert.Equal(t, 1000.0, UnitLiters.BaseFactor())
	assert.Equal(t, 1.0, UnitMilliliters.BaseFactor())
	assert.Equal(t, 1.0, UnitCount.BaseFactor())
	// Unknown units convert 1:1 rather than failing.
	assert.Equal(t, 1.0, Unit("bushels").BaseFactor())
}

func TestUnit_Valid(t *testing.T) {
	assert.True(t, UnitKilograms.Valid())
	assert.True(t, UnitCount.Valid())
	assert.False(t, Unit("").Valid())
	assert.False(t, Unit("bushels").Valid())
}

func TestConvertQuantities(t *testing.T) {
	tests := []struct {
		name         string
		purchaseQty  float64
		purchaseUnit Unit
		usageQty     float64
		usageUnit    Unit
		expPurchase  float64
		expUsage     float64
		mismatched   bool
	}{
		{
			name:        "mass pair converts to grams",
			purchaseQty: 1, purchaseUnit: UnitKilograms,
			usageQty: 500, usageUnit: UnitGrams,
			expPurchase: 1000, expUsage: 500,
		},
		{
			name:        "pounds and ounces convert to grams",
			purchaseQty: 2, purchaseUnit: UnitPounds,
			usageQty: 4, usageUnit: UnitOunces,
			expPurchase: 907.184, expUsage: 113.398,
		},
		{
			name:        "volume pair converts to milliliters",
			purchaseQty: 1.5, purchaseUnit: UnitLiters,
			usageQty: 200, usageUnit: UnitMilliliters,
			expPurchase: 1500, expUsage: 200,
		},
		{
			name:        "count on either side passes raw",
			purchaseQty: 12, purchaseUnit: UnitCount,
			usageQty: 150, usageUnit: UnitGrams,
			expPurchase: 12, expUsage: 150,
		},
		{
			name:        "mass against volume is mismatched and raw",
			purchaseQty: 3, purchaseUnit: UnitLiters,
			usageQty: 100, usageUnit: UnitGrams,
			expPurchase: 3, expUsage: 100,
			mismatched: true,
		},
		{
			name:        "unknown unit is mismatched and raw",
			purchaseQty: 5, purchaseUnit: Unit("bushels"),
			usageQty: 100, usageUnit: UnitGrams,
			expPurchase: 5, expUsage: 100,
			mismatched: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			convPurchase, convUsage, mismatched := ConvertQuantities(tt.purchaseQty, tt.purchaseUnit, tt.usageQty, tt.usageUnit)
			assert.InDelta(t, tt.expPurchase, convPurchase, 1e-9)
			assert.InDelta(t, tt.expUsage, convUsage, 1e-9)
			assert.Equal(t, tt.mismatched, mismatched)
		})
	}
}

func TestTables_WasteMultiplier(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		name     string
		category WasteCategory
		exempt   bool
		expected float64
	}{
		{"fruits and vegetables midpoint", WasteFruitsVegetables, false, 1.175},
		{"raw protein midpoint", WasteRawProtein, false, 1.225},
		{"frozen midpoint", WasteFrozen, false, 1.05},
		{"none is neutral", WasteNone, false, 1},
		{"exemption overrides category", WasteRawProtein, true, 1},
		{"unknown category is neutral", WasteCategory("mystery"), false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tables.WasteMultiplier(tt.category, tt.exempt), 1e-9)
		})
	}
}
