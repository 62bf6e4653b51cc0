package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewEngine tests the constructor and options.
func TestNewEngine(t *testing.T) {
	t.Run("uses default tables when no options", func(t *testing.T) {
		e := NewEngine()
		assert.Equal(t, DefaultTables(), e.Tables())
	})

	t.Run("uses custom tables with option", func(t *testing.T) {
		custom := DefaultTables()
		custom.ServiceMargin = PercentRange{Min: 1, Max: 3}
		e := NewEngine(WithTables(custom))
		assert.Equal(t, 2.0, e.Tables().ServiceMargin.Midpoint())
	})
}

// TestEngine_AllocateCost tests the core cost allocation arithmetic.
func TestEngine_AllocateCost(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name         string
		entry        IngredientEntry
		expectedCost float64
		mismatch     bool
	}{
		{
			name: "kilograms purchased grams used converts to common base",
			entry: IngredientEntry{
				Name:             "Harina",
				PurchaseCost:     10000,
				PurchaseQuantity: 1,
				PurchaseUnit:     UnitKilograms,
				UsageQuantity:    500,
				UsageUnit:        UnitGrams,
				WasteCategory:    WasteNone,
			},
			expectedCost: 5000,
		},
		{
			name: "transport cost included in base",
			entry: IngredientEntry{
				Name:             "Mango",
				PurchaseCost:     20000,
				TransportCost:    2000,
				PurchaseQuantity: 5,
				PurchaseUnit:     UnitKilograms,
				UsageQuantity:    300,
				UsageUnit:        UnitGrams,
				WasteCategory:    WasteFruitsVegetables,
			},
			// (20000+2000)/5000 * 300 * 1.175
			expectedCost: 1551,
		},
		{
			name: "volume units convert to milliliters",
			entry: IngredientEntry{
				Name:             "Leche",
				PurchaseCost:     4000,
				PurchaseQuantity: 2,
				PurchaseUnit:     UnitLiters,
				UsageQuantity:    250,
				UsageUnit:        UnitMilliliters,
				WasteCategory:    WasteNone,
			},
			expectedCost: 500,
		},
		{
			name: "count unit uses raw quantities",
			entry: IngredientEntry{
				Name:             "Huevos",
				PurchaseCost:     18000,
				PurchaseQuantity: 30,
				PurchaseUnit:     UnitCount,
				UsageQuantity:    2,
				UsageUnit:        UnitCount,
				WasteCategory:    WasteNone,
			},
			expectedCost: 1200,
		},
		{
			name: "count paired with mass uses raw quantities without warning",
			entry: IngredientEntry{
				Name:             "Limon",
				PurchaseCost:     5000,
				PurchaseQuantity: 50,
				PurchaseUnit:     UnitCount,
				UsageQuantity:    1,
				UsageUnit:        UnitGrams,
				WasteCategory:    WasteNone,
			},
			expectedCost: 100,
		},
		{
			name: "mismatched dimensions proceed on raw values and warn",
			entry: IngredientEntry{
				Name:             "Aceite",
				PurchaseCost:     9000,
				PurchaseQuantity: 3,
				PurchaseUnit:     UnitLiters,
				UsageQuantity:    100,
				UsageUnit:        UnitGrams,
				WasteCategory:    WasteNone,
			},
			// raw: 9000/3 * 100
			expectedCost: 300000,
			mismatch:     true,
		},
		{
			name: "raw protein applies midpoint multiplier 1.225",
			entry: IngredientEntry{
				Name:             "Pollo",
				PurchaseCost:     10000,
				PurchaseQuantity: 1000,
				PurchaseUnit:     UnitGrams,
				UsageQuantity:    1000,
				UsageUnit:        UnitGrams,
				WasteCategory:    WasteRawProtein,
			},
			expectedCost: 12250,
		},
		{
			name: "frozen applies midpoint multiplier 1.05",
			entry: IngredientEntry{
				Name:             "Papas",
				PurchaseCost:     1000,
				PurchaseQuantity: 100,
				PurchaseUnit:     UnitGrams,
				UsageQuantity:    100,
				UsageUnit:        UnitGrams,
				WasteCategory:    WasteFrozen,
			},
			expectedCost: 1050,
		},
		{
			name: "exemption overrides waste category",
			entry: IngredientEntry{
				Name:             "Salmon empacado",
				PurchaseCost:     10000,
				PurchaseQuantity: 1000,
				PurchaseUnit:     UnitGrams,
				UsageQuantity:    1000,
				UsageUnit:        UnitGrams,
				WasteCategory:    WasteRawProtein,
				ExemptFromWaste:  true,
			},
			expectedCost: 10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc, err := engine.AllocateCost(tt.entry)
			require.NoError(t, err)
			assert.InDelta(t, tt.expectedCost, alloc.Cost, 1e-9)
			assert.Equal(t, tt.mismatch, alloc.UnitMismatch)
		})
	}
}

// TestEngine_AllocateCost_ZeroPurchaseQuantity verifies the division guard.
func TestEngine_AllocateCost_ZeroPurchaseQuantity(t *testing.T) {
	engine := NewEngine()

	alloc, err := engine.AllocateCost(IngredientEntry{
		Name:          "Vacio",
		PurchaseCost:  5000,
		PurchaseUnit:  UnitGrams,
		UsageQuantity: 100,
		UsageUnit:     UnitGrams,
	})

	assert.ErrorIs(t, err, ErrZeroPurchaseQuantity)
	assert.Zero(t, alloc.Cost)
	assert.False(t, alloc.Cost != alloc.Cost, "cost must never be NaN")
}

// TestEngine_AllocateCost_Deterministic verifies repeated calls agree.
func TestEngine_AllocateCost_Deterministic(t *testing.T) {
	engine := NewEngine()
	entry := IngredientEntry{
		Name:             "Mango",
		PurchaseCost:     20000,
		TransportCost:    2000,
		PurchaseQuantity: 5,
		PurchaseUnit:     UnitKilograms,
		UsageQuantity:    300,
		UsageUnit:        UnitGrams,
		WasteCategory:    WasteFruitsVegetables,
	}

	first, err := engine.AllocateCost(entry)
	require.NoError(t, err)
	second, err := engine.AllocateCost(entry)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestEngine_PreparationCost tests sub-recipe normalization.
func TestEngine_PreparationCost(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name               string
		sub                SubRecipe
		expectedTotal      float64
		expectedYield      float64
		expectedNormalized float64
		skipped            []string
	}{
		{
			name: "normalizes total cost to yield usage",
			sub: SubRecipe{
				// Two exempt rows costing 4000 each, usage pool 400.
				Ingredients: []IngredientEntry{
					{Name: "Azucar", PurchaseCost: 4000, PurchaseQuantity: 200, PurchaseUnit: UnitGrams, UsageQuantity: 200, UsageUnit: UnitGrams, ExemptFromWaste: true},
					{Name: "Fresa", PurchaseCost: 4000, PurchaseQuantity: 200, PurchaseUnit: UnitGrams, UsageQuantity: 200, UsageUnit: UnitGrams, ExemptFromWaste: true},
				},
				YieldUsageQuantity: 50,
				YieldUsageUnit:     UnitGrams,
			},
			expectedTotal:      8000,
			expectedYield:      400,
			expectedNormalized: 1000,
		},
		{
			name: "zero yield pool returns total unchanged",
			sub: SubRecipe{
				Ingredients: []IngredientEntry{
					{Name: "Sal", PurchaseCost: 1000, PurchaseQuantity: 100, PurchaseUnit: UnitGrams, UsageQuantity: 0, UsageUnit: UnitGrams},
				},
				YieldUsageQuantity: 10,
			},
			expectedTotal:      0,
			expectedYield:      0,
			expectedNormalized: 0,
			skipped:            []string{"Sal"},
		},
		{
			name: "incomplete rows skipped from cost but pooled into yield",
			sub: SubRecipe{
				Ingredients: []IngredientEntry{
					{Name: "Mora", PurchaseCost: 6000, PurchaseQuantity: 300, PurchaseUnit: UnitGrams, UsageQuantity: 300, UsageUnit: UnitGrams, ExemptFromWaste: true},
					{Name: "Panela", UsageQuantity: 100, UsageUnit: UnitGrams},
				},
				YieldUsageQuantity: 100,
			},
			expectedTotal:      6000,
			expectedYield:      400,
			expectedNormalized: 1500,
			skipped:            []string{"Panela"},
		},
		{
			name: "empty sub-recipe yields zero everything",
			sub: SubRecipe{
				YieldUsageQuantity: 50,
			},
			expectedTotal:      0,
			expectedYield:      0,
			expectedNormalized: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prep := engine.PreparationCost(tt.sub)

			assert.InDelta(t, tt.expectedTotal, prep.TotalCost, 1e-9)
			assert.InDelta(t, tt.expectedYield, prep.TotalYield, 1e-9)
			assert.InDelta(t, tt.expectedNormalized, prep.NormalizedCost, 1e-9)
			assert.Equal(t, tt.skipped, prep.SkippedEntries)
		})
	}
}

// TestEngine_FinalizeCost tests aggregation, margins, and suggested prices.
func TestEngine_FinalizeCost(t *testing.T) {
	engine := NewEngine()

	t.Run("applies margin midpoints and rounds", func(t *testing.T) {
		result := engine.FinalizeCost([]CostedItem{
			{Name: "Mango", Cost: 1551},
		})

		assert.InDelta(t, 1551, result.MarginBreakdown.TotalBaseCost, 1e-9)
		assert.Equal(t, 5.0, result.MarginBreakdown.ServiceMarginPercent)
		assert.Equal(t, 7.5, result.MarginBreakdown.SafetyMarginPercent)
		// round(1551 * 1.125)
		assert.Equal(t, 1745.0, result.UnitCost)
		require.Len(t, result.IngredientBreakdown, 1)
		assert.Equal(t, "Mango", result.IngredientBreakdown[0].Name)
	})

	t.Run("suggested prices use ceiling markups on unit cost", func(t *testing.T) {
		// totalBase chosen so the unit cost lands exactly on 10000.
		result := engine.FinalizeCost([]CostedItem{
			{Name: "Base", Cost: 10000 / 1.125},
		})

		require.Equal(t, 10000.0, result.UnitCost)
		assert.Equal(t, 17500.0, result.SuggestedPrices.PremiumTier)
		assert.Equal(t, 18000.0, result.SuggestedPrices.CafeteriaTier)
		assert.Equal(t, 18500.0, result.SuggestedPrices.BeverageTier)
	})

	t.Run("zero base cost proceeds to a zero result", func(t *testing.T) {
		result := engine.FinalizeCost(nil)

		assert.Zero(t, result.UnitCost)
		assert.Zero(t, result.MarginBreakdown.TotalBaseCost)
		assert.Zero(t, result.SuggestedPrices.PremiumTier)
		assert.Empty(t, result.IngredientBreakdown)
	})
}
