package costing

// WasteCategory classifies raw ingredient loss during preparation
// (peeling, trimming, thawing drip, and similar).
type WasteCategory string

const (
	// WasteFruitsVegetables covers produce loss (10–25%).
	WasteFruitsVegetables WasteCategory = "fruits_vegetables"
	// WasteRawProtein covers meat, poultry, and fish trim loss (15–30%).
	WasteRawProtein WasteCategory = "raw_protein"
	// WasteFrozen covers thaw loss on frozen goods (3–7%).
	WasteFrozen WasteCategory = "frozen"
	// WasteNone means no waste adjustment applies.
	WasteNone WasteCategory = "none"
)

// PercentRange is an inclusive percentage range.
type PercentRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Midpoint returns the arithmetic midpoint of the range.
func (r PercentRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

// PriceTierMarkups holds the ceiling markup percentages applied to the unit
// cost when suggesting sale prices. These are deliberately the top of each
// tier's range: suggest aggressively, let the operator negotiate down.
type PriceTierMarkups struct {
	Premium   float64 `json:"premium"`
	Cafeteria float64 `json:"cafeteria"`
	Beverage  float64 `json:"beverage"`
}

// Tables holds the fixed lookup tables the engine computes against. They are
// injected as immutable configuration so they can be tested and tuned
// independently of the arithmetic.
type Tables struct {
	// Waste maps each category to its loss percentage range. The engine
	// always applies the midpoint, never the extremes.
	Waste map[WasteCategory]PercentRange
	// ServiceMargin covers loss during service and preparation.
	ServiceMargin PercentRange
	// SafetyMargin is the general safety cushion applied on top.
	SafetyMargin PercentRange
	// PriceTiers holds the suggested-price ceiling markups.
	PriceTiers PriceTierMarkups
}

// DefaultTables returns the standard conektao costing tables.
func DefaultTables() Tables {
	return Tables{
		Waste: map[WasteCategory]PercentRange{
			WasteFruitsVegetables: {Min: 10, Max: 25},
			WasteRawProtein:       {Min: 15, Max: 30},
			WasteFrozen:           {Min: 3, Max: 7},
			WasteNone:             {Min: 0, Max: 0},
		},
		ServiceMargin: PercentRange{Min: 3, Max: 7},
		SafetyMargin:  PercentRange{Min: 5, Max: 10},
		PriceTiers: PriceTierMarkups{
			Premium:   75,
			Cafeteria: 80,
			Beverage:  85,
		},
	}
}

// WasteMultiplier returns the cost multiplier for a waste category. Exempt
// entries (vacuum-packed, pre-processed) always get 1 regardless of category.
// Unknown categories fall back to no adjustment.
func (t Tables) WasteMultiplier(category WasteCategory, exempt bool) float64 {
	if exempt {
		return 1
	}
	r, ok := t.Waste[category]
	if !ok {
		return 1
	}
	return 1 + r.Midpoint()/100
}
