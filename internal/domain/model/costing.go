// Package model defines the core domain entities for the costing service.
package model

// IngredientCost is one line of the final cost breakdown.
//
// @Description Final allocated cost of a single ingredient
// @Example {"name": "Mango", "final_cost": 1551}
type IngredientCost struct {
	// Name is the ingredient name as entered in the session
	Name string `json:"name" example:"Mango"`
	// FinalCost is the allocated (or normalized) cost per product unit
	FinalCost float64 `json:"final_cost" example:"1551"`
}

// MarginBreakdown explains how the base cost was inflated into the unit cost.
//
// @Description Margin percentages applied on top of the total base cost
type MarginBreakdown struct {
	// TotalBaseCost is the sum of all ingredient costs before margins
	TotalBaseCost float64 `json:"total_base_cost" example:"1551"`
	// ServiceMarginPercent covers service and preparation loss
	ServiceMarginPercent float64 `json:"service_margin_percent" example:"5"`
	// SafetyMarginPercent is the general safety cushion
	SafetyMarginPercent float64 `json:"safety_margin_percent" example:"7.5"`
}

// SuggestedPrices holds tiered sale price suggestions derived from the unit
// cost with fixed ceiling markups.
//
// @Description Suggested sale prices per venue tier
// @Example {"premium_tier": 17500, "cafeteria_tier": 18000, "beverage_tier": 18500}
type SuggestedPrices struct {
	// PremiumTier is the unit cost inflated by the premium markup ceiling
	PremiumTier float64 `json:"premium_tier" example:"17500"`
	// CafeteriaTier is the unit cost inflated by the cafeteria markup ceiling
	CafeteriaTier float64 `json:"cafeteria_tier" example:"18000"`
	// BeverageTier is the unit cost inflated by the beverage markup ceiling
	BeverageTier float64 `json:"beverage_tier" example:"18500"`
}

// CostResult is the terminal output of a costing session.
//
// @Description Complete cost calculation result for one product
type CostResult struct {
	// UnitCost is the rounded per-product-unit cost including margins
	UnitCost float64 `json:"unit_cost" example:"1745"`
	// IngredientBreakdown lists every costed ingredient for display and audit
	IngredientBreakdown []IngredientCost `json:"ingredient_breakdown"`
	// MarginBreakdown explains the applied margins
	MarginBreakdown MarginBreakdown `json:"margin_breakdown"`
	// SuggestedPrices holds the tiered sale price suggestions
	SuggestedPrices SuggestedPrices `json:"suggested_prices"`
}
