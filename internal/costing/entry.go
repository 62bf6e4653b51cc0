package costing

// IngredientEntry is one line of purchasing and usage data for a single
// ingredient. Quantities are interpreted against their paired units; the
// waste category inflates the allocated cost unless the entry is exempt.
type IngredientEntry struct {
	// Name identifies the ingredient within the current costing session only.
	Name string `json:"name"`
	// PurchaseCost is the amount paid for the purchased lot.
	PurchaseCost float64 `json:"purchase_cost"`
	// TransportCost is the delivery cost of the lot. Defaults to 0.
	TransportCost float64 `json:"transport_cost"`
	// PurchaseQuantity is the amount of the lot received, in PurchaseUnit.
	PurchaseQuantity float64 `json:"purchase_quantity"`
	// PurchaseUnit is the unit the lot was bought in.
	PurchaseUnit Unit `json:"purchase_unit"`
	// UsageQuantity is the amount consumed per unit of the final product.
	UsageQuantity float64 `json:"usage_quantity"`
	// UsageUnit is the unit the usage quantity is expressed in.
	UsageUnit Unit `json:"usage_unit"`
	// WasteCategory classifies preparation loss for this ingredient.
	WasteCategory WasteCategory `json:"waste_category"`
	// ExemptFromWaste forces the waste contribution to zero, e.g. for
	// vacuum-packed or pre-processed goods.
	ExemptFromWaste bool `json:"exempt_from_waste"`
}

// complete reports whether the entry carries enough data to be costed:
// a positive purchased quantity and a positive usage quantity. Cost
// presence is not part of the gate: allocation divides by the purchased
// quantity, so only the quantities can make it undefined, and a zero-cost
// row sums to exactly what skipping it would. Sub-recipe rows failing the
// quantity gate are silently skipped rather than treated as zero-cost
// entries that would distort the preparation total.
func (e IngredientEntry) complete() bool {
	return e.PurchaseQuantity > 0 && e.UsageQuantity > 0
}

// SubRecipe is a one-level-deep preparation ("prepared ingredient"): a set
// of raw ingredient entries plus how much of the finished preparation one
// product unit consumes. A sub-recipe can never contain another sub-recipe.
type SubRecipe struct {
	// Ingredients are the raw entries the preparation is made from.
	Ingredients []IngredientEntry `json:"ingredients"`
	// YieldUsageQuantity is how much of the finished preparation is
	// consumed per product unit.
	YieldUsageQuantity float64 `json:"yield_usage_quantity"`
	// YieldUsageUnit is the unit of the yield usage quantity. It is
	// informational: yield is pooled as a unit-less quantity.
	YieldUsageUnit Unit `json:"yield_usage_unit"`
}

// CostedItem is a finished (name, cost) pair fed into final aggregation.
type CostedItem struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}
