package costing

import (
	"errors"
	"math"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
)

// ErrZeroPurchaseQuantity is returned when an entry's converted purchase
// quantity is zero. The step must not produce a cost; the operator has to
// correct the input and retry.
var ErrZeroPurchaseQuantity = errors.New("cannot allocate against zero purchased quantity")

// Allocation is the outcome of costing a single ingredient entry.
type Allocation struct {
	// Cost is the fraction of the ingredient's purchase expense
	// attributable to one unit of the final product, waste included.
	Cost float64
	// UnitMismatch is set when purchase and usage units belong to different
	// dimensions. The computation proceeded on raw quantities; the caller
	// should surface this as a data-quality warning.
	UnitMismatch bool
}

// Preparation is the outcome of costing a sub-recipe.
type Preparation struct {
	// TotalCost is the summed allocated cost of all complete sub-entries.
	TotalCost float64
	// TotalYield is the pooled raw usage quantity across every sub-entry.
	TotalYield float64
	// NormalizedCost is the preparation cost scaled to the yield usage
	// quantity, or TotalCost unchanged when the yield pool is zero.
	NormalizedCost float64
	// MismatchedEntries names sub-entries that were computed with
	// dimensionally inconsistent units.
	MismatchedEntries []string
	// SkippedEntries names incomplete sub-entries excluded from the sum.
	SkippedEntries []string
}

// Engine computes allocated ingredient costs against a fixed set of tables.
// It is pure: no I/O, no side effects, identical input yields identical
// output.
type Engine struct {
	tables Tables
}

// Option configures an Engine.
type Option func(*Engine)

// WithTables overrides the default costing tables.
func WithTables(t Tables) Option {
	return func(e *Engine) {
		e.tables = t
	}
}

// NewEngine creates an Engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{tables: DefaultTables()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tables returns the tables the engine computes against.
func (e *Engine) Tables() Tables {
	return e.tables
}

// AllocateCost computes the allocated cost of one ingredient per product
// unit:
//
//	base = (purchaseCost + transportCost) / convPurchaseQty * convUsageQty
//	cost = base * wasteMultiplier
//
// Quantities are converted to a common base unit when both units share a
// mass or volume dimension; count units and mismatched dimensions compute on
// raw quantities. A zero converted purchase quantity is fatal to the step
// and returns ErrZeroPurchaseQuantity without dividing.
func (e *Engine) AllocateCost(entry IngredientEntry) (Allocation, error) {
	convPurchase, convUsage, mismatched := ConvertQuantities(
		entry.PurchaseQuantity, entry.PurchaseUnit,
		entry.UsageQuantity, entry.UsageUnit,
	)

	if convPurchase == 0 {
		return Allocation{UnitMismatch: mismatched}, ErrZeroPurchaseQuantity
	}

	base := (entry.PurchaseCost + entry.TransportCost) / convPurchase * convUsage
	multiplier := e.tables.WasteMultiplier(entry.WasteCategory, entry.ExemptFromWaste)

	return Allocation{
		Cost:         base * multiplier,
		UnitMismatch: mismatched,
	}, nil
}

// PreparationCost costs a one-level-deep sub-recipe. Each complete
// sub-entry is allocated individually and summed; incomplete rows are
// silently skipped. The yield pool is the sum of every row's raw usage
// quantity, deliberately not reconciled across units. When the pool is
// positive the total is normalized to the preparation's own usage quantity;
// a zero pool returns the unnormalized total unchanged.
func (e *Engine) PreparationCost(sub SubRecipe) Preparation {
	prep := Preparation{}

	for _, ing := range sub.Ingredients {
		prep.TotalYield += ing.UsageQuantity

		if !ing.complete() {
			prep.SkippedEntries = append(prep.SkippedEntries, ing.Name)
			continue
		}

		alloc, err := e.AllocateCost(ing)
		if err != nil {
			// complete() guarantees a positive purchase quantity, so this
			// only fires on future error kinds; treat like an incomplete row.
			prep.SkippedEntries = append(prep.SkippedEntries, ing.Name)
			continue
		}

		prep.TotalCost += alloc.Cost
		if alloc.UnitMismatch {
			prep.MismatchedEntries = append(prep.MismatchedEntries, ing.Name)
		}
	}

	if prep.TotalYield > 0 {
		prep.NormalizedCost = prep.TotalCost / prep.TotalYield * sub.YieldUsageQuantity
	} else {
		prep.NormalizedCost = prep.TotalCost
	}

	return prep
}

// FinalizeCost aggregates every costed ingredient into the final per-unit
// product cost with service and safety margins, plus tiered suggested
// prices. Margins use range midpoints; suggested prices use the ceiling of
// each tier's markup, each rounded independently. A zero base cost still
// produces a (zero-valued) result: the caller treats it as a soft warning,
// not a computation error.
func (e *Engine) FinalizeCost(items []CostedItem) model.CostResult {
	breakdown := make([]model.IngredientCost, 0, len(items))
	var totalBase float64
	for _, item := range items {
		totalBase += item.Cost
		breakdown = append(breakdown, model.IngredientCost{Name: item.Name, FinalCost: item.Cost})
	}

	serviceMargin := e.tables.ServiceMargin.Midpoint()
	safetyMargin := e.tables.SafetyMargin.Midpoint()

	unitCost := math.Round(totalBase * (1 + (serviceMargin+safetyMargin)/100))

	tiers := e.tables.PriceTiers
	return model.CostResult{
		UnitCost:            unitCost,
		IngredientBreakdown: breakdown,
		MarginBreakdown: model.MarginBreakdown{
			TotalBaseCost:        totalBase,
			ServiceMarginPercent: serviceMargin,
			SafetyMarginPercent:  safetyMargin,
		},
		SuggestedPrices: model.SuggestedPrices{
			PremiumTier:   math.Round(unitCost * (1 + tiers.Premium/100)),
			CafeteriaTier: math.Round(unitCost * (1 + tiers.Cafeteria/100)),
			BeverageTier:  math.Round(unitCost * (1 + tiers.Beverage/100)),
		},
	}
}
