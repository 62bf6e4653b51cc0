// Package wizard implements the finite-state workflow that collects
// purchase and usage data for every ingredient of a product and drives the
// costing engine. One wizard session costs one product; sessions live in
// memory only and are discarded once the caller accepts or rejects the
// result.
package wizard

import (
	"time"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/costing"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
)

// State identifies the current step of the costing workflow.
type State int

const (
	// StateCollecting is the initial state: the operator edits the list of
	// ingredient names and picks the next one to cost.
	StateCollecting State = iota
	// StateSelectingType is entered once an uncosted ingredient is chosen.
	StateSelectingType
	// StateCostingSimple collects purchase/usage/waste data for a raw
	// ingredient.
	StateCostingSimple
	// StateCostingPrepared collects sub-ingredient rows for a one-level
	// sub-recipe plus the preparation's own usage quantity.
	StateCostingPrepared
	// StateAggregating sums all costed ingredients. Transient: the wizard
	// moves through it automatically.
	StateAggregating
	// StateResults is the terminal state holding the final result until the
	// operator accepts or rejects it.
	StateResults
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateSelectingType:
		return "selecting_type"
	case StateCostingSimple:
		return "costing_simple"
	case StateCostingPrepared:
		return "costing_prepared"
	case StateAggregating:
		return "aggregating"
	case StateResults:
		return "results"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the state by name.
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// IngredientKind distinguishes the two closed variants of a costed
// ingredient. A prepared ingredient contains only simple rows, never
// another preparation.
type IngredientKind int

const (
	// KindSimple is a raw ingredient costed directly.
	KindSimple IngredientKind = iota
	// KindPrepared is a sub-recipe whose aggregate cost is normalized to a
	// usage quantity.
	KindPrepared
)

// String returns a human-readable kind name.
func (k IngredientKind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindPrepared:
		return "prepared"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the kind by name.
func (k IngredientKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// SimpleForm holds the in-progress purchase/usage fields for a simple
// ingredient. Numeric fields are pointers so a missing value is
// distinguishable from an entered zero: the validation gate requires
// presence, not non-zero.
type SimpleForm struct {
	PurchaseCost     *float64              `json:"purchase_cost,omitempty"`
	TransportCost    *float64              `json:"transport_cost,omitempty"`
	PurchaseQuantity *float64              `json:"purchase_quantity,omitempty"`
	PurchaseUnit     costing.Unit          `json:"purchase_unit,omitempty"`
	UsageQuantity    *float64              `json:"usage_quantity,omitempty"`
	UsageUnit        costing.Unit          `json:"usage_unit,omitempty"`
	WasteCategory    costing.WasteCategory `json:"waste_category,omitempty"`
	ExemptFromWaste  bool                  `json:"exempt_from_waste,omitempty"`
}

// complete reports whether every required field has been entered. The waste
// requirement is satisfied by either a category or the exemption flag.
func (f *SimpleForm) complete() bool {
	if f == nil {
		return false
	}
	fieldsPresent := f.PurchaseCost != nil &&
		f.TransportCost != nil &&
		f.PurchaseQuantity != nil &&
		f.UsageQuantity != nil
	wastePresent := f.WasteCategory != "" || f.ExemptFromWaste
	return fieldsPresent && wastePresent
}

// toEntry materializes the form into an engine entry.
func (f *SimpleForm) toEntry(name string) costing.IngredientEntry {
	category := f.WasteCategory
	if category == "" {
		category = costing.WasteNone
	}
	return costing.IngredientEntry{
		Name:             name,
		PurchaseCost:     deref(f.PurchaseCost),
		TransportCost:    deref(f.TransportCost),
		PurchaseQuantity: deref(f.PurchaseQuantity),
		PurchaseUnit:     f.PurchaseUnit,
		UsageQuantity:    deref(f.UsageQuantity),
		UsageUnit:        f.UsageUnit,
		WasteCategory:    category,
		ExemptFromWaste:  f.ExemptFromWaste,
	}
}

// SubIngredientForm is one editable row of a sub-recipe.
type SubIngredientForm struct {
	Name string `json:"name"`
	SimpleForm
}

// complete additionally requires the row to be named.
func (f *SubIngredientForm) complete() bool {
	return f != nil && f.Name != "" && f.SimpleForm.complete()
}

// PreparedForm holds the in-progress sub-recipe rows and the preparation's
// own usage quantity.
type PreparedForm struct {
	Subs               []SubIngredientForm `json:"subs"`
	YieldUsageQuantity *float64            `json:"yield_usage_quantity,omitempty"`
	YieldUsageUnit     costing.Unit        `json:"yield_usage_unit,omitempty"`
}

// complete reports whether the preparation can be finished: at least one
// row, every row complete, and the yield usage quantity present.
func (f *PreparedForm) complete() bool {
	if f == nil || len(f.Subs) == 0 || f.YieldUsageQuantity == nil {
		return false
	}
	for i := range f.Subs {
		if !f.Subs[i].complete() {
			return false
		}
	}
	return true
}

// toSubRecipe materializes the form into an engine sub-recipe.
func (f *PreparedForm) toSubRecipe() costing.SubRecipe {
	ingredients := make([]costing.IngredientEntry, 0, len(f.Subs))
	for i := range f.Subs {
		ingredients = append(ingredients, f.Subs[i].toEntry(f.Subs[i].Name))
	}
	return costing.SubRecipe{
		Ingredients:        ingredients,
		YieldUsageQuantity: deref(f.YieldUsageQuantity),
		YieldUsageUnit:     f.YieldUsageUnit,
	}
}

// CostedIngredient is a finished ingredient: exactly one of Entry or
// SubRecipe is set, per Kind, and AllocatedCost carries the final
// allocated or normalized cost. Once stored it is immutable for the rest
// of the session.
type CostedIngredient struct {
	Name          string                   `json:"name"`
	Kind          IngredientKind           `json:"kind"`
	Entry         *costing.IngredientEntry `json:"entry,omitempty"`
	SubRecipe     *costing.SubRecipe       `json:"sub_recipe,omitempty"`
	AllocatedCost float64                  `json:"allocated_cost"`
	Warnings      []string                 `json:"warnings,omitempty"`
}

// Session is the aggregate root for costing one product. It is owned by
// exactly one wizard instance at a time and mutated only through
// Wizard.DriveStep.
type Session struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	State       State  `json:"state"`

	// Ingredients is the ordered, user-editable list of names to cost.
	Ingredients []string `json:"ingredients"`
	// Costed maps an ingredient index to its finished entry. An index is
	// costed at most once per session.
	Costed map[int]CostedIngredient `json:"costed"`

	// ActiveIndex is the ingredient currently being costed, -1 when none.
	ActiveIndex int `json:"active_index"`
	// Simple is the in-progress form while in StateCostingSimple.
	Simple *SimpleForm `json:"simple,omitempty"`
	// Prepared is the in-progress form while in StateCostingPrepared.
	Prepared *PreparedForm `json:"prepared,omitempty"`

	// Warnings accumulates non-fatal data-quality notices for display.
	Warnings []string `json:"warnings,omitempty"`
	// Result is set once the session reaches StateResults.
	Result *model.CostResult `json:"result,omitempty"`
	// Accepted marks the session as ended by the operator accepting the
	// result. An accepted session admits no further steps.
	Accepted bool `json:"accepted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a copy of the session safe for concurrent readers while
// the original keeps being stepped. Every container the wizard mutates in
// place is duplicated; finished entries and form payloads are shared, since
// the wizard replaces those wholesale and never writes through them.
func (s *Session) Snapshot() *Session {
	snap := *s
	snap.Ingredients = append([]string(nil), s.Ingredients...)
	snap.Warnings = append([]string(nil), s.Warnings...)

	if s.Costed != nil {
		snap.Costed = make(map[int]CostedIngredient, len(s.Costed))
		for idx, ci := range s.Costed {
			snap.Costed[idx] = ci
		}
	}
	if s.Simple != nil {
		form := *s.Simple
		snap.Simple = &form
	}
	if s.Prepared != nil {
		prepared := *s.Prepared
		prepared.Subs = append([]SubIngredientForm(nil), s.Prepared.Subs...)
		snap.Prepared = &prepared
	}
	if s.Result != nil {
		result := *s.Result
		result.IngredientBreakdown = append([]model.IngredientCost(nil), s.Result.IngredientBreakdown...)
		snap.Result = &result
	}
	return &snap
}

// IsCosted reports whether the ingredient at index has been finished.
func (s *Session) IsCosted(index int) bool {
	_, ok := s.Costed[index]
	return ok
}

// AllCosted reports whether every listed ingredient has a finished entry.
func (s *Session) AllCosted() bool {
	for i := range s.Ingredients {
		if !s.IsCosted(i) {
			return false
		}
	}
	return true
}

// CostedItems flattens the costed map into ordered (name, cost) pairs for
// aggregation.
func (s *Session) CostedItems() []costing.CostedItem {
	items := make([]costing.CostedItem, 0, len(s.Costed))
	for i := range s.Ingredients {
		if ci, ok := s.Costed[i]; ok {
			items = append(items, costing.CostedItem{Name: ci.Name, Cost: ci.AllocatedCost})
		}
	}
	return items
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
