package wizard

import (
	"github.com/conektaolatam-netizen/conektao-sub003/internal/costing"
)

// ActionType enumerates the operator actions the wizard understands.
type ActionType string

const (
	// ActionAddIngredient appends a name to the ingredient list.
	ActionAddIngredient ActionType = "add_ingredient"
	// ActionRemoveIngredient removes an uncosted name from the list.
	ActionRemoveIngredient ActionType = "remove_ingredient"
	// ActionSelectIngredient picks an uncosted ingredient to cost next.
	ActionSelectIngredient ActionType = "select_ingredient"
	// ActionChooseKind selects simple or prepared for the active ingredient.
	ActionChooseKind ActionType = "choose_kind"
	// ActionUpdateSimple replaces the in-progress simple form.
	ActionUpdateSimple ActionType = "update_simple"
	// ActionAddSubIngredient appends a sub-ingredient row.
	ActionAddSubIngredient ActionType = "add_sub_ingredient"
	// ActionRemoveSubIngredient removes a sub-ingredient row.
	ActionRemoveSubIngredient ActionType = "remove_sub_ingredient"
	// ActionUpdateSubIngredient replaces one sub-ingredient row.
	ActionUpdateSubIngredient ActionType = "update_sub_ingredient"
	// ActionSetYield sets the preparation's own usage quantity.
	ActionSetYield ActionType = "set_yield"
	// ActionFinishIngredient validates the active form, computes its cost,
	// and returns to the ingredient list.
	ActionFinishIngredient ActionType = "finish_ingredient"
	// ActionCancelIngredient abandons the active form without costing.
	ActionCancelIngredient ActionType = "cancel_ingredient"
	// ActionCalculate aggregates once every ingredient is costed.
	ActionCalculate ActionType = "calculate"
	// ActionAccept ends the session, handing the result to the caller.
	ActionAccept ActionType = "accept"
	// ActionReject returns to the ingredient list keeping all costed
	// entries.
	ActionReject ActionType = "reject"
)

// Action is one state-machine input. Type selects the operation; the other
// fields carry whichever payload the current state requires.
type Action struct {
	Type ActionType `json:"type" binding:"required"`

	// Name is the ingredient name for add_ingredient.
	Name string `json:"name,omitempty"`
	// Index addresses an ingredient for remove_ingredient and
	// select_ingredient.
	Index *int `json:"index,omitempty"`
	// Kind is "simple" or "prepared" for choose_kind.
	Kind string `json:"kind,omitempty"`

	// Simple is the form payload for update_simple.
	Simple *SimpleForm `json:"simple,omitempty"`

	// SubIndex addresses a sub-ingredient row.
	SubIndex *int `json:"sub_index,omitempty"`
	// Sub is the row payload for add/update_sub_ingredient.
	Sub *SubIngredientForm `json:"sub,omitempty"`

	// YieldUsageQuantity and YieldUsageUnit carry the set_yield payload.
	YieldUsageQuantity *float64     `json:"yield_usage_quantity,omitempty"`
	YieldUsageUnit     costing.Unit `json:"yield_usage_unit,omitempty"`
}
