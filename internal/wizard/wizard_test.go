package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/costing"
)

func ptr(f float64) *float64 { return &f }

func newWizard() *Wizard {
	return New(costing.NewEngine())
}

// mangoForm is the purchase data for the canonical "Jugo de Mango" case:
// allocated cost (20000+2000)/5000 * 300 * 1.175 = 1551.
func mangoForm() *SimpleForm {
	return &SimpleForm{
		PurchaseCost:     ptr(20000),
		TransportCost:    ptr(2000),
		PurchaseQuantity: ptr(5),
		PurchaseUnit:     costing.UnitKilograms,
		UsageQuantity:    ptr(300),
		UsageUnit:        costing.UnitGrams,
		WasteCategory:    costing.WasteFruitsVegetables,
	}
}

// costSimple drives an ingredient at index through the simple path.
func costSimple(t *testing.T, w *Wizard, s *Session, index int, form *SimpleForm) {
	t.Helper()
	require.NoError(t, w.DriveStep(s, Action{Type: ActionSelectIngredient, Index: &index}))
	require.NoError(t, w.DriveStep(s, Action{Type: ActionChooseKind, Kind: "simple"}))
	require.NoError(t, w.DriveStep(s, Action{Type: ActionUpdateSimple, Simple: form}))
	require.NoError(t, w.DriveStep(s, Action{Type: ActionFinishIngredient}))
}

func TestWizard_StartSession(t *testing.T) {
	w := newWizard()

	t.Run("seeds state and ingredient list", func(t *testing.T) {
		s := w.StartSession("Jugo de Mango", []string{"Mango", "Azucar"})

		assert.Equal(t, StateCollecting, s.State)
		assert.Equal(t, []string{"Mango", "Azucar"}, s.Ingredients)
		assert.Equal(t, -1, s.ActiveIndex)
		assert.Empty(t, s.Costed)
	})

	t.Run("empty initial list is allowed", func(t *testing.T) {
		s := w.StartSession("Nuevo", nil)
		assert.Empty(t, s.Ingredients)

		require.NoError(t, w.DriveStep(s, Action{Type: ActionAddIngredient, Name: "Cafe"}))
		assert.Equal(t, []string{"Cafe"}, s.Ingredients)
	})

	t.Run("blank names are dropped", func(t *testing.T) {
		s := w.StartSession("Nuevo", []string{"", "Cafe", ""})
		assert.Equal(t, []string{"Cafe"}, s.Ingredients)
	})
}

func TestWizard_SimpleIngredientFlow(t *testing.T) {
	w := newWizard()
	s := w.StartSession("Jugo de Mango", []string{"Mango"})

	costSimple(t, w, s, 0, mangoForm())

	require.True(t, s.IsCosted(0))
	costed := s.Costed[0]
	assert.Equal(t, "Mango", costed.Name)
	assert.Equal(t, KindSimple, costed.Kind)
	assert.InDelta(t, 1551, costed.AllocatedCost, 1e-9)
	assert.Equal(t, StateCollecting, s.State)
	assert.Nil(t, s.Simple)
	assert.Equal(t, -1, s.ActiveIndex)
}

func TestWizard_ValidationGates(t *testing.T) {
	w := newWizard()

	t.Run("incomplete simple form does not fire", func(t *testing.T) {
		s := w.StartSession("Jugo", []string{"Mango"})
		idx := 0
		require.NoError(t, w.DriveStep(s, Action{Type: ActionSelectIngredient, Index: &idx}))
		require.NoError(t, w.DriveStep(s, Action{Type: ActionChooseKind, Kind: "simple"}))

		form := mangoForm()
		form.TransportCost = nil
		require.NoError(t, w.DriveStep(s, Action{Type: ActionUpdateSimple, Simple: form}))

		err := w.DriveStep(s, Action{Type: ActionFinishIngredient})
		assert.ErrorIs(t, err, ErrIncompleteForm)
		assert.Equal(t, StateCostingSimple, s.State, "session must stay where it was")
		assert.False(t, s.IsCosted(0))
	})

	t.Run("waste requirement satisfied by exemption alone", func(t *testing.T) {
		s := w.StartSession("Jugo", []string{"Salmon"})
		form := mangoForm()
		form.WasteCategory = ""
		form.ExemptFromWaste = true
		costSimple(t, w, s, 0, form)
		assert.True(t, s.IsCosted(0))
	})

	t.Run("zero purchase quantity is fatal to the step but recoverable", func(t *testing.T) {
		s := w.StartSession("Jugo", []string{"Mango"})
		idx := 0
		require.NoError(t, w.DriveStep(s, Action{Type: ActionSelectIngredient, Index: &idx}))
		require.NoError(t, w.DriveStep(s, Action{Type: ActionChooseKind, Kind: "simple"}))

		form := mangoForm()
		form.PurchaseQuantity = ptr(0)
		require.NoError(t, w.DriveStep(s, Action{Type: ActionUpdateSimple, Simple: form}))

		err := w.DriveStep(s, Action{Type: ActionFinishIngredient})
		assert.ErrorIs(t, err, costing.ErrZeroPurchaseQuantity)
		assert.Equal(t, StateCostingSimple, s.State)

		// Correcting the input lets the same step succeed.
		require.NoError(t, w.DriveStep(s, Action{Type: ActionUpdateSimple, Simple: mangoForm()}))
		require.NoError(t, w.DriveStep(s, Action{Type: ActionFinishIngredient}))
		assert.True(t, s.IsCosted(0))
	})

	t.Run("prepared gate requires rows yield and completeness", func(t *testing.T) {
		s := w.StartSession("Postre", []string{"Mermelada"})
		idx := 0
		require.NoError(t, w.DriveStep(s, Action{Type: ActionSelectIngredient, Index: &idx}))
		require.NoError(t, w.DriveStep(s, Action{Type: ActionChooseKind, Kind: "prepared"}))
		require.Len(t, s.Prepared.Subs, 1, "prepared entry seeds one empty row")

		// Default seeded row is incomplete.
		err := w.DriveStep(s, Action{Type: ActionFinishIngredient})
		assert.ErrorIs(t, err, ErrIncompleteForm)
		assert.Equal(t, StateCostingPrepared, s.State)
	})
}

func TestWizard_PreparedIngredientFlow(t *testing.T) {
	w := newWizard()
	s := w.StartSession("Postre", []string{"Mermelada"})

	idx := 0
	subIdx := 0
	require.NoError(t, w.DriveStep(s, Action{Type: ActionSelectIngredient, Index: &idx}))
	require.NoError(t, w.DriveStep(s, Action{Type: ActionChooseKind, Kind: "prepared"}))

	// Fill the seeded row, add a second one.
	fresa := &SubIngredientForm{Name: "Fresa", SimpleForm: SimpleForm{
		PurchaseCost:     ptr(4000),
		TransportCost:    ptr(0),
		PurchaseQuantity: ptr(200),
		PurchaseUnit:     costing.UnitGrams,
		UsageQuantity:    ptr(200),
		UsageUnit:        costing.UnitGrams,
		ExemptFromWaste:  true,
	}}
	azucar := &SubIngredientForm{Name: "Azucar", SimpleForm: SimpleForm{
		PurchaseCost:     ptr(4000),
		TransportCost:    ptr(0),
		PurchaseQuantity: ptr(200),
		PurchaseUnit:     costing.UnitGrams,
		UsageQuantity:    ptr(200),
		UsageUnit:        costing.UnitGrams,
		ExemptFromWaste:  true,
	}}
	require.NoError(t, w.DriveStep(s, Action{Type: ActionUpdateSubIngredient, SubIndex: &subIdx, Sub: fresa}))
	require.NoError(t, w.DriveStep(s, Action{Type: ActionAddSubIngredient, Sub: azucar}))
	require.NoError(t, w.DriveStep(s, Action{Type: ActionSetYield, YieldUsageQuantity: ptr(50), YieldUsageUnit: costing.UnitGrams}))
	require.NoError(t, w.DriveStep(s, Action{Type: ActionFinishIngredient}))

	require.True(t, s.IsCosted(0))
	costed := s.Costed[0]
	assert.Equal(t, KindPrepared, costed.Kind)
	// 8000 total / 400 yield * 50 usage
	assert.InDelta(t, 1000, costed.AllocatedCost, 1e-9)
	assert.Equal(t, StateCollecting, s.State)
	assert.Nil(t, s.Prepared)
}

func TestWizard_ListEditing(t *testing.T) {
	w := newWizard()

	t.Run("removing an uncosted ingredient re-keys costed entries", func(t *testing.T) {
		s := w.StartSession("Plato", []string{"Uncosted", "Pollo"})
		costSimple(t, w, s, 1, mangoForm())

		idx := 0
		require.NoError(t, w.DriveStep(s, Action{Type: ActionRemoveIngredient, Index: &idx}))

		assert.Equal(t, []string{"Pollo"}, s.Ingredients)
		require.True(t, s.IsCosted(0))
		assert.Equal(t, "Pollo", s.Costed[0].Name)
		assert.True(t, s.AllCosted())
	})

	t.Run("costed ingredients cannot be removed or reselected", func(t *testing.T) {
		s := w.StartSession("Plato", []string{"Mango"})
		costSimple(t, w, s, 0, mangoForm())

		idx := 0
		assert.ErrorIs(t, w.DriveStep(s, Action{Type: ActionRemoveIngredient, Index: &idx}), ErrAlreadyCosted)
		assert.ErrorIs(t, w.DriveStep(s, Action{Type: ActionSelectIngredient, Index: &idx}), ErrAlreadyCosted)
	})

	t.Run("out-of-range index is rejected", func(t *testing.T) {
		s := w.StartSession("Plato", []string{"Mango"})
		idx := 5
		assert.ErrorIs(t, w.DriveStep(s, Action{Type: ActionSelectIngredient, Index: &idx}), ErrUnknownIngredient)
		assert.ErrorIs(t, w.DriveStep(s, Action{Type: ActionSelectIngredient}), ErrUnknownIngredient)
	})
}

func TestWizard_CalculateAndFinalize(t *testing.T) {
	w := newWizard()

	t.Run("calculate gated until everything is costed", func(t *testing.T) {
		s := w.StartSession("Jugo de Mango", []string{"Mango", "Azucar"})
		costSimple(t, w, s, 0, mangoForm())

		assert.ErrorIs(t, w.DriveStep(s, Action{Type: ActionCalculate}), ErrNotAllCosted)
		assert.Equal(t, StateCollecting, s.State)
	})

	t.Run("finalize outside aggregation is a contract error", func(t *testing.T) {
		s := w.StartSession("Jugo de Mango", []string{"Mango"})
		_, err := w.Finalize(s)
		assert.ErrorIs(t, err, ErrFinalizeState)
	})

	t.Run("full scenario lands on the expected unit cost", func(t *testing.T) {
		s := w.StartSession("Jugo de Mango", []string{"Mango"})
		costSimple(t, w, s, 0, mangoForm())

		require.NoError(t, w.DriveStep(s, Action{Type: ActionCalculate}))
		assert.Equal(t, StateResults, s.State)

		result, err := w.Finalize(s)
		require.NoError(t, err)
		// round(1551 * 1.125)
		assert.Equal(t, 1745.0, result.UnitCost)
		assert.InDelta(t, 1551, result.MarginBreakdown.TotalBaseCost, 1e-9)
		require.Len(t, result.IngredientBreakdown, 1)
		assert.Equal(t, "Mango", result.IngredientBreakdown[0].Name)
	})

	t.Run("reject returns to collecting keeping costed entries", func(t *testing.T) {
		s := w.StartSession("Jugo de Mango", []string{"Mango"})
		costSimple(t, w, s, 0, mangoForm())
		require.NoError(t, w.DriveStep(s, Action{Type: ActionCalculate}))

		require.NoError(t, w.DriveStep(s, Action{Type: ActionReject}))
		assert.Equal(t, StateCollecting, s.State)
		assert.Nil(t, s.Result)
		assert.True(t, s.IsCosted(0))

		// The retained entries allow recalculating immediately.
		require.NoError(t, w.DriveStep(s, Action{Type: ActionCalculate}))
		assert.Equal(t, StateResults, s.State)
	})

	t.Run("accept ends the session", func(t *testing.T) {
		s := w.StartSession("Jugo de Mango", []string{"Mango"})
		costSimple(t, w, s, 0, mangoForm())
		require.NoError(t, w.DriveStep(s, Action{Type: ActionCalculate}))
		require.NoError(t, w.DriveStep(s, Action{Type: ActionAccept}))

		assert.True(t, s.Accepted)
		assert.ErrorIs(t, w.DriveStep(s, Action{Type: ActionAddIngredient, Name: "Otro"}), ErrSessionEnded)

		// The result stays readable for the caller to persist.
		result, err := w.Finalize(s)
		require.NoError(t, err)
		assert.Equal(t, 1745.0, result.UnitCost)
	})
}

func TestWizard_UnitMismatchWarning(t *testing.T) {
	w := newWizard()
	s := w.StartSession("Sopa", []string{"Aceite"})

	form := mangoForm()
	form.PurchaseUnit = costing.UnitLiters
	form.UsageUnit = costing.UnitGrams
	costSimple(t, w, s, 0, form)

	require.True(t, s.IsCosted(0))
	require.Len(t, s.Warnings, 1)
	assert.Contains(t, s.Warnings[0], "mismatched dimensions")
	assert.Len(t, s.Costed[0].Warnings, 1)
}

func TestWizard_InvalidStateTransitions(t *testing.T) {
	w := newWizard()
	s := w.StartSession("Plato", []string{"Mango"})

	tests := []struct {
		name   string
		action Action
	}{
		{"finish without active form", Action{Type: ActionFinishIngredient}},
		{"choose kind without selection", Action{Type: ActionChooseKind, Kind: "simple"}},
		{"update simple from collecting", Action{Type: ActionUpdateSimple, Simple: &SimpleForm{}}},
		{"accept before results", Action{Type: ActionAccept}},
		{"reject before results", Action{Type: ActionReject}},
		{"add sub-ingredient from collecting", Action{Type: ActionAddSubIngredient}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, w.DriveStep(s, tt.action), ErrInvalidState)
			assert.Equal(t, StateCollecting, s.State)
		})
	}

	t.Run("unknown action type", func(t *testing.T) {
		assert.ErrorIs(t, w.DriveStep(s, Action{Type: "dance"}), ErrUnknownAction)
	})
}

func TestSession_SnapshotIsolation(t *testing.T) {
	w := newWizard()
	s := w.StartSession("Jugo de Mango", []string{"Mango"})
	costSimple(t, w, s, 0, mangoForm())

	snap := s.Snapshot()

	require.NoError(t, w.DriveStep(s, Action{Type: ActionAddIngredient, Name: "Azucar"}))
	idx := 1
	require.NoError(t, w.DriveStep(s, Action{Type: ActionSelectIngredient, Index: &idx}))
	require.NoError(t, w.DriveStep(s, Action{Type: ActionChooseKind, Kind: "simple"}))
	require.NoError(t, w.DriveStep(s, Action{Type: ActionUpdateSimple, Simple: mangoForm()}))
	require.NoError(t, w.DriveStep(s, Action{Type: ActionFinishIngredient}))

	assert.Equal(t, []string{"Mango"}, snap.Ingredients)
	assert.Len(t, snap.Costed, 1)
	assert.Equal(t, StateCollecting, snap.State)
	assert.Nil(t, snap.Simple)

	assert.Equal(t, []string{"Mango", "Azucar"}, s.Ingredients)
	assert.Len(t, s.Costed, 2)
}

func TestSession_SnapshotCopiesResult(t *testing.T) {
	w := newWizard()
	s := w.StartSession("Jugo de Mango", []string{"Mango"})
	costSimple(t, w, s, 0, mangoForm())
	require.NoError(t, w.DriveStep(s, Action{Type: ActionCalculate}))

	snap := s.Snapshot()
	require.NotNil(t, snap.Result)
	assert.InDelta(t, 1745, snap.Result.UnitCost, 1e-9)

	require.NoError(t, w.DriveStep(s, Action{Type: ActionReject}))
	assert.Nil(t, s.Result)
	require.NotNil(t, snap.Result)
	assert.InDelta(t, 1745, snap.Result.UnitCost, 1e-9)
}
