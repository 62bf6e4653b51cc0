package wizard

import (
	"errors"
	"fmt"
	"time"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/costing"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
)

var (
	// ErrUnknownAction is returned for an unrecognized action type.
	ErrUnknownAction = errors.New("unknown wizard action")
	// ErrInvalidState is returned when an action is not allowed in the
	// session's current state. The session is left unchanged.
	ErrInvalidState = errors.New("action not allowed in current state")
	// ErrUnknownIngredient is returned for an out-of-range ingredient index.
	ErrUnknownIngredient = errors.New("no ingredient at that index")
	// ErrAlreadyCosted is returned when trying to select or remove a
	// finished ingredient. Costed entries are immutable until the session
	// is restarted.
	ErrAlreadyCosted = errors.New("ingredient already costed this session")
	// ErrIncompleteForm is a validation gate failure: required fields are
	// missing, so the transition simply does not fire.
	ErrIncompleteForm = errors.New("required fields are missing")
	// ErrNotAllCosted gates aggregation until every listed ingredient has
	// a finished entry.
	ErrNotAllCosted = errors.New("not every ingredient has been costed")
	// ErrFinalizeState is a contract violation: Finalize was called outside
	// the aggregating/results states.
	ErrFinalizeState = errors.New("finalize is only valid once aggregation is reached")
	// ErrSessionEnded is returned for steps on an accepted session.
	ErrSessionEnded = errors.New("session has ended")
)

// Wizard drives costing sessions through the workflow states. It holds no
// per-session state itself; all mutation happens on the Session passed in.
type Wizard struct {
	engine *costing.Engine
}

// New creates a Wizard backed by the given engine.
func New(engine *costing.Engine) *Wizard {
	return &Wizard{engine: engine}
}

// StartSession seeds a new costing session for a product. The initial name
// list may be empty; the operator can add names interactively before any
// costing begins.
func (w *Wizard) StartSession(productName string, ingredientNames []string) *Session {
	names := make([]string, 0, len(ingredientNames))
	for _, n := range ingredientNames {
		if n != "" {
			names = append(names, n)
		}
	}

	now := time.Now()
	return &Session{
		ProductName: productName,
		State:       StateCollecting,
		Ingredients: names,
		Costed:      make(map[int]CostedIngredient),
		ActiveIndex: -1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// DriveStep applies a single state-machine transition. On a gate failure or
// any other error the session is left exactly as it was; the operator
// corrects the input and retries the same step.
func (w *Wizard) DriveStep(s *Session, action Action) error {
	if s.Accepted {
		return ErrSessionEnded
	}

	var err error
	switch action.Type {
	case ActionAddIngredient:
		err = w.addIngredient(s, action)
	case ActionRemoveIngredient:
		err = w.removeIngredient(s, action)
	case ActionSelectIngredient:
		err = w.selectIngredient(s, action)
	case ActionChooseKind:
		err = w.chooseKind(s, action)
	case ActionUpdateSimple:
		err = w.updateSimple(s, action)
	case ActionAddSubIngredient:
		err = w.addSubIngredient(s, action)
	case ActionRemoveSubIngredient:
		err = w.removeSubIngredient(s, action)
	case ActionUpdateSubIngredient:
		err = w.updateSubIngredient(s, action)
	case ActionSetYield:
		err = w.setYield(s, action)
	case ActionFinishIngredient:
		err = w.finishIngredient(s)
	case ActionCancelIngredient:
		err = w.cancelIngredient(s)
	case ActionCalculate:
		err = w.calculate(s)
	case ActionAccept:
		err = w.accept(s)
	case ActionReject:
		err = w.reject(s)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}

	if err == nil {
		s.UpdatedAt = time.Now()
	}
	return err
}

// Finalize returns the session's cost calculation result. It is only valid
// once the session has reached aggregation; calling it from any other state
// is a programming-contract error, not a user-facing one.
func (w *Wizard) Finalize(s *Session) (model.CostResult, error) {
	if s.State != StateAggregating && s.State != StateResults {
		return model.CostResult{}, fmt.Errorf("%w (current state: %s)", ErrFinalizeState, s.State)
	}
	if s.Result == nil {
		result := w.engine.FinalizeCost(s.CostedItems())
		s.Result = &result
		s.State = StateResults
	}
	return *s.Result, nil
}

func (w *Wizard) addIngredient(s *Session, action Action) error {
	if s.State != StateCollecting {
		return ErrInvalidState
	}
	if action.Name == "" {
		return fmt.Errorf("%w: ingredient name", ErrIncompleteForm)
	}
	s.Ingredients = append(s.Ingredients, action.Name)
	return nil
}

func (w *Wizard) removeIngredient(s *Session, action Action) error {
	if s.State != StateCollecting {
		return ErrInvalidState
	}
	idx, err := s.ingredientIndex(action.Index)
	if err != nil {
		return err
	}
	if s.IsCosted(idx) {
		return ErrAlreadyCosted
	}

	s.Ingredients = append(s.Ingredients[:idx], s.Ingredients[idx+1:]...)

	// Re-key costed entries above the removed index so the stable-index
	// mapping survives list edits.
	for i := idx + 1; i <= len(s.Ingredients); i++ {
		if ci, ok := s.Costed[i]; ok {
			s.Costed[i-1] = ci
			delete(s.Costed, i)
		}
	}
	return nil
}

func (w *Wizard) selectIngredient(s *Session, action Action) error {
	if s.State != StateCollecting {
		return ErrInvalidState
	}
	idx, err := s.ingredientIndex(action.Index)
	if err != nil {
		return err
	}
	if s.IsCosted(idx) {
		return ErrAlreadyCosted
	}

	s.ActiveIndex = idx
	s.State = StateSelectingType
	return nil
}

func (w *Wizard) chooseKind(s *Session, action Action) error {
	if s.State != StateSelectingType {
		return ErrInvalidState
	}

	switch action.Kind {
	case KindSimple.String():
		s.Simple = &SimpleForm{}
		s.State = StateCostingSimple
	case KindPrepared.String():
		// Seed one empty row so the operator lands on an editable form.
		s.Prepared = &PreparedForm{Subs: []SubIngredientForm{{}}}
		s.State = StateCostingPrepared
	default:
		return fmt.Errorf("%w: kind %q", ErrIncompleteForm, action.Kind)
	}
	return nil
}

func (w *Wizard) updateSimple(s *Session, action Action) error {
	if s.State != StateCostingSimple {
		return ErrInvalidState
	}
	if action.Simple == nil {
		return fmt.Errorf("%w: simple form payload", ErrIncompleteForm)
	}
	s.Simple = action.Simple
	return nil
}

func (w *Wizard) addSubIngredient(s *Session, action Action) error {
	if s.State != StateCostingPrepared {
		return ErrInvalidState
	}
	row := SubIngredientForm{}
	if action.Sub != nil {
		row = *action.Sub
	}
	s.Prepared.Subs = append(s.Prepared.Subs, row)
	return nil
}

func (w *Wizard) removeSubIngredient(s *Session, action Action) error {
	if s.State != StateCostingPrepared {
		return ErrInvalidState
	}
	if action.SubIndex == nil || *action.SubIndex < 0 || *action.SubIndex >= len(s.Prepared.Subs) {
		return ErrUnknownIngredient
	}
	idx := *action.SubIndex
	s.Prepared.Subs = append(s.Prepared.Subs[:idx], s.Prepared.Subs[idx+1:]...)
	return nil
}

func (w *Wizard) updateSubIngredient(s *Session, action Action) error {
	if s.State != StateCostingPrepared {
		return ErrInvalidState
	}
	if action.SubIndex == nil || *action.SubIndex < 0 || *action.SubIndex >= len(s.Prepared.Subs) {
		return ErrUnknownIngredient
	}
	if action.Sub == nil {
		return fmt.Errorf("%w: sub-ingredient payload", ErrIncompleteForm)
	}
	s.Prepared.Subs[*action.SubIndex] = *action.Sub
	return nil
}

func (w *Wizard) setYield(s *Session, action Action) error {
	if s.State != StateCostingPrepared {
		return ErrInvalidState
	}
	if action.YieldUsageQuantity == nil {
		return fmt.Errorf("%w: yield usage quantity", ErrIncompleteForm)
	}
	s.Prepared.YieldUsageQuantity = action.YieldUsageQuantity
	s.Prepared.YieldUsageUnit = action.YieldUsageUnit
	return nil
}

func (w *Wizard) finishIngredient(s *Session) error {
	switch s.State {
	case StateCostingSimple:
		return w.finishSimple(s)
	case StateCostingPrepared:
		return w.finishPrepared(s)
	default:
		return ErrInvalidState
	}
}

func (w *Wizard) finishSimple(s *Session) error {
	if !s.Simple.complete() {
		return ErrIncompleteForm
	}

	name := s.Ingredients[s.ActiveIndex]
	entry := s.Simple.toEntry(name)

	alloc, err := w.engine.AllocateCost(entry)
	if err != nil {
		// Fatal to the step, recoverable by the operator: stay in the form.
		return err
	}

	costed := CostedIngredient{
		Name:          name,
		Kind:          KindSimple,
		Entry:         &entry,
		AllocatedCost: alloc.Cost,
	}
	if alloc.UnitMismatch {
		warning := fmt.Sprintf("%s: purchase and usage units have mismatched dimensions; computed on raw quantities", name)
		costed.Warnings = append(costed.Warnings, warning)
		s.Warnings = append(s.Warnings, warning)
	}

	s.Costed[s.ActiveIndex] = costed
	s.clearActiveForm()
	return nil
}

func (w *Wizard) finishPrepared(s *Session) error {
	if !s.Prepared.complete() {
		return ErrIncompleteForm
	}

	name := s.Ingredients[s.ActiveIndex]
	sub := s.Prepared.toSubRecipe()
	prep := w.engine.PreparationCost(sub)

	costed := CostedIngredient{
		Name:          name,
		Kind:          KindPrepared,
		SubRecipe:     &sub,
		AllocatedCost: prep.NormalizedCost,
	}
	for _, mismatched := range prep.MismatchedEntries {
		warning := fmt.Sprintf("%s / %s: purchase and usage units have mismatched dimensions; computed on raw quantities", name, mismatched)
		costed.Warnings = append(costed.Warnings, warning)
		s.Warnings = append(s.Warnings, warning)
	}

	s.Costed[s.ActiveIndex] = costed
	s.clearActiveForm()
	return nil
}

func (w *Wizard) cancelIngredient(s *Session) error {
	if s.State != StateCostingSimple && s.State != StateCostingPrepared && s.State != StateSelectingType {
		return ErrInvalidState
	}
	s.clearActiveForm()
	return nil
}

func (w *Wizard) calculate(s *Session) error {
	if s.State != StateCollecting {
		return ErrInvalidState
	}
	if !s.AllCosted() {
		return ErrNotAllCosted
	}

	// Aggregation is automatic: compute and land on results in one step.
	s.State = StateAggregating
	result := w.engine.FinalizeCost(s.CostedItems())
	s.Result = &result
	s.State = StateResults
	return nil
}

func (w *Wizard) accept(s *Session) error {
	if s.State != StateResults {
		return ErrInvalidState
	}
	s.Accepted = true
	return nil
}

func (w *Wizard) reject(s *Session) error {
	if s.State != StateResults {
		return ErrInvalidState
	}
	// All costed entries are retained; only the aggregate is dropped.
	s.Result = nil
	s.State = StateCollecting
	return nil
}

func (s *Session) ingredientIndex(index *int) (int, error) {
	if index == nil || *index < 0 || *index >= len(s.Ingredients) {
		return 0, ErrUnknownIngredient
	}
	return *index, nil
}

func (s *Session) clearActiveForm() {
	s.ActiveIndex = -1
	s.Simple = nil
	s.Prepared = nil
	s.State = StateCollecting
}
