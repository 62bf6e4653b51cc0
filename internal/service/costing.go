package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/costing"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/model"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/metrics"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/wizard"
)

var (
	// ErrSessionNotFound is returned when the session ID is unknown or the
	// session has expired.
	ErrSessionNotFound = errors.New("costing session not found")
	// ErrTooManySessions is returned when the session store is at capacity.
	ErrTooManySessions = errors.New("too many open costing sessions")
	// ErrNoResult is returned when accept is requested before the session
	// has produced a result.
	ErrNoResult = errors.New("session has no result to accept")
)

// CostingService drives guided costing sessions and persists accepted
// results as products.
type CostingService interface {
	// StartSession opens a new session for a product and returns it.
	// Returned sessions are snapshots: callers may read them freely while
	// other requests keep stepping the live session.
	StartSession(ctx context.Context, productName string, ingredients []string) (*wizard.Session, error)
	// GetSession returns an open session by ID.
	GetSession(ctx context.Context, id string) (*wizard.Session, error)
	// Step applies one wizard action to an open session and returns the
	// resulting state.
	Step(ctx context.Context, id string, action wizard.Action) (*wizard.Session, error)
	// Finalize returns the session's cost result once aggregation is reached.
	Finalize(ctx context.Context, id string) (*model.CostResult, error)
	// Accept marks the result as accepted, persists the product, and closes
	// the session.
	Accept(ctx context.Context, id, acceptedBy string) (*model.CostResult, error)
	// Abandon discards an open session.
	Abandon(ctx context.Context, id string) error
	// Stop releases background resources.
	Stop()
}

// CostingServiceImpl implements CostingService on top of an in-memory
// session store. Sessions never touch the database; only accepted results do.
type CostingServiceImpl struct {
	wizard      *wizard.Wizard
	sessions    *sessionStore
	productSvc  ProductService
	persistWait time.Duration
}

// CostingOption configures a CostingServiceImpl.
type CostingOption func(*CostingServiceImpl)

// WithSessionStore overrides the session store capacity and TTL.
func WithSessionStore(capacity int, ttl time.Duration) CostingOption {
	return func(s *CostingServiceImpl) {
		if capacity > 0 {
			s.sessions = newSessionStore(capacity, ttl)
		}
	}
}

// WithProductService sets the product service used to persist accepted costs.
func WithProductService(products ProductService) CostingOption {
	return func(s *CostingServiceImpl) {
		s.productSvc = products
	}
}

// NewCostingService creates a costing service around the given engine.
func NewCostingService(engine *costing.Engine, opts ...CostingOption) *CostingServiceImpl {
	s := &CostingServiceImpl{
		wizard:      wizard.New(engine),
		sessions:    newSessionStore(1000, 2*time.Hour),
		persistWait: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession opens a new session for a product and returns a snapshot of
// it. The snapshot is taken before the session is shared through the store,
// so the caller can serialize it without racing a concurrent first step.
func (s *CostingServiceImpl) StartSession(ctx context.Context, productName string, ingredients []string) (*wizard.Session, error) {
	session := s.wizard.StartSession(productName, ingredients)
	session.ID = uuid.NewString()
	snapshot := session.Snapshot()

	if !s.sessions.Put(session.ID, session) {
		return nil, ErrTooManySessions
	}

	log.Info().
		Str("session_id", session.ID).
		Str("product", productName).
		Int("ingredients", len(ingredients)).
		Msg("Costing session started")
	return snapshot, nil
}

// GetSession returns a snapshot of an open session by ID. The snapshot is
// taken under the entry mutex so a concurrent step can never be observed
// mid-mutation.
func (s *CostingServiceImpl) GetSession(ctx context.Context, id string) (*wizard.Session, error) {
	entry, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.Snapshot(), nil
}

// Step applies one wizard action to an open session.
func (s *CostingServiceImpl) Step(ctx context.Context, id string, action wizard.Action) (*wizard.Session, error) {
	entry, ok := s.sessions.Get(id)
	if !ok {
		metrics.RecordWizardStep(string(action.Type), "not_found")
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	start := time.Now()
	err := s.wizard.DriveStep(entry.session, action)
	if err != nil {
		metrics.RecordWizardStep(string(action.Type), "rejected")
		return nil, err
	}
	metrics.RecordWizardStep(string(action.Type), "applied")

	if action.Type == wizard.ActionCalculate {
		metrics.RecordCostCalculation(time.Since(start), "success")
	}

	return entry.session.Snapshot(), nil
}

// Finalize returns the session's cost result once aggregation is reached.
func (s *CostingServiceImpl) Finalize(ctx context.Context, id string) (*model.CostResult, error) {
	entry, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	result, err := s.wizard.Finalize(entry.session)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Accept marks the result as accepted, persists the product, and closes the
// session. Persistence failures do not fail the accept; the result is
// returned either way and the error is logged.
func (s *CostingServiceImpl) Accept(ctx context.Context, id, acceptedBy string) (*model.CostResult, error) {
	entry, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	session := entry.session
	if !session.Accepted {
		if err := s.wizard.DriveStep(session, wizard.Action{Type: wizard.ActionAccept}); err != nil {
			entry.mu.Unlock()
			return nil, err
		}
	}
	if session.Result == nil {
		entry.mu.Unlock()
		return nil, ErrNoResult
	}
	result := *session.Result
	product := &model.Product{
		Name:            session.ProductName,
		Ingredients:     append([]string(nil), session.Ingredients...),
		UnitCost:        result.UnitCost,
		SuggestedPrices: result.SuggestedPrices,
		CreatedBy:       acceptedBy,
	}
	entry.mu.Unlock()

	s.persistProduct(product)
	s.sessions.Delete(id)

	log.Info().
		Str("session_id", id).
		Str("product", product.Name).
		Float64("unit_cost", product.UnitCost).
		Msg("Costing session accepted")
	return &result, nil
}

// persistProduct writes the accepted product in the background so a slow or
// unavailable database never blocks the operator's accept.
func (s *CostingServiceImpl) persistProduct(product *model.Product) {
	if s.productSvc == nil {
		return
	}

	wait := s.persistWait
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), wait)
		defer cancel()

		if _, err := s.productSvc.Save(ctx, product); err != nil {
			log.Error().
				Err(fmt.Errorf("persist accepted product: %w", err)).
				Str("product", product.Name).
				Msg("Failed to persist accepted cost")
		}
	}()
}

// Abandon discards an open session.
func (s *CostingServiceImpl) Abandon(ctx context.Context, id string) error {
	if _, ok := s.sessions.Get(id); !ok {
		return ErrSessionNotFound
	}
	s.sessions.Delete(id)
	log.Info().Str("session_id", id).Msg("Costing session abandoned")
	return nil
}

// Stop releases background resources.
func (s *CostingServiceImpl) Stop() {
	s.sessions.Stop()
}
