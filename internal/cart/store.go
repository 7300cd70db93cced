package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/aurelia-jewelry/aurelia/internal/constants"
	"github.com/aurelia-jewelry/aurelia/internal/logger"
)

// Options carry the configurable cart policies.
type Options struct {
	// MergePolicy decides what happens when a merged quantity passes the
	// line's purchase limit: constants.MergePolicyClamp drops the excess
	// silently, constants.MergePolicyFail rejects the whole add.
	MergePolicy string
	// SoftQuantityCeiling caps lines that carry no stock-derived limit.
	SoftQuantityCeiling int
}

func (o Options) mergePolicy() string {
	if o.MergePolicy == constants.MergePolicyFail {
		return constants.MergePolicyFail
	}
	return constants.MergePolicyClamp
}

func (o Options) softCeiling() int {
	if o.SoftQuantityCeiling > 0 {
		return o.SoftQuantityCeiling
	}
	return constants.SoftQuantityCeiling
}

// Store owns one cart's state. All mutations go through its methods and are
// serialized by an internal mutex, so overlapping quantity updates cannot
// lose writes. The stock check is awaited before an add or set mutates state;
// removal mutates immediately.
type Store struct {
	mu        sync.Mutex
	sessionID string
	state     State
	persister Persister
	stock     StockChecker
	opts      Options
}

// NewStore creates an empty store for one cart session.
func NewStore(sessionID string, persister Persister, stock StockChecker, opts Options) *Store {
	return &Store{
		sessionID: sessionID,
		state:     State{Lines: []Line{}},
		persister: persister,
		stock:     stock,
		opts:      opts,
	}
}

// AddLine merges a candidate into the cart. Lines are keyed by
// (productID, variantID); on collision quantities add, then clamp per the
// merge policy. The state is untouched when the stock check rejects.
func (s *Store) AddLine(ctx context.Context, candidate LineCandidate, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := LineID(candidate.ProductID, candidate.VariantID)
	existing := s.findLine(id)
	existingQty := 0
	if existing != nil {
		existingQty = existing.Quantity
	}

	s.state.IsLoading = true
	err := s.stock.Check(ctx, candidate.ProductID, candidate.VariantID, existingQty+quantity)
	s.state.IsLoading = false
	if err != nil {
		return fmt.Errorf("add %q: %w", id, err)
	}

	combined, clampErr := s.clampQuantity(existingQty+quantity, candidate.MaxQuantity)
	if clampErr != nil {
		return fmt.Errorf("add %q: %w", id, clampErr)
	}

	if existing != nil {
		// A merge re-reads the catalog, so the stored snapshot follows the
		// candidate; a stale MaxQuantity would otherwise cap later sets.
		existing.Name = candidate.Name
		existing.Slug = candidate.Slug
		existing.SKU = candidate.SKU
		existing.Image = candidate.Image
		existing.UnitPrice = candidate.UnitPrice
		existing.CompareAtPrice = candidate.CompareAtPrice
		existing.MaxQuantity = candidate.MaxQuantity
		existing.VariantOptions = candidate.VariantOptions
		existing.Quantity = combined
	} else {
		line := Line{
			ID:             id,
			ProductID:      candidate.ProductID,
			VariantID:      candidate.VariantID,
			Name:           candidate.Name,
			Slug:           candidate.Slug,
			SKU:            candidate.SKU,
			Image:          candidate.Image,
			UnitPrice:      candidate.UnitPrice,
			CompareAtPrice: candidate.CompareAtPrice,
			Quantity:       combined,
			MaxQuantity:    candidate.MaxQuantity,
			VariantOptions: candidate.VariantOptions,
		}
		s.state.Lines = append(s.state.Lines, line)
	}
	s.afterMutation(ctx)
	return nil
}

// RemoveLine drops a line unconditionally. Removing an absent id is a no-op.
func (s *Store) RemoveLine(ctx context.Context, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.state.Lines {
		if s.state.Lines[i].ID == lineID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	s.state.Lines = append(s.state.Lines[:idx], s.state.Lines[idx+1:]...)
	s.afterMutation(ctx)
	return nil
}

// SetQuantity updates a line to an absolute quantity. Zero or below removes
// the line; otherwise the new quantity is stock-checked and clamped. Setting
// an absent line is a no-op.
func (s *Store) SetQuantity(ctx context.Context, lineID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveLine(ctx, lineID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.findLine(lineID)
	if line == nil {
		return nil
	}

	s.state.IsLoading = true
	err := s.stock.Check(ctx, line.ProductID, line.VariantID, quantity)
	s.state.IsLoading = false
	if err != nil {
		return fmt.Errorf("set %q: %w", lineID, err)
	}

	next, clampErr := s.clampQuantity(quantity, line.MaxQuantity)
	if clampErr != nil {
		return fmt.Errorf("set %q: %w", lineID, clampErr)
	}
	line.Quantity = next
	s.afterMutation(ctx)
	return nil
}

// Clear empties the cart and erases the persisted slot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Lines = []Line{}
	s.afterMutation(ctx)
}

// ValidateAll re-checks every line against stock without mutating state. All
// failures are collected; a single rejection never short-circuits the rest.
func (s *Store) ValidateAll(ctx context.Context) ValidationResult {
	s.mu.Lock()
	lines := cloneLines(s.state.Lines)
	s.mu.Unlock()

	result := ValidationResult{Valid: true, Errors: []string{}}
	for _, line := range lines {
		if err := s.stock.Check(ctx, line.ProductID, line.VariantID, line.Quantity); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: requested quantity %d is no longer available", line.Name, line.Quantity))
		}
	}
	return result
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.Lines = cloneLines(s.state.Lines)
	return snap
}

// SetOpen flips the UI visibility flag. Orthogonal to commerce state.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsOpen = open
}

// Loading reports whether a mutation is currently awaiting validation.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsLoading
}

// rehydrate replaces the line sequence from a persisted slot. Called once
// per session by the Manager before the store is handed out.
func (s *Store) rehydrate(lines []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Lines = cloneLines(lines)
	computeTotals(&s.state)
}

func (s *Store) findLine(id string) *Line {
	for i := range s.state.Lines {
		if s.state.Lines[i].ID == id {
			return &s.state.Lines[i]
		}
	}
	return nil
}

// clampQuantity applies the purchase limit. A zero max means the line is
// stock-unlimited and only the soft ceiling applies.
func (s *Store) clampQuantity(quantity, max int) (int, error) {
	if max > 0 && quantity > max {
		if s.opts.mergePolicy() == constants.MergePolicyFail {
			return 0, ErrQuantityExceedsStock
		}
		quantity = max
	}
	if ceiling := s.opts.softCeiling(); quantity > ceiling {
		quantity = ceiling
	}
	return quantity, nil
}

// afterMutation recomputes totals and syncs the durable slot. Persistence
// failures are logged and swallowed; the in-memory cart stays authoritative.
// Callers must hold s.mu.
func (s *Store) afterMutation(ctx context.Context) {
	computeTotals(&s.state)
	var err error
	if len(s.state.Lines) == 0 {
		err = s.persister.Delete(ctx, s.sessionID)
	} else {
		err = s.persister.Save(ctx, s.sessionID, s.state.Lines)
	}
	if err != nil {
		logger.Warnw("cart slot write failed", "session_id", s.sessionID, "error", err)
	}
}
