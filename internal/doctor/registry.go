package doctor

import (
	"context"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry manages health checkers and fixers
type Registry struct {
	mu       sync.RWMutex
	order    []Category
	checkers map[Category][]HealthChecker
	fixers   map[string]Fixer
}

// NewRegistry creates a new Registry
func NewRegistry() *Registry {
	return &Registry{
		checkers: make(map[Category][]HealthChecker),
		fixers:   make(map[string]Fixer),
	}
}

// RegisterChecker registers a health checker
func (r *Registry) RegisterChecker(checker HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	category := checker.Category()
	if _, ok := r.checkers[category]; !ok {
		r.order = append(r.order, category)
	}

	r.checkers[category] = append(r.checkers[category], checker)
}

// RegisterFixer registers a fixer
func (r *Registry) RegisterFixer(fixer Fixer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fixers[fixer.ID()] = fixer
}

// Checkers returns all registered checkers in registration order.
func (r *Registry) Checkers() []HealthChecker {
	return r.CheckersForCategories(nil)
}

// CheckersForCategories returns the checkers of the given categories, or
// all checkers when categories is empty.
func (r *Registry) CheckersForCategories(categories []Category) []HealthChecker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []HealthChecker

	for _, category := range r.order {
		if len(categories) > 0 && !slices.Contains(categories, category) {
			continue
		}

		out = append(out, r.checkers[category]...)
	}

	if out == nil {
		return []HealthChecker{}
	}

	return out
}

// RunAll executes all registered health checkers concurrently
func (r *Registry) RunAll(ctx context.Context) []CheckResult {
	return r.Run(ctx, nil)
}

// Run executes the checkers of the given categories concurrently. Results
// keep registration order.
func (r *Registry) Run(ctx context.Context, categories []Category) []CheckResult {
	return runCheckers(ctx, r.CheckersForCategories(categories))
}

// runCheckers executes the given checkers concurrently
func runCheckers(ctx context.Context, checkers []HealthChecker) []CheckResult {
	results := make([]CheckResult, len(checkers))
	g, gctx := errgroup.WithContext(ctx)

	for i := range checkers {
		checker := checkers[i]

		g.Go(func() error {
			result := checker.Check(gctx)
			result.Category = checker.Category()
			results[i] = result

			return nil
		})
	}

	// Wait for all checks to complete
	_ = g.Wait()

	return results
}

// GetFixer retrieves a fixer by ID.
//
//nolint:ireturn // Fixer interface for polymorphism
func (r *Registry) GetFixer(fixID string) (Fixer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fixer, ok := r.fixers[fixID]

	return fixer, ok
}

// GetFixers returns all registered fixers
func (r *Registry) GetFixers() map[string]Fixer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy to prevent external modifications
	fixers := make(map[string]Fixer, len(r.fixers))
	maps.Copy(fixers, r.fixers)

	return fixers
}

// Categories returns all registered categories in registration order
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}

// CheckerCount returns the total number of registered checkers
func (r *Registry) CheckerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, checkers := range r.checkers {
		count += len(checkers)
	}

	return count
}

// FixerCount returns the total number of registered fixers
func (r *Registry) FixerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.fixers)
}
