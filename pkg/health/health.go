// Package health aggregates component liveness checks behind one
// registry.
package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the result of a single component check
type CheckResult struct {
	Name     string        `json:"name"`
	Status   Status        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Checker reports the liveness of one component. HealthCheck returns
// nil when the component is reachable.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// Registry manages a named collection of component checkers.
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{checkers: make(map[string]Checker)}
}

// Register adds a checker under the given name, replacing any previous
// checker with the same name.
func (r *Registry) Register(name string, checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = checker
}

// AggregatedResult is the combined outcome of all registered checks.
type AggregatedResult struct {
	Status    Status        `json:"status"`
	Checks    []CheckResult `json:"checks"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
}

// IsHealthy returns true if every check passed.
func (a AggregatedResult) IsHealthy() bool {
	return a.Status == StatusHealthy
}

// Check runs every registered checker concurrently. Any failure makes
// the overall status unhealthy.
func (r *Registry) Check(ctx context.Context) AggregatedResult {
	r.mu.RLock()
	names := make([]string, 0, len(r.checkers))
	checkers := make([]Checker, 0, len(r.checkers))
	for name, checker := range r.checkers {
		names = append(names, name)
		checkers = append(checkers, checker)
	}
	r.mu.RUnlock()

	start := time.Now()
	results := make([]CheckResult, len(checkers))

	var wg sync.WaitGroup
	for i := range checkers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			checkStart := time.Now()
			result := CheckResult{Name: names[i], Status: StatusHealthy}
			if err := checkers[i].HealthCheck(ctx); err != nil {
				result.Status = StatusUnhealthy
				result.Error = err.Error()
			}
			result.Duration = time.Since(checkStart)
			results[i] = result
		}(i)
	}
	wg.Wait()

	overall := StatusHealthy
	for _, result := range results {
		if result.Status == StatusUnhealthy {
			overall = StatusUnhealthy
			break
		}
	}

	return AggregatedResult{
		Status:    overall,
		Checks:    results,
		Timestamp: time.Now(),
		Duration:  time.Since(start),
	}
}
