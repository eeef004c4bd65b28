package health

import (
	"context"
	"sync"
	"time"
)

// CheckFunc reports whether a component is healthy. It returns nil when
// healthy, or an error describing the problem.
type CheckFunc func(ctx context.Context) error

// Check statuses.
const (
	StatusOK        = "ok"
	StatusReady     = "ready"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckResult is the outcome of one registered check.
type CheckResult struct {
	// Status is "ok" or "unhealthy".
	Status string `json:"status"`

	// Message carries the error of an unhealthy check.
	Message string `json:"message,omitempty"`

	// Duration is how long the check took.
	Duration time.Duration `json:"duration_ms,omitempty"`
}

// Status is the aggregated health of the process.
type Status struct {
	// Status is "ok" for liveness, "ready" or "degraded" for readiness.
	Status string `json:"status"`

	// Checks maps component names to their results (readiness only).
	Checks map[string]CheckResult `json:"checks,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Checker runs named readiness checks.
type Checker struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc

	checkTimeout time.Duration
	now          func() time.Time
}

// New creates a checker. A zero timeout defaults to 5s per check.
func New(checkTimeout time.Duration) *Checker {
	if checkTimeout == 0 {
		checkTimeout = 5 * time.Second
	}

	return &Checker{
		checks:       make(map[string]CheckFunc),
		checkTimeout: checkTimeout,
		now:          time.Now,
	}
}

// RegisterCheck registers check under name, replacing any previous one.
func (c *Checker) RegisterCheck(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.checks[name] = check
}

// CheckLiveness reports that the process is running.
func (c *Checker) CheckLiveness(ctx context.Context) Status {
	return Status{
		Status:    StatusOK,
		Timestamp: c.now(),
	}
}

// CheckReadiness runs every registered check concurrently. The result is
// degraded when any check fails.
func (c *Checker) CheckReadiness(ctx context.Context) Status {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	results := make(map[string]CheckResult, len(checks))
	var resultMu sync.Mutex
	var wg sync.WaitGroup

	for name, check := range checks {
		wg.Add(1)
		go func(name string, check CheckFunc) {
			defer wg.Done()

			result := c.runCheck(ctx, check)

			resultMu.Lock()
			results[name] = result
			resultMu.Unlock()
		}(name, check)
	}
	wg.Wait()

	status := StatusReady
	for _, result := range results {
		if result.Status == StatusUnhealthy {
			status = StatusDegraded
			break
		}
	}

	return Status{
		Status:    status,
		Checks:    results,
		Timestamp: c.now(),
	}
}

// runCheck executes a single check, giving up after the check timeout.
func (c *Checker) runCheck(ctx context.Context, check CheckFunc) CheckResult {
	checkCtx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	start := time.Now()

	errCh := make(chan error, 1)
	go func() {
		errCh <- check(checkCtx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return CheckResult{
				Status:   StatusUnhealthy,
				Message:  err.Error(),
				Duration: time.Since(start),
			}
		}
		return CheckResult{
			Status:   StatusOK,
			Duration: time.Since(start),
		}

	case <-checkCtx.Done():
		return CheckResult{
			Status:   StatusUnhealthy,
			Message:  "health check timeout",
			Duration: time.Since(start),
		}
	}
}
