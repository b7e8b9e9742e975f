package session

import "time"

// Helpers around the per-day calculation counter. Complements session.go.

func dateKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// CalculationsToday returns the number of calculations run since UTC midnight.
func (r *Registry) CalculationsToday() int {
	key := dateKey(r.now())
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.daily[key]
}

// ResetDaily clears the per-day counters.
func (r *Registry) ResetDaily() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.daily {
		delete(r.daily, k)
	}
}
