package report

import "sync"

// Tracker keeps the report of the most recently triggered aggregation.
// Runs may finish out of order; a result is kept only if no newer run was
// started after it.
type Tracker struct {
	mu     sync.Mutex
	issued uint64
	report *Report
}

// Ticket identifies one aggregation run.
type Ticket uint64

// Begin registers a new run and returns its ticket.
func (t *Tracker) Begin() Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.issued++
	return Ticket(t.issued)
}

// Commit stores r if tk is still the latest run. It reports whether r was
// kept.
func (t *Tracker) Commit(tk Ticket, r *Report) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if uint64(tk) != t.issued {
		return false
	}
	t.report = r
	return true
}

// Current returns the kept report, nil if none or if the latest run
// resolved to no report.
func (t *Tracker) Current() *Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.report
}
