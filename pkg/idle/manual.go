package idle

// Manual is a scheduler driven by explicit Step calls. It is not safe for
// concurrent use.
type Manual struct {
	pending []Callback
}

// NewManual returns an empty manual scheduler.
func NewManual() *Manual {
	return &Manual{}
}

// RequestIdleCallback implements Scheduler.
func (m *Manual) RequestIdleCallback(cb Callback) {
	m.pending = append(m.pending, cb)
}

// Pending returns the number of registered callbacks.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Step runs every callback registered before the call with deadline d.
// Callbacks registered while stepping wait for the next Step. It returns
// the number of callbacks run.
func (m *Manual) Step(d Deadline) int {
	batch := m.pending
	m.pending = nil
	for _, cb := range batch {
		cb(d)
	}
	return len(batch)
}

// StepN calls Step n times with a fresh deadline from mk each time.
func (m *Manual) StepN(n int, mk func() Deadline) {
	for i := 0; i < n; i++ {
		m.Step(mk())
	}
}
