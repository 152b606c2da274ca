package mainloop

// Manual is a queue that only runs functions when told to.
// Tests use it to control when callbacks reach the UI thread.
type Manual struct {
	tasks []func()
}

// Dispatch queues fn.
func (m *Manual) Dispatch(fn func()) {
	m.tasks = append(m.tasks, fn)
}

// Len returns the number of queued functions.
func (m *Manual) Len() int { return len(m.tasks) }

// RunNext runs the oldest queued function. It reports false if none.
func (m *Manual) RunNext() bool {
	if len(m.tasks) == 0 {
		return false
	}
	fn := m.tasks[0]
	m.tasks = m.tasks[1:]
	fn()
	return true
}

// Drain runs queued functions, including ones they queue, until empty.
func (m *Manual) Drain() int {
	n := 0
	for m.RunNext() {
		n++
	}
	return n
}
