// Package mainloop funnels work from background goroutines onto the
// bubbletea update loop, which acts as the UI thread.
package mainloop

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrClosed is returned by Do once the loop is closed.
var ErrClosed = errors.New("main loop closed")

// TaskMsg carries queued functions to the update loop.
type TaskMsg struct {
	tasks []func()
}

// Run executes the carried functions in submission order.
func (m TaskMsg) Run() {
	for _, fn := range m.tasks {
		fn()
	}
}

// Len returns the number of carried functions.
func (m TaskMsg) Len() int { return len(m.tasks) }

// ClosedMsg is returned by Listen once the loop is closed.
type ClosedMsg struct{}

// Loop is an unbounded FIFO of functions to run on the UI thread.
// Dispatch never blocks, so it is safe from the UI thread itself.
type Loop struct {
	mu     sync.Mutex
	tasks  []func()
	closed bool

	signal chan struct{}
	done   chan struct{}
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Dispatch queues fn. Functions queued after Close are dropped.
func (l *Loop) Dispatch(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.signal <- struct{}{}:
	default:
	}
}

// Len returns the number of functions waiting for the next Listen.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

func (l *Loop) take() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	tasks := l.tasks
	l.tasks = nil
	return tasks
}

// Listen returns a command that waits for queued functions and delivers
// them as a TaskMsg. The model must call Listen again after each TaskMsg.
func (l *Loop) Listen() tea.Cmd {
	return func() tea.Msg {
		for {
			if tasks := l.take(); len(tasks) > 0 {
				return TaskMsg{tasks: tasks}
			}
			select {
			case <-l.signal:
			case <-l.done:
				return ClosedMsg{}
			}
		}
	}
}

// Do runs fn on the UI thread and waits for it to return.
// It must not be called from the UI thread.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	l.Dispatch(func() {
		fn()
		close(finished)
	})
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}
}

// Close stops the loop. Pending functions are discarded.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.tasks = nil
	close(l.done)
}
