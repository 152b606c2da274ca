// Package notify sends desktop notifications over D-Bus.
package notify

import "sync"

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// ErrorTimeout is how long playback error notifications stay up, in ms.
const ErrorTimeout int32 = 10000

// Notification is a desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // icon name or image path
	Timeout    int32  // ms; -1 for the server default, 0 to never expire
	ReplacesID uint32 // id of a notification to update in place
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its id, or 0 when notifications are
	// unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// discard drops every notification.
type discard struct{}

func (discard) Notify(Notification) (uint32, error) { return 0, nil }

func (discard) Close(uint32) error { return nil }

// ErrorNotification builds the notification mirroring an error alert.
func ErrorNotification(title, message string) Notification {
	return Notification{
		Title:   title,
		Body:    message,
		Icon:    "dialog-error",
		Timeout: ErrorTimeout,
		Urgency: UrgencyCritical,
	}
}

// Errors keeps at most one error notification on the desktop: each new
// error updates the previous one in place.
type Errors struct {
	n Notifier

	mu sync.Mutex
	id uint32
}

// NewErrors sends error notifications through n.
func NewErrors(n Notifier) *Errors {
	return &Errors{n: n}
}

// Show displays an error, replacing the one currently shown.
func (e *Errors) Show(title, message string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	notif := ErrorNotification(title, message)
	notif.ReplacesID = e.id
	id, err := e.n.Notify(notif)
	if err != nil {
		return err
	}
	e.id = id
	return nil
}

// Dismiss closes the notification currently shown, if any.
func (e *Errors) Dismiss() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.id == 0 {
		return nil
	}
	id := e.id
	e.id = 0
	return e.n.Close(id)
}
