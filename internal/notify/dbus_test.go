//go:build linux

package notify

import (
	"os"
	"testing"
)

func TestHints(t *testing.T) {
	h := hints(ErrorNotification("Error", "boom"))

	if got := h["urgency"].Value(); got != byte(UrgencyCritical) {
		t.Errorf("urgency hint = %v, want %d", got, UrgencyCritical)
	}
	if got := h["desktop-entry"].Value(); got != desktopEntry {
		t.Errorf("desktop-entry hint = %v, want %q", got, desktopEntry)
	}
}

func requireSessionBus(t *testing.T) Notifier {
	t.Helper()
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	n, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := n.(*busNotifier); !ok {
		t.Skip("session bus unreachable")
	}
	return n
}

func TestErrors_OnBus(t *testing.T) {
	e := NewErrors(requireSessionBus(t))

	if err := e.Show("Error", "first failure"); err != nil {
		t.Fatalf("Show() error: %v", err)
	}
	first := e.id
	if first == 0 {
		t.Fatal("Show() kept id 0, want the server id")
	}

	if err := e.Show("Error", "second failure"); err != nil {
		t.Fatalf("second Show() error: %v", err)
	}
	if e.id != first {
		t.Errorf("replacing notification got id=%d, want %d", e.id, first)
	}

	if err := e.Dismiss(); err != nil {
		t.Errorf("Dismiss() error: %v", err)
	}
}
