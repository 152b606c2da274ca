package media

// Property is an observable backend property.
type Property int

const (
	PropItemStatus Property = iota
	PropItemDuration
	PropRate
)

// Properties lists every observable property.
var Properties = []Property{PropItemStatus, PropItemDuration, PropRate}

// String returns the property name.
func (p Property) String() string {
	switch p {
	case PropItemStatus:
		return "currentItem.status"
	case PropItemDuration:
		return "currentItem.duration"
	case PropRate:
		return "rate"
	default:
		return "unknown"
	}
}

// ItemStatus is the readiness of the current item.
type ItemStatus int

const (
	StatusUnknown ItemStatus = iota
	StatusReadyToPlay
	StatusFailed
)

// String returns the status name.
func (s ItemStatus) String() string {
	switch s {
	case StatusUnknown:
		return "Unknown"
	case StatusReadyToPlay:
		return "ReadyToPlay"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Change is a property value delivered to an observer.
// Only the field matching Property is meaningful.
type Change struct {
	Property Property
	Status   ItemStatus
	Duration Time
	Rate     float64
}

// StatusChange builds a PropItemStatus change.
func StatusChange(s ItemStatus) Change {
	return Change{Property: PropItemStatus, Status: s}
}

// DurationChange builds a PropItemDuration change.
func DurationChange(d Time) Change {
	return Change{Property: PropItemDuration, Duration: d}
}

// RateChange builds a PropRate change.
func RateChange(r float64) Change {
	return Change{Property: PropRate, Rate: r}
}
