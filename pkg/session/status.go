package session

// Status is the state of the session mechanism for one runtime.
type Status int

const (
	// StatusDisabled means sessions are turned off for the manager
	StatusDisabled Status = iota
	// StatusNone means sessions are enabled but none is started
	StatusNone
	// StatusActive means a session is started and writable
	StatusActive
)

func (s Status) String() string {
	switch s {
	case StatusDisabled:
		return "disabled"
	case StatusNone:
		return "none"
	case StatusActive:
		return "active"
	}
	return "unknown"
}
