package navigation

// ToggleState is the open/closed state of one mobile navigation panel.
type ToggleState int

const (
	Closed ToggleState = iota
	Open
)

func (s ToggleState) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// ParseToggleState reads the state carried in a request. Anything other than
// "open" is Closed, which is also the state of a freshly mounted panel.
func ParseToggleState(value string) ToggleState {
	if value == "open" {
		return Open
	}
	return Closed
}

// ToggleEvent is a user action on the mobile navigation panel.
type ToggleEvent int

const (
	// Activate is the menu trigger being pressed.
	Activate ToggleEvent = iota
	// Select is a navigation entry being chosen.
	Select
	// Dismiss is an outside click or the escape key.
	Dismiss
)

// Transition returns the state reached from s on event e. Events that have no
// transition from s leave it unchanged.
func Transition(s ToggleState, e ToggleEvent) ToggleState {
	switch s {
	case Closed:
		if e == Activate {
			return Open
		}
	case Open:
		switch e {
		case Activate, Select, Dismiss:
			return Closed
		}
	}
	return s
}

// Toggle is a single panel instance. The zero value is Closed.
type Toggle struct {
	state ToggleState
}

// NewToggle restores a panel in state s.
func NewToggle(s ToggleState) *Toggle {
	return &Toggle{state: s}
}

func (t *Toggle) State() ToggleState {
	return t.state
}

func (t *Toggle) IsOpen() bool {
	return t.state == Open
}

// Fire applies each event in order and returns the resulting state.
func (t *Toggle) Fire(events ...ToggleEvent) ToggleState {
	for _, e := range events {
		t.state = Transition(t.state, e)
	}
	return t.state
}
