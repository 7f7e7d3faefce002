package search

// State is the dropdown's selection state.
type State int

const (
	// Closed means the dropdown is hidden.
	Closed State = iota
	// OpenNoSelection shows results with nothing highlighted.
	OpenNoSelection
	// OpenAt highlights the result at Selection.Index.
	OpenAt
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case OpenNoSelection:
		return "open"
	case OpenAt:
		return "open-at"
	default:
		return "unknown"
	}
}

// Input is a navigation event fed to Selection.Apply.
type Input int

const (
	InputDown Input = iota
	InputUp
	InputEnter
	InputEscape
	// InputOutside is a pointer or focus interaction outside the component.
	InputOutside
	// InputFocus is the input regaining focus.
	InputFocus
)

// Selection is the keyboard navigation state machine for a result list of
// length n. The zero value is Closed with no results.
type Selection struct {
	state State
	index int
	n     int
}

// State returns the current state.
func (s Selection) State() State { return s.state }

// Index returns the highlighted index, ok is false unless the state is OpenAt.
func (s Selection) Index() (int, bool) {
	if s.state != OpenAt {
		return -1, false
	}
	return s.index, true
}

// IsOpen reports whether the dropdown is visible.
func (s Selection) IsOpen() bool { return s.state != Closed }

// Len returns the size of the result list the selection navigates.
func (s Selection) Len() int { return s.n }

// SetResults resets the selection for a fresh list of n results.
func (s *Selection) SetResults(n int) {
	s.n = max(n, 0)
	s.index = 0
	if s.n > 0 {
		s.state = OpenNoSelection
	} else {
		s.state = Closed
	}
}

// Apply feeds one input to the machine. For InputEnter in OpenAt it returns
// the chosen index and true; every other input returns false.
func (s *Selection) Apply(in Input) (int, bool) {
	switch in {
	case InputDown:
		switch s.state {
		case OpenNoSelection:
			s.state, s.index = OpenAt, 0
		case OpenAt:
			s.index = (s.index + 1) % s.n
		}
	case InputUp:
		switch s.state {
		case OpenNoSelection:
			s.state, s.index = OpenAt, s.n-1
		case OpenAt:
			s.index = (s.index - 1 + s.n) % s.n
		}
	case InputEnter:
		if s.state == OpenAt {
			chosen := s.index
			s.close()
			return chosen, true
		}
	case InputEscape, InputOutside:
		s.close()
	case InputFocus:
		if s.state == Closed && s.n > 0 {
			s.state = OpenNoSelection
		}
	}
	return -1, false
}

// Pick chooses result i directly, as a pointer press on a row does. It
// closes the list and returns true when the list is open and i is in range.
func (s *Selection) Pick(i int) bool {
	if !s.IsOpen() || i < 0 || i >= s.Len() {
		return false
	}
	s.close()
	return true
}

func (s *Selection) close() {
	s.state = Closed
	s.index = 0
}
