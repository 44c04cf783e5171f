package notifier

import "fmt"

// State is the activation state of an endpoint: Inactive, or Active with the
// number of live receivers.
type State struct {
	receivers int
}

// Inactive is the state of an endpoint without live receivers.
var Inactive = State{}

// Active returns the state of an endpoint with n live receivers.
func Active(n int) State {
	if n < 1 {
		return Inactive
	}

	return State{receivers: n}
}

func (s State) IsActive() bool {
	return s.receivers > 0
}

func (s State) IsInactive() bool {
	return s.receivers == 0
}

// Receivers returns the number of live receivers (0 when inactive).
func (s State) Receivers() int {
	return s.receivers
}

func (s State) String() string {
	if s.receivers == 0 {
		return "Inactive"
	}

	return fmt.Sprintf("Active(%d)", s.receivers)
}

func (s *State) incr() {
	s.receivers++
}

// decr reports whether the endpoint became (or already was) inactive.
func (s *State) decr() bool {
	if s.receivers > 1 {
		s.receivers--
		return false
	}

	s.receivers = 0
	return true
}
