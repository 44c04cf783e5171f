package notifier

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized is returned when no endpoint matches a send: nothing is
	// declared for the payload type, every match is inactive, or the target
	// list is empty.
	ErrNotInitialized = errors.New("notifier: no matching endpoint")

	// ErrFull is returned when a try-send finds the channel at capacity.
	ErrFull = errors.New("notifier: channel full")

	// ErrClosed is returned when sending to a closed channel.
	ErrClosed = errors.New("notifier: channel closed")

	// ErrEmpty is returned by TryRecv when nothing is queued.
	ErrEmpty = errors.New("notifier: channel empty")

	// ErrDisconnected is returned by receives on a closed and drained channel.
	ErrDisconnected = errors.New("notifier: channel disconnected")

	// ErrReleased is returned by receives on a closed or deactivated Receiver.
	ErrReleased = errors.New("notifier: receiver released")
)

// ErrIncorrectIndex is the panic message for out-of-range array slots.
const ErrIncorrectIndex = "notifier: incorrect channel index"

// SendError reports a failed delivery to one endpoint.
type SendError struct {
	// Target is the numeric id of the endpoint.
	Target int
	// Err is ErrFull or ErrClosed.
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("notifier: send to %d: %v", e.Target, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

func contractViolation(format string, args ...any) {
	panic("notifier: contract violation: " + fmt.Sprintf(format, args...))
}

// CheckIndex panics unless 0 <= index < length.
func CheckIndex(index, length int) {
	if index < 0 || index >= length {
		panic(fmt.Sprintf("%s: %d not in [0, %d)", ErrIncorrectIndex, index, length))
	}
}

// SlotOf returns the slot index carried by id, panicking when it is missing or
// not below length.
func SlotOf(id ID, length int) int {
	index, ok := id.Index()
	if !ok {
		panic(fmt.Sprintf("%s: %s has no slot", ErrIncorrectIndex, id))
	}

	CheckIndex(index, length)
	return index
}
