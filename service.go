package notifier

// Endpoint is the type-erased view of a Service: its identity and activation
// state.
type Endpoint interface {
	// Identity returns the bound ID, or false before Init.
	Identity() (ID, bool)

	// State returns the current activation state.
	State() State

	// Len returns the number of queued values.
	Len() int

	// Cap returns the channel capacity.
	Cap() int
}

// Port is the typed view of a Service.
type Port[T any] interface {
	Endpoint

	// TrySend queues value without blocking, ignoring activation.
	TrySend(value T) error

	// Subscribe returns a new live Receiver.
	Subscribe() *Receiver[T]
}

var (
	_ Endpoint       = (*Service[struct{}])(nil)
	_ Port[struct{}] = (*Service[struct{}])(nil)
)

// Service is one addressable endpoint: a bounded channel, an activation state
// cell and the ID it is bound to.
//
// The zero value is unbound and inactive. Generated owner constructors bind
// every Service exactly once with Init before it is shared.
type Service[T any] struct {
	id    ID
	bound bool
	guard bindGuard
	queue queue[T]
	state stateCell
}

// Init binds the service to target and opens its channel.
//
// Init belongs to the single-threaded setup of an owner. Binding twice or a
// capacity below 1 is a contract violation.
func (s *Service[T]) Init(target Identifier, capacity int) {
	id := target.ID()

	s.guard.enter(id)
	defer s.guard.exit()

	if s.bound {
		contractViolation("%s bound twice (already %s)", id, s.id)
	}

	if capacity < 1 {
		contractViolation("%s capacity %d, want at least 1", id, capacity)
	}

	s.queue.open(capacity)
	s.id = id
	s.bound = true
}

func (s *Service[T]) Identity() (ID, bool) {
	return s.id, s.bound
}

func (s *Service[T]) State() State {
	var state State
	s.state.with(func(current *State) {
		state = *current
	})
	return state
}

func (s *Service[T]) Len() int {
	if !s.bound {
		return 0
	}

	return s.queue.size()
}

func (s *Service[T]) Cap() int {
	if !s.bound {
		return 0
	}

	return s.queue.capacity()
}

func (s *Service[T]) TrySend(value T) error {
	if !s.bound {
		return ErrNotInitialized
	}

	return s.queue.trySend(value)
}

func (s *Service[T]) Subscribe() *Receiver[T] {
	return newReceiver(s)
}

// Close closes the channel. Later sends fail with ErrClosed; receivers get
// the buffered values and then ErrDisconnected.
func (s *Service[T]) Close() {
	if s.bound {
		s.queue.shutdown()
	}
}

// Array binds every slot of an array endpoint: slot i receives
// base.WithIndex(i) through init, which binds the slot's service or, for a
// group, each of its members.
func Array[S any](base Identifier, slots []S, init func(id ID, slot *S)) {
	id := base.ID()

	for index := range slots {
		init(id.WithIndex(index), &slots[index])
	}
}
