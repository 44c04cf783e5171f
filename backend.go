package notifier

import "context"

// backend is the capability a channel implementation provides to a Service.
//
// Exactly one implementation (the queue type) is compiled in per build
// configuration:
//   - default: a buffered Go channel guarded for close (backend_chan.go).
//   - notifier_ring: a preallocated ring buffer behind a spin critical section
//     (backend_ring.go).
type backend[T any] interface {
	open(capacity int)
	trySend(value T) error
	tryRecv() (T, error)
	recv(ctx context.Context) (T, error)
	drain()
	shutdown()
	size() int
	capacity() int
}

// multiConsumer marks receive handles that hand every queued item to exactly
// one of any number of concurrent consumers. Receiver.Clone depends on it.
type multiConsumer interface {
	multiConsumer()
}

// critical guards one activation state cell.
type critical interface {
	with(fn func(state *State))
}

var (
	_ backend[struct{}] = (*queue[struct{}])(nil)
	_ multiConsumer     = (*queue[struct{}])(nil)
	_ critical          = (*stateCell)(nil)
)
