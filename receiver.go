package notifier

import (
	"context"
	"sync/atomic"
)

// Receiver is a live subscription on one Service. While it exists the
// service counts as active and senders deliver to it.
//
// A Receiver is released by Close or Deactivate. Releasing the last receiver
// of a service discards everything still queued, so a later subscription never
// observes stale events.
type Receiver[T any] struct {
	service  *Service[T]
	queue    *queue[T]
	released atomic.Bool
}

func newReceiver[T any](service *Service[T]) *Receiver[T] {
	if service == nil || !service.bound {
		contractViolation("subscribe to an unbound service")
	}

	service.state.with((*State).incr)

	return &Receiver[T]{
		service: service,
		queue:   &service.queue,
	}
}

// ID returns the identity of the subscribed endpoint.
func (r *Receiver[T]) ID() ID {
	return r.service.id
}

// Recv waits for the next value. It returns ctx.Err() when ctx is done and
// ErrDisconnected once the channel is closed and empty. Abandoning a Recv
// does not change the activation state.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	if r.released.Load() {
		var zero T
		return zero, ErrReleased
	}

	return r.queue.recv(ctx)
}

// TryRecv returns the next value without waiting, or ErrEmpty.
func (r *Receiver[T]) TryRecv() (T, error) {
	if r.released.Load() {
		var zero T
		return zero, ErrReleased
	}

	return r.queue.tryRecv()
}

// Clone returns an independent subscription sharing the channel. Each queued
// value is taken by exactly one of the clones.
func (r *Receiver[T]) Clone() *Receiver[T] {
	if r.released.Load() {
		contractViolation("clone of released receiver %s", r.service.id)
	}

	return newReceiver(r.service)
}

// Deactivate releases the receiver but keeps its place: the returned
// InactiveReceiver can be activated again later.
func (r *Receiver[T]) Deactivate() InactiveReceiver[T] {
	if !r.release() {
		contractViolation("deactivate of released receiver %s", r.service.id)
	}

	return InactiveReceiver[T]{service: r.service}
}

// Close releases the receiver. Closing twice is a no-op.
func (r *Receiver[T]) Close() {
	r.release()
}

func (r *Receiver[T]) release() bool {
	if !r.released.CompareAndSwap(false, true) {
		return false
	}

	r.service.state.with(func(state *State) {
		if state.decr() {
			r.queue.drain()
		}
	})

	return true
}

// InactiveReceiver remembers an endpoint without counting as a subscriber.
type InactiveReceiver[T any] struct {
	service *Service[T]
}

func (r InactiveReceiver[T]) ID() ID {
	return r.service.id
}

// Activate subscribes again.
func (r InactiveReceiver[T]) Activate() *Receiver[T] {
	return newReceiver(r.service)
}
