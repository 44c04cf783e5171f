//go:build !notifier_ring

package notifier

import (
	"context"
	"sync"
)

// queue is a buffered Go channel. The lock only orders sends against close.
type queue[T any] struct {
	mu     sync.RWMutex
	ch     chan T
	closed bool
}

func (q *queue[T]) multiConsumer() {}

func (q *queue[T]) open(capacity int) {
	q.ch = make(chan T, capacity)
}

func (q *queue[T]) trySend(value T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrClosed
	}

	select {
	case q.ch <- value:
		return nil
	default:
		return ErrFull
	}
}

func (q *queue[T]) tryRecv() (T, error) {
	var zero T

	select {
	case value, ok := <-q.ch:
		if !ok {
			return zero, ErrDisconnected
		}

		return value, nil
	default:
		return zero, ErrEmpty
	}
}

func (q *queue[T]) recv(ctx context.Context) (T, error) {
	var zero T

	if ctx.Err() != nil {
		return zero, ctx.Err()
	}

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case value, ok := <-q.ch:
		if !ok {
			return zero, ErrDisconnected
		}

		return value, nil
	}
}

func (q *queue[T]) drain() {
	for {
		select {
		case _, ok := <-q.ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (q *queue[T]) shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.ch)
}

func (q *queue[T]) size() int {
	return len(q.ch)
}

func (q *queue[T]) capacity() int {
	return cap(q.ch)
}

type stateCell struct {
	mu    sync.Mutex
	state State
}

func (c *stateCell) with(fn func(state *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
}
