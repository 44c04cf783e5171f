//go:build notifier_ring

package notifier

import (
	"context"
	"runtime"
	"sync/atomic"
)

// spinLock is a non-suspending critical section: holders never block while
// inside it.
type spinLock struct {
	held atomic.Bool
}

func (l *spinLock) lock() {
	for !l.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (l *spinLock) unlock() {
	l.held.Store(false)
}

// queue is a ring buffer allocated once at open. ready wakes blocked
// receivers; a receiver that leaves items behind passes the wake-up on.
type queue[T any] struct {
	lock   spinLock
	buf    []T
	head   int
	count  int
	closed bool
	ready  chan struct{}
}

func (q *queue[T]) multiConsumer() {}

func (q *queue[T]) open(capacity int) {
	q.buf = make([]T, capacity)
	q.ready = make(chan struct{}, 1)
}

func (q *queue[T]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

func (q *queue[T]) trySend(value T) error {
	q.lock.lock()

	if q.closed {
		q.lock.unlock()
		return ErrClosed
	}

	if q.count == len(q.buf) {
		q.lock.unlock()
		return ErrFull
	}

	q.buf[(q.head+q.count)%len(q.buf)] = value
	q.count++
	q.lock.unlock()
	q.signal()
	return nil
}

func (q *queue[T]) tryRecv() (T, error) {
	var zero T

	q.lock.lock()

	if q.count == 0 {
		closed := q.closed
		q.lock.unlock()

		if closed {
			q.signal()
			return zero, ErrDisconnected
		}

		return zero, ErrEmpty
	}

	value := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	more := q.count > 0 || q.closed
	q.lock.unlock()

	if more {
		q.signal()
	}

	return value, nil
}

func (q *queue[T]) recv(ctx context.Context) (T, error) {
	for {
		value, err := q.tryRecv()
		if err != ErrEmpty {
			return value, err
		}

		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-q.ready:
		}
	}
}

func (q *queue[T]) drain() {
	var zero T

	q.lock.lock()
	defer q.lock.unlock()

	for i := range q.buf {
		q.buf[i] = zero
	}

	q.head = 0
	q.count = 0
}

func (q *queue[T]) shutdown() {
	q.lock.lock()
	q.closed = true
	q.lock.unlock()
	q.signal()
}

func (q *queue[T]) size() int {
	q.lock.lock()
	defer q.lock.unlock()
	return q.count
}

func (q *queue[T]) capacity() int {
	return len(q.buf)
}

type stateCell struct {
	lock  spinLock
	state State
}

func (c *stateCell) with(fn func(state *State)) {
	c.lock.lock()
	defer c.lock.unlock()
	fn(&c.state)
}
