package notifier

// Sender publishes events on behalf of one endpoint (or the global sender) of
// an owner. Senders are plain values; copy them freely.
//
// Go methods cannot take type parameters, so the send modes are the package
// functions [Send], [SendFiltered] and [SendTo].
type Sender struct {
	id    ID
	owner Owner
}

// NewSender returns a sender for owner that identifies itself as from.
func NewSender(owner Owner, from Identifier) Sender {
	return Sender{
		id:    from.ID(),
		owner: owner,
	}
}

func (s Sender) ID() ID {
	return s.id
}

// Cloner is implemented by payloads that must be deep-copied when one event
// fans out to several endpoints.
type Cloner[T any] interface {
	Clone() T
}

// Send delivers event to every active endpoint of type T except the sender's
// own.
func Send[T any](s Sender, event T) error {
	return SendFiltered(s, event)
}

// SendFiltered is Send that also skips endpoints addressed by any of
// excluded.
func SendFiltered[T any](s Sender, event T, excluded ...Identifier) error {
	return dispatch(s, event, true, func(id ID, state State) bool {
		if id.Equal(s.id) || !state.IsActive() {
			return false
		}

		for _, target := range excluded {
			if id.EqTarget(target.ID()) {
				return false
			}
		}

		return true
	})
}

// SendTo delivers event only to endpoints of type T addressed by targets,
// whether active or not and including the sender's own. No targets means no
// delivery: the result is ErrNotInitialized.
func SendTo[T any](s Sender, event T, targets ...Identifier) error {
	return dispatch(s, event, false, func(id ID, _ State) bool {
		for _, target := range targets {
			if id.EqTarget(target.ID()) {
				return true
			}
		}

		return false
	})
}

// dispatch snapshots the matching endpoints, then tries every one of them.
// The result is ErrNotInitialized without matches, otherwise the last
// delivery failure (nil if all succeeded).
//
// With active set, each try-send happens inside the endpoint's state cell and
// is skipped when the endpoint lost its last receiver after the snapshot.
func dispatch[T any](s Sender, event T, active bool, match func(id ID, state State) bool) error {
	if s.owner == nil {
		return ErrNotInitialized
	}

	var scratch [8]*Service[T]
	matches := scratch[:0]

	for service := range Broadcast[T](s.owner) {
		id, ok := service.Identity()
		if ok && match(id, service.State()) {
			matches = append(matches, service)
		}
	}

	switch len(matches) {
	case 0:
		return ErrNotInitialized
	case 1:
		attempted, err := deliver(s.id, matches[0], event, active)
		if !attempted {
			return ErrNotInitialized
		}
		return err
	}

	var err error
	attempts := 0

	for _, service := range matches {
		attempted, failure := deliver(s.id, service, duplicate(event), active)
		if !attempted {
			continue
		}

		attempts++
		if failure != nil {
			err = failure
		}
	}

	if attempts == 0 {
		return ErrNotInitialized
	}

	return err
}

// deliver try-sends event to service and logs the attempt. With active set it
// reports false, without sending, when the service is inactive.
func deliver[T any](from ID, service *Service[T], event T, active bool) (bool, error) {
	e := envelope{from: from, to: service.id}

	send := func() {
		if err := service.queue.trySend(event); err != nil {
			e.err = &SendError{Target: service.id.Num(), Err: err}
		}
	}

	if active {
		attempted := false
		service.state.with(func(state *State) {
			if state.IsActive() {
				send()
				attempted = true
			}
		})

		if !attempted {
			return false, nil
		}
	} else {
		send()
	}

	e.log()
	return true, e.err
}

func duplicate[T any](event T) T {
	if cloner, ok := any(event).(Cloner[T]); ok {
		return cloner.Clone()
	}

	return event
}
