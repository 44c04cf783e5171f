package notifier

// Channel is the view of one typed endpoint of an owner. It hands out the
// endpoint's sender and receivers.
type Channel[T any] struct {
	owner   Owner
	service *Service[T]
}

func NewChannel[T any](owner Owner, service *Service[T]) Channel[T] {
	return Channel[T]{owner: owner, service: service}
}

func (c Channel[T]) ID() ID {
	return c.service.id
}

// Sender returns a sender identified as this endpoint, so Send skips it.
func (c Channel[T]) Sender() Sender {
	return NewSender(c.owner, c.service.id)
}

func (c Channel[T]) Receiver() *Receiver[T] {
	return c.service.Subscribe()
}

func (c Channel[T]) Split() (Sender, *Receiver[T]) {
	return c.Sender(), c.Receiver()
}

func (c Channel[T]) State() State {
	return c.service.State()
}

func (c Channel[T]) Service() *Service[T] {
	return c.service
}
