package notifier

import "iter"

// Owner is a record of endpoints together with its routing tables. Generated
// owner types implement it.
type Owner interface {
	Routes() *Routes
}

// Routes maps payload types to the endpoints that accept them. Generated
// constructors fill it with [Bind]; afterwards it is read-only and safe for
// concurrent use.
type Routes struct {
	byType map[any]any
	erased []erasedRoute
}

// routeKey is the map key for payload type T. Every instantiation is a
// distinct comparable type, so no reflection is involved.
type routeKey[T any] struct{}

type route[T any] struct {
	each   iter.Seq[*Service[T]]
	lookup func(id ID) *Service[T]
}

type erasedRoute struct {
	endpoints iter.Seq[Endpoint]
	close     func()
}

// Bind registers the endpoints of payload type T: each yields every type-T
// service of the owner in declaration order (array slots in slot order) and
// lookup locates the type-T service addressed by an ID, or returns nil.
//
// Binding the same payload type twice is a contract violation.
func Bind[T any](routes *Routes, each iter.Seq[*Service[T]], lookup func(id ID) *Service[T]) {
	if routes.byType == nil {
		routes.byType = make(map[any]any)
	}

	key := routeKey[T]{}
	if _, ok := routes.byType[key]; ok {
		contractViolation("%T bound twice", key)
	}

	routes.byType[key] = &route[T]{each: each, lookup: lookup}
	routes.erased = append(routes.erased, erasedRoute{
		endpoints: func(yield func(Endpoint) bool) {
			for service := range each {
				if !yield(service) {
					return
				}
			}
		},
		close: func() {
			for service := range each {
				service.Close()
			}
		},
	})
}

func routeOf[T any](owner Owner) *route[T] {
	routes := owner.Routes()
	if routes == nil {
		return nil
	}

	r, _ := routes.byType[routeKey[T]{}].(*route[T])
	return r
}

// Broadcast yields every type-T service of owner in declaration order, array
// slots in slot order. It yields nothing for payload types owner does not
// declare.
func Broadcast[T any](owner Owner) iter.Seq[*Service[T]] {
	if r := routeOf[T](owner); r != nil {
		return r.each
	}

	return func(func(*Service[T]) bool) {}
}

// Lookup returns the type-T service of owner addressed by target.
//
// An array endpoint addressed without (or with an out-of-range) slot panics.
func Lookup[T any](owner Owner, target Identifier) (*Service[T], bool) {
	r := routeOf[T](owner)
	if r == nil {
		return nil, false
	}

	service := r.lookup(target.ID())
	return service, service != nil
}

// ReceiverFor subscribes to the type-T service of owner addressed by target.
func ReceiverFor[T any](owner Owner, target Identifier) (*Receiver[T], bool) {
	service, ok := Lookup[T](owner, target)
	if !ok {
		return nil, false
	}

	return service.Subscribe(), true
}

// Endpoints yields every endpoint of owner: grouped by payload type in bind
// order, in declaration order within a type.
func Endpoints(owner Owner) iter.Seq[Endpoint] {
	routes := owner.Routes()

	return func(yield func(Endpoint) bool) {
		if routes == nil {
			return
		}

		for _, erased := range routes.erased {
			for endpoint := range erased.endpoints {
				if !yield(endpoint) {
					return
				}
			}
		}
	}
}

// Close closes every endpoint of owner.
func Close(owner Owner) {
	routes := owner.Routes()
	if routes == nil {
		return
	}

	for _, erased := range routes.erased {
		erased.close()
	}
}
