package stage

// Channel is a synchronous publish target. Publish must deliver to every
// registered receiver before it returns.
type Channel[T any] interface {
	Publish(v T)
}

// ChannelFunc adapts a plain function to Channel.
type ChannelFunc[T any] func(T)

// Publish calls f with v.
func (f ChannelFunc[T]) Publish(v T) { f(v) }

// publish sends v on ch. A nil channel drops the value.
func publish[T any](ch Channel[T], v T) {
	if ch != nil {
		ch.Publish(v)
	}
}

type subscriber[T any] struct {
	id uint32
	fn func(T)
}

// Bus is a Channel with any number of subscribers. Subscribers are invoked in
// registration order. Not safe for concurrent use; the overlay is
// single-threaded.
type Bus[T any] struct {
	subs   []subscriber[T]
	nextID uint32
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers fn and returns a handle that unregisters it.
func (b *Bus[T]) Subscribe(fn func(T)) Subscription {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber[T]{id: id, fn: fn})
	return Subscription{remove: func() { b.unsubscribe(id) }}
}

// Publish delivers v to the subscribers registered when Publish was called.
// Subscribers added during delivery are not invoked for v.
func (b *Bus[T]) Publish(v T) {
	subs := b.subs
	for _, s := range subs {
		s.fn(v)
	}
}

// Len returns the number of registered subscribers.
func (b *Bus[T]) Len() int {
	return len(b.subs)
}

// unsubscribe copies the list so a Publish in progress keeps iterating its
// own snapshot.
func (b *Bus[T]) unsubscribe(id uint32) {
	for i := range b.subs {
		if b.subs[i].id == id {
			next := make([]subscriber[T], 0, len(b.subs)-1)
			next = append(next, b.subs[:i]...)
			next = append(next, b.subs[i+1:]...)
			b.subs = next
			return
		}
	}
}

// Subscription allows removing a registered subscriber.
type Subscription struct {
	remove func()
}

// Remove unregisters the subscriber so it no longer fires. Calling Remove more
// than once, or on the zero Subscription, is a no-op.
func (s *Subscription) Remove() {
	if s.remove == nil {
		return
	}
	s.remove()
	s.remove = nil
}
