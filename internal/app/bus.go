package app

// Subscriber receives events synchronously as they are published.
type Subscriber func(Event)

// Bus is a typed publish/subscribe channel. Delivery is synchronous and
// best-effort: a panicking subscriber is isolated so it cannot interrupt the
// emitting engine or starve other subscribers.
type Bus struct {
	subs     map[EventKind][]Subscriber
	wildcard []Subscriber
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[EventKind][]Subscriber)}
}

// Subscribe registers fn for one event kind.
func (b *Bus) Subscribe(kind EventKind, fn Subscriber) {
	b.subs[kind] = append(b.subs[kind], fn)
}

// SubscribeAll registers fn for every event kind.
func (b *Bus) SubscribeAll(fn Subscriber) {
	b.wildcard = append(b.wildcard, fn)
}

// Publish fans the event out to kind subscribers then wildcard subscribers.
func (b *Bus) Publish(ev Event) {
	for _, fn := range b.subs[ev.Kind] {
		deliver(fn, ev)
	}
	for _, fn := range b.wildcard {
		deliver(fn, ev)
	}
}

func deliver(fn Subscriber, ev Event) {
	defer func() {
		// A bad listener must not corrupt an in-progress phase transition.
		_ = recover()
	}()
	fn(ev)
}
