package emitter

// emitter.go is an explicit event registry: a mapping from event name to an
// ordered list of subscriber callbacks, plus at most one default handler per
// event. Dispatch order is default first, then subscribers in registration
// order.
//
// Subscriptions are removed through the function returned by On/Once rather
// than by comparing handler identity, since Go closures have no usable
// equality.
//
// Single-owner, not safe for concurrent use without external locking.

// Handler consumes an event payload.
type Handler func(payload interface{})

type subscription struct {
	id uint64
	fn Handler
}

type Emitter struct {
	defaults map[string]Handler
	subs     map[string][]subscription
	nextID   uint64
}

// New creates an empty registry.
func New() *Emitter {
	return &Emitter{
		defaults: make(map[string]Handler),
		subs:     make(map[string][]subscription),
	}
}

// SetDefault installs the event's default handler, replacing any previous
// one. The default always runs before subscribers. A nil handler clears it.
func (e *Emitter) SetDefault(event string, h Handler) {
	if h == nil {
		delete(e.defaults, event)
		return
	}
	e.defaults[event] = h
}

// On subscribes h to the event and returns the function that removes this
// specific subscription. Subscribers run in registration order.
func (e *Emitter) On(event string, h Handler) (off func()) {
	e.nextID++
	id := e.nextID
	e.subs[event] = append(e.subs[event], subscription{id, h})
	return func() {
		list := e.subs[event]
		for i := range list {
			if list[i].id == id {
				e.subs[event] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Once subscribes h for a single delivery.
func (e *Emitter) Once(event string, h Handler) (off func()) {
	var remove func()
	remove = e.On(event, func(payload interface{}) {
		remove()
		h(payload)
	})
	return remove
}

// RemoveAll drops every subscriber of the event. The default handler stays.
func (e *Emitter) RemoveAll(event string) {
	delete(e.subs, event)
}

// ListenerCount returns the number of subscribers (the default handler is
// not counted).
func (e *Emitter) ListenerCount(event string) int {
	return len(e.subs[event])
}

// Emit dispatches the payload: default handler first, then subscribers in
// registration order. The subscriber list is snapshotted, so handlers may
// subscribe or unsubscribe during dispatch without affecting this delivery.
func (e *Emitter) Emit(event string, payload interface{}) {
	if def, ok := e.defaults[event]; ok {
		def(payload)
	}
	list := e.subs[event]
	snapshot := make([]subscription, len(list))
	copy(snapshot, list)
	for _, s := range snapshot {
		s.fn(payload)
	}
}
