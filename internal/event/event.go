// Package event delivers typed notifications from the simulation to its
// observers.
package event

// Type names a kind of event.
type Type string

// Event is implemented by every notification payload.
type Event interface {
	Type() Type
}

// Listener receives events it subscribed to.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(e Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) { f(e) }

type subscription struct {
	id       int
	listener Listener
}

// Dispatcher fans events out to listeners synchronously, in subscription
// order. It is not safe for concurrent use; the frame loop owns it.
type Dispatcher struct {
	listeners map[Type][]subscription
	nextID    int
}

// NewDispatcher creates a dispatcher with no listeners.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[Type][]subscription)}
}

// Subscribe registers listener for events of type t and returns a function
// that removes it again.
func (d *Dispatcher) Subscribe(t Type, listener Listener) (unsubscribe func()) {
	d.nextID++
	id := d.nextID
	d.listeners[t] = append(d.listeners[t], subscription{id: id, listener: listener})

	return func() {
		subs := d.listeners[t]
		for i, s := range subs {
			if s.id == id {
				d.listeners[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// SubscribeFunc is Subscribe for a plain function.
func (d *Dispatcher) SubscribeFunc(t Type, fn func(Event)) (unsubscribe func()) {
	return d.Subscribe(t, ListenerFunc(fn))
}

// Dispatch delivers e to every listener of its type before returning.
// Events without listeners are dropped. A nil dispatcher drops everything.
func (d *Dispatcher) Dispatch(e Event) {
	if d == nil {
		return
	}
	for _, s := range d.listeners[e.Type()] {
		s.listener.OnEvent(e)
	}
}

// Listeners returns how many listeners are registered for t.
func (d *Dispatcher) Listeners(t Type) int {
	return len(d.listeners[t])
}
