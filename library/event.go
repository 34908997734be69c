//go:build !solution

package library

// EventKind names a state transition of an actor.
type EventKind string

const (
	EventWantsRead     EventKind = "wants-read"
	EventEntersRead    EventKind = "enters-read"
	EventLeavesRead    EventKind = "leaves-read"
	EventAbandonsRead  EventKind = "abandons-read"
	EventWantsWrite    EventKind = "wants-write"
	EventEntersWrite   EventKind = "enters-write"
	EventLeavesWrite   EventKind = "leaves-write"
	EventAbandonsWrite EventKind = "abandons-write"
)

// transitions maps a role to the kinds of its four transitions.
var transitions = [...]struct {
	wants, enters, leaves, abandons EventKind
}{
	RoleReader: {EventWantsRead, EventEntersRead, EventLeavesRead, EventAbandonsRead},
	RoleWriter: {EventWantsWrite, EventEntersWrite, EventLeavesWrite, EventAbandonsWrite},
}

// Event describes one transition and the sizes of the sets right after it.
//
// Seq is assigned while the transition is applied, so it totally orders events
// even though observers of concurrent actors may receive them out of order.
type Event struct {
	Seq     uint64
	Kind    EventKind
	ID      string
	Role    Role
	Inside  int
	Waiting int
	Readers int
	Writers int
}

// Observer receives every transition of a Library.
//
// Observe is called outside of the Library's internal lock, from the goroutine
// of the actor that caused the transition. It may call the snapshot accessors
// but should return quickly: the actor does not proceed until it does.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }
