//go:build !solution

package library

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// DefaultCapacity is the number of concurrent readers used by the driver when
// nothing else is configured.
const DefaultCapacity = 5

// Library guards a shared resource: up to Capacity readers at once, or a single
// writer alone. Admission is first come, first served across readers and writers.
//
// Every actor calls Begin and End in pairs with its own unique id. The zero value
// is not usable; create a Library with New.
type Library struct {
	capacity  int64
	admission *semaphore.Weighted
	observers []Observer

	// mu защищает только учёт участников, семафор им не покрывается
	mu      sync.Mutex
	seq     uint64
	inside  *roster
	waiting *roster
}

// Option configures a Library.
type Option func(*Library)

// WithObserver registers o to receive every transition. It may be given several
// times; observers are called in registration order.
func WithObserver(o Observer) Option {
	return func(l *Library) {
		if o != nil {
			l.observers = append(l.observers, o)
		}
	}
}

// New creates a Library admitting up to capacity concurrent readers.
func New(capacity int, opts ...Option) (*Library, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	l := &Library{
		capacity:  int64(capacity),
		admission: semaphore.NewWeighted(int64(capacity)),
		inside:    newRoster(),
		waiting:   newRoster(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Capacity returns the maximum number of concurrent readers.
func (l *Library) Capacity() int {
	return int(l.capacity)
}

// BeginRead blocks until the reader id is admitted or ctx is done.
//
// On cancellation id is no longer waiting, holds nothing, and the returned error
// matches both ErrCancelled and ctx.Err().
func (l *Library) BeginRead(ctx context.Context, id string) error {
	return l.begin(ctx, id, RoleReader)
}

// EndRead lets the reader id leave.
func (l *Library) EndRead(id string) error {
	return l.end(id, RoleReader)
}

// BeginWrite blocks until the writer id is admitted alone or ctx is done.
// Cancellation behaves as in BeginRead.
func (l *Library) BeginWrite(ctx context.Context, id string) error {
	return l.begin(ctx, id, RoleWriter)
}

// EndWrite lets the writer id leave.
func (l *Library) EndWrite(id string) error {
	return l.end(id, RoleWriter)
}

// weight is the number of admission units an actor of the given role holds.
// A writer takes all of them in one request.
func (l *Library) weight(role Role) int64 {
	if role == RoleWriter {
		return l.capacity
	}
	return 1
}

func (l *Library) begin(ctx context.Context, id string, role Role) error {
	l.mu.Lock()
	if l.waiting.contains(id) || l.inside.contains(id) {
		l.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrIdentifierInUse, id)
	}
	l.waiting.add(id, role)
	ev := l.eventLocked(transitions[role].wants, id, role)
	l.mu.Unlock()
	l.notify(ev)

	if err := l.admission.Acquire(ctx, l.weight(role)); err != nil {
		// Семафор ничего не выдал, убираем участника из очереди
		l.mu.Lock()
		l.waiting.remove(id)
		ev = l.eventLocked(transitions[role].abandons, id, role)
		l.mu.Unlock()
		l.notify(ev)
		return fmt.Errorf("%w: %s: %w", ErrCancelled, id, err)
	}

	l.mu.Lock()
	l.waiting.remove(id)
	l.inside.add(id, role)
	ev = l.eventLocked(transitions[role].enters, id, role)
	l.mu.Unlock()
	l.notify(ev)
	return nil
}

func (l *Library) end(id string, role Role) error {
	l.mu.Lock()
	if got, ok := l.inside.role(id); !ok || got != role {
		l.mu.Unlock()
		return fmt.Errorf("%w: %q is not inside as a %s", ErrUnknownIdentifier, id, role)
	}
	l.inside.remove(id)
	ev := l.eventLocked(transitions[role].leaves, id, role)
	l.mu.Unlock()

	l.admission.Release(l.weight(role))
	l.notify(ev)
	return nil
}

// eventLocked must be called with l.mu held.
func (l *Library) eventLocked(kind EventKind, id string, role Role) Event {
	l.seq++
	return Event{
		Seq:     l.seq,
		Kind:    kind,
		ID:      id,
		Role:    role,
		Inside:  l.inside.len(),
		Waiting: l.waiting.len(),
		Readers: l.inside.count(RoleReader),
		Writers: l.inside.count(RoleWriter),
	}
}

func (l *Library) notify(ev Event) {
	for _, o := range l.observers {
		o.Observe(ev)
	}
}
