//go:build !solution

package library

// Snapshot is a point-in-time copy of the Library's bookkeeping.
type Snapshot struct {
	Capacity int      `json:"capacity"`
	Inside   []string `json:"inside"`
	Waiting  []string `json:"waiting"`
	Readers  int      `json:"readers"`
	Writers  int      `json:"writers"`
}

// Inside returns the actors currently admitted, in admission order.
func (l *Library) Inside() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inside.ids()
}

// Waiting returns the actors that asked for admission and were not admitted yet,
// in arrival order.
func (l *Library) Waiting() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.waiting.ids()
}

// Snapshot returns both sets and the role counts taken at the same instant.
func (l *Library) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{
		Capacity: int(l.capacity),
		Inside:   l.inside.ids(),
		Waiting:  l.waiting.ids(),
		Readers:  l.inside.count(RoleReader),
		Writers:  l.inside.count(RoleWriter),
	}
}
