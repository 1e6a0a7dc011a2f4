package history

import "wayfarer/internal/domain/world"

const (
	OutcomeSuccess      = "success"
	outcomeFailedPrefix = "failed:"
)

// Entry is one completed action. Entries are never replayed; they only
// feed the derived signals.
type Entry struct {
	Turn      int64
	Tick      int64
	Action    string
	Outcome   string
	Position  world.Position
	Direction world.Direction
}

func FailedOutcome(reason string) string {
	if reason == "" {
		reason = "unknown"
	}
	return outcomeFailedPrefix + reason
}

func (e Entry) Failed() bool {
	return len(e.Outcome) >= len(outcomeFailedPrefix) && e.Outcome[:len(outcomeFailedPrefix)] == outcomeFailedPrefix
}

func (e Entry) IsMove() bool {
	return e.Direction != ""
}

// Ring is a bounded append-only log of past actions; the oldest entry is
// evicted on overflow.
type Ring struct {
	entries  []Entry
	capacity int
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 30
	}
	return &Ring{capacity: capacity}
}

func (r *Ring) Append(e Entry) {
	r.entries = append(r.entries, e)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
}

func (r *Ring) Len() int {
	return len(r.entries)
}

// Tail returns up to n newest entries, oldest first. The returned slice
// aliases the ring and must not be mutated.
func (r *Ring) Tail(n int) []Entry {
	if n <= 0 || len(r.entries) == 0 {
		return nil
	}
	if n > len(r.entries) {
		n = len(r.entries)
	}
	return r.entries[len(r.entries)-n:]
}
