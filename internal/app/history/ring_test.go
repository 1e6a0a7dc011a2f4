package history

import (
	"testing"

	"wayfarer/internal/domain/world"
)

func TestRing_EvictsOldest(t *testing.T) {
	r := NewRing(3)
	for i := int64(1); i <= 5; i++ {
		r.Append(Entry{Turn: i})
	}

	if r.Len() != 3 {
		t.Fatalf("expected len 3, got %d", r.Len())
	}
	tail := r.Tail(3)
	if tail[0].Turn != 3 || tail[2].Turn != 5 {
		t.Fatalf("expected turns 3..5 oldest first, got %v", tail)
	}
}

func TestRing_TailBounds(t *testing.T) {
	r := NewRing(10)
	r.Append(Entry{Turn: 1})
	r.Append(Entry{Turn: 2})

	if got := r.Tail(5); len(got) != 2 {
		t.Fatalf("expected whole ring when n exceeds len, got %d", len(got))
	}
	if got := r.Tail(0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
	if got := r.Tail(1); len(got) != 1 || got[0].Turn != 2 {
		t.Fatalf("expected newest entry only, got %v", got)
	}
}

func TestEntry_FailedAndIsMove(t *testing.T) {
	e := Entry{Outcome: FailedOutcome("wall"), Direction: world.North}
	if !e.Failed() || !e.IsMove() {
		t.Fatalf("expected failed move, got %+v", e)
	}
	ok := Entry{Outcome: OutcomeSuccess}
	if ok.Failed() || ok.IsMove() {
		t.Fatalf("expected clean non-move, got %+v", ok)
	}
	if FailedOutcome("") != "failed:unknown" {
		t.Fatalf("empty reason must normalize, got %q", FailedOutcome(""))
	}
}
