package world

import "testing"

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("I think heading NORTH makes sense here.")
	if !ok || d != North {
		t.Fatalf("expected north, got %q ok=%v", d, ok)
	}
	if _, ok := ParseDirection("stay put"); ok {
		t.Fatalf("expected no direction")
	}
}

func TestDirection_Opposite(t *testing.T) {
	pairs := map[Direction]Direction{North: South, South: North, East: West, West: East}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Fatalf("opposite of %s: got %s, want %s", d, got, want)
		}
	}
	if got := Direction("up").Opposite(); got != "up" {
		t.Fatalf("unknown direction must round-trip, got %s", got)
	}
}

func TestContainsDirection(t *testing.T) {
	list := []Direction{North, East}
	if !ContainsDirection(list, East) || ContainsDirection(list, West) {
		t.Fatalf("containment check broken")
	}
}
