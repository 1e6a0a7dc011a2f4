package dialogue

import "testing"

func TestLexiconDetector_MatchesByContainment(t *testing.T) {
	d := NewLexiconDetector()

	if !d.IsFarewell("Well, GOODBYE my friend!") {
		t.Fatalf("expected case-insensitive match")
	}
	if !d.IsFarewell("I should get going, the sun is setting.") {
		t.Fatalf("expected phrase inside a sentence to match")
	}
	if d.IsFarewell("What a good day for fishing.") {
		t.Fatalf("unexpected farewell match")
	}
}

func TestLexiconDetector_ExtraPhrases(t *testing.T) {
	d := NewLexiconDetector("  Fare Thee Well ", "")

	if !d.IsFarewell("fare thee well, stranger") {
		t.Fatalf("expected extra phrase to match")
	}
}
