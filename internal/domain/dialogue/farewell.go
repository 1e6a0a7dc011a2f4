package dialogue

import "strings"

// FarewellDetector classifies a message as an intent to end the
// conversation. Phrase matching is inherently fuzzy, so it sits behind an
// interface and can be swapped for a stricter classifier.
type FarewellDetector interface {
	IsFarewell(message string) bool
}

var defaultFarewells = []string{
	"goodbye",
	"farewell",
	"see you",
	"see ya",
	"take care",
	"safe travels",
	"until next time",
	"so long",
	"gotta go",
	"got to go",
	"i must be going",
	"i should get going",
	"catch you later",
	"bye",
}

// LexiconDetector matches a fixed phrase list by case-insensitive
// containment.
type LexiconDetector struct {
	phrases []string
}

func NewLexiconDetector(extra ...string) LexiconDetector {
	phrases := make([]string, 0, len(defaultFarewells)+len(extra))
	phrases = append(phrases, defaultFarewells...)
	for _, p := range extra {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			phrases = append(phrases, p)
		}
	}
	return LexiconDetector{phrases: phrases}
}

func (d LexiconDetector) IsFarewell(message string) bool {
	lower := strings.ToLower(message)
	for _, p := range d.phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
