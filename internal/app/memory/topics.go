package memory

import "strings"

// Vocabulary is the fixed topic lexicon. Extraction is plain containment
// against these keywords; anything fancier belongs server-side.
var Vocabulary = []string{
	"adventure",
	"battle",
	"dreams",
	"family",
	"food",
	"forest",
	"home",
	"magic",
	"monsters",
	"mountains",
	"music",
	"portal",
	"river",
	"rumors",
	"stars",
	"trade",
	"travel",
	"treasure",
	"village",
	"weather",
}

// ExtractTopics returns the vocabulary topics mentioned in the text, in
// vocabulary order.
func ExtractTopics(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, topic := range Vocabulary {
		if strings.Contains(lower, topic) {
			out = append(out, topic)
		}
	}
	return out
}
