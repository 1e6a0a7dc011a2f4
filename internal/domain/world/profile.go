package world

// Profile is the character identity the server hands back for a token.
// Fetched once at startup; the id drives the conversation tie-break and
// the rest feeds prompt construction.
type Profile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Emoji       string   `json:"emoji"`
	Personality string   `json:"personality"`
	Traits      []string `json:"traits"`
}
