package prompt

import (
	"fmt"
	"strings"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

// Builder renders prompts for the text backend. Construction stays
// mechanical; anything creative is the model's job.
type Builder struct {
	Profile      world.Profile
	MaxSentences int
}

func (b Builder) persona() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s.\n", b.Profile.Name)
	if b.Profile.Personality != "" {
		fmt.Fprintf(&sb, "Personality: %s\n", b.Profile.Personality)
	}
	if len(b.Profile.Traits) > 0 {
		fmt.Fprintf(&sb, "Traits: %s\n", strings.Join(b.Profile.Traits, ", "))
	}
	return sb.String()
}

func (b Builder) sentenceLimit() string {
	n := b.MaxSentences
	if n <= 0 {
		n = 2
	}
	return fmt.Sprintf("Keep it to 1-%d sentences. Stay in character.", n)
}

// Greeting opens a conversation with a peer met at close range.
func (b Builder) Greeting(peer world.Peer, scene string, recall []ports.StoredSummary, freshTopics []string) string {
	var sb strings.Builder
	sb.WriteString(b.persona())
	fmt.Fprintf(&sb, "\nYou see %s right next to you! Start a conversation.\n", peer.Name)
	writeScene(&sb, scene)
	writeRecall(&sb, peer.Name, recall)
	writeTopicHints(&sb, nil, freshTopics)
	fmt.Fprintf(&sb, "\nGreet them or say something interesting. %s\n", b.sentenceLimit())
	sb.WriteString("\nSay your greeting (dialogue only, no actions):")
	return sb.String()
}

// Reply answers the peer's latest message.
func (b Builder) Reply(peer world.Peer, theirMessage string, recent []world.ConversationEntry, recall []ports.StoredSummary, discussed, freshTopics []string, wrapUp bool) string {
	var sb strings.Builder
	sb.WriteString(b.persona())
	fmt.Fprintf(&sb, "\n%s just said to you: %q\n", peer.Name, theirMessage)
	writeRecent(&sb, recent)
	writeRecall(&sb, peer.Name, recall)
	writeTopicHints(&sb, discussed, freshTopics)
	if wrapUp {
		sb.WriteString("\nThe conversation has run long; start steering it toward a natural close.\n")
	}
	fmt.Fprintf(&sb, "\nRespond naturally in character. Do not repeat their words back at them. %s\n", b.sentenceLimit())
	sb.WriteString("\nSay your response (dialogue only, no actions):")
	return sb.String()
}

// Farewell produces a leaving line; the caller marks the action as a
// goodbye regardless of wording.
func (b Builder) Farewell(peer world.Peer, recent []world.ConversationEntry) string {
	var sb strings.Builder
	sb.WriteString(b.persona())
	fmt.Fprintf(&sb, "\nYou need to leave the conversation with %s now.\n", peer.Name)
	writeRecent(&sb, recent)
	fmt.Fprintf(&sb, "\nSay a short, warm goodbye in character. %s\n", b.sentenceLimit())
	sb.WriteString("\nSay your goodbye (dialogue only):")
	return sb.String()
}

// Summary asks for a compact JSON record of a finished conversation.
func (b Builder) Summary(peer world.Peer, pairLog []world.ConversationEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Summarize this conversation between %s and %s.\n\n", b.Profile.Name, peer.Name)
	for _, e := range pairLog {
		fmt.Fprintf(&sb, "%s: %q\n", e.SpeakerName, e.Message)
	}
	sb.WriteString("\nAnswer with JSON only, exactly this shape:\n")
	sb.WriteString(`{"title": "short title", "body": "2-3 sentence summary", "topics": ["topic", "topic"]}`)
	return sb.String()
}

func writeScene(sb *strings.Builder, scene string) {
	if strings.TrimSpace(scene) == "" {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", strings.TrimSpace(scene))
}

func writeRecent(sb *strings.Builder, recent []world.ConversationEntry) {
	if len(recent) == 0 {
		return
	}
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	sb.WriteString("\nRecent conversation:\n")
	for _, e := range recent {
		fmt.Fprintf(sb, "  %s: %q\n", e.SpeakerName, e.Message)
	}
}

func writeRecall(sb *strings.Builder, peerName string, recall []ports.StoredSummary) {
	if len(recall) == 0 {
		return
	}
	fmt.Fprintf(sb, "\nWhat you remember about %s from earlier meetings:\n", peerName)
	for _, s := range recall {
		fmt.Fprintf(sb, "  - %s: %s\n", s.Title, s.Body)
	}
}

func writeTopicHints(sb *strings.Builder, discussed, fresh []string) {
	if len(discussed) > 0 {
		fmt.Fprintf(sb, "\nAlready discussed (avoid repeating): %s\n", strings.Join(discussed, ", "))
	}
	if len(fresh) > 0 {
		if len(fresh) > 5 {
			fresh = fresh[:5]
		}
		fmt.Fprintf(sb, "Fresh topics you could bring up: %s\n", strings.Join(fresh, ", "))
	}
}
