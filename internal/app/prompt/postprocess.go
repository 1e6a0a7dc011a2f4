package prompt

import (
	"strings"
	"unicode"
)

// DefaultGreeting replaces empty or unusable generated talk output.
const DefaultGreeting = "Hello there!"

var strippedPrefixes = []string{
	"talk ",
	"say ",
	"response:",
	"greeting:",
	"reply:",
	"message:",
}

// CleanReply normalizes raw model output into something speakable: strips
// stage directions and markup, caps sentence count and length. An empty
// result falls back to DefaultGreeting.
func CleanReply(raw string, maxChars, maxSentences int) string {
	msg := strings.TrimSpace(raw)

	// Models love to prefix their own dialogue.
	lowered := strings.ToLower(msg)
	for _, prefix := range strippedPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			msg = strings.TrimSpace(msg[len(prefix):])
			lowered = strings.ToLower(msg)
		}
	}

	msg = strings.Trim(msg, "\"'`*_ \t\r\n")
	msg = strings.Join(strings.Fields(msg), " ")
	msg = capSentences(msg, maxSentences)
	if maxChars > 0 && len(msg) > maxChars {
		msg = strings.TrimSpace(msg[:maxChars])
	}
	if msg == "" {
		return DefaultGreeting
	}
	return msg
}

func capSentences(text string, max int) string {
	if max <= 0 {
		return text
	}
	count := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			count++
			if count == max {
				return strings.TrimSpace(text[:i+1])
			}
		}
	}
	return text
}

// IsEcho reports whether a reply just parrots the peer's own phrasing.
// Short fragments are ignored: echoing "yes" is conversation, echoing a
// whole sentence is a failure mode.
func IsEcho(reply, theirs string) bool {
	a := normalizeForEcho(reply)
	b := normalizeForEcho(theirs)
	if len(b) < 12 {
		return a == b && a != ""
	}
	return strings.Contains(a, b)
}

func normalizeForEcho(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
