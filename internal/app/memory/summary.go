package memory

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"wayfarer/internal/app/ports"

	"github.com/kaptinlin/jsonrepair"
)

// ErrMalformedSummary means the generated summary was unusable and must be
// discarded rather than stored.
var ErrMalformedSummary = errors.New("malformed summary")

const minSummaryBodyChars = 40

type draftSummary struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Topics []string `json:"topics"`
}

// ParseSummary extracts a {title, body, topics} document from raw model
// output. Models wrap JSON in prose and code fences and drop commas; the
// payload is located first, then repaired if plain decoding fails.
func ParseSummary(peerID, raw string, now time.Time) (ports.StoredSummary, error) {
	payload := extractJSONObject(raw)
	if payload == "" {
		return ports.StoredSummary{}, ErrMalformedSummary
	}

	var draft draftSummary
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(payload)
		if repairErr != nil {
			return ports.StoredSummary{}, ErrMalformedSummary
		}
		if err := json.Unmarshal([]byte(repaired), &draft); err != nil {
			return ports.StoredSummary{}, ErrMalformedSummary
		}
	}

	draft.Title = strings.TrimSpace(draft.Title)
	draft.Body = strings.TrimSpace(draft.Body)
	if draft.Title == "" || len(draft.Body) < minSummaryBodyChars {
		return ports.StoredSummary{}, ErrMalformedSummary
	}

	topics := make([]string, 0, len(draft.Topics))
	for _, t := range draft.Topics {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			topics = append(topics, t)
		}
	}
	return ports.StoredSummary{
		PeerID:    peerID,
		Title:     draft.Title,
		Body:      draft.Body,
		Topics:    topics,
		CreatedAt: now,
	}, nil
}

// extractJSONObject returns the first balanced-looking {...} span,
// tolerating fenced blocks and leading prose.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}
