package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, "secret-token", 2*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	c.newKey = func() string { return "key-1" }
	return c, srv
}

func TestClient_MeSetsCharacterID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "char-7", "name": "Wren", "emoji": "🦜",
		})
	})
	mux.HandleFunc("/api/look/char-7", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"canAct":     true,
			"validMoves": []string{"North", "east"},
			"world":      map[string]any{"tick": 42},
			"pointsOfInterest": []map[string]any{
				{"id": "p1", "type": "Portal", "distance": 1.0, "direction": "WEST"},
			},
		})
	})
	c, _ := newTestClient(t, mux)

	profile, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if profile.ID != "char-7" || profile.Name != "Wren" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	snap, err := c.Look(context.Background())
	if err != nil {
		t.Fatalf("look: %v", err)
	}
	if !snap.CanAct || snap.Clock.Tick != 42 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	// Wire casing is normalized to the domain's lowercase directions.
	if snap.ValidMoves[0] != world.North || snap.ValidMoves[1] != world.East {
		t.Fatalf("expected lowered moves, got %v", snap.ValidMoves)
	}
	if snap.PointsOfInterest[0].Kind != world.POIPortal || snap.PointsOfInterest[0].Direction != world.West {
		t.Fatalf("expected lowered poi fields, got %+v", snap.PointsOfInterest[0])
	}
}

func TestClient_SubmitSendsIdempotencyKey(t *testing.T) {
	var got actionRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/action/char-7", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"xp": map[string]any{"leveledUp": true, "newLevel": 3},
		})
	})
	c, _ := newTestClient(t, mux)
	c.charID = "char-7"

	outcome, err := c.Submit(context.Background(), ports.ActionTalk, ports.ActionParams{
		Message:    "hello",
		ListenerID: "bob",
		IsGoodbye:  true,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.IdempotencyKey != "key-1" || got.Action != "talk" || !got.IsGoodbye {
		t.Fatalf("unexpected request: %+v", got)
	}
	if !outcome.Accepted || !outcome.LeveledUp || outcome.NewLevel != 3 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestClient_SubmitRejectionCarriesCooldown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/action/char-7", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": "chat fatigue", "cooldown_ticks": 12,
		})
	})
	c, _ := newTestClient(t, mux)
	c.charID = "char-7"

	_, err := c.Submit(context.Background(), ports.ActionTalk, ports.ActionParams{ListenerID: "bob"})
	var rejected *ports.RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if rejected.Reason != "chat fatigue" || rejected.CooldownTicks != 12 {
		t.Fatalf("unexpected rejection: %+v", rejected)
	}
}

func TestClient_SubmitServerErrorIsUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/action/char-7", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c, _ := newTestClient(t, mux)
	c.charID = "char-7"

	_, err := c.Submit(context.Background(), ports.ActionMove, ports.ActionParams{Direction: world.North})
	if !errors.Is(err, ports.ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestClient_ListSummariesConvertsTimestamps(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/memories/char-7", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"summaries": []map[string]any{
				{"peer_id": "bob", "title": "t", "body": "b", "topics": []string{"river"}, "created_at": 1700000000},
			},
		})
	})
	c, _ := newTestClient(t, mux)
	c.charID = "char-7"

	sums, err := c.ListSummaries(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("expected one summary, got %d", len(sums))
	}
	if !sums[0].CreatedAt.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("unexpected created at: %v", sums[0].CreatedAt)
	}
}
