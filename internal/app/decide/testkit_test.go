package decide

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/config"
	"wayfarer/internal/domain/dialogue"
	"wayfarer/internal/domain/world"
)

// stubGenerator scripts the text backend. Summary prompts are recognized
// by their header so one stub serves dialogue and summaries.
type stubGenerator struct {
	Reply       string
	SummaryJSON string
	Err         error
	Prompts     []string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, _ ports.SamplingParams) (string, error) {
	g.Prompts = append(g.Prompts, prompt)
	if g.Err != nil {
		return "", g.Err
	}
	if strings.HasPrefix(prompt, "Summarize this conversation") {
		return g.SummaryJSON, nil
	}
	return g.Reply, nil
}

func (g *stubGenerator) calls() int { return len(g.Prompts) }

type stubMetrics struct {
	actions     map[ports.ActionKind]int
	rejected    int
	genFailures int
	netFailures int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{actions: map[ports.ActionKind]int{}}
}

func (m *stubMetrics) RecordAction(kind ports.ActionKind) { m.actions[kind]++ }
func (m *stubMetrics) RecordRejected()                    { m.rejected++ }
func (m *stubMetrics) RecordGenerationFailure()           { m.genFailures++ }
func (m *stubMetrics) RecordTransportFailure()            { m.netFailures++ }

func newTestEngine(t *testing.T, selfID string, tuning config.Tuning) (*Engine, *stubGenerator, *stubMetrics) {
	t.Helper()
	profile := world.Profile{ID: selfID, Name: "Wren", Personality: "curious"}
	session, err := NewSession(profile, tuning)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	gen := &stubGenerator{Reply: "What a fine day for a wander."}
	metrics := newStubMetrics()
	return &Engine{
		Session:   session,
		Gen:       gen,
		Farewells: dialogue.NewLexiconDetector(),
		Metrics:   metrics,
		Tuning:    tuning,
		Rand:      rand.New(rand.NewSource(1)),
		Now:       func() time.Time { return time.Unix(1000, 0) },
	}, gen, metrics
}

func healthyVitals() world.Vitals {
	return world.Vitals{HP: 100, MaxHP: 100, Energy: 100, Hunger: 100}
}

func baseSnapshot(tick int64) world.Snapshot {
	return world.Snapshot{
		CanAct:     true,
		CanTalk:    true,
		Character:  healthyVitals(),
		ValidMoves: []world.Direction{world.North, world.South, world.East, world.West},
		Clock:      world.Clock{Tick: tick},
	}
}

func talkable(id, name string) world.Peer {
	return world.Peer{
		ID:             id,
		Name:           name,
		Distance:       1.0,
		DirectionHints: []world.Direction{world.North},
		CanTalk:        true,
	}
}
