package run

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"wayfarer/internal/adapter/world/mock"
	"wayfarer/internal/app/decide"
	"wayfarer/internal/app/ports"
	"wayfarer/internal/config"
	"wayfarer/internal/domain/dialogue"
	"wayfarer/internal/domain/world"
)

type stubGenerator struct{ reply string }

func (g stubGenerator) Generate(context.Context, string, ports.SamplingParams) (string, error) {
	return g.reply, nil
}

func fastTuning() config.Tuning {
	t := config.Default()
	t.PollIntervalSec = 0.001
	t.ErrorBackoffSec = 0.001
	t.RequestTimeoutSec = 0.1
	return t
}

func newTestLoop(t *testing.T, client *mock.Client) *Loop {
	t.Helper()
	tuning := fastTuning()
	session, err := decide.NewSession(world.Profile{ID: "aaa", Name: "Wren"}, tuning)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return &Loop{
		World:  client,
		Tuning: tuning,
		Engine: &decide.Engine{
			Session:   session,
			Gen:       stubGenerator{reply: "Hello!"},
			Farewells: dialogue.NewLexiconDetector(),
			Tuning:    tuning,
			Rand:      rand.New(rand.NewSource(1)),
			Now:       time.Now,
		},
	}
}

func runBriefly(t *testing.T, l *Loop, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := l.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRun_IneligibleTicksSubmitNothing(t *testing.T) {
	client := &mock.Client{
		Snapshots: []world.Snapshot{{CanAct: false, Clock: world.Clock{Tick: 1}}},
	}
	l := newTestLoop(t, client)
	runBriefly(t, l, 20*time.Millisecond)

	// Only the shutdown departure goes out.
	for _, sub := range client.Submitted {
		if sub.Kind != ports.ActionThink {
			t.Fatalf("ineligible ticks must not act, got %v", sub.Kind)
		}
	}
}

func TestRun_EligibleTickSubmitsOneAction(t *testing.T) {
	snap := world.Snapshot{
		CanAct:     true,
		Character:  world.Vitals{HP: 100, MaxHP: 100, Energy: 100, Hunger: 100},
		ValidMoves: []world.Direction{world.North, world.East},
		Clock:      world.Clock{Tick: 5},
	}
	client := &mock.Client{Snapshots: []world.Snapshot{snap}}
	l := newTestLoop(t, client)
	runBriefly(t, l, 20*time.Millisecond)

	moves := 0
	for _, sub := range client.Submitted {
		if sub.Kind == ports.ActionMove {
			moves++
			if sub.Params.Direction == "" {
				t.Fatalf("move without direction: %+v", sub)
			}
		}
	}
	if moves == 0 {
		t.Fatalf("expected at least one exploration move, got %+v", client.Submitted)
	}
	if l.Engine.Session.History.Len() == 0 {
		t.Fatalf("accepted actions must enter history")
	}
}

func TestRun_WarmsSummariesFromServer(t *testing.T) {
	client := &mock.Client{
		Snapshots: []world.Snapshot{{CanAct: false}},
		Summaries: []ports.StoredSummary{
			{PeerID: "bob", Title: "old talk", Body: "b", CreatedAt: time.Unix(10, 0)},
		},
	}
	l := newTestLoop(t, client)
	runBriefly(t, l, 10*time.Millisecond)

	got := l.Engine.Session.Memory.Peer("bob").Summaries
	if len(got) != 1 || got[0].Title != "old talk" {
		t.Fatalf("expected the server summary recalled, got %+v", got)
	}
}

func TestRun_LookFailureBacksOffAndRecovers(t *testing.T) {
	client := &mock.Client{LookErr: ports.ErrUnavailable}
	l := newTestLoop(t, client)
	runBriefly(t, l, 15*time.Millisecond)

	for _, sub := range client.Submitted {
		if sub.Kind != ports.ActionThink {
			t.Fatalf("no actions expected while looks fail, got %v", sub.Kind)
		}
	}
}

func TestRun_ShutdownSaysDeparture(t *testing.T) {
	client := &mock.Client{
		Snapshots: []world.Snapshot{{CanAct: false}},
	}
	l := newTestLoop(t, client)
	runBriefly(t, l, 10*time.Millisecond)

	if len(client.Submitted) == 0 {
		t.Fatalf("expected a departure submission")
	}
	last := client.Submitted[len(client.Submitted)-1]
	if last.Kind != ports.ActionThink || last.Params.Message == "" {
		t.Fatalf("expected a parting thought, got %+v", last)
	}
}
