package decide

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"wayfarer/internal/app/history"
	"wayfarer/internal/app/memory"
	"wayfarer/internal/app/ports"
	"wayfarer/internal/app/prompt"
	"wayfarer/internal/config"
	"wayfarer/internal/domain/dialogue"
	"wayfarer/internal/domain/world"
)

// Fallback lines for when the text backend fails or echoes; safe defaults
// are preferred over propagating the failure.
const (
	fallbackReply    = "Is that so? Tell me more."
	fallbackFarewell = "I should get going. Take care!"
)

// Engine turns one snapshot into one action per eligible tick, walking a
// strict priority ladder: survival goodbyes, needs latches, seeking,
// post-goodbye travel, portal hops, conversation, approach, exploration.
// The first satisfied guard wins.
type Engine struct {
	Session   *Session
	Gen       ports.TextGenerator
	Farewells dialogue.FarewellDetector
	Metrics   ports.DecisionMetrics
	Tuning    config.Tuning
	Rand      *rand.Rand
	Now       func() time.Time
}

type stepContext struct {
	snap    world.Snapshot
	tick    int64
	signals history.Signals
}

type stepFunc func(ctx context.Context, sc *stepContext) *Action

// Decide runs the ladder once. It always returns exactly one action; skip
// means "do nothing this tick" and is never submitted.
func (e *Engine) Decide(ctx context.Context, snap world.Snapshot) Action {
	s := e.Session
	tick := snap.Clock.Tick
	s.Turn++
	s.ExpireCooldowns(tick)

	sc := &stepContext{
		snap: snap,
		tick: tick,
		signals: history.Derive(s.History, e.Tuning.SignalWindow,
			e.Tuning.FailedMoveThreshold, e.Tuning.StuckMinRepeats, e.Tuning.StuckMaxPositions),
	}

	steps := []stepFunc{
		e.stepNeedsGoodbye,
		e.stepEating,
		e.stepSeekFood,
		e.stepResting,
		e.stepSeekRest,
		e.stepTravelCommitment,
		e.stepPortalTravel,
		e.stepConverse,
		e.stepApproachPeer,
	}
	var chosen *Action
	for _, step := range steps {
		if hit := step(ctx, sc); hit != nil {
			chosen = hit
			break
		}
	}
	if chosen == nil {
		a := e.stepExplore(sc)
		chosen = &a
	}
	act := *chosen

	switch act.Kind {
	case ports.ActionMove, ports.ActionTravel:
		s.Exploring = true
	case ports.ActionTalk, ports.ActionInteract:
		s.Exploring = false
	}
	return act
}

// Observe records the outcome of a submitted action back into session
// state: history, memory, conversation transitions, blocked directions
// and latch releases. It returns a summary to persist when a finished
// conversation earned one.
func (e *Engine) Observe(ctx context.Context, snap world.Snapshot, act Action, submitErr error) *ports.StoredSummary {
	if act.Kind == KindSkip {
		return nil
	}
	s := e.Session
	tick := snap.Clock.Tick

	outcome := history.OutcomeSuccess
	var rejected *ports.RejectedError
	switch {
	case submitErr == nil:
		if e.Metrics != nil {
			e.Metrics.RecordAction(act.Kind)
		}
	case errors.As(submitErr, &rejected):
		outcome = history.FailedOutcome(rejected.Reason)
		if e.Metrics != nil {
			e.Metrics.RecordRejected()
		}
	default:
		outcome = history.FailedOutcome("transport")
		if e.Metrics != nil {
			e.Metrics.RecordTransportFailure()
		}
	}

	s.History.Append(history.Entry{
		Turn:      s.Turn,
		Tick:      tick,
		Action:    string(act.Kind) + ":" + act.Reason,
		Outcome:   outcome,
		Position:  snap.Character.Position,
		Direction: act.Direction,
	})

	if rejected != nil {
		e.observeRejection(act, rejected, tick)
		return nil
	}
	if submitErr != nil {
		return nil
	}

	if act.Kind == ports.ActionTalk {
		return e.observeTalkAccepted(ctx, snap, act, tick)
	}
	return nil
}

func (e *Engine) observeRejection(act Action, rejected *ports.RejectedError, tick int64) {
	s := e.Session
	switch act.Kind {
	case ports.ActionMove:
		s.Blocked.Mark(act.Direction, tick)
	case ports.ActionTalk:
		// Fatigue or rate limits: mirror the server's cooldown locally so
		// the same talk is not retried.
		cooldown := rejected.CooldownTicks
		if cooldown <= 0 {
			cooldown = e.Tuning.PeerCooldownTicks
		}
		s.Conversation(act.ListenerID).Disengage(tick, cooldown)
	case ports.ActionInteract:
		// Depleted or restricted target: release the latch instead of
		// hammering it every tick.
		s.Eating = false
		s.Resting = false
	}
}

func (e *Engine) observeTalkAccepted(ctx context.Context, snap world.Snapshot, act Action, tick int64) *ports.StoredSummary {
	s := e.Session
	s.Memory.RecordOutgoing(act.ListenerID, act.Message)
	conv := s.Conversation(act.ListenerID)

	if !act.IsGoodbye {
		conv.MarkSent(tick)
		return nil
	}

	// Goodbye settled: summarize if the exchange was substantial, start
	// the suppression window, and commit to leaving the area.
	var summary *ports.StoredSummary
	if conv.Exchanges >= e.Tuning.SummaryMinExchanges {
		summary = e.summarize(ctx, snap, act.ListenerID)
	}
	conv.Disengage(tick, e.Tuning.PeerCooldownTicks)
	s.TravelDirection = e.pickDirection(&stepContext{snap: snap, tick: tick})
	s.TravelUntil = tick + e.Tuning.GoodbyeTravelTicks
	s.Exploring = true
	return summary
}

func (e *Engine) summarize(ctx context.Context, snap world.Snapshot, peerID string) *ports.StoredSummary {
	pairLog := snap.PairLog(e.Session.Profile.ID, peerID)
	if len(pairLog) == 0 {
		return nil
	}
	peer, ok := findPeer(snap, peerID)
	if !ok {
		peer = world.Peer{ID: peerID, Name: peerID}
	}
	raw, ok := e.generate(ctx, e.builder().Summary(peer, pairLog))
	if !ok {
		return nil
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	sum, err := memory.ParseSummary(peerID, raw, now())
	if err != nil {
		// Malformed or too short: discard rather than store.
		return nil
	}
	e.Session.Memory.AddSummary(sum)
	return &sum
}

func (e *Engine) builder() prompt.Builder {
	return prompt.Builder{Profile: e.Session.Profile, MaxSentences: e.Tuning.MaxSentences}
}

func (e *Engine) generate(ctx context.Context, p string) (string, bool) {
	timeout := e.Tuning.GenerateTimeout()
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	gctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	raw, err := e.Gen.Generate(gctx, p, ports.SamplingParams{Temperature: 0.8})
	if err != nil {
		if e.Metrics != nil {
			e.Metrics.RecordGenerationFailure()
		}
		return "", false
	}
	return raw, true
}

func findPeer(snap world.Snapshot, peerID string) (world.Peer, bool) {
	for _, p := range snap.NearbyPeers {
		if p.ID == peerID {
			return p, true
		}
	}
	return world.Peer{}, false
}
