package decide

import (
	"context"

	"wayfarer/internal/app/prompt"
	"wayfarer/internal/domain/dialogue"
	"wayfarer/internal/domain/world"
)

// talkablePeer returns the nearest peer we could speak with right now:
// in conversational range per the server and not under a goodbye
// cooldown. Returns nil when nobody qualifies.
func (e *Engine) talkablePeer(sc *stepContext) *world.Peer {
	var best *world.Peer
	for i := range sc.snap.NearbyPeers {
		p := &sc.snap.NearbyPeers[i]
		if !p.CanTalk {
			continue
		}
		if e.Session.Conversation(p.ID).InCooldown(sc.tick) {
			continue
		}
		if best == nil || p.Distance < best.Distance {
			best = p
		}
	}
	return best
}

// stepConverse drives the per-peer state machine. Exclusivity holds: an
// engaged peer owns the slot, everyone else is ignored until it frees up.
func (e *Engine) stepConverse(ctx context.Context, sc *stepContext) *Action {
	s := e.Session
	t := e.Tuning
	self := s.Profile.ID

	if active := s.Active(); active != nil {
		return e.continueConversation(ctx, sc, active)
	}

	peer := e.talkablePeer(sc)
	if peer == nil {
		return nil
	}
	conv := s.Conversation(peer.ID)

	// A message from them we have not yet processed hands us the turn.
	if entry, ok := sc.snap.LastMessageTo(peer.ID, self); ok && entry.Tick > conv.LastProcessedTick {
		conv.BeginTalking(entry.Tick)
		return e.respondTo(ctx, sc, *peer, entry.Message)
	}

	// Fresh meeting: the lower id opens; the higher id holds a bounded
	// wait so an offline peer cannot strand both sides in silence.
	if dialogue.ShouldInitiate(self, peer.ID) {
		conv.BeginTalking(sc.tick)
		msg := e.speakGreeting(ctx, sc, *peer)
		a := talk(peer.ID, msg, false, "greet")
		return &a
	}
	if conv.Phase == dialogue.PhaseIdle {
		conv.AwaitInitiative(sc.tick, t.InitiateWaitTicks)
		a := skip("awaiting_initiative")
		return &a
	}
	if conv.InitiativeExpired(sc.tick) {
		conv.BeginTalking(sc.tick)
		msg := e.speakGreeting(ctx, sc, *peer)
		a := talk(peer.ID, msg, false, "greet_after_wait")
		return &a
	}
	a := skip("awaiting_initiative")
	return &a
}

func (e *Engine) continueConversation(ctx context.Context, sc *stepContext, active *dialogue.Conversation) *Action {
	s := e.Session
	t := e.Tuning
	self := s.Profile.ID

	if active.Phase == dialogue.PhaseWaiting {
		if entry, ok := sc.snap.LastMessageTo(active.PeerID, self); ok && entry.Tick > active.LastProcessedTick {
			active.ReplyArrived(entry.Tick)
		} else if active.WaitTimedOut(sc.tick, t.ReplyTimeoutTicks) {
			// Timeout, not an error: cool the peer down and fall through
			// to movement. No text generation on this tick.
			active.Disengage(sc.tick, t.PeerCooldownTicks)
			return nil
		} else {
			a := skip("awaiting_reply")
			return &a
		}
	}

	peer, present := findPeer(sc.snap, active.PeerID)
	if !present {
		// Engaged peer vanished from perception; hold as an unanswered
		// wait so the slot frees up on timeout.
		active.HoldForReturn(sc.tick)
		a := skip("peer_lost")
		return &a
	}
	if !peer.CanTalk {
		// Still visible but out of conversational range; the approach
		// step will close the gap.
		return nil
	}

	entry, ok := sc.snap.LastMessageTo(peer.ID, self)
	theirMessage := ""
	if ok {
		theirMessage = entry.Message
	}
	return e.respondTo(ctx, sc, peer, theirMessage)
}

// respondTo produces the in-character line for our turn: a farewell ack
// if they said goodbye, a greeting if nothing has been said, otherwise a
// reply.
func (e *Engine) respondTo(ctx context.Context, sc *stepContext, peer world.Peer, theirMessage string) *Action {
	if theirMessage != "" && e.Farewells.IsFarewell(theirMessage) {
		msg := e.speakFarewell(ctx, sc, peer)
		a := talk(peer.ID, msg, true, "farewell_ack")
		return &a
	}
	if theirMessage == "" {
		msg := e.speakGreeting(ctx, sc, peer)
		a := talk(peer.ID, msg, false, "greet")
		return &a
	}
	msg := e.speakReply(ctx, sc, peer, theirMessage)
	a := talk(peer.ID, msg, false, "converse")
	return &a
}

// stepApproachPeer moves toward the nearest visible peer, or away from
// one still under goodbye cooldown.
func (e *Engine) stepApproachPeer(_ context.Context, sc *stepContext) *Action {
	var nearest *world.Peer
	for i := range sc.snap.NearbyPeers {
		p := &sc.snap.NearbyPeers[i]
		if nearest == nil || p.Distance < nearest.Distance {
			nearest = p
		}
	}
	if nearest == nil {
		return nil
	}

	conv := e.Session.Conversation(nearest.ID)
	if conv.InCooldown(sc.tick) {
		d := e.pickDirection(sc)
		if len(nearest.DirectionHints) > 0 {
			if away := nearest.DirectionHints[0].Opposite(); world.ContainsDirection(sc.snap.ValidMoves, away) {
				d = away
			}
		}
		a := move(d, "avoid_cooled_peer")
		return &a
	}
	if nearest.CanTalk {
		// In range already; the conversation step owns this peer.
		return nil
	}
	if len(nearest.DirectionHints) == 0 {
		return nil
	}
	a := move(e.towards(sc, nearest.DirectionHints[0]), "approach_peer")
	return &a
}

func (e *Engine) speakGreeting(ctx context.Context, sc *stepContext, peer world.Peer) string {
	t := e.Tuning
	recall := e.Session.Memory.RecallSummaries(peer.ID, t.RecallRecentSummaries, t.RecallRandomSummaries, e.Rand)
	fresh := e.Session.Memory.UnusedTopics(peer.ID)
	raw, ok := e.generate(ctx, e.builder().Greeting(peer, sc.snap.TextDescription, recall, fresh))
	if !ok {
		return prompt.DefaultGreeting
	}
	return prompt.CleanReply(raw, t.MessageMaxChars, t.MaxSentences)
}

func (e *Engine) speakReply(ctx context.Context, sc *stepContext, peer world.Peer, theirMessage string) string {
	t := e.Tuning
	s := e.Session
	conv := s.Conversation(peer.ID)
	recent := sc.snap.PairLog(s.Profile.ID, peer.ID)
	recall := s.Memory.RecallSummaries(peer.ID, t.RecallRecentSummaries, t.RecallRandomSummaries, e.Rand)
	wrapUp := conv.Exchanges >= t.NaturalCloseExchanges
	p := e.builder().Reply(peer, theirMessage, recent, recall,
		s.Memory.DiscussedTopics(peer.ID), s.Memory.UnusedTopics(peer.ID), wrapUp)
	raw, ok := e.generate(ctx, p)
	if !ok {
		return fallbackReply
	}
	msg := prompt.CleanReply(raw, t.MessageMaxChars, t.MaxSentences)
	if prompt.IsEcho(msg, theirMessage) {
		return fallbackReply
	}
	return msg
}

func (e *Engine) speakFarewell(ctx context.Context, sc *stepContext, peer world.Peer) string {
	t := e.Tuning
	recent := sc.snap.PairLog(e.Session.Profile.ID, peer.ID)
	raw, ok := e.generate(ctx, e.builder().Farewell(peer, recent))
	if !ok {
		return fallbackFarewell
	}
	return prompt.CleanReply(raw, t.MessageMaxChars, t.MaxSentences)
}
