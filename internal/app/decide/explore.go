package decide

import (
	"context"

	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

// stepTravelCommitment keeps walking the committed direction for the
// post-goodbye window, so the departure is visible. A new message from an
// uncooled peer cancels the commitment early.
func (e *Engine) stepTravelCommitment(_ context.Context, sc *stepContext) *Action {
	s := e.Session
	if sc.tick >= s.TravelUntil {
		return nil
	}
	if e.hasFreshIncoming(sc) {
		s.TravelUntil = 0
		return nil
	}
	d := s.TravelDirection
	if !world.ContainsDirection(sc.snap.ValidMoves, d) {
		d = e.pickDirection(sc)
		s.TravelDirection = d
	}
	a := move(d, "goodbye_travel")
	return &a
}

// hasFreshIncoming reports an unprocessed message addressed to us from a
// peer not under cooldown.
func (e *Engine) hasFreshIncoming(sc *stepContext) bool {
	self := e.Session.Profile.ID
	for i := len(sc.snap.Conversations) - 1; i >= 0; i-- {
		entry := sc.snap.Conversations[i]
		if entry.ListenerID != self {
			continue
		}
		conv := e.Session.Conversation(entry.SpeakerID)
		if conv.InCooldown(sc.tick) {
			continue
		}
		if entry.Tick > conv.LastProcessedTick {
			return true
		}
	}
	return false
}

// stepPortalTravel: standing on a portal with nobody to talk to, roll the
// dice. The only probabilistic guard on the ladder; the odds rise when
// already roaming.
func (e *Engine) stepPortalTravel(_ context.Context, sc *stepContext) *Action {
	t := e.Tuning
	poi, ok := sc.snap.NearestPOI(world.POIPortal)
	if !ok || poi.Distance > t.InteractRange {
		return nil
	}
	if e.talkablePeer(sc) != nil {
		return nil
	}
	chance := t.PortalTravelChance
	if e.Session.Exploring {
		chance = t.PortalTravelChanceExploring
	}
	if e.Rand.Float64() >= chance {
		return nil
	}
	a := Action{Kind: ports.ActionTravel, TargetID: poi.ID, Reason: "portal_travel"}
	return &a
}

// stepExplore is the ladder's floor: always yields a move.
func (e *Engine) stepExplore(sc *stepContext) Action {
	return move(e.pickDirection(sc), "explore")
}

// towards validates a suggested direction against the snapshot's valid
// moves, falling back to exploration when the hint is unwalkable.
func (e *Engine) towards(sc *stepContext, d world.Direction) world.Direction {
	if world.ContainsDirection(sc.snap.ValidMoves, d) {
		return d
	}
	return e.pickDirection(sc)
}

// pickDirection chooses an exploration direction: valid moves, minus
// recently blocked ones, minus repeated-failure directions, biased away
// from the majority rut when stuck. With no valid moves at all, the fixed
// default direction is used.
func (e *Engine) pickDirection(sc *stepContext) world.Direction {
	t := e.Tuning
	valid := sc.snap.ValidMoves
	if len(valid) == 0 {
		return world.Direction(t.DefaultDirection)
	}

	candidates := e.Session.Blocked.Filter(valid, sc.tick, t.BlockedDirTicks)
	candidates = dropDirections(candidates, func(d world.Direction) bool {
		return sc.signals.Avoids(d)
	})
	if sc.signals.Stuck {
		if rut, ok := e.majorityRecentDirection(); ok {
			candidates = dropDirections(candidates, func(d world.Direction) bool {
				return d == rut
			})
		}
	}
	if len(candidates) == 0 {
		candidates = valid
	}
	return candidates[e.Rand.Intn(len(candidates))]
}

// dropDirections filters, but never filters down to nothing.
func dropDirections(dirs []world.Direction, drop func(world.Direction) bool) []world.Direction {
	out := make([]world.Direction, 0, len(dirs))
	for _, d := range dirs {
		if !drop(d) {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return dirs
	}
	return out
}

// majorityRecentDirection is the most repeated move direction in the
// signal window; the rut to break out of when stuck.
func (e *Engine) majorityRecentDirection() (world.Direction, bool) {
	counts := map[world.Direction]int{}
	for _, entry := range e.Session.History.Tail(e.Tuning.SignalWindow) {
		if entry.IsMove() {
			counts[entry.Direction]++
		}
	}
	best := world.Direction("")
	bestCount := 0
	for d, c := range counts {
		if c > bestCount {
			best, bestCount = d, c
		}
	}
	return best, bestCount > 0
}
