package decide

import (
	"context"

	"wayfarer/internal/domain/world"
)

// needsGoodbye decides whether survival pressure justifies ending the
// current conversation: urgent needs after a short polite minimum,
// moderate needs after a longer one, and a hard stop regardless of needs.
func (e *Engine) needsGoodbye(v world.Vitals, exchanges int) bool {
	t := e.Tuning
	if exchanges >= t.MaxExchanges {
		return true
	}
	urgent := v.Energy < t.UrgentEnergyBelow || v.Hunger < t.UrgentHungerBelow
	if urgent && exchanges >= t.UrgentMinExchanges {
		return true
	}
	moderate := v.Energy < t.ModerateEnergyBelow || v.Hunger < t.ModerateHungerBelow
	return moderate && exchanges >= t.ModerateMinExchanges
}

// stepNeedsGoodbye: highest priority. If engaged and a need has been
// valid long enough, say goodbye instead of continuing.
func (e *Engine) stepNeedsGoodbye(ctx context.Context, sc *stepContext) *Action {
	active := e.Session.Active()
	if active == nil {
		return nil
	}
	if !e.needsGoodbye(sc.snap.Character, active.Exchanges) {
		return nil
	}
	peer, ok := findPeer(sc.snap, active.PeerID)
	if !ok || !peer.CanTalk {
		// Peer unreachable; the wait timeout in the conversation step
		// will close this out without a farewell.
		return nil
	}
	msg := e.speakFarewell(ctx, sc, peer)
	a := talk(peer.ID, msg, true, "needs_goodbye")
	return &a
}

// stepEating: the eating latch. Once active it re-emits the interact
// every tick without touching the text backend, and clears exactly when
// hunger reaches its maximum.
func (e *Engine) stepEating(_ context.Context, sc *stepContext) *Action {
	s := e.Session
	t := e.Tuning

	if s.Eating {
		if sc.snap.Character.Hunger >= t.VitalMax {
			s.Eating = false
		} else if poi, ok := sc.snap.NearestPOI(world.POIFood); ok && poi.Distance <= t.InteractRange {
			a := interact(poi.ID, "eating")
			return &a
		} else {
			// Drifted off the food point; release rather than thrash.
			s.Eating = false
		}
	}

	if sc.snap.Character.Hunger >= t.SeekFoodBelowHunger {
		return nil
	}
	if e.talkablePeer(sc) != nil {
		return nil
	}
	if poi, ok := sc.snap.NearestPOI(world.POIFood); ok && poi.Distance <= t.InteractRange {
		s.Eating = true
		a := interact(poi.ID, "eating")
		return &a
	}
	return nil
}

// stepSeekFood: hungry with no food in reach; head for the nearest known
// food point, or forage blind if none is visible.
func (e *Engine) stepSeekFood(_ context.Context, sc *stepContext) *Action {
	t := e.Tuning
	if sc.snap.Character.Hunger >= t.SeekFoodBelowHunger {
		return nil
	}
	if poi, ok := sc.snap.NearestPOI(world.POIFood); ok {
		if poi.Distance <= t.InteractRange {
			// In reach but blocked from latching (someone talkable is
			// here); let the conversation steps have it.
			return nil
		}
		a := move(e.towards(sc, poi.Direction), "seek_food")
		return &a
	}
	a := move(e.pickDirection(sc), "forage")
	return &a
}

// stepResting: the resting latch, symmetric to eating.
func (e *Engine) stepResting(_ context.Context, sc *stepContext) *Action {
	s := e.Session
	t := e.Tuning

	if s.Resting {
		if sc.snap.Character.Energy >= t.VitalMax {
			s.Resting = false
		} else if poi, ok := sc.snap.NearestPOI(world.POIRest); ok && poi.Distance <= t.InteractRange {
			a := interact(poi.ID, "resting")
			return &a
		} else {
			s.Resting = false
		}
	}

	if sc.snap.Character.Energy >= t.SeekRestBelowEnergy {
		return nil
	}
	if e.talkablePeer(sc) != nil {
		return nil
	}
	if poi, ok := sc.snap.NearestPOI(world.POIRest); ok && poi.Distance <= t.InteractRange {
		s.Resting = true
		a := interact(poi.ID, "resting")
		return &a
	}
	return nil
}

func (e *Engine) stepSeekRest(_ context.Context, sc *stepContext) *Action {
	t := e.Tuning
	if sc.snap.Character.Energy >= t.SeekRestBelowEnergy {
		return nil
	}
	if poi, ok := sc.snap.NearestPOI(world.POIRest); ok {
		if poi.Distance <= t.InteractRange {
			return nil
		}
		a := move(e.towards(sc, poi.Direction), "seek_rest")
		return &a
	}
	a := move(e.pickDirection(sc), "seek_rest")
	return &a
}
