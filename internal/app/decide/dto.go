package decide

import (
	"wayfarer/internal/app/ports"
	"wayfarer/internal/domain/world"
)

// KindSkip is a decision to do nothing this tick. It is never submitted
// to the server.
const KindSkip ports.ActionKind = "skip"

// Action is the engine's single decision for one eligible tick.
type Action struct {
	Kind       ports.ActionKind
	Direction  world.Direction
	Message    string
	IsGoodbye  bool
	TargetID   string
	ListenerID string
	// Reason names the ladder guard that produced the action; it feeds
	// the journal and logs only.
	Reason string
}

func (a Action) Params() ports.ActionParams {
	return ports.ActionParams{
		Direction:  a.Direction,
		Message:    a.Message,
		IsGoodbye:  a.IsGoodbye,
		TargetID:   a.TargetID,
		ListenerID: a.ListenerID,
	}
}

func skip(reason string) Action {
	return Action{Kind: KindSkip, Reason: reason}
}

func move(d world.Direction, reason string) Action {
	return Action{Kind: ports.ActionMove, Direction: d, Reason: reason}
}

func interact(targetID, reason string) Action {
	return Action{Kind: ports.ActionInteract, TargetID: targetID, Reason: reason}
}

func talk(listenerID, message string, goodbye bool, reason string) Action {
	return Action{Kind: ports.ActionTalk, ListenerID: listenerID, Message: message, IsGoodbye: goodbye, Reason: reason}
}
