package ports

import (
	"context"
	"time"

	"wayfarer/internal/domain/world"
)

type ActionKind string

const (
	ActionMove     ActionKind = "move"
	ActionTalk     ActionKind = "talk"
	ActionInteract ActionKind = "interact"
	ActionTravel   ActionKind = "travel"
	ActionThink    ActionKind = "think"
)

// ActionParams is the union of per-kind parameters; unused fields stay
// zero.
type ActionParams struct {
	Direction  world.Direction
	Message    string
	IsGoodbye  bool
	TargetID   string
	ListenerID string
}

// Outcome is the server's verdict on a submitted action.
type Outcome struct {
	Accepted  bool
	Reason    string
	LeveledUp bool
	NewLevel  int
}

// StoredSummary is a persisted conversation summary; durable on the
// server, cached locally.
type StoredSummary struct {
	PeerID    string
	Title     string
	Body      string
	Topics    []string
	CreatedAt time.Time
}

// WorldClient is the agent's only window onto the shared world. The
// engine is purely reactive to what it returns.
type WorldClient interface {
	Me(ctx context.Context) (world.Profile, error)
	Look(ctx context.Context) (world.Snapshot, error)
	Submit(ctx context.Context, kind ActionKind, params ActionParams) (Outcome, error)
	SaveSummary(ctx context.Context, summary StoredSummary) (bool, error)
	ListSummaries(ctx context.Context) ([]StoredSummary, error)
}
