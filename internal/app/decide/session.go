package decide

import (
	"wayfarer/internal/app/history"
	"wayfarer/internal/app/memory"
	"wayfarer/internal/config"
	"wayfarer/internal/domain/dialogue"
	"wayfarer/internal/domain/world"
)

// Session is the one aggregate that outlives a tick: per-peer
// conversation state, memory, needs latches, the post-goodbye travel
// commitment, and the action history. Exactly one Session per engine
// instance; nothing here is shared.
type Session struct {
	Profile world.Profile

	Peers   map[string]*dialogue.Conversation
	Memory  *memory.Store
	History *history.Ring
	Blocked *history.BlockedDirections

	// Needs latches. Once set they hold across ticks until the vital
	// reaches its maximum, independent of per-tick re-evaluation.
	Eating  bool
	Resting bool

	// Post-goodbye travel commitment: keep walking TravelDirection until
	// TravelUntil so the departure is visible.
	TravelDirection world.Direction
	TravelUntil     int64

	// Exploring marks that the last decision was movement rather than
	// conversation; it raises the portal-travel probability.
	Exploring bool

	Turn int64
}

func NewSession(profile world.Profile, t config.Tuning) (*Session, error) {
	store, err := memory.NewStore(t.PeerCacheSize, t.SentMessagesPerPeer)
	if err != nil {
		return nil, err
	}
	return &Session{
		Profile: profile,
		Peers:   map[string]*dialogue.Conversation{},
		Memory:  store,
		History: history.NewRing(t.HistoryCapacity),
		Blocked: history.NewBlockedDirections(),
	}, nil
}

// Conversation returns the state machine for a peer, creating it on first
// contact.
func (s *Session) Conversation(peerID string) *dialogue.Conversation {
	if c, ok := s.Peers[peerID]; ok {
		return c
	}
	c := dialogue.NewConversation(peerID)
	s.Peers[peerID] = c
	return c
}

// Active returns the single peer currently holding the conversation slot,
// or nil. The invariant that at most one peer is talking/waiting is
// enforced by only engaging through this check.
func (s *Session) Active() *dialogue.Conversation {
	for _, c := range s.Peers {
		if c.Engaged() {
			return c
		}
	}
	return nil
}

// ExpireCooldowns resets every peer whose suppression window has passed
// and wipes its short-term memory, so the next meeting starts fresh.
func (s *Session) ExpireCooldowns(tick int64) {
	for id, c := range s.Peers {
		if c.CooldownExpired(tick) {
			c.Reset()
			s.Memory.Forget(id)
		}
	}
}
