package dialogue

// Phase is where a conversation with one peer currently stands.
type Phase string

const (
	// PhaseIdle: no engagement and no suppression.
	PhaseIdle Phase = "idle"
	// PhaseInitiating: we outrank the peer in the id tie-break, so we hold
	// a bounded wait for them to speak first before initiating anyway.
	PhaseInitiating Phase = "initiating"
	// PhaseTalking: it is our turn to produce a message.
	PhaseTalking Phase = "talking"
	// PhaseWaiting: we spoke last and are polling for their reply.
	PhaseWaiting Phase = "waiting"
	// PhaseCooldown: a farewell or timeout happened; re-engagement is
	// suppressed until the cooldown tick passes.
	PhaseCooldown Phase = "cooldown"
)

// Conversation tracks turn-taking with a single peer. All transitions are
// driven by the engine against world-clock ticks; the struct itself holds
// no clock.
type Conversation struct {
	PeerID            string
	Phase             Phase
	Exchanges         int
	WaitingSince      int64
	InitiateDeadline  int64
	CooldownUntil     int64
	LastProcessedTick int64
}

func NewConversation(peerID string) *Conversation {
	return &Conversation{PeerID: peerID, Phase: PhaseIdle}
}

// ShouldInitiate is the deterministic tie-break for a fresh meeting: the
// lexically lower id always speaks first. The higher id waits a bounded
// window and then initiates anyway, so an offline peer cannot deadlock us.
func ShouldInitiate(selfID, peerID string) bool {
	return selfID < peerID
}

// Engaged reports whether this peer currently holds the single
// conversation slot.
func (c *Conversation) Engaged() bool {
	return c.Phase == PhaseTalking || c.Phase == PhaseWaiting
}

func (c *Conversation) InCooldown(tick int64) bool {
	return c.Phase == PhaseCooldown && tick < c.CooldownUntil
}

// CooldownExpired reports that the suppression window has passed and the
// peer may be treated as a stranger again.
func (c *Conversation) CooldownExpired(tick int64) bool {
	return c.Phase == PhaseCooldown && tick >= c.CooldownUntil
}

// BeginTalking claims the turn. Valid from idle, initiating and waiting.
func (c *Conversation) BeginTalking(tick int64) {
	c.Phase = PhaseTalking
	c.WaitingSince = 0
	if tick > c.LastProcessedTick {
		c.LastProcessedTick = tick
	}
}

// AwaitInitiative parks the higher-id side in a bounded wait for the peer
// to open. No action is taken while the deadline has not passed.
func (c *Conversation) AwaitInitiative(tick, waitTicks int64) {
	c.Phase = PhaseInitiating
	c.InitiateDeadline = tick + waitTicks
}

func (c *Conversation) InitiativeExpired(tick int64) bool {
	return c.Phase == PhaseInitiating && tick >= c.InitiateDeadline
}

// MarkSent records that we spoke a non-farewell message and hands the turn
// to the peer.
func (c *Conversation) MarkSent(tick int64) {
	c.Exchanges++
	c.Phase = PhaseWaiting
	c.WaitingSince = tick
}

// ReplyArrived consumes a peer message newer than anything processed so
// far and takes the turn back.
func (c *Conversation) ReplyArrived(tick int64) {
	c.Phase = PhaseTalking
	c.WaitingSince = 0
	if tick > c.LastProcessedTick {
		c.LastProcessedTick = tick
	}
}

// HoldForReturn parks a talking-phase engagement whose peer slipped out
// of perception: we wait for them to resurface, bounded by the same reply
// timeout.
func (c *Conversation) HoldForReturn(tick int64) {
	c.Phase = PhaseWaiting
	if c.WaitingSince == 0 {
		c.WaitingSince = tick
	}
}

func (c *Conversation) WaitTimedOut(tick, window int64) bool {
	return c.Phase == PhaseWaiting && tick-c.WaitingSince > window
}

// Disengage ends the engagement, farewell or timeout alike, and starts the
// re-engagement suppression window.
func (c *Conversation) Disengage(tick, cooldownTicks int64) {
	c.Phase = PhaseCooldown
	c.WaitingSince = 0
	c.CooldownUntil = tick + cooldownTicks
}

// Reset forgets the engagement entirely. Called when the cooldown expires
// so the next meeting re-introduces from scratch.
func (c *Conversation) Reset() {
	*c = Conversation{PeerID: c.PeerID, Phase: PhaseIdle}
}
