package dialogue

const (
	// InitiateWaitTicks is how long the higher-id side waits for the peer
	// to open before initiating anyway.
	InitiateWaitTicks = 6

	// ReplyTimeoutTicks is how long a sent message may go unanswered
	// before the engagement is abandoned.
	ReplyTimeoutTicks = 12

	// PeerCooldownTicks suppresses re-engagement with a peer after a
	// farewell or timeout. Local memory of the peer is wiped when it
	// expires.
	PeerCooldownTicks = 30

	// MaxExchanges force-closes any conversation regardless of vitals.
	MaxExchanges = 10

	// NaturalCloseExchanges is where the prompt starts steering toward a
	// wrap-up.
	NaturalCloseExchanges = 8

	// SummaryMinExchanges gates whether a finished conversation is worth
	// summarizing and persisting.
	SummaryMinExchanges = 5

	// UrgentMinExchanges / ModerateMinExchanges are the polite minimums
	// before a survival need is allowed to end a conversation.
	UrgentMinExchanges   = 3
	ModerateMinExchanges = 6
)
