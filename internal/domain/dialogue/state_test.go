package dialogue

import "testing"

func TestShouldInitiate_LowerIDSpeaksFirst(t *testing.T) {
	if !ShouldInitiate("alice", "bob") {
		t.Fatalf("expected lower id to initiate")
	}
	if ShouldInitiate("bob", "alice") {
		t.Fatalf("expected higher id to wait")
	}
}

func TestConversation_TurnTaking(t *testing.T) {
	c := NewConversation("peer-1")
	if c.Engaged() {
		t.Fatalf("fresh conversation must not be engaged")
	}

	c.BeginTalking(10)
	if c.Phase != PhaseTalking || !c.Engaged() {
		t.Fatalf("expected talking phase, got %s", c.Phase)
	}

	c.MarkSent(10)
	if c.Phase != PhaseWaiting {
		t.Fatalf("expected waiting after send, got %s", c.Phase)
	}
	if c.Exchanges != 1 {
		t.Fatalf("expected 1 exchange, got %d", c.Exchanges)
	}

	c.ReplyArrived(14)
	if c.Phase != PhaseTalking {
		t.Fatalf("expected talking after reply, got %s", c.Phase)
	}
	if c.LastProcessedTick != 14 {
		t.Fatalf("expected processed tick 14, got %d", c.LastProcessedTick)
	}
}

func TestConversation_WaitTimeout(t *testing.T) {
	c := NewConversation("peer-1")
	c.BeginTalking(10)
	c.MarkSent(10)

	if c.WaitTimedOut(22, ReplyTimeoutTicks) {
		t.Fatalf("window not yet exceeded at tick 22")
	}
	if !c.WaitTimedOut(23, ReplyTimeoutTicks) {
		t.Fatalf("expected timeout past tick %d", 10+ReplyTimeoutTicks)
	}
}

func TestConversation_CooldownLifecycle(t *testing.T) {
	c := NewConversation("peer-1")
	c.BeginTalking(5)
	c.MarkSent(5)
	c.Disengage(20, PeerCooldownTicks)

	if c.Engaged() {
		t.Fatalf("disengaged conversation must not hold the slot")
	}
	if !c.InCooldown(30) {
		t.Fatalf("expected cooldown at tick 30")
	}
	if c.CooldownExpired(30) {
		t.Fatalf("cooldown must not be expired at tick 30")
	}
	if !c.CooldownExpired(50) {
		t.Fatalf("expected cooldown expired at tick 50")
	}

	c.Reset()
	if c.Phase != PhaseIdle || c.Exchanges != 0 || c.LastProcessedTick != 0 {
		t.Fatalf("reset must wipe engagement state: %+v", c)
	}
	if c.PeerID != "peer-1" {
		t.Fatalf("reset must keep the peer id")
	}
}

func TestConversation_AwaitInitiative(t *testing.T) {
	c := NewConversation("peer-1")
	c.AwaitInitiative(100, InitiateWaitTicks)

	if c.InitiativeExpired(105) {
		t.Fatalf("deadline not reached at tick 105")
	}
	if !c.InitiativeExpired(106) {
		t.Fatalf("expected expired initiative at tick 106")
	}
}

func TestConversation_HoldForReturnKeepsFirstWait(t *testing.T) {
	c := NewConversation("peer-1")
	c.BeginTalking(10)
	c.HoldForReturn(12)
	c.HoldForReturn(18)

	if c.Phase != PhaseWaiting {
		t.Fatalf("expected waiting, got %s", c.Phase)
	}
	if c.WaitingSince != 12 {
		t.Fatalf("expected wait anchored at 12, got %d", c.WaitingSince)
	}
}
