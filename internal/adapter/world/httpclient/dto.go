package httpclient

import (
	"strings"

	"wayfarer/internal/domain/world"
)

// Wire types mirror the server's JSON: camelCase envelope, snake_case
// inside nested records.

type lookResponse struct {
	Error               string             `json:"error,omitempty"`
	CanAct              bool               `json:"canAct"`
	CanTalk             bool               `json:"canTalk"`
	TextDescription     string             `json:"textDescription"`
	Character           wireCharacter      `json:"character"`
	NearbyCharacters    []wirePeer         `json:"nearbyCharacters"`
	RecentConversations []wireConversation `json:"recentConversations"`
	ValidMoves          []string           `json:"validMoves"`
	BlockedMoves        []string           `json:"blockedMoves"`
	PointsOfInterest    []wirePOI          `json:"pointsOfInterest"`
	World               wireWorld          `json:"world"`
}

type wireCharacter struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	HP     int `json:"hp"`
	MaxHP  int `json:"max_hp"`
	Energy int `json:"energy"`
	Hunger int `json:"hunger"`
	Level  int `json:"level"`
	XP     int `json:"xp"`
}

type wirePeer struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Emoji          string   `json:"emoji"`
	Distance       float64  `json:"distance"`
	Direction      []string `json:"direction"`
	LastActionTick int64    `json:"last_action_tick"`
	ChatFatigue    int      `json:"chat_fatigue"`
	CanTalk        bool     `json:"can_talk"`
}

type wireConversation struct {
	SpeakerID   string `json:"speaker_id"`
	SpeakerName string `json:"speaker_name"`
	ListenerID  string `json:"listener_id"`
	Message     string `json:"message"`
	Tick        int64  `json:"tick"`
}

type wirePOI struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Distance  float64 `json:"distance"`
	Direction string  `json:"direction"`
}

type wireWorld struct {
	Tick    int64 `json:"tick"`
	IsNight bool  `json:"isNight"`
}

type actionRequest struct {
	Action         string `json:"action"`
	IdempotencyKey string `json:"idempotency_key"`
	Direction      string `json:"direction,omitempty"`
	Message        string `json:"message,omitempty"`
	IsGoodbye      bool   `json:"is_goodbye,omitempty"`
	TargetID       string `json:"target_id,omitempty"`
	ListenerID     string `json:"listener_id,omitempty"`
}

type actionResponse struct {
	Error         string  `json:"error,omitempty"`
	CooldownTicks int64   `json:"cooldown_ticks,omitempty"`
	XP            *wireXP `json:"xp,omitempty"`
}

type wireXP struct {
	LeveledUp bool `json:"leveledUp"`
	NewLevel  int  `json:"newLevel"`
}

type summaryRecord struct {
	PeerID    string   `json:"peer_id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Topics    []string `json:"topics"`
	CreatedAt int64    `json:"created_at,omitempty"`
}

type saveSummaryResponse struct {
	Error string `json:"error,omitempty"`
	OK    bool   `json:"ok"`
}

func (r lookResponse) toDomain() world.Snapshot {
	snap := world.Snapshot{
		CanAct:          r.CanAct,
		CanTalk:         r.CanTalk,
		TextDescription: r.TextDescription,
		Character: world.Vitals{
			Position: world.Position{X: r.Character.X, Y: r.Character.Y},
			HP:       r.Character.HP,
			MaxHP:    r.Character.MaxHP,
			Energy:   r.Character.Energy,
			Hunger:   r.Character.Hunger,
			Level:    r.Character.Level,
			XP:       r.Character.XP,
		},
		Clock: world.Clock{Tick: r.World.Tick, IsNight: r.World.IsNight},
	}
	for _, p := range r.NearbyCharacters {
		hints := make([]world.Direction, 0, len(p.Direction))
		for _, d := range p.Direction {
			hints = append(hints, world.Direction(strings.ToLower(d)))
		}
		snap.NearbyPeers = append(snap.NearbyPeers, world.Peer{
			ID:             p.ID,
			Name:           p.Name,
			Emoji:          p.Emoji,
			Distance:       p.Distance,
			DirectionHints: hints,
			LastActionTick: p.LastActionTick,
			ChatFatigue:    p.ChatFatigue,
			CanTalk:        p.CanTalk,
		})
	}
	for _, c := range r.RecentConversations {
		snap.Conversations = append(snap.Conversations, world.ConversationEntry{
			SpeakerID:   c.SpeakerID,
			SpeakerName: c.SpeakerName,
			ListenerID:  c.ListenerID,
			Message:     c.Message,
			Tick:        c.Tick,
		})
	}
	for _, m := range r.ValidMoves {
		snap.ValidMoves = append(snap.ValidMoves, world.Direction(strings.ToLower(m)))
	}
	for _, m := range r.BlockedMoves {
		snap.BlockedMoves = append(snap.BlockedMoves, world.Direction(strings.ToLower(m)))
	}
	for _, poi := range r.PointsOfInterest {
		snap.PointsOfInterest = append(snap.PointsOfInterest, world.PointOfInterest{
			ID:        poi.ID,
			Kind:      world.POIKind(strings.ToLower(poi.Type)),
			Name:      poi.Name,
			Distance:  poi.Distance,
			Direction: world.Direction(strings.ToLower(poi.Direction)),
		})
	}
	return snap
}
