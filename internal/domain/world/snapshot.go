package world

// Snapshot is one poll response: everything the character can currently
// perceive. It is immutable once produced; the engine only derives
// decisions from it and never writes back.
type Snapshot struct {
	CanAct           bool                `json:"can_act"`
	CanTalk          bool                `json:"can_talk"`
	Character        Vitals              `json:"character"`
	NearbyPeers      []Peer              `json:"nearby_peers"`
	Conversations    []ConversationEntry `json:"recent_conversations"`
	ValidMoves       []Direction         `json:"valid_moves"`
	BlockedMoves     []Direction         `json:"blocked_moves"`
	PointsOfInterest []PointOfInterest   `json:"points_of_interest"`
	Clock            Clock               `json:"world"`
	TextDescription  string              `json:"text_description"`
}

type Vitals struct {
	Position Position `json:"position"`
	HP       int      `json:"hp"`
	MaxHP    int      `json:"max_hp"`
	Energy   int      `json:"energy"`
	Hunger   int      `json:"hunger"`
	Level    int      `json:"level"`
	XP       int      `json:"xp"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Peer is another character within perception range. Distance is in tile
// units; DirectionHints are the server's suggested approach directions.
// ChatFatigue counts how many exchanges the server has recently settled
// with this peer; the server rejects talk once its own limit is hit.
type Peer struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Emoji          string      `json:"emoji"`
	Distance       float64     `json:"distance"`
	DirectionHints []Direction `json:"direction"`
	LastActionTick int64       `json:"last_action_tick"`
	ChatFatigue    int         `json:"chat_fatigue"`
	CanTalk        bool        `json:"can_talk"`
}

// ConversationEntry is one line of the server-side conversation log.
// The log may contain exchanges the agent is not a party to.
type ConversationEntry struct {
	SpeakerID   string `json:"speaker_id"`
	SpeakerName string `json:"speaker_name"`
	ListenerID  string `json:"listener_id"`
	Message     string `json:"message"`
	Tick        int64  `json:"tick"`
}

// Involves reports whether the entry belongs to the conversation between
// the two given character ids, in either direction.
func (e ConversationEntry) Involves(a, b string) bool {
	return (e.SpeakerID == a && e.ListenerID == b) || (e.SpeakerID == b && e.ListenerID == a)
}

type POIKind string

const (
	POIRest   POIKind = "rest"
	POIFood   POIKind = "food"
	POIPortal POIKind = "portal"
)

type PointOfInterest struct {
	ID        string    `json:"id"`
	Kind      POIKind   `json:"kind"`
	Name      string    `json:"name"`
	Distance  float64   `json:"distance"`
	Direction Direction `json:"direction"`
}

type Clock struct {
	Tick    int64 `json:"tick"`
	IsNight bool  `json:"is_night"`
}

// NearestPOI returns the closest point of interest of the given kind and
// whether one was visible at all.
func (s Snapshot) NearestPOI(kind POIKind) (PointOfInterest, bool) {
	best := PointOfInterest{}
	found := false
	for _, poi := range s.PointsOfInterest {
		if poi.Kind != kind {
			continue
		}
		if !found || poi.Distance < best.Distance {
			best = poi
			found = true
		}
	}
	return best, found
}

// LastMessageTo returns the newest log entry spoken to the given listener
// by the given speaker, scanning from the end of the log.
func (s Snapshot) LastMessageTo(speakerID, listenerID string) (ConversationEntry, bool) {
	for i := len(s.Conversations) - 1; i >= 0; i-- {
		e := s.Conversations[i]
		if e.SpeakerID == speakerID && e.ListenerID == listenerID {
			return e, true
		}
	}
	return ConversationEntry{}, false
}

// PairLog filters the conversation log down to the exchange between the
// two given ids, preserving tick order.
func (s Snapshot) PairLog(a, b string) []ConversationEntry {
	out := make([]ConversationEntry, 0, len(s.Conversations))
	for _, e := range s.Conversations {
		if e.Involves(a, b) {
			out = append(out, e)
		}
	}
	return out
}
