package memory

import (
	"math/rand"
	"sort"

	"wayfarer/internal/app/ports"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PeerMemory is everything remembered about one peer: messages we sent
// them this engagement, topics already touched, and long-term summaries
// persisted on the server.
type PeerMemory struct {
	PeerID    string
	Sent      []string
	Topics    map[string]bool
	Summaries []ports.StoredSummary
}

// Store keys PeerMemory by peer id. The map is LRU-bounded so unbounded
// peer churn in a busy world cannot grow the agent's footprint.
type Store struct {
	peers   *lru.Cache[string, *PeerMemory]
	sentCap int
}

func NewStore(peerCap, sentCap int) (*Store, error) {
	if peerCap <= 0 {
		peerCap = 64
	}
	if sentCap <= 0 {
		sentCap = 20
	}
	cache, err := lru.New[string, *PeerMemory](peerCap)
	if err != nil {
		return nil, err
	}
	return &Store{peers: cache, sentCap: sentCap}, nil
}

// Peer returns the memory for a peer, creating it on first contact.
func (s *Store) Peer(peerID string) *PeerMemory {
	if m, ok := s.peers.Get(peerID); ok {
		return m
	}
	m := &PeerMemory{PeerID: peerID, Topics: map[string]bool{}}
	s.peers.Add(peerID, m)
	return m
}

// RecordOutgoing appends a sent message (bounded, oldest dropped) and
// folds any vocabulary topics it mentions into the peer's topic set.
func (s *Store) RecordOutgoing(peerID, text string) {
	m := s.Peer(peerID)
	m.Sent = append(m.Sent, text)
	if len(m.Sent) > s.sentCap {
		m.Sent = m.Sent[len(m.Sent)-s.sentCap:]
	}
	for _, topic := range ExtractTopics(text) {
		m.Topics[topic] = true
	}
}

// Forget wipes the conversational short-term memory for a peer once its
// goodbye cooldown expires, so the next meeting re-introduces naturally.
// Long-term summaries survive; they are durable on the server.
func (s *Store) Forget(peerID string) {
	m, ok := s.peers.Get(peerID)
	if !ok {
		return
	}
	m.Sent = nil
	m.Topics = map[string]bool{}
}

// AddSummary caches a persisted summary locally, newest last.
func (s *Store) AddSummary(sum ports.StoredSummary) {
	if sum.PeerID == "" {
		return
	}
	m := s.Peer(sum.PeerID)
	m.Summaries = append(m.Summaries, sum)
	sort.SliceStable(m.Summaries, func(i, j int) bool {
		return m.Summaries[i].CreatedAt.Before(m.Summaries[j].CreatedAt)
	})
}

// DiscussedTopics lists topics already covered with this peer, sorted for
// stable prompt text.
func (s *Store) DiscussedTopics(peerID string) []string {
	m, ok := s.peers.Get(peerID)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(m.Topics))
	for t := range m.Topics {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// UnusedTopics suggests vocabulary topics not yet touched with this peer.
func (s *Store) UnusedTopics(peerID string) []string {
	m, ok := s.peers.Get(peerID)
	discussed := map[string]bool{}
	if ok {
		discussed = m.Topics
	}
	out := make([]string, 0, len(Vocabulary))
	for _, t := range Vocabulary {
		if !discussed[t] {
			out = append(out, t)
		}
	}
	return out
}

// RecallSummaries picks the newest `recent` summaries plus a random sample
// of `older` from the rest, so long-term recall feels natural rather than
// exhaustive.
func (s *Store) RecallSummaries(peerID string, recent, older int, rng *rand.Rand) []ports.StoredSummary {
	m, ok := s.peers.Get(peerID)
	if !ok || len(m.Summaries) == 0 {
		return nil
	}
	all := m.Summaries
	if recent < 0 {
		recent = 0
	}
	if recent >= len(all) {
		out := make([]ports.StoredSummary, len(all))
		copy(out, all)
		return out
	}
	out := make([]ports.StoredSummary, 0, recent+older)
	rest := all[:len(all)-recent]
	if older > 0 && len(rest) > 0 && rng != nil {
		picks := rng.Perm(len(rest))
		if older > len(picks) {
			older = len(picks)
		}
		idx := picks[:older]
		sort.Ints(idx)
		for _, i := range idx {
			out = append(out, rest[i])
		}
	}
	out = append(out, all[len(all)-recent:]...)
	return out
}
