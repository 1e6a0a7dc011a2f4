package world

import "testing"

func TestSnapshot_NearestPOI(t *testing.T) {
	s := Snapshot{PointsOfInterest: []PointOfInterest{
		{ID: "far-food", Kind: POIFood, Distance: 9},
		{ID: "near-food", Kind: POIFood, Distance: 2},
		{ID: "camp", Kind: POIRest, Distance: 1},
	}}

	poi, ok := s.NearestPOI(POIFood)
	if !ok || poi.ID != "near-food" {
		t.Fatalf("expected near-food, got %+v ok=%v", poi, ok)
	}
	if _, ok := s.NearestPOI(POIPortal); ok {
		t.Fatalf("no portal visible")
	}
}

func TestSnapshot_LastMessageTo(t *testing.T) {
	s := Snapshot{Conversations: []ConversationEntry{
		{SpeakerID: "a", ListenerID: "b", Message: "first", Tick: 1},
		{SpeakerID: "b", ListenerID: "a", Message: "reply", Tick: 2},
		{SpeakerID: "a", ListenerID: "b", Message: "second", Tick: 3},
	}}

	e, ok := s.LastMessageTo("a", "b")
	if !ok || e.Message != "second" {
		t.Fatalf("expected the newest a->b entry, got %+v", e)
	}
	if _, ok := s.LastMessageTo("b", "c"); ok {
		t.Fatalf("no such exchange")
	}
}

func TestSnapshot_PairLogFiltersThirdParties(t *testing.T) {
	s := Snapshot{Conversations: []ConversationEntry{
		{SpeakerID: "a", ListenerID: "b", Tick: 1},
		{SpeakerID: "c", ListenerID: "b", Tick: 2},
		{SpeakerID: "b", ListenerID: "a", Tick: 3},
	}}

	log := s.PairLog("a", "b")
	if len(log) != 2 || log[0].Tick != 1 || log[1].Tick != 3 {
		t.Fatalf("unexpected pair log: %+v", log)
	}
}
