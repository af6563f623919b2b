package server

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestRegisterClient(t *testing.T) {
	s := NewServer(100)

	a := s.RegisterClient("alice")
	b := s.RegisterClient(strings.Repeat("x", 40))

	if a.ID == b.ID {
		t.Fatal("client IDs must be unique")
	}
	if a.SessionID == "" || a.SessionID == b.SessionID {
		t.Errorf("session ids %q and %q", a.SessionID, b.SessionID)
	}
	if a.Seed != 101 || b.Seed != 102 {
		t.Errorf("seeds = %d, %d; want 101, 102", a.Seed, b.Seed)
	}
	if len(b.Username) != 16 {
		t.Errorf("long username kept %d bytes", len(b.Username))
	}
	if s.Players() != 2 {
		t.Errorf("Players() = %d, want 2", s.Players())
	}

	s.UnregisterClient(a.ID)
	if _, ok := <-a.EventsCh; ok {
		t.Error("events channel should be closed on unregister")
	}
	if s.Players() != 1 {
		t.Errorf("Players() = %d after unregister", s.Players())
	}
	// Unknown IDs are ignored
	s.UnregisterClient(a.ID)
}

func TestLeaderboard(t *testing.T) {
	s := NewServer(1)
	var ids []int
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		ids = append(ids, s.RegisterClient(name).ID)
	}

	s.ReportScore(ids[0], 30)
	s.ReportScore(ids[1], 50)
	s.ReportScore(ids[2], 30) // Ties with a; a registered first
	s.ReportScore(ids[3], 0)  // Ignored
	s.ReportScore(ids[4], 10)
	s.ReportScore(ids[5], 70)
	s.ReportScore(ids[6], 20)
	s.ReportScore(999, 1000) // Unknown client

	got := s.TopScores()
	want := []string{"f:70", "b:50", "a:30", "c:30", "g:20"}
	if len(got) != len(want) {
		t.Fatalf("TopScores has %d entries, want %d", len(got), len(want))
	}
	for i, e := range got {
		if entry := fmt.Sprintf("%s:%d", e.Username, e.Score); entry != want[i] {
			t.Errorf("rank %d = %s, want %s", i+1, entry, want[i])
		}
	}

	// Returned slice is a copy
	got[0].Score = -1
	if s.TopScores()[0].Score != 70 {
		t.Error("TopScores exposed internal state")
	}
}

func TestShutdownNotifiesClients(t *testing.T) {
	s := NewServer(1)
	h := s.RegisterClient("alice")

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Errorf("event = %v", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("no shutdown event")
	}

	s.UnregisterClient(h.ID)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return after the last client left")
	}
}
