package server

import (
	"testing"
	"time"
)

func TestRegisterUnregister(t *testing.T) {
	s := NewServer(nil)

	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")
	if a.ID == b.ID {
		t.Fatalf("duplicate client id %d", a.ID)
	}
	if a.SessionID == b.SessionID {
		t.Error("session ids should differ")
	}
	if got := s.ActiveClients(); got != 2 {
		t.Fatalf("ActiveClients = %d, want 2", got)
	}

	s.UnregisterClient(a.ID)
	if got := s.ActiveClients(); got != 1 {
		t.Errorf("ActiveClients = %d, want 1", got)
	}
	if _, ok := <-a.EventsCh; ok {
		t.Error("events channel should be closed after unregister")
	}

	// Unknown and repeated ids are no-ops.
	s.UnregisterClient(a.ID)
	s.UnregisterClient(999)
	if got := s.ActiveClients(); got != 1 {
		t.Errorf("ActiveClients = %d, want 1", got)
	}
}

func TestTopScores(t *testing.T) {
	s := NewServer(nil)
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")
	c := s.RegisterClient("carol")
	s.RegisterClient("dave") // never scores

	s.ReportScore(a.ID, 7)
	s.ReportScore(a.ID, 3) // lower run does not replace the best
	s.ReportScore(b.ID, 12)
	s.ReportScore(c.ID, 7)
	s.ReportScore(42, 100) // unknown client

	top := s.TopScores(10)
	want := []struct {
		user  string
		score int
	}{{"bob", 12}, {"alice", 7}, {"carol", 7}}
	if len(top) != len(want) {
		t.Fatalf("TopScores len = %d, want %d: %+v", len(top), len(want), top)
	}
	for i, w := range want {
		if top[i].Username != w.user || top[i].Score != w.score {
			t.Errorf("TopScores[%d] = %s/%d, want %s/%d", i, top[i].Username, top[i].Score, w.user, w.score)
		}
	}

	if got := s.TopScores(1); len(got) != 1 || got[0].Username != "bob" {
		t.Errorf("TopScores(1) = %+v", got)
	}
	if got := s.TopScores(0); len(got) != 0 {
		t.Errorf("TopScores(0) = %+v", got)
	}

	s.UnregisterClient(b.ID)
	if got := s.TopScores(10); len(got) != 2 || got[0].Username != "alice" {
		t.Errorf("after disconnect TopScores = %+v", got)
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := NewServer(nil)
	h := s.RegisterClient("alice")

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Fatalf("event = %v, want shutdown", ev.Type)
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

func TestShutdownTimeout(t *testing.T) {
	s := NewServer(nil)
	s.RegisterClient("stubborn")

	start := time.Now()
	s.Shutdown(50 * time.Millisecond)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Shutdown took %v, want about the timeout", elapsed)
	}
}
