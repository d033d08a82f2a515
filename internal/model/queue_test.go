package model

import (
	"errors"
	"testing"
)

func TestQueuePairsLongestWaitingFirst(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"alice", "bob", "carol"} {
		if err := q.AddPlayer(Player{ID: id}); err != nil {
			t.Fatalf("AddPlayer(%s) error: %v", id, err)
		}
	}
	if err := q.AddPlayer(Player{ID: "bob"}); !errors.Is(err, ErrAlreadyQueued) {
		t.Errorf("AddPlayer(bob) again error = %v, want ErrAlreadyQueued", err)
	}

	p1, p2, ok := q.GetNextPair()
	if !ok || p1.ID != "alice" || p2.ID != "bob" {
		t.Errorf("GetNextPair() = %s, %s, %v; want alice, bob", p1.ID, p2.ID, ok)
	}
	if q.Size() != 1 || !q.Contains("carol") {
		t.Errorf("queue after pairing: size %d, carol queued %v", q.Size(), q.Contains("carol"))
	}
	if _, _, ok := q.GetNextPair(); ok {
		t.Error("GetNextPair() paired a lone player")
	}
}

func TestQueueRemovePlayer(t *testing.T) {
	q := NewQueue()
	q.AddPlayer(Player{ID: "alice"})
	q.AddPlayer(Player{ID: "bob"})

	if !q.RemovePlayer("alice") {
		t.Error("RemovePlayer(alice) = false")
	}
	if q.RemovePlayer("alice") {
		t.Error("RemovePlayer(alice) twice = true")
	}
	if q.Contains("alice") || q.Size() != 1 {
		t.Errorf("alice still queued or wrong size %d", q.Size())
	}
}
