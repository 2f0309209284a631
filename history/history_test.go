package history

import (
	"fmt"
	"sync"
	"testing"
)

func TestAppendAndWindowOrder(t *testing.T) {
	s := NewStore()
	for i := 0; i < 10; i++ {
		s.Append("alice", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}
	w := s.Window("alice", 5)
	if len(w) != 5 {
		t.Fatalf("window size = %d, want 5", len(w))
	}
	for i, turn := range w {
		want := fmt.Sprintf("q%d", i+5)
		if turn.Question != want {
			t.Errorf("window[%d].Question = %q, want %q", i, turn.Question, want)
		}
	}
}

func TestWindowShorterHistory(t *testing.T) {
	s := NewStore()
	s.Append("bob", "q", "a")
	if got := len(s.Window("bob", 5)); got != 1 {
		t.Fatalf("window size = %d, want 1", got)
	}
	if got := len(s.Window("nobody", 5)); got != 0 {
		t.Fatalf("window for unknown user = %d, want 0", got)
	}
}

func TestConcurrentAppendsAllPersist(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append("alice", fmt.Sprintf("q%d", i), "a")
		}(i)
	}
	wg.Wait()
	if got := s.Len("alice"); got != 50 {
		t.Fatalf("lost updates: len = %d, want 50", got)
	}
}

func TestClearAllIdempotent(t *testing.T) {
	s := NewStore()
	s.Append("alice", "q", "a")
	s.ClearAll()
	if got := s.Len("alice"); got != 0 {
		t.Fatalf("len after clear = %d, want 0", got)
	}
	s.ClearAll()
	if got := s.Len("alice"); got != 0 {
		t.Fatalf("len after second clear = %d, want 0", got)
	}
}
