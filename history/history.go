package history

import "sync"

// DefaultUser keys conversations for requests that omit a username.
const DefaultUser = "anonymous_user"

// Turn is one question/answer pair recorded for a user.
type Turn struct {
	Question string
	Answer   string
}

// Store keeps per-user conversation history in memory, ordered by
// append time. State is volatile: it lives for the process lifetime
// and is emptied only by ClearAll.
type Store struct {
	mu    sync.RWMutex
	users map[string][]Turn
}

func NewStore() *Store {
	return &Store{users: make(map[string][]Turn)}
}

// Append records a turn for user, creating the sequence if absent.
// Concurrent appends to the same user both persist.
func (s *Store) Append(user, question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user] = append(s.users[user], Turn{Question: question, Answer: answer})
}

// Window returns the last n turns for user in chronological order,
// fewer if the history is shorter. The result is a copy.
func (s *Store) Window(user string, n int) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.users[user]
	if n < len(turns) {
		turns = turns[len(turns)-n:]
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// Len reports the number of recorded turns for user.
func (s *Store) Len(user string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users[user])
}

// ClearAll drops every user's history. Idempotent.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string][]Turn)
}
