package services

import (
	"sync"

	"chatproxy/models"
)

// DefaultHistoryWindow is the number of turns kept per conversation
// (three user/assistant pairs).
const DefaultHistoryWindow = 6

// ConversationStore keeps per-conversation turn history in memory.
// It is safe for concurrent use. Nothing survives a process restart.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string][]models.Turn
	window        int

	locks keyedMutex
}

func NewConversationStore(window int) *ConversationStore {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	return &ConversationStore{
		conversations: make(map[string][]models.Turn),
		window:        window,
	}
}

// Get returns a copy of the history for id. Unknown ids yield an empty,
// non-nil slice.
func (s *ConversationStore) Get(id string) []models.Turn {
	turns, _ := s.Lookup(id)
	return turns
}

// Lookup is Get that also reports whether id is known.
func (s *ConversationStore) Lookup(id string) ([]models.Turn, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.conversations[id]
	return cloneTurns(turns), ok
}

// Create registers an empty conversation. It returns false if id already
// exists.
func (s *ConversationStore) Create(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; ok {
		return false
	}
	s.conversations[id] = []models.Turn{}
	return true
}

// Append records a user/assistant pair in that order, creating the entry
// if needed, then trims to the window. It returns the updated history.
func (s *ConversationStore) Append(id string, user, assistant models.Turn) []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations[id] = append(s.conversations[id], user, assistant)
	s.trimLocked(id)
	return cloneTurns(s.conversations[id])
}

// Trim drops the oldest turns of id beyond the window.
func (s *ConversationStore) Trim(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trimLocked(id)
}

func (s *ConversationStore) trimLocked(id string) {
	turns, ok := s.conversations[id]
	if !ok || len(turns) <= s.window {
		return
	}
	// Copy so the evicted prefix can be collected.
	kept := make([]models.Turn, s.window)
	copy(kept, turns[len(turns)-s.window:])
	s.conversations[id] = kept
}

// Delete removes id and reports whether it existed. Deleting an unknown
// id is a no-op.
func (s *ConversationStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return false
	}
	delete(s.conversations, id)
	return true
}

// Len returns the number of known conversations.
func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// Window returns the retention window in turns.
func (s *ConversationStore) Window() int {
	return s.window
}

// Lock serializes callers working on the same conversation id. Different
// ids never block each other. The returned func releases the lock.
func (s *ConversationStore) Lock(id string) (unlock func()) {
	return s.locks.lock(id)
}

func cloneTurns(turns []models.Turn) []models.Turn {
	out := make([]models.Turn, len(turns))
	copy(out, turns)
	return out
}

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()

		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
