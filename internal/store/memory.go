package store

import "sync"

// MemoryStore keeps records in process. Used by tests and headless runs.
type MemoryStore struct {
	mu  sync.Mutex
	rec record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) HighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec.HighScore, nil
}

func (m *MemoryStore) SetHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec.HighScore = score
	return nil
}

func (m *MemoryStore) Leaderboard() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.rec.Leaderboard), nil
}

func (m *MemoryStore) AppendScore(e Entry) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec.Leaderboard = insert(m.rec.Leaderboard, e)
	return clone(m.rec.Leaderboard), nil
}
