package service_test

import (
	"context"
	"errors"
	"sync"

	"studyquest/internal/modules/progress/domain"
)

type memorySnapshots struct {
	mu    sync.Mutex
	data  map[string]domain.Snapshot
	saves int
	fail  error
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{data: map[string]domain.Snapshot{}}
}

func (m *memorySnapshots) Load(_ context.Context, userID string) (domain.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.data[userID]
	return snap, ok, nil
}

func (m *memorySnapshots) Save(_ context.Context, userID string, snap domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.fail != nil {
		return m.fail
	}
	m.data[userID] = snap
	return nil
}

func (m *memorySnapshots) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *memorySnapshots) get(userID string) (domain.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.data[userID]
	return snap, ok
}

type staticIdentity struct {
	mu     sync.Mutex
	userID string
}

func (s *staticIdentity) CurrentUserID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.userID != ""
}

func (s *staticIdentity) set(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

type fixedJitter struct {
	gain int
	pick int
}

func (f fixedJitter) ProgressGain() int { return f.gain }
func (f fixedJitter) Pick(int) int      { return f.pick }

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequenceIDs) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "id-" + string(rune('a'+s.n-1))
}

var errSaveFailed = errors.New("save failed")
