package memory

import (
	"sync"

	"trivia-service/internal/app"
)

// EngineStore is an in-memory implementation of app.SessionRepository.
type EngineStore struct {
	mu      sync.RWMutex
	engines map[string]*app.Engine
}

func NewEngineStore() *EngineStore {
	return &EngineStore{
		engines: make(map[string]*app.Engine),
	}
}

func (s *EngineStore) Put(sessionID string, e *app.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engines[sessionID] = e
}

func (s *EngineStore) Get(sessionID string) (*app.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.engines[sessionID]
	return e, ok
}

func (s *EngineStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.engines, sessionID)
}

// Len reports how many engines are live.
func (s *EngineStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.engines)
}
