package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-service/internal/app"
)

// EngineStore is a Redis-aware implementation of app.SessionRepository.
// Engines hold timers and subscriber channels, so they stay in a local map;
// Redis only carries a liveness key per session so other instances can see
// which sessions are open.
type EngineStore struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	mu      sync.RWMutex
	engines map[string]*app.Engine
}

func NewEngineStore(client redis.UniversalClient, prefix string, ttl time.Duration) *EngineStore {
	return &EngineStore{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		engines: make(map[string]*app.Engine),
	}
}

func (s *EngineStore) Put(sessionID string, e *app.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engines[sessionID] = e
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(sessionID), "1", s.ttl).Err()
}

// Get returns a local engine and refreshes its liveness key.
func (s *EngineStore) Get(sessionID string) (*app.Engine, bool) {
	s.mu.RLock()
	e, ok := s.engines[sessionID]
	s.mu.RUnlock()
	if ok && s.ttl > 0 {
		_ = s.client.Expire(context.Background(), s.key(sessionID), s.ttl).Err()
	}
	return e, ok
}

func (s *EngineStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.engines, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

func (s *EngineStore) key(sessionID string) string {
	return s.prefix + ":engine:" + sessionID
}
