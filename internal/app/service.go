package app

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trivia-service/internal/domain"
)

// SessionRepository abstracts where live engines are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Put(sessionID string, e *Engine)
	Get(sessionID string) (*Engine, bool)
	Delete(sessionID string)
}

// OpenRequest describes the caller a new engine is created for.
type OpenRequest struct {
	ParticipantID string
	DisplayName   string
	Entitlements  domain.Entitlements
}

// EngineFactory builds an engine for one caller.
type EngineFactory func(req OpenRequest) *Engine

// GameService owns the engines of connected callers and relays multiplayer
// outcomes between them.
type GameService struct {
	sessions  SessionRepository
	newEngine EngineFactory
	transport SessionTransport
	log       *zap.Logger

	mu     sync.Mutex
	relays map[string]context.CancelFunc
	hosts  map[string]string // join code -> host session id
}

func NewGameService(sessions SessionRepository, factory EngineFactory, transport SessionTransport, log *zap.Logger) *GameService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GameService{
		sessions:  sessions,
		newEngine: factory,
		transport: transport,
		log:       log,
		relays:    make(map[string]context.CancelFunc),
		hosts:     make(map[string]string),
	}
}

// Open creates an engine for a caller and returns its session id.
func (s *GameService) Open(req OpenRequest) (string, domain.Snapshot) {
	sessionID := uuid.NewString()
	if req.ParticipantID == "" {
		req.ParticipantID = sessionID
	}
	e := s.newEngine(req)
	s.sessions.Put(sessionID, e)
	return sessionID, e.Snapshot()
}

func (s *GameService) engine(sessionID string) (*Engine, error) {
	e, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return e, nil
}

func (s *GameService) SelectCategory(_ context.Context, sessionID string, c domain.Category) error {
	e, err := s.engine(sessionID)
	if err != nil {
		return err
	}
	return e.SelectCategory(c)
}

// Start starts a session. Multiplayer hosts are registered so that local
// joiners land on their roster.
func (s *GameService) Start(ctx context.Context, sessionID string, mode domain.Mode, category *domain.Category) error {
	e, err := s.engine(sessionID)
	if err != nil {
		return err
	}
	if err := e.Start(ctx, mode, category); err != nil {
		return err
	}

	snap := e.Snapshot()
	if snap.Mode != domain.ModeMultiplayer || snap.JoinCode == "" {
		return nil
	}
	if isHost(snap) {
		s.mu.Lock()
		s.hosts[snap.JoinCode] = sessionID
		s.mu.Unlock()
	}
	s.startRelay(sessionID, e, snap)
	return nil
}

// Join makes the caller a participant of the session registered under code.
func (s *GameService) Join(ctx context.Context, sessionID, code, name string) error {
	e, err := s.engine(sessionID)
	if err != nil {
		return err
	}
	if err := e.Join(ctx, code, name); err != nil {
		return err
	}

	snap := e.Snapshot()
	if host, ok := s.localHost(code); ok {
		if err := host.AddParticipant(snap.ParticipantID, name); err != nil {
			s.log.Warn("add participant to host roster",
				zap.String("join_code", code),
				zap.String("participant", snap.ParticipantID),
				zap.Error(err),
			)
		}
	}
	s.startRelay(sessionID, e, snap)
	return nil
}

// SetReady marks the caller ready on its own roster and on the host's.
func (s *GameService) SetReady(_ context.Context, sessionID string, ready bool) error {
	e, err := s.engine(sessionID)
	if err != nil {
		return err
	}
	snap := e.Snapshot()
	if err := e.SetReady(snap.ParticipantID, ready); err != nil {
		return err
	}
	if host, ok := s.localHost(snap.JoinCode); ok && host != e {
		if err := host.SetReady(snap.ParticipantID, ready); err != nil && !errors.Is(err, domain.ErrParticipantNotFound) {
			return err
		}
	}
	return nil
}

func (s *GameService) SubmitAnswer(_ context.Context, sessionID string, index int) error {
	e, err := s.engine(sessionID)
	if err != nil {
		return err
	}
	e.SubmitAnswer(index)
	return nil
}

func (s *GameService) Advance(_ context.Context, sessionID string) error {
	e, err := s.engine(sessionID)
	if err != nil {
		return err
	}
	e.Advance()
	return nil
}

func (s *GameService) Cancel(_ context.Context, sessionID string) error {
	e, err := s.engine(sessionID)
	if err != nil {
		return err
	}
	s.stopRelay(sessionID)
	s.forgetHost(sessionID)
	e.Cancel()
	return nil
}

func (s *GameService) Snapshot(_ context.Context, sessionID string) (domain.Snapshot, error) {
	e, err := s.engine(sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return e.Snapshot(), nil
}

// Subscribe returns a channel of snapshots for a session.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *GameService) Subscribe(_ context.Context, sessionID string) (<-chan domain.Snapshot, func(), error) {
	e, err := s.engine(sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := e.Subscribe()
	return ch, cancel, nil
}

// Close tears the engine down and forgets the session.
func (s *GameService) Close(_ context.Context, sessionID string) {
	e, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	s.stopRelay(sessionID)
	s.forgetHost(sessionID)
	e.Close()
	s.sessions.Delete(sessionID)
}

func (s *GameService) localHost(code string) (*Engine, bool) {
	if code == "" {
		return nil, false
	}
	s.mu.Lock()
	hostID, ok := s.hosts[code]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	return s.sessions.Get(hostID)
}

func (s *GameService) forgetHost(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, id := range s.hosts {
		if id == sessionID {
			delete(s.hosts, code)
		}
	}
}

// startRelay forwards outcomes of other participants into e when the
// transport can deliver them.
func (s *GameService) startRelay(sessionID string, e *Engine, snap domain.Snapshot) {
	sub, ok := s.transport.(OutcomeSubscriber)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	if prev, ok := s.relays[sessionID]; ok {
		prev()
	}
	s.relays[sessionID] = cancel
	s.mu.Unlock()

	outcomes, err := sub.SubscribeOutcomes(ctx, snap.JoinCode, snap.ParticipantID)
	if err != nil {
		s.log.Warn("subscribe outcomes",
			zap.String("join_code", snap.JoinCode),
			zap.Error(err),
		)
		s.stopRelay(sessionID)
		return
	}
	go func() {
		for o := range outcomes {
			e.ApplyOutcome(o)
		}
	}()
}

func (s *GameService) stopRelay(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.relays[sessionID]; ok {
		cancel()
		delete(s.relays, sessionID)
	}
}

func isHost(snap domain.Snapshot) bool {
	for _, p := range snap.Players {
		if p.ID == snap.ParticipantID {
			return p.Host
		}
	}
	return false
}
