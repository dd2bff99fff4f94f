package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"trivia-service/internal/domain"
)

const outcomeBuffer = 32

// Transport is an in-process session hub. Hosts register join codes,
// participants join them, and outcomes fan out to every other subscriber.
type Transport struct {
	maxPlayers int

	mu       sync.Mutex
	rnd      *rand.Rand
	sessions map[string]*hubSession
}

type hubSession struct {
	participants []string
	deck         domain.Deck
	subscribers  map[chan domain.Outcome]string
}

func NewTransport(maxPlayers int) *Transport {
	return &Transport{
		maxPlayers: maxPlayers,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions:   make(map[string]*hubSession),
	}
}

// CreateSession registers a new six-digit join code. The host takes the
// first roster slot.
func (t *Transport) CreateSession(_ context.Context, _ domain.Mode) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for attempt := 0; attempt < 10; attempt++ {
		code := fmt.Sprintf("%06d", 100000+t.rnd.Intn(900000))
		if _, taken := t.sessions[code]; taken {
			continue
		}
		t.sessions[code] = &hubSession{subscribers: make(map[chan domain.Outcome]string)}
		return code, nil
	}
	return "", fmt.Errorf("allocate join code: all attempts collided")
}

func (t *Transport) JoinSession(_ context.Context, code string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[code]
	if !ok {
		return "", domain.ErrJoinCodeNotFound
	}
	if t.maxPlayers > 0 && len(s.participants)+1 >= t.maxPlayers {
		return "", domain.ErrSessionFull
	}
	id := uuid.NewString()
	s.participants = append(s.participants, id)
	return id, nil
}

// PublishDeck replaces the question order of code and bumps its sequence.
func (t *Transport) PublishDeck(_ context.Context, code string, ids []string) (domain.Deck, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[code]
	if !ok {
		return domain.Deck{}, domain.ErrJoinCodeNotFound
	}
	s.deck = domain.Deck{Seq: s.deck.Seq + 1, QuestionIDs: append([]string(nil), ids...)}
	return s.deck, nil
}

func (t *Transport) Deck(_ context.Context, code string) (domain.Deck, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[code]
	if !ok {
		return domain.Deck{}, domain.ErrJoinCodeNotFound
	}
	if s.deck.Seq == 0 {
		return domain.Deck{}, domain.ErrDeckNotReady
	}
	return domain.Deck{Seq: s.deck.Seq, QuestionIDs: append([]string(nil), s.deck.QuestionIDs...)}, nil
}

// BroadcastOutcome delivers o to every subscriber except its sender. A
// subscriber with a full buffer misses the outcome.
func (t *Transport) BroadcastOutcome(_ context.Context, o domain.Outcome) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[o.JoinCode]
	if !ok {
		return domain.ErrJoinCodeNotFound
	}
	for ch, participant := range s.subscribers {
		if participant == o.ParticipantID {
			continue
		}
		select {
		case ch <- o:
		default:
		}
	}
	return nil
}

// SubscribeOutcomes streams outcomes of the other participants until ctx is
// done.
func (t *Transport) SubscribeOutcomes(ctx context.Context, code, participantID string) (<-chan domain.Outcome, error) {
	t.mu.Lock()
	s, ok := t.sessions[code]
	if !ok {
		t.mu.Unlock()
		return nil, domain.ErrJoinCodeNotFound
	}
	ch := make(chan domain.Outcome, outcomeBuffer)
	s.subscribers[ch] = participantID
	t.mu.Unlock()

	go func() {
		<-ctx.Done()
		t.mu.Lock()
		delete(s.subscribers, ch)
		close(ch)
		t.mu.Unlock()
	}()
	return ch, nil
}
