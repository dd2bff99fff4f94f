package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"trivia-service/internal/domain"
)

const (
	maxConcurrent   = 100
	codeAttempts    = 10
	outcomeEvent    = "outcome.resolved"
	outcomeBuffer   = 32
	cleanupDeadline = time.Second
)

// Notification is the envelope published on participant channels.
type Notification struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type TransportConfig struct {
	Redis      redis.UniversalClient
	Prefix     string
	TTL        time.Duration
	MaxPlayers int
}

// Transport implements the multiplayer contract on Redis:
//
//	{prefix}:session:{code}              join code marker (SETNX)
//	{prefix}:session:{code}:roster       joined participants (list)
//	{prefix}:session:{code}:subscribers  participants listening for outcomes (set)
//	{prefix}:session:{code}:deck         published question order (hash: seq, ids)
//	{prefix}:user:{participant}          pub/sub channel per participant
type Transport struct {
	redis      redis.UniversalClient
	prefix     string
	ttl        time.Duration
	maxPlayers int

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewTransport(c TransportConfig) *Transport {
	return &Transport{
		redis:      c.Redis,
		prefix:     c.Prefix,
		ttl:        c.TTL,
		maxPlayers: c.MaxPlayers,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateSession claims a free six-digit join code.
func (t *Transport) CreateSession(ctx context.Context, mode domain.Mode) (string, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code := t.newCode()
		ok, err := t.redis.SetNX(ctx, t.sessionKey(code), string(mode), t.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("create session: %w", err)
		}
		if ok {
			return code, nil
		}
	}
	return "", errors.New("create session: all join codes collided")
}

// JoinSession appends a new participant to the roster. The host holds one
// slot that is not on the roster.
func (t *Transport) JoinSession(ctx context.Context, code string) (string, error) {
	exists, err := t.redis.Exists(ctx, t.sessionKey(code)).Result()
	if err != nil {
		return "", fmt.Errorf("join session: %w", err)
	}
	if exists == 0 {
		return "", domain.ErrJoinCodeNotFound
	}

	id := uuid.NewString()
	rosterKey := t.rosterKey(code)
	n, err := t.redis.RPush(ctx, rosterKey, id).Result()
	if err != nil {
		return "", fmt.Errorf("join session: %w", err)
	}
	if t.maxPlayers > 0 && int(n)+1 > t.maxPlayers {
		if err := t.redis.LRem(ctx, rosterKey, 1, id).Err(); err != nil {
			return "", fmt.Errorf("join session: undo roster push: %w", err)
		}
		return "", domain.ErrSessionFull
	}
	if t.ttl > 0 {
		t.redis.Expire(ctx, rosterKey, t.ttl)
	}
	return id, nil
}

// Roster returns the joined participants in join order.
func (t *Transport) Roster(ctx context.Context, code string) ([]string, error) {
	ids, err := t.redis.LRange(ctx, t.rosterKey(code), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	return ids, nil
}

// PublishDeck stores the host's question order and bumps its sequence in one
// transaction.
func (t *Transport) PublishDeck(ctx context.Context, code string, ids []string) (domain.Deck, error) {
	exists, err := t.redis.Exists(ctx, t.sessionKey(code)).Result()
	if err != nil {
		return domain.Deck{}, fmt.Errorf("publish deck: %w", err)
	}
	if exists == 0 {
		return domain.Deck{}, domain.ErrJoinCodeNotFound
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("publish deck: %w", err)
	}

	key := t.deckKey(code)
	var seq *redis.IntCmd
	_, err = t.redis.TxPipelined(ctx, func(p redis.Pipeliner) error {
		seq = p.HIncrBy(ctx, key, "seq", 1)
		p.HSet(ctx, key, "ids", data)
		if t.ttl > 0 {
			p.Expire(ctx, key, t.ttl)
		}
		return nil
	})
	if err != nil {
		return domain.Deck{}, fmt.Errorf("publish deck: %w", err)
	}
	return domain.Deck{Seq: seq.Val(), QuestionIDs: append([]string(nil), ids...)}, nil
}

func (t *Transport) Deck(ctx context.Context, code string) (domain.Deck, error) {
	fields, err := t.redis.HGetAll(ctx, t.deckKey(code)).Result()
	if err != nil {
		return domain.Deck{}, fmt.Errorf("get deck: %w", err)
	}
	if len(fields) == 0 {
		exists, err := t.redis.Exists(ctx, t.sessionKey(code)).Result()
		if err != nil {
			return domain.Deck{}, fmt.Errorf("get deck: %w", err)
		}
		if exists == 0 {
			return domain.Deck{}, domain.ErrJoinCodeNotFound
		}
		return domain.Deck{}, domain.ErrDeckNotReady
	}

	seq, err := strconv.ParseInt(fields["seq"], 10, 64)
	if err != nil {
		return domain.Deck{}, fmt.Errorf("decode deck seq: %w", err)
	}
	deck := domain.Deck{Seq: seq}
	if err := json.Unmarshal([]byte(fields["ids"]), &deck.QuestionIDs); err != nil {
		return domain.Deck{}, fmt.Errorf("decode deck ids: %w", err)
	}
	return deck, nil
}

// BroadcastOutcome publishes o to every other subscribed participant.
func (t *Transport) BroadcastOutcome(ctx context.Context, o domain.Outcome) error {
	members, err := t.redis.SMembers(ctx, t.subscribersKey(o.JoinCode)).Result()
	if err != nil {
		return fmt.Errorf("broadcast outcome: %w", err)
	}

	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("pubsub: marshal %s: %v", outcomeEvent, err)
	}
	payload, err := json.Marshal(Notification{Event: outcomeEvent, Data: data})
	if err != nil {
		return fmt.Errorf("pubsub: marshal %s: %v", outcomeEvent, err)
	}

	var eg errgroup.Group
	eg.SetLimit(maxConcurrent)

	for _, member := range members {
		if member == o.ParticipantID {
			continue
		}
		eg.Go(func() error {
			return t.redis.Publish(ctx, t.userChannel(member), payload).Err()
		})
	}

	return eg.Wait()
}

// SubscribeOutcomes streams outcomes addressed to participantID until ctx is
// done.
func (t *Transport) SubscribeOutcomes(ctx context.Context, code, participantID string) (<-chan domain.Outcome, error) {
	ps := t.redis.Subscribe(ctx, t.userChannel(participantID))
	// wait for the subscription to be confirmed so no outcome is missed
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe outcomes: %w", err)
	}
	if err := t.redis.SAdd(ctx, t.subscribersKey(code), participantID).Err(); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe outcomes: %w", err)
	}

	out := make(chan domain.Outcome, outcomeBuffer)
	go func() {
		defer close(out)
		defer func() {
			cleanupCtx, cancel := context.WithTimeout(context.Background(), cleanupDeadline)
			defer cancel()
			_ = t.redis.SRem(cleanupCtx, t.subscribersKey(code), participantID).Err()
			_ = ps.Close()
		}()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				o, ok := decodeOutcome(msg.Payload)
				if !ok {
					continue
				}
				select {
				case out <- o:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func decodeOutcome(payload string) (domain.Outcome, bool) {
	var n Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil || n.Event != outcomeEvent {
		return domain.Outcome{}, false
	}
	var o domain.Outcome
	if err := json.Unmarshal(n.Data, &o); err != nil {
		return domain.Outcome{}, false
	}
	return o, true
}

func (t *Transport) newCode() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("%06d", 100000+t.rnd.Intn(900000))
}

func (t *Transport) sessionKey(code string) string {
	return fmt.Sprintf("%s:session:%s", t.prefix, code)
}

func (t *Transport) rosterKey(code string) string {
	return fmt.Sprintf("%s:session:%s:roster", t.prefix, code)
}

func (t *Transport) deckKey(code string) string {
	return fmt.Sprintf("%s:session:%s:deck", t.prefix, code)
}

func (t *Transport) subscribersKey(code string) string {
	return fmt.Sprintf("%s:session:%s:subscribers", t.prefix, code)
}

func (t *Transport) userChannel(participant string) string {
	return fmt.Sprintf("%s:user:%s", t.prefix, participant)
}
