package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"trivia-service/internal/domain"
)

// QuestionLoader fetches the catalog from a backing store (e.g., Postgres).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// QuestionRepository caches the catalog in Redis and falls back to a loader
// on cache miss. Questions are stored as JSON in one hash keyed by position:
// HSET {prefix}:questions {position} {json}
type QuestionRepository struct {
	client redis.UniversalClient
	loader QuestionLoader
	prefix string
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionRepository(client redis.UniversalClient, loader QuestionLoader, prefix string, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		prefix: prefix,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *QuestionRepository) Questions(ctx context.Context) ([]domain.Question, error) {
	if qs, ok := r.fromCache(ctx); ok {
		return qs, nil
	}

	result, err, _ := r.sf.Do(r.key(), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if qs, ok := r.fromCache(ctx); ok {
			return qs, nil
		}

		qs, err := r.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}

		// best-effort cache fill
		_ = r.store(ctx, qs)
		return qs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (r *QuestionRepository) fromCache(ctx context.Context) ([]domain.Question, bool) {
	fields, err := r.client.HGetAll(ctx, r.key()).Result()
	if err != nil || len(fields) == 0 {
		return nil, false
	}
	qs, err := decodeQuestions(fields)
	if err != nil {
		return nil, false
	}
	return qs, true
}

func (r *QuestionRepository) store(ctx context.Context, qs []domain.Question) error {
	key := r.key()
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	for i, q := range qs {
		raw, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("marshal question %s: %w", q.ID, err)
		}
		pipe.HSet(ctx, key, strconv.Itoa(i), raw)
	}
	if ttl := r.ttlWithJitter(); ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func decodeQuestions(fields map[string]string) ([]domain.Question, error) {
	type positioned struct {
		pos int
		q   domain.Question
	}
	items := make([]positioned, 0, len(fields))
	for field, raw := range fields {
		pos, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("question position %q: %w", field, err)
		}
		var q domain.Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return nil, fmt.Errorf("unmarshal question at %d: %w", pos, err)
		}
		items = append(items, positioned{pos: pos, q: q})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].pos < items[j].pos })

	qs := make([]domain.Question, 0, len(items))
	for _, it := range items {
		qs = append(qs, it.q)
	}
	return qs, nil
}

func (r *QuestionRepository) key() string {
	return r.prefix + ":questions"
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
