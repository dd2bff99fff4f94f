package redis

import (
	"context"
	"sync/atomic"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trivia-service/internal/domain"
	"trivia-service/internal/infra/memory"
)

const testPrefix = "trivia"

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

type countingLoader struct {
	memory.QuestionLoader
	calls atomic.Int32
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	l.calls.Add(1)
	return l.QuestionLoader.LoadQuestions(ctx)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:           "q1",
			Category:     domain.CategoryCharacters,
			Prompt:       "What is Joey's surname?",
			Options:      []string{"Tribbiani", "Geller", "Bing"},
			CorrectIndex: 0,
			Difficulty:   domain.DifficultyEasy,
		},
		{
			ID:           "q2",
			Category:     domain.CategoryQuotes,
			Prompt:       "Who says \"We were on a break!\"?",
			Options:      []string{"Chandler", "Ross"},
			CorrectIndex: 1,
			Season:       3,
			Episode:      15,
			Difficulty:   domain.DifficultyMedium,
			Explanation:  "Ross repeats it for years.",
		},
	}
}
