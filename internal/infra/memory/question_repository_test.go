package memory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"trivia-service/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(sampleQuestions())}
	repo := NewQuestionRepository(loader, time.Minute)

	qs, err := repo.Questions(context.Background())
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if loader.calls.Load() != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls.Load())
	}

	// callers may not mutate the cache
	qs[0].Prompt = "changed"

	qs, err = repo.Questions(context.Background())
	if err != nil {
		t.Fatalf("questions 2: %v", err)
	}
	if loader.calls.Load() != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls.Load())
	}
	if qs[0].Prompt != "Who is Emma's father?" {
		t.Fatalf("cache was mutated: %q", qs[0].Prompt)
	}
}

func TestQuestionRepositoryReloadsAfterTTL(t *testing.T) {
	loader := &countingLoader{QuestionLoader: NewStaticQuestionLoader(sampleQuestions())}
	repo := NewQuestionRepository(loader, time.Minute)

	now := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	if _, err := repo.Questions(context.Background()); err != nil {
		t.Fatalf("questions: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := repo.Questions(context.Background()); err != nil {
		t.Fatalf("questions after ttl: %v", err)
	}
	if loader.calls.Load() != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls.Load())
	}
}

func TestQuestionRepositoryPropagatesLoaderError(t *testing.T) {
	repo := NewQuestionRepository(NewStaticQuestionLoader(nil), time.Minute)

	_, err := repo.Questions(context.Background())
	if !errors.Is(err, domain.ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

type countingLoader struct {
	QuestionLoader
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
			Category:     domain.CategoryRelationships,
			Prompt:       "Who is Emma's father?",
			Options:      []string{"Joey", "Ross", "Chandler", "Gunther"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyEasy,
		},
		{
			ID:           "q2",
			Category:     domain.CategoryLocations,
			Prompt:       "Where does Rachel work first?",
			Options:      []string{"Central Perk", "Bloomingdale's"},
			CorrectIndex: 0,
			Season:       1,
			Difficulty:   domain.DifficultyMedium,
		},
	}
}
