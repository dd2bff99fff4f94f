// Package catalog decides which questions a caller may play.
package catalog

import (
	"context"
	"fmt"

	"trivia-service/internal/domain"
)

// FreeQuestions is the size of the free tier: the first questions of the
// catalog in stored order.
const FreeQuestions = 20

// Repository returns the full catalog in stored order.
type Repository interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// Source filters the catalog by entitlements and category.
type Source struct {
	repo Repository
	free int
}

func NewSource(repo Repository) *Source {
	return &Source{repo: repo, free: FreeQuestions}
}

// FetchAvailable returns the unlocked questions, optionally restricted to one
// category. Order follows the catalog; callers shuffle.
func (s *Source) FetchAvailable(ctx context.Context, ent domain.Entitlements, category *domain.Category) ([]domain.Question, error) {
	all, err := s.repo.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(all))
	out := make([]domain.Question, 0, len(all))
	for i, q := range all {
		if i >= s.free && !ent.Unlocks(q.Season) {
			continue
		}
		if category != nil && q.Category != *category {
			continue
		}
		if _, dup := seen[q.ID]; dup {
			continue
		}
		seen[q.ID] = struct{}{}
		out = append(out, q)
	}
	return out, nil
}

// Lookup resolves ids against the whole catalog, keeping their order. Guests
// play the deck their host published, so entitlements are not applied.
func (s *Source) Lookup(ctx context.Context, ids []string) ([]domain.Question, error) {
	all, err := s.repo.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	byID := make(map[string]domain.Question, len(all))
	for _, q := range all {
		if _, dup := byID[q.ID]; !dup {
			byID[q.ID] = q
		}
	}
	out := make([]domain.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrQuestionNotFound, id)
		}
		out = append(out, q)
	}
	return out, nil
}
