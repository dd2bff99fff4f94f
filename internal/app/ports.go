package app

import (
	"context"

	"trivia-service/internal/domain"
	"trivia-service/internal/event"
)

// QuestionSource returns the questions the caller is entitled to, optionally
// filtered by category.
type QuestionSource interface {
	FetchAvailable(ctx context.Context, ent domain.Entitlements, category *domain.Category) ([]domain.Question, error)
	// Lookup returns the questions with the given ids, in order, regardless
	// of entitlements.
	Lookup(ctx context.Context, ids []string) ([]domain.Question, error)
}

// AchievementSink records achievement progress and final scores.
type AchievementSink interface {
	ReportProgress(ctx context.Context, key string, percent float64) error
	SubmitScore(ctx context.Context, value int) error
}

// SessionTransport carries the multiplayer contract between participants.
type SessionTransport interface {
	CreateSession(ctx context.Context, mode domain.Mode) (string, error)
	BroadcastOutcome(ctx context.Context, o domain.Outcome) error
	// JoinSession registers a participant under code and returns its id.
	JoinSession(ctx context.Context, code string) (string, error)
	// PublishDeck stores the host's question order under code.
	PublishDeck(ctx context.Context, code string, ids []string) (domain.Deck, error)
	// Deck returns the order last published under code, or ErrDeckNotReady.
	Deck(ctx context.Context, code string) (domain.Deck, error)
}

// OutcomeSubscriber is implemented by transports that can deliver the
// outcomes of other participants.
type OutcomeSubscriber interface {
	SubscribeOutcomes(ctx context.Context, code, participantID string) (<-chan domain.Outcome, error)
}

// Publisher fans engine events out to observers such as metrics.
type Publisher interface {
	Publish(ctx context.Context, e event.Event)
}
