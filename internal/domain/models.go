package domain

import (
	"fmt"
	"time"
)

// Category groups questions by theme. The set is closed.
type Category string

const (
	CategoryCharacters    Category = "Characters"
	CategoryRelationships Category = "Relationships"
	CategoryEpisodes      Category = "Episodes & Events"
	CategoryLocations     Category = "Locations & Places"
	CategoryCareer        Category = "Career & Work"
	CategoryFacts         Category = "Facts & Numbers"
	CategoryPersonal      Category = "Personal Details"
	CategoryQuotes        Category = "Memorable Quotes"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCharacters,
	CategoryRelationships,
	CategoryEpisodes,
	CategoryLocations,
	CategoryCareer,
	CategoryFacts,
	CategoryPersonal,
	CategoryQuotes,
}

// ParseCategory maps a display name to its Category.
func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

// Difficulty drives the base points of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Question is an immutable multiple-choice question.
type Question struct {
	ID           string     `json:"id"`
	Category     Category   `json:"category"`
	Prompt       string     `json:"prompt"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctIndex"`
	Season       int        `json:"season,omitempty"`  // 0 when unknown
	Episode      int        `json:"episode,omitempty"` // 0 when unknown
	Difficulty   Difficulty `json:"difficulty"`
	Explanation  string     `json:"explanation,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
}

// Validate checks the structural invariants of a question.
func (q Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidQuestion)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: %s has %d options", ErrInvalidQuestion, q.ID, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: %s correct index %d out of range", ErrInvalidQuestion, q.ID, q.CorrectIndex)
	}
	return nil
}

// Player is a roster entry in a multiplayer session.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Ready bool   `json:"ready"`
	Host  bool   `json:"host"`
}

// Outcome is the authoritative result of one resolved answer, broadcast to
// the other participants of a multiplayer session.
type Outcome struct {
	JoinCode      string `json:"joinCode"`
	QuestionID    string `json:"questionId"`
	ParticipantID string `json:"participantId"`
	ChosenIndex   int    `json:"chosenIndex"`
	IsCorrect     bool   `json:"isCorrect"`
	ScoreAfter    int    `json:"scoreAfter"`
}

// Deck is the question order a host published for its session. Seq grows
// with every publish so guests can tell a rematch from the game they played.
type Deck struct {
	Seq         int64    `json:"seq"`
	QuestionIDs []string `json:"questionIds"`
}

// AnswerSample is one statistics data point.
type AnswerSample struct {
	Correct   bool          `json:"correct"`
	TimeSpent time.Duration `json:"timeSpent"`
}

// Statistics accumulates per-answer samples. It only grows.
type Statistics struct {
	Samples []AnswerSample `json:"-"`
}

// Record appends a sample.
func (s *Statistics) Record(correct bool, spent time.Duration) {
	s.Samples = append(s.Samples, AnswerSample{Correct: correct, TimeSpent: spent})
}

// Summary derives the aggregate view from the recorded samples.
func (s Statistics) Summary() StatisticsSummary {
	sum := StatisticsSummary{TotalAnswered: len(s.Samples)}
	if sum.TotalAnswered == 0 {
		return sum
	}
	var total time.Duration
	for _, sample := range s.Samples {
		if sample.Correct {
			sum.Correct++
		}
		total += sample.TimeSpent
	}
	sum.Accuracy = float64(sum.Correct) / float64(sum.TotalAnswered)
	sum.AverageResponseTime = total / time.Duration(sum.TotalAnswered)
	return sum
}

// StatisticsSummary is the derived, snapshot-friendly view of Statistics.
type StatisticsSummary struct {
	TotalAnswered       int           `json:"totalAnswered"`
	Correct             int           `json:"correct"`
	Accuracy            float64       `json:"accuracy"`
	AverageResponseTime time.Duration `json:"averageResponseTime"`
}
