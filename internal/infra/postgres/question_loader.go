package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-service/internal/domain"
)

const selectQuestions = `
SELECT id, category, prompt, options, correct_index, season, episode, difficulty, explanation, image_url
FROM questions
ORDER BY position, id`

// QuestionLoader loads the question catalog from Postgres in stored order.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, selectQuestions)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		var (
			q                    domain.Question
			category, difficulty string
			options              []byte
		)
		if err := rows.Scan(
			&q.ID, &category, &q.Prompt, &options, &q.CorrectIndex,
			&q.Season, &q.Episode, &difficulty, &q.Explanation, &q.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Category = domain.Category(category)
		q.Difficulty = domain.Difficulty(difficulty)
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options of %s: %w", q.ID, err)
		}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(out) == 0 {
		return nil, domain.ErrNoQuestions
	}
	return out, nil
}
