package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"trivia-service/internal/domain"
)

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID           string   `bun:"id,pk"`
	Position     int      `bun:"position,notnull"`
	Category     string   `bun:"category,notnull"`
	Prompt       string   `bun:"prompt,notnull"`
	Options      []string `bun:"options,type:jsonb,notnull"`
	CorrectIndex int      `bun:"correct_index,notnull"`
	Season       int      `bun:"season,notnull"`
	Episode      int      `bun:"episode,notnull"`
	Difficulty   string   `bun:"difficulty,notnull"`
	Explanation  string   `bun:"explanation,notnull"`
	ImageURL     string   `bun:"image_url,notnull"`
}

// Seed upserts questions into the catalog. Slice order becomes the stored
// order, which decides the free tier.
func Seed(ctx context.Context, db bun.IDB, questions []domain.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}

	rows := make([]questionRow, 0, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return 0, err
		}
		difficulty := q.Difficulty
		if difficulty == "" {
			difficulty = domain.DifficultyMedium
		}
		rows = append(rows, questionRow{
			ID:           q.ID,
			Position:     i,
			Category:     string(q.Category),
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Season:       q.Season,
			Episode:      q.Episode,
			Difficulty:   string(difficulty),
			Explanation:  q.Explanation,
			ImageURL:     q.ImageURL,
		})
	}

	res, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("position = EXCLUDED.position").
		Set("category = EXCLUDED.category").
		Set("prompt = EXCLUDED.prompt").
		Set("options = EXCLUDED.options").
		Set("correct_index = EXCLUDED.correct_index").
		Set("season = EXCLUDED.season").
		Set("episode = EXCLUDED.episode").
		Set("difficulty = EXCLUDED.difficulty").
		Set("explanation = EXCLUDED.explanation").
		Set("image_url = EXCLUDED.image_url").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed questions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return len(rows), nil
	}
	return int(n), nil
}
