package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trivia-service/internal/domain"
	"trivia-service/internal/scoring"
)

var difficulties = []domain.Difficulty{
	domain.DifficultyEasy,
	domain.DifficultyMedium,
	domain.DifficultyHard,
}

func TestBasePoints(t *testing.T) {
	assert.Equal(t, 100, scoring.BasePoints(domain.DifficultyEasy))
	assert.Equal(t, 200, scoring.BasePoints(domain.DifficultyMedium))
	assert.Equal(t, 300, scoring.BasePoints(domain.DifficultyHard))
	assert.Equal(t, 200, scoring.BasePoints(""))
}

func TestScore_Bounds(t *testing.T) {
	for _, tpq := range []int{1, 7, 10, 30, 45} {
		for _, d := range difficulties {
			base := scoring.BasePoints(d)

			assert.Equal(t, base, scoring.Score(d, 0, tpq), "tpq=%d d=%s at deadline", tpq, d)
			assert.Equal(t, scoring.MaxBonus, scoring.Score(d, tpq, tpq)-base, "tpq=%d d=%s instant", tpq, d)

			prev := -1
			for s := 0; s <= tpq; s++ {
				got := scoring.Score(d, s, tpq)
				assert.GreaterOrEqual(t, got, base)
				assert.LessOrEqual(t, got, base+scoring.MaxBonus)
				assert.GreaterOrEqual(t, got, prev, "score must not decrease with more time left")
				prev = got
			}
		}
	}
}

func TestBonus(t *testing.T) {
	tests := map[string]struct {
		remaining, tpq int
		want           int
	}{
		"half time":         {remaining: 15, tpq: 30, want: 50},
		"rounds to nearest": {remaining: 1, tpq: 30, want: 3},
		"rounds half up":    {remaining: 1, tpq: 8, want: 13},
		"clamps negative":   {remaining: -4, tpq: 30, want: 0},
		"clamps overflow":   {remaining: 90, tpq: 30, want: 100},
		"zero budget":       {remaining: 5, tpq: 0, want: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoring.Bonus(tt.remaining, tt.tpq))
		})
	}
}

func TestAward_WrongScoresZero(t *testing.T) {
	for _, d := range difficulties {
		assert.Zero(t, scoring.Award(false, d, 30, 30))
		assert.Equal(t, scoring.Score(d, 12, 30), scoring.Award(true, d, 12, 30))
	}
}

func TestStreak_Record(t *testing.T) {
	var s scoring.Streak
	highest := 0
	for _, correct := range []bool{true, true, false, true, true, true, false, false, true} {
		s = s.Record(correct)
		if !correct {
			assert.Zero(t, s.Current)
		}
		assert.GreaterOrEqual(t, s.Highest, highest)
		highest = s.Highest
	}
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 3, s.Highest)
}

func TestStreak_WrongThenTwoCorrect(t *testing.T) {
	s := scoring.Streak{}.Record(false).Record(true).Record(true)
	assert.Equal(t, scoring.Streak{Current: 2, Highest: 2}, s)
}
