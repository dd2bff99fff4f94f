// Package scoring holds the pure point and streak rules of a trivia session.
package scoring

import (
	"github.com/shopspring/decimal"

	"trivia-service/internal/domain"
)

// MaxBonus is awarded for an instant answer and decays linearly to zero.
const MaxBonus = 100

var basePoints = map[domain.Difficulty]int{
	domain.DifficultyEasy:   100,
	domain.DifficultyMedium: 200,
	domain.DifficultyHard:   300,
}

// BasePoints returns the fixed points for a difficulty. Unknown difficulties
// score as medium, matching the content default.
func BasePoints(d domain.Difficulty) int {
	if p, ok := basePoints[d]; ok {
		return p
	}
	return basePoints[domain.DifficultyMedium]
}

// Bonus maps the time left on the clock to 0..MaxBonus, rounding half away
// from zero.
func Bonus(secondsRemaining, timePerQuestion int) int {
	if timePerQuestion <= 0 {
		return 0
	}
	if secondsRemaining < 0 {
		secondsRemaining = 0
	}
	if secondsRemaining > timePerQuestion {
		secondsRemaining = timePerQuestion
	}
	bonus := decimal.NewFromInt(int64(secondsRemaining) * MaxBonus).
		Div(decimal.NewFromInt(int64(timePerQuestion))).
		Round(0)
	return int(bonus.IntPart())
}

// Score is the award for a correct answer.
func Score(d domain.Difficulty, secondsRemaining, timePerQuestion int) int {
	return BasePoints(d) + Bonus(secondsRemaining, timePerQuestion)
}

// Award is Score for a correct answer and zero otherwise.
func Award(correct bool, d domain.Difficulty, secondsRemaining, timePerQuestion int) int {
	if !correct {
		return 0
	}
	return Score(d, secondsRemaining, timePerQuestion)
}

// Streak counts consecutive correct answers.
type Streak struct {
	Current int
	Highest int
}

// Record returns the streak after one more answer.
func (s Streak) Record(correct bool) Streak {
	if !correct {
		return Streak{Highest: s.Highest}
	}
	s.Current++
	s.Highest = max(s.Highest, s.Current)
	return s
}
