package app

// Achievement keys reported to the AchievementSink.
const (
	AchievementPerfectStreak  = "perfect_streak"
	AchievementHighScorer     = "high_scorer"
	AchievementQuestionMaster = "question_master"
)

const (
	perfectStreakTarget  = 10
	highScorerTarget     = 1000
	questionMasterTarget = 100
)

type progressView struct {
	streak   int
	score    int
	answered int
}

type achievementRule struct {
	key      string
	progress func(p progressView) float64
}

var achievementRules = []achievementRule{
	{
		key: AchievementPerfectStreak,
		progress: func(p progressView) float64 {
			if p.streak >= perfectStreakTarget {
				return 100
			}
			return 0
		},
	},
	{
		key: AchievementHighScorer,
		progress: func(p progressView) float64 {
			if p.score >= highScorerTarget {
				return 100
			}
			return 0
		},
	},
	{
		key: AchievementQuestionMaster,
		progress: func(p progressView) float64 {
			return min(100, float64(p.answered)*100/questionMasterTarget)
		},
	},
}

type achievementProgress struct {
	key     string
	percent float64
}

// pendingAchievements returns, in rule order, the achievements whose progress
// moved past what was last reported. Zero progress is never reported.
func pendingAchievements(p progressView, reported map[string]float64) []achievementProgress {
	var out []achievementProgress
	for _, rule := range achievementRules {
		pct := rule.progress(p)
		if pct <= 0 || pct <= reported[rule.key] {
			continue
		}
		out = append(out, achievementProgress{key: rule.key, percent: pct})
	}
	return out
}
