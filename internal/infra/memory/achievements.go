package memory

import (
	"context"
	"sync"
)

// AchievementBoard keeps achievement progress and best scores per player.
type AchievementBoard struct {
	mu       sync.RWMutex
	progress map[string]map[string]float64
	best     map[string]int
}

func NewAchievementBoard() *AchievementBoard {
	return &AchievementBoard{
		progress: make(map[string]map[string]float64),
		best:     make(map[string]int),
	}
}

// For returns the app.AchievementSink of one player.
func (b *AchievementBoard) For(playerID string) *PlayerAchievements {
	return &PlayerAchievements{board: b, playerID: playerID}
}

// Progress returns a copy of the recorded progress of a player.
func (b *AchievementBoard) Progress(playerID string) map[string]float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]float64, len(b.progress[playerID]))
	for k, v := range b.progress[playerID] {
		out[k] = v
	}
	return out
}

// BestScore returns the highest submitted score of a player.
func (b *AchievementBoard) BestScore(playerID string) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	score, ok := b.best[playerID]
	return score, ok
}

type PlayerAchievements struct {
	board    *AchievementBoard
	playerID string
}

// ReportProgress keeps the highest percent seen per key.
func (p *PlayerAchievements) ReportProgress(_ context.Context, key string, percent float64) error {
	p.board.mu.Lock()
	defer p.board.mu.Unlock()
	m, ok := p.board.progress[p.playerID]
	if !ok {
		m = make(map[string]float64)
		p.board.progress[p.playerID] = m
	}
	m[key] = max(m[key], percent)
	return nil
}

func (p *PlayerAchievements) SubmitScore(_ context.Context, value int) error {
	p.board.mu.Lock()
	defer p.board.mu.Unlock()
	if best, ok := p.board.best[p.playerID]; !ok || value > best {
		p.board.best[p.playerID] = value
	}
	return nil
}
