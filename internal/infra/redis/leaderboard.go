package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Leaderboard keeps best scores in a sorted set and achievement progress in
// one sorted set per player. ZADD GT makes both monotonic.
type Leaderboard struct {
	redis  redis.UniversalClient
	prefix string
}

type LeaderboardEntry struct {
	PlayerID string
	Score    int
}

func NewLeaderboard(client redis.UniversalClient, prefix string) *Leaderboard {
	return &Leaderboard{redis: client, prefix: prefix}
}

// For returns the achievement sink of one player.
func (l *Leaderboard) For(playerID string) *PlayerSink {
	return &PlayerSink{board: l, playerID: playerID}
}

// Top returns the n best players, highest first.
func (l *Leaderboard) Top(ctx context.Context, n int64) ([]LeaderboardEntry, error) {
	res, err := l.redis.ZRevRangeWithScores(ctx, l.scoresKey(), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(res))
	for _, z := range res {
		entries = append(entries, LeaderboardEntry{
			PlayerID: z.Member.(string),
			Score:    int(z.Score),
		})
	}
	return entries, nil
}

// Progress returns the recorded achievement progress of a player.
func (l *Leaderboard) Progress(ctx context.Context, playerID string) (map[string]float64, error) {
	res, err := l.redis.ZRangeWithScores(ctx, l.achievementsKey(playerID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("get achievements: %w", err)
	}
	out := make(map[string]float64, len(res))
	for _, z := range res {
		out[z.Member.(string)] = z.Score
	}
	return out, nil
}

func (l *Leaderboard) scoresKey() string {
	return l.prefix + ":leaderboard"
}

func (l *Leaderboard) achievementsKey(playerID string) string {
	return fmt.Sprintf("%s:achievements:%s", l.prefix, playerID)
}

// PlayerSink implements app.AchievementSink for one player.
type PlayerSink struct {
	board    *Leaderboard
	playerID string
}

func (p *PlayerSink) ReportProgress(ctx context.Context, key string, percent float64) error {
	if err := p.board.redis.ZAddGT(ctx, p.board.achievementsKey(p.playerID), redis.Z{
		Score:  percent,
		Member: key,
	}).Err(); err != nil {
		return fmt.Errorf("report progress: %w", err)
	}
	return nil
}

func (p *PlayerSink) SubmitScore(ctx context.Context, value int) error {
	if err := p.board.redis.ZAddGT(ctx, p.board.scoresKey(), redis.Z{
		Score:  float64(value),
		Member: p.playerID,
	}).Err(); err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	return nil
}
