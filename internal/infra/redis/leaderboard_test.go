package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeaderboard_KeepsBestScores(t *testing.T) {
	_, client := newClient(t)
	lb := NewLeaderboard(client, testPrefix)
	ctx := context.Background()

	require.NoError(t, lb.For("rachel").SubmitScore(ctx, 900))
	require.NoError(t, lb.For("rachel").SubmitScore(ctx, 300))
	require.NoError(t, lb.For("ross").SubmitScore(ctx, 1200))
	require.NoError(t, lb.For("joey").SubmitScore(ctx, 100))

	top, err := lb.Top(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []LeaderboardEntry{
		{PlayerID: "ross", Score: 1200},
		{PlayerID: "rachel", Score: 900},
	}, top)
}

func TestLeaderboard_ProgressIsMonotonic(t *testing.T) {
	_, client := newClient(t)
	lb := NewLeaderboard(client, testPrefix)
	ctx := context.Background()
	sink := lb.For("phoebe")

	require.NoError(t, sink.ReportProgress(ctx, "question_master", 30))
	require.NoError(t, sink.ReportProgress(ctx, "question_master", 5))
	require.NoError(t, sink.ReportProgress(ctx, "perfect_streak", 100))

	progress, err := lb.Progress(ctx, "phoebe")
	require.NoError(t, err)
	require.Equal(t, map[string]float64{
		"question_master": 30,
		"perfect_streak":  100,
	}, progress)
}
