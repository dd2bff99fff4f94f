package telemetry_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trivia-service/internal/domain"
	"trivia-service/internal/event"
	"trivia-service/internal/telemetry"
)

func TestMetrics_CountsBusEvents(t *testing.T) {
	m := telemetry.NewMetrics()
	b := event.NewBus(nil)
	m.Subscribe(b)

	ctx := context.Background()
	b.Publish(ctx, domain.EventSessionStarted{Mode: domain.ModeSingle, Questions: 3})
	b.Publish(ctx, domain.EventAnswerResolved{Mode: domain.ModeSingle, Correct: true, Awarded: 300})
	b.Publish(ctx, domain.EventAnswerResolved{Mode: domain.ModeSingle})
	b.Publish(ctx, domain.EventAnswerResolved{Mode: domain.ModeSingle, TimedOut: true})
	b.Publish(ctx, domain.EventSessionEnded{Mode: domain.ModeSingle, Score: 300})
	b.Stop()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	got := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				key := f.GetName()
				for _, l := range metric.GetLabel() {
					key += "," + l.GetName() + "=" + l.GetValue()
				}
				got[key] = c.GetValue()
			}
		}
	}

	assert.Equal(t, 1.0, got["trivia_sessions_started_total,mode=single"])
	assert.Equal(t, 1.0, got["trivia_sessions_finished_total,mode=single"])
	assert.Equal(t, 1.0, got["trivia_answers_total,mode=single,result=correct"])
	assert.Equal(t, 1.0, got["trivia_answers_total,mode=single,result=wrong"])
	assert.Equal(t, 1.0, got["trivia_answers_total,mode=single,result=timeout"])
	assert.Equal(t, 300.0, got["trivia_points_awarded_total"])
}

func TestMetrics_Handler(t *testing.T) {
	m := telemetry.NewMetrics()
	b := event.NewBus(nil)
	m.Subscribe(b)
	b.Publish(context.Background(), domain.EventSessionStarted{Mode: domain.ModeMultiplayer})
	b.Stop()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `trivia_sessions_started_total{mode="multiplayer"} 1`)
}
