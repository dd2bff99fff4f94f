package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestOutbox_RunsJobsInOrder(t *testing.T) {
	o := newOutbox(zap.NewNop(), 16, time.Second)

	var mu sync.Mutex
	var got []int
	for i := 0; i < 10; i++ {
		o.push("job", func(context.Context) error {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		})
	}

	assert.True(t, o.close(time.Second))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestOutbox_FailuresDoNotStopTheQueue(t *testing.T) {
	o := newOutbox(zap.NewNop(), 4, time.Second)

	ran := false
	o.push("fails", func(context.Context) error { return errors.New("sink offline") })
	o.push("panics", func(context.Context) error { panic("boom") })
	o.push("runs", func(context.Context) error {
		ran = true
		return nil
	})

	assert.True(t, o.close(time.Second))
	assert.True(t, ran)
}

func TestOutbox_DropsWhenFullAndAfterClose(t *testing.T) {
	o := newOutbox(zap.NewNop(), 1, time.Second)

	release := make(chan struct{})
	started := make(chan struct{})
	o.push("blocker", func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	calls := 0
	o.push("queued", func(context.Context) error { calls++; return nil })
	o.push("dropped", func(context.Context) error { calls++; return nil })
	close(release)

	assert.True(t, o.close(time.Second))
	assert.Equal(t, 1, calls)

	o.push("late", func(context.Context) error { calls++; return nil })
	assert.Equal(t, 1, calls)
}

func TestOutbox_CloseGivesUpOnSlowJobs(t *testing.T) {
	o := newOutbox(zap.NewNop(), 1, time.Second)

	release := make(chan struct{})
	defer close(release)
	o.push("slow", func(context.Context) error {
		<-release
		return nil
	})

	assert.False(t, o.close(20*time.Millisecond))
}
