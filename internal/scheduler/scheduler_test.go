package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakePublisher struct {
	calls atomic.Int32
	ids   []string
	err   error
}

func (f *fakePublisher) PublishDue(context.Context) ([]string, error) {
	f.calls.Add(1)
	return f.ids, f.err
}

func TestRunOnce_ContinuesAfterFailure(t *testing.T) {
	broken := &fakePublisher{err: errors.New("firestore down")}
	ok := &fakePublisher{ids: []string{"a1", "a2"}}
	s := New(time.Minute, Job{Name: "videos", Publisher: broken}, Job{Name: "articles", Publisher: ok})

	out := s.RunOnce(context.Background())

	assert.Equal(t, []string{"a1", "a2"}, out["articles"])
	assert.Empty(t, out["videos"])
	assert.Equal(t, int32(1), broken.calls.Load())
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	p := &fakePublisher{}
	s := New(10*time.Millisecond, Job{Name: "articles", Publisher: p})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
