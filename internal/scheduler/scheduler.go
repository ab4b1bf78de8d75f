// Package scheduler promotes scheduled content once its publish time has passed.
package scheduler

import (
	"context"
	"log"
	"time"
)

// Publisher is implemented by the article and video services.
type Publisher interface {
	PublishDue(ctx context.Context) ([]string, error)
}

type Job struct {
	Name      string
	Publisher Publisher
}

type Scheduler struct {
	interval time.Duration
	jobs     []Job
}

func New(interval time.Duration, jobs ...Job) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{interval: interval, jobs: jobs}
}

// Run ticks until ctx is cancelled. The first pass runs immediately.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("[Scheduler] publishing due content every %s", s.interval)
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		s.RunOnce(ctx)
		select {
		case <-ctx.Done():
			log.Println("[Scheduler] stopped")
			return
		case <-t.C:
		}
	}
}

// RunOnce runs every job once. A failing job does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) map[string][]string {
	out := make(map[string][]string, len(s.jobs))
	for _, j := range s.jobs {
		ids, err := j.Publisher.PublishDue(ctx)
		if err != nil {
			log.Printf("[Scheduler] %s: %v", j.Name, err)
		}
		if len(ids) > 0 {
			log.Printf("[Scheduler] published %d %s: %v", len(ids), j.Name, ids)
		}
		out[j.Name] = ids
	}
	return out
}
