package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const taskTimeout = 30 * time.Second

// Task deletes stale rows and reports how many went.
type Task struct {
	Name string
	Run  func(ctx context.Context) (int64, error)
}

// CleanupJob runs its tasks once at start and then every interval until
// stopped. A failing task is logged and retried on the next tick.
type CleanupJob struct {
	interval time.Duration
	tasks    []Task
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewCleanupJob(interval time.Duration, tasks ...Task) *CleanupJob {
	return &CleanupJob{
		interval: interval,
		tasks:    tasks,
	}
}

func (j *CleanupJob) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.run(ctx)
	}()
	log.Info().Dur("interval", j.interval).Int("tasks", len(j.tasks)).Msg("cleanup job started")
}

// Stop waits for an in-flight sweep to finish.
func (j *CleanupJob) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	j.wg.Wait()
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *CleanupJob) sweep(ctx context.Context) {
	for _, task := range j.tasks {
		taskCtx, cancel := context.WithTimeout(ctx, taskTimeout)
		count, err := task.Run(taskCtx)
		cancel()

		switch {
		case err != nil:
			log.Error().Err(err).Str("task", task.Name).Msg("cleanup failed")
		case count > 0:
			log.Info().Int64("count", count).Str("task", task.Name).Msg("cleanup removed rows")
		}
	}
}
