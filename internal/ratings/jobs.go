package ratings

import (
	"context"
	"sync"
	"time"

	"livelens/pkg/logger"
)

// BatchJob periodically recomputes every seat aggregate, repairing drift left
// by deferred events that were never processed.
type BatchJob struct {
	aggregator *Aggregator
	interval   time.Duration
	log        *logger.Logger
	done       chan struct{}
	stopOnce   sync.Once
}

func NewBatchJob(aggregator *Aggregator, interval time.Duration, log *logger.Logger) *BatchJob {
	return &BatchJob{
		aggregator: aggregator,
		interval:   interval,
		log:        log,
		done:       make(chan struct{}),
	}
}

// Start runs the job in the background until Stop or ctx cancellation
func (j *BatchJob) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		j.log.Info("started seat aggregate batch job", "interval", j.interval.String())

		for {
			select {
			case <-ticker.C:
				j.RunOnce(ctx)
			case <-j.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// RunOnce performs a single pass and returns the number of seats processed
func (j *BatchJob) RunOnce(ctx context.Context) int {
	start := time.Now()
	processed, err := j.aggregator.RecomputeAll(ctx)
	if err != nil {
		j.log.WithError(err).Error("seat aggregate batch failed", "processed", processed)
		return processed
	}
	j.log.Info("seat aggregate batch finished", "processed", processed, "duration", time.Since(start).String())
	return processed
}

func (j *BatchJob) Stop() {
	j.stopOnce.Do(func() { close(j.done) })
}
