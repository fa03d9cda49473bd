package ratings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"livelens/pkg/logger"
)

// ErrNoRepairJob is returned when deferred aggregation is requested without a
// batch interval. A failed event would otherwise leave its seat stale.
var ErrNoRepairJob = errors.New("deferred aggregation requires a positive batch interval")

// EventConsumer drains review events in the background
type EventConsumer interface {
	Start(ctx context.Context)
	Stop() error
}

// DeferredOptions builds the parts of deferred aggregation. Factories are
// called in order and nothing is left running when one of them fails.
type DeferredOptions struct {
	NewPublisher  func() (Publisher, error)
	NewConsumer   func() (EventConsumer, error)
	Aggregator    *Aggregator
	BatchInterval time.Duration
	Log           *logger.Logger
}

// Deferred is a running deferred aggregation pipeline: the publisher used by
// review submission, the consumer recomputing seats, and the batch job
// repairing seats whose events failed.
type Deferred struct {
	Publisher Publisher
	consumer  EventConsumer
	job       *BatchJob
	log       *logger.Logger
}

// StartDeferred starts the consumer and the repair job. Callers fall back to
// sync aggregation when it returns an error.
func StartDeferred(ctx context.Context, opts DeferredOptions) (*Deferred, error) {
	if opts.Log == nil {
		opts.Log = logger.GetDefault()
	}
	if opts.BatchInterval <= 0 {
		return nil, ErrNoRepairJob
	}

	publisher, err := opts.NewPublisher()
	if err != nil {
		return nil, fmt.Errorf("failed to create review event publisher: %w", err)
	}

	consumer, err := opts.NewConsumer()
	if err != nil {
		if cerr := publisher.Close(); cerr != nil {
			opts.Log.Warn("failed to close review event publisher", "error", cerr)
		}
		return nil, fmt.Errorf("failed to create review event consumer: %w", err)
	}

	consumer.Start(ctx)
	job := NewBatchJob(opts.Aggregator, opts.BatchInterval, opts.Log)
	job.Start(ctx)

	return &Deferred{Publisher: publisher, consumer: consumer, job: job, log: opts.Log}, nil
}

// Stop halts the repair job, drains the consumer and closes the publisher
func (d *Deferred) Stop() {
	d.job.Stop()
	if err := d.consumer.Stop(); err != nil {
		d.log.Error("error stopping review event consumer", "error", err)
	}
	if err := d.Publisher.Close(); err != nil {
		d.log.Error("error closing review event publisher", "error", err)
	}
}
