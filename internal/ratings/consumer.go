package ratings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"livelens/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// ConsumerConfig configures the consumer group that recomputes aggregates
type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topic            string
	SessionTimeout   time.Duration
	HeartbeatTimeout time.Duration
	Workers          int
	MaxRetries       int
	RetryBackoff     time.Duration
}

func DefaultConsumerConfig(brokers []string, groupID, topic string) *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          brokers,
		GroupID:          groupID,
		Topic:            topic,
		SessionTimeout:   30 * time.Second,
		HeartbeatTimeout: 3 * time.Second,
		Workers:          2,
		MaxRetries:       3,
		RetryBackoff:     time.Second,
	}
}

// Consumer drains review.submitted events and recomputes the referenced seat
type Consumer struct {
	group      sarama.ConsumerGroup
	cfg        *ConsumerConfig
	aggregator *Aggregator
	log        *logger.Logger
	wg         sync.WaitGroup
}

func NewConsumer(cfg *ConsumerConfig, aggregator *Aggregator, log *logger.Logger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = cfg.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = cfg.HeartbeatTimeout
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{group: group, cfg: cfg, aggregator: aggregator, log: log}, nil
}

// Start launches the workers; they stop when ctx is cancelled
func (c *Consumer) Start(ctx context.Context) {
	c.log.Info("📥 starting seat aggregate consumers", "workers", c.cfg.Workers, "topic", c.cfg.Topic)

	go func() {
		for err := range c.group.Errors() {
			c.log.Error("consumer group error", "error", err)
		}
	}()

	handler := &reviewEventHandler{aggregator: c.aggregator, log: c.log, maxRetries: c.cfg.MaxRetries, backoff: c.cfg.RetryBackoff}
	for i := 0; i < c.cfg.Workers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			for ctx.Err() == nil {
				if err := c.group.Consume(ctx, []string{c.cfg.Topic}, handler); err != nil {
					c.log.Error("error consuming review events", "worker", workerID, "error", err)
					time.Sleep(time.Second)
				}
			}
		}(i)
	}
}

// Stop closes the group and waits for the workers to return
func (c *Consumer) Stop() error {
	err := c.group.Close()
	c.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type reviewEventHandler struct {
	aggregator *Aggregator
	log        *logger.Logger
	maxRetries int
	backoff    time.Duration
}

func (h *reviewEventHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *reviewEventHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *reviewEventHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.handle(session.Context(), message); err != nil {
				// A later mark on this partition commits past it; the batch job repairs the seat.
				h.log.WithError(err).Error("failed to process review event", "offset", message.Offset)
				continue
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *reviewEventHandler) handle(ctx context.Context, message *sarama.ConsumerMessage) error {
	var evt ReviewSubmitted
	if err := json.Unmarshal(message.Value, &evt); err != nil {
		// A malformed payload will never succeed, drop it.
		h.log.Warn("discarding malformed review event", "offset", message.Offset, "error", err)
		return nil
	}
	if evt.SeatID == uuid.Nil {
		h.log.Warn("discarding review event without seat", "review_id", evt.ReviewID)
		return nil
	}

	var err error
	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		if _, err = h.aggregator.RecomputeSeat(ctx, evt.SeatID, TriggerDeferred); err == nil {
			return nil
		}
		select {
		case <-time.After(h.backoff * time.Duration(1<<attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
