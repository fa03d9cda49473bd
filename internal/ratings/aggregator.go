package ratings

import (
	"context"
	"fmt"
	"time"

	"livelens/internal/shared/apperrors"
	"livelens/pkg/logger"
	"livelens/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Recompute triggers, used as metric labels
const (
	TriggerSync     = "sync"
	TriggerDeferred = "deferred"
	TriggerBatch    = "batch"
)

// Aggregator maintains seat_aggregates from the reviews table. Every
// recomputation reads the full review set of a seat, so repeating it is
// harmless.
type Aggregator struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAggregator(db *gorm.DB, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Aggregator{db: db, log: log}
}

// WithTx returns an aggregator writing through tx
func (a *Aggregator) WithTx(tx *gorm.DB) *Aggregator {
	return &Aggregator{db: tx, log: a.log}
}

type seatStats struct {
	ReviewCount  int64
	AvgVisual    *float64
	AvgSound     *float64
	AvgValue     *float64
	AvgOverall   *float64
	AvgPricePaid *float64
}

// RecomputeSeat rebuilds the aggregate of one seat. It returns nil when the
// seat has no reviews, in which case any stale aggregate row is removed.
func (a *Aggregator) RecomputeSeat(ctx context.Context, seatID uuid.UUID, trigger string) (*SeatAggregate, error) {
	if a.db == nil {
		return nil, apperrors.NotConfigured("database")
	}
	var agg *SeatAggregate

	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stats seatStats
		err := tx.Table("reviews").
			Select(`COUNT(*) AS review_count,
				AVG(rating_visual) AS avg_visual,
				AVG(rating_sound) AS avg_sound,
				AVG(rating_value) AS avg_value,
				AVG(overall_rating) AS avg_overall,
				AVG(price_paid) AS avg_price_paid`).
			Where("seat_id = ?", seatID).
			Scan(&stats).Error
		if err != nil {
			return fmt.Errorf("failed to read review stats: %w", err)
		}

		if stats.ReviewCount == 0 {
			if err := tx.Where("seat_id = ?", seatID).Delete(&SeatAggregate{}).Error; err != nil {
				return fmt.Errorf("failed to clear seat aggregate: %w", err)
			}
			return nil
		}

		agg = &SeatAggregate{
			SeatID:       seatID,
			AvgVisual:    deref(stats.AvgVisual),
			AvgSound:     deref(stats.AvgSound),
			AvgValue:     deref(stats.AvgValue),
			AvgOverall:   deref(stats.AvgOverall),
			AvgPricePaid: stats.AvgPricePaid,
			ReviewCount:  stats.ReviewCount,
			LastUpdated:  time.Now().UTC(),
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "seat_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"avg_visual", "avg_sound", "avg_value", "avg_overall", "avg_price_paid", "review_count", "last_updated"}),
		}).Create(agg).Error
		if err != nil {
			return fmt.Errorf("failed to upsert seat aggregate: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AggregateRecomputes.WithLabelValues(trigger).Inc()
	count := int64(0)
	if agg != nil {
		count = agg.ReviewCount
	}
	a.log.LogAggregateRecomputed(ctx, seatID.String(), count)
	return agg, nil
}

// RecomputeAll refreshes every seat that has reviews or a (possibly stale)
// aggregate row and returns how many seats were processed.
func (a *Aggregator) RecomputeAll(ctx context.Context) (int, error) {
	if a.db == nil {
		return 0, apperrors.NotConfigured("database")
	}
	rows, err := a.db.WithContext(ctx).
		Raw("SELECT seat_id FROM reviews UNION SELECT seat_id FROM seat_aggregates").
		Rows()
	if err != nil {
		return 0, fmt.Errorf("failed to list seats: %w", err)
	}

	var seatIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan seat id: %w", err)
		}
		seatIDs = append(seatIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("failed to list seats: %w", err)
	}
	rows.Close()

	for i, id := range seatIDs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := a.RecomputeSeat(ctx, id, TriggerBatch); err != nil {
			return i, fmt.Errorf("seat %s: %w", id, err)
		}
	}
	return len(seatIDs), nil
}

// Get returns the stored aggregate of a seat, nil when it has none
func (a *Aggregator) Get(ctx context.Context, seatID uuid.UUID) (*SeatAggregate, error) {
	if a.db == nil {
		return nil, apperrors.NotConfigured("database")
	}
	var aggs []SeatAggregate
	if err := a.db.WithContext(ctx).Where("seat_id = ?", seatID).Limit(1).Find(&aggs).Error; err != nil {
		return nil, fmt.Errorf("failed to load seat aggregate: %w", err)
	}
	if len(aggs) == 0 {
		return nil, nil
	}
	return &aggs[0], nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
