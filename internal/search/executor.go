package search

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"livelens/internal/shared/apperrors"
	"livelens/internal/shared/constants"
	"livelens/pkg/cache"
	"livelens/pkg/logger"
	"livelens/pkg/metrics"

	"gorm.io/gorm"
)

// Page is the response shape of every search endpoint
type Page[T any] struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	Results []T   `json:"results"`
}

// Engine runs plans against the store, optionally through a Redis cache
type Engine struct {
	db     *gorm.DB
	cache  cache.Service
	ttl    time.Duration
	txOpts *sql.TxOptions
	log    *logger.Logger
}

type Option func(*Engine)

// WithCache enables cache-aside for search pages
func WithCache(c cache.Service, ttl time.Duration) Option {
	return func(e *Engine) {
		e.cache = c
		e.ttl = ttl
	}
}

// WithTxOptions sets the options of the read transaction wrapping count and page
func WithTxOptions(opts *sql.TxOptions) Option {
	return func(e *Engine) { e.txOpts = opts }
}

func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine returns an engine over db. A nil db yields an engine whose every
// query fails with a not-configured error.
func NewEngine(db *gorm.DB, opts ...Option) *Engine {
	e := &Engine{db: db, ttl: constants.TTL_SEARCH_DEFAULT, log: logger.GetDefault()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run validates params and executes the resulting plan
func Run[T any](ctx context.Context, e *Engine, entity *Entity, params Params) (*Page[T], error) {
	plan, err := Build(entity, params)
	if err != nil {
		metrics.SearchQueries.WithLabelValues(entity.Name, "rejected").Inc()
		return nil, err
	}
	return Execute[T](ctx, e, plan)
}

// Execute runs the count and page statements of plan in one read transaction
func Execute[T any](ctx context.Context, e *Engine, plan *Plan) (*Page[T], error) {
	entity := plan.Entity.Name
	if e == nil || e.db == nil {
		return nil, apperrors.NotConfigured("database")
	}

	start := time.Now()
	key := constants.BuildSearchKey(entity, plan.hash())

	if e.cache != nil {
		var cached Page[T]
		err := e.cache.Get(ctx, key, &cached)
		if err == nil {
			metrics.SearchQueries.WithLabelValues(entity, "cache_hit").Inc()
			e.log.LogSearch(ctx, entity, cached.Total, len(cached.Results), time.Since(start), true)
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			e.log.WarnContext(ctx, "search cache read failed", "entity", entity, "error", err)
		}
	}

	page := &Page[T]{Limit: plan.Limit, Offset: plan.Offset, Results: make([]T, 0, plan.Limit)}

	run := func(tx *gorm.DB) error {
		if err := plan.scope(tx).Count(&page.Total).Error; err != nil {
			return fmt.Errorf("count %s: %w", entity, err)
		}
		err := plan.scope(tx).
			Select(plan.Entity.Columns).
			Order(plan.OrderBy()).
			Limit(plan.Limit).
			Offset(plan.Offset).
			Scan(&page.Results).Error
		if err != nil {
			return fmt.Errorf("fetch %s: %w", entity, err)
		}
		return nil
	}

	var err error
	if e.txOpts != nil {
		err = e.db.WithContext(ctx).Transaction(run, e.txOpts)
	} else {
		err = e.db.WithContext(ctx).Transaction(run)
	}
	if err != nil {
		outcome := "error"
		if apperrors.IsStoreUnavailable(err) {
			outcome = "unavailable"
		}
		metrics.SearchQueries.WithLabelValues(entity, outcome).Inc()
		return nil, err
	}

	metrics.SearchQueries.WithLabelValues(entity, "ok").Inc()
	metrics.SearchDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds())
	e.log.LogSearch(ctx, entity, page.Total, len(page.Results), time.Since(start), false)

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, page, e.ttl); err != nil {
			e.log.WarnContext(ctx, "search cache write failed", "entity", entity, "error", err)
		}
	}

	return page, nil
}

// Invalidate drops cached pages of the given entities
func (e *Engine) Invalidate(ctx context.Context, entities ...string) {
	if e == nil || e.cache == nil {
		return
	}
	for _, entity := range entities {
		if err := e.cache.DeletePattern(ctx, constants.BuildSearchPattern(entity)); err != nil {
			e.log.WarnContext(ctx, "search cache invalidation failed", "entity", entity, "error", err)
		}
	}
}

// scope applies the FROM, JOIN and WHERE parts shared by both statements
func (p *Plan) scope(tx *gorm.DB) *gorm.DB {
	q := tx.Table(p.Entity.Table + " " + p.Entity.Alias)
	for _, j := range p.Joins {
		q = q.Joins(j.Clause)
	}
	if len(p.Predicates) > 0 {
		q = q.Where(p.Where(), p.Args)
	}
	return q
}

func (p *Plan) hash() string {
	payload, _ := json.Marshal(struct {
		Where  string                 `json:"where"`
		Args   map[string]interface{} `json:"args"`
		Order  string                 `json:"order"`
		Limit  int                    `json:"limit"`
		Offset int                    `json:"offset"`
	}{p.Where(), p.Args, p.OrderBy(), p.Limit, p.Offset})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:12])
}
