package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
	AuthRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_rejections_total",
			Help: "Total number of unauthorized requests",
		},
		[]string{"reason"},
	)

	SearchQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livelens_search_queries_total",
			Help: "Search requests by entity and outcome",
		},
		[]string{"entity", "outcome"},
	)
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "livelens_search_duration_seconds",
			Help:    "Time spent running count and page queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity"},
	)
	ReviewsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livelens_reviews_submitted_total",
			Help: "Review submissions by outcome",
		},
		[]string{"outcome"},
	)
	SeatsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "livelens_seats_created_total",
			Help: "Seats created on first reference by a review",
		},
	)
	AggregateRecomputes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "livelens_seat_aggregate_recomputes_total",
			Help: "Seat aggregate recomputations by trigger",
		},
		[]string{"trigger"},
	)
)

// Register adds every collector to reg. Call once from main.go.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AuthRejections,
		SearchQueries,
		SearchDuration,
		ReviewsSubmitted,
		SeatsCreated,
		AggregateRecomputes,
	)
}
