// Package search implements the filtered, sorted, paginated listing shared by
// venues, events, seats and reviews. Every column that can reach SQL is
// declared here; request parameters only ever select entries from the catalog.
package search

import "sort"

// Order is a sort direction
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Kind decides how a filter value is parsed and compared
type Kind int

const (
	// KindText compares case-insensitively for equality
	KindText Kind = iota
	// KindID must parse as a UUID
	KindID
	KindNumber
	// KindDate accepts YYYY-MM-DD
	KindDate
)

// Op is the comparison applied by a filter
type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLte Op = "<="
)

// Join is a named join clause. Name is used for deduplication.
type Join struct {
	Name   string
	Clause string
}

// Filter maps one query parameter onto a predicate
type Filter struct {
	Param  string
	Column string
	Kind   Kind
	Op     Op
	// Join names a join that must be present for Column to resolve.
	Join string
	// Coalesce, when set, replaces NULL with this value before comparing.
	// Seats without an aggregate row compare as 0 for "at least" filters.
	Coalesce *float64
	// Min and Max bound numeric values; out of range is an invalid query.
	Min, Max *float64
}

// SortField is one entry of an entity's sort allow-list
type SortField struct {
	Name   string
	Column string
	Join   string
}

// Entity is the static search metadata of one table
type Entity struct {
	Name  string
	Table string
	Alias string
	// Columns is the SELECT list, each already aliased to the result field name.
	Columns []string
	// BaseJoins are always part of the plan because Columns reference them.
	BaseJoins []string
	Joins     []Join
	// TextColumns are OR-matched against the free-text term.
	TextColumns []string
	Filters     []Filter
	// Required lists filter params that must be supplied.
	Required     []string
	Sorts        []SortField
	DefaultSort  string
	DefaultOrder Order
}

func (e *Entity) filter(param string) (Filter, bool) {
	for _, f := range e.Filters {
		if f.Param == param {
			return f, true
		}
	}
	return Filter{}, false
}

func (e *Entity) sortField(name string) (SortField, bool) {
	for _, s := range e.Sorts {
		if s.Name == name {
			return s, true
		}
	}
	return SortField{}, false
}

// SortNames returns the allow-listed sort fields in declaration order
func (e *Entity) SortNames() []string {
	names := make([]string, 0, len(e.Sorts))
	for _, s := range e.Sorts {
		names = append(names, s.Name)
	}
	return names
}

// FilterParams returns the accepted filter parameter names, sorted
func (e *Entity) FilterParams() []string {
	params := make([]string, 0, len(e.Filters))
	for _, f := range e.Filters {
		params = append(params, f.Param)
	}
	sort.Strings(params)
	return params
}

func bound(v float64) *float64 { return &v }

const (
	joinVenueRatings   = "venue_ratings"
	joinSeatAggregates = "seat_aggregates"
	joinEventVenue     = "event_venue"
	joinReviewEvent    = "review_event"
	joinReviewSeat     = "review_seat"
)

// Venues carries a per-venue rating rollup joined 1:1 so row counts are unaffected.
var Venues = Entity{
	Name:  "venues",
	Table: "venues",
	Alias: "v",
	Columns: []string{
		"v.id AS id",
		"v.name AS name",
		"v.city AS city",
		"v.capacity AS capacity",
		"v.tags AS tags",
		"vr.avg_rating AS rating",
		"COALESCE(vr.review_count, 0) AS review_count",
	},
	BaseJoins: []string{joinVenueRatings},
	Joins: []Join{
		{
			Name: joinVenueRatings,
			Clause: `LEFT JOIN (
				SELECT s.venue_id AS venue_id,
					ROUND(AVG(r.overall_rating), 1) AS avg_rating,
					COUNT(r.id) AS review_count
				FROM reviews r
				JOIN seats s ON s.id = r.seat_id
				GROUP BY s.venue_id
			) vr ON vr.venue_id = v.id`,
		},
	},
	TextColumns: []string{"v.name", "v.city"},
	Filters: []Filter{
		{Param: "city", Column: "v.city", Kind: KindText, Op: OpEq},
		{Param: "min_capacity", Column: "v.capacity", Kind: KindNumber, Op: OpGte, Min: bound(0)},
		{Param: "max_capacity", Column: "v.capacity", Kind: KindNumber, Op: OpLte, Min: bound(0)},
		{Param: "min_rating", Column: "vr.avg_rating", Kind: KindNumber, Op: OpGte, Join: joinVenueRatings, Coalesce: bound(0), Min: bound(0), Max: bound(5)},
	},
	Sorts: []SortField{
		{Name: "name", Column: "v.name"},
		{Name: "capacity", Column: "v.capacity"},
		{Name: "city", Column: "v.city"},
		{Name: "rating", Column: "vr.avg_rating", Join: joinVenueRatings},
	},
	DefaultSort:  "name",
	DefaultOrder: Asc,
}

var Events = Entity{
	Name:  "events",
	Table: "events",
	Alias: "e",
	Columns: []string{
		"e.id AS id",
		"e.venue_id AS venue_id",
		"e.name AS name",
		"e.artist AS artist",
		"e.genre AS genre",
		"e.event_date AS event_date",
		"e.ticket_url AS ticket_url",
	},
	Joins: []Join{
		{Name: joinEventVenue, Clause: "JOIN venues v ON v.id = e.venue_id"},
	},
	TextColumns: []string{"e.name", "e.artist"},
	Filters: []Filter{
		{Param: "venue_id", Column: "e.venue_id", Kind: KindID, Op: OpEq},
		{Param: "genre", Column: "e.genre", Kind: KindText, Op: OpEq},
		{Param: "city", Column: "v.city", Kind: KindText, Op: OpEq, Join: joinEventVenue},
		{Param: "date_from", Column: "e.event_date", Kind: KindDate, Op: OpGte},
		{Param: "date_to", Column: "e.event_date", Kind: KindDate, Op: OpLte},
	},
	Sorts: []SortField{
		{Name: "name", Column: "e.name"},
		{Name: "event_date", Column: "e.event_date"},
		{Name: "artist", Column: "e.artist"},
	},
	DefaultSort:  "event_date",
	DefaultOrder: Asc,
}

var Seats = Entity{
	Name:  "seats",
	Table: "seats",
	Alias: "s",
	Columns: []string{
		"s.id AS id",
		"s.venue_id AS venue_id",
		"s.section AS section",
		"s.seat_row AS seat_row",
		"s.seat_number AS seat_number",
		"s.distance_to_stage AS distance_to_stage",
		"sa.avg_visual AS avg_visual",
		"sa.avg_sound AS avg_sound",
		"sa.avg_value AS avg_value",
		"sa.avg_overall AS avg_overall",
		"sa.avg_price_paid AS avg_price_paid",
		"COALESCE(sa.review_count, 0) AS review_count",
	},
	BaseJoins: []string{joinSeatAggregates},
	Joins: []Join{
		{Name: joinSeatAggregates, Clause: "LEFT JOIN seat_aggregates sa ON sa.seat_id = s.id"},
	},
	TextColumns: []string{"s.section", "s.seat_row"},
	Filters: []Filter{
		{Param: "venue_id", Column: "s.venue_id", Kind: KindID, Op: OpEq},
		{Param: "section", Column: "s.section", Kind: KindText, Op: OpEq},
		{Param: "min_rating", Column: "sa.avg_overall", Kind: KindNumber, Op: OpGte, Join: joinSeatAggregates, Coalesce: bound(0), Min: bound(0), Max: bound(5)},
		{Param: "max_distance", Column: "s.distance_to_stage", Kind: KindNumber, Op: OpLte, Min: bound(0)},
	},
	Required: []string{"venue_id"},
	Sorts: []SortField{
		{Name: "distance_to_stage", Column: "s.distance_to_stage"},
		{Name: "avg_overall", Column: "sa.avg_overall", Join: joinSeatAggregates},
		{Name: "avg_price_paid", Column: "sa.avg_price_paid", Join: joinSeatAggregates},
		{Name: "section", Column: "s.section"},
	},
	DefaultSort:  "distance_to_stage",
	DefaultOrder: Asc,
}

// Reviews filter by venue through the event, which owns the venue reference.
var Reviews = Entity{
	Name:  "reviews",
	Table: "reviews",
	Alias: "r",
	Columns: []string{
		"r.id AS id",
		"r.user_id AS user_id",
		"r.event_id AS event_id",
		"e.venue_id AS venue_id",
		"r.seat_id AS seat_id",
		"e.name AS event_name",
		"s.section AS section",
		"s.seat_row AS seat_row",
		"s.seat_number AS seat_number",
		"r.rating_visual AS rating_visual",
		"r.rating_sound AS rating_sound",
		"r.rating_value AS rating_value",
		"r.overall_rating AS overall_rating",
		"r.price_paid AS price_paid",
		"r.text AS text",
		"r.images AS images",
		"r.created_at AS created_at",
	},
	BaseJoins: []string{joinReviewEvent, joinReviewSeat},
	Joins: []Join{
		{Name: joinReviewEvent, Clause: "JOIN events e ON e.id = r.event_id"},
		{Name: joinReviewSeat, Clause: "JOIN seats s ON s.id = r.seat_id"},
	},
	TextColumns: []string{"r.text"},
	Filters: []Filter{
		{Param: "seat_id", Column: "r.seat_id", Kind: KindID, Op: OpEq},
		{Param: "event_id", Column: "r.event_id", Kind: KindID, Op: OpEq},
		{Param: "venue_id", Column: "e.venue_id", Kind: KindID, Op: OpEq, Join: joinReviewEvent},
		{Param: "user_id", Column: "r.user_id", Kind: KindID, Op: OpEq},
		{Param: "min_rating", Column: "r.overall_rating", Kind: KindNumber, Op: OpGte, Min: bound(1), Max: bound(5)},
	},
	Sorts: []SortField{
		{Name: "overall_rating", Column: "r.overall_rating"},
		{Name: "created_at", Column: "r.created_at"},
		{Name: "price_paid", Column: "r.price_paid"},
	},
	DefaultSort:  "created_at",
	DefaultOrder: Desc,
}

var catalog = map[string]*Entity{
	Venues.Name:  &Venues,
	Events.Name:  &Events,
	Seats.Name:   &Seats,
	Reviews.Name: &Reviews,
}

// Lookup returns the catalog entry for an entity name
func Lookup(name string) (*Entity, bool) {
	e, ok := catalog[name]
	return e, ok
}
