package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"livelens/internal/shared/apperrors"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Plan is a validated query: everything the executor needs to run the count
// and page statements over an identical join graph and predicate set.
type Plan struct {
	Entity     *Entity
	Joins      []Join
	Predicates []string
	Args       map[string]interface{}
	SortBy     string
	Order      Order
	Limit      int
	Offset     int
}

// Where returns the AND of all predicates, empty when unfiltered
func (p *Plan) Where() string {
	return strings.Join(p.Predicates, " AND ")
}

// OrderBy puts NULLs last in both directions and breaks ties on the primary
// key so consecutive pages never overlap.
func (p *Plan) OrderBy() string {
	sf, _ := p.Entity.sortField(p.SortBy)
	dir := "ASC"
	if p.Order == Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s NULLS LAST, %s.id ASC", sf.Column, dir, p.Entity.Alias)
}

// Build validates params against entity and produces a Plan
func Build(entity *Entity, params Params) (*Plan, error) {
	plan := &Plan{
		Entity: entity,
		Args:   make(map[string]interface{}),
	}

	sortBy, err := resolveSort(entity, params.SortBy)
	if err != nil {
		return nil, err
	}
	plan.SortBy = sortBy.Name

	if plan.Order, err = resolveOrder(entity, params.Order); err != nil {
		return nil, err
	}
	if plan.Limit, err = parsePageValue("limit", params.Limit, DefaultLimit, 1, MaxLimit); err != nil {
		return nil, err
	}
	if plan.Offset, err = parsePageValue("offset", params.Offset, 0, 0, -1); err != nil {
		return nil, err
	}

	for _, req := range entity.Required {
		if params.Filters[req] == "" {
			return nil, apperrors.InvalidQuery(req, "parameter is required")
		}
	}

	needed := map[string]bool{}
	for _, j := range entity.BaseJoins {
		needed[j] = true
	}
	if sortBy.Join != "" {
		needed[sortBy.Join] = true
	}

	if params.Text != "" {
		plan.Args["q"] = "%" + escapeLike(strings.ToLower(params.Text)) + "%"
		clauses := make([]string, 0, len(entity.TextColumns))
		for _, col := range entity.TextColumns {
			clauses = append(clauses, fmt.Sprintf(`LOWER(%s) LIKE @q ESCAPE '\'`, col))
		}
		plan.Predicates = append(plan.Predicates, "("+strings.Join(clauses, " OR ")+")")
	}

	// Catalog order keeps predicate text stable for a given parameter set.
	for _, f := range entity.Filters {
		raw, ok := params.Filters[f.Param]
		if !ok || raw == "" {
			continue
		}
		value, err := parseFilterValue(f, raw)
		if err != nil {
			return nil, err
		}
		plan.Args[f.Param] = value
		plan.Predicates = append(plan.Predicates, predicate(f))
		if f.Join != "" {
			needed[f.Join] = true
		}
	}

	for _, j := range entity.Joins {
		if needed[j.Name] {
			plan.Joins = append(plan.Joins, j)
		}
	}

	return plan, nil
}

func resolveSort(entity *Entity, sortBy string) (SortField, error) {
	if sortBy == "" {
		sortBy = entity.DefaultSort
	}
	sf, ok := entity.sortField(sortBy)
	if !ok {
		return SortField{}, apperrors.InvalidQuery("sort_by", fmt.Sprintf("unsupported sort field %q", sortBy), entity.SortNames()...)
	}
	return sf, nil
}

func resolveOrder(entity *Entity, order string) (Order, error) {
	switch Order(order) {
	case "":
		return entity.DefaultOrder, nil
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", apperrors.InvalidQuery("order", fmt.Sprintf("unsupported order %q", order), string(Asc), string(Desc))
	}
}

// parsePageValue rejects out of range values instead of clamping them. A
// negative max means unbounded.
func parsePageValue(field, raw string, def, min, max int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidQuery(field, "must be an integer")
	}
	if n < min || (max >= 0 && n > max) {
		if max >= 0 {
			return 0, apperrors.InvalidQuery(field, fmt.Sprintf("must be between %d and %d", min, max))
		}
		return 0, apperrors.InvalidQuery(field, fmt.Sprintf("must be at least %d", min))
	}
	return n, nil
}

func parseFilterValue(f Filter, raw string) (interface{}, error) {
	switch f.Kind {
	case KindID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.InvalidInput(f.Param, "malformed identifier")
		}
		return id, nil
	case KindNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, apperrors.InvalidQuery(f.Param, "must be a number")
		}
		if (f.Min != nil && n < *f.Min) || (f.Max != nil && n > *f.Max) {
			return nil, apperrors.InvalidQuery(f.Param, rangeMessage(f))
		}
		return n, nil
	case KindDate:
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, apperrors.InvalidQuery(f.Param, "must be a date formatted YYYY-MM-DD")
		}
		return d, nil
	default:
		return strings.ToLower(raw), nil
	}
}

func predicate(f Filter) string {
	column := f.Column
	switch {
	case f.Kind == KindText:
		column = "LOWER(" + column + ")"
	case f.Coalesce != nil:
		column = fmt.Sprintf("COALESCE(%s, %s)", column, strconv.FormatFloat(*f.Coalesce, 'f', -1, 64))
	}
	return fmt.Sprintf("%s %s @%s", column, f.Op, f.Param)
}

func rangeMessage(f Filter) string {
	switch {
	case f.Min != nil && f.Max != nil:
		return fmt.Sprintf("must be between %g and %g", *f.Min, *f.Max)
	case f.Min != nil:
		return fmt.Sprintf("must be at least %g", *f.Min)
	default:
		return fmt.Sprintf("must be at most %g", *f.Max)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
