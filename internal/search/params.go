package search

import (
	"net/url"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params are the raw, unvalidated search inputs of one request
type Params struct {
	Text    string
	Filters map[string]string
	SortBy  string
	Order   string
	Limit   string
	Offset  string
}

// ParamsFromQuery picks the recognised parameters of entity out of a query
// string. Unknown parameters are ignored.
func ParamsFromQuery(entity *Entity, values url.Values) Params {
	p := Params{
		Text:    strings.TrimSpace(values.Get("q")),
		SortBy:  strings.TrimSpace(values.Get("sort_by")),
		Order:   strings.TrimSpace(values.Get("order")),
		Limit:   strings.TrimSpace(values.Get("limit")),
		Offset:  strings.TrimSpace(values.Get("offset")),
		Filters: make(map[string]string),
	}
	for _, f := range entity.Filters {
		if v := strings.TrimSpace(values.Get(f.Param)); v != "" {
			p.Filters[f.Param] = v
		}
	}
	return p
}
