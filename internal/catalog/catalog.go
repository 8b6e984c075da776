// Package catalog answers "which components are available for this category
// under this tech context". The rules engine only depends on the Service
// interface; the SQLite implementation backs the server and the static one
// backs tests and offline tools.
package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
)

// Item is one catalog row: a component or equipment option.
type Item struct {
	ID       int                `json:"id,omitempty"`
	Name     string             `json:"name"`
	Category construct.Category `json:"category"`
	TechBase construct.TechBase `json:"tech_base"`
	Tonnage  float64            `json:"tonnage,omitempty"`
	Slots    int                `json:"slots,omitempty"`
	Heat     int                `json:"heat,omitempty"`
	Type     string             `json:"type,omitempty"`
}

// Query scopes a catalog search. Zero Page means the first page; zero
// PageSize means no paging. Tech, when set, scopes this one search; a zero
// Tech falls back to the service's stored context. Concurrent callers must
// carry their context here, not through SetContext, so one request cannot
// re-scope another's search.
type Query struct {
	Categories []construct.Category `json:"component_categories,omitempty"`
	Page       int                  `json:"page,omitempty"`
	PageSize   int                  `json:"page_size,omitempty"`
	SortBy     string               `json:"sort_by,omitempty"`
	SortOrder  string               `json:"sort_order,omitempty"`
	Tech       TechContext          `json:"tech_context,omitempty"`
}

// Result is a page of matching items.
type Result struct {
	Items    []Item `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// TechContext scopes a search to a tech base and unit type.
type TechContext struct {
	TechBase construct.TechBase `json:"tech_base"`
	UnitType string             `json:"unit_type,omitempty"`
}

// Service is the consumed catalog query interface. Implementations must
// return deterministically ordered results and must be safe for concurrent
// use. SetContext sets the fallback context for queries that carry none of
// their own.
type Service interface {
	SetContext(tc TechContext)
	Search(ctx context.Context, q Query) (Result, error)
}

// FirstAvailable returns the name-sorted first option for a category under
// the given tech context, or "" when the category has no legal options.
// Errors from the underlying query propagate untouched.
func FirstAvailable(ctx context.Context, svc Service, cat construct.Category, tc TechContext) (string, error) {
	res, err := svc.Search(ctx, Query{
		Categories: []construct.Category{cat},
		Page:       0,
		PageSize:   1,
		SortBy:     "name",
		SortOrder:  "asc",
		Tech:       tc,
	})
	if err != nil {
		return "", err
	}
	if len(res.Items) == 0 {
		return "", nil
	}
	return res.Items[0].Name, nil
}

// sortItems orders a result set. Name ascending is the default and the only
// ordering the rules engine relies on.
func sortItems(items []Item, sortBy, order string) {
	desc := strings.EqualFold(order, "desc")
	less := func(i, j int) bool { return items[i].Name < items[j].Name }
	switch sortBy {
	case "tonnage":
		less = func(i, j int) bool {
			if items[i].Tonnage != items[j].Tonnage {
				return items[i].Tonnage < items[j].Tonnage
			}
			return items[i].Name < items[j].Name
		}
	case "slots":
		less = func(i, j int) bool {
			if items[i].Slots != items[j].Slots {
				return items[i].Slots < items[j].Slots
			}
			return items[i].Name < items[j].Name
		}
	}
	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(items, less)
}

// paginate slices a page out of the full result set.
func paginate(items []Item, page, pageSize int) []Item {
	if pageSize <= 0 {
		return items
	}
	start := page * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
