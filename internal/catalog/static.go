package catalog

import (
	"context"
	"sync"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
)

// Static is an in-memory Service seeded from the construction tables. It
// backs tests, the offline validation tool and the server's no-database
// fallback, so it is shared across request goroutines.
type Static struct {
	items []Item

	mu sync.RWMutex
	tc TechContext
}

// NewStatic builds a catalog over an explicit item list.
func NewStatic(items []Item) *Static {
	return &Static{items: items, tc: TechContext{TechBase: construct.InnerSphere}}
}

// NewBuiltin builds a catalog holding every component type the construction
// tables know, for both tech bases.
func NewBuiltin() *Static {
	var items []Item
	add := func(cat construct.Category, names []string, bases ...construct.TechBase) {
		for _, name := range names {
			for _, base := range bases {
				items = append(items, Item{Name: name, Category: cat, TechBase: base})
			}
		}
	}
	both := []construct.TechBase{construct.InnerSphere, construct.Clan}

	add(construct.CategoryEngine, construct.EngineTypes(), both...)
	add(construct.CategoryGyro, construct.GyroTypes(), both...)
	add(construct.CategoryHeatSink, construct.HeatSinkTypes(), both...)
	add(construct.CategoryJumpJet, construct.JumpJetTypes(), both...)
	add(construct.CategoryStructure, []string{"Standard", "Endo Steel", "Reinforced", "Industrial"}, both...)
	add(construct.CategoryStructure, []string{"Composite"}, construct.InnerSphere)
	add(construct.CategoryArmor, []string{"Standard", "Ferro-Fibrous"}, both...)
	add(construct.CategoryArmor, []string{"Light Ferro-Fibrous", "Heavy Ferro-Fibrous", "Stealth"}, construct.InnerSphere)
	add(construct.CategoryEnhancement, []string{"MASC"}, both...)
	add(construct.CategoryEnhancement, []string{"TSM"}, construct.InnerSphere)
	add(construct.CategoryTargeting, []string{"Targeting Computer"}, both...)

	return NewStatic(items)
}

// SetContext sets the fallback context for queries that carry none of their
// own.
func (s *Static) SetContext(tc TechContext) {
	s.mu.Lock()
	s.tc = tc
	s.mu.Unlock()
}

// Search filters by category and the query's tech context, sorts and pages.
func (s *Static) Search(_ context.Context, q Query) (Result, error) {
	s.mu.RLock()
	tc := s.tc
	s.mu.RUnlock()
	if q.Tech.TechBase != "" {
		tc = q.Tech
	}

	wantCat := make(map[construct.Category]bool, len(q.Categories))
	for _, c := range q.Categories {
		wantCat[c] = true
	}

	var matched []Item
	for _, item := range s.items {
		if len(wantCat) > 0 && !wantCat[item.Category] {
			continue
		}
		if tc.TechBase != "" && tc.TechBase != construct.Mixed && item.TechBase != tc.TechBase {
			continue
		}
		matched = append(matched, item)
	}

	sortItems(matched, q.SortBy, q.SortOrder)
	page := paginate(matched, q.Page, q.PageSize)
	return Result{Items: page, Total: len(matched), Page: q.Page, PageSize: q.PageSize}, nil
}
