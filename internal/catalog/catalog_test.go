package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
)

func TestStaticSearchFiltersByContext(t *testing.T) {
	svc := NewBuiltin()
	svc.SetContext(TechContext{TechBase: construct.Clan, UnitType: "BattleMech"})

	res, err := svc.Search(context.Background(), Query{
		Categories: []construct.Category{construct.CategoryEnhancement},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, item := range res.Items {
		if item.TechBase != construct.Clan {
			t.Errorf("Clan context returned %s item %q", item.TechBase, item.Name)
		}
		if item.Name == "TSM" {
			t.Error("TSM is IS-only and should not appear under a Clan context")
		}
	}
}

func TestStaticSearchDeterministicOrder(t *testing.T) {
	svc := NewBuiltin()
	svc.SetContext(TechContext{TechBase: construct.InnerSphere})

	q := Query{Categories: []construct.Category{construct.CategoryEngine}, SortBy: "name", SortOrder: "asc"}
	a, _ := svc.Search(context.Background(), q)
	b, _ := svc.Search(context.Background(), q)

	if len(a.Items) == 0 {
		t.Fatal("expected engine options")
	}
	for i := range a.Items {
		if a.Items[i].Name != b.Items[i].Name {
			t.Fatalf("ordering not deterministic at %d: %q vs %q", i, a.Items[i].Name, b.Items[i].Name)
		}
	}
	for i := 1; i < len(a.Items); i++ {
		if a.Items[i-1].Name > a.Items[i].Name {
			t.Errorf("items not name-sorted: %q before %q", a.Items[i-1].Name, a.Items[i].Name)
		}
	}
}

func TestStaticPagination(t *testing.T) {
	svc := NewBuiltin()
	svc.SetContext(TechContext{TechBase: construct.InnerSphere})

	q := Query{Categories: []construct.Category{construct.CategoryEngine}, PageSize: 2}
	first, _ := svc.Search(context.Background(), q)
	if len(first.Items) != 2 {
		t.Fatalf("page 0 has %d items, want 2", len(first.Items))
	}
	q.Page = 1
	second, _ := svc.Search(context.Background(), q)
	if len(second.Items) == 0 {
		t.Fatal("page 1 should not be empty")
	}
	if first.Items[0].Name == second.Items[0].Name {
		t.Error("pages should not overlap")
	}
	if first.Total != second.Total {
		t.Errorf("total varies across pages: %d vs %d", first.Total, second.Total)
	}
}

func TestSearchQueryContextOverridesFallback(t *testing.T) {
	svc := NewBuiltin()
	svc.SetContext(TechContext{TechBase: construct.InnerSphere})

	res, err := svc.Search(context.Background(), Query{
		Categories: []construct.Category{construct.CategoryEnhancement},
		Tech:       TechContext{TechBase: construct.Clan},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, item := range res.Items {
		if item.TechBase != construct.Clan {
			t.Errorf("query scoped to Clan returned %s item %q", item.TechBase, item.Name)
		}
	}
}

func TestSearchConcurrentQueriesKeepTheirOwnContext(t *testing.T) {
	svc := NewBuiltin()
	bases := []construct.TechBase{construct.InnerSphere, construct.Clan}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(base construct.TechBase) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				svc.SetContext(TechContext{TechBase: base})
				res, err := svc.Search(context.Background(), Query{
					Categories: []construct.Category{construct.CategoryEngine},
					Tech:       TechContext{TechBase: base},
				})
				if err != nil {
					t.Errorf("Search: %v", err)
					return
				}
				for _, item := range res.Items {
					if item.TechBase != base {
						t.Errorf("query scoped to %s returned %s item %q", base, item.TechBase, item.Name)
						return
					}
				}
			}
		}(bases[i%2])
	}
	wg.Wait()
}

func TestFirstAvailable(t *testing.T) {
	svc := NewStatic([]Item{
		{Name: "Standard", Category: construct.CategoryEngine, TechBase: construct.Clan},
		{Name: "XL", Category: construct.CategoryEngine, TechBase: construct.Clan},
		{Name: "Compact", Category: construct.CategoryEngine, TechBase: construct.Clan},
	})
	name, err := FirstAvailable(context.Background(), svc, construct.CategoryEngine,
		TechContext{TechBase: construct.Clan})
	if err != nil {
		t.Fatalf("FirstAvailable: %v", err)
	}
	if name != "Compact" {
		t.Errorf("first name-sorted option = %q, want Compact", name)
	}
}

func TestFirstAvailableEmptyCategory(t *testing.T) {
	svc := NewStatic(nil)
	name, err := FirstAvailable(context.Background(), svc, construct.CategoryTargeting,
		TechContext{TechBase: construct.InnerSphere})
	if err != nil {
		t.Fatalf("FirstAvailable: %v", err)
	}
	if name != "" {
		t.Errorf("empty category should resolve to \"\", got %q", name)
	}
}
