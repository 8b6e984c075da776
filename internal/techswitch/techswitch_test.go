package techswitch

import (
	"context"
	"errors"
	"testing"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/catalog"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/memory"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
)

// engineCatalog offers Standard for both bases and XL for IS only.
func engineCatalog() *catalog.Static {
	return catalog.NewStatic([]catalog.Item{
		{Name: "Standard", Category: construct.CategoryEngine, TechBase: construct.InnerSphere},
		{Name: "XL", Category: construct.CategoryEngine, TechBase: construct.InnerSphere},
		{Name: "Standard", Category: construct.CategoryEngine, TechBase: construct.Clan},
	})
}

type failingCatalog struct{}

func (failingCatalog) SetContext(catalog.TechContext) {}
func (failingCatalog) Search(context.Context, catalog.Query) (catalog.Result, error) {
	return catalog.Result{}, errors.New("catalog backend down")
}

func testUnit() models.UnitConfiguration {
	return models.NewUnitConfiguration("Testhammer", 50, construct.InnerSphere)
}

func TestSwitchDefaultsWhenMemoryEmpty(t *testing.T) {
	ctx := context.Background()
	cfg := testUnit()
	cfg.Engine.Type = "XL"

	res, err := Switch(ctx, construct.CategoryEngine, construct.Clan, cfg, memory.Default(), engineCatalog())
	if err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if res.Restored {
		t.Error("empty memory must not report restored")
	}
	if res.Resolution.Kind != Defaulted {
		t.Errorf("resolution = %s, want defaulted", res.Resolution.Kind)
	}
	if res.Config.Engine.Type != "Standard" {
		t.Errorf("engine = %q, want catalog default Standard", res.Config.Engine.Type)
	}
	if res.Config.Engine.TechBase != construct.Clan {
		t.Errorf("engine base = %s, want Clan", res.Config.Engine.TechBase)
	}
	if got := res.Config.SubsystemBase(construct.CategoryEngine); got != construct.Clan {
		t.Errorf("tech progression = %s, want Clan", got)
	}
	if res.Reason == "" {
		t.Error("resolution reason should be human readable, not empty")
	}
}

func TestSwitchRestoresFromMemory(t *testing.T) {
	ctx := context.Background()
	cfg := testUnit()
	mem := memory.Default().With(construct.CategoryEngine, construct.Clan, "Standard")

	res, err := Switch(ctx, construct.CategoryEngine, construct.Clan, cfg, mem, engineCatalog())
	if err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if !res.Restored || res.Resolution.Kind != Restored {
		t.Errorf("expected restored resolution, got %s", res.Resolution.Kind)
	}
	if res.Config.Engine.Type != "Standard" {
		t.Errorf("engine = %q, want remembered Standard", res.Config.Engine.Type)
	}
}

func TestSwitchRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := engineCatalog()

	cfg := testUnit()
	cfg.Engine.Type = "XL"

	// IS -> Clan: no memory, defaults to Standard and remembers XL for IS.
	out, err := Switch(ctx, construct.CategoryEngine, construct.Clan, cfg, memory.Default(), svc)
	if err != nil {
		t.Fatalf("first switch: %v", err)
	}
	if out.Config.Engine.Type != "Standard" || out.Restored {
		t.Fatalf("first leg: engine %q restored %v, want defaulted Standard", out.Config.Engine.Type, out.Restored)
	}

	// Clan -> IS: the original XL comes back from memory.
	back, err := Switch(ctx, construct.CategoryEngine, construct.InnerSphere, out.Config, out.Memory, svc)
	if err != nil {
		t.Fatalf("second switch: %v", err)
	}
	if !back.Restored {
		t.Error("return leg should restore from memory")
	}
	if back.Config.Engine.Type != "XL" {
		t.Errorf("round trip engine = %q, want XL", back.Config.Engine.Type)
	}
}

func TestSwitchReturnLegWithoutMemoryDefaults(t *testing.T) {
	ctx := context.Background()
	svc := engineCatalog()

	cfg := testUnit()
	cfg.TechProgression = map[construct.Category]construct.TechBase{
		construct.CategoryEngine: construct.Clan,
	}
	cfg.Engine = models.Selection{Type: "Standard", TechBase: construct.Clan}

	// Memory was never populated for IS; default wins, restored is false.
	mem := memory.Default().With(construct.CategoryEngine, construct.Clan, "Standard")
	res, err := Switch(ctx, construct.CategoryEngine, construct.InnerSphere, cfg, mem, svc)
	if err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if res.Restored {
		t.Error("no IS memory, restored must be false")
	}
	if res.Config.Engine.Type != "Standard" {
		t.Errorf("engine = %q, want catalog default Standard", res.Config.Engine.Type)
	}
}

func TestSwitchSameBaseIsUnchanged(t *testing.T) {
	ctx := context.Background()
	cfg := testUnit()

	res, err := Switch(ctx, construct.CategoryEngine, construct.InnerSphere, cfg, memory.Default(), engineCatalog())
	if err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if res.Resolution.Kind != Unchanged {
		t.Errorf("resolution = %s, want unchanged", res.Resolution.Kind)
	}
	if res.Config.Engine.Type != cfg.Engine.Type {
		t.Error("unchanged switch must not alter the selection")
	}
}

func TestSwitchCatalogFailurePropagates(t *testing.T) {
	ctx := context.Background()
	cfg := testUnit()
	cfg.Engine.Type = "XL"
	mem := memory.Default()

	_, err := Switch(ctx, construct.CategoryEngine, construct.Clan, cfg, mem, failingCatalog{})
	if err == nil {
		t.Fatal("catalog failure must propagate, not silently default")
	}
	// Inputs are immutable: the caller's config and memory are untouched.
	if cfg.Engine.Type != "XL" || cfg.SubsystemBase(construct.CategoryEngine) != construct.InnerSphere {
		t.Error("failed switch must leave the configuration unchanged")
	}
	if got := mem.Get(construct.CategoryEngine, construct.Clan); got != "" {
		t.Errorf("failed switch must leave memory unchanged, got %q", got)
	}
}

func TestSwitchNoOptions(t *testing.T) {
	ctx := context.Background()
	cfg := testUnit()
	empty := catalog.NewStatic(nil)

	_, err := Switch(ctx, construct.CategoryEngine, construct.Clan, cfg, memory.Default(), empty)
	if !errors.Is(err, ErrNoOptions) {
		t.Errorf("err = %v, want ErrNoOptions", err)
	}
}

// The §scenario from the construction rules: a 50-ton IS 4/6 with a standard
// rating-200 engine occupies 6 engine slots; IS XL takes 12; switching the
// engine subsystem to Clan (where this catalog has no XL) defaults back to
// Standard and 6 slots.
func TestSwitchEngineSlotScenario(t *testing.T) {
	ctx := context.Background()
	cfg := testUnit()

	if got := construct.TotalEngineSlots(cfg.Engine.Type, construct.InnerSphere); got != 6 {
		t.Fatalf("standard engine slots = %d, want 6", got)
	}

	cfg.Engine.Type = "XL"
	if got := construct.TotalEngineSlots("XL", construct.InnerSphere); got != 12 {
		t.Fatalf("IS XL engine slots = %d, want 12", got)
	}

	res, err := Switch(ctx, construct.CategoryEngine, construct.Clan, cfg, memory.Default(), engineCatalog())
	if err != nil {
		t.Fatalf("Switch: %v", err)
	}
	if res.Config.Engine.Type != "Standard" {
		t.Fatalf("engine after Clan switch = %q, want Standard", res.Config.Engine.Type)
	}
	base := res.Config.SubsystemBase(construct.CategoryEngine)
	if got := construct.TotalEngineSlots(res.Config.Engine.Type, base); got != 6 {
		t.Errorf("engine slots after switch = %d, want 6", got)
	}
}
