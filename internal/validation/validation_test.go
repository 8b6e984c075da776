package validation

import (
	"testing"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
)

func testUnit() models.UnitConfiguration {
	u := models.NewUnitConfiguration("Testhammer", 50, construct.InnerSphere)
	u.Model = "TST-1A"
	return u
}

func TestValidBaseline(t *testing.T) {
	r := Validate(testUnit(), DefaultContext())
	if !r.Valid {
		t.Fatalf("baseline unit invalid: %+v", r.Errors)
	}
	if r.Summary == "" {
		t.Error("report should carry a summary")
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	u := testUnit()
	u.Tonnage = 47 // trips the 5-ton-increment warning on every pass
	vc := DefaultContext()

	a := Validate(u, vc)
	b := Validate(u, vc)
	if len(a.Errors) != len(b.Errors) || len(a.Warnings) != len(b.Warnings) || len(a.Info) != len(b.Info) {
		t.Errorf("repeated validation accumulated findings: %s vs %s", a.Summary, b.Summary)
	}
}

func TestTonnageStepSeverityByContext(t *testing.T) {
	u := testUnit()
	u.Tonnage = 47

	lenient := Validate(u, DefaultContext())
	if !lenient.Valid {
		t.Error("non-5-ton tonnage should be a warning when not strict")
	}
	if len(lenient.Warnings) == 0 {
		t.Error("expected a tonnage warning")
	}

	strict := Validate(u, Context{StrictMode: true, CheckTechCompatibility: true, ValidateConstructionRules: true})
	if strict.Valid {
		t.Error("strict mode should block non-5-ton tonnage")
	}
}

func TestTonnageRange(t *testing.T) {
	u := testUnit()
	u.Tonnage = 105
	if Validate(u, DefaultContext()).Valid {
		t.Error("105 tons should be a blocking error")
	}
	u.Tonnage = 15
	if Validate(u, DefaultContext()).Valid {
		t.Error("15 tons should be a blocking error")
	}
}

func TestEngineRatingCap(t *testing.T) {
	u := testUnit()
	u.Tonnage = 100
	u.WalkMP = 5 // rating 500
	r := Validate(u, DefaultContext())
	if r.Valid {
		t.Error("rating over 400 should be a blocking error")
	}
}

func TestSlotOverflowIsBlocking(t *testing.T) {
	u := testUnit()
	for i := 0; i < 5; i++ {
		u.Loadout = append(u.Loadout, models.Mounted{
			Name: "AC/20", Location: construct.RightTorso, Slots: 10, Tonnage: 0.1,
		})
	}
	r := Validate(u, DefaultContext())
	if r.Valid {
		t.Fatal("slot overflow must be a blocking error, not a warning")
	}
	found := false
	for _, e := range r.Errors {
		if e.ID == "slot_overflow" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected slot_overflow error, got %+v", r.Errors)
	}
}

func TestLocationOverflow(t *testing.T) {
	u := testUnit()
	// Head has one free slot; three more do not fit.
	u.Loadout = append(u.Loadout, models.Mounted{
		Name: "Comms Array", Location: construct.Head, Slots: 4, Tonnage: 1,
	})
	r := Validate(u, DefaultContext())
	if r.Valid {
		t.Error("overfull head should block validity")
	}
}

func TestOverweightIsBlocking(t *testing.T) {
	u := testUnit()
	u.Loadout = append(u.Loadout, models.Mounted{Name: "Ballast", Location: construct.LeftTorso, Slots: 1, Tonnage: 40})
	r := Validate(u, DefaultContext())
	if r.Valid {
		t.Error("overweight build should block validity")
	}
}

func TestHeatImbalanceIsAdvisory(t *testing.T) {
	u := testUnit()
	u.Loadout = append(u.Loadout, models.Mounted{
		Name: "PPC", Location: construct.RightArm, Slots: 3, Tonnage: 7, Heat: 10,
	})
	r := Validate(u, DefaultContext())
	if !r.Valid {
		t.Fatalf("hot build should still be valid, errors: %+v", r.Errors)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a heat warning")
	}
}

func TestMixedTechSeverityByContext(t *testing.T) {
	u := testUnit()
	u.Engine = models.Selection{Type: "XL", TechBase: construct.Clan}

	lenient := Validate(u, DefaultContext())
	if !lenient.Valid {
		t.Error("mixed-tech placement should warn when not strict")
	}

	strict := Validate(u, Context{StrictMode: true, CheckTechCompatibility: true})
	if strict.Valid {
		t.Error("strict mode should block mixed-tech placement")
	}

	// Flag off: not even a warning.
	off := Validate(u, Context{})
	for _, w := range off.Warnings {
		if w.ID == "mixed_tech" {
			t.Error("tech compatibility findings should respect the context flag")
		}
	}
}

func TestMixedUnitsAllowPerSubsystemBases(t *testing.T) {
	u := testUnit()
	u.TechBase = construct.Mixed
	u.Engine = models.Selection{Type: "XL", TechBase: construct.Clan}
	u.Gyro = models.Selection{Type: "Standard", TechBase: construct.InnerSphere}
	r := Validate(u, DefaultContext())
	if !r.Valid {
		t.Errorf("mixed unit should accept per-subsystem bases: %+v", r.Errors)
	}
}

func TestArmorOverallocation(t *testing.T) {
	u := testUnit()
	u.Armor.Tonnage = 1 // 16 points of standard armor
	u.Armor.Allocation = map[construct.Location]int{
		construct.CenterTorso: 17,
	}
	r := Validate(u, DefaultContext())
	if r.Valid {
		t.Error("allocating more points than purchased should block validity")
	}
}

func TestArmorAllocationWithinTonnage(t *testing.T) {
	u := testUnit()
	u.Armor.Tonnage = 8 // 128 points
	u.Armor.Allocation = map[construct.Location]int{
		construct.CenterTorso: 20,
		construct.LeftTorso:   16,
		construct.RightTorso:  16,
		construct.Head:        9,
	}
	r := Validate(u, DefaultContext())
	if !r.Valid {
		t.Errorf("valid allocation rejected: %+v", r.Errors)
	}
}

func TestUnknownComponentTypeIsFindingNotPanic(t *testing.T) {
	u := testUnit()
	u.Engine.Type = "Perpetual Motion"
	var r *Report
	func() {
		defer func() {
			if p := recover(); p != nil {
				t.Fatalf("validation panicked on user input: %v", p)
			}
		}()
		r = Validate(u, DefaultContext())
	}()
	if r.Valid {
		t.Error("unknown engine type should be a blocking finding")
	}
}

func TestMinimumHeatSinks(t *testing.T) {
	u := testUnit()
	u.HeatSinkCnt = 8
	if Validate(u, DefaultContext()).Valid {
		t.Error("fewer than 10 heat sinks should block validity")
	}
}

func TestJumpExceedsWalk(t *testing.T) {
	u := testUnit()
	u.JumpMP = 6 // walk is 4
	r := Validate(u, DefaultContext())
	if r.Valid {
		t.Error("jump MP above walk MP should block validity")
	}
}
