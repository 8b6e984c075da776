package calcs

import (
	"math"
	"testing"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
)

// testUnit is a 50-ton Inner Sphere 4/6 with standard everything and ten
// single heat sinks.
func testUnit() models.UnitConfiguration {
	u := models.NewUnitConfiguration("Testhammer", 50, construct.InnerSphere)
	u.Model = "TST-1A"
	return u
}

func TestRequiredSlotsStandardEngine(t *testing.T) {
	u := testUnit()
	req := RequiredSlots(u)

	// engine 6 + gyro 4 + cockpit/actuators 21 + 2 external singles
	// (rating 200 integrates 8 of the 10 sinks)
	if req.System != 33 {
		t.Errorf("System slots = %d, want 33", req.System)
	}
	if req.Special != 0 {
		t.Errorf("Special slots = %d, want 0", req.Special)
	}
	if req.Critical {
		t.Error("baseline unit should not be slot-critical")
	}
}

func TestRequiredSlotsXLSwing(t *testing.T) {
	u := testUnit()
	base := RequiredSlots(u).System

	u.Engine = models.Selection{Type: "XL", TechBase: construct.InnerSphere}
	isXL := RequiredSlots(u).System
	if isXL-base != 6 {
		t.Errorf("IS XL adds %d system slots over Standard, want 6", isXL-base)
	}

	u.Engine = models.Selection{Type: "XL", TechBase: construct.Clan}
	clanXL := RequiredSlots(u).System
	if isXL-clanXL != 4 {
		t.Errorf("IS XL - Clan XL = %d slots, want 4", isXL-clanXL)
	}
}

func TestRequiredSlotsSurcharges(t *testing.T) {
	u := testUnit()
	u.Structure = models.Selection{Type: "Endo Steel", TechBase: construct.InnerSphere}
	u.Armor.Selection = models.Selection{Type: "Ferro-Fibrous", TechBase: construct.InnerSphere}
	req := RequiredSlots(u)
	if req.Special != 28 {
		t.Errorf("IS Endo + IS Ferro special slots = %d, want 28", req.Special)
	}

	u.Structure.TechBase = construct.Clan
	u.Armor.Selection.TechBase = construct.Clan
	req = RequiredSlots(u)
	if req.Special != 14 {
		t.Errorf("Clan Endo + Clan Ferro special slots = %d, want 14", req.Special)
	}
}

func TestRequiredSlotsTargetingComputer(t *testing.T) {
	u := testUnit()
	u.Loadout = append(u.Loadout,
		models.Mounted{Name: "Gauss Rifle", Location: construct.RightTorso, Slots: 7, Tonnage: 15, Heat: 1},
		models.Mounted{Name: "LRM 10", Location: construct.LeftTorso, Slots: 2, Tonnage: 5, Heat: 4, Type: "Missile"},
		models.Mounted{Name: "LRM 10 Ammo", Location: construct.LeftTorso, Slots: 1, Tonnage: 1, Type: "Ammo"},
	)
	base := RequiredSlots(u).System

	// 15 tons of direct fire; missiles and ammo do not count.
	u.Targeting = models.Selection{Type: "Targeting Computer", TechBase: construct.InnerSphere}
	if got := RequiredSlots(u).System; got-base != 4 {
		t.Errorf("IS targeting computer adds %d system slots, want 4", got-base)
	}

	u.Targeting.TechBase = construct.Clan
	if got := RequiredSlots(u).System; got-base != 3 {
		t.Errorf("Clan targeting computer adds %d system slots, want 3", got-base)
	}
}

func TestRequiredSlotsCriticalFlag(t *testing.T) {
	u := testUnit()
	for i := 0; i < 5; i++ {
		u.Loadout = append(u.Loadout, models.Mounted{
			Name: "AC/20", Location: construct.RightTorso, Slots: 10, Tonnage: 14,
		})
	}
	req := RequiredSlots(u)
	if !req.Critical {
		t.Errorf("Total %d over capacity %d should set critical", req.Total, req.Available)
	}
}

func TestAvailableSlots(t *testing.T) {
	u := testUnit()
	avail := ComputeAvailableSlots(u)

	if avail.Total != 78 {
		t.Errorf("Total = %d, want 78", avail.Total)
	}
	// head 5, CT 6+4, arms/legs 16 = 31
	if avail.SystemReserved != 31 {
		t.Errorf("SystemReserved = %d, want 31", avail.SystemReserved)
	}
	if avail.Usable != 47 {
		t.Errorf("Usable = %d, want 47", avail.Usable)
	}

	for _, ls := range avail.Locations {
		switch ls.Location {
		case construct.CenterTorso:
			if ls.Available != 2 {
				t.Errorf("CT available = %d, want 2", ls.Available)
			}
		case construct.Head:
			if ls.Available != 1 {
				t.Errorf("HD available = %d, want 1", ls.Available)
			}
		case construct.LeftTorso:
			if ls.Available != 12 {
				t.Errorf("LT available = %d, want 12", ls.Available)
			}
		}
	}
}

func TestAvailableSlotsSideEngine(t *testing.T) {
	u := testUnit()
	u.Engine = models.Selection{Type: "XL", TechBase: construct.InnerSphere}
	avail := ComputeAvailableSlots(u)
	for _, ls := range avail.Locations {
		if ls.Location == construct.LeftTorso && ls.Available != 9 {
			t.Errorf("LT available with IS XL = %d, want 9", ls.Available)
		}
	}
}

func TestUtilizationBands(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{50, BandExcellent}, {70, BandExcellent},
		{80, BandGood}, {85, BandGood},
		{90, BandFair}, {95, BandFair},
		{98, BandPoor}, {100, BandPoor},
		{101, BandCritical},
	}
	for _, tt := range tests {
		if got := utilizationBand(tt.pct); got != tt.want {
			t.Errorf("utilizationBand(%.0f) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestUtilizationBottleneck(t *testing.T) {
	u := testUnit()
	// Right torso: 12 slots of equipment on an empty location -> 100%
	u.Loadout = append(u.Loadout, models.Mounted{
		Name: "Big Gun", Location: construct.RightTorso, Slots: 12, Tonnage: 10,
	})
	util := Utilization(u)

	found := false
	for _, b := range util.Bottlenecks {
		if b.Location == construct.RightTorso {
			found = true
			if b.Recommendation == "" {
				t.Error("bottleneck should carry a recommendation")
			}
		}
	}
	if !found {
		t.Error("full right torso should be reported as a bottleneck")
	}
}

func TestUtilizationDeterministic(t *testing.T) {
	u := testUnit()
	u.Loadout = append(u.Loadout, models.Mounted{Name: "Medium Laser", Location: construct.RightArm, Slots: 1, Tonnage: 1, Heat: 3})
	a := Utilization(u)
	b := Utilization(u)
	if a.OverallPercent != b.OverallPercent || len(a.Locations) != len(b.Locations) {
		t.Error("Utilization should be deterministic for identical inputs")
	}
}

func TestWeightArmorTonnageIsSourceOfTruth(t *testing.T) {
	for _, armorType := range []string{"Standard", "Ferro-Fibrous"} {
		u := testUnit()
		u.Armor.Selection.Type = armorType
		u.Armor.Tonnage = 8
		u.Armor.Allocation = map[construct.Location]int{
			construct.CenterTorso: 20, construct.Head: 9,
		}
		b := Weight(u)
		if b.Armor != 8 {
			t.Errorf("%s armor weight = %.2f, want exactly 8", armorType, b.Armor)
		}
	}
}

func TestWeightBreakdown(t *testing.T) {
	u := testUnit()
	u.Armor.Tonnage = 8
	b := Weight(u)

	if b.Structure != 5.0 {
		t.Errorf("structure = %.2f, want 5.0", b.Structure)
	}
	if b.Engine != 8.0 {
		t.Errorf("engine = %.2f, want 8.0", b.Engine)
	}
	if b.Gyro != 2.0 {
		t.Errorf("gyro = %.2f, want 2.0", b.Gyro)
	}
	if b.HeatSinks != 0 {
		t.Errorf("ten sinks = %.2f tons, want 0", b.HeatSinks)
	}
	want := 5.0 + 8.0 + 2.0 + 3.0 + 8.0
	if math.Abs(b.Total-want) > 1e-9 {
		t.Errorf("total = %.2f, want %.2f", b.Total, want)
	}
	if b.Overweight {
		t.Error("26-ton build on a 50-ton chassis should not be overweight")
	}
}

func TestWeightTargetingComputer(t *testing.T) {
	u := testUnit()
	u.Targeting = models.Selection{Type: "Targeting Computer", TechBase: construct.InnerSphere}
	u.Loadout = append(u.Loadout,
		models.Mounted{Name: "Gauss Rifle", Location: construct.RightTorso, Slots: 7, Tonnage: 15, Heat: 1},
		models.Mounted{Name: "LRM 10", Location: construct.LeftTorso, Slots: 2, Tonnage: 5, Heat: 4, Type: "Missile"},
	)

	b := Weight(u)
	if b.Targeting != 4 {
		t.Errorf("IS targeting computer over 15 direct-fire tons = %.2f tons, want 4", b.Targeting)
	}

	without := u
	without.Targeting = models.Selection{}
	if diff := b.Total - Weight(without).Total; diff != 4 {
		t.Errorf("targeting computer adds %.2f tons to the total, want 4", diff)
	}
}

func TestWeightOverweight(t *testing.T) {
	u := testUnit()
	u.Loadout = append(u.Loadout, models.Mounted{Name: "Ballast", Location: construct.LeftTorso, Slots: 1, Tonnage: 40})
	if b := Weight(u); !b.Overweight {
		t.Errorf("remaining = %.2f, expected overweight", b.Remaining)
	}
}

func TestHeatBalance(t *testing.T) {
	u := testUnit()
	u.Loadout = append(u.Loadout,
		models.Mounted{Name: "PPC", Location: construct.RightArm, Slots: 3, Tonnage: 7, Heat: 10},
		models.Mounted{Name: "Medium Laser", Location: construct.LeftArm, Slots: 1, Tonnage: 1, Heat: 3},
	)
	b := Heat(u)
	if b.Generation != 15 { // 2 movement + 13 weapons
		t.Errorf("generation = %d, want 15", b.Generation)
	}
	if b.Dissipation != 10 {
		t.Errorf("dissipation = %d, want 10", b.Dissipation)
	}
	if b.Neutral {
		t.Error("net +5 should not be heat neutral")
	}

	u.HeatSinks.Type = "Double"
	b = Heat(u)
	if b.Dissipation != 20 || !b.Neutral {
		t.Errorf("doubles: dissipation = %d neutral = %v, want 20 true", b.Dissipation, b.Neutral)
	}
}

func TestHeatJumpMinimum(t *testing.T) {
	u := testUnit()
	u.JumpMP = 2
	if b := Heat(u); b.MovementHeat != 3 {
		t.Errorf("jump 2 movement heat = %d, want 3", b.MovementHeat)
	}
	u.JumpMP = 5
	if b := Heat(u); b.MovementHeat != 5 {
		t.Errorf("jump 5 movement heat = %d, want 5", b.MovementHeat)
	}
}
