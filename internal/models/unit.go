package models

import "github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"

// Selection is one chosen component: its type name and the tech base the
// choice was made under.
type Selection struct {
	Type     string             `json:"type"`
	TechBase construct.TechBase `json:"tech_base"`
}

// ArmorConfig carries the armor selection plus the per-location point
// allocation. Tonnage is the single source of truth for armor weight; the
// allocation only distributes points.
type ArmorConfig struct {
	Selection
	Tonnage    float64                    `json:"tonnage"`
	Allocation map[construct.Location]int `json:"allocation,omitempty"`
}

// TotalPoints sums the allocated armor points across every location.
func (a ArmorConfig) TotalPoints() int {
	total := 0
	for _, pts := range a.Allocation {
		total += pts
	}
	return total
}

// Mounted is one piece of equipment placed on the unit. Slot and tonnage
// costs are declared by the catalog item; Type "Ammo" marks ammunition bins.
type Mounted struct {
	Name     string             `json:"name"`
	Location construct.Location `json:"location"`
	Slots    int                `json:"slots"`
	Tonnage  float64            `json:"tonnage"`
	Heat     int                `json:"heat,omitempty"`
	Type     string             `json:"type,omitempty"`
	Rear     bool               `json:"rear,omitempty"`
}

// IsAmmo reports whether this mount is an ammunition bin.
func (m Mounted) IsAmmo() bool {
	return m.Type == "Ammo"
}

// UnitConfiguration is the root entity of the editor: chassis identity, the
// component selection per subsystem, and the mounted equipment. Mutating
// operations return copies; callers holding an old configuration keep a
// consistent snapshot.
type UnitConfiguration struct {
	Chassis  string             `json:"chassis"`
	Model    string             `json:"model,omitempty"`
	Tonnage  int                `json:"tonnage"`
	TechBase construct.TechBase `json:"tech_base"`
	WalkMP   int                `json:"walk_mp"`
	JumpMP   int                `json:"jump_mp,omitempty"`

	Engine       Selection   `json:"engine"`
	Gyro         Selection   `json:"gyro"`
	Structure    Selection   `json:"structure"`
	Armor        ArmorConfig `json:"armor"`
	HeatSinks    Selection   `json:"heat_sinks"`
	HeatSinkCnt  int         `json:"heat_sink_count"`
	JumpJets     Selection   `json:"jump_jets"`
	Targeting    Selection   `json:"targeting,omitempty"`
	Enhancements []Selection `json:"enhancements,omitempty"`

	// TechProgression records, per subsystem, which tech base the current
	// selection belongs to. Absent entries default to Inner Sphere.
	TechProgression map[construct.Category]construct.TechBase `json:"tech_progression,omitempty"`

	Loadout []Mounted `json:"loadout,omitempty"`
}

// EngineRating derives the rating from tonnage and walk speed.
func (u UnitConfiguration) EngineRating() int {
	return construct.EngineRating(u.Tonnage, u.WalkMP)
}

// RunMP derives running speed from walk speed.
func (u UnitConfiguration) RunMP() int {
	return construct.RunMP(u.WalkMP)
}

// Name returns "Chassis Model", or just the chassis when no model code is
// set.
func (u UnitConfiguration) Name() string {
	if u.Model == "" {
		return u.Chassis
	}
	return u.Chassis + " " + u.Model
}

// SubsystemBase reports which tech base a subsystem's current selection
// belongs to, defaulting to Inner Sphere when nothing was recorded.
func (u UnitConfiguration) SubsystemBase(cat construct.Category) construct.TechBase {
	if base, ok := u.TechProgression[cat]; ok {
		return base
	}
	return construct.InnerSphere
}

// Clone returns a deep copy. Maps and slices are duplicated so the copy can
// be mutated without touching the original.
func (u UnitConfiguration) Clone() UnitConfiguration {
	out := u
	if u.Armor.Allocation != nil {
		out.Armor.Allocation = make(map[construct.Location]int, len(u.Armor.Allocation))
		for loc, pts := range u.Armor.Allocation {
			out.Armor.Allocation[loc] = pts
		}
	}
	if u.TechProgression != nil {
		out.TechProgression = make(map[construct.Category]construct.TechBase, len(u.TechProgression))
		for cat, base := range u.TechProgression {
			out.TechProgression[cat] = base
		}
	}
	if u.Enhancements != nil {
		out.Enhancements = append([]Selection(nil), u.Enhancements...)
	}
	if u.Loadout != nil {
		out.Loadout = append([]Mounted(nil), u.Loadout...)
	}
	return out
}

// NewUnitConfiguration builds a minimal legal configuration: standard
// everything, no equipment, armor unallocated.
func NewUnitConfiguration(chassis string, tonnage int, base construct.TechBase) UnitConfiguration {
	sel := func() Selection { return Selection{Type: "Standard", TechBase: base} }
	return UnitConfiguration{
		Chassis:     chassis,
		Tonnage:     tonnage,
		TechBase:    base,
		WalkMP:      4,
		Engine:      sel(),
		Gyro:        sel(),
		Structure:   sel(),
		Armor:       ArmorConfig{Selection: sel()},
		HeatSinks:   Selection{Type: "Single", TechBase: base},
		HeatSinkCnt: 10,
		JumpJets:    Selection{Type: "Standard", TechBase: base},
	}
}
