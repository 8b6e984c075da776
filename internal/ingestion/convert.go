package ingestion

import (
	"math"
	"strings"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
)

// EquipmentResolver maps an MTF equipment name to its mount data (slots,
// tonnage, heat). A nil resolver skips loadout conversion; the structural
// configuration is still produced.
type EquipmentResolver interface {
	Resolve(name string) (models.Mounted, bool)
}

// ToUnitConfiguration maps the parsed MTF fields onto the editor's
// configuration model. MTF names are normalized to the rule tables' type
// names; anything the tables do not know falls back to Standard so an
// imported record is always inspectable in the editor, with validation
// reporting whatever does not add up.
func (d *MTFData) ToUnitConfiguration(resolver EquipmentResolver) models.UnitConfiguration {
	unitBase := construct.NormalizeTechBase(d.TechBase)

	engineBase := componentBase(d.EngineType, unitBase)
	structBase := componentBase(d.Structure, unitBase)
	armorBase := componentBase(d.ArmorType, unitBase)
	sinkBase := componentBase(d.HeatSinkType, unitBase)

	u := models.UnitConfiguration{
		Chassis:     d.Chassis,
		Model:       d.Model,
		Tonnage:     d.Mass,
		TechBase:    unitBase,
		WalkMP:      d.WalkMP,
		JumpMP:      d.JumpMP,
		Engine:      models.Selection{Type: engineType(d.EngineType), TechBase: engineBase},
		Gyro:        models.Selection{Type: gyroType(d.Gyro), TechBase: unitComponentBase(unitBase)},
		Structure:   models.Selection{Type: structureType(d.Structure), TechBase: structBase},
		HeatSinks:   models.Selection{Type: heatSinkType(d.HeatSinkType), TechBase: sinkBase},
		HeatSinkCnt: d.HeatSinkCount,
		JumpJets:    models.Selection{Type: jumpJetType(d), TechBase: unitComponentBase(unitBase)},
	}

	armor := armorType(d.ArmorType)
	u.Armor = models.ArmorConfig{
		Selection:  models.Selection{Type: armor, TechBase: armorBase},
		Tonnage:    armorTonnage(d.TotalArmor(), armor, armorBase),
		Allocation: armorAllocation(d.ArmorValues),
	}

	if enh := enhancements(d); len(enh) > 0 {
		u.Enhancements = enh
	}
	if hasEquipment(d, "Targeting Computer") {
		u.Targeting = models.Selection{Type: "Standard", TechBase: unitComponentBase(unitBase)}
	}

	u.TechProgression = progression(u)

	if resolver != nil {
		u.Loadout = loadout(d, resolver)
	}
	return u
}

// unitComponentBase is the base recorded for components the MTF does not tag
// individually. Mixed units pick Inner Sphere; validation flags nothing for
// them either way.
func unitComponentBase(unitBase construct.TechBase) construct.TechBase {
	if unitBase == construct.Mixed {
		return construct.InnerSphere
	}
	return unitBase
}

// componentBase reads an explicit IS/Clan tag off an MTF component name,
// falling back to the unit base.
func componentBase(raw string, unitBase construct.TechBase) construct.TechBase {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "clan"):
		return construct.Clan
	case strings.Contains(lower, "(is)"), strings.HasPrefix(lower, "is "), strings.Contains(lower, "inner sphere"):
		return construct.InnerSphere
	default:
		return unitComponentBase(unitBase)
	}
}

func engineType(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "xxl"):
		return "XXL"
	case strings.Contains(lower, "xl"):
		return "XL"
	case strings.Contains(lower, "light"):
		return "Light"
	case strings.Contains(lower, "compact"):
		return "Compact"
	case strings.Contains(lower, "ice"):
		return "ICE"
	default:
		return "Standard"
	}
}

func gyroType(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "xl"):
		return "XL"
	case strings.Contains(lower, "compact"):
		return "Compact"
	case strings.Contains(lower, "heavy"):
		return "Heavy-Duty"
	default:
		return "Standard"
	}
}

func structureType(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "endo"):
		return "Endo Steel"
	case strings.Contains(lower, "composite"):
		return "Composite"
	case strings.Contains(lower, "reinforced"):
		return "Reinforced"
	case strings.Contains(lower, "industrial"):
		return "Industrial"
	default:
		return "Standard"
	}
}

func armorType(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "heavy ferro"):
		return "Heavy Ferro-Fibrous"
	case strings.Contains(lower, "light ferro"):
		return "Light Ferro-Fibrous"
	case strings.Contains(lower, "ferro"):
		return "Ferro-Fibrous"
	case strings.Contains(lower, "stealth"):
		return "Stealth"
	default:
		return "Standard"
	}
}

func heatSinkType(raw string) string {
	if strings.Contains(strings.ToLower(raw), "double") {
		return "Double"
	}
	return "Single"
}

func jumpJetType(d *MTFData) string {
	if d.JumpMP == 0 {
		return "Standard"
	}
	if hasEquipment(d, "Improved Jump Jet") {
		return "Improved"
	}
	return "Standard"
}

// enhancements reads TSM off the Myomer field and MASC off the crit slots.
func enhancements(d *MTFData) []models.Selection {
	var out []models.Selection
	myomer := strings.ToLower(d.Myomer)
	if strings.Contains(myomer, "triple") || strings.Contains(myomer, "tsm") {
		out = append(out, models.Selection{Type: "TSM", TechBase: construct.InnerSphere})
	}
	if hasEquipment(d, "MASC") {
		out = append(out, models.Selection{Type: "MASC", TechBase: unitComponentBase(construct.NormalizeTechBase(d.TechBase))})
	}
	return out
}

func hasEquipment(d *MTFData, name string) bool {
	needle := strings.ToLower(name)
	for _, slots := range d.LocationEquipment {
		for _, entry := range slots {
			if strings.Contains(strings.ToLower(entry), needle) {
				return true
			}
		}
	}
	return false
}

// armorTonnage back-derives the purchased tonnage from the allocated points,
// rounded up to the half ton the purchase would have required.
func armorTonnage(points int, armorType string, base construct.TechBase) float64 {
	if points <= 0 {
		return 0
	}
	if base == construct.Mixed {
		base = construct.InnerSphere
	}
	perTon := construct.ArmorPointsPerTon(armorType, base)
	return math.Ceil(float64(points)/perTon*2) / 2
}

// armorAllocation maps MTF location codes onto editor locations, folding the
// rear torso values into their torso totals.
func armorAllocation(values map[string]int) map[construct.Location]int {
	if len(values) == 0 {
		return nil
	}
	rear := map[string]string{"RTL": "LT", "RTR": "RT", "RTC": "CT"}
	out := make(map[construct.Location]int)
	for code, pts := range values {
		if front, ok := rear[code]; ok {
			code = front
		}
		loc := construct.ParseLocation(code)
		if _, known := construct.SlotCapacity[loc]; !known {
			continue
		}
		out[loc] += pts
	}
	return out
}

// progression records a tech base per category for every subsystem whose
// selection is not Inner Sphere.
func progression(u models.UnitConfiguration) map[construct.Category]construct.TechBase {
	entries := map[construct.Category]construct.TechBase{
		construct.CategoryEngine:    u.Engine.TechBase,
		construct.CategoryGyro:      u.Gyro.TechBase,
		construct.CategoryStructure: u.Structure.TechBase,
		construct.CategoryArmor:     u.Armor.TechBase,
		construct.CategoryHeatSink:  u.HeatSinks.TechBase,
		construct.CategoryJumpJet:   u.JumpJets.TechBase,
	}
	out := make(map[construct.Category]construct.TechBase)
	for cat, base := range entries {
		if base != "" && base != construct.InnerSphere {
			out[cat] = base
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// structuralSlotNames are crit entries that describe the frame rather than
// mounted equipment; the loadout converter skips them.
var structuralSlotNames = map[string]bool{
	"-Empty-":                true,
	"Shoulder":               true,
	"Upper Arm Actuator":     true,
	"Lower Arm Actuator":     true,
	"Hand Actuator":          true,
	"Hip":                    true,
	"Upper Leg Actuator":     true,
	"Lower Leg Actuator":     true,
	"Foot Actuator":          true,
	"Life Support":           true,
	"Sensors":                true,
	"Cockpit":                true,
	"Gyro":                   true,
	"Fusion Engine":          true,
	"Engine":                 true,
	"Heat Sink":              true,
	"Double Heat Sink":       true,
	"Jump Jet":               true,
	"Improved Jump Jet":      true,
	"Endo Steel":             true,
	"Endo-Steel":             true,
	"Ferro-Fibrous":          true,
	"Light Ferro-Fibrous":    true,
	"Heavy Ferro-Fibrous":    true,
	"Triple Strength Myomer": true,
}

func structuralSlot(entry string) bool {
	name := strings.TrimSuffix(entry, " (R)")
	name = strings.TrimSuffix(name, " (OMNIPOD)")
	if structuralSlotNames[name] {
		return true
	}
	// Prefixed frame entries like "IS Endo Steel" or "Clan Double Heat Sink".
	for _, prefix := range []string{"IS ", "Clan ", "CL"} {
		if structuralSlotNames[strings.TrimPrefix(name, prefix)] {
			return true
		}
	}
	return false
}

// loadout converts the per-location crit entries into mounts. Multi-slot
// equipment appears once per occupied crit in the MTF; consecutive duplicate
// entries within a location collapse into one mount and the resolver's slot
// count wins.
func loadout(d *MTFData, resolver EquipmentResolver) []models.Mounted {
	var out []models.Mounted
	for mtfLoc, entries := range d.LocationEquipment {
		loc := construct.ParseLocation(mtfLoc)
		if _, known := construct.SlotCapacity[loc]; !known {
			continue
		}
		prev := ""
		for _, entry := range entries {
			if structuralSlot(entry) {
				prev = ""
				continue
			}
			if entry == prev {
				continue
			}
			prev = entry

			rear := strings.HasSuffix(entry, " (R)")
			name := strings.TrimSuffix(entry, " (R)")
			m, ok := resolver.Resolve(name)
			if !ok {
				continue
			}
			m.Name = name
			m.Location = loc
			m.Rear = rear
			out = append(out, m)
		}
	}
	return out
}
