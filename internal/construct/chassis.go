package construct

import "fmt"

type structureSpec struct {
	weightFraction float64
	// slots is the tech surcharge distributed across the frame. IS Endo
	// Steel takes exactly twice the criticals of the Clan version.
	slots map[TechBase]int
}

var structureTable = map[string]structureSpec{
	"Standard":   {weightFraction: 0.10, slots: map[TechBase]int{InnerSphere: 0, Clan: 0}},
	"Endo Steel": {weightFraction: 0.05, slots: map[TechBase]int{InnerSphere: 14, Clan: 7}},
	"Composite":  {weightFraction: 0.05, slots: map[TechBase]int{InnerSphere: 0}},
	"Reinforced": {weightFraction: 0.20, slots: map[TechBase]int{InnerSphere: 0, Clan: 0}},
	"Industrial": {weightFraction: 0.20, slots: map[TechBase]int{InnerSphere: 0, Clan: 0}},
}

// StructureTypes lists the known internal structure type names.
func StructureTypes() []string {
	return []string{"Standard", "Endo Steel", "Composite", "Reinforced", "Industrial"}
}

// StructureSlots returns the critical-slot surcharge for a structure type
// under a tech base.
func StructureSlots(structureType string, base TechBase) int {
	spec, ok := structureTable[structureType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown structure type %q", structureType))
	}
	slots, ok := spec.slots[base]
	if !ok {
		panic(fmt.Sprintf("construct: structure type %q has no %s variant", structureType, base))
	}
	return slots
}

// StructureWeight is a fraction of chassis tonnage rounded up to the half ton.
func StructureWeight(structureType string, tonnage int) float64 {
	spec, ok := structureTable[structureType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown structure type %q", structureType))
	}
	return roundHalfTonUp(float64(tonnage) * spec.weightFraction)
}

// IsStructureType reports whether the name is a known structure type.
func IsStructureType(name string) bool {
	_, ok := structureTable[name]
	return ok
}

type armorSpec struct {
	pointsPerTon float64
	slots        map[TechBase]int
}

// armorTable mirrors the structure table's 2:1 IS:Clan slot pattern for the
// high-density armor types. Armor weight itself is always the configuration's
// stored armor tonnage; pointsPerTon only governs how many points that
// tonnage buys.
var armorTable = map[string]armorSpec{
	"Standard":            {pointsPerTon: 16.0, slots: map[TechBase]int{InnerSphere: 0, Clan: 0}},
	"Ferro-Fibrous":       {pointsPerTon: 17.92, slots: map[TechBase]int{InnerSphere: 14, Clan: 7}},
	"Light Ferro-Fibrous": {pointsPerTon: 16.96, slots: map[TechBase]int{InnerSphere: 7}},
	"Heavy Ferro-Fibrous": {pointsPerTon: 19.84, slots: map[TechBase]int{InnerSphere: 21}},
	"Stealth":             {pointsPerTon: 16.0, slots: map[TechBase]int{InnerSphere: 12}},
}

// clanFerroPointsPerTon overrides the IS value when the armor is Clan; Clan
// ferro gives more protection per ton than the IS version.
const clanFerroPointsPerTon = 19.2

// ArmorTypes lists the known armor type names.
func ArmorTypes() []string {
	return []string{"Standard", "Ferro-Fibrous", "Light Ferro-Fibrous", "Heavy Ferro-Fibrous", "Stealth"}
}

// ArmorSlots returns the critical-slot surcharge for an armor type under a
// tech base.
func ArmorSlots(armorType string, base TechBase) int {
	spec, ok := armorTable[armorType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown armor type %q", armorType))
	}
	slots, ok := spec.slots[base]
	if !ok {
		panic(fmt.Sprintf("construct: armor type %q has no %s variant", armorType, base))
	}
	return slots
}

// ArmorPointsPerTon returns how many armor points one ton of the given armor
// type provides.
func ArmorPointsPerTon(armorType string, base TechBase) float64 {
	spec, ok := armorTable[armorType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown armor type %q", armorType))
	}
	if armorType == "Ferro-Fibrous" && base == Clan {
		return clanFerroPointsPerTon
	}
	return spec.pointsPerTon
}

// IsArmorType reports whether the name is a known armor type.
func IsArmorType(name string) bool {
	_, ok := armorTable[name]
	return ok
}

// InternalStructurePoints is the total internal structure per tonnage for a
// standard biped.
var InternalStructurePoints = map[int]int{
	10: 17, 15: 25, 20: 33, 25: 42, 30: 50,
	35: 58, 40: 66, 45: 75, 50: 83, 55: 91,
	60: 99, 65: 107, 70: 116, 75: 124, 80: 132,
	85: 140, 90: 148, 95: 157, 100: 171,
}

// MaxArmorPoints is the armor ceiling for a tonnage: twice the internal
// structure, plus the head's three bonus points.
func MaxArmorPoints(tonnage int) int {
	is, ok := InternalStructurePoints[tonnage]
	if !ok {
		return 0
	}
	return 2*is + 3
}
