package construct

import (
	"fmt"
	"math"
)

type heatSinkSpec struct {
	slotsPer    map[TechBase]int
	dissipation int
}

// heatSinkTable: singles are 1 slot everywhere; IS doubles are 3 slots per
// externally mounted sink against the Clan 2.
var heatSinkTable = map[string]heatSinkSpec{
	"Single": {slotsPer: map[TechBase]int{InnerSphere: 1, Clan: 1}, dissipation: 1},
	"Double": {slotsPer: map[TechBase]int{InnerSphere: 3, Clan: 2}, dissipation: 2},
}

// HeatSinkTypes lists the known heat sink type names.
func HeatSinkTypes() []string {
	return []string{"Single", "Double"}
}

// HeatSinkSlotsEach returns the criticals one externally mounted heat sink of
// this type occupies.
func HeatSinkSlotsEach(sinkType string, base TechBase) int {
	spec, ok := heatSinkTable[sinkType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown heat sink type %q", sinkType))
	}
	slots, ok := spec.slotsPer[base]
	if !ok {
		panic(fmt.Sprintf("construct: heat sink type %q has no %s variant", sinkType, base))
	}
	return slots
}

// ExternalHeatSinkSlots is the slot cost of every sink that does not fit
// inside the engine.
func ExternalHeatSinkSlots(sinkType string, base TechBase, count, engineRating int) int {
	external := count - IntegratedHeatSinks(engineRating)
	if external < 0 {
		external = 0
	}
	return external * HeatSinkSlotsEach(sinkType, base)
}

// HeatSinkDissipation is the total heat removed per turn by count sinks.
func HeatSinkDissipation(sinkType string, count int) int {
	spec, ok := heatSinkTable[sinkType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown heat sink type %q", sinkType))
	}
	return spec.dissipation * count
}

// HeatSinkWeight: the first ten sinks ship free with the engine, every sink
// beyond that weighs a ton regardless of type.
func HeatSinkWeight(count int) float64 {
	if count <= 10 {
		return 0
	}
	return float64(count - 10)
}

// IsHeatSinkType reports whether the name is a known heat sink type.
func IsHeatSinkType(name string) bool {
	_, ok := heatSinkTable[name]
	return ok
}

type jumpJetSpec struct {
	slotsPer   int
	weightMult float64
}

var jumpJetTable = map[string]jumpJetSpec{
	"Standard": {slotsPer: 1, weightMult: 1.0},
	"Improved": {slotsPer: 2, weightMult: 2.0},
}

// JumpJetTypes lists the known jump jet type names.
func JumpJetTypes() []string {
	return []string{"Standard", "Improved"}
}

// JumpJetSlots is the slot cost of count jets of the given type.
func JumpJetSlots(jetType string, count int) int {
	spec, ok := jumpJetTable[jetType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown jump jet type %q", jetType))
	}
	return spec.slotsPer * count
}

// JumpJetWeight: per-jet weight steps with the tonnage class (light 0.5t,
// medium/heavy 1t, assault 2t), doubled for improved jets.
func JumpJetWeight(jetType string, tonnage, count int) float64 {
	spec, ok := jumpJetTable[jetType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown jump jet type %q", jetType))
	}
	var per float64
	switch {
	case tonnage <= 55:
		per = 0.5
	case tonnage <= 85:
		per = 1.0
	default:
		per = 2.0
	}
	return roundHalfTonUp(per * spec.weightMult * float64(count))
}

// IsJumpJetType reports whether the name is a known jump jet type.
func IsJumpJetType(name string) bool {
	_, ok := jumpJetTable[name]
	return ok
}

// MASCSlots scales with tonnage and is cheaper for Clan designs.
func MASCSlots(base TechBase, tonnage int) int {
	if base == Clan {
		return int(math.Ceil(float64(tonnage) / 25.0))
	}
	return int(math.Ceil(float64(tonnage) / 20.0))
}

// MASCWeight equals the slot count in tons.
func MASCWeight(base TechBase, tonnage int) float64 {
	return float64(MASCSlots(base, tonnage))
}

// TSMSlots: triple-strength myomer is six criticals and weighs nothing.
const TSMSlots = 6

// EnhancementSlots dispatches by enhancement name.
func EnhancementSlots(name string, base TechBase, tonnage int) int {
	switch name {
	case "MASC":
		return MASCSlots(base, tonnage)
	case "TSM":
		return TSMSlots
	}
	panic(fmt.Sprintf("construct: unknown enhancement %q", name))
}

// EnhancementWeight dispatches by enhancement name.
func EnhancementWeight(name string, base TechBase, tonnage int) float64 {
	switch name {
	case "MASC":
		return MASCWeight(base, tonnage)
	case "TSM":
		return 0
	}
	panic(fmt.Sprintf("construct: unknown enhancement %q", name))
}

// IsEnhancementType reports whether the name is a known enhancement.
func IsEnhancementType(name string) bool {
	return name == "MASC" || name == "TSM"
}

// TargetingComputerSlots depends on the tonnage of direct-fire weapons it
// drives: one critical per 4 tons for IS, per 5 tons for Clan.
func TargetingComputerSlots(base TechBase, directFireTonnage float64) int {
	if directFireTonnage <= 0 {
		return 0
	}
	div := 4.0
	if base == Clan {
		div = 5.0
	}
	return int(math.Ceil(directFireTonnage / div))
}

// TargetingComputerWeight equals the slot count in tons.
func TargetingComputerWeight(base TechBase, directFireTonnage float64) float64 {
	return float64(TargetingComputerSlots(base, directFireTonnage))
}
