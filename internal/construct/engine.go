package construct

import (
	"fmt"
	"math"
)

const (
	// MaxEngineRating is the hard cap on fusion engine ratings.
	MaxEngineRating = 400
	// MinEngineRating is the floor for very light, very slow designs.
	MinEngineRating = 10
)

// EngineRating derives the required rating from tonnage and walking speed,
// clamped to the legal range.
func EngineRating(tonnage, walkMP int) int {
	rating := tonnage * walkMP
	if rating < MinEngineRating {
		rating = MinEngineRating
	}
	if rating > MaxEngineRating {
		rating = MaxEngineRating
	}
	return rating
}

// RunMP derives running speed from walking speed.
func RunMP(walkMP int) int {
	return int(math.Ceil(float64(walkMP) * 1.5))
}

// IntegratedHeatSinks is how many heat sinks the engine houses for free,
// capped at ten.
func IntegratedHeatSinks(rating int) int {
	n := rating / 25
	if n > 10 {
		n = 10
	}
	return n
}

type engineSpec struct {
	centerSlots int
	// sideSlots is per side torso. Zero means the engine fits entirely in
	// the center torso.
	sideSlots  map[TechBase]int
	weightMult float64
}

// engineTable keys engine type names to their slot layout and weight
// multiplier. Side-torso counts are the tech-base asymmetry that makes an
// IS XL engine 4 slots bulkier than its Clan equivalent.
var engineTable = map[string]engineSpec{
	"Standard": {centerSlots: 6, weightMult: 1.0},
	"XL": {
		centerSlots: 6,
		sideSlots:   map[TechBase]int{InnerSphere: 3, Clan: 2},
		weightMult:  0.5,
	},
	"Light": {
		centerSlots: 6,
		sideSlots:   map[TechBase]int{InnerSphere: 2, Clan: 2},
		weightMult:  0.75,
	},
	"XXL": {
		centerSlots: 6,
		sideSlots:   map[TechBase]int{InnerSphere: 6, Clan: 4},
		weightMult:  0.33,
	},
	"Compact": {centerSlots: 3, weightMult: 1.5},
	"ICE":     {centerSlots: 6, weightMult: 2.0},
}

// EngineTypes lists the known engine type names.
func EngineTypes() []string {
	return []string{"Standard", "XL", "Light", "XXL", "Compact", "ICE"}
}

// EngineSlots returns (centerTorso, perSideTorso) slot counts for an engine
// type under a tech base. Unknown engine types are a catalog-consistency bug
// and panic.
func EngineSlots(engineType string, base TechBase) (center, perSide int) {
	spec, ok := engineTable[engineType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown engine type %q", engineType))
	}
	if spec.sideSlots == nil {
		return spec.centerSlots, 0
	}
	side, ok := spec.sideSlots[base]
	if !ok {
		panic(fmt.Sprintf("construct: engine type %q has no %s variant", engineType, base))
	}
	return spec.centerSlots, side
}

// TotalEngineSlots is the center slots plus both side torsos.
func TotalEngineSlots(engineType string, base TechBase) int {
	center, side := EngineSlots(engineType, base)
	return center + 2*side
}

// EngineWeight returns the engine tonnage for a rating: rating/25 tons for a
// standard fusion plant, scaled by the type multiplier and rounded up to the
// half ton. Weight multipliers are shared across tech bases; only the
// side-torso slot counts differ.
func EngineWeight(engineType string, rating int) float64 {
	spec, ok := engineTable[engineType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown engine type %q", engineType))
	}
	return roundHalfTonUp(float64(rating) / 25.0 * spec.weightMult)
}

// IsEngineType reports whether the name is a known engine type.
func IsEngineType(name string) bool {
	_, ok := engineTable[name]
	return ok
}

// roundHalfTonUp rounds a tonnage up to the next half ton, the standard
// construction rounding rule.
func roundHalfTonUp(tons float64) float64 {
	return math.Ceil(tons*2) / 2
}
