package construct

import (
	"fmt"
	"math"
)

type gyroSpec struct {
	slots      int
	weightMult float64
}

// gyroTable holds the fixed slot counts and weight multipliers per gyro type.
// Gyro slot counts do not vary by tech base.
var gyroTable = map[string]gyroSpec{
	"Standard":   {slots: 4, weightMult: 1.0},
	"XL":         {slots: 6, weightMult: 0.5},
	"Compact":    {slots: 2, weightMult: 1.5},
	"Heavy-Duty": {slots: 4, weightMult: 2.0},
}

// GyroTypes lists the known gyro type names.
func GyroTypes() []string {
	return []string{"Standard", "XL", "Compact", "Heavy-Duty"}
}

// GyroSlots returns the center-torso slots a gyro type occupies.
func GyroSlots(gyroType string) int {
	spec, ok := gyroTable[gyroType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown gyro type %q", gyroType))
	}
	return spec.slots
}

// GyroWeight scales with engine rating: ceil(rating/100) tons for a standard
// gyro, times the type multiplier, rounded up to the half ton.
func GyroWeight(gyroType string, rating int) float64 {
	spec, ok := gyroTable[gyroType]
	if !ok {
		panic(fmt.Sprintf("construct: unknown gyro type %q", gyroType))
	}
	base := math.Ceil(float64(rating) / 100.0)
	return roundHalfTonUp(base * spec.weightMult)
}

// IsGyroType reports whether the name is a known gyro type.
func IsGyroType(name string) bool {
	_, ok := gyroTable[name]
	return ok
}
