package construct

// Location is one of the eight body locations equipment can occupy.
type Location string

const (
	Head        Location = "HD"
	CenterTorso Location = "CT"
	LeftTorso   Location = "LT"
	RightTorso  Location = "RT"
	LeftArm     Location = "LA"
	RightArm    Location = "RA"
	LeftLeg     Location = "LL"
	RightLeg    Location = "RL"
)

// Locations lists every body location in display order.
var Locations = []Location{
	Head, CenterTorso, LeftTorso, RightTorso,
	LeftArm, RightArm, LeftLeg, RightLeg,
}

// SlotCapacity is the fixed critical-slot capacity per location.
var SlotCapacity = map[Location]int{
	Head:        6,
	CenterTorso: 12,
	LeftTorso:   12,
	RightTorso:  12,
	LeftArm:     12,
	RightArm:    12,
	LeftLeg:     6,
	RightLeg:    6,
}

// TotalSlotCapacity is the sum of every location's capacity.
func TotalSlotCapacity() int {
	total := 0
	for _, loc := range Locations {
		total += SlotCapacity[loc]
	}
	return total
}

// fixedSystemSlots are the per-location slots consumed by cockpit systems and
// actuators on every standard biped, before engine and gyro are placed:
// head holds life support (2), sensors (2) and the cockpit (1); each arm holds
// shoulder, upper arm, lower arm and hand actuators; each leg holds hip,
// upper leg, lower leg and foot actuators.
var fixedSystemSlots = map[Location]int{
	Head:     5,
	LeftArm:  4,
	RightArm: 4,
	LeftLeg:  4,
	RightLeg: 4,
}

// FixedSystemSlots returns the actuator/cockpit slot reservation for a
// location. Engine and gyro reservations are configuration-dependent and
// handled by the slot calculator.
func FixedSystemSlots(loc Location) int {
	return fixedSystemSlots[loc]
}

// LocationName returns the long display name for a location code.
func LocationName(loc Location) string {
	switch loc {
	case Head:
		return "Head"
	case CenterTorso:
		return "Center Torso"
	case LeftTorso:
		return "Left Torso"
	case RightTorso:
		return "Right Torso"
	case LeftArm:
		return "Left Arm"
	case RightArm:
		return "Right Arm"
	case LeftLeg:
		return "Left Leg"
	case RightLeg:
		return "Right Leg"
	}
	return string(loc)
}

// ParseLocation maps both long names ("Left Arm") and codes ("LA") onto a
// Location. Unknown strings come back as-is so callers can report them.
func ParseLocation(s string) Location {
	switch s {
	case "Left Arm", "LA":
		return LeftArm
	case "Right Arm", "RA":
		return RightArm
	case "Left Torso", "LT":
		return LeftTorso
	case "Right Torso", "RT":
		return RightTorso
	case "Center Torso", "CT":
		return CenterTorso
	case "Head", "HD":
		return Head
	case "Left Leg", "LL":
		return LeftLeg
	case "Right Leg", "RL":
		return RightLeg
	}
	return Location(s)
}
