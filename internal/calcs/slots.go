package calcs

import (
	"fmt"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
)

// SlotRequirements is the demand side of critical-slot accounting. System
// covers engine, gyro, cockpit, actuators, external heat sinks, jump jets and
// enhancements; Special covers the structure/armor tech surcharges; equipment
// and ammunition come from the loadout.
type SlotRequirements struct {
	System    int  `json:"system"`
	Special   int  `json:"special"`
	Equipment int  `json:"equipment"`
	Ammo      int  `json:"ammo"`
	Total     int  `json:"total"`
	Available int  `json:"available"`
	Critical  bool `json:"critical"`
}

// LocationSlots is one location's capacity and reservation.
type LocationSlots struct {
	Location  construct.Location `json:"location"`
	Capacity  int                `json:"capacity"`
	Reserved  int                `json:"reserved"`
	Available int                `json:"available"`
}

// AvailableSlots is the supply side: fixed capacities minus system
// reservations. Recomputed on demand, never cached across mutations.
type AvailableSlots struct {
	Total           int             `json:"total"`
	SystemReserved  int             `json:"system_reserved"`
	SpecialReserved int             `json:"special_reserved"`
	Usable          int             `json:"usable"`
	Locations       []LocationSlots `json:"locations"`
}

// effectiveBase resolves the tech base a selection's table lookups should
// use. Selections made under Mixed units always carry their own base; an
// unset base falls back to the unit's, and Mixed itself falls back to IS.
func effectiveBase(sel models.Selection, unit models.UnitConfiguration) construct.TechBase {
	base := sel.TechBase
	if base == "" {
		base = unit.TechBase
	}
	if base == construct.Mixed {
		base = construct.InnerSphere
	}
	return base
}

// systemSlotCount totals engine, gyro, cockpit/actuator, external heat sink,
// jump jet, targeting computer and enhancement criticals.
func systemSlotCount(unit models.UnitConfiguration) int {
	rating := unit.EngineRating()
	total := construct.TotalEngineSlots(unit.Engine.Type, effectiveBase(unit.Engine, unit))
	total += construct.GyroSlots(unit.Gyro.Type)
	for _, loc := range construct.Locations {
		total += construct.FixedSystemSlots(loc)
	}
	total += construct.ExternalHeatSinkSlots(unit.HeatSinks.Type, effectiveBase(unit.HeatSinks, unit), unit.HeatSinkCnt, rating)
	if unit.JumpMP > 0 {
		total += construct.JumpJetSlots(unit.JumpJets.Type, unit.JumpMP)
	}
	if unit.Targeting.Type != "" {
		total += construct.TargetingComputerSlots(effectiveBase(unit.Targeting, unit), directFireTonnage(unit))
	}
	for _, enh := range unit.Enhancements {
		total += construct.EnhancementSlots(enh.Type, effectiveBase(enh, unit), unit.Tonnage)
	}
	return total
}

// directFireTonnage sums the weapons a targeting computer drives: the heat
// generating mounts that are not missile launchers or ammunition.
func directFireTonnage(unit models.UnitConfiguration) float64 {
	var tons float64
	for _, m := range unit.Loadout {
		if m.IsAmmo() || m.Type == "Missile" || m.Heat == 0 {
			continue
		}
		tons += m.Tonnage
	}
	return tons
}

// specialSlotCount totals the structure and armor tech surcharges.
func specialSlotCount(unit models.UnitConfiguration) int {
	return construct.StructureSlots(unit.Structure.Type, effectiveBase(unit.Structure, unit)) +
		construct.ArmorSlots(unit.Armor.Type, effectiveBase(unit.Armor.Selection, unit))
}

// RequiredSlots computes total slot demand for a configuration and its
// loadout. Pure function of its inputs.
func RequiredSlots(unit models.UnitConfiguration) SlotRequirements {
	req := SlotRequirements{
		System:  systemSlotCount(unit),
		Special: specialSlotCount(unit),
	}
	for _, m := range unit.Loadout {
		if m.IsAmmo() {
			req.Ammo += m.Slots
		} else {
			req.Equipment += m.Slots
		}
	}
	req.Total = req.System + req.Special + req.Equipment + req.Ammo
	req.Available = construct.TotalSlotCapacity()
	req.Critical = req.Total > req.Available
	return req
}

// ComputeAvailableSlots computes per-location free space after system
// reservations.
func ComputeAvailableSlots(unit models.UnitConfiguration) AvailableSlots {
	engineCenter, engineSide := construct.EngineSlots(unit.Engine.Type, effectiveBase(unit.Engine, unit))
	gyro := construct.GyroSlots(unit.Gyro.Type)

	out := AvailableSlots{Total: construct.TotalSlotCapacity()}
	for _, loc := range construct.Locations {
		reserved := construct.FixedSystemSlots(loc)
		switch loc {
		case construct.CenterTorso:
			reserved += engineCenter + gyro
		case construct.LeftTorso, construct.RightTorso:
			reserved += engineSide
		}
		capacity := construct.SlotCapacity[loc]
		out.SystemReserved += reserved
		out.Locations = append(out.Locations, LocationSlots{
			Location:  loc,
			Capacity:  capacity,
			Reserved:  reserved,
			Available: capacity - reserved,
		})
	}
	out.SpecialReserved = specialSlotCount(unit)
	out.Usable = out.Total - out.SystemReserved - out.SpecialReserved
	return out
}

// Efficiency bands for location utilization.
const (
	BandExcellent = "excellent"
	BandGood      = "good"
	BandFair      = "fair"
	BandPoor      = "poor"
	BandCritical  = "critical"
)

// utilizationBand buckets a percentage into an efficiency band.
func utilizationBand(pct float64) string {
	switch {
	case pct <= 70:
		return BandExcellent
	case pct <= 85:
		return BandGood
	case pct <= 95:
		return BandFair
	case pct <= 100:
		return BandPoor
	default:
		return BandCritical
	}
}

// LocationUtilization is one location's fill level.
type LocationUtilization struct {
	Location construct.Location `json:"location"`
	Capacity int                `json:"capacity"`
	Used     int                `json:"used"`
	Percent  float64            `json:"percent"`
	Band     string             `json:"band"`
}

// Bottleneck flags a location above 90% with a suggested remedy.
type Bottleneck struct {
	Location       construct.Location `json:"location"`
	Percent        float64            `json:"percent"`
	Recommendation string             `json:"recommendation"`
}

// SlotUtilization is the utilization report for live editor feedback.
type SlotUtilization struct {
	OverallPercent float64               `json:"overall_percent"`
	Locations      []LocationUtilization `json:"locations"`
	Bottlenecks    []Bottleneck          `json:"bottlenecks"`
}

// Utilization buckets every location into an efficiency band and reports
// bottlenecks. Deterministic and side-effect free, safe to call on every
// keystroke.
func Utilization(unit models.UnitConfiguration) SlotUtilization {
	avail := ComputeAvailableSlots(unit)

	usedByLoc := make(map[construct.Location]int, len(construct.Locations))
	for _, ls := range avail.Locations {
		usedByLoc[ls.Location] = ls.Reserved
	}
	for _, m := range unit.Loadout {
		usedByLoc[m.Location] += m.Slots
	}

	var out SlotUtilization
	totalUsed := 0
	for _, loc := range construct.Locations {
		capacity := construct.SlotCapacity[loc]
		used := usedByLoc[loc]
		totalUsed += used
		pct := float64(used) / float64(capacity) * 100
		out.Locations = append(out.Locations, LocationUtilization{
			Location: loc,
			Capacity: capacity,
			Used:     used,
			Percent:  pct,
			Band:     utilizationBand(pct),
		})
		if pct > 90 {
			out.Bottlenecks = append(out.Bottlenecks, Bottleneck{
				Location:       loc,
				Percent:        pct,
				Recommendation: bottleneckAdvice(loc, pct),
			})
		}
	}
	out.OverallPercent = float64(totalUsed) / float64(avail.Total) * 100
	return out
}

func bottleneckAdvice(loc construct.Location, pct float64) string {
	if pct > 100 {
		return fmt.Sprintf("%s is over capacity; move equipment to another location", construct.LocationName(loc))
	}
	return fmt.Sprintf("%s is nearly full; consider relocating equipment before adding more", construct.LocationName(loc))
}
