// Package validation runs the construction-rule pipeline over a unit
// configuration: every stage always runs, findings accumulate, and the caller
// sees the whole picture in one pass.
package validation

import (
	"math"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/calcs"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
)

// stage is one validator in the pipeline. Stages are pure: they only append
// findings to the report.
type stage func(unit models.UnitConfiguration, vc Context, r *Report)

var pipeline = []stage{
	validateBasicInfo,
	validateSystemComponents,
	validateWeight,
	validateHeat,
	validateCriticalSlots,
	validateTechCompatibility,
	validateArmorStructure,
}

// Validate runs the full pipeline. Stages never short-circuit; a unit failing
// basic checks still gets its weight, heat and slot findings.
func Validate(unit models.UnitConfiguration, vc Context) *Report {
	r := NewReport()
	for _, s := range pipeline {
		s(unit, vc, r)
	}
	return r
}

const (
	minTonnage = 20
	maxTonnage = 100
)

func validateBasicInfo(unit models.UnitConfiguration, vc Context, r *Report) {
	if unit.Chassis == "" {
		r.AddError("missing_chassis", "chassis", "unit has no chassis name")
	}
	if unit.Tonnage < minTonnage || unit.Tonnage > maxTonnage {
		r.AddError("tonnage_range", "tonnage", "tonnage %d outside the %d-%d range", unit.Tonnage, minTonnage, maxTonnage)
	} else if unit.Tonnage%5 != 0 {
		r.Add(vc.borderline(), "tonnage_step", "tonnage", "tonnage %d is not a 5-ton increment", unit.Tonnage)
	}
	if unit.WalkMP < 1 {
		r.AddError("walk_mp_min", "walk_mp", "walking speed must be at least 1 MP")
	}
	if unit.Tonnage*unit.WalkMP > construct.MaxEngineRating {
		r.AddError("engine_rating_cap", "walk_mp",
			"%d tons at %d MP needs rating %d, over the %d cap",
			unit.Tonnage, unit.WalkMP, unit.Tonnage*unit.WalkMP, construct.MaxEngineRating)
	}
	if vc.ValidateOptionalFields && unit.Model == "" {
		r.AddInfo("missing_model", "model", "unit has no model code")
	}
}

// knownComponentTypes reports whether every structural selection names a type
// the rule tables know. Later stages consult this before doing table lookups;
// an unknown name in user input is a finding, not a panic.
func knownComponentTypes(unit models.UnitConfiguration) bool {
	if !construct.IsEngineType(unit.Engine.Type) ||
		!construct.IsGyroType(unit.Gyro.Type) ||
		!construct.IsStructureType(unit.Structure.Type) ||
		!construct.IsArmorType(unit.Armor.Type) ||
		!construct.IsHeatSinkType(unit.HeatSinks.Type) {
		return false
	}
	if unit.JumpMP > 0 && !construct.IsJumpJetType(unit.JumpJets.Type) {
		return false
	}
	for _, enh := range unit.Enhancements {
		if !construct.IsEnhancementType(enh.Type) {
			return false
		}
	}
	return true
}

func validateSystemComponents(unit models.UnitConfiguration, vc Context, r *Report) {
	check := func(ok bool, id, field, name string) {
		if !ok {
			r.AddError(id, field, "unknown %s type %q", field, name)
		}
	}
	check(construct.IsEngineType(unit.Engine.Type), "unknown_engine", "engine", unit.Engine.Type)
	check(construct.IsGyroType(unit.Gyro.Type), "unknown_gyro", "gyro", unit.Gyro.Type)
	check(construct.IsStructureType(unit.Structure.Type), "unknown_structure", "structure", unit.Structure.Type)
	check(construct.IsArmorType(unit.Armor.Type), "unknown_armor", "armor", unit.Armor.Type)
	check(construct.IsHeatSinkType(unit.HeatSinks.Type), "unknown_heat_sink", "heat_sinks", unit.HeatSinks.Type)
	if unit.JumpMP > 0 {
		check(construct.IsJumpJetType(unit.JumpJets.Type), "unknown_jump_jet", "jump_jets", unit.JumpJets.Type)
	}
	for _, enh := range unit.Enhancements {
		check(construct.IsEnhancementType(enh.Type), "unknown_enhancement", "enhancements", enh.Type)
	}

	if unit.HeatSinkCnt < 10 {
		r.AddError("heat_sink_min", "heat_sink_count", "units require at least 10 heat sinks, have %d", unit.HeatSinkCnt)
	}
	if vc.ValidateConstructionRules && unit.JumpMP > unit.WalkMP {
		r.AddError("jump_exceeds_walk", "jump_mp", "jump %d exceeds walking speed %d", unit.JumpMP, unit.WalkMP)
	}
}

func validateWeight(unit models.UnitConfiguration, vc Context, r *Report) {
	if !knownComponentTypes(unit) {
		return
	}
	b := calcs.Weight(unit)
	if b.Overweight {
		r.AddError("overweight", "tonnage", "build is %.1f tons over the %d-ton limit", -b.Remaining, unit.Tonnage)
	} else if vc.ValidateOptionalFields && b.Remaining >= 0.5 {
		r.AddInfo("unused_tonnage", "tonnage", "%.1f tons unallocated", b.Remaining)
	}
}

func validateHeat(unit models.UnitConfiguration, vc Context, r *Report) {
	if !knownComponentTypes(unit) {
		return
	}
	b := calcs.Heat(unit)
	if b.Net > 0 {
		r.AddWarning("heat_imbalance", "heat_sinks",
			"alpha strike generates %d heat against %d dissipation (+%d)", b.Generation, b.Dissipation, b.Net)
	}
}

func validateCriticalSlots(unit models.UnitConfiguration, vc Context, r *Report) {
	if !knownComponentTypes(unit) {
		return
	}
	req := calcs.RequiredSlots(unit)
	if req.Critical {
		r.AddError("slot_overflow", "loadout",
			"requires %d critical slots but only %d exist", req.Total, req.Available)
	} else if float64(req.Total) > 0.9*float64(req.Available) {
		r.Add(vc.borderline(), "slot_pressure", "loadout",
			"%d of %d critical slots used; little room remains", req.Total, req.Available)
	}

	// Locations can individually overflow even when the unit-wide total fits.
	for _, lu := range calcs.Utilization(unit).Locations {
		if lu.Used > lu.Capacity {
			r.AddError("location_overflow", "loadout."+string(lu.Location),
				"%s holds %d slots of equipment in %d available",
				construct.LocationName(lu.Location), lu.Used, lu.Capacity)
		}
	}
}

func validateTechCompatibility(unit models.UnitConfiguration, vc Context, r *Report) {
	if !vc.CheckTechCompatibility {
		return
	}
	if unit.TechBase == construct.Mixed {
		// Per-subsystem bases are the point of a mixed unit.
		return
	}
	subsystems := []struct {
		cat construct.Category
		sel models.Selection
	}{
		{construct.CategoryEngine, unit.Engine},
		{construct.CategoryGyro, unit.Gyro},
		{construct.CategoryStructure, unit.Structure},
		{construct.CategoryArmor, unit.Armor.Selection},
		{construct.CategoryHeatSink, unit.HeatSinks},
	}
	for _, s := range subsystems {
		if s.sel.TechBase != "" && s.sel.TechBase != unit.TechBase {
			r.Add(vc.borderline(), "mixed_tech", string(s.cat),
				"%s is %s on a %s unit", s.cat, s.sel.TechBase, unit.TechBase)
		}
	}
}

func validateArmorStructure(unit models.UnitConfiguration, vc Context, r *Report) {
	if !knownComponentTypes(unit) {
		return
	}
	base := unit.Armor.TechBase
	if base == "" || base == construct.Mixed {
		base = construct.InnerSphere
	}

	purchasable := int(math.Floor(unit.Armor.Tonnage * construct.ArmorPointsPerTon(unit.Armor.Type, base)))
	allocated := unit.Armor.TotalPoints()
	if allocated > purchasable {
		r.AddError("armor_overallocated", "armor.allocation",
			"allocation places %d points but %.1f tons of %s buys only %d",
			allocated, unit.Armor.Tonnage, unit.Armor.Type, purchasable)
	} else if vc.ValidateOptionalFields && allocated < purchasable {
		r.AddInfo("armor_unallocated", "armor.allocation",
			"%d purchased armor points are unallocated", purchasable-allocated)
	}

	if maxPts := construct.MaxArmorPoints(unit.Tonnage); maxPts > 0 && allocated > maxPts {
		r.AddError("armor_over_max", "armor.allocation",
			"%d armor points exceed the %d-point maximum for %d tons", allocated, maxPts, unit.Tonnage)
	}

	for loc, pts := range unit.Armor.Allocation {
		if pts < 0 {
			r.AddError("armor_negative", "armor.allocation."+string(loc),
				"%s has negative armor", construct.LocationName(loc))
		}
	}
}
