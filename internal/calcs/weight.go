package calcs

import (
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
)

// Standard cockpit weight in tons.
const cockpitWeight = 3.0

// WeightBreakdown itemizes where the tonnage budget goes. Armor is always the
// configuration's stored armor tonnage, regardless of type or allocation.
type WeightBreakdown struct {
	Structure    float64 `json:"structure"`
	Engine       float64 `json:"engine"`
	Gyro         float64 `json:"gyro"`
	Cockpit      float64 `json:"cockpit"`
	HeatSinks    float64 `json:"heat_sinks"`
	Armor        float64 `json:"armor"`
	JumpJets     float64 `json:"jump_jets"`
	Targeting    float64 `json:"targeting"`
	Enhancements float64 `json:"enhancements"`
	Equipment    float64 `json:"equipment"`
	Ammo         float64 `json:"ammo"`
	Total        float64 `json:"total"`
	Remaining    float64 `json:"remaining"`
	Overweight   bool    `json:"overweight"`
}

// Weight computes the full tonnage breakdown for a configuration.
func Weight(unit models.UnitConfiguration) WeightBreakdown {
	rating := unit.EngineRating()

	b := WeightBreakdown{
		Structure: construct.StructureWeight(unit.Structure.Type, unit.Tonnage),
		Engine:    construct.EngineWeight(unit.Engine.Type, rating),
		Gyro:      construct.GyroWeight(unit.Gyro.Type, rating),
		Cockpit:   cockpitWeight,
		HeatSinks: construct.HeatSinkWeight(unit.HeatSinkCnt),
		Armor:     unit.Armor.Tonnage,
	}
	if unit.JumpMP > 0 {
		b.JumpJets = construct.JumpJetWeight(unit.JumpJets.Type, unit.Tonnage, unit.JumpMP)
	}
	if unit.Targeting.Type != "" {
		b.Targeting = construct.TargetingComputerWeight(effectiveBase(unit.Targeting, unit), directFireTonnage(unit))
	}
	for _, enh := range unit.Enhancements {
		b.Enhancements += construct.EnhancementWeight(enh.Type, effectiveBase(enh, unit), unit.Tonnage)
	}
	for _, m := range unit.Loadout {
		if m.IsAmmo() {
			b.Ammo += m.Tonnage
		} else {
			b.Equipment += m.Tonnage
		}
	}

	b.Total = b.Structure + b.Engine + b.Gyro + b.Cockpit + b.HeatSinks +
		b.Armor + b.JumpJets + b.Targeting + b.Enhancements + b.Equipment + b.Ammo
	b.Remaining = float64(unit.Tonnage) - b.Total
	b.Overweight = b.Remaining < 0
	return b
}
