package calcs

import (
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
)

// HeatBalance compares worst-case heat generation against sink capacity.
type HeatBalance struct {
	MovementHeat int  `json:"movement_heat"`
	WeaponHeat   int  `json:"weapon_heat"`
	Generation   int  `json:"generation"`
	Dissipation  int  `json:"dissipation"`
	Net          int  `json:"net"`
	Neutral      bool `json:"neutral"`
}

// movementHeat is running heat, or jumping heat (minimum 3) when jumping is
// hotter.
func movementHeat(unit models.UnitConfiguration) int {
	heat := 2
	if unit.JumpMP > 0 {
		jump := unit.JumpMP
		if jump < 3 {
			jump = 3
		}
		if jump > heat {
			heat = jump
		}
	}
	return heat
}

// Heat computes the heat balance for a configuration firing everything while
// moving.
func Heat(unit models.UnitConfiguration) HeatBalance {
	b := HeatBalance{MovementHeat: movementHeat(unit)}
	for _, m := range unit.Loadout {
		b.WeaponHeat += m.Heat
	}
	b.Generation = b.MovementHeat + b.WeaponHeat
	b.Dissipation = construct.HeatSinkDissipation(unit.HeatSinks.Type, unit.HeatSinkCnt)
	b.Net = b.Generation - b.Dissipation
	b.Neutral = b.Net <= 0
	return b
}
