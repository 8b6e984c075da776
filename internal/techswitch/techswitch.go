// Package techswitch resolves what happens to a subsystem's component
// selection when its tech base changes: restore the remembered choice for the
// target base, or fall back to the catalog default.
package techswitch

import (
	"context"
	"errors"
	"fmt"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/catalog"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/memory"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
)

// ErrNoOptions means the catalog has no legal component for the category
// under the target tech base. The configuration is left untouched.
var ErrNoOptions = errors.New("techswitch: no legal options for category under target tech base")

// ResolutionKind tags how the new component was chosen.
type ResolutionKind string

const (
	// Restored means the component came from tech-base memory.
	Restored ResolutionKind = "restored"
	// Defaulted means memory was empty and the catalog default was used.
	Defaulted ResolutionKind = "defaulted"
	// Unchanged means the subsystem was already on the requested base.
	Unchanged ResolutionKind = "unchanged"
)

// Resolution is the tagged outcome of a component resolution. A failed
// catalog query is not a Resolution; it surfaces as an error from Switch.
type Resolution struct {
	Kind      ResolutionKind `json:"kind"`
	Component string         `json:"component"`
	Reason    string         `json:"reason"`
}

// SwitchResult carries the updated configuration and memory plus how the new
// selection was decided. Displaced/retained equipment requires live
// allocation data and is resolved by the allocation subsystem; the lists here
// are placeholders.
type SwitchResult struct {
	Config     models.UnitConfiguration `json:"config"`
	Memory     memory.State             `json:"memory"`
	Resolution Resolution               `json:"resolution"`
	Restored   bool                     `json:"restored"`
	Reason     string                   `json:"reason"`
	Displaced  []string                 `json:"displaced_equipment"`
	Retained   []string                 `json:"retained_equipment"`
}

// Switch moves one subsystem to a new tech base. The inputs are treated as
// immutable; updated copies are returned. If the catalog query fails the
// error propagates and neither configuration nor memory is touched — a
// silently fabricated component would corrupt the unit without the user
// noticing.
func Switch(
	ctx context.Context,
	subsystem construct.Category,
	newBase construct.TechBase,
	cfg models.UnitConfiguration,
	mem memory.State,
	svc catalog.Service,
) (SwitchResult, error) {
	mem = memory.Normalize(mem)
	oldBase := cfg.SubsystemBase(subsystem)
	current := currentComponent(cfg, subsystem)

	if oldBase == newBase {
		res := Resolution{
			Kind:      Unchanged,
			Component: current,
			Reason:    fmt.Sprintf("%s is already %s", subsystem, newBase),
		}
		return SwitchResult{
			Config:     cfg,
			Memory:     mem,
			Resolution: res,
			Reason:     res.Reason,
			Displaced:  []string{},
			Retained:   []string{},
		}, nil
	}

	resolved := mem.Get(subsystem, newBase)
	var res Resolution
	if resolved != "" {
		res = Resolution{
			Kind:      Restored,
			Component: resolved,
			Reason:    fmt.Sprintf("restored previous %s selection %q for %s", subsystem, resolved, newBase),
		}
	} else {
		tc := catalog.TechContext{TechBase: newBase, UnitType: "BattleMech"}
		name, err := catalog.FirstAvailable(ctx, svc, subsystem, tc)
		if err != nil {
			return SwitchResult{}, fmt.Errorf("techswitch: resolve %s for %s: %w", subsystem, newBase, err)
		}
		if name == "" {
			return SwitchResult{}, fmt.Errorf("%w: %s/%s", ErrNoOptions, subsystem, newBase)
		}
		resolved = name
		res = Resolution{
			Kind:      Defaulted,
			Component: resolved,
			Reason:    fmt.Sprintf("no %s memory for %s, defaulted to catalog option %q", subsystem, newBase, resolved),
		}
	}

	next := cfg.Clone()
	if next.TechProgression == nil {
		next.TechProgression = map[construct.Category]construct.TechBase{}
	}
	next.TechProgression[subsystem] = newBase
	applySelection(&next, subsystem, models.Selection{Type: resolved, TechBase: newBase})

	// Remember the outgoing component under its old base so switching back
	// round-trips, then record the resolved one under the new base.
	if current != "" {
		mem = mem.With(subsystem, oldBase, current)
	}
	mem = mem.With(subsystem, newBase, resolved)

	return SwitchResult{
		Config:     next,
		Memory:     mem,
		Resolution: res,
		Restored:   res.Kind == Restored,
		Reason:     res.Reason,
		Displaced:  []string{},
		Retained:   []string{},
	}, nil
}

// currentComponent reads the subsystem's selected type name off the
// configuration.
func currentComponent(cfg models.UnitConfiguration, cat construct.Category) string {
	switch cat {
	case construct.CategoryStructure:
		return cfg.Structure.Type
	case construct.CategoryGyro:
		return cfg.Gyro.Type
	case construct.CategoryEngine:
		return cfg.Engine.Type
	case construct.CategoryHeatSink:
		return cfg.HeatSinks.Type
	case construct.CategoryTargeting:
		return cfg.Targeting.Type
	case construct.CategoryEnhancement:
		if len(cfg.Enhancements) > 0 {
			return cfg.Enhancements[0].Type
		}
		return ""
	case construct.CategoryJumpJet:
		return cfg.JumpJets.Type
	case construct.CategoryArmor:
		return cfg.Armor.Type
	}
	panic(fmt.Sprintf("techswitch: unknown category %q", cat))
}

// applySelection writes the resolved selection into the subsystem's field.
func applySelection(cfg *models.UnitConfiguration, cat construct.Category, sel models.Selection) {
	switch cat {
	case construct.CategoryStructure:
		cfg.Structure = sel
	case construct.CategoryGyro:
		cfg.Gyro = sel
	case construct.CategoryEngine:
		cfg.Engine = sel
	case construct.CategoryHeatSink:
		cfg.HeatSinks = sel
	case construct.CategoryTargeting:
		cfg.Targeting = sel
	case construct.CategoryEnhancement:
		cfg.Enhancements = []models.Selection{sel}
	case construct.CategoryJumpJet:
		cfg.JumpJets = sel
	case construct.CategoryArmor:
		cfg.Armor.Selection = sel
	default:
		panic(fmt.Sprintf("techswitch: unknown category %q", cat))
	}
}
