package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/calcs"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/catalog"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/memory"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/techswitch"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/validation"
)

// UnitsHandler exposes the rules engine: validation, derived calculations and
// tech-base switching. KV is optional; when set, switch-tech loads and saves
// the caller's tech-base memory server-side.
type UnitsHandler struct {
	Catalog catalog.Service
	KV      memory.KV
}

// Validate runs the full construction-rule pipeline on the posted unit.
func (h *UnitsHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Unit    models.UnitConfiguration `json:"unit"`
		Context *validation.Context      `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	vc := validation.DefaultContext()
	if req.Context != nil {
		vc = *req.Context
	}

	report := validation.Validate(req.Unit, vc)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// Calculations returns every derived figure the editor displays for a unit.
// Unknown component types are a validation problem; here they come back as a
// 422 with the report attached.
func (h *UnitsHandler) Calculations(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Unit models.UnitConfiguration `json:"unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	report := validation.Validate(req.Unit, validation.DefaultContext())
	if hasStructuralError(report) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(report)
		return
	}

	resp := struct {
		EngineRating int                    `json:"engine_rating"`
		RunMP        int                    `json:"run_mp"`
		Slots        calcs.SlotRequirements `json:"slots"`
		Available    calcs.AvailableSlots   `json:"available"`
		Utilization  calcs.SlotUtilization  `json:"utilization"`
		Weight       calcs.WeightBreakdown  `json:"weight"`
		Heat         calcs.HeatBalance      `json:"heat"`
		Validation   *validation.Report     `json:"validation"`
	}{
		EngineRating: req.Unit.EngineRating(),
		RunMP:        req.Unit.RunMP(),
		Slots:        calcs.RequiredSlots(req.Unit),
		Available:    calcs.ComputeAvailableSlots(req.Unit),
		Utilization:  calcs.Utilization(req.Unit),
		Weight:       calcs.Weight(req.Unit),
		Heat:         calcs.Heat(req.Unit),
		Validation:   report,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// hasStructuralError reports whether the unit names component types the rule
// tables cannot price; calculations would panic on them.
func hasStructuralError(report *validation.Report) bool {
	structural := map[string]bool{
		"unknown_engine": true, "unknown_gyro": true, "unknown_structure": true,
		"unknown_armor": true, "unknown_heat_sink": true, "unknown_jump_jet": true,
		"unknown_enhancement": true,
	}
	for _, e := range report.Errors {
		if structural[e.ID] {
			return true
		}
	}
	return false
}

// SwitchTech moves one subsystem to a new tech base, resolving the component
// through memory or the catalog default.
func (h *UnitsHandler) SwitchTech(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Unit      models.UnitConfiguration `json:"unit"`
		Subsystem construct.Category       `json:"subsystem"`
		TechBase  string                   `json:"tech_base"`
		Memory    memory.State             `json:"memory"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	known := false
	for _, cat := range construct.Categories {
		if cat == req.Subsystem {
			known = true
		}
	}
	if !known {
		http.Error(w, "Unknown subsystem", http.StatusBadRequest)
		return
	}

	// Request memory wins; otherwise fall back to the session's persisted
	// state when a store is wired.
	mem := req.Memory
	var key string
	if h.KV != nil {
		key = sessionMemoryKey(w, r)
		if mem == nil {
			mem = memory.Load(r.Context(), h.KV, key)
		}
	}

	newBase := construct.NormalizeTechBase(req.TechBase)
	res, err := techswitch.Switch(r.Context(), req.Subsystem, newBase, req.Unit, mem, h.Catalog)
	if err != nil {
		if errors.Is(err, techswitch.ErrNoOptions) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		log.Printf("switch-tech %s -> %s: %v", req.Subsystem, newBase, err)
		http.Error(w, "Component resolution failed", http.StatusBadGateway)
		return
	}

	if h.KV != nil {
		if err := memory.Save(r.Context(), h.KV, key, res.Memory); err != nil {
			log.Printf("switch-tech: persist memory: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
