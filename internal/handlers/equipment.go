package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/catalog"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/construct"
)

// EquipmentHandler serves catalog searches. The tech context comes off the
// query string so the editor always sees options legal for the unit it is
// editing.
type EquipmentHandler struct {
	Catalog catalog.Service
}

func (h *EquipmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var cats []construct.Category
	for _, raw := range q["category"] {
		cats = append(cats, construct.Category(raw))
	}

	// The tech context rides on the query itself; the catalog service is
	// shared across requests.
	query := catalog.Query{
		Categories: cats,
		SortBy:     q.Get("sort"),
		SortOrder:  q.Get("order"),
		Tech: catalog.TechContext{
			TechBase: construct.NormalizeTechBase(q.Get("tech_base")),
			UnitType: q.Get("unit_type"),
		},
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		query.Page = page
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil {
		query.PageSize = size
	}

	result, err := h.Catalog.Search(r.Context(), query)
	if err != nil {
		log.Printf("equipment search: %v", err)
		http.Error(w, "Catalog unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
