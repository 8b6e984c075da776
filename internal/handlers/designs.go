package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/models"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/validation"
)

// DesignsHandler stores users' saved unit designs. Every save re-runs
// validation; the stored valid flag is never taken from the client.
type DesignsHandler struct {
	DB *sql.DB
}

type Design struct {
	ID        int64                     `json:"id"`
	Name      string                    `json:"name"`
	Tonnage   int                       `json:"tonnage"`
	TechBase  string                    `json:"tech_base"`
	Valid     bool                      `json:"valid"`
	ShareCode string                    `json:"share_code,omitempty"`
	CreatedAt string                    `json:"created_at"`
	UpdatedAt string                    `json:"updated_at"`
	Unit      *models.UnitConfiguration `json:"unit,omitempty"`
}

func (h *DesignsHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	rows, err := h.DB.Query(
		`SELECT id, name, tonnage, tech_base, valid, COALESCE(share_code,''), created_at, updated_at
		 FROM user_designs WHERE user_id = ? ORDER BY updated_at DESC`,
		user.ID,
	)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	designs := []Design{}
	for rows.Next() {
		var d Design
		if err := rows.Scan(&d.ID, &d.Name, &d.Tonnage, &d.TechBase, &d.Valid, &d.ShareCode, &d.CreatedAt, &d.UpdatedAt); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		designs = append(designs, d)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(designs)
}

func (h *DesignsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	var req struct {
		Name string                   `json:"name"`
		Unit models.UnitConfiguration `json:"unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		req.Name = req.Unit.Name()
	}
	if req.Name == "" {
		req.Name = "Untitled Design"
	}

	report := validation.Validate(req.Unit, validation.DefaultContext())
	cfg, err := json.Marshal(req.Unit)
	if err != nil {
		http.Error(w, "Invalid unit", http.StatusBadRequest)
		return
	}

	res, err := h.DB.Exec(
		`INSERT INTO user_designs (user_id, name, tonnage, tech_base, config, valid) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, req.Name, req.Unit.Tonnage, string(req.Unit.TechBase), string(cfg), report.Valid)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	id, _ := res.LastInsertId()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		ID    int64 `json:"id"`
		Valid bool  `json:"valid"`
	}{id, report.Valid})
}

func (h *DesignsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	var d Design
	var ownerID int64
	var cfg string
	err = h.DB.QueryRow(
		`SELECT id, user_id, name, tonnage, tech_base, valid, COALESCE(share_code,''), config, created_at, updated_at
		 FROM user_designs WHERE id = ?`, id,
	).Scan(&d.ID, &ownerID, &d.Name, &d.Tonnage, &d.TechBase, &d.Valid, &d.ShareCode, &cfg, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	// Check access
	user := UserFromContext(r.Context())
	shareCode := r.URL.Query().Get("share_code")
	if (user == nil || user.ID != ownerID) && (d.ShareCode == "" || d.ShareCode != shareCode) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	attachUnit(&d, cfg)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

func (h *DesignsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	// Verify ownership
	var ownerID int64
	if err := h.DB.QueryRow(`SELECT user_id FROM user_designs WHERE id = ?`, id).Scan(&ownerID); err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if user.ID != ownerID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req struct {
		Name      string                    `json:"name"`
		Unit      *models.UnitConfiguration `json:"unit"`
		ShareCode *string                   `json:"share_code"` // null = keep, "" = generate new
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Name != "" {
		if _, err := h.DB.Exec(`UPDATE user_designs SET name=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, req.Name, id); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
	}
	if req.Unit != nil {
		report := validation.Validate(*req.Unit, validation.DefaultContext())
		cfg, err := json.Marshal(*req.Unit)
		if err != nil {
			http.Error(w, "Invalid unit", http.StatusBadRequest)
			return
		}
		_, err = h.DB.Exec(
			`UPDATE user_designs SET tonnage=?, tech_base=?, config=?, valid=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`,
			req.Unit.Tonnage, string(req.Unit.TechBase), string(cfg), report.Valid, id)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
	}
	if req.ShareCode != nil {
		sc := *req.ShareCode
		if sc == "" {
			sc = uuid.NewString()
		}
		if _, err := h.DB.Exec(`UPDATE user_designs SET share_code=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, sc, id); err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (h *DesignsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	var ownerID int64
	if err := h.DB.QueryRow(`SELECT user_id FROM user_designs WHERE id = ?`, id).Scan(&ownerID); err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if user.ID != ownerID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if _, err := h.DB.Exec(`DELETE FROM user_designs WHERE id = ?`, id); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// SharedView serves a design by share code with no auth.
func (h *DesignsHandler) SharedView(w http.ResponseWriter, r *http.Request) {
	shareCode := r.PathValue("shareCode")
	if shareCode == "" {
		http.Error(w, "Missing share code", http.StatusBadRequest)
		return
	}

	var d Design
	var cfg string
	err := h.DB.QueryRow(
		`SELECT id, name, tonnage, tech_base, valid, share_code, config, created_at, updated_at
		 FROM user_designs WHERE share_code = ?`, shareCode,
	).Scan(&d.ID, &d.Name, &d.Tonnage, &d.TechBase, &d.Valid, &d.ShareCode, &cfg, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	attachUnit(&d, cfg)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

func attachUnit(d *Design, cfg string) {
	var unit models.UnitConfiguration
	if json.Unmarshal([]byte(cfg), &unit) == nil {
		d.Unit = &unit
	}
}
