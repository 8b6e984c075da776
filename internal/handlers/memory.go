package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/memory"
)

const anonCookie = "mechlab_anon"

// MemoryHandler persists tech-base memory through the key-value store. Load
// never fails: missing or unreadable state comes back as the default
// template. Signed-in users get a stable per-user key; anonymous editors get
// a cookie-scoped one so their memory survives page reloads.
type MemoryHandler struct {
	KV memory.KV
}

// sessionMemoryKey resolves the storage key for this request, minting an
// anonymous session cookie when there is neither a user nor a cookie yet.
func sessionMemoryKey(w http.ResponseWriter, r *http.Request) string {
	if user := UserFromContext(r.Context()); user != nil {
		return fmt.Sprintf("user:%d:%s", user.ID, memory.StorageKey)
	}

	if c, err := r.Cookie(anonCookie); err == nil && c.Value != "" {
		return fmt.Sprintf("anon:%s:%s", c.Value, memory.StorageKey)
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteLaxMode,
	})
	return fmt.Sprintf("anon:%s:%s", id, memory.StorageKey)
}

func (h *MemoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	state := memory.Load(r.Context(), h.KV, sessionMemoryKey(w, r))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

func (h *MemoryHandler) Put(w http.ResponseWriter, r *http.Request) {
	var state memory.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := memory.Save(r.Context(), h.KV, sessionMemoryKey(w, r), state); err != nil {
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"ok":true}`))
}

func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.KV.Delete(r.Context(), sessionMemoryKey(w, r)); err != nil {
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"ok":true}`))
}
