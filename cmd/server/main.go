package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/SwiggitySwerve/megamek-web-sub001/internal/catalog"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/config"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/db"
	"github.com/SwiggitySwerve/megamek-web-sub001/internal/handlers"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML (optional, env vars override)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Equipment catalog: the SQLite file when present, the built-in table
	// otherwise, so a fresh checkout runs without any data files.
	var catalogSvc catalog.Service
	if _, err := os.Stat(cfg.Catalog.Path); err == nil {
		catDB, err := db.ConnectSQLite(cfg.Catalog.Path)
		if err != nil {
			log.Fatalf("Failed to connect to catalog: %v", err)
		}
		defer catDB.Close()
		catalogSvc = catalog.NewSQLite(catDB)
		log.Printf("Equipment catalog: %s", cfg.Catalog.Path)
	} else {
		catalogSvc = catalog.NewBuiltin()
		log.Printf("Equipment catalog: built-in (no %s)", cfg.Catalog.Path)
	}

	// User DB (writable, separate from the read-only catalog)
	userDB, err := db.ConnectUserDB(cfg.UserDB.Path)
	if err != nil {
		log.Fatalf("Failed to connect to user DB: %v", err)
	}
	defer userDB.Close()

	kv := db.NewKVStore(userDB)
	unitsHandler := &handlers.UnitsHandler{Catalog: catalogSvc, KV: kv}
	equipmentHandler := &handlers.EquipmentHandler{Catalog: catalogSvc}
	authHandler := handlers.NewAuthHandler(userDB, cfg.Auth)
	memoryHandler := &handlers.MemoryHandler{KV: kv}
	designsHandler := &handlers.DesignsHandler{DB: userDB}

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Rules engine
	mux.HandleFunc("POST /api/units/validate", unitsHandler.Validate)
	mux.HandleFunc("POST /api/units/calculations", unitsHandler.Calculations)
	mux.HandleFunc("POST /api/units/switch-tech", unitsHandler.SwitchTech)

	// Equipment catalog
	mux.HandleFunc("GET /api/equipment", equipmentHandler.Search)

	// Auth
	mux.HandleFunc("GET /api/auth/google", authHandler.GoogleLogin)
	mux.HandleFunc("GET /api/auth/callback", authHandler.Callback)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	// Tech-base memory (per user, or per anonymous session cookie)
	mux.HandleFunc("GET /api/memory", memoryHandler.Get)
	mux.HandleFunc("PUT /api/memory", memoryHandler.Put)
	mux.HandleFunc("DELETE /api/memory", memoryHandler.Delete)

	// Saved designs (protected; single design readable by share code)
	mux.HandleFunc("GET /api/designs", handlers.RequireAuth(designsHandler.ListAll))
	mux.HandleFunc("POST /api/designs", handlers.RequireAuth(designsHandler.Create))
	mux.HandleFunc("GET /api/designs/{id}", designsHandler.Get)
	mux.HandleFunc("PUT /api/designs/{id}", handlers.RequireAuth(designsHandler.Update))
	mux.HandleFunc("DELETE /api/designs/{id}", handlers.RequireAuth(designsHandler.Delete))

	// Shared designs (public)
	mux.HandleFunc("GET /api/shared/{shareCode}", designsHandler.SharedView)

	// Wrap with auth middleware (populates user context) then CORS
	handler := corsMiddleware(cfg.Server.AllowedOrigins, authHandler.AuthMiddleware(mux))

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler,
	}

	go func() {
		log.Printf("MechLab server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
}

func corsMiddleware(origins []string, next http.Handler) http.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
