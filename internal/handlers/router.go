package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fitgear/ymmgo/internal/config"
	"github.com/fitgear/ymmgo/internal/database"
	"github.com/fitgear/ymmgo/internal/fitment"
	"github.com/fitgear/ymmgo/internal/middleware"
	ws "github.com/fitgear/ymmgo/internal/websocket"
	"github.com/gorilla/mux"
)

// Router wraps the mux router with the store, the fitment engine and the
// admin event hub.
type Router struct {
	*mux.Router
	db      *database.DB
	cfg     *config.Config
	fitment *fitment.Service
	hub     *ws.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, svc *fitment.Service, hub *ws.Hub) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		db:      db,
		cfg:     cfg,
		fitment: svc,
		hub:     hub,
	}

	// Storefront widget endpoints (public, read-only)
	ymm := r.PathPrefix("/ymm/{scope}").Subrouter()
	ymm.HandleFunc("/years", r.getYears).Methods("GET")
	ymm.HandleFunc("/makes", r.getMakes).Methods("GET")
	ymm.HandleFunc("/models", r.getModels).Methods("GET")
	ymm.HandleFunc("/search", r.searchProducts).Methods("GET")
	ymm.HandleFunc("/config", r.getWidgetConfig).Methods("GET")
	ymm.HandleFunc("/health", r.getHealth).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")

	// Admin routes (JWT protected)
	requireAuth := middleware.Auth(cfg.JWTSecret)

	vehicles := r.PathPrefix("/api/vehicles").Subrouter()
	vehicles.Use(requireAuth)
	vehicles.HandleFunc("", r.listVehicles).Methods("GET")
	vehicles.HandleFunc("", r.createVehicle).Methods("POST")
	vehicles.HandleFunc("/bulk-import", r.bulkImport).Methods("POST")
	vehicles.HandleFunc("/{id}", r.updateVehicle).Methods("PUT")
	vehicles.HandleFunc("/{id}", r.deleteVehicle).Methods("DELETE")

	products := r.PathPrefix("/api/products").Subrouter()
	products.Use(requireAuth)
	products.HandleFunc("/{id}/vehicles", r.listProductVehicles).Methods("GET")
	products.HandleFunc("/{id}/vehicles", r.associateVehicles).Methods("POST")
	products.HandleFunc("/{id}/vehicles/{vehicleId}", r.dissociateVehicle).Methods("DELETE")
	products.HandleFunc("/{id}/fitment-sheet", r.fitmentSheet).Methods("GET")

	// Admin event feed
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(hub, w, req)
	})

	return r
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
