package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fitgear/ymmgo/internal/buildinfo"
	"github.com/fitgear/ymmgo/internal/models"
	"github.com/fitgear/ymmgo/internal/services/catalog"
	"github.com/gorilla/mux"
)

// getYears returns the available model years for a scope, newest first
func (r *Router) getYears(w http.ResponseWriter, req *http.Request) {
	scope := mux.Vars(req)["scope"]

	years, err := r.fitment.AvailableYears(scope)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch years")
		return
	}
	respondJSON(w, http.StatusOK, years)
}

// getMakes returns the distinct makes covering the requested year
func (r *Router) getMakes(w http.ResponseWriter, req *http.Request) {
	scope := mux.Vars(req)["scope"]
	year, _ := strconv.Atoi(req.URL.Query().Get("year"))

	makes, err := r.fitment.AvailableMakes(scope, year)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch makes")
		return
	}
	respondJSON(w, http.StatusOK, makes)
}

// getModels returns the distinct models for a year and make
func (r *Router) getModels(w http.ResponseWriter, req *http.Request) {
	scope := mux.Vars(req)["scope"]
	query := req.URL.Query()
	year, _ := strconv.Atoi(query.Get("year"))

	modelNames, err := r.fitment.AvailableModels(scope, year, query.Get("make"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch models")
		return
	}
	respondJSON(w, http.StatusOK, modelNames)
}

// searchProducts resolves a YMM selection to enriched products. A missing
// parameter degrades to an empty product list; a gateway failure is a 500
// with a structured body.
func (r *Router) searchProducts(w http.ResponseWriter, req *http.Request) {
	scope := mux.Vars(req)["scope"]
	query := req.URL.Query()
	year, _ := strconv.Atoi(query.Get("year"))
	makeName := query.Get("make")
	modelName := query.Get("model")

	if year <= 0 || makeName == "" || modelName == "" {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"products": []catalog.Product{},
		})
		return
	}

	result, err := r.fitment.SearchProducts(req.Context(), scope, year, makeName, modelName)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "search_failed",
			"message": err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// getWidgetConfig returns the widget display settings for a scope. Stored
// per-scope settings win; otherwise the configured defaults are served.
func (r *Router) getWidgetConfig(w http.ResponseWriter, req *http.Request) {
	scope := mux.Vars(req)["scope"]

	var stored models.ScopeSettings
	if err := r.db.Where("scope = ?", scope).First(&stored).Error; err == nil && len(stored.Settings) > 0 {
		var settings map[string]interface{}
		if err := json.Unmarshal(stored.Settings, &settings); err == nil {
			respondJSON(w, http.StatusOK, settings)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"title":        r.cfg.Widget.Title,
		"button_label": r.cfg.Widget.ButtonLabel,
		"accent_color": r.cfg.Widget.AccentColor,
	})
}

// getHealth reports store liveness and catalog sizes for a scope
func (r *Router) getHealth(w http.ResponseWriter, req *http.Request) {
	scope := mux.Vars(req)["scope"]

	vehicles, links, err := r.fitment.Counts(scope)
	status := "ok"
	storeActive := true
	if err != nil {
		status = "degraded"
		storeActive = false
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":              status,
		"store_active":        storeActive,
		"vehicle_count":       vehicles,
		"compatibility_count": links,
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
		"started_at":          buildinfo.StartTime,
		"commit":              buildinfo.CommitHash,
	})
}
