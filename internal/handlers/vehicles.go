package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/fitgear/ymmgo/internal/fitment"
	"github.com/fitgear/ymmgo/internal/models"
	"github.com/gorilla/mux"
)

// listVehicles returns vehicle ranges, optionally filtered by scope
func (r *Router) listVehicles(w http.ResponseWriter, req *http.Request) {
	q := r.db.Order("make ASC, model ASC, year_start ASC")
	if scope := req.URL.Query().Get("scope"); scope != "" {
		q = q.Where("scope = ?", scope)
	}

	var ranges []models.VehicleRange
	if err := q.Find(&ranges).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch vehicles")
		return
	}
	respondJSON(w, http.StatusOK, ranges)
}

// decodeVehiclePayload parses a create request. A range defaults to active
// unless the payload carries an explicit is_active value.
func decodeVehiclePayload(body io.Reader) (models.VehicleRange, error) {
	var payload struct {
		Scope     string `json:"scope"`
		Make      string `json:"make"`
		Model     string `json:"model"`
		YearStart int    `json:"year_start"`
		YearEnd   int    `json:"year_end"`
		IsActive  *bool  `json:"is_active"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return models.VehicleRange{}, err
	}

	rng := models.VehicleRange{
		Scope:     payload.Scope,
		Make:      payload.Make,
		Model:     payload.Model,
		YearStart: payload.YearStart,
		YearEnd:   payload.YearEnd,
		IsActive:  payload.IsActive == nil || *payload.IsActive,
	}
	if rng.Scope == "" {
		rng.Scope = "default"
	}
	return rng, nil
}

// createVehicle creates a new vehicle range
func (r *Router) createVehicle(w http.ResponseWriter, req *http.Request) {
	rng, err := decodeVehiclePayload(req.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := rng.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.db.Create(&rng).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	r.hub.BroadcastEvent("vehicle_created", rng.Scope, rng)
	respondJSON(w, http.StatusCreated, rng)
}

// updateVehicle updates range bounds or the active flag
func (r *Router) updateVehicle(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	var rng models.VehicleRange
	if err := r.db.First(&rng, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	if err := json.NewDecoder(req.Body).Decode(&rng); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	rng.ID = uint(id)
	if err := rng.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.db.Save(&rng).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	r.hub.BroadcastEvent("vehicle_updated", rng.Scope, rng)
	respondJSON(w, http.StatusOK, rng)
}

// deleteVehicle removes a range and its dependent product links
func (r *Router) deleteVehicle(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	var rng models.VehicleRange
	if err := r.db.First(&rng, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	// Links go first; the FK cascade covers fresh schemas but not ones
	// migrated before the constraint existed.
	if err := r.db.Where("vehicle_range_id = ?", id).Delete(&models.ProductVehicleLink{}).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete vehicle links")
		return
	}
	if err := r.db.Delete(&models.VehicleRange{}, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}

	r.hub.BroadcastEvent("vehicle_deleted", rng.Scope, map[string]uint{"id": uint(id)})
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Vehicle deleted successfully",
	})
}

// bulkImport ingests vehicle and association rows; row failures are
// reported, never fatal to the batch
func (r *Router) bulkImport(w http.ResponseWriter, req *http.Request) {
	var payload struct {
		Scope string              `json:"scope"`
		Rows  []fitment.ImportRow `json:"rows"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Scope == "" {
		payload.Scope = "default"
	}

	report := r.fitment.BulkImport(payload.Scope, payload.Rows)
	r.hub.BroadcastEvent("import_completed", payload.Scope, report)
	respondJSON(w, http.StatusOK, report)
}
