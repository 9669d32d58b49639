package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fitgear/ymmgo/internal/services/export"
	"github.com/gorilla/mux"
)

// listProductVehicles returns the ranges a product is linked to
func (r *Router) listProductVehicles(w http.ResponseWriter, req *http.Request) {
	productID := mux.Vars(req)["id"]
	scope := req.URL.Query().Get("scope")
	if scope == "" {
		scope = "default"
	}

	ranges, err := r.fitment.VehiclesForProduct(scope, productID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch product vehicles")
		return
	}
	respondJSON(w, http.StatusOK, ranges)
}

// associateVehicles links a product to a set of vehicle ranges, ignoring
// duplicates
func (r *Router) associateVehicles(w http.ResponseWriter, req *http.Request) {
	productID := mux.Vars(req)["id"]

	var payload struct {
		Scope      string `json:"scope"`
		VehicleIDs []uint `json:"vehicle_ids"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Scope == "" {
		payload.Scope = "default"
	}

	linked, skipped, err := r.fitment.AssociateVehicles(payload.Scope, productID, payload.VehicleIDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to associate vehicles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": productID,
		"linked":     linked,
		"skipped":    skipped,
	})
}

// dissociateVehicle removes one product-vehicle link; removing a missing
// link still succeeds
func (r *Router) dissociateVehicle(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	productID := vars["id"]
	vehicleID, err := strconv.ParseUint(vars["vehicleId"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	if err := r.fitment.DissociateVehicle(productID, uint(vehicleID)); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to remove link")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Link removed",
	})
}

// fitmentSheet renders a printable PDF compatibility chart for a product
func (r *Router) fitmentSheet(w http.ResponseWriter, req *http.Request) {
	productID := mux.Vars(req)["id"]
	scope := req.URL.Query().Get("scope")
	if scope == "" {
		scope = "default"
	}

	ranges, err := r.fitment.VehiclesForProduct(scope, productID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch product vehicles")
		return
	}

	storeURL := ""
	if r.cfg.Gateway.StoreURL != "" {
		storeURL = fmt.Sprintf("%s/products/%s", strings.TrimRight(r.cfg.Gateway.StoreURL, "/"), productID)
	}

	pdfBytes, err := export.GenerateFitmentSheetPDF(export.SheetConfig{
		ProductID: productID,
		Scope:     scope,
		StoreURL:  storeURL,
		Ranges:    ranges,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render fitment sheet")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=fitment-%s.pdf", productID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
