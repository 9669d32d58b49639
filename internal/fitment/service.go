// Package fitment implements the vehicle-compatibility resolution engine:
// matching a Year/Make/Model selection to vehicle ranges, resolving ranges
// to external product ids, facet queries for the cascading storefront
// filter, and association management between products and vehicles.
package fitment

import (
	"github.com/fitgear/ymmgo/internal/database"
	"github.com/fitgear/ymmgo/internal/models"
	"github.com/fitgear/ymmgo/internal/services/catalog"
)

// Service is the compatibility engine. All operations are single-request
// reads/writes against the shared store; concurrent calls are isolated by
// the database's own transaction guarantees.
type Service struct {
	db      *database.DB
	gateway *catalog.Client
}

// NewService creates the engine over a store and a catalog gateway client
func NewService(db *database.DB, gateway *catalog.Client) *Service {
	return &Service{db: db, gateway: gateway}
}

// Counts returns the number of vehicle ranges and product links in a scope,
// used by the health endpoint.
func (s *Service) Counts(scope string) (vehicles int64, links int64, err error) {
	if err = s.db.Model(&models.VehicleRange{}).Where("scope = ?", scope).Count(&vehicles).Error; err != nil {
		return 0, 0, err
	}
	err = s.db.Model(&models.ProductVehicleLink{}).
		Joins("JOIN vehicle_ranges ON vehicle_ranges.id = product_vehicle_links.vehicle_range_id").
		Where("vehicle_ranges.scope = ?", scope).
		Count(&links).Error
	return vehicles, links, err
}
