package fitment

import (
	"fmt"

	"github.com/fitgear/ymmgo/internal/models"
	"gorm.io/gorm/clause"
)

// AssociateVehicles links a product to the given vehicle ranges. The call
// is idempotent: links that already exist are skipped via ON CONFLICT DO
// NOTHING, never double-counted. Range ids outside the scope are ignored
// and reported back to the caller.
func (s *Service) AssociateVehicles(scope, productID string, vehicleIDs []uint) (linked int, skipped []uint, err error) {
	if productID == "" {
		return 0, nil, fmt.Errorf("product id is required")
	}
	if len(vehicleIDs) == 0 {
		return 0, nil, nil
	}

	var known []uint
	err = s.db.Model(&models.VehicleRange{}).
		Where("scope = ? AND id IN ?", scope, vehicleIDs).
		Pluck("id", &known).Error
	if err != nil {
		return 0, nil, fmt.Errorf("failed to verify vehicle ranges: %w", err)
	}

	knownSet := make(map[uint]struct{}, len(known))
	for _, id := range known {
		knownSet[id] = struct{}{}
	}
	for _, id := range vehicleIDs {
		if _, ok := knownSet[id]; !ok {
			skipped = append(skipped, id)
		}
	}

	for _, id := range known {
		link := models.ProductVehicleLink{
			ExternalProductID: productID,
			VehicleRangeID:    id,
		}
		res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
		if res.Error != nil {
			return linked, skipped, fmt.Errorf("failed to link vehicle %d: %w", id, res.Error)
		}
		linked += int(res.RowsAffected)
	}

	return linked, skipped, nil
}

// DissociateVehicle removes one product-vehicle link. Removing a link that
// does not exist is a successful no-op.
func (s *Service) DissociateVehicle(productID string, vehicleID uint) error {
	if productID == "" || vehicleID == 0 {
		return nil
	}
	err := s.db.
		Where("external_product_id = ? AND vehicle_range_id = ?", productID, vehicleID).
		Delete(&models.ProductVehicleLink{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove link: %w", err)
	}
	return nil
}

// VehiclesForProduct lists the ranges a product is linked to, for the admin
// association view.
func (s *Service) VehiclesForProduct(scope, productID string) ([]models.VehicleRange, error) {
	var ranges []models.VehicleRange
	err := s.db.
		Joins("JOIN product_vehicle_links ON product_vehicle_links.vehicle_range_id = vehicle_ranges.id").
		Where("product_vehicle_links.external_product_id = ? AND vehicle_ranges.scope = ?", productID, scope).
		Order("vehicle_ranges.make ASC, vehicle_ranges.model ASC, vehicle_ranges.year_start ASC").
		Find(&ranges).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query product vehicles: %w", err)
	}
	return ranges, nil
}
