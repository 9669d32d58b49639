package models

import "time"

// ProductVehicleLink ties a product in the external catalog to one
// VehicleRange. The pair is unique; re-inserting an existing link is a
// no-op at the store level (ON CONFLICT DO NOTHING).
type ProductVehicleLink struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	ExternalProductID string `gorm:"uniqueIndex:idx_product_range;index;not null" json:"external_product_id"`
	VehicleRangeID    uint   `gorm:"uniqueIndex:idx_product_range;index;not null" json:"vehicle_range_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (ProductVehicleLink) TableName() string { return "product_vehicle_links" }
