package models

import (
	"fmt"
	"time"
)

// VehicleRange is a make/model paired with an inclusive model-year span.
// Overlapping ranges for the same make/model are allowed; a vehicle matched
// by several ranges is still one vehicle.
type VehicleRange struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Scope     string `gorm:"index;not null" json:"scope"`
	Make      string `gorm:"index;not null" json:"make"`
	Model     string `gorm:"index;not null" json:"model"`
	YearStart int    `gorm:"not null" json:"year_start"`
	YearEnd   int    `gorm:"not null" json:"year_end"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Links []ProductVehicleLink `gorm:"foreignKey:VehicleRangeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (VehicleRange) TableName() string { return "vehicle_ranges" }

// Validate checks the invariants a range must hold before it is stored.
func (v *VehicleRange) Validate() error {
	if v.Make == "" {
		return fmt.Errorf("make is required")
	}
	if v.Model == "" {
		return fmt.Errorf("model is required")
	}
	if v.YearStart <= 0 || v.YearEnd <= 0 {
		return fmt.Errorf("year_start and year_end are required")
	}
	if v.YearStart > v.YearEnd {
		return fmt.Errorf("year_start %d is after year_end %d", v.YearStart, v.YearEnd)
	}
	return nil
}

// Covers reports whether the given model year falls inside the range.
func (v *VehicleRange) Covers(year int) bool {
	return year >= v.YearStart && year <= v.YearEnd
}
