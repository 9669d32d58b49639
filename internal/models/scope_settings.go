package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScopeSettings stores per-storefront widget display configuration
// (labels, colors) as a JSONB blob. Scopes without a row fall back to the
// defaults from config.
type ScopeSettings struct {
	ID       uint           `gorm:"primaryKey" json:"id"`
	Scope    string         `gorm:"uniqueIndex;not null" json:"scope"`
	Settings datatypes.JSON `gorm:"type:jsonb" json:"settings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ScopeSettings) TableName() string { return "scope_settings" }
