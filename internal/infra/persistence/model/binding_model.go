// Package model contains the GORM-specific persistence structs.
package model

import (
	"time"
)

// BindingModel is the GORM-specific struct for the 'registration' table.
// One row per registered Discord identity.
type BindingModel struct {
	Token       string    `gorm:"type:char(43);primaryKey"`
	ExternalID  int64     `gorm:"column:external_id;not null;uniqueIndex"`
	DisplayName string    `gorm:"type:varchar(255);not null"`
	IsVerified  bool      `gorm:"not null;default:false"`
	Callsign    *string   `gorm:"type:varchar(16)"`
	LastUpdated time.Time `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (BindingModel) TableName() string {
	return "registration"
}
