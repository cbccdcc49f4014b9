package model

import (
	"time"
)

// QueuedMessageModel is the GORM-specific struct for the 'messages' table.
// Rows are append-only; the delivery loop deletes them in bulk once drained.
type QueuedMessageModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	InsertTime time.Time `gorm:"not null;autoCreateTime"`
	Token      string    `gorm:"type:char(43);not null;index"`
	Timestamp  int64     `gorm:"not null"`
	Sender     string    `gorm:"type:varchar(32);not null"`
	Receiver   string    `gorm:"type:varchar(32);not null"`
	Message    string    `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (QueuedMessageModel) TableName() string {
	return "messages"
}
