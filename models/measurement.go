package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Measurement is the one-to-one sizing profile for a user.
// All nine values are inches, stored as DECIMAL(5,2).
type Measurement struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	User          User            `gorm:"foreignKey:UserID" json:"-"`
	Chest         decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"chest"`
	Waist         decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"waist"`
	Hips          decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"hips"`
	Inseam        decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"inseam"`
	Neck          decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"neck"`
	SleeveLength  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"sleeve_length"`
	ShoulderWidth decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"shoulder_width"`
	Thigh         decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"thigh"`
	Calf          decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"calf"`
	CreatedAt     time.Time       `json:"date_created"`
	UpdatedAt     time.Time       `json:"date_updated"`
}

// TableName specifies the table name for the Measurement model
func (Measurement) TableName() string {
	return "measurements"
}
