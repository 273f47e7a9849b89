package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ServiceName is the closed set of services the shop offers
type ServiceName string

const (
	ServiceCustomSuits   ServiceName = "Custom Suits"
	ServiceWeddingAttire ServiceName = "Wedding Attire"
	ServiceAlterations   ServiceName = "Alterations"
	ServiceOther         ServiceName = "Other"
)

// ServiceNames lists every catalog service name
func ServiceNames() []ServiceName {
	return []ServiceName{ServiceCustomSuits, ServiceWeddingAttire, ServiceAlterations, ServiceOther}
}

// Valid reports whether the value is a known service name
func (n ServiceName) Valid() bool {
	switch n {
	case ServiceCustomSuits, ServiceWeddingAttire, ServiceAlterations, ServiceOther:
		return true
	}
	return false
}

// Scan implements sql.Scanner, rejecting unknown stored values
func (n *ServiceName) Scan(value interface{}) error {
	s, err := scanString(value)
	if err != nil {
		return fmt.Errorf("service name: %w", err)
	}
	if !ServiceName(s).Valid() {
		return fmt.Errorf("service name: unknown value %q", s)
	}
	*n = ServiceName(s)
	return nil
}

// Value implements driver.Valuer, refusing to store unknown names
func (n ServiceName) Value() (driver.Value, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("service name: unknown value %q", string(n))
	}
	return string(n), nil
}

// DefaultServicePicture is the album photo used until staff upload one
const DefaultServicePicture = "default/tape-measure-3829506_1920.jpg"

// Service is a catalog entry. Read-only from the client API;
// staff maintain entries from the back office.
type Service struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          ServiceName     `gorm:"not null" json:"name"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Picture       string          `gorm:"not null;default:'default/tape-measure-3829506_1920.jpg'" json:"picture"`
	StartingPrice decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"starting_price"`
	EndingPrice   decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"ending_price"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}
