package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus tracks an order through its lifecycle
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderInProgress OrderStatus = "In Progress"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether the value is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
// The happy path is Pending -> In Progress -> Completed; Cancelled is
// reachable from Pending only, before work begins.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderInProgress || next == OrderCancelled
	case OrderInProgress:
		return next == OrderCompleted
	}
	return false
}

// Scan implements sql.Scanner, rejecting unknown stored values
func (s *OrderStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return fmt.Errorf("order status: %w", err)
	}
	if !OrderStatus(str).Valid() {
		return fmt.Errorf("order status: unknown value %q", str)
	}
	*s = OrderStatus(str)
	return nil
}

// Value implements driver.Valuer, refusing to store unknown statuses
func (s OrderStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("order status: unknown value %q", string(s))
	}
	return string(s), nil
}

// MaterialType is the fabric category an order is made from
type MaterialType string

const (
	MaterialCotton    MaterialType = "Cotton"
	MaterialSilk      MaterialType = "Silk"
	MaterialWool      MaterialType = "Wool"
	MaterialPolyester MaterialType = "Polyester"
)

// Valid reports whether the value is a known material type
func (m MaterialType) Valid() bool {
	switch m {
	case MaterialCotton, MaterialSilk, MaterialWool, MaterialPolyester:
		return true
	}
	return false
}

// Scan implements sql.Scanner, rejecting unknown stored values
func (m *MaterialType) Scan(value interface{}) error {
	s, err := scanString(value)
	if err != nil {
		return fmt.Errorf("material type: %w", err)
	}
	if !MaterialType(s).Valid() {
		return fmt.Errorf("material type: unknown value %q", s)
	}
	*m = MaterialType(s)
	return nil
}

// Value implements driver.Valuer, refusing to store unknown types
func (m MaterialType) Value() (driver.Value, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("material type: unknown value %q", string(m))
	}
	return string(m), nil
}

// OrderUrgency is the client-declared priority of an order
type OrderUrgency string

const (
	UrgencyLow    OrderUrgency = "Low"
	UrgencyMedium OrderUrgency = "Medium"
	UrgencyHigh   OrderUrgency = "High"
)

// Valid reports whether the value is a known urgency level
func (u OrderUrgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Scan implements sql.Scanner, rejecting unknown stored values
func (u *OrderUrgency) Scan(value interface{}) error {
	s, err := scanString(value)
	if err != nil {
		return fmt.Errorf("order urgency: %w", err)
	}
	if !OrderUrgency(s).Valid() {
		return fmt.Errorf("order urgency: unknown value %q", s)
	}
	*u = OrderUrgency(s)
	return nil
}

// Value implements driver.Valuer, refusing to store unknown levels
func (u OrderUrgency) Value() (driver.Value, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("order urgency: unknown value %q", string(u))
	}
	return string(u), nil
}

// DefaultOrderPicture is shown for completed work without a photo of its own
const DefaultOrderPicture = "default/27002.jpg"

// Order records a client's custom clothing order against a catalog service
type Order struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	ClientID       uint             `gorm:"not null;index" json:"client_id"`
	Client         User             `gorm:"foreignKey:ClientID" json:"-"`
	ServiceID      uint             `gorm:"not null;index" json:"service_id"`
	Service        Service          `gorm:"foreignKey:ServiceID" json:"-"`
	Details        string           `gorm:"type:text;not null" json:"details"`
	MaterialType   MaterialType     `gorm:"not null" json:"material_type"`
	FabricRequired bool             `gorm:"not null;default:false" json:"fabric_required"`
	Quantity       int              `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	Colors         *string          `json:"colors"`
	Urgency        OrderUrgency     `gorm:"not null;default:'Medium'" json:"urgency"`
	Charges        *decimal.Decimal `gorm:"type:decimal(10,2)" json:"charges"` // nullable, set by staff
	ChargesPaid    decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"charges_paid"`
	Status         OrderStatus      `gorm:"not null;default:'Pending'" json:"status"`
	ReferenceImage *string          `json:"reference_image"` // stored blob name, nullable
	Picture        string           `gorm:"not null;default:'default/27002.jpg'" json:"picture"`
	ShowInIndex    bool             `gorm:"not null;default:true" json:"show_in_index"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
