package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// FeedbackRate is the testimonial rating scale
type FeedbackRate string

const (
	RateExcellent FeedbackRate = "Excellent"
	RateGood      FeedbackRate = "Good"
	RateAverage   FeedbackRate = "Average"
	RatePoor      FeedbackRate = "Poor"
	RateTerrible  FeedbackRate = "Terrible"
)

// Valid reports whether the value is a known rating
func (r FeedbackRate) Valid() bool {
	switch r {
	case RateExcellent, RateGood, RateAverage, RatePoor, RateTerrible:
		return true
	}
	return false
}

// Scan implements sql.Scanner, rejecting unknown stored values
func (r *FeedbackRate) Scan(value interface{}) error {
	s, err := scanString(value)
	if err != nil {
		return fmt.Errorf("feedback rate: %w", err)
	}
	if !FeedbackRate(s).Valid() {
		return fmt.Errorf("feedback rate: unknown value %q", s)
	}
	*r = FeedbackRate(s)
	return nil
}

// Value implements driver.Valuer, refusing to store unknown ratings
func (r FeedbackRate) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("feedback rate: unknown value %q", string(r))
	}
	return string(r), nil
}

// SenderRole categorizes who gave a testimonial
type SenderRole string

const (
	RoleExecutive     SenderRole = "Business Executive"
	RoleRegularClient SenderRole = "Regular Client"
	RoleWeddingClient SenderRole = "Wedding Client"
)

// Valid reports whether the value is a known sender role
func (r SenderRole) Valid() bool {
	switch r {
	case RoleExecutive, RoleRegularClient, RoleWeddingClient:
		return true
	}
	return false
}

// Scan implements sql.Scanner, rejecting unknown stored values
func (r *SenderRole) Scan(value interface{}) error {
	s, err := scanString(value)
	if err != nil {
		return fmt.Errorf("sender role: %w", err)
	}
	if !SenderRole(s).Valid() {
		return fmt.Errorf("sender role: unknown value %q", s)
	}
	*r = SenderRole(s)
	return nil
}

// Value implements driver.Valuer, refusing to store unknown roles
func (r SenderRole) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("sender role: unknown value %q", string(r))
	}
	return string(r), nil
}

// ServiceFeedback is an append-only client testimonial. ShowInIndex gates
// whether it appears on the public marketing pages.
type ServiceFeedback struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	SenderID    uint         `gorm:"not null;index" json:"sender_id"`
	Sender      User         `gorm:"foreignKey:SenderID" json:"-"`
	Message     string       `gorm:"type:text;not null" json:"message"`
	Rate        FeedbackRate `gorm:"not null" json:"rate"`
	Role        SenderRole   `gorm:"not null;default:'Regular Client'" json:"role"`
	ShowInIndex bool         `gorm:"not null;default:true" json:"show_in_index"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TableName specifies the table name for the ServiceFeedback model
func (ServiceFeedback) TableName() string {
	return "service_feedbacks"
}
