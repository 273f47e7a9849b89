package models

import "time"

// Message is a visitor inquiry submitted through the public contact form.
// Append-only; staff read and mark them from the back office.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Sender    string    `gorm:"not null" json:"sender"`
	Email     string    `gorm:"not null" json:"email"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
