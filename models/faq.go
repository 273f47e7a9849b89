package models

import "time"

// FAQ is a question shown on the public site when IsShown is set
type FAQ struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	IsShown   bool      `gorm:"not null;default:true" json:"is_shown"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the FAQ model
func (FAQ) TableName() string {
	return "faqs"
}
