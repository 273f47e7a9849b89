package models

import "time"

// About holds the business marketing details shown on the public site.
// A single row is expected; the newest values win.
type About struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;default:'Tailoring MS'" json:"name"`
	ShortName   string    `gorm:"not null;default:'TMS'" json:"short_name"`
	Slogan      string    `gorm:"type:text;not null" json:"slogan"`
	Details     string    `gorm:"type:text;not null" json:"details"`
	Address     string    `gorm:"not null" json:"address"`
	FoundedIn   time.Time `gorm:"type:date" json:"founded_in"`
	Email       *string   `json:"email"`
	PhoneNumber *string   `json:"phone_number"`
	Facebook    *string   `json:"facebook"`
	Twitter     *string   `json:"twitter"`
	LinkedIn    *string   `json:"linkedin"`
	Instagram   *string   `json:"instagram"`
	TikTok      *string   `json:"tiktok"`
	YouTube     *string   `json:"youtube"`
	Logo        string    `gorm:"not null;default:'default/logo.png'" json:"logo"`
	Wallpaper   string    `gorm:"not null;default:'default/threads-5547529_1920.jpg'" json:"wallpaper"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the About model
func (About) TableName() string {
	return "about"
}
