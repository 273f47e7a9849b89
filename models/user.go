package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserGender is the stored single-letter gender code
type UserGender string

const (
	GenderMale   UserGender = "M"
	GenderFemale UserGender = "F"
	GenderOther  UserGender = "O"
)

// Valid reports whether the value is a known gender code
func (g UserGender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Scan implements sql.Scanner, rejecting unknown stored values
func (g *UserGender) Scan(value interface{}) error {
	s, err := scanString(value)
	if err != nil {
		return fmt.Errorf("gender: %w", err)
	}
	if !UserGender(s).Valid() {
		return fmt.Errorf("gender: unknown value %q", s)
	}
	*g = UserGender(s)
	return nil
}

// Value implements driver.Valuer, refusing to store unknown codes
func (g UserGender) Value() (driver.Value, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("gender: unknown value %q", string(g))
	}
	return string(g), nil
}

// DefaultProfilePicture is used when a user has not uploaded a profile photo
const DefaultProfilePicture = "default/user.png"

// User represents a client or staff account
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"not null" json:"-"`
	FirstName    *string        `json:"first_name"`
	LastName     *string        `json:"last_name"`
	Email        *string        `json:"email"`
	PhoneNumber  *string        `json:"phone_number"`
	Location     *string        `json:"location"`
	DateOfBirth  time.Time      `gorm:"type:date" json:"date_of_birth"`
	Gender       UserGender     `gorm:"not null;default:'O'" json:"gender"`
	Profile      string         `gorm:"not null;default:'default/user.png'" json:"profile"`
	Token        *string        `gorm:"uniqueIndex" json:"-"` // nullable API bearer token
	IsStaff      bool           `gorm:"not null;default:false" json:"is_staff"`
	DateJoined   time.Time      `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// SetPassword hashes the plaintext password and stores the hash
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a submitted plaintext password against the stored hash
func (u *User) CheckPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

// Age returns the user's age in whole years
func (u *User) Age() int {
	today := time.Now()
	age := today.Year() - u.DateOfBirth.Year()
	if today.Month() < u.DateOfBirth.Month() ||
		(today.Month() == u.DateOfBirth.Month() && today.Day() < u.DateOfBirth.Day()) {
		age--
	}
	return age
}

// scanString normalizes driver values shared by all enum scanners
func scanString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported type %T", value)
	}
}
