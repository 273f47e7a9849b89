package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/simatwa/tailoring-ms-api/models"
	"gorm.io/gorm"
)

// TokenPrefix marks every API token issued by this service. A bearer
// credential without it is rejected before any database lookup.
const TokenPrefix = "tms_"

var (
	// ErrUserNotFound means no account matches the given username
	ErrUserNotFound = errors.New("user not found")
	// ErrIncorrectPassword means the account exists but the password is wrong
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrInvalidToken means the bearer token is missing, malformed or unknown
	ErrInvalidToken = errors.New("invalid or missing token")
)

// GenerateToken produces a new opaque API token: the fixed prefix followed
// by a UUID with its dashes replaced by one random lowercase letter.
func GenerateToken() string {
	letter := string(rune('a' + rand.Intn(26)))
	return TokenPrefix + strings.ReplaceAll(uuid.NewString(), "-", letter)
}

// IssueToken verifies the username/password pair and returns the user's
// bearer token. A user who has never been issued a token gets one generated
// and persisted as a side effect.
func IssueToken(db *gorm.DB, username, password string) (string, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.CheckPassword(password) {
		return "", ErrIncorrectPassword
	}

	if user.Token == nil {
		token := GenerateToken()
		if err := db.Model(&user).Update("token", token).Error; err != nil {
			return "", fmt.Errorf("failed to persist token: %w", err)
		}
		user.Token = &token
	}

	return *user.Token, nil
}

// RotateToken overwrites the user's token with a fresh one. The previous
// token stops authenticating the moment the write lands.
func RotateToken(db *gorm.DB, user *models.User) (string, error) {
	token := GenerateToken()
	if err := db.Model(user).Update("token", token).Error; err != nil {
		return "", fmt.Errorf("failed to rotate token: %w", err)
	}
	user.Token = &token
	return token, nil
}

// AuthenticateToken resolves a presented bearer token to its user.
// Read-only; tokens never expire until rotated.
func AuthenticateToken(db *gorm.DB, token string) (*models.User, error) {
	if token == "" || !strings.HasPrefix(token, TokenPrefix) {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := db.Where("token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	return &user, nil
}
