package testutil

import (
	"testing"
	"time"

	"github.com/simatwa/tailoring-ms-api/models"
	"github.com/simatwa/tailoring-ms-api/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DefaultTestPassword is the plaintext credential every seeded user gets
const DefaultTestPassword = "S3curePassw0rd!"

// SetupTestDB opens an in-memory sqlite database and migrates every
// application model into it
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Measurement{},
		&models.Service{},
		&models.Order{},
		&models.About{},
		&models.ServiceFeedback{},
		&models.Message{},
		&models.FAQ{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// SeedUser creates a user with a hashed password and an issued token,
// returning both the row and the bearer token value
func SeedUser(t *testing.T, db *gorm.DB, username string) (*models.User, string) {
	t.Helper()

	first := "Test"
	last := "Client"
	user := &models.User{
		Username:    username,
		FirstName:   &first,
		LastName:    &last,
		DateOfBirth: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Gender:      models.GenderOther,
		Profile:     models.DefaultProfilePicture,
	}
	if err := user.SetPassword(DefaultTestPassword); err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	token := services.GenerateToken()
	user.Token = &token

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user %q: %v", username, err)
	}
	return user, token
}

// SeedService creates one catalog service row
func SeedService(t *testing.T, db *gorm.DB, name models.ServiceName) *models.Service {
	t.Helper()

	service := &models.Service{
		Name:        name,
		Description: "Seeded test service",
		Picture:     models.DefaultServicePicture,
	}
	if err := db.Create(service).Error; err != nil {
		t.Fatalf("Failed to seed service %q: %v", name, err)
	}
	return service
}

// AuthHeader formats a bearer Authorization header value
func AuthHeader(token string) string {
	return "Bearer " + token
}
