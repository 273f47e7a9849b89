package services

import (
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/simatwa/tailoring-ms-api/utils"
)

// MockImageService is a mock implementation of ImageService for testing
type MockImageService struct {
	uploadedImages map[string][]byte // map of blob name to file content
	mu             sync.RWMutex
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		uploadedImages: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global image service instance for testing
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage simulates storing an image
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader, subdir string) (string, error) {
	// Validate the image file
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	// Open and read the file
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content := make([]byte, fileHeader.Size)
	if _, err := file.Read(content); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Deterministic name so tests can assert against it
	name := path.Join(subdir, "mock_"+strings.ToLower(filepath.Base(fileHeader.Filename)))

	m.mu.Lock()
	m.uploadedImages[name] = content
	m.mu.Unlock()

	return name, nil
}

// GetImageURL resolves names the way the local backend does
func (m *MockImageService) GetImageURL(name string) (string, error) {
	return utils.MediaURL("/media/", name), nil
}

// DeleteImage simulates deleting an image
func (m *MockImageService) DeleteImage(name string) error {
	if name == "" || isSharedDefault(name) {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedImages, name)
	m.mu.Unlock()

	return nil
}

// ImageExists checks if an image exists in mock storage
func (m *MockImageService) ImageExists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedImages[name]
	return exists
}

// Clear removes all images from mock storage
func (m *MockImageService) Clear() {
	m.mu.Lock()
	m.uploadedImages = make(map[string][]byte)
	m.mu.Unlock()
}
