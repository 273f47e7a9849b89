package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/simatwa/tailoring-ms-api/utils"
)

// ImageService handles image blobs attached to orders, services and
// profiles: upload, URL resolution and deletion.
type ImageService interface {
	// UploadImage validates and stores an image, returns the stored blob name
	UploadImage(fileHeader *multipart.FileHeader, subdir string) (string, error)

	// GetImageURL resolves a stored blob name to a client-facing URL
	GetImageURL(name string) (string, error)

	// DeleteImage removes an image from storage
	DeleteImage(name string) error
}

var imageServiceInstance ImageService

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// isSharedDefault reports whether a blob name is one of the seeded
// placeholder images, which are never deleted
func isSharedDefault(name string) bool {
	return strings.HasPrefix(name, "default/")
}

// LocalImageService stores image blobs on the local filesystem under the
// configured media root and serves them from the media base URL.
type LocalImageService struct {
	mediaRoot    string
	mediaBaseURL string
}

// InitLocalImageService initializes the image service with local disk storage
func InitLocalImageService(mediaRoot, mediaBaseURL string) ImageService {
	imageServiceInstance = &LocalImageService{
		mediaRoot:    mediaRoot,
		mediaBaseURL: mediaBaseURL,
	}
	return imageServiceInstance
}

// UploadImage validates and writes an image under the media root
func (s *LocalImageService) UploadImage(fileHeader *multipart.FileHeader, subdir string) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	name, err := utils.SaveUploadedFile(fileHeader, s.mediaRoot, subdir)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return name, nil
}

// GetImageURL resolves a blob name against the media base URL
func (s *LocalImageService) GetImageURL(name string) (string, error) {
	return utils.MediaURL(s.mediaBaseURL, name), nil
}

// DeleteImage removes a stored blob from disk. Shared placeholders and
// already-missing files are not errors.
func (s *LocalImageService) DeleteImage(name string) error {
	if name == "" || isSharedDefault(name) {
		return nil
	}

	fullPath := filepath.Join(s.mediaRoot, filepath.FromSlash(name))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// S3ImageService implements ImageService using AWS S3 for storage
type S3ImageService struct {
	s3Service S3Interface
}

// InitS3ImageService initializes the image service with S3 backend
func InitS3ImageService(s3Service S3Interface) ImageService {
	imageServiceInstance = &S3ImageService{
		s3Service: s3Service,
	}
	return imageServiceInstance
}

// UploadImage validates and uploads an image file to S3
func (s *S3ImageService) UploadImage(fileHeader *multipart.FileHeader, subdir string) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	s3Key, err := s.s3Service.UploadFile(fileHeader, subdir)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return s3Key, nil
}

// GetImageURL generates a presigned URL for accessing an image
func (s *S3ImageService) GetImageURL(name string) (string, error) {
	if name == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(name)
	if err != nil {
		return "", fmt.Errorf("failed to generate image URL: %w", err)
	}
	return url, nil
}

// DeleteImage deletes an image from S3
func (s *S3ImageService) DeleteImage(name string) error {
	if name == "" || isSharedDefault(name) {
		return nil
	}

	if err := s.s3Service.DeleteFile(name); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
