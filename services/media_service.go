package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	ProfileImageFolder      = "asadel/profile-images"
	DetectionSnapshotFolder = "asadel/detections"
)

var (
	ErrMediaDisabled     = errors.New("image storage is not configured")
	ErrImageTooLarge     = errors.New("image is too large")
	ErrImageUnsupported  = errors.New("only png, jpg, jpeg and gif images are allowed")
	allowedImageSuffixes = []string{".png", ".jpg", ".jpeg", ".gif"}
)

// MediaService stores profile images and detection snapshots on Cloudinary
type MediaService struct {
	cld *cloudinary.Cloudinary
}

func NewMediaService(cloudName, apiKey, apiSecret string) (*MediaService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &MediaService{cld: cld}, nil
}

// UploadImage uploads one image and returns its secure URL and public ID
func (s *MediaService) UploadImage(ctx context.Context, file io.Reader, publicID string, folder string) (string, string, error) {
	unique := true
	overwrite := false
	params := uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "image",
		UniqueFilename: &unique,
		Overwrite:      &overwrite,
	}
	if publicID != "" {
		params.PublicID = publicID
	}

	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", "", fmt.Errorf("upload successful but no URL returned")
	}

	return result.SecureURL, result.PublicID, nil
}

// DeleteImage deletes an image using its public ID
func (s *MediaService) DeleteImage(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	return err
}

// DeleteFolder removes every asset under folderPath, then the folder itself
func (s *MediaService) DeleteFolder(ctx context.Context, folderPath string) error {
	if _, err := s.cld.Admin.DeleteAssetsByPrefix(ctx, admin.DeleteAssetsByPrefixParams{
		Prefix: api.CldAPIArray{folderPath},
	}); err != nil {
		return fmt.Errorf("failed to delete assets in folder %s: %w", folderPath, err)
	}

	// Cloudinary usually drops empty folders on its own
	_, _ = s.cld.Admin.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: folderPath})

	log.Printf("[media] deleted folder %s", folderPath)
	return nil
}

// ValidateImageUpload checks size and extension before anything is uploaded
func ValidateImageUpload(filename string, size, maxBytes int64) error {
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("%w: max %d MB", ErrImageTooLarge, maxBytes>>20)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedImageSuffixes {
		if ext == allowed {
			return nil
		}
	}
	return ErrImageUnsupported
}

var mediaService *MediaService

// InitMediaService wires Cloudinary from CLOUDINARY_* env vars.
// Uploads are disabled (not fatal) without credentials.
func InitMediaService() bool {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Println("⚠️  CLOUDINARY_* not set, image uploads disabled")
		return false
	}

	svc, err := NewMediaService(cloudName, apiKey, apiSecret)
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		return false
	}
	mediaService = svc
	log.Println("✅ Cloudinary initialized")
	return true
}

// GetMediaService returns nil when uploads are disabled
func GetMediaService() *MediaService {
	return mediaService
}

// UploadImage uploads through the global service
func UploadImage(ctx context.Context, file io.Reader, publicID, folder string) (string, string, error) {
	if mediaService == nil {
		return "", "", ErrMediaDisabled
	}
	return mediaService.UploadImage(ctx, file, publicID, folder)
}

// DeleteImage deletes through the global service; a no-op when disabled
func DeleteImage(ctx context.Context, publicID string) error {
	if mediaService == nil {
		return nil
	}
	return mediaService.DeleteImage(ctx, publicID)
}
