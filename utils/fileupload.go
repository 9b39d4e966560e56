package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxPhotoSize is 10MB in bytes
const MaxPhotoSize = 10 * 1024 * 1024

// photoContentTypes maps the accepted photo extensions to their MIME types
var photoContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidatePhotoFile checks the size and extension of an uploaded job photo
func ValidatePhotoFile(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxPhotoSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxPhotoSize/(1024*1024)),
		}
	}
	if fileHeader.Size == 0 {
		return &FileUploadError{Code: "EMPTY_FILE", Message: "Uploaded file is empty"}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := photoContentTypes[ext]; !ok {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only .png, .jpg, .jpeg and .webp files are allowed",
		}
	}
	return nil
}

// PhotoContentType returns the MIME type for filename, defaulting to application/octet-stream
func PhotoContentType(filename string) string {
	if ct, ok := photoContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// PhotoObjectKey builds the storage path for a job photo: jobs/<job_id>/<unix>_<filename>
func PhotoObjectKey(jobID, filename string, now time.Time) string {
	name := strings.ReplaceAll(filepath.Base(filename), " ", "_")
	return fmt.Sprintf("jobs/%s/%d_%s", jobID, now.Unix(), name)
}

// SaveFile writes src under uploadDir at the relative key, creating parent directories
func SaveFile(src io.Reader, uploadDir, key string) (err error) {
	fullPath := filepath.Join(uploadDir, filepath.FromSlash(key))
	if !strings.HasPrefix(fullPath, filepath.Clean(uploadDir)+string(os.PathSeparator)) {
		return fmt.Errorf("invalid storage key %q", key)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}
