package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/crewdesk/crewdesk-api/utils"
)

// PhotoStorage stores job photo objects by key and hands out URLs for them
type PhotoStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// LocalPhotoStorage keeps photos under a directory on disk, served back at URLPrefix
type LocalPhotoStorage struct {
	Dir       string
	URLPrefix string
}

// NewLocalPhotoStorage creates a disk-backed storage rooted at dir
func NewLocalPhotoStorage(dir string) *LocalPhotoStorage {
	return &LocalPhotoStorage{Dir: dir, URLPrefix: "/api/v1/uploads/"}
}

// Upload writes body to <Dir>/<key>
func (s *LocalPhotoStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	if err := utils.SaveFile(body, s.Dir, key); err != nil {
		return fmt.Errorf("failed to store photo locally: %w", err)
	}
	log.Printf("Stored photo %s in %s", key, s.Dir)
	return nil
}

// URL returns the path the router serves the upload dir on
func (s *LocalPhotoStorage) URL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty storage key")
	}
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.URLPrefix + strings.Join(parts, "/"), nil
}

// Delete is not offered for local storage; photos are never removed by the API
func (s *LocalPhotoStorage) Delete(ctx context.Context, key string) error {
	return fmt.Errorf("delete is not supported by local photo storage")
}
