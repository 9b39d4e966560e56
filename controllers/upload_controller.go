package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/crewdesk/crewdesk-api/utils"
	"github.com/gin-gonic/gin"
)

// UploadController serves photos kept by local photo storage
type UploadController struct {
	dir string
}

// NewUploadController serves files below dir
func NewUploadController(dir string) *UploadController {
	return &UploadController{dir: dir}
}

// GetUploadedPhoto handles GET /api/v1/uploads/*key - e.g. /uploads/jobs/<job_id>/<file>
func (ctl *UploadController) GetUploadedPhoto(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	if key == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Filename is required")
		return
	}

	// Prevent directory traversal
	if strings.Contains(key, "..") || strings.Contains(key, "\\") || strings.HasPrefix(key, "/") {
		respondError(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
		return
	}

	contentType := utils.PhotoContentType(key)
	if contentType == "application/octet-stream" {
		respondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only .png, .jpg, .jpeg and .webp files are served")
		return
	}

	filePath := filepath.Join(ctl.dir, filepath.FromSlash(key))
	if info, err := os.Stat(filePath); err != nil || info.IsDir() {
		respondError(c, http.StatusNotFound, "FILE_NOT_FOUND", "Image not found")
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(filePath)
}
