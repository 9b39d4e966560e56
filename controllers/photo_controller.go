package controllers

import (
	"net/http"

	"github.com/crewdesk/crewdesk-api/middleware"
	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const noPhotosMessage = "No photos uploaded yet"

// PhotoController serves job photos
type PhotoController struct {
	photos *services.PhotoService
}

// NewPhotoController creates the photo handlers
func NewPhotoController(photos *services.PhotoService) *PhotoController {
	return &PhotoController{photos: photos}
}

// List handles GET /api/v1/photos?job_id= and GET /api/v1/jobs/:id/photos
func (ctl *PhotoController) List(c *gin.Context) {
	var jobID *uuid.UUID
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("job_id")
	}
	if raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid job id")
			return
		}
		jobID = &id
	}

	photos, err := ctl.photos.List(c.Request.Context(), jobID)
	if err != nil {
		handleServiceError(c, err, "load photos")
		return
	}
	respondList(c, photos, len(photos), noPhotosMessage, nil)
}

// Get handles GET /api/v1/photos/:id
func (ctl *PhotoController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	photo, err := ctl.photos.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "load photo")
		return
	}
	respondData(c, http.StatusOK, photo)
}

// Upload handles POST /api/v1/jobs/:id/photos - multipart field "photo",
// optional "photo_type" and "caption"
func (ctl *PhotoController) Upload(c *gin.Context) {
	jobID, ok := parseID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		respondValidation(c, map[string]string{"photo": "Photo file is required"})
		return
	}
	userID, _ := middleware.GetUserID(c)

	photo, err := ctl.photos.Upload(c.Request.Context(), userID, jobID, fileHeader,
		models.PhotoType(c.PostForm("photo_type")), c.PostForm("caption"))
	if err != nil {
		handleServiceError(c, err, "upload photo")
		return
	}
	respondData(c, http.StatusCreated, photo)
}
