package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// PlaceholderImageURL is shown when a photo URL cannot be produced
	PlaceholderImageURL = "/placeholder-image.png"
	// UnknownJobNumber is shown when a photo's job cannot be loaded
	UnknownJobNumber = "Unknown Job"
)

// PhotoService records job photos and resolves their URLs through a PhotoStorage
type PhotoService struct {
	db      *gorm.DB
	storage PhotoStorage
	now     func() time.Time
}

// NewPhotoService creates a photo service backed by storage
func NewPhotoService(db *gorm.DB, storage PhotoStorage) *PhotoService {
	return &PhotoService{db: db, storage: storage, now: systemClock}
}

// List returns photos newest first, optionally for one job, with job number and URL filled in
func (s *PhotoService) List(ctx context.Context, jobID *uuid.UUID) ([]models.Photo, error) {
	query := s.db.WithContext(ctx).
		Preload("Job", func(db *gorm.DB) *gorm.DB { return db.Select("id", "job_number") }).
		Order("created_at DESC")
	if jobID != nil {
		query = query.Where("job_id = ?", *jobID)
	}

	var photos []models.Photo
	if err := query.Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("failed to load photos: %w", err)
	}
	for i := range photos {
		s.decorate(ctx, &photos[i])
	}
	return photos, nil
}

// Get loads one photo with job number and URL filled in
func (s *PhotoService) Get(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	var photo models.Photo
	err := s.db.WithContext(ctx).
		Preload("Job", func(db *gorm.DB) *gorm.DB { return db.Select("id", "job_number") }).
		First(&photo, "id = ?", id).Error
	if err != nil {
		return nil, lookupErr(err, "photo")
	}
	s.decorate(ctx, &photo)
	return &photo, nil
}

// Upload stores the file under jobs/<job_id>/ and records a photo row for it
func (s *PhotoService) Upload(ctx context.Context, uploadedBy string, jobID uuid.UUID, fileHeader *multipart.FileHeader, photoType models.PhotoType, caption string) (*models.Photo, error) {
	if err := utils.ValidatePhotoFile(fileHeader); err != nil {
		return nil, err
	}
	if photoType == "" {
		photoType = models.PhotoGeneral
	}
	if !photoType.IsValid() {
		verr := &models.ValidationError{}
		verr.Add("photo_type", "Photo type must be one of before, during, after, damage, general")
		return nil, verr
	}

	var job models.Job
	if err := s.db.WithContext(ctx).Select("id", "job_number").First(&job, "id = ?", jobID).Error; err != nil {
		return nil, lookupErr(err, "job")
	}

	key := utils.PhotoObjectKey(jobID.String(), fileHeader.Filename, s.now())
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close upload: %v", closeErr)
		}
	}()

	if err := s.storage.Upload(ctx, key, utils.PhotoContentType(fileHeader.Filename), file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	photo := &models.Photo{
		JobID:       jobID,
		StoragePath: key,
		PhotoType:   photoType,
		Caption:     stringOrNil(&caption),
	}
	if uploadedBy != "" {
		photo.UploadedBy = &uploadedBy
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(photo).Error; err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Printf("Failed to remove orphaned photo %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("failed to record photo: %w", err)
	}

	photo.Job = &job
	s.decorate(ctx, photo)
	return photo, nil
}

func (s *PhotoService) decorate(ctx context.Context, photo *models.Photo) {
	photo.JobNumber = UnknownJobNumber
	if photo.Job != nil && photo.Job.JobNumber != "" {
		photo.JobNumber = photo.Job.JobNumber
	}

	photo.URL = PlaceholderImageURL
	if s.storage == nil {
		return
	}
	url, err := s.storage.URL(ctx, photo.StoragePath)
	if err != nil {
		log.Printf("Failed to resolve URL for photo %s: %v", photo.ID, err)
		return
	}
	photo.URL = url
}
