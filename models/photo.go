package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo points at an image of a job kept in the job-photos bucket
type Photo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	Job         *Job      `gorm:"foreignKey:JobID" json:"-"`
	StoragePath string    `gorm:"not null" json:"storage_path"`
	PhotoType   PhotoType `gorm:"type:varchar(16);not null;default:'general'" json:"photo_type"`
	Caption     *string   `json:"caption"`
	UploadedBy  *string   `gorm:"index" json:"uploaded_by"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	JobNumber string `gorm:"-" json:"job_number"` // computed, "Unknown Job" when the job is missing
	URL       string `gorm:"-" json:"url"`        // computed from StoragePath
}

// TableName specifies the table name for the Photo model
func (Photo) TableName() string {
	return "photos"
}

// BeforeCreate generates a UUID and fills defaults before inserting a photo
func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PhotoType == "" {
		p.PhotoType = PhotoGeneral
	}
	return nil
}
