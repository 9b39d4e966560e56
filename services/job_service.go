package services

import (
	"context"
	"fmt"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobInput carries job fields from a create or update form.
// Nil fields are left untouched on update.
type JobInput struct {
	CustomerID               *uuid.UUID          `json:"customer_id"`
	JobNumber                *string             `json:"job_number"`
	ScheduledDate            *string             `json:"scheduled_date"`
	ScheduledTimeStart       *time.Time          `json:"scheduled_time_start"`
	ScheduledTimeEnd         *string             `json:"scheduled_time_end"`
	Status                   *models.JobStatus   `json:"status"`
	JobType                  *models.JobType     `json:"job_type"`
	Priority                 *models.JobPriority `json:"priority"`
	Description              *string             `json:"description"`
	EstimatedDurationMinutes *int                `json:"estimated_duration_minutes" binding:"omitempty,min=0"`
	AssignedStaffIDs         []string            `json:"assigned_staff_ids"`
	CancellationReason       *string             `json:"cancellation_reason"`
}

func (in *JobInput) apply(j *models.Job, verr *models.ValidationError) {
	if in.CustomerID != nil {
		j.CustomerID = *in.CustomerID
	}
	if in.JobNumber != nil && *in.JobNumber != "" {
		j.JobNumber = *in.JobNumber
	}
	if in.ScheduledDate != nil {
		if d, ok := parseDateField(verr, "scheduled_date", *in.ScheduledDate); ok {
			j.ScheduledDate = d
		}
	}
	if in.ScheduledTimeStart != nil {
		j.ScheduledTimeStart = *in.ScheduledTimeStart
	}
	if in.ScheduledTimeEnd != nil {
		if *in.ScheduledTimeEnd == "" {
			j.ScheduledTimeEnd = nil
		} else if end, err := time.Parse(time.RFC3339, *in.ScheduledTimeEnd); err != nil {
			verr.Add("scheduled_time_end", "Time must be an RFC 3339 timestamp")
		} else {
			j.ScheduledTimeEnd = &end
		}
	}
	if in.JobType != nil {
		if *in.JobType == "" {
			j.JobType = nil
		} else {
			j.JobType = in.JobType
		}
	}
	if in.Priority != nil {
		j.Priority = *in.Priority
	}
	if in.Description != nil {
		j.Description = stringOrNil(in.Description)
	}
	if in.EstimatedDurationMinutes != nil {
		j.EstimatedDurationMinutes = in.EstimatedDurationMinutes
	}
	if in.AssignedStaffIDs != nil {
		j.AssignedStaffIDs = models.StaffIDs(in.AssignedStaffIDs).Normalize()
	}
}

// JobService reads and writes jobs
type JobService struct {
	db       *gorm.DB
	numberer *Numberer
	now      func() time.Time
}

// NewJobService creates a job service; numberer fills in missing job numbers
func NewJobService(db *gorm.DB, numberer *Numberer) *JobService {
	return &JobService{db: db, numberer: numberer, now: systemClock}
}

func withCustomerContact(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "phone")
}

// ListByDate returns the jobs scheduled on date by start time, with customer contact details
func (s *JobService) ListByDate(ctx context.Context, date time.Time) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Preload("Customer", withCustomerContact).
		Where("scheduled_date = ?", datatypes.Date(date)).
		Order("scheduled_time_start ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	return jobs, nil
}

// ListAssigned narrows ListByDate to the jobs staffID is assigned to
func (s *JobService) ListAssigned(ctx context.Context, date time.Time, staffID string) ([]models.Job, error) {
	jobs, err := s.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	assigned := jobs[:0]
	for _, job := range jobs {
		if job.AssignedStaffIDs.Contains(staffID) {
			assigned = append(assigned, job)
		}
	}
	return assigned, nil
}

// Recent returns the latest jobs by scheduled date
func (s *JobService) Recent(ctx context.Context, limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Preload("Customer", withCustomerContact).
		Order("scheduled_date DESC").
		Order("scheduled_time_start DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent jobs: %w", err)
	}
	return jobs, nil
}

// CountBetween counts jobs scheduled from start to end inclusive
func (s *JobService) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("scheduled_date >= ? AND scheduled_date <= ?", datatypes.Date(start), datatypes.Date(end)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// Get loads one job with its customer
func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).Preload("Customer").First(&job, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "job")
	}
	return &job, nil
}

// Create validates the input and inserts a job owned by createdBy
func (s *JobService) Create(ctx context.Context, createdBy string, in JobInput) (*models.Job, error) {
	verr := &models.ValidationError{}
	job := &models.Job{Priority: models.PriorityNormal}
	in.apply(job, verr)

	status := models.JobScheduled
	if in.Status != nil {
		status = *in.Status
	}
	if status.IsValid() {
		if err := job.ApplyStatus(status, s.now(), in.CancellationReason); err != nil {
			return nil, err
		}
	} else {
		verr.Add("status", "Unknown job status")
	}
	if err := validate(verr, job.Validate); err != nil {
		return nil, err
	}

	if err := ensureExists(ctx, s.db, &models.Customer{}, job.CustomerID, "customer"); err != nil {
		return nil, err
	}
	if job.JobNumber == "" {
		job.JobNumber = s.numberer.Next(JobPrefix)
	}
	if createdBy != "" {
		job.CreatedBy = &createdBy
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// Update applies the non-nil input fields to an existing job.
// A status change goes through the transition table.
func (s *JobService) Update(ctx context.Context, id uuid.UUID, in JobInput) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "job")
	}

	verr := &models.ValidationError{}
	previousCustomer := job.CustomerID
	in.apply(&job, verr)

	if in.Status != nil {
		if !in.Status.IsValid() {
			verr.Add("status", "Unknown job status")
		} else if err := job.ApplyStatus(*in.Status, s.now(), in.CancellationReason); err != nil {
			return nil, err
		}
	} else if in.CancellationReason != nil && job.Status == models.JobCancelled {
		job.CancellationReason = stringOrNil(in.CancellationReason)
	}
	if err := validate(verr, job.Validate); err != nil {
		return nil, err
	}

	if job.CustomerID != previousCustomer {
		if err := ensureExists(ctx, s.db, &models.Customer{}, job.CustomerID, "customer"); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return &job, nil
}

// ensureExists returns a NotFoundError for entity when no row of model has id
func ensureExists(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID, entity string) error {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up %s: %w", entity, err)
	}
	if count == 0 {
		return notFound(entity)
	}
	return nil
}
