package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Job is a scheduled visit to a customer
type Job struct {
	ID                       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer                 *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	JobNumber                string         `gorm:"uniqueIndex;not null" json:"job_number"`
	ScheduledDate            datatypes.Date `gorm:"not null;index" json:"scheduled_date"`
	ScheduledTimeStart       time.Time      `gorm:"not null" json:"scheduled_time_start"`
	ScheduledTimeEnd         *time.Time     `json:"scheduled_time_end"`
	Status                   JobStatus      `gorm:"type:varchar(16);not null;default:'scheduled';index" json:"status"`
	JobType                  *JobType       `gorm:"type:varchar(32)" json:"job_type"`
	Priority                 JobPriority    `gorm:"type:varchar(16);not null;default:'normal'" json:"priority"`
	Description              *string        `gorm:"type:text" json:"description"`
	EstimatedDurationMinutes *int           `json:"estimated_duration_minutes"`
	AssignedStaffIDs         StaffIDs       `gorm:"column:assigned_staff_ids" json:"assigned_staff_ids"`
	CompletedAt              *time.Time     `json:"completed_at"`
	CancelledAt              *time.Time     `json:"cancelled_at"`
	CancellationReason       *string        `json:"cancellation_reason"`
	CreatedBy                *string        `gorm:"index" json:"created_by"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// BeforeCreate generates a UUID and fills defaults before inserting a job
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = JobScheduled
	}
	if j.Priority == "" {
		j.Priority = PriorityNormal
	}
	if j.AssignedStaffIDs == nil {
		j.AssignedStaffIDs = StaffIDs{}
	}
	return nil
}

// Validate checks required fields, enum values and the time window
func (j *Job) Validate() error {
	verr := &ValidationError{}
	if j.CustomerID == uuid.Nil {
		verr.Add("customer_id", "Customer is required")
	}
	if time.Time(j.ScheduledDate).IsZero() {
		verr.Add("scheduled_date", "Scheduled date is required")
	}
	if j.ScheduledTimeStart.IsZero() {
		verr.Add("scheduled_time_start", "Start time is required")
	}
	if j.ScheduledTimeEnd != nil && j.ScheduledTimeEnd.Before(j.ScheduledTimeStart) {
		verr.Add("scheduled_time_end", "End time cannot be before start time")
	}
	if j.Status != "" && !j.Status.IsValid() {
		verr.Add("status", "Unknown job status")
	}
	if j.JobType != nil && !j.JobType.IsValid() {
		verr.Add("job_type", "Unknown job type")
	}
	if j.Priority != "" && !j.Priority.IsValid() {
		verr.Add("priority", "Unknown priority")
	}
	if j.EstimatedDurationMinutes != nil && *j.EstimatedDurationMinutes < 0 {
		verr.Add("estimated_duration_minutes", "Estimated duration cannot be negative")
	}
	return verr.Err()
}

// ApplyStatus moves the job to next and keeps the completion and cancellation
// fields consistent with the resulting status.
func (j *Job) ApplyStatus(next JobStatus, now time.Time, cancellationReason *string) error {
	if j.Status != "" && !j.Status.CanTransitionTo(next) {
		return &TransitionError{Entity: "job", From: string(j.Status), To: string(next)}
	}
	j.Status = next

	if next == JobCompleted {
		if j.CompletedAt == nil {
			j.CompletedAt = &now
		}
	} else {
		j.CompletedAt = nil
	}

	if next == JobCancelled {
		if j.CancelledAt == nil {
			j.CancelledAt = &now
		}
		if cancellationReason != nil {
			j.CancellationReason = cancellationReason
		}
	} else {
		j.CancelledAt = nil
		j.CancellationReason = nil
	}
	return nil
}
