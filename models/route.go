package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Route is one day's dispatch plan for a crew
type Route struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RouteDate          datatypes.Date  `gorm:"not null;index" json:"route_date"`
	RouteName          *string         `json:"route_name"`
	Status             RouteStatus     `gorm:"type:varchar(16);not null;default:'planned'" json:"status"`
	StartLocation      *string         `json:"start_location"`
	EndLocation        *string         `json:"end_location"`
	EstimatedStartTime *datatypes.Time `json:"estimated_start_time"`
	EstimatedEndTime   *datatypes.Time `json:"estimated_end_time"`
	ActualStartTime    *datatypes.Time `json:"actual_start_time"`
	ActualEndTime      *datatypes.Time `json:"actual_end_time"`
	AssignedStaffIDs   StaffIDs        `gorm:"column:assigned_staff_ids" json:"assigned_staff_ids"`
	VehicleID          *string         `json:"vehicle_id"`
	Notes              *string         `gorm:"type:text" json:"notes"`
	CreatedBy          *string         `gorm:"index" json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	// StaffCount is the number of assigned staff, derived on load and save
	StaffCount int `gorm:"-" json:"staff_count"`
}

// TableName specifies the table name for the Route model
func (Route) TableName() string {
	return "routes"
}

// BeforeCreate generates a UUID and fills defaults before inserting a route
func (r *Route) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = RoutePlanned
	}
	if r.AssignedStaffIDs == nil {
		r.AssignedStaffIDs = StaffIDs{}
	}
	return nil
}

// AfterFind derives StaffCount
func (r *Route) AfterFind(tx *gorm.DB) error {
	r.StaffCount = len(r.AssignedStaffIDs)
	return nil
}

// AfterSave derives StaffCount
func (r *Route) AfterSave(tx *gorm.DB) error {
	r.StaffCount = len(r.AssignedStaffIDs)
	return nil
}

// Validate checks required fields and the estimated time window
func (r *Route) Validate() error {
	verr := &ValidationError{}
	if time.Time(r.RouteDate).IsZero() {
		verr.Add("route_date", "Route date is required")
	}
	if r.Status != "" && !r.Status.IsValid() {
		verr.Add("status", "Unknown route status")
	}
	if r.EstimatedStartTime != nil && r.EstimatedEndTime != nil && *r.EstimatedEndTime < *r.EstimatedStartTime {
		verr.Add("estimated_end_time", "Estimated end cannot be before estimated start")
	}
	return verr.Err()
}

// ApplyStatus moves the route to next, stamping actual start and end times on first entry
func (r *Route) ApplyStatus(next RouteStatus, now time.Time) error {
	if r.Status != "" && !r.Status.CanTransitionTo(next) {
		return &TransitionError{Entity: "route", From: string(r.Status), To: string(next)}
	}
	r.Status = next

	clock := datatypes.NewTime(now.Hour(), now.Minute(), now.Second(), 0)
	switch next {
	case RouteInProgress:
		if r.ActualStartTime == nil {
			r.ActualStartTime = &clock
		}
	case RouteCompleted:
		if r.ActualStartTime == nil {
			r.ActualStartTime = &clock
		}
		if r.ActualEndTime == nil {
			r.ActualEndTime = &clock
		}
	}
	return nil
}
