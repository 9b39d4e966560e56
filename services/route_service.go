package services

import (
	"context"
	"fmt"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RouteInput carries route fields from a create or update form.
// Nil fields are left untouched on update. Times are "HH:MM" or "HH:MM:SS"; an empty time clears it.
type RouteInput struct {
	RouteDate          *string             `json:"route_date"`
	RouteName          *string             `json:"route_name"`
	Status             *models.RouteStatus `json:"status"`
	StartLocation      *string             `json:"start_location"`
	EndLocation        *string             `json:"end_location"`
	EstimatedStartTime *string             `json:"estimated_start_time"`
	EstimatedEndTime   *string             `json:"estimated_end_time"`
	ActualStartTime    *string             `json:"actual_start_time"`
	ActualEndTime      *string             `json:"actual_end_time"`
	AssignedStaffIDs   []string            `json:"assigned_staff_ids"`
	VehicleID          *string             `json:"vehicle_id"`
	Notes              *string             `json:"notes"`
}

func (in *RouteInput) apply(r *models.Route, verr *models.ValidationError) {
	if in.RouteDate != nil {
		if d, ok := parseDateField(verr, "route_date", *in.RouteDate); ok {
			r.RouteDate = d
		}
	}
	if in.RouteName != nil {
		r.RouteName = stringOrNil(in.RouteName)
	}
	if in.StartLocation != nil {
		r.StartLocation = stringOrNil(in.StartLocation)
	}
	if in.EndLocation != nil {
		r.EndLocation = stringOrNil(in.EndLocation)
	}
	applyClock(verr, "estimated_start_time", in.EstimatedStartTime, &r.EstimatedStartTime)
	applyClock(verr, "estimated_end_time", in.EstimatedEndTime, &r.EstimatedEndTime)
	applyClock(verr, "actual_start_time", in.ActualStartTime, &r.ActualStartTime)
	applyClock(verr, "actual_end_time", in.ActualEndTime, &r.ActualEndTime)
	if in.AssignedStaffIDs != nil {
		r.AssignedStaffIDs = models.StaffIDs(in.AssignedStaffIDs).Normalize()
		r.StaffCount = len(r.AssignedStaffIDs)
	}
	if in.VehicleID != nil {
		r.VehicleID = stringOrNil(in.VehicleID)
	}
	if in.Notes != nil {
		r.Notes = stringOrNil(in.Notes)
	}
}

// RouteService reads and writes routes
type RouteService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRouteService creates a route service
func NewRouteService(db *gorm.DB) *RouteService {
	return &RouteService{db: db, now: systemClock}
}

// ListByDate returns the routes planned for date by estimated start time
func (s *RouteService) ListByDate(ctx context.Context, date time.Time) ([]models.Route, error) {
	var routes []models.Route
	err := s.db.WithContext(ctx).
		Where("route_date = ?", datatypes.Date(date)).
		Order("estimated_start_time ASC").
		Find(&routes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}
	return routes, nil
}

// ListAssigned narrows ListByDate to the routes staffID rides on
func (s *RouteService) ListAssigned(ctx context.Context, date time.Time, staffID string) ([]models.Route, error) {
	routes, err := s.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	assigned := routes[:0]
	for _, route := range routes {
		if route.AssignedStaffIDs.Contains(staffID) {
			assigned = append(assigned, route)
		}
	}
	return assigned, nil
}

// Get loads one route
func (s *RouteService) Get(ctx context.Context, id uuid.UUID) (*models.Route, error) {
	var route models.Route
	if err := s.db.WithContext(ctx).First(&route, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "route")
	}
	return &route, nil
}

// Create validates the input and inserts a route owned by createdBy
func (s *RouteService) Create(ctx context.Context, createdBy string, in RouteInput) (*models.Route, error) {
	verr := &models.ValidationError{}
	if in.RouteDate == nil || *in.RouteDate == "" {
		verr.Add("route_date", "Route date is required")
	}
	route := &models.Route{AssignedStaffIDs: models.StaffIDs{}}
	in.apply(route, verr)

	status := models.RoutePlanned
	if in.Status != nil {
		status = *in.Status
	}
	if status.IsValid() {
		if err := route.ApplyStatus(status, s.now()); err != nil {
			return nil, err
		}
	} else {
		verr.Add("status", "Unknown route status")
	}
	if err := validate(verr, route.Validate); err != nil {
		return nil, err
	}
	if createdBy != "" {
		route.CreatedBy = &createdBy
	}

	if err := s.db.WithContext(ctx).Create(route).Error; err != nil {
		return nil, fmt.Errorf("failed to create route: %w", err)
	}
	return route, nil
}

// Update applies the non-nil input fields to an existing route
func (s *RouteService) Update(ctx context.Context, id uuid.UUID, in RouteInput) (*models.Route, error) {
	route, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	verr := &models.ValidationError{}
	in.apply(route, verr)
	if in.Status != nil {
		if !in.Status.IsValid() {
			verr.Add("status", "Unknown route status")
		} else if err := route.ApplyStatus(*in.Status, s.now()); err != nil {
			return nil, err
		}
	}
	if err := validate(verr, route.Validate); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(route).Error; err != nil {
		return nil, fmt.Errorf("failed to update route: %w", err)
	}
	return route, nil
}
