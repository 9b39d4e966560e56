package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(date string, hour int) time.Time {
	d, _ := utils.ParseDate(date)
	return d.Add(time.Duration(hour) * time.Hour)
}

func newJob(t *testing.T, svc *JobService, customerID uuid.UUID, date string, hour int) *models.Job {
	t.Helper()
	job, err := svc.Create(context.Background(), "auth0|staff", JobInput{
		CustomerID:         &customerID,
		ScheduledDate:      ptr(date),
		ScheduledTimeStart: ptr(at(date, hour)),
	})
	require.NoError(t, err)
	return job
}

func TestJobCreateGeneratesNumberAndDefaults(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "Smith")
	svc := NewJobService(db, testNumberer(t))

	job := newJob(t, svc, customer.ID, "2024-03-15", 9)

	assert.True(t, strings.HasPrefix(job.JobNumber, "JOB-"), job.JobNumber)
	assert.Equal(t, models.JobScheduled, job.Status)
	assert.Equal(t, models.PriorityNormal, job.Priority)
	require.NotNil(t, job.CreatedBy)
	assert.Equal(t, "auth0|staff", *job.CreatedBy)
	assert.NotNil(t, job.AssignedStaffIDs)

	other := newJob(t, svc, customer.ID, "2024-03-15", 10)
	assert.NotEqual(t, job.JobNumber, other.JobNumber)
}

func TestJobCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewJobService(db, testNumberer(t))

	_, err := svc.Create(context.Background(), "auth0|staff", JobInput{
		ScheduledDate: ptr("15/03/2024"),
	})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Date must be in YYYY-MM-DD format", verr.Fields["scheduled_date"])
	assert.Contains(t, verr.Fields, "customer_id")
	assert.Contains(t, verr.Fields, "scheduled_time_start")
}

func TestJobCreateUnknownCustomer(t *testing.T) {
	svc := NewJobService(setupTestDB(t), testNumberer(t))

	_, err := svc.Create(context.Background(), "auth0|staff", JobInput{
		CustomerID:         ptr(uuid.New()),
		ScheduledDate:      ptr("2024-03-15"),
		ScheduledTimeStart: ptr(at("2024-03-15", 9)),
	})

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "customer", nf.Entity)
}

func TestJobListByDate(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "Smith")
	svc := NewJobService(db, testNumberer(t))

	late := newJob(t, svc, customer.ID, "2024-03-15", 14)
	early := newJob(t, svc, customer.ID, "2024-03-15", 8)
	newJob(t, svc, customer.ID, "2024-03-16", 9)

	day, _ := utils.ParseDate("2024-03-15")
	jobs, err := svc.ListByDate(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, early.ID, jobs[0].ID)
	assert.Equal(t, late.ID, jobs[1].ID)
	require.NotNil(t, jobs[0].Customer)
	assert.Equal(t, "Smith", jobs[0].Customer.LastName)
	assert.Equal(t, "555-0100", jobs[0].Customer.Phone)

	empty, _ := utils.ParseDate("2024-03-17")
	jobs, err = svc.ListByDate(context.Background(), empty)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestJobListAssigned(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "Smith")
	svc := NewJobService(db, testNumberer(t))
	ctx := context.Background()

	mine := newJob(t, svc, customer.ID, "2024-03-15", 9)
	newJob(t, svc, customer.ID, "2024-03-15", 11)
	_, err := svc.Update(ctx, mine.ID, JobInput{AssignedStaffIDs: []string{"auth0|a"}})
	require.NoError(t, err)

	day, _ := utils.ParseDate("2024-03-15")
	jobs, err := svc.ListAssigned(ctx, day, "auth0|a")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, mine.ID, jobs[0].ID)
}

func TestJobCountBetweenAndRecent(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "Smith")
	svc := NewJobService(db, testNumberer(t))

	for _, d := range []string{"2024-03-10", "2024-03-12", "2024-03-16", "2024-03-17"} {
		newJob(t, svc, customer.ID, d, 9)
	}

	start, end := utils.WeekBounds(at("2024-03-15", 0))
	count, err := svc.CountBetween(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	recent, err := svc.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "2024-03-17", time.Time(recent[0].ScheduledDate).Format(utils.DateLayout))
}

func TestJobUpdateStatusLifecycle(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "Smith")
	svc := NewJobService(db, testNumberer(t))
	now := time.Date(2024, 3, 15, 16, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	job := newJob(t, svc, customer.ID, "2024-03-15", 9)

	updated, err := svc.Update(context.Background(), job.ID, JobInput{
		Status:             ptr(models.JobCancelled),
		CancellationReason: ptr("Gate locked"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CancelledAt)
	assert.Equal(t, "Gate locked", *updated.CancellationReason)

	_, err = svc.Update(context.Background(), job.ID, JobInput{Status: ptr(models.JobInProgress)})
	var terr *models.TransitionError
	require.ErrorAs(t, err, &terr)

	updated, err = svc.Update(context.Background(), job.ID, JobInput{Status: ptr(models.JobRescheduled)})
	require.NoError(t, err)
	assert.Nil(t, updated.CancelledAt)
	assert.Nil(t, updated.CancellationReason)

	loaded, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobRescheduled, loaded.Status)
	assert.Nil(t, loaded.CancelledAt)
}

func TestJobUpdateAssignsStaff(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "Smith")
	svc := NewJobService(db, testNumberer(t))
	job := newJob(t, svc, customer.ID, "2024-03-15", 9)

	_, err := svc.Update(context.Background(), job.ID, JobInput{AssignedStaffIDs: []string{"auth0|a", "auth0|b", "auth0|a"}})
	require.NoError(t, err)

	loaded, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StaffIDs{"auth0|a", "auth0|b"}, loaded.AssignedStaffIDs)
}

func TestJobUpdateScheduledTimeEnd(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Jane", "Smith")
	svc := NewJobService(db, testNumberer(t))
	job := newJob(t, svc, customer.ID, "2024-03-15", 9)
	ctx := context.Background()

	_, err := svc.Update(ctx, job.ID, JobInput{ScheduledTimeEnd: ptr(at("2024-03-15", 11).Format(time.RFC3339))})
	require.NoError(t, err)
	loaded, err := svc.Get(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.ScheduledTimeEnd)
	assert.True(t, loaded.ScheduledTimeEnd.Equal(at("2024-03-15", 11)))

	_, err = svc.Update(ctx, job.ID, JobInput{ScheduledTimeEnd: ptr("")})
	require.NoError(t, err)
	loaded, err = svc.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.ScheduledTimeEnd)

	_, err = svc.Update(ctx, job.ID, JobInput{ScheduledTimeEnd: ptr("11am")})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "scheduled_time_end")
}
