package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestRouteStaffCount(t *testing.T) {
	r := Route{AssignedStaffIDs: StaffIDs{"auth0|a", "auth0|b", "auth0|c"}}
	require.NoError(t, r.AfterFind(nil))
	assert.Equal(t, 3, r.StaffCount)

	empty := Route{}
	require.NoError(t, empty.AfterFind(nil))
	assert.Equal(t, 0, empty.StaffCount)
}

func TestRouteValidate(t *testing.T) {
	start := datatypes.NewTime(10, 0, 0, 0)
	end := datatypes.NewTime(8, 0, 0, 0)
	r := Route{EstimatedStartTime: &start, EstimatedEndTime: &end}

	var verr *ValidationError
	require.ErrorAs(t, r.Validate(), &verr)
	assert.Contains(t, verr.Fields, "route_date")
	assert.Contains(t, verr.Fields, "estimated_end_time")
}

func TestRouteApplyStatusStampsActualTimes(t *testing.T) {
	r := Route{Status: RoutePlanned}
	started := time.Date(2024, 3, 15, 7, 30, 0, 0, time.UTC)

	require.NoError(t, r.ApplyStatus(RouteInProgress, started))
	require.NotNil(t, r.ActualStartTime)
	assert.Equal(t, "07:30:00", r.ActualStartTime.String())
	assert.Nil(t, r.ActualEndTime)

	require.NoError(t, r.ApplyStatus(RouteCompleted, started.Add(8*time.Hour)))
	assert.Equal(t, "07:30:00", r.ActualStartTime.String())
	assert.Equal(t, "15:30:00", r.ActualEndTime.String())

	assert.Error(t, r.ApplyStatus(RoutePlanned, started))
}
