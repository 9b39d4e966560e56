package services

import (
	"errors"
	"strings"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// lookupErr turns gorm's not-found into a NotFoundError for entity
func lookupErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity)
	}
	return err
}

// parseDateField parses a YYYY-MM-DD value, recording a field error on failure
func parseDateField(verr *models.ValidationError, field, value string) (datatypes.Date, bool) {
	d, err := utils.ParseDate(value)
	if err != nil {
		verr.Add(field, "Date must be in YYYY-MM-DD format")
		return datatypes.Date{}, false
	}
	return datatypes.Date(d), true
}

// applyClock sets *dst from an "HH:MM" or "HH:MM:SS" value; an empty value clears it
func applyClock(verr *models.ValidationError, field string, value *string, dst **datatypes.Time) {
	if value == nil {
		return
	}
	if *value == "" {
		*dst = nil
		return
	}
	t, err := utils.ParseClock(*value)
	if err != nil {
		verr.Add(field, "Time must be in HH:MM or HH:MM:SS format")
		return
	}
	clock := datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)
	*dst = &clock
}

// stringOrNil trims p, mapping a blank value to nil
func stringOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// systemClock reads the server's local clock; utils.DateOf keeps its calendar date
func systemClock() time.Time {
	return time.Now()
}

// validate runs check and folds its field errors into verr, returning the combined error
func validate(verr *models.ValidationError, check func() error) error {
	err := check()
	var fieldErr *models.ValidationError
	if errors.As(err, &fieldErr) {
		for field, msg := range fieldErr.Fields {
			verr.Add(field, msg)
		}
	} else if err != nil {
		return err
	}
	return verr.Err()
}
