package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}

func TestParseDateOrToday(t *testing.T) {
	d, err := ParseDateOrToday("")
	require.NoError(t, err)
	assert.Equal(t, Today(), d)
}

func TestFormatLongDate(t *testing.T) {
	d, _ := ParseDate("2024-03-15")
	assert.Equal(t, "March 15, 2024", FormatLongDate(d))
}

func TestWeekBoundsStartOnSunday(t *testing.T) {
	// 2024-03-15 is a Friday
	start, end := WeekBounds(time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-10", start.Format(DateLayout))
	assert.Equal(t, "2024-03-16", end.Format(DateLayout))

	start, _ = WeekBounds(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-10", start.Format(DateLayout))
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-02-01", start.Format(DateLayout))
	assert.Equal(t, "2024-02-29", end.Format(DateLayout))
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("07:30")
	require.NoError(t, err)
	assert.Equal(t, 7, c.Hour())
	assert.Equal(t, 30, c.Minute())

	c, err = ParseClock("15:04:05")
	require.NoError(t, err)
	assert.Equal(t, 5, c.Second())

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestTodayUsesLocalCalendarDate(t *testing.T) {
	saved := time.Local
	t.Cleanup(func() { time.Local = saved })

	for _, offset := range []int{-11, 14} {
		time.Local = time.FixedZone("test", offset*3600)
		y, m, d := time.Now().Date()
		assert.Equal(t, time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Today(), "offset %d", offset)
	}
}
