package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onul/clinicdesk/internal/domain"
)

func TestClinicDay_OffsetConversion(t *testing.T) {
	// 2024-03-10T16:00Z is already 2024-03-11T01:00 at the clinic.
	utc := time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC)

	day := domain.ClinicDay(utc)

	assert.Equal(t, "2024-03-11", domain.FormatDay(day))
}

func TestClinicDay_MidnightBoundary(t *testing.T) {
	// Exactly local midnight belongs to the day that starts there.
	midnight := time.Date(2024, 3, 11, 0, 0, 0, 0, domain.ClinicZone)

	day := domain.ClinicDay(midnight)

	assert.True(t, day.Equal(midnight))
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2024, 3, 11, 13, 45, 0, 0, domain.ClinicZone)

	start, end := domain.DayWindow(at)

	assert.Equal(t, "2024-03-11", domain.FormatDay(start))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.True(t, start.Before(at) && at.Before(end))
}

func TestParseDay(t *testing.T) {
	day, err := domain.ParseDay("2024-03-11")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-11", domain.FormatDay(day))

	_, err = domain.ParseDay("")
	assert.ErrorIs(t, err, domain.ErrMissingDate)

	_, err = domain.ParseDay("11-03-2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
