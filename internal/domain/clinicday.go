package domain

import (
	"time"
)

// ClinicZone is the clinic's fixed local offset (UTC+9). Every
// day-boundary decision is made in this zone, never in the store's or
// the server's native zone.
var ClinicZone = time.FixedZone("KST", 9*60*60)

// DayLayout is the wire format for clinic calendar days.
const DayLayout = "2006-01-02"

// ClinicDay truncates t to midnight of its clinic-local calendar day.
// A record stamped exactly at midnight belongs to the day that starts
// at that instant.
func ClinicDay(t time.Time) time.Time {
	local := t.In(ClinicZone)

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, ClinicZone)
}

// DayWindow returns the half-open interval [start, end) covering the
// clinic-local day containing t.
func DayWindow(t time.Time) (start, end time.Time) {
	start = ClinicDay(t)

	return start, start.AddDate(0, 0, 1)
}

// ParseDay parses a YYYY-MM-DD string as a clinic-local day.
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrMissingDate
	}

	day, err := time.ParseInLocation(DayLayout, s, ClinicZone)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return day, nil
}

// FormatDay renders t's clinic-local day as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.In(ClinicZone).Format(DayLayout)
}
