package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/trackdown/internal/constants"
)

// Today returns today's date string (YYYY-MM-DD) in the local timezone.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// NowStamp returns the current instant as an RFC3339 UTC string, the format
// used for createdAt/updatedAt on entries and exportedAt on backups.
func NowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(dateStr string) error {
	if _, err := time.Parse(constants.DateFormat, dateStr); err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", dateStr)
	}
	return nil
}

// ParseLocalDate parses a stored YYYY-MM-DD date as a local calendar date.
// Parsing in the local location keeps day arithmetic stable near midnight in
// non-UTC timezones; a UTC parse would shift dates by a day for some users.
func ParseLocalDate(dateStr string) (time.Time, bool) {
	t, err := time.ParseInLocation(constants.DateFormat, dateStr, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidateTime checks an HH:MM time-of-day string.
func ValidateTime(timeStr string) error {
	if _, err := time.Parse(constants.TimeFormat, timeStr); err != nil {
		return fmt.Errorf("invalid time format: %s (expected HH:MM)", timeStr)
	}
	return nil
}
