package validator

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/taskkit/pkg/taskerr"
)

// maxFutureDays bounds how far ahead a date may reasonably lie.
const maxFutureDays = 365 * 100

// FutureDate checks that value lies in the future, tolerating up to
// allowPastDays days in the past, and rejects dates more than a hundred
// years ahead. Returns the value unchanged on success.
func FutureDate(field string, value time.Time, allowPastDays int) (time.Time, error) {
	if value.IsZero() {
		return time.Time{}, taskerr.NewDate(field, fmt.Sprintf("%s must be a valid date", field)).
			WithCode("DATE_REQUIRED").
			WithDetail("hint", "Provide a non-zero date value")
	}

	now := time.Now()
	earliest := now.AddDate(0, 0, -allowPastDays)

	if value.Before(earliest) {
		var message, hint string
		if allowPastDays == 0 {
			message = fmt.Sprintf("%s must be in the future, not in the past", field)
			hint = "Provide a date and time that is after the current time"
		} else {
			message = fmt.Sprintf("%s cannot be more than %d days in the past", field, allowPastDays)
			hint = fmt.Sprintf("Provide a date within the last %d days or in the future", allowPastDays)
		}

		return time.Time{}, taskerr.NewDate(field, message).
			WithCode("DATE_NOT_IN_FUTURE").
			WithValue(value).
			WithDetail("provided_date", value.Format(time.RFC3339)).
			WithDetail("current_time", now.Format(time.RFC3339)).
			WithDetail("earliest_allowed", earliest.Format(time.RFC3339)).
			WithDetail("allow_past_days", allowPastDays).
			WithDetail("hint", hint)
	}

	maxFuture := now.AddDate(0, 0, maxFutureDays)
	if value.After(maxFuture) {
		return time.Time{}, taskerr.NewDate(field, fmt.Sprintf("%s is unreasonably far in the future (more than 100 years)", field)).
			WithCode("DATE_TOO_FAR_FUTURE").
			WithValue(value).
			WithDetail("provided_date", value.Format(time.RFC3339)).
			WithDetail("current_time", now.Format(time.RFC3339)).
			WithDetail("max_allowed", maxFuture.Format(time.RFC3339)).
			WithDetail("hint", "Ensure the date is realistic and within a reasonable timeframe")
	}

	return value, nil
}
