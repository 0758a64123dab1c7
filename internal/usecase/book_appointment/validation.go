package book_appointment

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	"github.com/apaddicto/APD-BookingService/pkg/types"
)

// validateRequest validates the request fields themselves; date and time
// rules relative to "now" live in validateDate and validateNotice.
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(strings.TrimSpace(req.FirstName)) < domain.MinNameLength {
		return fmt.Errorf("%w: firstName must be at least %d characters", ErrInvalidInput, domain.MinNameLength)
	}
	if len(strings.TrimSpace(req.LastName)) < domain.MinNameLength {
		return fmt.Errorf("%w: lastName must be at least %d characters", ErrInvalidInput, domain.MinNameLength)
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}

	if countDigits(req.Phone) < domain.MinPhoneLength {
		return fmt.Errorf("%w: phone must contain at least %d digits", ErrInvalidInput, domain.MinPhoneLength)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}

// validateDate checks the date lies inside [today, today+maxAdvanceDays].
func validateDate(date, now time.Time, maxAdvanceDays int, loc *time.Location) error {
	today := startOfDay(now.In(loc))
	day := startOfDay(date.In(loc))

	if day.Before(today) {
		return ErrInvalidDate
	}

	horizon := today.AddDate(0, 0, maxAdvanceDays)
	if day.After(horizon) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// validateNotice enforces the minimum booking notice against the slot's
// start datetime.
func validateNotice(date time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int, loc *time.Location) error {
	cutoff := now.In(loc).Add(time.Duration(minNoticeMinutes) * time.Minute)

	day := startOfDay(date.In(loc))
	if day.After(startOfDay(cutoff)) {
		return nil
	}
	if day.Before(startOfDay(cutoff)) {
		return fmt.Errorf("%w: book at least %d minutes ahead", ErrBookingTooSoon, minNoticeMinutes)
	}

	if startTime.IsBefore(types.NewTimeString(cutoff)) {
		return fmt.Errorf("%w: book at least %d minutes ahead", ErrBookingTooSoon, minNoticeMinutes)
	}
	return nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
