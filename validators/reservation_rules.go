package validators

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/restobook/reservation-app/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// Business hours, inclusive at both ends.
	openingTime = "10:30"
	closingTime = "21:30"
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)
	nonDigits = regexp.MustCompile(`\D`)
)

// ReservationRule is a single predicate in the ordered validation chain.
// Check returns nil when the payload passes; the first failing rule wins
// and later rules are not evaluated.
type ReservationRule struct {
	Name  string
	Check func(r *models.Reservation, now time.Time) error
}

// reservationRules is the canonical rule set for reservation payloads.
// Order matters: format checks run before the combined date-time checks
// that parse those fields.
var reservationRules = []ReservationRule{
	{
		Name: "has-required-fields",
		Check: func(r *models.Reservation, _ time.Time) error {
			fields := []struct {
				name  string
				empty bool
			}{
				{"first_name", strings.TrimSpace(r.FirstName) == ""},
				{"last_name", strings.TrimSpace(r.LastName) == ""},
				{"mobile_number", strings.TrimSpace(r.MobileNumber) == ""},
				{"reservation_date", strings.TrimSpace(r.ReservationDate) == ""},
				{"reservation_time", strings.TrimSpace(r.ReservationTime) == ""},
				{"people", r.People == 0},
			}
			for _, f := range fields {
				if f.empty {
					return fmt.Errorf("A '%s' property is required.", f.name)
				}
			}
			return nil
		},
	},
	{
		Name: "people-is-positive",
		Check: func(r *models.Reservation, _ time.Time) error {
			if r.People < 1 {
				return fmt.Errorf("people must be an integer greater than 0")
			}
			return nil
		},
	},
	{
		Name: "date-format",
		Check: func(r *models.Reservation, _ time.Time) error {
			if !dateRegex.MatchString(r.ReservationDate) {
				return fmt.Errorf("reservation_date is not a valid date: %s", r.ReservationDate)
			}
			if _, err := time.Parse(dateLayout, r.ReservationDate); err != nil {
				return fmt.Errorf("reservation_date is not a valid date: %s", r.ReservationDate)
			}
			return nil
		},
	},
	{
		Name: "time-format",
		Check: func(r *models.Reservation, _ time.Time) error {
			if !timeRegex.MatchString(r.ReservationTime) {
				return fmt.Errorf("reservation_time is not a valid time: %s", r.ReservationTime)
			}
			if _, err := time.Parse(timeLayout, r.ReservationTime); err != nil {
				return fmt.Errorf("reservation_time is not a valid time: %s", r.ReservationTime)
			}
			return nil
		},
	},
	{
		Name: "future-date",
		Check: func(r *models.Reservation, now time.Time) error {
			// Compared in UTC so same-day bookings behave the same
			// regardless of server timezone.
			when, err := time.ParseInLocation(dateLayout+" "+timeLayout,
				r.ReservationDate+" "+r.ReservationTime, time.UTC)
			if err != nil {
				return fmt.Errorf("reservation_date is not a valid date: %s", r.ReservationDate)
			}
			if !when.After(now.UTC()) {
				return fmt.Errorf("Reservation must be for a future date and time.")
			}
			return nil
		},
	},
	{
		Name: "closed-on-tuesdays",
		Check: func(r *models.Reservation, _ time.Time) error {
			when, err := time.Parse(dateLayout, r.ReservationDate)
			if err != nil {
				return fmt.Errorf("reservation_date is not a valid date: %s", r.ReservationDate)
			}
			if when.Weekday() == time.Tuesday {
				return fmt.Errorf("The restaurant is closed on Tuesdays.")
			}
			return nil
		},
	},
	{
		Name: "within-business-hours",
		Check: func(r *models.Reservation, _ time.Time) error {
			if r.ReservationTime < openingTime || r.ReservationTime > closingTime {
				return fmt.Errorf("reservation_time must be between %s and %s", openingTime, closingTime)
			}
			return nil
		},
	},
	{
		Name: "mobile-number",
		Check: func(r *models.Reservation, _ time.Time) error {
			digits := Digits(r.MobileNumber)
			if len(digits) != 10 {
				return fmt.Errorf("mobile_number is not a valid phone number: %s", r.MobileNumber)
			}
			// Canonicalize in place before persistence.
			r.MobileNumber = digits[0:3] + "-" + digits[3:6] + "-" + digits[6:]
			return nil
		},
	},
}

// ValidateReservation runs the ordered rule set against a reservation
// payload, short-circuiting on the first violation. As a side effect the
// mobile number is canonicalized to NNN-NNN-NNNN.
func ValidateReservation(r *models.Reservation, now time.Time) error {
	for _, rule := range reservationRules {
		if err := rule.Check(r, now); err != nil {
			return err
		}
	}
	return nil
}

// ValidateNewReservation applies the creation-only status restriction on
// top of the shared rule set: a new reservation must start out booked.
func ValidateNewReservation(r *models.Reservation, now time.Time) error {
	if err := ValidateReservation(r, now); err != nil {
		return err
	}
	if r.Status != "" && r.Status != models.StatusBooked {
		return fmt.Errorf("status %s is not allowed for a new reservation", r.Status)
	}
	return nil
}

// Digits strips every non-digit character, used both for phone
// canonicalization and for phone search.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}
