package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/restobook/reservation-app/models"
)

// 2026-03-02 is a Monday.
var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func validReservation() models.Reservation {
	return models.Reservation{
		FirstName:       "Ana",
		LastName:        "Silva",
		MobileNumber:    "5551234567",
		ReservationDate: "2026-03-04",
		ReservationTime: "12:00",
		People:          3,
	}
}

func TestValidateReservationAccepted(t *testing.T) {
	r := validReservation()
	err := ValidateReservation(&r, testNow)
	assert.NoError(t, err)
	assert.Equal(t, "555-123-4567", r.MobileNumber)
}

func TestValidateReservationRequiredFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(r *models.Reservation)
	}{
		{"first_name", func(r *models.Reservation) { r.FirstName = "" }},
		{"last_name", func(r *models.Reservation) { r.LastName = "" }},
		{"mobile_number", func(r *models.Reservation) { r.MobileNumber = "" }},
		{"reservation_date", func(r *models.Reservation) { r.ReservationDate = "" }},
		{"reservation_time", func(r *models.Reservation) { r.ReservationTime = "" }},
		{"people", func(r *models.Reservation) { r.People = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			r := validReservation()
			tc.mutate(&r)
			err := ValidateReservation(&r, testNow)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestValidateReservationRules(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(r *models.Reservation)
		wantErr string
	}{
		{"negative people", func(r *models.Reservation) { r.People = -2 }, "people"},
		{"bad date format", func(r *models.Reservation) { r.ReservationDate = "03-04-2026" }, "not a valid date"},
		{"bad time format", func(r *models.Reservation) { r.ReservationTime = "noon" }, "not a valid time"},
		{"past date", func(r *models.Reservation) { r.ReservationDate = "2026-03-01" }, "future"},
		{"same day earlier time", func(r *models.Reservation) {
			r.ReservationDate = "2026-03-02"
			r.ReservationTime = "11:00"
		}, "future"},
		{"tuesday", func(r *models.Reservation) { r.ReservationDate = "2026-03-03" }, "closed on Tuesdays"},
		{"before opening", func(r *models.Reservation) { r.ReservationTime = "10:29" }, "between 10:30 and 21:30"},
		{"after closing", func(r *models.Reservation) { r.ReservationTime = "21:31" }, "between 10:30 and 21:30"},
		{"short phone", func(r *models.Reservation) { r.MobileNumber = "12345" }, "not a valid phone number"},
		{"long phone", func(r *models.Reservation) { r.MobileNumber = "55512345678" }, "not a valid phone number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validReservation()
			tc.mutate(&r)
			err := ValidateReservation(&r, testNow)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// Business hours are inclusive at both ends.
func TestValidateReservationBusinessHoursBoundaries(t *testing.T) {
	for _, tt := range []string{"10:30", "21:30"} {
		r := validReservation()
		r.ReservationTime = tt
		assert.NoError(t, ValidateReservation(&r, testNow), tt)
	}
}

func TestValidateReservationPhoneWithFormatting(t *testing.T) {
	r := validReservation()
	r.MobileNumber = "(555) 123-4567"
	assert.NoError(t, ValidateReservation(&r, testNow))
	assert.Equal(t, "555-123-4567", r.MobileNumber)
}

func TestValidateNewReservationStatus(t *testing.T) {
	for _, status := range []string{models.StatusSeated, models.StatusFinished, models.StatusCancelled} {
		r := validReservation()
		r.Status = status
		err := ValidateNewReservation(&r, testNow)
		assert.Error(t, err, status)
		assert.Contains(t, err.Error(), status)
	}

	r := validReservation()
	r.Status = models.StatusBooked
	assert.NoError(t, ValidateNewReservation(&r, testNow))
}
