package models

import "time"

// Reservation statuses. A reservation moves booked -> seated -> finished,
// or booked -> cancelled. Finished and cancelled are terminal.
const (
	StatusBooked    = "booked"
	StatusSeated    = "seated"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"reservation_id"`
	FirstName       string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string    `gorm:"type:varchar(100);not null" json:"last_name"`
	MobileNumber    string    `gorm:"type:varchar(20);not null" json:"mobile_number"`
	ReservationDate string    `gorm:"type:varchar(10);not null;index" json:"reservation_date"`
	ReservationTime string    `gorm:"type:varchar(5);not null" json:"reservation_time"`
	People          int       `gorm:"not null" json:"people"`
	Status          string    `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsValidStatus reports whether s is one of the four reservation statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusBooked, StatusSeated, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal -> finished and cancelled reservations reject all further mutation.
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusFinished || r.Status == StatusCancelled
}
