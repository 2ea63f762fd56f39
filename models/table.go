package models

import "time"

type Table struct {
	ID            uint      `gorm:"primaryKey" json:"table_id"`
	TableName     string    `gorm:"type:varchar(50);not null" json:"table_name"`
	Capacity      int       `gorm:"not null" json:"capacity"`
	ReservationID *uint     `gorm:"index" json:"reservation_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Occupied -> a table is occupied while it holds a seated reservation.
func (t *Table) Occupied() bool {
	return t.ReservationID != nil
}
