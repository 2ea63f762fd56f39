package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/restobook/reservation-app/clock"
	"github.com/restobook/reservation-app/models"
	"github.com/restobook/reservation-app/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db, Clock: clock.NewRealClock()}
}

// GetDashboard -> reservation counts by status for a date plus table
// occupancy, for the host-stand dashboard.
func (ac *AdminController) GetDashboard(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = ac.Clock.Now().UTC().Format("2006-01-02")
	}

	var stats struct {
		Date             string `json:"date"`
		ReservationStats struct {
			Booked    int64 `json:"booked"`
			Seated    int64 `json:"seated"`
			Finished  int64 `json:"finished"`
			Cancelled int64 `json:"cancelled"`
		} `json:"reservation_stats"`
		TableStats struct {
			Free     int64 `json:"free"`
			Occupied int64 `json:"occupied"`
		} `json:"table_stats"`
	}
	stats.Date = date

	byStatus := func(status string, dest *int64) {
		ac.DB.Model(&models.Reservation{}).
			Where("reservation_date = ? AND status = ?", date, status).Count(dest)
	}
	byStatus(models.StatusBooked, &stats.ReservationStats.Booked)
	byStatus(models.StatusSeated, &stats.ReservationStats.Seated)
	byStatus(models.StatusFinished, &stats.ReservationStats.Finished)
	byStatus(models.StatusCancelled, &stats.ReservationStats.Cancelled)

	ac.DB.Model(&models.Table{}).Where("reservation_id IS NULL").Count(&stats.TableStats.Free)
	ac.DB.Model(&models.Table{}).Where("reservation_id IS NOT NULL").Count(&stats.TableStats.Occupied)

	utils.RespondData(c, http.StatusOK, stats)
}
