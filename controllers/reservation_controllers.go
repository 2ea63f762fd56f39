package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/restobook/reservation-app/clock"
	"github.com/restobook/reservation-app/events"
	"github.com/restobook/reservation-app/models"
	"github.com/restobook/reservation-app/utils"
	"github.com/restobook/reservation-app/validators"
	"gorm.io/gorm"
)

var errMissingData = errors.New("Body must have data property")

type ReservationController struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db, Clock: clock.NewRealClock()}
}

type reservationPayload struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MobileNumber    string `json:"mobile_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	People          int    `json:"people"`
	Status          string `json:"status"`
}

func bindReservationData(c *gin.Context) (*reservationPayload, error) {
	var body struct {
		Data *reservationPayload `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, err
	}
	if body.Data == nil {
		return nil, errMissingData
	}
	return body.Data, nil
}

// ListReservations -> all reservations, optionally filtered by date or by
// a partial phone number match against the stored digits.
func (rc *ReservationController) ListReservations(c *gin.Context) {
	var reservations []models.Reservation

	if date := c.Query("date"); date != "" {
		if err := rc.DB.Where("reservation_date = ?", date).
			Order("reservation_time").Find(&reservations).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondData(c, http.StatusOK, reservations)
		return
	}

	if mobile := c.Query("mobile_number"); mobile != "" {
		digits := validators.Digits(mobile)
		if err := rc.DB.Where("REPLACE(mobile_number, '-', '') LIKE ?", "%"+digits+"%").
			Order("reservation_date").Find(&reservations).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondData(c, http.StatusOK, reservations)
		return
	}

	if err := rc.DB.Order("reservation_date").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondData(c, http.StatusOK, reservations)
}

// CreateReservation -> books a new reservation (status starts as 'booked').
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	payload, err := bindReservationData(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation := models.Reservation{
		FirstName:       payload.FirstName,
		LastName:        payload.LastName,
		MobileNumber:    payload.MobileNumber,
		ReservationDate: payload.ReservationDate,
		ReservationTime: payload.ReservationTime,
		People:          payload.People,
		Status:          payload.Status,
	}

	if err := validators.ValidateNewReservation(&reservation, rc.Clock.Now()); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	reservation.Status = models.StatusBooked

	if err := rc.DB.Create(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastReservationCreate(reservation)

	utils.InfoLogger.Printf("New reservation created: %s %s on %s %s (people=%d)",
		reservation.FirstName, reservation.LastName,
		reservation.ReservationDate, reservation.ReservationTime, reservation.People)
	utils.RespondData(c, http.StatusCreated, reservation)
}

// GetReservationByID -> detail of one reservation.
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id := c.Param("reservation_id")

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Reservation %s cannot be found.", id))
		return
	}
	utils.RespondData(c, http.StatusOK, reservation)
}

// UpdateReservation -> full field update, allowed only while the
// reservation is not finished or cancelled.
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id := c.Param("reservation_id")

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Reservation %s cannot be found.", id))
		return
	}

	if reservation.IsTerminal() {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("a %s reservation cannot be updated", reservation.Status))
		return
	}

	payload, err := bindReservationData(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation.FirstName = payload.FirstName
	reservation.LastName = payload.LastName
	reservation.MobileNumber = payload.MobileNumber
	reservation.ReservationDate = payload.ReservationDate
	reservation.ReservationTime = payload.ReservationTime
	reservation.People = payload.People

	if err := validators.ValidateReservation(&reservation, rc.Clock.Now()); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastReservationUpdate(reservation)
	utils.RespondData(c, http.StatusOK, reservation)
}

// UpdateReservationStatus -> moves a reservation along its lifecycle.
// Finished and cancelled are terminal and reject any further change.
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id := c.Param("reservation_id")

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Reservation %s cannot be found.", id))
		return
	}

	var body struct {
		Data *struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Data == nil {
		utils.RespondError(c, http.StatusBadRequest, errMissingData)
		return
	}

	newStatus := body.Data.Status
	if !models.IsValidStatus(newStatus) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("status %s is invalid", newStatus))
		return
	}

	if reservation.IsTerminal() {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("a %s reservation cannot be updated", reservation.Status))
		return
	}

	reservation.Status = newStatus
	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastReservationUpdate(reservation)

	utils.InfoLogger.Printf("Reservation %d status changed to %s", reservation.ID, reservation.Status)
	utils.RespondData(c, http.StatusOK, reservation)
}
