package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/restobook/reservation-app/events"
	"github.com/restobook/reservation-app/models"
	"github.com/restobook/reservation-app/utils"
	"github.com/restobook/reservation-app/validators"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

type tablePayload struct {
	TableName string `json:"table_name"`
	Capacity  int    `json:"capacity"`
}

// CreateTable -> adds a new table to the floor.
func (tc *TableController) CreateTable(c *gin.Context) {
	var body struct {
		Data *tablePayload `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Data == nil {
		utils.RespondError(c, http.StatusBadRequest, errMissingData)
		return
	}

	table := models.Table{
		TableName: body.Data.TableName,
		Capacity:  body.Data.Capacity,
	}

	if err := validators.ValidateTable(&table); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableCreate(table)

	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableName, table.Capacity)
	utils.RespondData(c, http.StatusCreated, table)
}

// GetAllTables -> every table, ordered by name.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_name").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondData(c, http.StatusOK, tables)
}

// GetTableByID -> detail of one table.
func (tc *TableController) GetTableByID(c *gin.Context) {
	id := c.Param("table_id")

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Table %s cannot be found.", id))
		return
	}
	utils.RespondData(c, http.StatusOK, table)
}

// SeatReservation -> seats a booked reservation at a free table. The
// reservation status change and the table link are written in a single
// transaction so a crash cannot leave one without the other.
func (tc *TableController) SeatReservation(c *gin.Context) {
	id := c.Param("table_id")

	var body struct {
		Data *struct {
			ReservationID uint `json:"reservation_id"`
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
	if body.Data.ReservationID == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("A 'reservation_id' property is required."))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Table %s cannot be found.", id))
		return
	}

	var reservation models.Reservation
	if err := tc.DB.First(&reservation, body.Data.ReservationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound,
			fmt.Errorf("Reservation %d cannot be found.", body.Data.ReservationID))
		return
	}

	// The guards run as conditional updates inside one transaction, so two
	// concurrent seatings cannot both pass a check and then both commit.
	tx := tc.DB.Begin()

	claim := tx.Model(&models.Reservation{}).
		Where("id = ? AND status <> ?", reservation.ID, models.StatusSeated).
		Update("status", models.StatusSeated)
	if claim.Error != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, claim.Error)
		return
	}
	if claim.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("Reservation %d is already seated", reservation.ID))
		return
	}

	if table.Capacity < reservation.People {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("Table %s has only capacity for %d not %d people",
				table.TableName, table.Capacity, reservation.People))
		return
	}

	link := tx.Model(&models.Table{}).
		Where("id = ? AND reservation_id IS NULL", table.ID).
		Update("reservation_id", reservation.ID)
	if link.Error != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, link.Error)
		return
	}
	if link.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("Table %s is occupied", table.TableName))
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	reservation.Status = models.StatusSeated
	table.ReservationID = &reservation.ID

	events.BroadcastTableUpdate(table)
	events.BroadcastReservationUpdate(reservation)
	events.BroadcastDashboardUpdate(tc.getDashboardStats())

	utils.InfoLogger.Printf("Reservation %d seated at table %s", reservation.ID, table.TableName)
	utils.RespondData(c, http.StatusOK, table)
}

// FinishTable -> finishes the seated reservation and vacates the table,
// again as a single transaction.
func (tc *TableController) FinishTable(c *gin.Context) {
	id := c.Param("table_id")

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Table %s cannot be found.", id))
		return
	}

	if !table.Occupied() {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("Table %s is not occupied", table.TableName))
		return
	}

	var reservation models.Reservation
	if err := tc.DB.First(&reservation, *table.ReservationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound,
			fmt.Errorf("Reservation %d cannot be found.", *table.ReservationID))
		return
	}

	// Unlinking only succeeds if the table is still held by this reservation,
	// so a concurrent finish or delete cannot double-release it.
	tx := tc.DB.Begin()

	unlink := tx.Model(&models.Table{}).
		Where("id = ? AND reservation_id = ?", table.ID, reservation.ID).
		Update("reservation_id", nil)
	if unlink.Error != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, unlink.Error)
		return
	}
	if unlink.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("Table %s is not occupied", table.TableName))
		return
	}

	if err := tx.Model(&models.Reservation{}).
		Where("id = ?", reservation.ID).
		Update("status", models.StatusFinished).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	reservation.Status = models.StatusFinished
	table.ReservationID = nil

	events.BroadcastTableUpdate(table)
	events.BroadcastReservationUpdate(reservation)
	events.BroadcastDashboardUpdate(tc.getDashboardStats())

	utils.InfoLogger.Printf("Table %s vacated, reservation %d finished", table.TableName, reservation.ID)
	utils.RespondData(c, http.StatusOK, table)
}

// DeleteTable -> removes a table; occupied tables cannot be removed.
func (tc *TableController) DeleteTable(c *gin.Context) {
	id := c.Param("table_id")

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Table %s cannot be found.", id))
		return
	}

	if table.Occupied() {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("Table %s is occupied", table.TableName))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableDelete(table)
	events.BroadcastDashboardUpdate(tc.getDashboardStats())

	utils.InfoLogger.Printf("Table %s deleted", table.TableName)
	c.Status(http.StatusNoContent)
}

// getDashboardStats -> table occupancy counts for the dashboard feed.
func (tc *TableController) getDashboardStats() map[string]interface{} {
	var freeCount, occupiedCount int64

	tc.DB.Model(&models.Table{}).Where("reservation_id IS NULL").Count(&freeCount)
	tc.DB.Model(&models.Table{}).Where("reservation_id IS NOT NULL").Count(&occupiedCount)

	return map[string]interface{}{
		"free":     freeCount,
		"occupied": occupiedCount,
		"total":    freeCount + occupiedCount,
	}
}
