package router

import (
	"github.com/gin-gonic/gin"
	"github.com/restobook/reservation-app/controllers"
	"github.com/restobook/reservation-app/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Global middleware must be attached before routes are registered;
	// gin snapshots each handler chain at registration time.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	userCtrl := controllers.NewUserController(db)
	reservationCtrl := controllers.NewReservationController(db)
	tableCtrl := controllers.NewTableController(db)
	adminCtrl := controllers.NewAdminController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter for login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// RESERVATIONS
	r.GET("/reservations", reservationCtrl.ListReservations)
	r.POST("/reservations", reservationCtrl.CreateReservation)
	r.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
	r.PUT("/reservations/:reservation_id", reservationCtrl.UpdateReservation)
	r.PUT("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus)

	// TABLES
	r.GET("/tables", tableCtrl.GetAllTables)
	r.POST("/tables", tableCtrl.CreateTable)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.PUT("/tables/:table_id/seat", tableCtrl.SeatReservation)
	r.DELETE("/tables/:table_id/seat", tableCtrl.FinishTable)
	r.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// Dashboard WebSocket feed (token via query parameter)
	ws := r.Group("/events")
	ws.Use(middlewares.AuthMiddleware())
	ws.GET("/ws", controllers.EventsHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/dashboard", adminCtrl.GetDashboard)

	return r
}
