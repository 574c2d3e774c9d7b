package routes

import (
	"time"

	"fieldline/handlers"
	"fieldline/middleware"
	"fieldline/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSchedulingRoutes registers availability and booking endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/scheduling")
	{
		api.POST("/availability", hb.GetAvailabilityHandler)
		api.POST("/multi-day", hb.BookMultiDayHandler)
		api.POST("/two-tech", hb.BookTwoTechHandler)
		api.POST("/emergency", hb.RouteEmergencyHandler)
	}

	booking := r.Group("/api/booking")
	{
		booking.POST("/confirm", hb.ConfirmSlotHandler)
	}
}

// RegisterDispatchRoutes registers technician matching endpoints.
func RegisterDispatchRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dispatch")
	{
		api.POST("/match", hb.MatchTechnicianHandler)
		api.POST("/notify", hb.NotifyAssignmentHandler)
	}
}

// SetupRouter builds the engine with shared middleware and all route groups.
func SetupRouter(hb *handlers.HandlerBundle) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthHandler)

	RegisterSchedulingRoutes(r, hb)
	RegisterDispatchRoutes(r, hb)
	return r
}
