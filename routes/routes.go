package routes

import (
	"net/http"
	"time"

	"gobarber/handlers"
	"gobarber/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers the open authentication endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	open := r.Group("")
	open.Use(middleware.RateLimitMiddleware())
	{
		open.POST("/users", hb.RegisterUserHandler)
		open.POST("/sessions", hb.CreateSessionHandler)
	}
}

// RegisterAppointmentRoutes registers booking endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.CreateAppointmentHandler)
		api.GET("", hb.ListAppointmentsHandler)
		api.DELETE("/:id", hb.CancelAppointmentHandler)
	}
}

// RegisterProviderRoutes registers provider listing and availability.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/providers")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.ListProvidersHandler)
		api.GET("/:providerId/available", hb.ProviderAvailableHandler)
	}
}

// RegisterAccountRoutes registers authenticated profile management.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.PUT("/users", hb.UpdateUserHandler)
		api.PUT("/users/device", hb.RegisterDeviceHandler)
		api.POST("/files", hb.UploadFileHandler)
		api.GET("/schedule", hb.ScheduleHandler)
		api.GET("/notifications", hb.ListNotificationsHandler)
		api.PUT("/notifications/:id", hb.MarkNotificationReadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSessionRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterAccountRoutes(r, hb)
}
