package routes

import (
	"laundrypro-backend/config"
	"laundrypro-backend/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter(h *controllers.Handler, cfg config.ServerConfig, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.CORSOrigins))
	r.Use(config.RequestID())
	r.Use(config.PerformanceLogger(logger, cfg.SlowRequest))

	r.GET("/", h.Health)

	customers := r.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.GetCustomers)
		customers.GET("/:phone", h.GetCustomerByPhone)
	}

	r.POST("/ring-slots", h.CreateRingSlot)
	r.GET("/ring-slots", h.GetRingSlots)

	r.POST("/ring-appointments", h.BookAppointment)
	r.GET("/ring-appointments", h.GetAppointments)

	laundry := r.Group("/laundry")
	{
		laundry.POST("", h.CreateLaundry)
		laundry.GET("", h.GetLaundry)
		laundry.GET("/with-customer", h.GetLaundryWithCustomer)
		laundry.PUT("/:id", h.UpdateLaundry)
	}

	return r
}

// corsMiddleware allows every origin unless a list is configured.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", config.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", config.RequestIDHeader},
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
