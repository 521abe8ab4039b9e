// internal/app/router.go
package app

import (
	availabilityHandler "fleetrent-service/internal/handlers/availability"
	rentalHandler "fleetrent-service/internal/handlers/rental"
	unavailabilityHandler "fleetrent-service/internal/handlers/unavailability"
	vehicleHandler "fleetrent-service/internal/handlers/vehicle"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AvailabilityHandler   *availabilityHandler.AvailabilityHandler
	VehicleHandler        *vehicleHandler.VehicleHandler
	RentalHandler         *rentalHandler.RentalHandler
	UnavailabilityHandler *unavailabilityHandler.UnavailabilityHandler
	AuthMiddleware        gin.HandlerFunc
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Availability ====================
	availability := api.Group("/availability")
	{
		availability.GET("/calendar", h.AvailabilityHandler.GetCalendar)
		availability.GET("", h.AvailabilityHandler.GetAvailability)

		// Dashboard view with the progressive window
		dashboard := availability.Group("/dashboard")
		{
			dashboard.GET("", h.AvailabilityHandler.GetDashboard)
			dashboard.POST("/load-more", h.AvailabilityHandler.LoadMoreDays)
			dashboard.POST("/load-past", h.AvailabilityHandler.LoadPastDays)
			dashboard.POST("/preset/:preset", h.AvailabilityHandler.ApplyPreset)
			dashboard.PUT("/filters", h.AvailabilityHandler.SetFilters)
		}
	}

	// ==================== Vehicles ====================
	vehicles := api.Group("/vehicles")
	{
		vehicles.GET("", h.VehicleHandler.ListVehicles)
		vehicles.GET("/:id", h.VehicleHandler.GetVehicle)

		vehiclesAuth := vehicles.Group("")
		vehiclesAuth.Use(h.AuthMiddleware)
		{
			vehiclesAuth.POST("", h.VehicleHandler.CreateVehicle)
			vehiclesAuth.PUT("/:id", h.VehicleHandler.UpdateVehicle)
			vehiclesAuth.DELETE("/:id", h.VehicleHandler.DeleteVehicle)
		}
	}

	// ==================== Rentals ====================
	rentals := api.Group("/rentals")
	{
		rentals.GET("", h.RentalHandler.ListRentals)
		rentals.GET("/:id", h.RentalHandler.GetRental)

		rentalsAuth := rentals.Group("")
		rentalsAuth.Use(h.AuthMiddleware)
		{
			rentalsAuth.POST("", h.RentalHandler.CreateRental)
			rentalsAuth.PUT("/:id", h.RentalHandler.UpdateRental)
			rentalsAuth.DELETE("/:id", h.RentalHandler.DeleteRental)
		}
	}

	// ==================== Vehicle Unavailability ====================
	windows := api.Group("/vehicle-unavailability")
	{
		windows.GET("", h.UnavailabilityHandler.ListWindows)
		windows.GET("/:id", h.UnavailabilityHandler.GetWindow)

		windowsAuth := windows.Group("")
		windowsAuth.Use(h.AuthMiddleware)
		{
			windowsAuth.POST("", h.UnavailabilityHandler.CreateWindow)
			windowsAuth.PUT("/:id", h.UnavailabilityHandler.UpdateWindow)
			windowsAuth.DELETE("/:id", h.UnavailabilityHandler.DeleteWindow)
		}
	}
}
