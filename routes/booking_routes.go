package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sebiten/padel-app/config/db"
	"github.com/sebiten/padel-app/controllers/booking_controller"
	middleware "github.com/sebiten/padel-app/middlewares"
	"github.com/sebiten/padel-app/middlewares/auth"
	"github.com/sebiten/padel-app/store"
)

// RegisterBookingRoutes registers all booking-related routes
func RegisterBookingRoutes(router *gin.Engine) {
	bookingService := booking_controller.NewBookingService(store.NewPostgres(db.DB))

	// Protected routes - require authentication
	protected := router.Group("/bookings")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/availability",
			middleware.NewRateLimiter("30-1m", "availability"),
			bookingService.GetAvailability)

		protected.POST("",
			middleware.CombinedRateLimiter("create-booking", "5-1m", "20-10m"),
			bookingService.CreateBooking)

		protected.GET("/my",
			middleware.NewRateLimiter("20-1m", "my-bookings"),
			bookingService.GetMyBookings)

		protected.GET("/:booking_id",
			middleware.NewRateLimiter("15-30s", "get-booking"),
			bookingService.GetBookingDetails)

		protected.PATCH("/:booking_id/cancel",
			middleware.CombinedRateLimiter("cancel-booking", "3-1m", "10-10m"),
			bookingService.CancelBooking)
	}
}
