package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sebiten/padel-app/config/db"
	"github.com/sebiten/padel-app/controllers/court_controller"
	middleware "github.com/sebiten/padel-app/middlewares"
	"github.com/sebiten/padel-app/store"
)

// RegisterCourtRoutes registers the public court catalog routes
func RegisterCourtRoutes(router *gin.Engine) {
	courtController := court_controller.NewCourtController(store.NewPostgres(db.DB))

	public := router.Group("/courts")
	{
		public.GET("",
			middleware.NewRateLimiter("30-1m", "list-courts"),
			courtController.ListCourts)

		public.GET("/slots",
			middleware.NewRateLimiter("30-1m", "list-slots"),
			courtController.ListTimeSlots)
	}
}
