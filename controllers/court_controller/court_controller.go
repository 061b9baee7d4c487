package court_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/store"
)

// CourtController serves the court and slot reference catalogs.
type CourtController struct {
	Store store.Store
}

// NewCourtController creates a new instance of CourtController.
func NewCourtController(s store.Store) *CourtController {
	return &CourtController{Store: s}
}

// ListCourts returns all active courts ordered by number.
func (cc *CourtController) ListCourts(c *gin.Context) {
	courts, err := cc.Store.GetActiveCourts(c.Request.Context())
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list courts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "SERVER_ERROR", "error": "Failed to fetch courts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courts": courts})
}

// ListTimeSlots returns the active slot catalog ordered by start time.
func (cc *CourtController) ListTimeSlots(c *gin.Context) {
	slots, err := cc.Store.GetActiveTimeSlots(c.Request.Context())
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list time slots: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "SERVER_ERROR", "error": "Failed to fetch time slots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"time_slots": slots})
}
