package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paceline/paceline-backend/internal/services"
)

type CheckInHandler struct {
	checkInService services.CheckInService
}

func NewCheckInHandler(checkInService services.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

func (ch *CheckInHandler) Upsert(c *gin.Context) {
	var req services.UpsertCheckInInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	checkIn, err := ch.checkInService.Upsert(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"check_in": checkIn})
}

func (ch *CheckInHandler) GetRange(c *gin.Context) {
	from, okFrom := parseDateParam(c, "from")
	to, okTo := parseDateParam(c, "to")
	if !okFrom || !okTo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query params required (YYYY-MM-DD)"})
		return
	}
	checkIns, err := ch.checkInService.GetRange(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"check_ins": checkIns})
}

func (ch *CheckInHandler) UpdateVisibility(c *gin.Context) {
	var req struct {
		Date       time.Time `json:"date"`
		Visibility string    `json:"visibility"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := ch.checkInService.UpdateVisibility(c.Request.Context(), req.Date, req.Visibility); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}
