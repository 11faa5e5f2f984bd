package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paceline/paceline-backend/internal/services"
)

type PlanHandler struct {
	planService services.PlanService
}

func NewPlanHandler(planService services.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func (ph *PlanHandler) CheckWeek(c *gin.Context) {
	weekStart, ok := parseDateParam(c, "week_start")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_start query param required (YYYY-MM-DD)"})
		return
	}
	result, err := ph.planService.CheckWeek(c.Request.Context(), weekStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"risk_score":        result.RiskScore,
		"warnings":          result.Warnings,
		"planned_load":      result.PlannedLoad,
		"ramp_rate_percent": result.RampRatePercent,
	})
}

func (ph *PlanHandler) ApplyDeload(c *gin.Context) {
	var req struct {
		WeekStart time.Time `json:"week_start"`
		Reduction float64   `json:"reduction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	workouts, err := ph.planService.ApplyDeload(c.Request.Context(), req.WeekStart, req.Reduction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}

func (ph *PlanHandler) ApplyRecoveryMicrocycle(c *gin.Context) {
	var req struct {
		WeekStart  time.Time `json:"week_start"`
		Discipline string    `json:"discipline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	workouts, err := ph.planService.ApplyRecoveryMicrocycle(c.Request.Context(), req.WeekStart, req.Discipline)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}
