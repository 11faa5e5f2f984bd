package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paceline/paceline-backend/internal/services"
)

type MetricsHandler struct {
	metricsService services.MetricsService
}

func NewMetricsHandler(metricsService services.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

func (mh *MetricsHandler) Recompute(c *gin.Context) {
	var req struct {
		Date time.Time  `json:"date"`
		From *time.Time `json:"from,omitempty"`
		To   *time.Time `json:"to,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.From != nil && req.To != nil {
		if err := mh.metricsService.RecomputeRange(c.Request.Context(), *req.From, *req.To); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": "true"})
		return
	}

	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}
	metric, err := mh.metricsService.RecomputeForDate(c.Request.Context(), req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metric": metric})
}

func (mh *MetricsHandler) GetRange(c *gin.Context) {
	from, okFrom := parseDateParam(c, "from")
	to, okTo := parseDateParam(c, "to")
	if !okFrom || !okTo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query params required (YYYY-MM-DD)"})
		return
	}
	metrics, err := mh.metricsService.GetRange(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}

func (mh *MetricsHandler) GetLatest(c *gin.Context) {
	metric, err := mh.metricsService.GetLatest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if metric == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no metrics computed yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metric": metric})
}
