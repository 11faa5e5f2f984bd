package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/paceline/paceline-backend/internal/services"
)

type SimulationHandler struct {
	simulationService services.SimulationService
}

func NewSimulationHandler(simulationService services.SimulationService) *SimulationHandler {
	return &SimulationHandler{simulationService: simulationService}
}

func (sh *SimulationHandler) CreateScenario(c *gin.Context) {
	var req services.CreateScenarioInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	scenario, err := sh.simulationService.CreateScenario(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenario": scenario})
}

func (sh *SimulationHandler) ListScenarios(c *gin.Context) {
	scenarios, err := sh.simulationService.ListScenarios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

func (sh *SimulationHandler) RunScenario(c *gin.Context) {
	scenarioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scenario id"})
		return
	}
	output, err := sh.simulationService.RunScenario(c.Request.Context(), scenarioID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, output)
}

func (sh *SimulationHandler) GetResults(c *gin.Context) {
	scenarioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scenario id"})
		return
	}
	results, err := sh.simulationService.GetResults(c.Request.Context(), scenarioID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (sh *SimulationHandler) DeleteScenario(c *gin.Context) {
	scenarioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scenario id"})
		return
	}
	if err := sh.simulationService.DeleteScenario(c.Request.Context(), scenarioID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "true"})
}
