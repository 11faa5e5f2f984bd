package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/paceline/paceline-backend/internal/handlers"
	"github.com/paceline/paceline-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	WorkoutHandler    *handlers.WorkoutHandler
	CheckInHandler    *handlers.CheckInHandler
	MetricsHandler    *handlers.MetricsHandler
	SimulationHandler *handlers.SimulationHandler
	PlanHandler       *handlers.PlanHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.PATCH("/user/identity-mode", cfg.UserHandler.UpdateIdentityMode)
	// Workouts
	protected.POST("/workouts", cfg.WorkoutHandler.Create)
	protected.GET("/workouts", cfg.WorkoutHandler.GetRange)
	protected.POST("/workouts/:id/complete", cfg.WorkoutHandler.MarkCompleted)
	protected.DELETE("/workouts/:id", cfg.WorkoutHandler.Delete)
	// Check-ins
	protected.POST("/checkins", cfg.CheckInHandler.Upsert)
	protected.GET("/checkins", cfg.CheckInHandler.GetRange)
	protected.PATCH("/checkins/visibility", cfg.CheckInHandler.UpdateVisibility)
	// Metrics
	protected.POST("/metrics/recompute", cfg.MetricsHandler.Recompute)
	protected.GET("/metrics", cfg.MetricsHandler.GetRange)
	protected.GET("/metrics/latest", cfg.MetricsHandler.GetLatest)
	// Simulation
	protected.POST("/scenarios", cfg.SimulationHandler.CreateScenario)
	protected.GET("/scenarios", cfg.SimulationHandler.ListScenarios)
	protected.POST("/scenarios/:id/run", cfg.SimulationHandler.RunScenario)
	protected.GET("/scenarios/:id/results", cfg.SimulationHandler.GetResults)
	protected.DELETE("/scenarios/:id", cfg.SimulationHandler.DeleteScenario)
	// Plan guardrails
	protected.GET("/plan/check", cfg.PlanHandler.CheckWeek)
	protected.POST("/plan/deload", cfg.PlanHandler.ApplyDeload)
	protected.POST("/plan/recovery-microcycle", cfg.PlanHandler.ApplyRecoveryMicrocycle)

	return router
}
