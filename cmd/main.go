package main

import (
	"fmt"
	"os"
	"time"

	"github.com/paceline/paceline-backend/internal/clients/redis"
	"github.com/paceline/paceline-backend/internal/db"
	"github.com/paceline/paceline-backend/internal/engine"
	"github.com/paceline/paceline-backend/internal/handlers"
	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/middleware"
	"github.com/paceline/paceline-backend/internal/repos"
	"github.com/paceline/paceline-backend/internal/server"
	"github.com/paceline/paceline-backend/internal/services"
	"github.com/paceline/paceline-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Engine thresholds, overridable per deployment
	engineCfg := engine.DefaultConfig()
	engineCfg.RampStableMaxPercent = utils.GetEnvAsFloat("RAMP_STABLE_MAX_PERCENT", engineCfg.RampStableMaxPercent, log)
	engineCfg.RampSpikingMinPercent = utils.GetEnvAsFloat("RAMP_SPIKING_MIN_PERCENT", engineCfg.RampSpikingMinPercent, log)
	engineCfg.BurnoutModerateMin = utils.GetEnvAsFloat("BURNOUT_MODERATE_MIN", engineCfg.BurnoutModerateMin, log)
	engineCfg.BurnoutHighMin = utils.GetEnvAsFloat("BURNOUT_HIGH_MIN", engineCfg.BurnoutHighMin, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	workoutRepo := repos.NewWorkoutRepo(thePG, log)
	checkInRepo := repos.NewCheckInRepo(thePG, log)
	dailyMetricRepo := repos.NewDailyMetricRepo(thePG, log)
	scenarioRepo := repos.NewScenarioRepo(thePG, log)
	simulationResultRepo := repos.NewSimulationResultRepo(thePG, log)

	// Redis cache, optional
	metricsCache, err := redis.NewMetricsCache(log)
	if err != nil {
		log.Warn("Metrics cache unavailable, running without it", "error", err)
		metricsCache = nil
	}

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo)
	workoutService := services.NewWorkoutService(thePG, log, workoutRepo)
	checkInService := services.NewCheckInService(thePG, log, checkInRepo)
	metricsService := services.NewMetricsService(thePG, log, engineCfg, workoutRepo, checkInRepo, dailyMetricRepo, checkInService, metricsCache)
	simulationService := services.NewSimulationService(thePG, log, engineCfg, scenarioRepo, simulationResultRepo, dailyMetricRepo)
	planService := services.NewPlanService(thePG, log, engineCfg, workoutRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	checkInHandler := handlers.NewCheckInHandler(checkInService)
	metricsHandler := handlers.NewMetricsHandler(metricsService)
	simulationHandler := handlers.NewSimulationHandler(simulationService)
	planHandler := handlers.NewPlanHandler(planService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		UserHandler:       userHandler,
		WorkoutHandler:    workoutHandler,
		CheckInHandler:    checkInHandler,
		MetricsHandler:    metricsHandler,
		SimulationHandler: simulationHandler,
		PlanHandler:       planHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
