package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"tonix_miniapp/internal/api"
	"tonix_miniapp/internal/middleware"
	"tonix_miniapp/internal/repository"
	"tonix_miniapp/internal/service"
	"tonix_miniapp/internal/worker"
	"tonix_miniapp/pkg/auth"
	"tonix_miniapp/pkg/logger"

	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	clock := service.NewGameClock()

	userService := service.NewUserService(repo)
	referralService := service.NewReferralService(repo,
		decimal.NewFromFloat(cfg.Farming.ReferralBonus),
		decimal.NewFromFloat(cfg.Farming.CommissionRate))

	commissionWorker := worker.NewCommissionWorker(referralService, cfg.Farming.CommissionQueueSize)
	commissionWorker.Start()
	defer commissionWorker.Stop()

	farmingService := service.NewFarmingService(repo, commissionWorker, cfg.Farming.CapHours,
		decimal.NewFromFloat(cfg.Farming.MinCollect))
	checkInService := service.NewCheckInService(repo, clock)
	taskService := service.NewTaskService(repo, clock)
	statsService := service.NewStatsService(repo, clock, cfg.Farming.CapHours)

	dailyReset := worker.NewDailyResetWorker(repo, clock)
	dailyReset.Start()
	defer dailyReset.Stop()

	telegramAuth := auth.NewTelegramAuth(cfg.TelegramAuth.TelegramBotToken, cfg.TelegramAuth.DebugMode)
	authorization := middleware.NewAuthorization(userService)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewUserRoutes(a, userService, telegramAuth, authorization)
	api.NewFarmingRoutes(a, farmingService, telegramAuth)
	api.NewCheckInRoutes(a, checkInService, telegramAuth)
	api.NewTaskRoutes(a, taskService, telegramAuth)
	api.NewReferralRoutes(a, referralService, telegramAuth)
	api.NewStatsRoutes(a, statsService, telegramAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
