package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jobpilot/internal/auth"
	"jobpilot/internal/config"
	"jobpilot/internal/database"
	"jobpilot/internal/handlers"
	"jobpilot/internal/services"
)

func main() {
	// 1. Environment + config
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from environment")
	}
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("failed to build logger:", err)
	}
	defer logger.Sync()

	// 2. Database
	db := database.Connect(cfg.DatabaseDSN, logger)

	// 3. Core services
	authService := auth.NewService(db, cfg.JWTSecret)
	appService := services.NewApplicationService(db)
	resumeService := services.NewResumeService(cfg.UploadDir)

	llmService, err := services.NewLLMService(cfg.OpenAIKey, cfg.OpenAIModel)
	if err != nil {
		logger.Fatal("failed to initialize LLM client", zap.Error(err))
	}
	mailService := services.NewMailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)

	outreachService := services.NewOutreachService(db, appService, resumeService,
		llmService, mailService, logger, cfg.FollowupGraceDays)

	// 4. Handlers + router
	r := handlers.NewRouter(
		authService,
		handlers.NewAuthHandler(authService),
		handlers.NewApplicationHandler(appService),
		handlers.NewOutreachHandler(outreachService),
		handlers.NewResumeHandler(resumeService),
	)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}
