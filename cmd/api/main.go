package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/internal/config"
	"github.com/appdotbuilder/tele-vid-downloader/internal/downloader"
	"github.com/appdotbuilder/tele-vid-downloader/internal/extractor"
	"github.com/appdotbuilder/tele-vid-downloader/internal/handler"
	"github.com/appdotbuilder/tele-vid-downloader/internal/middleware"
	"github.com/appdotbuilder/tele-vid-downloader/internal/scheduler"
	"github.com/appdotbuilder/tele-vid-downloader/internal/service"
	"github.com/appdotbuilder/tele-vid-downloader/internal/telegram"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/cache"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not fatal
	_ = godotenv.Load(".env")

	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	if err := config.Load(configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	if err := database.Init(cfg.Database); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	metadataCache, err := cache.New(cache.Config{
		Enabled:  cfg.Redis.Enabled,
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		TTL:      time.Duration(cfg.Redis.MetadataTTLHours) * time.Hour,
	})
	if err != nil {
		log.Printf("Failed to initialize Redis cache: %v, continuing without cache", err)
	}
	if metadataCache != nil {
		defer metadataCache.Close()
	}

	// External collaborators
	extractorClient := extractor.NewClient(
		cfg.Extractor.BaseURL,
		cfg.Extractor.APIKey,
		time.Duration(cfg.Extractor.Timeout)*time.Second,
	)
	telegramClient := telegram.NewClient(
		cfg.Telegram.APIEndpoint,
		time.Duration(cfg.Telegram.Timeout)*time.Second,
	)
	dl := downloader.New(cfg.Downloader.Dir, time.Duration(cfg.Downloader.Timeout)*time.Second)

	// Services
	linkService := service.NewLinkService()
	botService := service.NewBotService(telegramClient)
	pipelineService := service.NewPipelineService(
		linkService,
		botService,
		extractorClient,
		dl,
		telegramClient,
		metadataCache,
		cfg.Telegram.ChatID,
		cfg.Downloader.MaxFileSize,
	)

	// Pending-link sweep
	var sweep *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sweep = scheduler.NewScheduler(pipelineService, cfg.Scheduler.IntervalSeconds, cfg.Scheduler.BatchSize)
		if err := sweep.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sweep.Stop()
	}

	// Handlers
	linkHandler := handler.NewLinkHandler(linkService, pipelineService)
	botHandler := handler.NewBotHandler(botService)
	userHandler := handler.NewUserHandler()
	healthHandler := handler.NewHealthHandler()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	api := r.Group("/api/v1")
	{
		api.GET("/health", healthHandler.Health)

		api.POST("/users", userHandler.Create)
		api.GET("/users/:telegram_id", userHandler.GetByTelegramID)

		api.POST("/links", linkHandler.Create)
		api.GET("/links", linkHandler.List)
		api.GET("/links/:id", linkHandler.Get)
		api.PATCH("/links/:id", linkHandler.Update)
		api.POST("/links/:id/process", linkHandler.Process)

		api.POST("/bots", botHandler.Register)
		api.GET("/bots", botHandler.List)
		api.POST("/bots/:id/platforms", botHandler.Assign)
		api.DELETE("/bots/:id/platforms/:platform", botHandler.Unassign)
		api.GET("/bot-platforms", botHandler.Assignments)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on port %d\n", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
