package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/bienestar-app/bienestar-api/internal/config"
	"github.com/bienestar-app/bienestar-api/internal/database"
	"github.com/bienestar-app/bienestar-api/internal/handler"
	"github.com/bienestar-app/bienestar-api/internal/middleware"
	"github.com/bienestar-app/bienestar-api/internal/models"
	"github.com/bienestar-app/bienestar-api/internal/repository"
	"github.com/bienestar-app/bienestar-api/internal/router"
	"github.com/bienestar-app/bienestar-api/internal/service"
	"github.com/bienestar-app/bienestar-api/pkg/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Career{}, &models.Announcement{}, &models.AuditEntry{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	issuer := token.NewIssuer(token.Config{
		Secret:   cfg.JWTSecret,
		Lifetime: cfg.JWTLifetime,
		Issuer:   cfg.AppName,
	})

	userRepo := repository.NewUserRepository(db)
	careerRepo := repository.NewCareerRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditService := service.NewAuditService(auditRepo, logger)
	authService := service.NewAuthService(userRepo, validate, issuer, logger)
	userService := service.NewUserService(userRepo, validate, logger)
	careerService := service.NewCareerService(careerRepo, validate, auditService, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, validate, auditService, redisClient, cfg.AnnouncementCacheTTL, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	careerHandler := handler.NewCareerHandler(careerService, logger)
	announcementHandler := handler.NewAnnouncementHandler(announcementService, logger)
	auditHandler := handler.NewAuditHandler(auditService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		CareerHandler:       careerHandler,
		AnnouncementHandler: announcementHandler,
		AuditHandler:        auditHandler,
		JWTMiddleware:       middleware.JWTProtected(issuer),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
