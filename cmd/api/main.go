package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-agency-backend/config"
	_ "go-agency-backend/docs" // Important for Swagger
	v1 "go-agency-backend/internal/delivery/http/v1"
	"go-agency-backend/internal/usecase"
	"go-agency-backend/pkg/email"
	"go-agency-backend/pkg/logger"
	"go-agency-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// @title           Agency Website Intake API
// @version         1.0
// @description     Form submission endpoints for the agency marketing site.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.Environment)
	logger.Log.Info("Starting agency intake API", "port", cfg.Port, "mail_provider", cfg.MailProvider)
	audit := security.InitIntakeLogger("agency-intake", cfg.Environment)
	defer audit.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Setup Mail Provider
	sender := newSender(cfg)

	// 4. Setup UseCases
	intakeUC := usecase.NewIntakeUsecase(sender, audit, usecase.IntakeConfig{
		From: cfg.MailFrom,
		To:   cfg.ContactEmailTo,
	}, usecase.ContactVariant(), usecase.PrototypeRequestVariant())
	healthUC := usecase.NewHealthUsecase(cfg.MailProvider, sender)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		IntakeUC: intakeUC,
		HealthUC: healthUC,
		Audit:    audit,
		Config:   cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func newSender(cfg *config.Config) email.Sender {
	if cfg.MailProvider == config.MailProviderSMTP {
		s := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		if !s.IsConfigured() {
			logger.Log.Warn("SMTP credentials missing - submissions will fail until configured")
		}
		return s
	}

	s := email.NewResendSender(cfg.ResendAPIKey, cfg.ResendAPIURL, time.Duration(cfg.MailTimeoutSeconds)*time.Second)
	if !s.IsConfigured() {
		logger.Log.Warn("RESEND_API_KEY missing - submissions will fail until configured")
	}
	return s
}
