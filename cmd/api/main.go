package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/Dan9191/finance-advisor/internal/handler"
	"github.com/Dan9191/finance-advisor/internal/integrations/cbr"
	"github.com/Dan9191/finance-advisor/internal/middleware"
	"github.com/Dan9191/finance-advisor/internal/narrative"
	"github.com/Dan9191/finance-advisor/internal/service"
	"github.com/Dan9191/finance-advisor/internal/utils/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	narrator, err := narrative.New(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize narrative backend: %v", err)
	}
	logger.Infof("Narrative backend: %s", narrator.Name())

	// Reference key rate, refreshed in the background
	rates := cbr.NewRateCache(cbr.NewCBRClient(cfg, logger), logger)
	scheduler := cron.New()
	if _, err := rates.Schedule(scheduler, cfg.KeyRateSchedule); err != nil {
		logger.Fatalf("Failed to schedule key rate refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	go func() {
		if err := rates.Refresh(context.Background()); err != nil {
			logger.Warnf("Initial key rate refresh failed: %v", err)
		}
	}()

	var mailer service.ReportMailer
	if cfg.MailEnabled() {
		mailer = email.NewSender(cfg, logger)
	} else {
		logger.Info("SMTP not configured, email reports disabled")
	}

	// Initialize layers
	svc := service.NewService(logger, cfg, narrator, rates, mailer)
	h := handler.NewHandler(svc, logger)

	r := handler.NewRouter(h)
	root := middleware.CORS(cfg)(middleware.RequestLogger(logger)(middleware.Recoverer(logger)(r)))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      root,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Graceful shutdown failed: %v", err)
		}
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}
