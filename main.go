// File: bookflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookflow/config"
	"bookflow/cron"
	"bookflow/handlers"
	"bookflow/routes"
	"bookflow/services/backend"
	"bookflow/services/booking"
	"bookflow/services/client"
	"bookflow/services/otp"
	"bookflow/services/payment"
	"bookflow/services/prefs"
	"bookflow/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitOTPCache()
	utils.InitPrefsCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// services.
	backendSvc := backend.NewInMemoryService()
	otpProvider := otp.NewRedisProvider(utils.GetOTPCacheClient())
	prefsStore := prefs.NewStore(utils.GetPrefsCacheClient())

	registry := client.NewRegistry(client.Deps{
		Backend:     backendSvc,
		OTPProvider: otpProvider,
		PayCfg: payment.Config{
			Instance:   config.AppConfig.PayrexxInstance,
			AppBaseURL: config.AppConfig.AppBaseURL,
		},
		Timings: booking.Timings{
			ProcessingSeconds:     config.AppConfig.ProcessingSeconds,
			TrackerWindowSeconds:  config.AppConfig.TrackerWindowSeconds,
			TrackerConfirmSeconds: config.AppConfig.TrackerConfirmSeconds,
		},
		OTPCooldown: config.AppConfig.OTPCooldownSeconds,
		Logger:      logger,
	})

	handlerBundle := handlers.NewHandlerBundle(registry, prefsStore, backendSvc, logger)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background housekeeping.
	maintenance := cron.StartMaintenanceWorker(registry, logger)
	defer maintenance.Stop()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
