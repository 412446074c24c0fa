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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/udyam-portal/app-udyam/internal/config"
	"github.com/udyam-portal/app-udyam/internal/logging"
	"github.com/udyam-portal/app-udyam/internal/observability"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/udyam-portal/app-udyam/docs"
)

// @title           Udyam Registration API
// @version         1.0
// @description     Mock backend for the two-step business registration flow. Callers verify an identity number and phone number with a one-time passcode, then a tax ID with name and birth date, and finally submit the form to receive a registration number. All records are compiled-in fixtures; nothing is stored.

// @contact.name   API Support
// @contact.email  support@udyam-portal.example

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /v1

// @tag.name verification
// @tag.description Identity, passcode and tax ID verification

// @tag.name registration
// @tag.description Final registration submission

// @tag.name health
// @tag.description Health check operations

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logging.Sync()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := observability.InitTracer(ctx, cfg); err != nil {
		logging.Logger.Error("tracing unavailable", zap.Error(err))
	}

	docs.SwaggerInfo.Version = cfg.Version

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := newRouter(cfg, newVerificationService(cfg))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.Bool("debug_passcode", cfg.ExposeDebugPasscode),
			zap.Bool("simulated_delay", cfg.SimulatedDelayEnabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		// Graceful shutdown
		logging.Logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := observability.ShutdownTracer(flushCtx); shutdownErr != nil {
		logging.Logger.Warn("failed to flush traces", zap.Error(shutdownErr))
	}

	if err != nil {
		logging.Logger.Error("server stopped with error", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}

	logging.Logger.Info("server exited gracefully")
}
