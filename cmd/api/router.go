package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/udyam-portal/app-udyam/internal/config"
	"github.com/udyam-portal/app-udyam/internal/handlers"
	"github.com/udyam-portal/app-udyam/internal/logging"
	"github.com/udyam-portal/app-udyam/internal/middleware"
	"github.com/udyam-portal/app-udyam/internal/services"
)

// newVerificationService builds the service from configuration
func newVerificationService(cfg *config.Config) *services.VerificationService {
	opts := services.VerificationOptions{
		ExposePasscode: cfg.ExposeDebugPasscode,
	}
	if cfg.SimulatedDelayEnabled {
		opts.Delays = services.Delays{
			SendChallenge:      cfg.SendChallengeDelay,
			VerifyChallenge:    cfg.VerifyChallengeDelay,
			VerifyTaxID:        cfg.VerifyTaxIDDelay,
			SubmitRegistration: cfg.SubmitRegistrationDelay,
		}
	}
	return services.NewVerificationService(services.NewMockCredentialStore(), opts, logging.Logger)
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
	}

	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = cfg.AllowedOrigins
	return c
}

// newRouter wires middleware and routes
func newRouter(cfg *config.Config, service *services.VerificationService) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		middleware.AuditMiddleware(),
		cors.New(corsConfig(cfg)),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	verificationHandlers := handlers.NewVerificationHandlers(service, logging.Logger)
	healthHandlers := handlers.NewHealthHandlers(service, cfg.Version)

	v1 := router.Group("/v1")
	{
		v1.GET("/health", healthHandlers.HealthCheck)

		v1.POST("/send-challenge", verificationHandlers.SendChallenge)
		v1.POST("/verify-challenge", verificationHandlers.VerifyChallenge)
		v1.POST("/verify-tax-id", verificationHandlers.VerifyTaxID)
		v1.POST("/submit-registration", verificationHandlers.SubmitRegistration)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
