package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medhq/hospital-api/internal/config"
	"github.com/medhq/hospital-api/internal/handler"
	authHandler "github.com/medhq/hospital-api/internal/handler/auth"
	doctorHandler "github.com/medhq/hospital-api/internal/handler/doctor"
	patientHandler "github.com/medhq/hospital-api/internal/handler/patient"
	reportHandler "github.com/medhq/hospital-api/internal/handler/report"
	"github.com/medhq/hospital-api/internal/middleware"
	"github.com/medhq/hospital-api/internal/repository/postgres"
	"github.com/medhq/hospital-api/internal/router"
	authService "github.com/medhq/hospital-api/internal/service/auth"
	doctorService "github.com/medhq/hospital-api/internal/service/doctor"
	patientService "github.com/medhq/hospital-api/internal/service/patient"
	reportService "github.com/medhq/hospital-api/internal/service/report"
	"github.com/medhq/hospital-api/pkg/auth"
	"github.com/medhq/hospital-api/pkg/logger"
	"github.com/medhq/hospital-api/pkg/security"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = logger.New(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Log.Pretty,
	})

	if err := handler.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	doctorRepo := postgres.NewDoctorRepository(base)
	patientRepo := postgres.NewPatientRepository(base)

	// Services
	tokenSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	hasher := security.NewBcryptHasher(0)
	authSvc := authService.NewService(userRepo, hasher, tokenSvc)
	doctorSvc := doctorService.NewService(doctorRepo)
	patientSvc := patientService.NewService(patientRepo)
	reportSvc := reportService.NewService(patientRepo)

	// Handlers
	authH := authHandler.NewHandler(authSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc)
	patientH := patientHandler.NewHandler(patientSvc)
	reportH := reportHandler.NewHandler(reportSvc)
	healthH := handler.NewHealth(db)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(authMiddleware, authH, doctorH, patientH, reportH, healthH, router.Config{
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		MetricsPrefix:  "hospital_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
