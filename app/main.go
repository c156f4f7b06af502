package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/lohith8088/UrbanFix-Backend/config"
	"github.com/lohith8088/UrbanFix-Backend/delivery"
	"github.com/lohith8088/UrbanFix-Backend/domain"
	"github.com/lohith8088/UrbanFix-Backend/middleware"
	"github.com/lohith8088/UrbanFix-Backend/repository"
	"github.com/lohith8088/UrbanFix-Backend/service"
	"github.com/lohith8088/UrbanFix-Backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	utils.InitLogger(cfg.AppEnv)

	db, err := config.BootDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx := context.Background()
	minioClient, err := config.InitMinio(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to object storage")
	}

	reportAI, err := utils.NewGeminiReportAI(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init gemini client")
	}

	// Shared capabilities
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := utils.NewBcryptHasher(0)
	mailer := utils.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.From)
	sms := utils.NewTwilioSMS(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From)
	geocoder := utils.NewNominatimGeocoder(cfg.Geocode.BaseURL, cfg.Geocode.UserAgent)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	reportRepo := repository.NewReportRepository(db)
	authorityRepo := repository.NewAuthorityRepository(db)
	mediaStore := repository.NewMinioMediaStore(minioClient, cfg.Minio.Bucket, cfg.Minio.PublicURL)

	// Services
	authService := service.NewAuthService(userRepo, otpRepo, mailer, hasher, jwtManager, service.OTPConfig{
		Length:      cfg.OTP.Length,
		TTL:         cfg.OTP.TTL,
		MaxAttempts: cfg.OTP.MaxAttempts,
	})
	userService := service.NewUserService(userRepo, hasher)
	reportService := service.NewReportService(reportRepo, userRepo, geocoder, mailer, sms)
	adminService := service.NewAdminService(reportRepo, userRepo, authorityRepo, reportAI, mailer)

	startOTPReclamation(otpRepo)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	app := gin.New()
	config.InitMiddleware(app, cfg)

	otpLimiter := middleware.NewRateLimiter(redisClient).Middleware(middleware.RateLimiterConfig{
		MaxRequests: cfg.Limits.OTPRequests,
		Window:      cfg.Limits.OTPWindow,
		KeyPrefix:   "ratelimit:otp",
	})

	delivery.NewAuthHandler(app, authService, userService, jwtManager, otpLimiter)
	delivery.NewReportHandler(app, reportService, jwtManager)
	delivery.NewAdminHandler(app, adminService, userService, jwtManager)
	delivery.NewUploadHandler(app, mediaStore, jwtManager)

	srv := &http.Server{
		Addr:           ":" + cfg.AppPort,
		Handler:        app,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited gracefully")
}

// startOTPReclamation sweeps expired OTP records hourly. Verification
// checks expiry itself; this only keeps the table small.
func startOTPReclamation(otpRepo domain.OTPRepository) {
	ticker := time.NewTicker(time.Hour)
	go func() {
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			deleted, err := otpRepo.DeleteExpired(ctx)
			cancel()
			if err != nil {
				log.Warn().Err(err).Msg("otp reclamation failed")
				continue
			}
			if deleted > 0 {
				log.Info().Int64("deleted", deleted).Msg("reclaimed expired otp records")
			}
		}
	}()
}
