package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kartikay-0111/Placify/internal/app"
	"github.com/Kartikay-0111/Placify/internal/config"
	"github.com/Kartikay-0111/Placify/internal/database"
	apphttp "github.com/Kartikay-0111/Placify/internal/http"
	"github.com/Kartikay-0111/Placify/internal/http/handlers"
	httpmw "github.com/Kartikay-0111/Placify/internal/http/middleware"
	"github.com/Kartikay-0111/Placify/internal/metrics"
	"github.com/Kartikay-0111/Placify/internal/observability"
	"github.com/Kartikay-0111/Placify/internal/repository/postgres"
	"github.com/Kartikay-0111/Placify/internal/security"
	"github.com/Kartikay-0111/Placify/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()

	if cfg.MigrateOnStart {
		if err := database.RunMigrations(cfg.PostgresDSN); err != nil {
			log.Fatal(err)
		}
	}
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	refreshRepo := postgres.NewRefreshTokenRepository(db)
	collegeRepo := postgres.NewCollegeRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)
	studentRepo := postgres.NewStudentProfileRepository(db)
	companyRepo := postgres.NewCompanyProfileRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	interviewRepo := postgres.NewInterviewRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	collector := metrics.NewCollector()

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		limiter = httpmw.NewRedisLimiter(redis.NewClient(opts))
		logger.Info("using redis rate limiter")
	}

	var store storage.Store
	if cfg.StorageEndpoint != "" {
		minioStore, err := storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  cfg.StorageEndpoint,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			Bucket:    cfg.StorageBucket,
			UseSSL:    cfg.StorageUseSSL,
			PublicURL: cfg.StoragePublicURL,
		})
		if err != nil {
			log.Fatal(err)
		}
		store = minioStore
	}

	authService := app.NewAuthService(userRepo, refreshRepo, collegeRepo, analyticsRepo, jwtProvider, logger, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	profileService := app.NewProfileService(studentRepo, companyRepo, collegeRepo, analyticsRepo)
	jobService := app.NewJobService(jobRepo, companyRepo, studentRepo, analyticsRepo, logger)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, studentRepo, analyticsRepo, collector)
	interviewService := app.NewInterviewService(interviewRepo, applicationRepo, jobRepo, analyticsRepo, collector)
	dashboardService := app.NewDashboardService(studentRepo, jobRepo, applicationRepo, interviewService)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService, limiter),
		CollegeHandler:     handlers.NewCollegeHandler(collegeRepo),
		ProfileHandler:     handlers.NewProfileHandler(profileService, store),
		JobHandler:         handlers.NewJobHandler(jobService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService, limiter),
		InterviewHandler:   handlers.NewInterviewHandler(interviewService),
		AdminHandler:       handlers.NewAdminHandler(profileService, jobService),
		DashboardHandler:   handlers.NewDashboardHandler(dashboardService),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwtProvider),
		Metrics:            collector,
		RequestTimeout:     cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
