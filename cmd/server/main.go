package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rehmanpranto/TutorTrack/api/swagger"
	"github.com/rehmanpranto/TutorTrack/internal/handler"
	"github.com/rehmanpranto/TutorTrack/internal/middleware"
	"github.com/rehmanpranto/TutorTrack/internal/repository"
	"github.com/rehmanpranto/TutorTrack/internal/service"
	"github.com/rehmanpranto/TutorTrack/pkg/cache"
	"github.com/rehmanpranto/TutorTrack/pkg/config"
	"github.com/rehmanpranto/TutorTrack/pkg/database"
	"github.com/rehmanpranto/TutorTrack/pkg/export"
	"github.com/rehmanpranto/TutorTrack/pkg/logger"
	corsmiddleware "github.com/rehmanpranto/TutorTrack/pkg/middleware/cors"
	reqidmiddleware "github.com/rehmanpranto/TutorTrack/pkg/middleware/requestid"
)

// @title TutorTrack API
// @version 1.0.0
// @description Single-tenant tutoring attendance tracker
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	validate := validator.New()

	// Repositories.
	attendanceRepo := repository.NewAttendanceRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	userRepo := repository.NewUserRepository(db)
	schemaRepo := repository.NewSchemaRepository(db)

	// Services.
	resolver := service.NewStudentResolver(studentRepo, logr, cfg.Student.DefaultName, cfg.Student.DefaultEmail)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, resolver, validate, logr)
	reportSvc := service.NewReportService(attendanceRepo, studentRepo, resolver, logr)
	schemaSvc := service.NewSchemaService(schemaRepo, logr, cfg.Student.DefaultName, cfg.Student.DefaultEmail)
	googleStrategy := service.NewGoogleStrategy(cfg.Google)
	authSvc := service.NewAuthService(userRepo, redisClient, googleStrategy, validate, logr, service.SessionConfig{
		Secret: cfg.Session.Secret,
		Expiry: cfg.Session.Expiration,
	})
	metricsSvc := service.NewMetricsService()

	// Handlers.
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	reportHandler := handler.NewReportHandler(reportSvc, map[string]handler.ReportRenderer{
		"pdf":   export.NewPDFRenderer(),
		"excel": export.NewExcelRenderer(),
	})
	authHandler := handler.NewAuthHandler(authSvc)
	systemHandler := handler.NewSystemHandler(schemaSvc, cfg.Env)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", systemHandler.Health)
	r.GET("/metrics", metricsHandler.Expose)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		auth.GET("/providers", authHandler.Providers)
		auth.POST("/login", authHandler.Login)
		if googleStrategy != nil {
			auth.GET("/google/login", authHandler.GoogleLogin)
			auth.GET("/google/callback", authHandler.GoogleCallback)
		}

		protected := api.Group("")
		protected.Use(middleware.Session(authSvc))
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/session", authHandler.Session)
		protected.GET("/attendance", attendanceHandler.List)
		protected.POST("/attendance", attendanceHandler.Upsert)
		protected.PUT("/attendance", attendanceHandler.Update)
		protected.DELETE("/attendance", attendanceHandler.Delete)
		protected.GET("/report", reportHandler.Export)
		protected.GET("/init-db", systemHandler.InitDB)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "providers", authSvc.Providers())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
