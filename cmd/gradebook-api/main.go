package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/gradebook-api/api/swagger"
	"github.com/noah-isme/gradebook-api/internal/handler"
	"github.com/noah-isme/gradebook-api/internal/middleware"
	"github.com/noah-isme/gradebook-api/internal/models"
	"github.com/noah-isme/gradebook-api/internal/repository"
	"github.com/noah-isme/gradebook-api/internal/service"
	"github.com/noah-isme/gradebook-api/pkg/cache"
	"github.com/noah-isme/gradebook-api/pkg/config"
	"github.com/noah-isme/gradebook-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/gradebook-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/gradebook-api/pkg/middleware/requestid"
)

// @title Gradebook API
// @version 1.0.0
// @description Student gradebook with weighted assignments, GPA, and CSV reports
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, summary cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Summary.CacheTTL, logr, cacheRepo != nil)

	store := repository.NewGradebookStore(cfg.Store.Path, logr)
	gradebookSvc := service.NewGradebookService(store, cacheSvc, metricsSvc, nil, logr)
	exportSvc := service.NewExportService(gradebookSvc, nil, logr)
	authSvc := service.NewAuthService(cfg.Roles, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(gradebookSvc)
	assignmentHandler := handler.NewAssignmentHandler(gradebookSvc)
	gradeHandler := handler.NewGradeHandler(gradebookSvc)
	summaryHandler := handler.NewSummaryHandler(gradebookSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "store": store.Path()})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.Role(authSvc))

	api.POST("/role/:role", authHandler.SwitchRole)

	read := middleware.RequireRoles(models.RoleTeacher, models.RoleViewer)
	write := middleware.RequireTeacher()

	api.GET("/students", read, studentHandler.List)
	api.GET("/students/:id", read, studentHandler.Get)
	api.POST("/students", write, middleware.Audit(logr, "create", "student"), studentHandler.Create)
	api.DELETE("/students/:id", write, middleware.Audit(logr, "delete", "student"), studentHandler.Delete)

	api.GET("/assignments", read, assignmentHandler.List)
	api.GET("/assignments/:id", read, assignmentHandler.Get)
	api.POST("/assignments", write, middleware.Audit(logr, "create", "assignment"), assignmentHandler.Create)
	api.DELETE("/assignments/:id", write, middleware.Audit(logr, "delete", "assignment"), assignmentHandler.Delete)

	api.GET("/grades", read, gradeHandler.List)
	api.POST("/grades", write, middleware.Audit(logr, "record", "grade"), gradeHandler.Record)

	api.GET("/students/:id/average", read, summaryHandler.WeightedAverage)
	api.GET("/students/:id/gpa", read, summaryHandler.GPA)
	api.GET("/summary", read, summaryHandler.Class)
	api.GET("/students/:id/export.csv", read, exportHandler.StudentCSV)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", store.Path())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
