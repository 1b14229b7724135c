package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusware/university-api/api/swagger"
	"github.com/campusware/university-api/internal/handler"
	"github.com/campusware/university-api/internal/middleware"
	"github.com/campusware/university-api/internal/repository"
	"github.com/campusware/university-api/internal/service"
	"github.com/campusware/university-api/pkg/cache"
	"github.com/campusware/university-api/pkg/config"
	"github.com/campusware/university-api/pkg/database"
	"github.com/campusware/university-api/pkg/logger"
	corsmiddleware "github.com/campusware/university-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusware/university-api/pkg/middleware/requestid"
	"github.com/campusware/university-api/pkg/storage"
)

// @title University Records API
// @version 1.0.0
// @description Academic records service for faculties, departments, majors, instructors, courses, students and enrollments
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.SalaryTTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	adminRepo := repository.NewAdminRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	majorRepo := repository.NewMajorRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	resolver := service.NewReferenceResolver(map[service.ReferenceKind]service.ExistenceChecker{
		service.RefAdministrator: adminRepo,
		service.RefFaculty:       facultyRepo,
		service.RefDepartment:    departmentRepo,
		service.RefMajor:         majorRepo,
		service.RefInstructor:    instructorRepo,
		service.RefCourse:        courseRepo,
		service.RefStudent:       studentRepo,
	})

	validate := service.NewValidator()

	exportStorage, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	authSvc := service.NewAuthService(adminRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	facultySvc := service.NewFacultyService(facultyRepo, resolver, validate, logr)
	departmentSvc := service.NewDepartmentService(departmentRepo, resolver, validate, logr)
	majorSvc := service.NewMajorService(majorRepo, resolver, validate, logr)
	instructorSvc := service.NewInstructorService(instructorRepo, resolver, cacheSvc, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, resolver, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, resolver, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, resolver, validate, logr)
	exportSvc := service.NewTranscriptExportService(enrollmentSvc, exportStorage, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
	}, logr, nil, nil)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			exportSvc.Cleanup()
		}
	}()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	h := handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Faculties:   handler.NewFacultyHandler(facultySvc),
		Departments: handler.NewDepartmentHandler(departmentSvc),
		Majors:      handler.NewMajorHandler(majorSvc),
		Instructors: handler.NewInstructorHandler(instructorSvc, cfg.Uploads.MaxImageSizeBytes, cfg.Uploads.MaxCVSizeBytes),
		Courses:     handler.NewCourseHandler(courseSvc),
		Students:    handler.NewStudentHandler(studentSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc),
		Exports:     handler.NewTranscriptExportHandler(exportSvc),
		Metrics:     handler.NewMetricsHandler(metricsSvc),
	}
	handler.RegisterRoutes(r, cfg.APIPrefix, h, authSvc)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
