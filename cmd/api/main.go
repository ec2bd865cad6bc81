package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	_ "github.com/eduportal/course-portal-api/api/swagger"
	"github.com/eduportal/course-portal-api/internal/handler"
	"github.com/eduportal/course-portal-api/internal/middleware"
	"github.com/eduportal/course-portal-api/internal/repository"
	"github.com/eduportal/course-portal-api/internal/service"
	"github.com/eduportal/course-portal-api/pkg/cache"
	"github.com/eduportal/course-portal-api/pkg/config"
	"github.com/eduportal/course-portal-api/pkg/database"
	"github.com/eduportal/course-portal-api/pkg/export"
	"github.com/eduportal/course-portal-api/pkg/logger"
	corsmiddleware "github.com/eduportal/course-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eduportal/course-portal-api/pkg/middleware/requestid"
	"github.com/eduportal/course-portal-api/pkg/storage"
)

// @title Course Portal API
// @version 1.0.0
// @description Online course portal: enrollment, progress tracking and content delivery
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx := context.Background()
	mongoClient, db, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		logr.Fatal("failed to connect to mongo", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx) //nolint:errcheck

	uploadStore, err := storage.NewUploadStore(cfg.Uploads.Dir)
	if err != nil {
		logr.Fatal("failed to init upload store", zap.Error(err))
	}

	var cacheRepo *repository.CacheRepository
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authSvc := service.NewAuthService(studentRepo, adminRepo, validate, logr)
	accountSvc := service.NewAccountService(studentRepo, adminRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(studentRepo, courseRepo, logr)
	progressSvc := service.NewProgressService(studentRepo, courseRepo, logr)
	courseSvc := service.NewCourseService(courseRepo, uploadStore, cfg.APIPrefix, validate, logr)
	deliverySvc := service.NewDeliveryService(courseRepo, uploadStore, logr)
	certificateSvc := service.NewCertificateService(studentRepo, courseRepo, export.NewCertificatePDF(), logr)
	messageSvc := service.NewMessageService(messageRepo, studentRepo, validate, logr)
	reviewSvc := service.NewReviewService(reviewRepo, validate, logr)
	metricsSvc := service.NewMetricsService()

	reportSvc := service.NewReportService(studentRepo, courseRepo, nil, cfg.Dashboard.CacheTTL, logr)
	if cacheRepo != nil {
		reportSvc = service.NewReportService(studentRepo, courseRepo, cacheRepo, cfg.Dashboard.CacheTTL, logr)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(accountSvc, enrollmentSvc, progressSvc, certificateSvc, messageSvc)
	courseHandler := handler.NewCourseHandler(courseSvc, progressSvc, deliverySvc, metricsSvc)
	adminHandler := handler.NewAdminHandler(accountSvc, courseSvc, certificateSvc, reportSvc, messageSvc, reviewSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), cfg.Mongo.ConnectTimeout)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/student/register", authHandler.RegisterStudent)
	api.POST("/student/login", authHandler.LoginStudent)
	api.POST("/admin/register", authHandler.RegisterAdmin)
	api.POST("/admin/login", authHandler.LoginAdmin)

	student := api.Group("/", middleware.StudentAuth(authSvc))
	{
		student.GET("/courses", courseHandler.Catalog)
		student.POST("/reviews", reviewHandler.Submit)

		student.GET("/student/profile", studentHandler.Profile)
		student.PUT("/student/profile", studentHandler.UpdateProfile)
		student.DELETE("/student/profile", studentHandler.DeleteProfile)
		student.GET("/student/dashboard-stats", studentHandler.DashboardStats)
		student.GET("/student/enrolled-courses", studentHandler.EnrolledCourses)
		student.GET("/student/progress", studentHandler.ProgressOverview)
		student.GET("/student/certificates", studentHandler.Certificates)
		student.GET("/student/certificates/:courseID/pdf", studentHandler.CertificatePDF)
		student.POST("/student/enroll/:courseID", studentHandler.Enroll)
		student.GET("/student/messages", studentHandler.Inbox)
		student.POST("/student/messages", studentHandler.SendMessage)

		student.GET("/student/course/:courseID", courseHandler.GetCourse)
		student.POST("/student/course/:courseID/mark-complete", courseHandler.MarkComplete)
		student.GET("/student/course/:courseID/download/:contentID", courseHandler.Download)
		student.GET("/student/course/:courseID/view/:contentID", courseHandler.View)
	}

	admin := api.Group("/", middleware.AdminAuth(authSvc))
	{
		admin.GET("/admin/profile", adminHandler.Profile)
		admin.PUT("/admin/profile", adminHandler.UpdateProfile)
		admin.DELETE("/admin/profile", adminHandler.DeleteProfile)
		admin.GET("/admin/dashboard-stats", adminHandler.DashboardStats)
		admin.GET("/admin/students", adminHandler.Students)
		admin.DELETE("/admin/students/:id", adminHandler.DeleteStudent)
		admin.POST("/admin/students/:id/allow-certificate", adminHandler.AllowCertificate)
		admin.GET("/admin/courses", adminHandler.Courses)
		admin.DELETE("/admin/courses/:id", adminHandler.DeleteCourse)
		admin.POST("/courses/no-file", adminHandler.CreateCourse)
		admin.POST("/admin/upload", adminHandler.UploadContent)
		admin.GET("/admin/messages", adminHandler.Inbox)
		admin.POST("/admin/messages", adminHandler.SendMessage)
		admin.GET("/admin/reviews", adminHandler.Reviews)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "uploads", uploadStore.BaseDir())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
