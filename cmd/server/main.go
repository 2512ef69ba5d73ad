package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campusboard/campusboard-api/api/swagger"
	"github.com/campusboard/campusboard-api/internal/handler"
	"github.com/campusboard/campusboard-api/internal/middleware"
	"github.com/campusboard/campusboard-api/internal/repository"
	"github.com/campusboard/campusboard-api/internal/service"
	"github.com/campusboard/campusboard-api/pkg/cache"
	"github.com/campusboard/campusboard-api/pkg/config"
	"github.com/campusboard/campusboard-api/pkg/database"
	"github.com/campusboard/campusboard-api/pkg/export"
	"github.com/campusboard/campusboard-api/pkg/logger"
	corsmiddleware "github.com/campusboard/campusboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campusboard/campusboard-api/pkg/middleware/requestid"
)

// @title CampusBoard API
// @version 1.0.0
// @description Campus community board: posts, class and lecture reviews, merged feed
// @BasePath /api
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
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.Database.MigrationsDir); err != nil {
		logr.Sugar().Fatalw("failed to run migrations", "error", err)
	}

	var cacheRepo *repository.CacheRepository
	if cfg.Feed.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, feed cache disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, cfg.Feed.CacheTTL, true, metricsSvc, logr)
	}

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	lectureRepo := repository.NewLectureRepository(db)
	classReviewRepo := repository.NewClassReviewRepository(db)
	lectureReviewRepo := repository.NewLectureReviewRepository(db)
	postRepo := repository.NewPostRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.SessionConfig{
		Secret:         cfg.Session.Secret,
		DefaultMaxAge:  cfg.Session.DefaultMaxAge,
		RememberMaxAge: cfg.Session.RememberMaxAge,
	})
	classSvc := service.NewClassService(classRepo, validate, logr)
	classReviewSvc := service.NewClassReviewService(classRepo, classReviewRepo, validate, logr)
	feedSvc := service.NewFeedService(postRepo, lectureReviewRepo, cacheSvc, logr)
	lectureReviewSvc := service.NewLectureReviewService(classRepo, lectureRepo, lectureReviewRepo, feedSvc, validate, logr)
	postSvc := service.NewPostService(postRepo, replyRepo, likeRepo, feedSvc, validate, logr)
	calendarSvc := service.NewCalendarService(userRepo, validate, logr)

	secureCookie := cfg.Env == config.EnvProduction
	authHandler := handler.NewAuthHandler(authSvc, cfg.Session.CookieName, secureCookie)
	classHandler := handler.NewClassHandler(classSvc)
	postHandler := handler.NewPostHandler(postSvc)
	reviewHandler := handler.NewReviewHandler(classReviewSvc, export.NewCSVExporter(), export.NewPDFExporter(), cfg.Export.Enabled)
	lectureReviewHandler := handler.NewLectureReviewHandler(lectureReviewSvc)
	feedHandler := handler.NewFeedHandler(feedSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireSession := middleware.Session(authSvc, cfg.Session.CookieName)
	optionalSession := middleware.OptionalSession(authSvc, cfg.Session.CookieName)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth", authHandler.Authenticate)
		api.GET("/auth/me", optionalSession, authHandler.Me)
		api.POST("/auth/logout", authHandler.Logout)

		api.GET("/classes", classHandler.List)
		api.POST("/classes", requireSession, classHandler.Create)
		api.DELETE("/classes/delete", requireSession, classHandler.Delete)

		api.GET("/posts", postHandler.List)
		api.POST("/posts", requireSession, postHandler.Create)
		api.DELETE("/posts/delete", requireSession, postHandler.Delete)
		api.POST("/posts/like", requireSession, postHandler.ToggleLike)
		api.GET("/posts/replies", postHandler.ListReplies)
		api.POST("/posts/replies", requireSession, postHandler.CreateReply)

		api.GET("/reviews", reviewHandler.List)
		api.POST("/reviews", requireSession, reviewHandler.Create)
		api.GET("/reviews/export", reviewHandler.Export)

		api.GET("/lecture-reviews", lectureReviewHandler.List)
		api.POST("/lecture-reviews", requireSession, lectureReviewHandler.Create)
		api.GET("/lecture-reviews/next-number", lectureReviewHandler.NextNumber)

		api.GET("/feed", feedHandler.Feed)

		api.GET("/user/calendar-settings", requireSession, calendarHandler.Get)
		api.POST("/user/calendar-settings", requireSession, calendarHandler.Save)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
