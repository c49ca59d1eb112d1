package main

import (
	"net/http"
	"os"

	_ "trendradar/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"trendradar/internal/auth"
	"trendradar/internal/cache"
	"trendradar/internal/config"
	"trendradar/internal/db"
	"trendradar/internal/handler"
	"trendradar/internal/model"
	"trendradar/internal/repository"
	"trendradar/internal/router"
	"trendradar/internal/service"
	"trendradar/pkg/logger"
)

// @title Trends API
// @version 1.0
// @description REST backend exposing trend records, organizational taxonomy and user accounts with JWT authentication and role-based data visibility.
// @host localhost:5001
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log := logger.New()
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Trend{},
			&model.SubCategory{},
			&model.Category{},
			&model.Department{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn().Err(err).Msg("drop table (may not exist)")
			}
		}
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Department{},
		&model.Category{},
		&model.SubCategory{},
		&model.Trend{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	trendRepo := repository.NewTrendRepository(gormDB)
	taxonomyRepo := repository.NewTaxonomyRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.JWTExpirationHours)
	authMW := auth.NewMiddleware(jwtService, userRepo)

	// Services
	authService := service.NewAuthService(userRepo, jwtService)
	trendService := service.NewTrendService(trendRepo)
	userService := service.NewUserService(userRepo)
	taxonomyService := service.NewTaxonomyService(taxonomyRepo, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	trendHandler := handler.NewTrendHandler(trendService)
	userHandler := handler.NewUserHandler(userService)
	taxonomyHandler := handler.NewTaxonomyHandler(taxonomyService)

	router.Register(
		e,
		cfg,
		log,
		authMW,
		authHandler,
		trendHandler,
		userHandler,
		taxonomyHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
