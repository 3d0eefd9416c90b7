package main

import (
	"log"
	"net/http"

	_ "taskhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskhub/internal/auth"
	"taskhub/internal/cache"
	"taskhub/internal/client"
	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/handler"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/router"
	"taskhub/internal/service"
)

// @title TaskHub API
// @version 1.0
// @description Task management API with weather-annotated todos, manager delegation, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Todo{},
		&model.Manager{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	todoRepo := repository.NewTodoRepository(gormDB)
	managerRepo := repository.NewManagerRepository(gormDB)
	auditRepo := repository.NewAuditLogRepository(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Initialize collaborators
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	weatherClient := client.NewWeatherClient(cfg.WeatherURL, cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, txManager, jwtService)
	todoService := service.NewTodoService(todoRepo, txManager, weatherClient)
	managerService := service.NewManagerService(todoRepo, managerRepo, txManager)
	userService := service.NewUserService(userRepo, txManager, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)
	managerHandler := handler.NewManagerHandler(managerService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		todoHandler,
		managerHandler,
		userHandler,
		auditRepo,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
