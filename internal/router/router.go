package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"taskhub/internal/auth"
	"taskhub/internal/config"
	"taskhub/internal/handler"
	"taskhub/internal/middleware"
	"taskhub/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	todoHandler *handler.TodoHandler,
	managerHandler *handler.ManagerHandler,
	userHandler *handler.UserHandler,
	auditRepo repository.AuditLogRepository,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes, rate limited per client IP
	authGroup := api.Group("/auth", echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(5),
			Burst:     10,
			ExpiresIn: 10 * time.Minute,
		}),
	}))
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/signin", authHandler.Signin)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), middleware.AuthContext())

	// Todo routes
	secured.POST("/todos", todoHandler.Create)
	secured.GET("/todos", todoHandler.List)
	secured.GET("/todos/:todoId", todoHandler.GetOne)

	// Manager routes
	secured.POST("/todos/:todoId/managers", managerHandler.Assign)
	secured.GET("/todos/:todoId/managers", managerHandler.List)
	secured.DELETE("/todos/:todoId/managers/:managerId", managerHandler.Unassign)

	// User routes
	secured.GET("/users/:userId", userHandler.GetUser)
	secured.PUT("/users/password", userHandler.ChangePassword)

	// Admin routes: role gate first, then request/response auditing
	admin := secured.Group("/admin", middleware.RequireAdmin(), middleware.AdminAudit(auditRepo))
	admin.PATCH("/users/:userId", userHandler.ChangeRole)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
