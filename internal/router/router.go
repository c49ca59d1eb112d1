package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"trendradar/internal/auth"
	"trendradar/internal/config"
	"trendradar/internal/handler"
)

// Register wires routes and middleware. Everything under /api except login
// goes through the bearer-token chain; admin routes add the role gate.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	mw *auth.Middleware,
	authHandler *handler.AuthHandler,
	trendHandler *handler.TrendHandler,
	userHandler *handler.UserHandler,
	taxonomyHandler *handler.TaxonomyHandler,
) {
	e.Use(middleware.Recover())
	e.Use(requestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"message": "trends API is running",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)

	// Secured routes: token verification plus user liveness recheck
	secured := api.Group("", mw.Authenticate(), mw.LoadUser())

	secured.GET("/auth/verify", authHandler.Verify)

	// Trend routes; static paths registered before the :id routes
	secured.GET("/trends", trendHandler.List)
	secured.GET("/trends/stats", trendHandler.Stats)
	secured.GET("/trends/:id", trendHandler.Get)
	secured.PUT("/trends/bulk-approve", trendHandler.BulkApprove, auth.RequireAdmin())
	secured.DELETE("/trends/bulk-disapprove", trendHandler.BulkDisapprove, auth.RequireAdmin())
	secured.PUT("/trends/:id/approve", trendHandler.Approve, auth.RequireAdmin())
	secured.DELETE("/trends/:id/disapprove", trendHandler.Disapprove, auth.RequireAdmin())

	// Reference lookups
	secured.GET("/departments", taxonomyHandler.ListDepartments)
	secured.GET("/departments/:id", taxonomyHandler.GetDepartment)
	secured.GET("/categories", taxonomyHandler.ListCategories)
	secured.GET("/categories/:id", taxonomyHandler.GetCategory)
	secured.GET("/subcategories", taxonomyHandler.ListSubCategories)
	secured.GET("/subcategories/:id", taxonomyHandler.GetSubCategory)

	// User management, admin only
	users := secured.Group("/users", auth.RequireAdmin())
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
}

// requestLogger emits one structured log line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			log.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Msg("request")
			return err
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
