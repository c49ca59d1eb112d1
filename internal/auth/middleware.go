package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "trendradar/internal/errors"
	"trendradar/internal/model"
	"trendradar/internal/repository"
)

const (
	claimsContextKey = "claims"
	userContextKey   = "current_user"
)

// Middleware is the canonical verify-then-recheck path: Authenticate validates
// the bearer token, LoadUser re-fetches the user and rejects missing or
// inactive accounts. Every protected route goes through both.
type Middleware struct {
	jwt   *JWTService
	users repository.UserRepository
}

// NewMiddleware creates the auth middleware chain.
func NewMiddleware(jwt *JWTService, users repository.UserRepository) *Middleware {
	return &Middleware{jwt: jwt, users: users}
}

// Authenticate extracts and verifies the bearer token, storing the decoded
// claims in the request context.
func (m *Middleware) Authenticate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return m.jwt.Verify(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// Verify errors carry the taxonomy; anything else means no
			// usable bearer credential was presented.
			mapped := apperrors.ErrTokenMissing
			for _, known := range []error{
				apperrors.ErrTokenMalformed,
				apperrors.ErrTokenExpired,
				apperrors.ErrTokenInvalid,
			} {
				if errors.Is(err, known) {
					mapped = known
					break
				}
			}
			e := apperrors.MapErrorToHTTP(mapped)
			return c.JSON(e.StatusCode, e.ToErrorResponse())
		},
	})
}

// LoadUser re-fetches the token's subject and stores it in the context.
// Deactivating a user does not invalidate already-issued tokens, so the
// liveness recheck happens here on every request.
func (m *Middleware) LoadUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(claimsContextKey).(*Claims)
			if !ok {
				e := apperrors.MapErrorToHTTP(apperrors.ErrTokenInvalid)
				return c.JSON(e.StatusCode, e.ToErrorResponse())
			}

			user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				// the subject no longer exists; the token is useless
				e := apperrors.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUserNotFound.Error(), "USER_NOT_FOUND")
				return c.JSON(e.StatusCode, e.ToErrorResponse())
			}
			if !user.IsActive {
				e := apperrors.MapErrorToHTTP(apperrors.ErrAccountInactive)
				return c.JSON(e.StatusCode, e.ToErrorResponse())
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin callers with 403.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || user.Role != model.RoleAdmin {
				e := apperrors.MapErrorToHTTP(apperrors.ErrAdminRequired)
				return c.JSON(e.StatusCode, e.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user loaded by LoadUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
