package middleware

import (
	"net/http"

	"github.com/hainweb/merchant-console/internal/repository"
	"github.com/hainweb/merchant-console/internal/session"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/hainweb/merchant-console/pkg/response"
	"github.com/hainweb/merchant-console/pkg/utils"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	TokenCookie = "console_token"

	sessionContextKey = "console_session"
)

// IsLoggedIn validates the console JWT from the Authorization header or the
// session cookie.
func IsLoggedIn(secret string) echo.MiddlewareFunc {
	return echomiddleware.JWTWithConfig(echomiddleware.JWTConfig{
		SigningKey:  []byte(secret),
		TokenLookup: "header:Authorization:Bearer ,cookie:" + TokenCookie,
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			errorResponse := map[string]interface{}{
				"status":  "error",
				"message": "Invalid or expired JWT",
				"errors":  nil,
			}
			return c.JSON(http.StatusUnauthorized, errorResponse)
		},
	})
}

// LoadSession resolves the session named by the token. It must run after
// IsLoggedIn.
func LoadSession(sessions repository.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := utils.ExtractTokenSession(c)
			if sessionID == "" {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			sess, err := sessions.Get(c.Request().Context(), sessionID)
			if err != nil {
				return response.WriteErrorResponse(c, err, nil)
			}

			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// RequireApproved only lets approved merchants through.
func RequireApproved(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := CurrentSession(c)
		if sess == nil {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}
		if err := sess.RequireApproved(); err != nil {
			return response.WriteErrorResponse(c, err, nil)
		}
		return next(c)
	}
}

func CurrentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionContextKey).(*session.Session)
	return sess
}

// Authenticated chains IsLoggedIn and LoadSession.
func Authenticated(secret string, sessions repository.SessionRepository) echo.MiddlewareFunc {
	isLoggedIn := IsLoggedIn(secret)
	loadSession := LoadSession(sessions)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return isLoggedIn(loadSession(next))
	}
}
