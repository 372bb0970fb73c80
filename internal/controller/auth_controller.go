package controller

import (
	"net/http"

	"github.com/hainweb/merchant-console/internal/dto"
	"github.com/hainweb/merchant-console/internal/middleware"
	"github.com/hainweb/merchant-console/internal/service"
	"github.com/hainweb/merchant-console/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	service service.AuthService
}

func CreateAuthController(e *echo.Group, service service.AuthService, isLoggedIn echo.MiddlewareFunc) {
	c := AuthController{
		service: service,
	}

	e.POST("/login", c.Login)
	e.GET("/admin", c.CheckSession, isLoggedIn)
	e.POST("/logout", c.Logout, isLoggedIn)
	e.POST("/intro/seen", c.MarkIntroSeen, isLoggedIn, middleware.RequireApproved)

	e.POST("/signup", c.StartSignup)
	e.PUT("/signup/business", c.SubmitSignupBusiness, isLoggedIn)
	e.POST("/signup/otp", c.SubmitSignupContact, isLoggedIn)
	e.POST("/signup/verify", c.VerifySignup, isLoggedIn)
	e.POST("/signup/back", c.SignupBack, isLoggedIn)
	e.GET("/application", c.GetApplication, isLoggedIn)
}

func setSessionCookie(e echo.Context, token string) {
	e.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(e echo.Context) {
	e.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *AuthController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
	}

	resp, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	setSessionCookie(e, resp.Token)
	return response.WriteSuccessResponse(e, "Logged in", resp)
}

func (c *AuthController) CheckSession(e echo.Context) error {
	view, err := c.service.CheckSession(e.Request().Context(), middleware.CurrentSession(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", view)
}

func (c *AuthController) Logout(e echo.Context) error {
	err := c.service.Logout(e.Request().Context(), middleware.CurrentSession(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	clearSessionCookie(e)
	return response.WriteSuccessResponse(e, "Logged out", nil)
}

func (c *AuthController) MarkIntroSeen(e echo.Context) error {
	view, err := c.service.MarkIntroSeen(e.Request().Context(), middleware.CurrentSession(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", view)
}

func (c *AuthController) StartSignup(e echo.Context) error {
	payload := dto.SignupBusinessRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "StartSignup").Msg("")
	}

	resp, err := c.service.StartSignup(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	setSessionCookie(e, resp.Token)
	return response.WriteSuccessResponse(e, "", resp)
}

func (c *AuthController) SubmitSignupBusiness(e echo.Context) error {
	payload := dto.SignupBusinessRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "SubmitSignupBusiness").Msg("")
	}

	view, err := c.service.SubmitSignupBusiness(e.Request().Context(), middleware.CurrentSession(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", view)
}

func (c *AuthController) SubmitSignupContact(e echo.Context) error {
	payload := dto.SignupContactRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "SubmitSignupContact").Msg("")
	}

	view, err := c.service.SubmitSignupContact(e.Request().Context(), middleware.CurrentSession(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "OTP sent", view)
}

func (c *AuthController) VerifySignup(e echo.Context) error {
	payload := dto.SignupVerifyRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "VerifySignup").Msg("")
	}

	view, err := c.service.VerifySignup(e.Request().Context(), middleware.CurrentSession(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Application submitted", view)
}

func (c *AuthController) SignupBack(e echo.Context) error {
	view, err := c.service.SignupBack(e.Request().Context(), middleware.CurrentSession(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", view)
}

func (c *AuthController) GetApplication(e echo.Context) error {
	view, err := c.service.GetApplication(e.Request().Context(), middleware.CurrentSession(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", view)
}
