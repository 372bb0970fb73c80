package controller

import (
	"github.com/hainweb/merchant-console/internal/dto"
	"github.com/hainweb/merchant-console/internal/middleware"
	"github.com/hainweb/merchant-console/internal/service"
	pkgdto "github.com/hainweb/merchant-console/pkg/dto"
	"github.com/hainweb/merchant-console/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type DashboardController struct {
	service service.DashboardService
}

func CreateDashboardController(e *echo.Group, service service.DashboardService, isLoggedIn echo.MiddlewareFunc) {
	c := DashboardController{
		service: service,
	}

	guard := []echo.MiddlewareFunc{isLoggedIn, middleware.RequireApproved}

	e.GET("/orders", c.GetOrders, guard...)
	e.GET("/dashboard", c.GetSummary, guard...)
	e.GET("/dashboard/revenue-trend", c.GetRevenueTrend, guard...)
	e.GET("/dashboard/shipping-status", c.GetShippingStatus, guard...)
}

func (c *DashboardController) GetOrders(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrders").Msg("")
	}

	orders, err := c.service.GetOrders(e.Request().Context(), middleware.CurrentSession(e), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved orders record", orders)
}

func (c *DashboardController) GetSummary(e echo.Context) error {
	resp, err := c.service.GetSummary(e.Request().Context(), middleware.CurrentSession(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *DashboardController) GetRevenueTrend(e echo.Context) error {
	payload := dto.RevenueTrendRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "GetRevenueTrend").Msg("")
	}

	resp, err := c.service.GetRevenueTrend(e.Request().Context(), middleware.CurrentSession(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *DashboardController) GetShippingStatus(e echo.Context) error {
	payload := dto.ShippingStatusRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "GetShippingStatus").Msg("")
	}

	resp, err := c.service.GetShippingStatus(e.Request().Context(), middleware.CurrentSession(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
