package dto

import "github.com/hainweb/merchant-console/internal/domain"

type RevenueTrendRequest struct {
	Year      int    `query:"year"`
	DateRange string `query:"dateRange"`
	Shift     string `query:"shift"`
}

type RevenueTrendResponse struct {
	Year      int                 `json:"year"`
	DateRange string              `json:"date_range"`
	Points    []domain.TrendPoint `json:"points"`
	Total     float64             `json:"total"`
}

type ShippingStatusRequest struct {
	Start     string `query:"start"`
	End       string `query:"end"`
	Direction string `query:"direction"`
}

type ShippingStatusResult struct {
	Data      []domain.ShippingStatusPoint `json:"data"`
	DateRange domain.DateRange             `json:"date_range"`
}

type ChartSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type DashboardSummaryResponse struct {
	Metrics         domain.DashboardMetrics `json:"metrics"`
	ProductStatus   []ChartSlice            `json:"product_status"`
	OrderBreakdown  []ChartSlice            `json:"order_breakdown"`
	CategoryRevenue []ChartSlice            `json:"category_revenue"`
	CategoryOrders  []ChartSlice            `json:"category_orders"`
}
