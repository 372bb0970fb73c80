package service

import (
	"context"
	"time"

	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/hainweb/merchant-console/internal/dto"
	"github.com/hainweb/merchant-console/internal/repository"
	"github.com/hainweb/merchant-console/internal/session"
	pkgdto "github.com/hainweb/merchant-console/pkg/dto"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/hainweb/merchant-console/pkg/utils"
	"github.com/shopspring/decimal"
)

type DashboardServiceImpl struct {
	merchantAPI repository.MerchantAPIRepository
	now         func() time.Time
}

func CreateDashboardService(merchantAPI repository.MerchantAPIRepository) DashboardService {
	return &DashboardServiceImpl{
		merchantAPI: merchantAPI,
		now:         time.Now,
	}
}

func (s *DashboardServiceImpl) GetOrders(ctx context.Context, sess *session.Session, filter pkgdto.Filter) (orders []domain.Order, err error) {
	return s.merchantAPI.GetOrders(ctx, sess.Jar(), filter)
}

func (s *DashboardServiceImpl) GetSummary(ctx context.Context, sess *session.Session) (resp dto.DashboardSummaryResponse, err error) {
	metrics, err := s.merchantAPI.GetDashboardMetrics(ctx, sess.Jar())
	if err != nil {
		return
	}

	resp = dto.DashboardSummaryResponse{
		Metrics: metrics,
		ProductStatus: []dto.ChartSlice{
			{Name: "In Stock", Value: float64(metrics.TotalInStock)},
			{Name: "Low Stock", Value: float64(metrics.TotalLowStock)},
			{Name: "Out of Stock", Value: float64(metrics.TotalOutOfStock)},
		},
		OrderBreakdown: []dto.ChartSlice{
			{Name: "Total Orders", Value: float64(metrics.TotalOrders)},
			{Name: "Canceled", Value: float64(metrics.CanceledOrders)},
			{Name: "Returned Products", Value: float64(metrics.ReturnedProducts)},
		},
		CategoryRevenue: make([]dto.ChartSlice, 0, len(metrics.CategoryStatus)),
		CategoryOrders:  make([]dto.ChartSlice, 0, len(metrics.CategoryStatus)),
	}

	for _, c := range metrics.CategoryStatus {
		resp.CategoryRevenue = append(resp.CategoryRevenue, dto.ChartSlice{Name: c.Category, Value: c.DeliveredRevenue})
		resp.CategoryOrders = append(resp.CategoryOrders, dto.ChartSlice{Name: c.Category, Value: float64(c.TotalOrderedProducts)})
	}

	return resp, nil
}

// GetRevenueTrend resolves the requested period and sums the returned
// points. A shift moves to the neighbouring year.
func (s *DashboardServiceImpl) GetRevenueTrend(ctx context.Context, sess *session.Session, req dto.RevenueTrendRequest) (resp dto.RevenueTrendResponse, err error) {
	now := s.now()

	var (
		period utils.TrendRange
		year   int
	)
	if req.Shift != "" {
		base := req.Year
		if base <= 0 {
			base = now.Year()
		}
		period, year, err = utils.ShiftYear(base, req.Shift)
	} else {
		period, year, err = utils.ResolveTrendPeriod(req.DateRange, req.Year, now)
	}
	if err != nil {
		return resp, errs.WithMessage(errs.ErrClient, err.Error())
	}

	points, err := s.merchantAPI.GetRevenueTrend(ctx, sess.Jar(), year, string(period))
	if err != nil {
		return
	}
	if points == nil {
		points = []domain.TrendPoint{}
	}

	total := decimal.Zero
	for _, p := range points {
		total = total.Add(decimal.NewFromFloat(p.Value))
	}

	return dto.RevenueTrendResponse{
		Year:      year,
		DateRange: string(period),
		Points:    points,
		Total:     total.InexactFloat64(),
	}, nil
}

func (s *DashboardServiceImpl) GetShippingStatus(ctx context.Context, sess *session.Session, req dto.ShippingStatusRequest) (resp dto.ShippingStatusResult, err error) {
	start, end := req.Start, req.End
	if start == "" || end == "" {
		start, end = utils.DefaultShippingWindow(s.now())
	}

	if _, _, err = utils.ParseWindow(start, end); err != nil {
		return resp, errs.WithMessage(errs.ErrClient, err.Error())
	}

	if req.Direction != "" {
		start, end, err = utils.ShiftWeek(start, end, req.Direction)
		if err != nil {
			return resp, errs.WithMessage(errs.ErrClient, err.Error())
		}
	}

	remote, err := s.merchantAPI.GetShippingStatus(ctx, sess.Jar(), start, end)
	if err != nil {
		return
	}

	resp = dto.ShippingStatusResult{
		Data:      remote.Data,
		DateRange: remote.DateRange,
	}
	if resp.Data == nil {
		resp.Data = []domain.ShippingStatusPoint{}
	}
	if resp.DateRange.Start == "" || resp.DateRange.End == "" {
		resp.DateRange = domain.DateRange{Start: start, End: end}
	}
	return resp, nil
}
