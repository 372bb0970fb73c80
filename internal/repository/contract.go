package repository

import (
	"context"
	"net/http"

	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/hainweb/merchant-console/internal/dto"
	"github.com/hainweb/merchant-console/internal/productform"
	"github.com/hainweb/merchant-console/internal/session"
	pkgdto "github.com/hainweb/merchant-console/pkg/dto"
)

// MerchantAPIRepository talks to the remote merchant API. The jar carries
// the merchant's remote session cookies.
type MerchantAPIRepository interface {
	GetAdmin(ctx context.Context, jar http.CookieJar) (resp dto.AdminStatusResponse, err error)
	Login(ctx context.Context, jar http.CookieJar, req dto.MerchantLoginRequest) (resp dto.MerchantLoginResponse, err error)
	Logout(ctx context.Context, jar http.CookieJar) (err error)
	MarkIntroSeen(ctx context.Context, jar http.CookieJar) (resp dto.StatusResponse, err error)
	SendOTP(ctx context.Context, jar http.CookieJar, req dto.SendOTPRequest) (resp dto.StatusResponse, err error)
	VerifyMerchant(ctx context.Context, jar http.CookieJar, req dto.VerifyMerchantRequest) (resp dto.StatusResponse, err error)
	GetProductSnapshot(ctx context.Context, jar http.CookieJar, id string) (snapshot domain.ProductSnapshot, err error)
	AddProduct(ctx context.Context, jar http.CookieJar, payload *productform.Payload) (resp dto.StatusResponse, err error)
	UpdateProduct(ctx context.Context, jar http.CookieJar, id string, payload *productform.Payload) (resp dto.StatusResponse, err error)
	GetProducts(ctx context.Context, jar http.CookieJar, filter pkgdto.Filter) (products []domain.ProductSummary, err error)
	GetOrders(ctx context.Context, jar http.CookieJar, filter pkgdto.Filter) (orders []domain.Order, err error)
	GetDashboardMetrics(ctx context.Context, jar http.CookieJar) (metrics domain.DashboardMetrics, err error)
	GetRevenueTrend(ctx context.Context, jar http.CookieJar, year int, dateRange string) (points []domain.TrendPoint, err error)
	GetShippingStatus(ctx context.Context, jar http.CookieJar, start, end string) (resp dto.ShippingStatusResponse, err error)
	LogVisit(ctx context.Context) (err error)
}

type SessionRepository interface {
	Save(ctx context.Context, s *session.Session) (err error)
	Get(ctx context.Context, id string) (s *session.Session, err error)
	Delete(ctx context.Context, id string) (err error)
	DeleteExpired(ctx context.Context) (remaining int)
}

type DraftRepository interface {
	Save(ctx context.Context, form *productform.Form) (err error)
	Get(ctx context.Context, owner, id string) (form *productform.Form, err error)
	Delete(ctx context.Context, owner, id string) (err error)
	DeleteByOwner(ctx context.Context, owner string) (removed int)
	DeleteExpired(ctx context.Context) (remaining int)
}
