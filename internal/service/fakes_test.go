package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"sync"
	"testing"

	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/hainweb/merchant-console/internal/dto"
	"github.com/hainweb/merchant-console/internal/productform"
	pkgdto "github.com/hainweb/merchant-console/pkg/dto"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

// fakeMerchantAPI answers with canned responses and records what it saw.
type fakeMerchantAPI struct {
	mu sync.Mutex

	admin       dto.AdminStatusResponse
	adminErr    error
	login       dto.MerchantLoginResponse
	loginErr    error
	status      dto.StatusResponse
	statusErr   error
	snapshot    domain.ProductSnapshot
	snapshotErr error
	products    []domain.ProductSummary
	orders      []domain.Order
	metrics     domain.DashboardMetrics
	trend       []domain.TrendPoint
	shipping    dto.ShippingStatusResponse

	calls       []string
	payloads    []*productform.Payload
	trendQuery  [2]interface{}
	shipWindow  [2]string
	verifyData  dto.VerifyMerchantRequest
	visitLogged chan struct{}
}

func newFakeMerchantAPI() *fakeMerchantAPI {
	return &fakeMerchantAPI{
		status:      dto.StatusResponse{Status: true},
		visitLogged: make(chan struct{}, 1),
	}
}

func (f *fakeMerchantAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeMerchantAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeMerchantAPI) GetAdmin(ctx context.Context, jar http.CookieJar) (dto.AdminStatusResponse, error) {
	f.record("GetAdmin")
	return f.admin, f.adminErr
}

func (f *fakeMerchantAPI) Login(ctx context.Context, jar http.CookieJar, req dto.MerchantLoginRequest) (dto.MerchantLoginResponse, error) {
	f.record("Login")
	return f.login, f.loginErr
}

func (f *fakeMerchantAPI) Logout(ctx context.Context, jar http.CookieJar) error {
	f.record("Logout")
	return nil
}

func (f *fakeMerchantAPI) MarkIntroSeen(ctx context.Context, jar http.CookieJar) (dto.StatusResponse, error) {
	f.record("MarkIntroSeen")
	return f.status, f.statusErr
}

func (f *fakeMerchantAPI) SendOTP(ctx context.Context, jar http.CookieJar, req dto.SendOTPRequest) (dto.StatusResponse, error) {
	f.record("SendOTP")
	return f.status, f.statusErr
}

func (f *fakeMerchantAPI) VerifyMerchant(ctx context.Context, jar http.CookieJar, req dto.VerifyMerchantRequest) (dto.StatusResponse, error) {
	f.record("VerifyMerchant")
	f.mu.Lock()
	f.verifyData = req
	f.mu.Unlock()
	return f.status, f.statusErr
}

func (f *fakeMerchantAPI) GetProductSnapshot(ctx context.Context, jar http.CookieJar, id string) (domain.ProductSnapshot, error) {
	f.record("GetProductSnapshot")
	return f.snapshot, f.snapshotErr
}

func (f *fakeMerchantAPI) AddProduct(ctx context.Context, jar http.CookieJar, payload *productform.Payload) (dto.StatusResponse, error) {
	f.record("AddProduct")
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()
	return f.status, f.statusErr
}

func (f *fakeMerchantAPI) UpdateProduct(ctx context.Context, jar http.CookieJar, id string, payload *productform.Payload) (dto.StatusResponse, error) {
	f.record("UpdateProduct:" + id)
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	f.mu.Unlock()
	return f.status, f.statusErr
}

func (f *fakeMerchantAPI) GetProducts(ctx context.Context, jar http.CookieJar, filter pkgdto.Filter) ([]domain.ProductSummary, error) {
	f.record("GetProducts")
	return f.products, nil
}

func (f *fakeMerchantAPI) GetOrders(ctx context.Context, jar http.CookieJar, filter pkgdto.Filter) ([]domain.Order, error) {
	f.record("GetOrders")
	return f.orders, nil
}

func (f *fakeMerchantAPI) GetDashboardMetrics(ctx context.Context, jar http.CookieJar) (domain.DashboardMetrics, error) {
	f.record("GetDashboardMetrics")
	return f.metrics, nil
}

func (f *fakeMerchantAPI) GetRevenueTrend(ctx context.Context, jar http.CookieJar, year int, dateRange string) ([]domain.TrendPoint, error) {
	f.record("GetRevenueTrend")
	f.mu.Lock()
	f.trendQuery = [2]interface{}{year, dateRange}
	f.mu.Unlock()
	return f.trend, nil
}

func (f *fakeMerchantAPI) GetShippingStatus(ctx context.Context, jar http.CookieJar, start, end string) (dto.ShippingStatusResponse, error) {
	f.record("GetShippingStatus")
	f.mu.Lock()
	f.shipWindow = [2]string{start, end}
	f.mu.Unlock()
	return f.shipping, nil
}

func (f *fakeMerchantAPI) LogVisit(ctx context.Context) error {
	select {
	case f.visitLogged <- struct{}{}:
	default:
	}
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	failures int
	attempts int
	messages []kafka.Message
}

func (p *fakePublisher) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.attempts++
	if p.failures > 0 {
		p.failures--
		return context.DeadlineExceeded
	}
	p.messages = append(p.messages, msgs...)
	return nil
}

func pngFile(t testing.TB, name string, w, h int) productform.ImageFile {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return productform.ImageFile{Filename: name, ContentType: "image/png", Data: buf.Bytes()}
}

func ptr[T any](v T) *T {
	return &v
}
