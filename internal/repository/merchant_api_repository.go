package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hainweb/merchant-console/config"
	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/hainweb/merchant-console/internal/dto"
	"github.com/hainweb/merchant-console/internal/productform"
	pkgdto "github.com/hainweb/merchant-console/pkg/dto"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/hainweb/merchant-console/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

type RemoteResponse struct {
	StatusCode int
	Body       []byte
}

type MerchantAPIRepositoryImpl struct {
	client          *httpclient.Client
	cb              *gobreaker.CircuitBreaker[RemoteResponse]
	baseURL         string
	analyticsLogURL string
}

func CreateMerchantAPIRepository(client *httpclient.Client, cb *gobreaker.CircuitBreaker[RemoteResponse], conf config.MerchantAPIConfig) MerchantAPIRepository {
	return &MerchantAPIRepositoryImpl{
		client:          client,
		cb:              cb,
		baseURL:         strings.TrimRight(conf.BaseURL, "/"),
		analyticsLogURL: conf.AnalyticsLogURL,
	}
}

// send runs one request through the circuit breaker. Transport errors and
// 5xx answers count as breaker failures.
func (r *MerchantAPIRepositoryImpl) send(ctx context.Context, req httpclient.HttpRequest) ([]byte, error) {
	path := req.URL
	req.URL = r.baseURL + req.URL

	resp, err := r.cb.Execute(func() (RemoteResponse, error) {
		status, body, err := r.client.SendRequest(ctx, req)
		if err != nil {
			return RemoteResponse{}, err
		}
		if status >= http.StatusInternalServerError {
			return RemoteResponse{}, fmt.Errorf("merchant api returned status %d", status)
		}
		return RemoteResponse{StatusCode: status, Body: body}, nil
	})
	if err != nil {
		log.Error().Err(err).Str("component", "MerchantAPI").Str("method", req.Method).Str("path", path).Msg("")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s %s: %w", req.Method, path, errs.ErrServiceUnavailable)
		}
		return nil, fmt.Errorf("%s %s: %w", req.Method, path, errs.ErrBadGateway)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errs.ErrNotLoggedIn
	case resp.StatusCode == http.StatusNotFound:
		return nil, errs.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		// the merchant API reports failures in the body for most 4xx
		if len(resp.Body) > 0 && json.Valid(resp.Body) {
			return resp.Body, nil
		}
		return nil, fmt.Errorf("%s %s returned status %d: %w", req.Method, path, resp.StatusCode, errs.ErrBadGateway)
	}

	return resp.Body, nil
}

func (r *MerchantAPIRepositoryImpl) sendJSON(ctx context.Context, req httpclient.HttpRequest, out interface{}) error {
	body, err := r.send(ctx, req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.Error().Err(err).Str("component", "MerchantAPI").Str("path", req.URL).Msg("")
		return fmt.Errorf("decoding %s response: %w", req.URL, errs.ErrBadGateway)
	}
	return nil
}

func jsonRequest(method, path string, jar http.CookieJar, payload interface{}) (httpclient.HttpRequest, error) {
	req := httpclient.HttpRequest{
		URL:    path,
		Method: method,
		Jar:    jar,
		Headers: map[string]string{
			"Accept": "application/json",
		},
	}

	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return req, fmt.Errorf("error marshalling request: %w", err)
		}
		req.Body = body
		req.Headers["Content-Type"] = "application/json"
	}

	return req, nil
}

func (r *MerchantAPIRepositoryImpl) GetAdmin(ctx context.Context, jar http.CookieJar) (resp dto.AdminStatusResponse, err error) {
	req, err := jsonRequest(http.MethodGet, "/get-admin", jar, nil)
	if err != nil {
		return
	}

	err = r.sendJSON(ctx, req, &resp)
	if errors.Is(err, errs.ErrNotLoggedIn) {
		return dto.AdminStatusResponse{}, nil
	}
	return
}

func (r *MerchantAPIRepositoryImpl) Login(ctx context.Context, jar http.CookieJar, payload dto.MerchantLoginRequest) (resp dto.MerchantLoginResponse, err error) {
	req, err := jsonRequest(http.MethodPost, "/login", jar, payload)
	if err != nil {
		return
	}

	err = r.sendJSON(ctx, req, &resp)
	return
}

func (r *MerchantAPIRepositoryImpl) Logout(ctx context.Context, jar http.CookieJar) error {
	req, err := jsonRequest(http.MethodGet, "/logout", jar, nil)
	if err != nil {
		return err
	}

	_, err = r.send(ctx, req)
	if errors.Is(err, errs.ErrNotLoggedIn) {
		return nil
	}
	return err
}

func (r *MerchantAPIRepositoryImpl) MarkIntroSeen(ctx context.Context, jar http.CookieJar) (resp dto.StatusResponse, err error) {
	req, err := jsonRequest(http.MethodPost, "/mark-intro-seen", jar, struct{}{})
	if err != nil {
		return
	}

	err = r.sendJSON(ctx, req, &resp)
	return
}

func (r *MerchantAPIRepositoryImpl) SendOTP(ctx context.Context, jar http.CookieJar, payload dto.SendOTPRequest) (resp dto.StatusResponse, err error) {
	req, err := jsonRequest(http.MethodPost, "/send-otp", jar, payload)
	if err != nil {
		return
	}

	err = r.sendJSON(ctx, req, &resp)
	return
}

func (r *MerchantAPIRepositoryImpl) VerifyMerchant(ctx context.Context, jar http.CookieJar, payload dto.VerifyMerchantRequest) (resp dto.StatusResponse, err error) {
	req, err := jsonRequest(http.MethodPost, "/verify-merchant", jar, payload)
	if err != nil {
		return
	}

	err = r.sendJSON(ctx, req, &resp)
	return
}

func (r *MerchantAPIRepositoryImpl) GetProductSnapshot(ctx context.Context, jar http.CookieJar, id string) (snapshot domain.ProductSnapshot, err error) {
	req, err := jsonRequest(http.MethodGet, "/edit-product/"+url.PathEscape(id), jar, nil)
	if err != nil {
		return
	}

	var resp dto.EditProductResponse
	if err = r.sendJSON(ctx, req, &resp); err != nil {
		return
	}

	if resp.Product == nil {
		return snapshot, errs.ErrNotFound
	}

	snapshot = *resp.Product
	if snapshot.ID == "" {
		snapshot.ID = id
	}
	return snapshot, nil
}

func multipartRequest(path string, jar http.CookieJar, payload *productform.Payload) httpclient.HttpRequest {
	return httpclient.HttpRequest{
		URL:    path,
		Method: http.MethodPost,
		Body:   payload.Body,
		Jar:    jar,
		Headers: map[string]string{
			"Accept":       "application/json",
			"Content-Type": payload.ContentType,
		},
	}
}

func (r *MerchantAPIRepositoryImpl) AddProduct(ctx context.Context, jar http.CookieJar, payload *productform.Payload) (resp dto.StatusResponse, err error) {
	err = r.sendJSON(ctx, multipartRequest("/add-product", jar, payload), &resp)
	return
}

func (r *MerchantAPIRepositoryImpl) UpdateProduct(ctx context.Context, jar http.CookieJar, id string, payload *productform.Payload) (resp dto.StatusResponse, err error) {
	err = r.sendJSON(ctx, multipartRequest("/edit-product/"+url.PathEscape(id), jar, payload), &resp)
	return
}

func (r *MerchantAPIRepositoryImpl) GetProducts(ctx context.Context, jar http.CookieJar, filter pkgdto.Filter) (products []domain.ProductSummary, err error) {
	req, err := jsonRequest(http.MethodGet, "/get-products", jar, nil)
	if err != nil {
		return
	}
	req.Query = filter.Values()

	var resp dto.ProductsResponse
	if err = r.sendJSON(ctx, req, &resp); err != nil {
		return
	}
	return resp.Products, nil
}

func (r *MerchantAPIRepositoryImpl) GetOrders(ctx context.Context, jar http.CookieJar, filter pkgdto.Filter) (orders []domain.Order, err error) {
	req, err := jsonRequest(http.MethodGet, "/get-orders", jar, nil)
	if err != nil {
		return
	}
	req.Query = filter.Values()

	var resp dto.OrdersResponse
	if err = r.sendJSON(ctx, req, &resp); err != nil {
		return
	}
	return resp.Orders, nil
}

func (r *MerchantAPIRepositoryImpl) GetDashboardMetrics(ctx context.Context, jar http.CookieJar) (metrics domain.DashboardMetrics, err error) {
	req, err := jsonRequest(http.MethodGet, "/get-dashboard-data", jar, nil)
	if err != nil {
		return
	}

	err = r.sendJSON(ctx, req, &metrics)
	return
}

func (r *MerchantAPIRepositoryImpl) GetRevenueTrend(ctx context.Context, jar http.CookieJar, year int, dateRange string) (points []domain.TrendPoint, err error) {
	req, err := jsonRequest(http.MethodGet, "/get-revenue-trend", jar, nil)
	if err != nil {
		return
	}
	req.Query = url.Values{
		"year":      []string{strconv.Itoa(year)},
		"dateRange": []string{dateRange},
	}

	err = r.sendJSON(ctx, req, &points)
	return
}

func (r *MerchantAPIRepositoryImpl) GetShippingStatus(ctx context.Context, jar http.CookieJar, start, end string) (resp dto.ShippingStatusResponse, err error) {
	req, err := jsonRequest(http.MethodGet, "/get-shipping-status", jar, nil)
	if err != nil {
		return
	}
	if start != "" || end != "" {
		req.Query = url.Values{
			"start": []string{start},
			"end":   []string{end},
		}
	}

	err = r.sendJSON(ctx, req, &resp)
	return
}

// LogVisit records a console visit with the analytics collector. It does
// not go through the merchant API breaker.
func (r *MerchantAPIRepositoryImpl) LogVisit(ctx context.Context) error {
	if r.analyticsLogURL == "" {
		return nil
	}

	body, err := json.Marshal(dto.AnalyticsLogRequest{Platform: "merchant"})
	if err != nil {
		return err
	}

	status, _, err := r.client.SendRequest(ctx, httpclient.HttpRequest{
		URL:     r.analyticsLogURL,
		Method:  http.MethodPost,
		Body:    body,
		Headers: map[string]string{"Content-Type": "application/json"},
	})
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("analytics log returned status %d", status)
	}
	return nil
}
