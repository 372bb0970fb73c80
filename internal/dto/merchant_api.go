package dto

import "github.com/hainweb/merchant-console/internal/domain"

// Shapes exchanged with the merchant API.

type StatusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type AdminStatusResponse struct {
	Status     bool          `json:"status"`
	IsApproved bool          `json:"isApproved"`
	Admin      *domain.Admin `json:"admin"`
	Message    string        `json:"message"`
}

type MerchantLoginRequest struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

type MerchantLoginResponse struct {
	Status  bool          `json:"status"`
	Admin   *domain.Admin `json:"admin"`
	Message string        `json:"message"`
}

type SendOTPRequest struct {
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

type VerifyMerchantRequest struct {
	Email  string                     `json:"email"`
	Mobile string                     `json:"mobile"`
	OTP    string                     `json:"otp"`
	Data   domain.MerchantApplication `json:"data"`
}

type EditProductResponse struct {
	Product *domain.ProductSnapshot `json:"product"`
}

type ProductsResponse struct {
	Status   bool                    `json:"status"`
	Products []domain.ProductSummary `json:"products"`
}

type OrdersResponse struct {
	Status bool           `json:"status"`
	Orders []domain.Order `json:"orders"`
}

type ShippingStatusResponse struct {
	Data      []domain.ShippingStatusPoint `json:"data"`
	DateRange domain.DateRange             `json:"dateRange"`
}

type AnalyticsLogRequest struct {
	Platform string `json:"platform"`
}
