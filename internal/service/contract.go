package service

import (
	"context"

	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/hainweb/merchant-console/internal/dto"
	"github.com/hainweb/merchant-console/internal/productform"
	"github.com/hainweb/merchant-console/internal/session"
	pkgdto "github.com/hainweb/merchant-console/pkg/dto"
	"github.com/segmentio/kafka-go"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (resp dto.SessionResponse, err error)
	CheckSession(ctx context.Context, sess *session.Session) (view session.View, err error)
	Logout(ctx context.Context, sess *session.Session) (err error)
	MarkIntroSeen(ctx context.Context, sess *session.Session) (view session.View, err error)
	StartSignup(ctx context.Context, req dto.SignupBusinessRequest) (resp dto.SessionResponse, err error)
	SubmitSignupBusiness(ctx context.Context, sess *session.Session, req dto.SignupBusinessRequest) (view session.View, err error)
	SubmitSignupContact(ctx context.Context, sess *session.Session, req dto.SignupContactRequest) (view session.View, err error)
	VerifySignup(ctx context.Context, sess *session.Session, req dto.SignupVerifyRequest) (view session.View, err error)
	SignupBack(ctx context.Context, sess *session.Session) (view session.View, err error)
	GetApplication(ctx context.Context, sess *session.Session) (view session.View, err error)
}

type ProductService interface {
	GetProducts(ctx context.Context, sess *session.Session, filter pkgdto.Filter) (products []domain.ProductSummary, err error)
	CreateDraft(ctx context.Context, sess *session.Session) (resp dto.DraftResponse, err error)
	CreateEditDraft(ctx context.Context, sess *session.Session, productID string) (resp dto.DraftResponse, err error)
	GetDraft(ctx context.Context, sess *session.Session, draftID string) (resp dto.DraftResponse, err error)
	DiscardDraft(ctx context.Context, sess *session.Session, draftID string) (err error)
	UpdateDraftFields(ctx context.Context, sess *session.Session, draftID string, req dto.DraftFieldsRequest) (resp dto.DraftResponse, err error)
	AddSpecification(ctx context.Context, sess *session.Session, draftID string, req dto.SpecificationRequest) (resp dto.DraftResponse, err error)
	RemoveSpecification(ctx context.Context, sess *session.Session, draftID string, index int) (resp dto.DraftResponse, err error)
	AddHighlight(ctx context.Context, sess *session.Session, draftID string, req dto.HighlightRequest) (resp dto.DraftResponse, err error)
	RemoveHighlight(ctx context.Context, sess *session.Session, draftID string, index int) (resp dto.DraftResponse, err error)
	AddCustomOption(ctx context.Context, sess *session.Session, draftID string, req dto.CustomOptionRequest) (resp dto.DraftResponse, err error)
	RemoveCustomOption(ctx context.Context, sess *session.Session, draftID string, index int) (resp dto.DraftResponse, err error)
	SetThumbnail(ctx context.Context, sess *session.Session, draftID string, file productform.ImageFile) (resp dto.DraftResponse, err error)
	RemoveThumbnail(ctx context.Context, sess *session.Session, draftID string) (resp dto.DraftResponse, err error)
	AddImages(ctx context.Context, sess *session.Session, draftID string, files []productform.ImageFile) (resp dto.DraftResponse, err error)
	RemoveImage(ctx context.Context, sess *session.Session, draftID string, index int) (resp dto.DraftResponse, err error)
	SubmitDraft(ctx context.Context, sess *session.Session, draftID string) (outcome productform.Outcome, err error)
	WaitForEvents()
}

type DashboardService interface {
	GetOrders(ctx context.Context, sess *session.Session, filter pkgdto.Filter) (orders []domain.Order, err error)
	GetSummary(ctx context.Context, sess *session.Session) (resp dto.DashboardSummaryResponse, err error)
	GetRevenueTrend(ctx context.Context, sess *session.Session, req dto.RevenueTrendRequest) (resp dto.RevenueTrendResponse, err error)
	GetShippingStatus(ctx context.Context, sess *session.Session, req dto.ShippingStatusRequest) (resp dto.ShippingStatusResult, err error)
}

// EventPublisher is satisfied by *kafka.Writer.
type EventPublisher interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type HousekeepingService interface {
	SweepExpired()
}
