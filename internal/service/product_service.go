package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/hainweb/merchant-console/internal/dto"
	"github.com/hainweb/merchant-console/internal/productform"
	"github.com/hainweb/merchant-console/internal/repository"
	"github.com/hainweb/merchant-console/internal/session"
	pkgdto "github.com/hainweb/merchant-console/pkg/dto"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const (
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"

	maxPublishRetries = 3
	publishTimeout    = 30 * time.Second
)

type ProductServiceImpl struct {
	merchantAPI repository.MerchantAPIRepository
	drafts      repository.DraftRepository
	publisher   EventPublisher
	backoff     time.Duration
	inflight    sync.WaitGroup
}

// CreateProductService builds the product service. publisher may be nil, in
// which case submissions are not announced.
func CreateProductService(merchantAPI repository.MerchantAPIRepository, drafts repository.DraftRepository, publisher EventPublisher) ProductService {
	return &ProductServiceImpl{
		merchantAPI: merchantAPI,
		drafts:      drafts,
		publisher:   publisher,
		backoff:     time.Second,
	}
}

// remoteSubmitter sends assembled forms to the merchant API with the
// session's cookies.
type remoteSubmitter struct {
	merchantAPI repository.MerchantAPIRepository
	jar         http.CookieJar
}

func (r remoteSubmitter) CreateProduct(ctx context.Context, payload *productform.Payload) (productform.Ack, error) {
	resp, err := r.merchantAPI.AddProduct(ctx, r.jar, payload)
	if err != nil {
		return productform.Ack{}, err
	}
	return productform.Ack{Status: resp.Status, Message: resp.Message}, nil
}

func (r remoteSubmitter) UpdateProduct(ctx context.Context, id string, payload *productform.Payload) (productform.Ack, error) {
	resp, err := r.merchantAPI.UpdateProduct(ctx, r.jar, id, payload)
	if err != nil {
		return productform.Ack{}, err
	}
	return productform.Ack{Status: resp.Status, Message: resp.Message}, nil
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, sess *session.Session, filter pkgdto.Filter) (products []domain.ProductSummary, err error) {
	return s.merchantAPI.GetProducts(ctx, sess.Jar(), filter)
}

func (s *ProductServiceImpl) newDraft(ctx context.Context, sess *session.Session, cfg productform.Config) (resp dto.DraftResponse, err error) {
	cfg.ID = ulid.Make().String()
	cfg.Owner = sess.ID

	form, err := productform.New(cfg)
	if err != nil {
		return
	}

	if err = s.drafts.Save(ctx, form); err != nil {
		form.Close()
		return
	}

	log.Info().Str("draft_id", cfg.ID).Str("mode", string(cfg.Mode)).Msg("draft opened")
	return dto.DraftResponse{Draft: form.View()}, nil
}

func (s *ProductServiceImpl) CreateDraft(ctx context.Context, sess *session.Session) (resp dto.DraftResponse, err error) {
	return s.newDraft(ctx, sess, productform.Config{Mode: productform.ModeCreate})
}

// CreateEditDraft loads the product from the merchant API and opens an
// update form seeded with it.
func (s *ProductServiceImpl) CreateEditDraft(ctx context.Context, sess *session.Session, productID string) (resp dto.DraftResponse, err error) {
	if productID == "" {
		return resp, errs.ErrClient
	}

	snapshot, err := s.merchantAPI.GetProductSnapshot(ctx, sess.Jar(), productID)
	if err != nil {
		return
	}

	return s.newDraft(ctx, sess, productform.Config{
		Mode:      productform.ModeUpdate,
		ProductID: productID,
		Snapshot:  &snapshot,
	})
}

func (s *ProductServiceImpl) GetDraft(ctx context.Context, sess *session.Session, draftID string) (resp dto.DraftResponse, err error) {
	form, err := s.drafts.Get(ctx, sess.ID, draftID)
	if err != nil {
		return
	}
	return dto.DraftResponse{Draft: form.View()}, nil
}

func (s *ProductServiceImpl) DiscardDraft(ctx context.Context, sess *session.Session, draftID string) error {
	return s.drafts.Delete(ctx, sess.ID, draftID)
}

// edit loads the caller's draft, applies fn and renders the result.
func (s *ProductServiceImpl) edit(ctx context.Context, sess *session.Session, draftID string, fn func(form *productform.Form, resp *dto.DraftResponse) error) (resp dto.DraftResponse, err error) {
	form, err := s.drafts.Get(ctx, sess.ID, draftID)
	if err != nil {
		return
	}

	if err = fn(form, &resp); err != nil {
		return
	}

	resp.Draft = form.View()
	return resp, nil
}

func (s *ProductServiceImpl) UpdateDraftFields(ctx context.Context, sess *session.Session, draftID string, req dto.DraftFieldsRequest) (dto.DraftResponse, error) {
	return s.edit(ctx, sess, draftID, func(form *productform.Form, _ *dto.DraftResponse) error {
		return form.SetFields(productform.FieldPatch{
			Name:         req.Name,
			Price:        req.Price,
			SellingPrice: req.SellingPrice,
			Category:     req.Category,
			Description:  req.Description,
			Quantity:     req.Quantity,
			ReturnPolicy: req.ReturnPolicy,
		})
	})
}

func (s *ProductServiceImpl) AddSpecification(ctx context.Context, sess *session.Session, draftID string, req dto.SpecificationRequest) (dto.DraftResponse, error) {
	return s.edit(ctx, sess, draftID, func(form *productform.Form, resp *dto.DraftResponse) error {
		added, err := form.AddSpecification(domain.SpecificationEntry{Key: req.Key, Value: req.Value})
		resp.Added = &added
		return err
	})
}

func (s *ProductServiceImpl) RemoveSpecification(ctx context.Context, sess *session.Session, draftID string, index int) (dto.DraftResponse, error) {
	return s.edit(ctx, sess, draftID, func(form *productform.Form, _ *dto.DraftResponse) error {
		return indexErr(form.RemoveSpecification(index))
	})
}

func (s *ProductServiceImpl) AddHighlight(ctx context.Context, sess *session.Session, draftID string, req dto.HighlightRequest) (dto.DraftResponse, error) {
	return s.edit(ctx, sess, draftID, func(form *productform.Form, resp *dto.DraftResponse) error {
		added, err := form.AddHighlight(req.Highlight)
		resp.Added = &added
		return err
	})
}

func (s *ProductServiceImpl) RemoveHighlight(ctx context.Context, sess *session.Session, draftID string, index int) (dto.DraftResponse, error) {
	return s.edit(ctx, sess, draftID, func(form *productform.Form, _ *dto.DraftResponse) error {
		return indexErr(form.RemoveHighlight(index))
	})
}

func (s *ProductServiceImpl) AddCustomOption(ctx context.Context, sess *session.Session, draftID string, req dto.CustomOptionRequest) (dto.DraftResponse, error) {
	return s.edit(ctx, sess, draftID, func(form *productform.Form, resp *dto.DraftResponse) error {
		added, err := form.AddCustomOption(productform.OptionInput{Name: req.Name, Values: req.Values})
		resp.Added = &added
		return err
	})
}

func (s *ProductServiceImpl) RemoveCustomOption(ctx context.Context, sess *session.Session, draftID string, index int) (dto.DraftResponse, error) {
	return s.edit(ctx, sess, draftID, func(form *productform.Form, _ *dto.DraftResponse) error {
		return indexErr(form.RemoveCustomOption(index))
	})
}

func (s *ProductServiceImpl) SetThumbnail(ctx context.Context, sess *session.Session, draftID string, file productform.ImageFile) (dto.DraftResponse, error) {
	return s.edit(ctx, sess, draftID, func(form *productform.Form, resp *dto.DraftResponse) error {
		reason, err := form.SelectThumbnail(file)
		resp.Rejection = reason
		return err
	})
}

func (s *ProductServiceImpl) RemoveThumbnail(ctx context.Context, sess *session.Session, draftID string) (dto.DraftResponse, error) {
	return s.edit(ctx, sess, draftID, func(form *productform.Form, _ *dto.DraftResponse) error {
		return form.RemoveThumbnail()
	})
}

func (s *ProductServiceImpl) AddImages(ctx context.Context, sess *session.Session, draftID string, files []productform.ImageFile) (dto.DraftResponse, error) {
	return s.edit(ctx, sess, draftID, func(form *productform.Form, resp *dto.DraftResponse) error {
		accepted, reason, err := form.SelectImages(files)
		resp.Accepted = &accepted
		resp.Rejection = reason
		return err
	})
}

func (s *ProductServiceImpl) RemoveImage(ctx context.Context, sess *session.Session, draftID string, index int) (dto.DraftResponse, error) {
	return s.edit(ctx, sess, draftID, func(form *productform.Form, _ *dto.DraftResponse) error {
		return indexErr(form.RemoveImage(index))
	})
}

// SubmitDraft sends the draft to the merchant API. A successful submission
// closes the draft and is announced on the event topic.
func (s *ProductServiceImpl) SubmitDraft(ctx context.Context, sess *session.Session, draftID string) (outcome productform.Outcome, err error) {
	form, err := s.drafts.Get(ctx, sess.ID, draftID)
	if err != nil {
		return
	}

	outcome, err = form.Submit(ctx, remoteSubmitter{merchantAPI: s.merchantAPI, jar: sess.Jar()})
	if err != nil {
		log.Warn().Err(err).Str("component", "SubmitDraft").Str("draft_id", draftID).Msg("")
		return
	}

	view := form.View()
	if err := s.drafts.Delete(ctx, sess.ID, draftID); err != nil && !errors.Is(err, errs.ErrNotFound) {
		log.Error().Err(err).Str("component", "SubmitDraft").Msg("")
	}

	adminID := ""
	if admin, ok := sess.Admin(); ok {
		adminID = admin.ID
	}
	eventType := EventProductCreated
	if outcome.Mode == productform.ModeUpdate {
		eventType = EventProductUpdated
	}
	s.publishAsync(ctx, draftID, dto.KafkaMessage{
		EventType: eventType,
		Data: dto.ProductEvent{
			DraftID:    draftID,
			SessionID:  sess.ID,
			AdminID:    adminID,
			Mode:       string(outcome.Mode),
			ProductID:  outcome.ProductID,
			Name:       view.Fields.Name,
			Category:   view.Fields.Category,
			OccurredAt: time.Now().Unix(),
		},
	})

	return outcome, nil
}

// publishAsync announces an event without holding up the response. The
// write outlives the request context but not publishTimeout.
func (s *ProductServiceImpl) publishAsync(ctx context.Context, key string, msg dto.KafkaMessage) {
	if s.publisher == nil {
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		s.publish(ctx, key, msg)
	}()
}

// WaitForEvents blocks until every pending event write has finished.
func (s *ProductServiceImpl) WaitForEvents() {
	s.inflight.Wait()
}

// publish writes msg to the event topic. The product already reached the
// merchant API, so failures are logged and swallowed.
func (s *ProductServiceImpl) publish(ctx context.Context, key string, msg dto.KafkaMessage) {
	if s.publisher == nil {
		return
	}

	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("component", "PublishProductEvent").Msg("")
		return
	}

	for i := 0; i < maxPublishRetries; i++ {
		err = s.publisher.WriteMessages(ctx, kafka.Message{
			Key:   []byte(key),
			Value: jsonMsg,
		})
		if err == nil {
			return
		}

		log.Warn().Err(err).Int("attempt", i+1).Str("component", "PublishProductEvent").Msg("")
		if i == maxPublishRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			log.Error().Err(ctx.Err()).Str("component", "PublishProductEvent").Str("event_type", msg.EventType).Msg("giving up")
			return
		case <-time.After(s.backoff * time.Duration(i+1)):
		}
	}

	log.Error().Err(err).Str("component", "PublishProductEvent").Str("event_type", msg.EventType).Msg("giving up")
}

func indexErr(err error) error {
	if errors.Is(err, productform.ErrIndexOutOfRange) {
		return errs.WithMessage(errs.ErrClient, err.Error())
	}
	return err
}
