package service

import (
	"context"
	"strings"

	"github.com/hainweb/merchant-console/config"
	"github.com/hainweb/merchant-console/internal/dto"
	"github.com/hainweb/merchant-console/internal/productform"
	"github.com/hainweb/merchant-console/internal/repository"
	"github.com/hainweb/merchant-console/internal/session"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/hainweb/merchant-console/pkg/utils"
	"github.com/rs/zerolog/log"
)

const msgLoginFailed = "Invalid mobile or password"

type AuthServiceImpl struct {
	merchantAPI repository.MerchantAPIRepository
	sessions    repository.SessionRepository
	drafts      repository.DraftRepository
	config      *config.Config
}

func CreateAuthService(merchantAPI repository.MerchantAPIRepository, sessions repository.SessionRepository, drafts repository.DraftRepository, config *config.Config) AuthService {
	return &AuthServiceImpl{
		merchantAPI: merchantAPI,
		sessions:    sessions,
		drafts:      drafts,
		config:      config,
	}
}

func (s *AuthServiceImpl) issueToken(sess *session.Session) (string, error) {
	name := ""
	if admin, ok := sess.Admin(); ok {
		name = admin.Name
	}
	return utils.CreateJWTToken(sess.ID, name, s.config.JWTSecret, s.config.SessionConfig.TTL)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (resp dto.SessionResponse, err error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return resp, errs.WithMessage(errs.ErrClient, session.MsgRequiredFields)
	}

	sess, err := session.New()
	if err != nil {
		return
	}

	loginResp, err := s.merchantAPI.Login(ctx, sess.Jar(), dto.MerchantLoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		return
	}
	if !loginResp.Status {
		msg := loginResp.Message
		if msg == "" {
			msg = msgLoginFailed
		}
		return resp, errs.WithMessage(errs.ErrInvalidCredentialsEmail, msg)
	}

	status, err := s.merchantAPI.GetAdmin(ctx, sess.Jar())
	if err != nil {
		return
	}
	sess.Populate(session.AdminStatus{Status: status.Status, IsApproved: status.IsApproved, Admin: status.Admin})
	if sess.Approval() == session.ApprovalUnknown {
		return resp, errs.WithMessage(errs.ErrInvalidCredentialsEmail, msgLoginFailed)
	}

	if err = s.sessions.Save(ctx, sess); err != nil {
		return
	}

	token, err := s.issueToken(sess)
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
		return resp, errs.ErrInternalServer
	}

	return dto.SessionResponse{Token: token, Session: sess.View()}, nil
}

// CheckSession refreshes the session from the merchant API and records the
// visit.
func (s *AuthServiceImpl) CheckSession(ctx context.Context, sess *session.Session) (view session.View, err error) {
	go func(ctx context.Context) {
		if err := s.merchantAPI.LogVisit(ctx); err != nil {
			log.Warn().Err(err).Str("component", "LogVisit").Msg("")
		}
	}(context.WithoutCancel(ctx))

	status, err := s.merchantAPI.GetAdmin(ctx, sess.Jar())
	if err != nil {
		return
	}

	pendingSignup := sess.Approval() == session.ApprovalPending && !status.Status
	if !pendingSignup {
		sess.Populate(session.AdminStatus{Status: status.Status, IsApproved: status.IsApproved, Admin: status.Admin})
	}

	return sess.View(), nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, sess *session.Session) error {
	if err := s.merchantAPI.Logout(ctx, sess.Jar()); err != nil {
		log.Error().Err(err).Str("component", "Logout").Msg("")
	}

	removed := s.drafts.DeleteByOwner(ctx, sess.ID)
	log.Info().Str("session_id", sess.ID).Int("drafts", removed).Msg("session closed")

	sess.Clear()
	return s.sessions.Delete(ctx, sess.ID)
}

func (s *AuthServiceImpl) MarkIntroSeen(ctx context.Context, sess *session.Session) (view session.View, err error) {
	resp, err := s.merchantAPI.MarkIntroSeen(ctx, sess.Jar())
	if err != nil {
		return
	}
	if !resp.Status {
		return view, errs.WithMessage(errs.ErrRejected, resp.Message)
	}

	sess.MarkIntroSeen()
	return sess.View(), nil
}

func businessDetails(req dto.SignupBusinessRequest) session.BusinessDetails {
	return session.BusinessDetails{
		Name:            req.Name,
		BusinessName:    req.BusinessName,
		GSTNumber:       req.GSTNumber,
		BusinessType:    req.BusinessType,
		BusinessAddress: req.BusinessAddress,
	}
}

func (s *AuthServiceImpl) StartSignup(ctx context.Context, req dto.SignupBusinessRequest) (resp dto.SessionResponse, err error) {
	sess, err := session.New()
	if err != nil {
		return
	}

	if err = sess.Signup().SubmitBusiness(businessDetails(req)); err != nil {
		return
	}

	if err = s.sessions.Save(ctx, sess); err != nil {
		return
	}

	token, err := s.issueToken(sess)
	if err != nil {
		log.Error().Err(err).Str("component", "StartSignup").Msg("")
		return resp, errs.ErrInternalServer
	}

	return dto.SessionResponse{Token: token, Session: sess.View()}, nil
}

func (s *AuthServiceImpl) SubmitSignupBusiness(ctx context.Context, sess *session.Session, req dto.SignupBusinessRequest) (view session.View, err error) {
	if err = sess.Signup().SubmitBusiness(businessDetails(req)); err != nil {
		return
	}
	return sess.View(), nil
}

func (s *AuthServiceImpl) SubmitSignupContact(ctx context.Context, sess *session.Session, req dto.SignupContactRequest) (view session.View, err error) {
	signup := sess.Signup()
	err = signup.SubmitContact(session.ContactDetails{
		Mobile:          req.Mobile,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return
	}

	resp, err := s.merchantAPI.SendOTP(ctx, sess.Jar(), dto.SendOTPRequest{Email: req.Email, Mobile: req.Mobile})
	if err != nil {
		log.Error().Err(err).Str("component", "SubmitSignupContact").Msg("")
		return view, errs.WithMessage(errs.ErrBadGateway, session.MsgOTPFailed)
	}
	if !resp.Status {
		msg := resp.Message
		if msg == "" {
			msg = session.MsgOTPFailed
		}
		return view, errs.WithMessage(errs.ErrRejected, msg)
	}

	signup.OTPSent()
	return sess.View(), nil
}

func (s *AuthServiceImpl) VerifySignup(ctx context.Context, sess *session.Session, req dto.SignupVerifyRequest) (view session.View, err error) {
	signup := sess.Signup()
	if err = signup.CheckOTP(req.OTP); err != nil {
		return
	}

	app := signup.Application()
	resp, err := s.merchantAPI.VerifyMerchant(ctx, sess.Jar(), dto.VerifyMerchantRequest{
		Email:  app.Email,
		Mobile: app.Mobile,
		OTP:    req.OTP,
		Data:   app,
	})
	if err != nil {
		log.Error().Err(err).Str("component", "VerifySignup").Msg("")
		return view, errs.WithMessage(errs.ErrBadGateway, productform.MsgRejected)
	}
	if !resp.Status {
		msg := resp.Message
		if msg == "" {
			msg = session.MsgOTPInvalid
		}
		return view, errs.WithMessage(errs.ErrRejected, msg)
	}

	signup.Verified()
	sess.MarkApplicationSubmitted()
	return sess.View(), nil
}

func (s *AuthServiceImpl) SignupBack(ctx context.Context, sess *session.Session) (session.View, error) {
	sess.Signup().Back()
	return sess.View(), nil
}

func (s *AuthServiceImpl) GetApplication(ctx context.Context, sess *session.Session) (view session.View, err error) {
	if err = sess.RequirePending(); err != nil {
		return
	}
	return sess.View(), nil
}
