package session

import (
	"strings"
	"sync"

	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/hainweb/merchant-console/pkg/errs"
)

type SignupStep int

const (
	StepBusiness SignupStep = iota + 1
	StepContact
	StepOTP
	StepSubmitted
)

const (
	MsgRequiredFields   = "Please fill all required fields"
	MsgInvalidMobile    = "Invalid Mobile Number"
	MsgPasswordMismatch = "Passwords do not match"
	MsgOTPRequired      = "Please enter the OTP"
	MsgOTPFailed        = "Failed to send OTP"
	MsgOTPInvalid       = "Invalid OTP"
	MsgStepOutOfOrder   = "Complete the previous step first"
)

type BusinessDetails struct {
	Name            string
	BusinessName    string
	GSTNumber       string
	BusinessType    string
	BusinessAddress string
}

type ContactDetails struct {
	Mobile          string
	Email           string
	Password        string
	ConfirmPassword string
}

// Signup walks a merchant application through business details, contact
// details and OTP verification.
type Signup struct {
	mu   sync.Mutex
	step SignupStep
	app  domain.MerchantApplication
}

func NewSignup() *Signup {
	return &Signup{step: StepBusiness}
}

func (s *Signup) Step() SignupStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Signup) Application() domain.MerchantApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app
}

func missing(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func (s *Signup) SubmitBusiness(b BusinessDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step == StepSubmitted {
		return errs.ErrSubmissionClosed
	}
	if missing(b.Name, b.BusinessName, b.BusinessType, b.BusinessAddress) {
		return errs.WithMessage(errs.ErrClient, MsgRequiredFields)
	}

	s.app.Name = b.Name
	s.app.BusinessName = b.BusinessName
	s.app.GSTNumber = b.GSTNumber
	s.app.BusinessType = b.BusinessType
	s.app.BusinessAddress = b.BusinessAddress
	s.step = StepContact
	return nil
}

// SubmitContact validates and stores the contact details. The step only
// advances once the OTP has been sent, see OTPSent.
func (s *Signup) SubmitContact(c ContactDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.step == StepSubmitted:
		return errs.ErrSubmissionClosed
	case s.step < StepContact:
		return errs.WithMessage(errs.ErrClient, MsgStepOutOfOrder)
	}

	if missing(c.Mobile, c.Email, c.Password, c.ConfirmPassword) {
		return errs.WithMessage(errs.ErrClient, MsgRequiredFields)
	}
	if len(c.Mobile) != 10 {
		return errs.WithMessage(errs.ErrClient, MsgInvalidMobile)
	}
	if c.Password != c.ConfirmPassword {
		return errs.WithMessage(errs.ErrClient, MsgPasswordMismatch)
	}

	s.app.Mobile = c.Mobile
	s.app.Email = c.Email
	s.app.Password = c.Password
	s.app.ConfirmPassword = c.ConfirmPassword
	s.step = StepContact
	return nil
}

func (s *Signup) OTPSent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepContact {
		s.step = StepOTP
	}
}

// CheckOTP makes sure an OTP can be verified now.
func (s *Signup) CheckOTP(otp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.step == StepSubmitted:
		return errs.ErrSubmissionClosed
	case s.step != StepOTP:
		return errs.WithMessage(errs.ErrClient, MsgStepOutOfOrder)
	case missing(otp):
		return errs.WithMessage(errs.ErrClient, MsgOTPRequired)
	}
	return nil
}

func (s *Signup) Verified() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepSubmitted
}

// Back returns to the previous step, keeping what was entered.
func (s *Signup) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > StepBusiness && s.step < StepSubmitted {
		s.step--
	}
}
