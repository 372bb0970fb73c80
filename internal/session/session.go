package session

import (
	"net/http"
	"net/http/cookiejar"
	"sync"

	"github.com/hainweb/merchant-console/internal/domain"
	"github.com/hainweb/merchant-console/pkg/errs"
	"github.com/oklog/ulid/v2"
)

type Approval string

const (
	ApprovalUnknown Approval = "unknown"
	ApprovalGranted Approval = "approved"
	ApprovalPending Approval = "pending"
)

// AdminStatus is what the merchant API reports about the logged in
// merchant.
type AdminStatus struct {
	Status     bool
	IsApproved bool
	Admin      *domain.Admin
}

// Session is the console state of one browser. It carries the cookie jar
// used for every merchant API call made on its behalf.
type Session struct {
	ID string

	mu       sync.RWMutex
	jar      http.CookieJar
	admin    *domain.Admin
	approval Approval
	signup   *Signup
}

func New() (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:       ulid.Make().String(),
		jar:      jar,
		approval: ApprovalUnknown,
	}, nil
}

func (s *Session) Jar() http.CookieJar {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jar
}

// Populate applies a session check. Anything but a positive status clears
// the session.
func (s *Session) Populate(st AdminStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case st.Status && st.IsApproved && st.Admin != nil:
		admin := *st.Admin
		s.admin = &admin
		s.approval = ApprovalGranted
	case st.Status && !st.IsApproved:
		s.admin = nil
		if st.Admin != nil {
			admin := *st.Admin
			s.admin = &admin
		}
		s.approval = ApprovalPending
	default:
		s.clear()
	}
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Session) clear() {
	s.admin = nil
	s.approval = ApprovalUnknown
	s.signup = nil
	if jar, err := cookiejar.New(nil); err == nil {
		s.jar = jar
	}
}

func (s *Session) Admin() (domain.Admin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.admin == nil {
		return domain.Admin{}, false
	}
	return *s.admin, true
}

func (s *Session) Approval() Approval {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.approval
}

// RequireApproved guards the console pages.
func (s *Session) RequireApproved() error {
	switch s.Approval() {
	case ApprovalGranted:
		return nil
	case ApprovalPending:
		return errs.ErrPendingApproval
	}
	return errs.ErrNotLoggedIn
}

// RequirePending guards the application status page, which only exists
// while an application waits for approval.
func (s *Session) RequirePending() error {
	switch s.Approval() {
	case ApprovalPending:
		return nil
	case ApprovalGranted:
		return errs.ErrNotPending
	}
	return errs.ErrNotLoggedIn
}

func (s *Session) ShouldShowIntro() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.approval == ApprovalGranted && s.admin != nil && !s.admin.IsIntroSeen
}

func (s *Session) MarkIntroSeen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin != nil {
		s.admin.IsIntroSeen = true
	}
}

// Signup returns the signup in progress, starting one when needed.
func (s *Session) Signup() *Signup {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signup == nil {
		s.signup = NewSignup()
	}
	return s.signup
}

// MarkApplicationSubmitted puts the session in the pending state once the
// merchant API accepted the application.
func (s *Session) MarkApplicationSubmitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.approval = ApprovalPending
}

type View struct {
	ID         string        `json:"id"`
	Approval   Approval      `json:"approval"`
	Admin      *domain.Admin `json:"admin"`
	ShowIntro  bool          `json:"show_intro"`
	SignupStep SignupStep    `json:"signup_step,omitempty"`
}

func (s *Session) View() View {
	v := View{ID: s.ID, ShowIntro: s.ShouldShowIntro()}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v.Approval = s.approval
	if s.admin != nil {
		admin := *s.admin
		v.Admin = &admin
	}
	if s.signup != nil {
		v.SignupStep = s.signup.Step()
	}
	return v
}
