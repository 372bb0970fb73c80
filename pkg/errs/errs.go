package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer         = http.StatusInternalServerError
	ErrStatusClient                 = http.StatusBadRequest
	ErrStatusNotLoggedIn            = http.StatusUnauthorized
	ErrStatusNoPermission           = http.StatusForbidden
	ErrStatusNotFound               = http.StatusNotFound
	ErrStatusConflict               = http.StatusConflict
	ErrStatusFileSizeExceedingLimit = http.StatusRequestEntityTooLarge
	ErrStatusUnprocessable          = http.StatusUnprocessableEntity
	ErrStatusBadGateway             = http.StatusBadGateway
	ErrStatusUnavailable            = http.StatusServiceUnavailable
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrNotLoggedIn             = errors.New("Unauthorized access")
	ErrInvalidCredentialsEmail = errors.New("Email or password is incorrect")
	ErrUnauthorized            = errors.New("Forbidden access")
	ErrPendingApproval         = errors.New("Merchant application is pending approval")
	ErrNotPending              = errors.New("No merchant application is pending")
	ErrNotFound                = errors.New("Resource not found")
	ErrNotAnImage              = errors.New("Uploaded file is not an image")
	ErrFileSizeExceedingLimit  = errors.New("Uploaded file exceeds the size limit")
	ErrValidation              = errors.New("Validation failed")
	ErrNoChanges               = errors.New("No changes to save")
	ErrSubmissionInFlight      = errors.New("A submission is already in progress")
	ErrSubmissionClosed        = errors.New("Draft has already been submitted")
	ErrRejected                = errors.New("Something went wrong")
	ErrBadGateway              = errors.New("Merchant service request failed")
	ErrServiceUnavailable      = errors.New("Merchant service is unavailable")
)

var errorMap = map[error]int{
	ErrInternalServer:          ErrStatusInternalServer,
	ErrClient:                  ErrStatusClient,
	ErrNotLoggedIn:             ErrStatusNotLoggedIn,
	ErrInvalidCredentialsEmail: ErrStatusNotLoggedIn,
	ErrUnauthorized:            ErrStatusNoPermission,
	ErrPendingApproval:         ErrStatusNoPermission,
	ErrNotPending:              ErrStatusNoPermission,
	ErrNotFound:                ErrStatusNotFound,
	ErrNotAnImage:              ErrStatusClient,
	ErrFileSizeExceedingLimit:  ErrStatusFileSizeExceedingLimit,
	ErrValidation:              ErrStatusUnprocessable,
	ErrNoChanges:               ErrStatusConflict,
	ErrSubmissionInFlight:      ErrStatusConflict,
	ErrSubmissionClosed:        ErrStatusConflict,
	ErrRejected:                ErrStatusUnprocessable,
	ErrBadGateway:              ErrStatusBadGateway,
	ErrServiceUnavailable:      ErrStatusUnavailable,
}

// messageError keeps the status of a sentinel while showing a more specific
// message to the merchant.
type messageError struct {
	kind    error
	message string
}

func (e *messageError) Error() string { return e.message }

func (e *messageError) Unwrap() error { return e.kind }

// WithMessage returns an error that matches kind under errors.Is but reads
// as message.
func WithMessage(kind error, message string) error {
	if message == "" {
		return kind
	}
	return &messageError{kind: kind, message: message}
}

// GetErrorStatusCode maps err to the status of the sentinel it wraps. Some
// errors are maps, so err is never used as a map key.
func GetErrorStatusCode(err error) int {
	for kind, errStatusCode := range errorMap {
		if errors.Is(err, kind) {
			return errStatusCode
		}
	}

	return errorMap[ErrInternalServer]
}
