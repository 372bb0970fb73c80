package errs

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldErrors map[string]string

func (f fieldErrors) Error() string { return "invalid fields" }

func (f fieldErrors) Is(target error) bool { return target == ErrValidation }

func TestGetErrorStatusCode(t *testing.T) {
	type TestCase struct {
		Name     string
		Err      error
		Expected int
	}

	testCases := []TestCase{
		{Name: "sentinel", Err: ErrNotFound, Expected: http.StatusNotFound},
		{Name: "wrapped sentinel", Err: fmt.Errorf("fetch snapshot: %w", ErrBadGateway), Expected: http.StatusBadGateway},
		{Name: "message error", Err: WithMessage(ErrClient, "Invalid Mobile Number"), Expected: http.StatusBadRequest},
		{Name: "map error", Err: fieldErrors{"Name": "required"}, Expected: http.StatusUnprocessableEntity},
		{Name: "unknown error", Err: fmt.Errorf("boom"), Expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, GetErrorStatusCode(tc.Err))
		})
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrRejected, "Product already exists")
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Product already exists", err.Error())

	assert.Same(t, ErrRejected, WithMessage(ErrRejected, ""))
}
