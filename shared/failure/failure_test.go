package failure_test

import (
	"errors"
	"fmt"
	"heritage/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{Code: http.StatusBadRequest, Message: "visitors must be greater than or equal to 1"}

	assert.Equal(t, "visitors must be greater than or equal to 1", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		kind    failure.Kind
		message string
	}{
		{
			name:    "bad request from error",
			err:     failure.BadRequest(errors.New("date is required")),
			code:    http.StatusBadRequest,
			kind:    failure.KindInvalidInput,
			message: "date is required",
		},
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("time_slot is required"),
			code:    http.StatusBadRequest,
			kind:    failure.KindInvalidInput,
			message: "time_slot is required",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("requester identity is required"),
			code:    http.StatusUnauthorized,
			kind:    failure.KindInvalidInput,
			message: "requester identity is required",
		},
		{
			name:    "place not found",
			err:     failure.PlaceNotFound("place not found"),
			code:    http.StatusNotFound,
			kind:    failure.KindPlaceNotFound,
			message: "place not found",
		},
		{
			name:    "store unavailable",
			err:     failure.StoreUnavailable(errors.New("connection refused")),
			code:    http.StatusServiceUnavailable,
			kind:    failure.KindStoreUnavailable,
			message: "connection refused",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("place is busy, please try again"),
			code:    http.StatusConflict,
			kind:    failure.KindConflict,
			message: "place is busy, please try again",
		},
		{
			name:    "not found has no kind",
			err:     failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			message: "booking not found",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("admin only"),
			code:    http.StatusForbidden,
			message: "admin only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure
			require.ErrorAs(t, tt.err, &f)

			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestNilErrorConstructors(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.StoreUnavailable(nil))
}

func TestPredefinedFailures(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, failure.ForbiddenError.Code)
	assert.Equal(t, failure.Kind(""), failure.ForbiddenError.Kind)
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    failure.Conflict("busy"),
			expected: http.StatusConflict,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("create booking: %w", failure.PlaceNotFound("missing")),
			expected: http.StatusNotFound,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestGetKind(t *testing.T) {
	assert.Equal(t, failure.KindStoreUnavailable, failure.GetKind(fmt.Errorf("wrapped: %w", failure.StoreUnavailable(errors.New("down")))))
	assert.Equal(t, failure.Kind(""), failure.GetKind(errors.New("plain")))
	assert.Equal(t, failure.Kind(""), failure.GetKind(nil))
}
