package devtools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformError(t *testing.T) {
	t.Run("service error passes through", func(t *testing.T) {
		in := NewError(CodeNotFound, "gone")
		assert.Same(t, in, transformError(in))
	})

	t.Run("wrapped service error unwraps", func(t *testing.T) {
		in := NewError(CodeNotFound, "gone")
		got := transformError(fmt.Errorf("lookup: %w", in))
		assert.Same(t, in, got)
	})

	t.Run("context deadline", func(t *testing.T) {
		got := transformError(context.DeadlineExceeded)
		assert.Equal(t, CodeDeadlineExceeded, got.Code)
	})

	t.Run("context canceled", func(t *testing.T) {
		got := transformError(context.Canceled)
		assert.Equal(t, CodeCanceled, got.Code)
	})

	t.Run("validation errors map to details", func(t *testing.T) {
		type req struct {
			Name string `validate:"required"`
		}
		err := validator.New().Struct(req{})
		require.Error(t, err)

		got := transformError(err)
		assert.Equal(t, CodeInvalidArgument, got.Code)
		assert.Equal(t, "required", got.Details["Name"])
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		got := transformError(errors.New("boom"))
		assert.Equal(t, CodeInternal, got.Code)
		assert.Equal(t, "boom", got.Message)
	})

	t.Run("nil is nil", func(t *testing.T) {
		assert.Nil(t, transformError(nil))
	})
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{CodeCanceled, 499},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDeadlineExceeded, http.StatusGatewayTimeout},
		{ErrorCode("mystery"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), string(tt.code))
	}
}

func TestError_WithDetail(t *testing.T) {
	base := NewError(CodeInvalidArgument, "bad input")
	withA := base.WithDetail("a", 1)
	withB := withA.WithDetail("b", 2)

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]any{"a": 1}, withA.Details)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, withB.Details)
}
