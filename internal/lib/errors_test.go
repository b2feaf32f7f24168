package lib_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trobanga/ladle/internal/lib"
)

func TestAppError_Error(t *testing.T) {
	err := lib.ErrServiceRejected(422, "body.steel.Fe_g: field required")
	assert.Equal(t, "[SERVICE] Calculation service rejected the request: body.steel.Fe_g: field required (HTTP 422)", err.Error())
	assert.False(t, err.IsRetryable)

	assert.True(t, lib.ErrServiceRejected(503, "busy").IsRetryable)
}

func TestAppError_UserMessage(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:8000: connection refused")
	msg := lib.ErrNetworkUnreachable("http://127.0.0.1:8000", cause).UserMessage()

	assert.Contains(t, msg, "Error: Cannot reach calculation service at http://127.0.0.1:8000")
	assert.Contains(t, msg, "How to fix:")
	assert.Contains(t, msg, "1. Check that the calculation service is running")
	assert.Contains(t, msg, "Technical details: dial tcp")
	assert.Contains(t, msg, "running the command again may succeed")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := fmt.Errorf("outer: %w", lib.WrapError(lib.CategoryFileSystem, "write failed", cause))

	assert.ErrorIs(t, err, cause)
	var appErr *lib.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, lib.CategoryFileSystem, appErr.Category)
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *lib.AppError
		category lib.ErrorCategory
		contains string
	}{
		{"required field", lib.ErrRequiredField("steel.Fe_g", "hint"), lib.CategoryValidation, "steel.Fe_g"},
		{"combination rejected", lib.ErrCombinationRejected("Al", "S", "no sulfide"), lib.CategoryValidation, "Al cannot be used with target element S: no sulfide"},
		{"invalid config", lib.ErrInvalidConfig("polling", "bad interval"), lib.CategoryConfiguration, "bad interval"},
		{"job not found", lib.ErrJobNotFound("abc"), lib.CategoryJob, "'abc' not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Contains(t, tt.err.Error(), tt.contains)
			assert.NotEmpty(t, tt.err.Guidance)
		})
	}
}

func TestClassifyError(t *testing.T) {
	assert.Nil(t, lib.ClassifyError(nil))

	original := lib.ErrJobNotFound("x")
	assert.Same(t, original, lib.ClassifyError(fmt.Errorf("wrapped: %w", original)))

	network := lib.ClassifyError(errors.New("read: connection reset by peer"))
	assert.Equal(t, lib.CategoryNetwork, network.Category)
	assert.True(t, network.IsRetryable)

	perm := lib.ClassifyError(errors.New("open out.zip: permission denied"))
	assert.Equal(t, lib.CategoryFileSystem, perm.Category)

	other := lib.ClassifyError(errors.New("something odd"))
	assert.Equal(t, lib.CategoryValidation, other.Category)
	assert.False(t, other.IsRetryable)
}
