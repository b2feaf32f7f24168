package lib_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/trobanga/ladle/internal/lib"
)

func TestCalculateBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{-1, 500 * time.Millisecond},
		{0, 500 * time.Millisecond},
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 5 * time.Second},
		{10, 5 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, lib.CalculateBackoff(tt.attempt, 500, 5000), "attempt %d", tt.attempt)
	}
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, lib.ShouldRetry(lib.ErrorTypeTransient, 1, 3))
	assert.True(t, lib.ShouldRetry(lib.ErrorTypeTransient, 2, 3))
	assert.False(t, lib.ShouldRetry(lib.ErrorTypeTransient, 3, 3))
	assert.False(t, lib.ShouldRetry(lib.ErrorTypeNonTransient, 0, 3))
}

func TestClassifyHTTPError(t *testing.T) {
	transient := []int{408, 429, 500, 502, 503, 504}
	for _, code := range transient {
		assert.Equal(t, lib.ErrorTypeTransient, lib.ClassifyHTTPError(code), "status %d", code)
	}
	permanent := []int{400, 401, 403, 404, 409, 422}
	for _, code := range permanent {
		assert.Equal(t, lib.ErrorTypeNonTransient, lib.ClassifyHTTPError(code), "status %d", code)
	}
}

func TestSleep(t *testing.T) {
	assert.NoError(t, lib.Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := lib.Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	assert.ErrorIs(t, lib.Sleep(ctx, 0), context.Canceled)
}

func TestIsNetworkError(t *testing.T) {
	assert.False(t, lib.IsNetworkError(nil))
	assert.True(t, lib.IsNetworkError(errors.New("dial tcp: connection refused")))
	assert.True(t, lib.IsNetworkError(errors.New("lookup calc: no such host")))
	assert.True(t, lib.IsNetworkError(errors.New("unexpected EOF")))
	assert.False(t, lib.IsNetworkError(errors.New("invalid character 'x'")))
}
