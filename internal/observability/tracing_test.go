package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trobanga/ladle/internal/observability"
)

func TestInitTracing_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv(observability.EndpointEnv, "")

	shutdown, err := observability.InitTracing(context.Background())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestServiceName(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	assert.Equal(t, "ladle", observability.ServiceName())

	t.Setenv("OTEL_SERVICE_NAME", "ladle-ci")
	assert.Equal(t, "ladle-ci", observability.ServiceName())
}
