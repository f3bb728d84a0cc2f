package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthService_HealthCheck(t *testing.T) {
	hs := NewHealthService("1.2.3", nil)

	status := hs.HealthCheck(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.NotEmpty(t, status.GoVersion)
	assert.Positive(t, status.Runtime.Goroutines)
	assert.False(t, status.Timestamp.IsZero())
}
