package logger

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	log := NewLogger("test-role")
	require.NotNil(t, log)

	// must not panic
	log.Debug().Msg("debug message")
}

func TestNop(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)

	log.Info().Msg("discarded")
	log.Err(nil).Msg("discarded")
}

func TestGetChildLogger(t *testing.T) {
	parent := Nop()
	child := parent.GetChildLogger()

	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}

func TestFromContext(t *testing.T) {
	log := Nop()
	ctx := log.WithContext(context.Background())

	got := FromContext(ctx)
	require.NotNil(t, got)
}

func TestFromRequest(t *testing.T) {
	log := Nop()
	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(log.WithContext(req.Context()))

	got := FromRequest(req)
	require.NotNil(t, got)
}
