package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler_RedactsPassword(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelDebug, "json"))
	logger.Info("stored", "claim_id", "c1", "password", "hunter2")

	assert.Contains(t, buf.String(), `"claim_id":"c1"`)
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestUserMessage(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	err := NewUserError("could not reach the claims API", inner)

	assert.Equal(t, "could not reach the claims API", UserMessage(err))
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.Empty(t, UserMessage(nil))
}
