package oracle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "qwen2.5:3b", cfg.Model)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://example.com:9100/v1"),
		WithModel("gpt-4o-mini"),
		WithTimeout(3*time.Second),
	)

	assert.Equal(t, "http://example.com:9100/v1", cfg.Host)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestNormalizeAddsV1Suffix(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already suffixed", "http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
		})
	}
}

func TestNormalizeRepairsTimeout(t *testing.T) {
	cfg := NewConfig(WithTimeout(0))
	cfg.Normalize()
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestValidateErrors(t *testing.T) {
	cfg := NewConfig(WithHost(""))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithModel(""))
	assert.Error(t, cfg.Validate())
}
