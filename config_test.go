package accounts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	t.Run("requires a signing key", func(t *testing.T) {
		cfg := &Config{}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects out-of-range cost", func(t *testing.T) {
		cfg := &Config{SigningKey: []byte("secret"), BcryptCost: 99}
		assert.Error(t, cfg.Validate())
	})

	t.Run("accepts a minimal config", func(t *testing.T) {
		cfg := &Config{SigningKey: []byte("secret")}
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{SigningKey: []byte("secret")}.withDefaults()

	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	assert.Equal(t, passwordHashCost(), cfg.BcryptCost)

	custom := Config{
		SigningKey:    []byte("secret"),
		TokenTTL:      30 * time.Minute,
		ResetTokenTTL: 15 * time.Minute,
		BcryptCost:    MinHashCost,
	}.withDefaults()

	assert.Equal(t, 30*time.Minute, custom.TokenTTL)
	assert.Equal(t, 15*time.Minute, custom.ResetTokenTTL)
	assert.Equal(t, MinHashCost, custom.BcryptCost)
}
