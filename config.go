package accounts

import (
	"time"

	"github.com/goliatone/go-errors"
)

// Config holds the process-level settings the core needs. Construct it
// once at startup and pass it by reference; there are no ambient globals.
// The signing key comes from process configuration and must never be
// embedded in code.
type Config struct {
	// SigningKey is the server-held HMAC secret used to sign tokens.
	SigningKey []byte
	// TokenTTL is the lifetime of bearer tokens issued on login.
	// Defaults to one hour.
	TokenTTL time.Duration
	// ResetTokenTTL is the lifetime of password reset tokens.
	// Defaults to one hour.
	ResetTokenTTL time.Duration
	// BcryptCost is the hashing work factor. Defaults to the package
	// cost constant. It is fixed configuration, never derived from
	// request input.
	BcryptCost int
	// Issuer is stamped into the iss claim of issued tokens.
	Issuer string
	// Audience is stamped into the aud claim of issued tokens.
	Audience []string
}

// Validate checks the config is usable.
func (c *Config) Validate() error {
	if len(c.SigningKey) == 0 {
		return errors.New("signing key is required", errors.CategoryValidation).
			WithTextCode(TextCodeMissingField)
	}
	if c.BcryptCost != 0 && (c.BcryptCost < MinHashCost || c.BcryptCost > MaxHashCost) {
		return errors.New("bcrypt cost is out of range", errors.CategoryValidation).
			WithMetadata(map[string]any{"cost": c.BcryptCost})
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.TokenTTL == 0 {
		c.TokenTTL = time.Hour
	}
	if c.ResetTokenTTL == 0 {
		c.ResetTokenTTL = time.Hour
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = passwordHashCost()
	}
	return c
}
