package accounts

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenIssuer issues and verifies bearer tokens without tying callers to
// a specific signing implementation.
type TokenIssuer interface {
	Generate(subject string) (string, error)
	GenerateWithTTL(subject string, ttl time.Duration) (string, error)
	Validate(tokenString string) (*Claims, error)
}

// TokenService signs and validates HMAC-SHA256 JWTs. Tokens are
// self-contained: validation needs no store lookup, and there is no
// server-side revocation.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	audience   jwt.ClaimStrings
	logger     Logger
}

var _ TokenIssuer = (*TokenService)(nil)

// NewTokenService creates a TokenService from the process config. The
// config should have passed Validate; a service built without a signing
// key refuses to issue or accept tokens.
func NewTokenService(cfg *Config) *TokenService {
	c := cfg.withDefaults()
	return &TokenService{
		signingKey: c.SigningKey,
		ttl:        c.TokenTTL,
		issuer:     c.Issuer,
		audience:   jwt.ClaimStrings(c.Audience),
		logger:     defLogger{},
	}
}

// WithLogger overrides the logger used by the service.
func (ts *TokenService) WithLogger(logger Logger) *TokenService {
	if logger != nil {
		ts.logger = logger
	}
	return ts
}

// Generate issues a token bound to subject using the default TTL.
func (ts *TokenService) Generate(subject string) (string, error) {
	return ts.GenerateWithTTL(subject, ts.ttl)
}

// GenerateWithTTL issues a token bound to subject that expires after ttl.
func (ts *TokenService) GenerateWithTTL(subject string, ttl time.Duration) (string, error) {
	if len(ts.signingKey) == 0 {
		return "", goerrors.New("token signing key is not configured", goerrors.CategoryInternal)
	}
	if subject == "" {
		return "", goerrors.New("token subject is required", goerrors.CategoryBadInput)
	}
	if ttl <= 0 {
		return "", goerrors.New("token TTL must be positive", goerrors.CategoryBadInput)
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   subject,
			Audience:  ts.audience,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID: subject,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// Validate checks signature integrity and expiry. Every rejection maps
// to the single ErrInvalidToken value: an expired token and a tampered
// one are indistinguishable to the caller. The distinction is logged
// here for operators.
func (ts *TokenService) Validate(tokenString string) (*Claims, error) {
	if len(ts.signingKey) == 0 {
		ts.logger.Error("token rejected: signing key is not configured")
		return nil, ErrInvalidToken
	}

	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			ts.logger.Debug("token rejected: expired")
		} else {
			ts.logger.Debug("token rejected: %v", err)
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		ts.logger.Error("token claims could not be decoded")
		return nil, ErrInvalidToken
	}

	return claims, nil
}
