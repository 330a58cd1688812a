package accounts_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accounts "github.com/arkholt/go-accounts"
)

func TestClaimsAccountID(t *testing.T) {
	id := uuid.New()

	t.Run("prefers the uid claim", func(t *testing.T) {
		claims := &accounts.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.New().String()},
			UID:              id.String(),
		}

		got, err := claims.AccountID()
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("falls back to the subject", func(t *testing.T) {
		claims := &accounts.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: id.String()},
		}

		got, err := claims.AccountID()
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("rejects a non uuid subject", func(t *testing.T) {
		claims := &accounts.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "admin"},
		}

		_, err := claims.AccountID()
		assert.Error(t, err)
	})
}

func TestClaimsTimes(t *testing.T) {
	t.Run("zero when absent", func(t *testing.T) {
		claims := &accounts.Claims{}
		assert.True(t, claims.Expires().IsZero())
		assert.True(t, claims.IssuedAtTime().IsZero())
	})

	t.Run("round trips the numeric dates", func(t *testing.T) {
		issued := time.Now().Truncate(time.Second)
		expires := issued.Add(2 * time.Hour)

		claims := &accounts.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(issued),
				ExpiresAt: jwt.NewNumericDate(expires),
			},
		}

		assert.Equal(t, issued, claims.IssuedAtTime())
		assert.Equal(t, expires, claims.Expires())
	})
}
