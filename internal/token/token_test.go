package token

import (
	"testing"
	"time"

	"github.com/alphabot-ai/blogcli/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestDecode(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := sign(t, jwt.MapClaims{
		"user_id": 42,
		"role":    "blogger",
		"name":    "Ada",
		"email":   "ada@example.com",
		"exp":     exp.Unix(),
	})

	p, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.UserID)
	assert.Equal(t, model.RoleBlogger, p.Role)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.True(t, p.ExpiresAt.Equal(exp))
	assert.True(t, p.IsBlogger())
	assert.False(t, p.Expired(time.Now()))
	assert.True(t, p.Expired(exp.Add(time.Second)))
}

func TestDecodeIgnoresSignature(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"role":    "reader",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-servers-secret"))
	require.NoError(t, err)

	p, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, model.RoleReader, p.Role)
	assert.False(t, p.IsBlogger())
}

func TestDecodeExpiredAtFallback(t *testing.T) {
	exp := time.Now().Add(-10 * time.Second).UTC().Truncate(time.Second)
	raw := sign(t, jwt.MapClaims{
		"user_id":    3,
		"role":       "reader",
		"expired_at": exp.Format(time.RFC3339),
	})

	p, err := Decode(raw)
	require.NoError(t, err)
	assert.True(t, p.ExpiresAt.Equal(exp))
	assert.True(t, p.Expired(time.Now()))
}

func TestDecodeMalformed(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	cases := map[string]string{
		"not a jwt":       "definitely-not-a-token",
		"empty":           "",
		"missing user_id": sign(t, jwt.MapClaims{"role": "reader", "exp": future}),
		"unknown role":    sign(t, jwt.MapClaims{"user_id": 1, "role": "admin", "exp": future}),
		"missing expiry":  sign(t, jwt.MapClaims{"user_id": 1, "role": "reader"}),
		"string user_id":  sign(t, jwt.MapClaims{"user_id": "1", "role": "reader", "exp": future}),
		"bad expired_at":  sign(t, jwt.MapClaims{"user_id": 1, "role": "reader", "expired_at": "tomorrow"}),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(raw)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}
