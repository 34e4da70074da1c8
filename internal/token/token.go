// Package token inspects access tokens issued by the blog API.
//
// Decoding never verifies the signature. The server re-checks every token on
// each authenticated call, so the claims read here only decide what the
// client shows: which links, which delete buttons, which redirects.
package token

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alphabot-ai/blogcli/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

// Payload is the advisory view of a token's claims. It is never an
// authorization decision of record.
type Payload struct {
	UserID    int64
	Role      model.Role
	Name      string
	Email     string
	ExpiresAt time.Time
}

func (p Payload) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

func (p Payload) IsBlogger() bool {
	return p.Role == model.RoleBlogger
}

var parser = jwt.NewParser()

// Decode reads the payload of raw without checking its signature.
func Decode(raw string) (Payload, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	userID, err := int64Claim(claims, "user_id")
	if err != nil {
		return Payload{}, err
	}
	role, _ := claims["role"].(string)
	if !model.Role(role).Valid() {
		return Payload{}, fmt.Errorf("%w: unknown role %q", ErrMalformedToken, role)
	}
	expiresAt, err := expiry(claims)
	if err != nil {
		return Payload{}, err
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	return Payload{
		UserID:    userID,
		Role:      model.Role(role),
		Name:      name,
		Email:     email,
		ExpiresAt: expiresAt,
	}, nil
}

func int64Claim(claims jwt.MapClaims, key string) (int64, error) {
	switch v := claims[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %s is not an integer", ErrMalformedToken, key)
		}
		return int64(v), nil
	case nil:
		return 0, fmt.Errorf("%w: missing %s", ErrMalformedToken, key)
	default:
		return 0, fmt.Errorf("%w: %s has type %T", ErrMalformedToken, key, v)
	}
}

// expiry prefers the registered exp claim and falls back to expired_at,
// an RFC3339 timestamp some servers emit instead.
func expiry(claims jwt.MapClaims) (time.Time, error) {
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if exp != nil {
		return exp.Time, nil
	}
	if s, ok := claims["expired_at"].(string); ok {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: expired_at: %v", ErrMalformedToken, err)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: missing exp", ErrMalformedToken)
}
