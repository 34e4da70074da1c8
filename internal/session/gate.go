package session

import (
	"context"
	"errors"
	"time"

	"github.com/alphabot-ai/blogcli/internal/token"

	"go.uber.org/zap"
)

var (
	ErrExpired    = errors.New("token expired")
	ErrNotBlogger = errors.New("blogger role required")
	ErrNotOwner   = errors.New("not the owner of this resource")
)

// Identity is a stored token together with its decoded, unverified claims.
type Identity struct {
	Token   string
	Payload token.Payload
}

// Gate re-derives session state from the provider on every call; nothing is
// cached between navigations.
type Gate struct {
	provider Provider
	now      func() time.Time
	log      *zap.Logger
}

func NewGate(provider Provider, now func() time.Time, log *zap.Logger) *Gate {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gate{provider: provider, now: now, log: log}
}

func (g *Gate) Provider() Provider {
	return g.provider
}

// IsAuthenticated reports false only for a stored token that is malformed or
// expired, clearing it in that case. No token at all counts as
// authenticated so anonymous visitors can browse public pages.
func (g *Gate) IsAuthenticated(ctx context.Context) bool {
	_, err := g.Current(ctx)
	if err == nil || errors.Is(err, ErrNoToken) {
		return true
	}
	return false
}

// Current returns the stored identity. Malformed and expired tokens are
// cleared from both areas before the error is returned.
func (g *Gate) Current(ctx context.Context) (Identity, error) {
	raw, err := g.provider.Get(ctx)
	if err != nil {
		return Identity{}, err
	}

	payload, err := token.Decode(raw)
	if err == nil && payload.Expired(g.now()) {
		err = ErrExpired
	}
	if err != nil {
		g.log.Info("clearing stored token", zap.Error(err))
		if clearErr := g.provider.Clear(ctx); clearErr != nil {
			g.log.Warn("clear token", zap.Error(clearErr))
		}
		return Identity{}, err
	}
	return Identity{Token: raw, Payload: payload}, nil
}

// Optional returns the current identity when a valid token is stored.
func (g *Gate) Optional(ctx context.Context) (Identity, bool) {
	id, err := g.Current(ctx)
	if err != nil {
		return Identity{}, false
	}
	return id, true
}

// RequireBlogger runs presence, decode, expiry and role checks in order.
func (g *Gate) RequireBlogger(ctx context.Context) (Identity, error) {
	id, err := g.Current(ctx)
	if err != nil {
		return Identity{}, err
	}
	if !id.Payload.IsBlogger() {
		return Identity{}, ErrNotBlogger
	}
	return id, nil
}

func RequireOwner(p token.Payload, resourceUserID int64) error {
	if p.UserID != resourceUserID {
		return ErrNotOwner
	}
	return nil
}
