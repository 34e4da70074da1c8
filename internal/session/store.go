package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/alphabot-ai/blogcli/internal/store"
)

// TokenKey is the fixed key the token lives under in both areas.
const TokenKey = "userToken"

var ErrNoToken = errors.New("no token stored")

// Provider is the narrow token contract handed to views.
type Provider interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string, persistent bool) error
	Clear(ctx context.Context) error
}

// Store keeps at most one token across a durable and a session area.
type Store struct {
	durable store.KV
	session store.KV
}

func NewStore(durable, session store.KV) *Store {
	return &Store{durable: durable, session: session}
}

// Get returns the durable token if there is one, otherwise the session
// token, otherwise ErrNoToken.
func (s *Store) Get(ctx context.Context) (string, error) {
	for _, kv := range []store.KV{s.durable, s.session} {
		v, err := kv.Get(ctx, TokenKey)
		if err == nil && v != "" {
			return v, nil
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return "", fmt.Errorf("read token: %w", err)
		}
	}
	return "", ErrNoToken
}

func (s *Store) Set(ctx context.Context, token string, persistent bool) error {
	kv := s.session
	if persistent {
		kv = s.durable
	}
	if err := kv.Put(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	return errors.Join(
		s.durable.Delete(ctx, TokenKey),
		s.session.Delete(ctx, TokenKey),
	)
}

func (s *Store) Close() error {
	return errors.Join(s.durable.Close(), s.session.Close())
}
