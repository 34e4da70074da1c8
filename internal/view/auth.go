package view

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/alphabot-ai/blogcli/internal/client"
	"github.com/alphabot-ai/blogcli/internal/model"
	"github.com/alphabot-ai/blogcli/internal/session"
	"github.com/alphabot-ai/blogcli/internal/token"
)

type SignIn struct {
	api      API
	provider session.Provider
}

func NewSignIn(api API, provider session.Provider) *SignIn {
	return &SignIn{api: api, provider: provider}
}

// Open sends users who already hold a token home.
func (s *SignIn) Open(ctx context.Context) error {
	return redirectIfSignedIn(ctx, s.provider)
}

// Submit logs in and stores the token durably when remember is set, in the
// session area otherwise.
func (s *SignIn) Submit(ctx context.Context, email, password string, remember bool) (Route, error) {
	raw, err := s.api.Login(ctx, strings.TrimSpace(email), password, remember)
	if err != nil {
		return "", err
	}
	if err := s.provider.Set(ctx, raw, remember); err != nil {
		return "", err
	}
	return landing(ctx, s.provider, raw)
}

type SignUp struct {
	api      API
	provider session.Provider
}

func NewSignUp(api API, provider session.Provider) *SignUp {
	return &SignUp{api: api, provider: provider}
}

func (s *SignUp) Open(ctx context.Context) error {
	return redirectIfSignedIn(ctx, s.provider)
}

// Register creates the account. The server then emails a verification code.
func (s *SignUp) Register(ctx context.Context, email, password string, role model.Role) error {
	if !role.Valid() {
		return &UserError{Message: msgRoleRequired}
	}
	return s.api.SignUp(ctx, strings.TrimSpace(email), password, role)
}

// Verify confirms the code and keeps the returned token durably.
func (s *SignUp) Verify(ctx context.Context, email, code string) (Route, error) {
	raw, err := s.api.Verify(ctx, strings.TrimSpace(email), strings.TrimSpace(code))
	if err != nil {
		switch client.StatusOf(err) {
		case http.StatusBadRequest:
			return "", &UserError{Message: msgBadLogin, Err: err}
		case http.StatusNotFound:
			return "", &UserError{Message: msgUserNotFound, Err: err}
		}
		return "", err
	}
	if err := s.provider.Set(ctx, raw, true); err != nil {
		return "", err
	}
	return landing(ctx, s.provider, raw)
}

func redirectIfSignedIn(ctx context.Context, provider session.Provider) error {
	_, err := provider.Get(ctx)
	if err == nil {
		return redirect(RouteHome, nil)
	}
	if errors.Is(err, session.ErrNoToken) {
		return nil
	}
	return err
}

// landing picks where a freshly stored token goes: bloggers to their posts,
// readers home. A token that does not decode is dropped.
func landing(ctx context.Context, provider session.Provider, raw string) (Route, error) {
	payload, err := token.Decode(raw)
	if err != nil {
		if clearErr := provider.Clear(ctx); clearErr != nil {
			return "", clearErr
		}
		return RouteSignIn, nil
	}
	if payload.IsBlogger() {
		return RouteMyBlogs, nil
	}
	return RouteHome, nil
}
