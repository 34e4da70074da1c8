package view

import (
	"errors"
	"net/http"

	"github.com/alphabot-ai/blogcli/internal/client"
	"github.com/alphabot-ai/blogcli/internal/session"
	"github.com/alphabot-ai/blogcli/internal/token"
)

const (
	msgNetwork    = "Network error. Please check your internet connection."
	msgServer     = "Internal server error. Please try again later."
	msgUnexpected = "An unexpected error occurred."

	msgCommentSignIn = "To add comment. You should be signed in!"
	msgReplySignIn   = "Please sign in or sign up to add a reply to this comment."
	msgUpdateFailed  = "Failed to update post. Please try again."
	msgBadLogin      = "Invalid email or password."
	msgUserNotFound  = "User not found"
	msgPostRequired  = "Header and body are required."
	msgRoleRequired  = "Role must be blogger or reader."
)

var (
	ErrSignInRequired = errors.New("sign in required")
	ErrClosed         = errors.New("view is not open")
)

// UserError carries the text shown to the user next to the underlying cause.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// UserMessage maps err to the text shown to the user. Session failures and
// 401 responses map to "" because they only ever cause a silent redirect.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Message
	}

	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		return msgNetwork
	}

	if errors.Is(err, client.ErrUnauthorized) {
		return ""
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusBadRequest:
			return apiErr.Message
		case http.StatusInternalServerError:
			return msgServer
		}
		return msgUnexpected
	}

	switch {
	case errors.Is(err, session.ErrNoToken),
		errors.Is(err, session.ErrExpired),
		errors.Is(err, session.ErrNotBlogger),
		errors.Is(err, session.ErrNotOwner),
		errors.Is(err, token.ErrMalformedToken):
		return ""
	}

	var r *Redirect
	if errors.As(err, &r) && r.Cause == nil {
		return ""
	}
	return msgUnexpected
}
