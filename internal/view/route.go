package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/alphabot-ai/blogcli/internal/session"
)

// Route is a navigable location in the client.
type Route string

const (
	RouteHome    Route = "/"
	RouteSignIn  Route = "/signin"
	RouteSignUp  Route = "/signup"
	RouteMyBlogs Route = "/my/blogs"
	RouteAddBlog Route = "/add-blog"
)

func RoutePost(id int64) Route {
	return Route(fmt.Sprintf("/blogs/%d", id))
}

func RouteUpdate(id int64) Route {
	return Route(fmt.Sprintf("/update-blog/%d", id))
}

// Redirect is returned as an error when a view cannot be shown and the user
// must be sent elsewhere. Cause, when set, is why.
type Redirect struct {
	To    Route
	Cause error
}

func (r *Redirect) Error() string {
	if r.Cause == nil {
		return "redirect to " + string(r.To)
	}
	return fmt.Sprintf("redirect to %s: %v", r.To, r.Cause)
}

func (r *Redirect) Unwrap() error {
	return r.Cause
}

func redirect(to Route, cause error) error {
	return &Redirect{To: to, Cause: cause}
}

// guard sends the user to sign in when the stored token is malformed or
// expired. The gate clears such a token.
func guard(ctx context.Context, gate *session.Gate) error {
	if !gate.IsAuthenticated(ctx) {
		return redirect(RouteSignIn, nil)
	}
	return nil
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
