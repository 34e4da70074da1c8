package view

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/alphabot-ai/blogcli/internal/client"
	"github.com/alphabot-ai/blogcli/internal/model"
	"github.com/alphabot-ai/blogcli/internal/session"
)

// Composer writes new posts. Bloggers only.
type Composer struct {
	api  API
	gate *session.Gate
}

func NewComposer(api API, gate *session.Gate) *Composer {
	return &Composer{api: api, gate: gate}
}

func (c *Composer) Open(ctx context.Context) (session.Identity, error) {
	if err := guard(ctx, c.gate); err != nil {
		return session.Identity{}, err
	}
	id, err := c.gate.RequireBlogger(ctx)
	if err != nil {
		return session.Identity{}, redirect(RouteHome, err)
	}
	return id, nil
}

// Submit publishes the post and returns home.
func (c *Composer) Submit(ctx context.Context, header, body string) (Route, error) {
	id, err := c.Open(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(header) == "" || strings.TrimSpace(body) == "" {
		return "", &UserError{Message: msgPostRequired}
	}
	if _, err := c.api.CreatePost(ctx, id.Token, header, body); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return "", redirect(RouteHome, err)
		}
		return "", err
	}
	return RouteHome, nil
}

// Editor updates a post the signed-in blogger owns.
type Editor struct {
	api  API
	gate *session.Gate

	mu   sync.Mutex
	post *model.Post
}

func NewEditor(api API, gate *session.Gate) *Editor {
	return &Editor{api: api, gate: gate}
}

// Open loads the post for editing. Non-bloggers, non-owners and posts that
// cannot be loaded send the user home.
func (e *Editor) Open(ctx context.Context, postID int64) (model.Post, error) {
	if err := guard(ctx, e.gate); err != nil {
		return model.Post{}, err
	}
	id, err := e.gate.RequireBlogger(ctx)
	if err != nil {
		return model.Post{}, redirect(RouteHome, err)
	}
	post, err := e.api.GetPost(ctx, postID)
	if err != nil {
		return model.Post{}, redirect(RouteHome, err)
	}
	if err := session.RequireOwner(id.Payload, post.UserID); err != nil {
		return model.Post{}, redirect(RouteHome, err)
	}

	e.mu.Lock()
	e.post = post
	e.mu.Unlock()
	return *post, nil
}

// Submit saves the new header and body, leaving either unchanged when blank,
// and returns the post's page. On failure the user stays on the editor.
func (e *Editor) Submit(ctx context.Context, header, body string) (Route, error) {
	e.mu.Lock()
	post := e.post
	e.mu.Unlock()
	if post == nil {
		return "", ErrClosed
	}

	if err := guard(ctx, e.gate); err != nil {
		return "", err
	}
	id, err := e.gate.RequireBlogger(ctx)
	if err != nil {
		return "", redirect(RouteHome, err)
	}
	if strings.TrimSpace(header) == "" {
		header = post.Header
	}
	if strings.TrimSpace(body) == "" {
		body = post.Body
	}
	if _, err := e.api.UpdatePost(ctx, id.Token, post.ID, header, body); err != nil {
		return "", &UserError{Message: msgUpdateFailed, Err: err}
	}
	return RoutePost(post.ID), nil
}
