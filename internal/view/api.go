// Package view holds the controllers behind each page of the client. Views
// return data for the caller to render, the next Route after a successful
// action, or a *Redirect error when the page cannot be shown.
package view

import (
	"context"

	"github.com/alphabot-ai/blogcli/internal/client"
	"github.com/alphabot-ai/blogcli/internal/model"
)

// API is the part of the blog API the views use. *client.Client implements it.
type API interface {
	ListPosts(ctx context.Context, params client.ListParams) (*model.PostPage, error)
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	CreatePost(ctx context.Context, token, header, body string) (*model.Post, error)
	UpdatePost(ctx context.Context, token string, id int64, header, body string) (*model.Post, error)
	DeletePost(ctx context.Context, token string, id int64) error

	Login(ctx context.Context, email, password string, rememberMe bool) (string, error)
	SignUp(ctx context.Context, email, password string, role model.Role) error
	Verify(ctx context.Context, email, code string) (string, error)

	CreateComment(ctx context.Context, token string, postID int64, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, token string, id int64) error
	CreateReply(ctx context.Context, token string, postID, commentID int64, content string) (*model.Reply, error)
	DeleteReply(ctx context.Context, token string, id int64) error
}

var _ API = (*client.Client)(nil)
