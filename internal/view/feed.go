package view

import (
	"context"
	"errors"

	"github.com/alphabot-ai/blogcli/internal/client"
	"github.com/alphabot-ai/blogcli/internal/model"
	"github.com/alphabot-ai/blogcli/internal/session"
)

const previewLength = 100

// ListPage is one page of post previews. Header and Body of each post are
// truncated for display.
type ListPage struct {
	Posts      []model.Post
	Page       int
	TotalPages int
	Count      int64
	HasNext    bool
	HasPrev    bool
}

// Feed lists every post, newest first. Anonymous visitors may browse it.
type Feed struct {
	api      API
	gate     *session.Gate
	pageSize int
}

func NewFeed(api API, gate *session.Gate, pageSize int) *Feed {
	return &Feed{api: api, gate: gate, pageSize: pageSize}
}

func (f *Feed) List(ctx context.Context, page int) (ListPage, error) {
	if err := guard(ctx, f.gate); err != nil {
		return ListPage{}, err
	}
	return listPosts(ctx, f.api, f.pageSize, page, 0)
}

// MyBlogs lists the signed-in blogger's own posts.
type MyBlogs struct {
	api      API
	gate     *session.Gate
	pageSize int
}

func NewMyBlogs(api API, gate *session.Gate, pageSize int) *MyBlogs {
	return &MyBlogs{api: api, gate: gate, pageSize: pageSize}
}

func (m *MyBlogs) List(ctx context.Context, page int) (ListPage, error) {
	id, err := m.gate.RequireBlogger(ctx)
	if err != nil {
		return ListPage{}, redirect(RouteHome, err)
	}
	out, err := listPosts(ctx, m.api, m.pageSize, page, id.Payload.UserID)
	if errors.Is(err, client.ErrUnauthorized) {
		return ListPage{}, redirect(RouteHome, err)
	}
	return out, err
}

func listPosts(ctx context.Context, api API, limit, page int, userID int64) (ListPage, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}

	res, err := api.ListPosts(ctx, client.ListParams{Page: page, Limit: limit, Sort: "desc", UserID: userID})
	if err != nil {
		return ListPage{}, err
	}

	totalPages := int((res.Count + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	out := ListPage{
		Posts:      make([]model.Post, 0, len(res.Posts)),
		Page:       page,
		TotalPages: totalPages,
		Count:      res.Count,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
	for _, p := range res.Posts {
		p.Header = truncate(p.Header, previewLength)
		p.Body = truncate(p.Body, previewLength)
		out.Posts = append(out.Posts, p)
	}
	return out, nil
}
