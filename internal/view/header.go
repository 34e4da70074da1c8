package view

import (
	"context"

	"github.com/alphabot-ai/blogcli/internal/model"
	"github.com/alphabot-ai/blogcli/internal/session"
)

type Link struct {
	Label string
	To    Route
}

type HeaderInfo struct {
	SignedIn bool
	Name     string
	Role     model.Role
	Links    []Link
}

type HeaderView struct {
	gate *session.Gate
}

func NewHeaderView(gate *session.Gate) *HeaderView {
	return &HeaderView{gate: gate}
}

// Header reports who is signed in and which links they get.
func (v *HeaderView) Header(ctx context.Context) HeaderInfo {
	id, ok := v.gate.Optional(ctx)
	if !ok {
		return HeaderInfo{Links: []Link{
			{Label: "Sign Up", To: RouteSignUp},
			{Label: "Sign In", To: RouteSignIn},
		}}
	}

	info := HeaderInfo{SignedIn: true, Name: id.Payload.Name, Role: id.Payload.Role}
	if id.Payload.IsBlogger() {
		info.Links = append(info.Links,
			Link{Label: "My Blogs", To: RouteMyBlogs},
			Link{Label: "Add Blog", To: RouteAddBlog},
		)
	}
	info.Links = append(info.Links, Link{Label: "Sign Out", To: RouteSignIn})
	return info
}

// SignOut clears the token from both areas.
func (v *HeaderView) SignOut(ctx context.Context) (Route, error) {
	if err := v.gate.Provider().Clear(ctx); err != nil {
		return "", err
	}
	return RouteSignIn, nil
}
