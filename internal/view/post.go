package view

import (
	"context"
	"strings"
	"sync"

	"github.com/alphabot-ai/blogcli/internal/model"
	"github.com/alphabot-ai/blogcli/internal/session"
	"github.com/alphabot-ai/blogcli/internal/tree"
)

// PostView shows one post with its comments and replies. The snapshot is
// replaced only through tree transitions after a remote call succeeds, and
// never after Close.
type PostView struct {
	api  API
	gate *session.Gate

	mu       sync.Mutex
	live     bool
	post     model.Post
	identity session.Identity
	signedIn bool
}

func NewPostView(api API, gate *session.Gate) *PostView {
	return &PostView{api: api, gate: gate}
}

// Open fetches the post and the optional identity used for ownership hints.
func (v *PostView) Open(ctx context.Context, id int64) (model.Post, error) {
	post, err := v.api.GetPost(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	identity, signedIn := v.gate.Optional(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.live = true
	v.post = *post
	v.identity = identity
	v.signedIn = signedIn
	return v.post, nil
}

// Close unmounts the view. Calls still in flight finish remotely but their
// results are dropped.
func (v *PostView) Close() {
	v.mu.Lock()
	v.live = false
	v.mu.Unlock()
}

func (v *PostView) Post() model.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.post
}

func (v *PostView) CanManagePost() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.owns(v.post.UserID)
}

func (v *PostView) CanDeleteComment(c model.Comment) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.owns(c.UserID)
}

func (v *PostView) CanDeleteReply(r model.Reply) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.owns(r.UserID)
}

func (v *PostView) owns(userID int64) bool {
	return v.signedIn && session.RequireOwner(v.identity.Payload, userID) == nil
}

// AddComment posts a comment and appends it locally. Blank content does
// nothing.
func (v *PostView) AddComment(ctx context.Context, content string) (model.Post, error) {
	content = strings.TrimSpace(content)
	postID, live := v.current()
	if !live {
		return model.Post{}, ErrClosed
	}
	if content == "" {
		return v.Post(), nil
	}
	id, err := v.gate.Current(ctx)
	if err != nil {
		return v.Post(), &UserError{Message: msgCommentSignIn, Err: ErrSignInRequired}
	}

	comment, err := v.api.CreateComment(ctx, id.Token, postID, content)
	if err != nil {
		return model.Post{}, redirect(RouteHome, err)
	}
	if comment.UserInfo == nil {
		comment.UserInfo = &model.UserInfo{Name: id.Payload.Name}
	}
	return v.apply(func(p model.Post) (model.Post, bool) {
		return tree.AppendComment(p, *comment)
	})
}

// Reply posts a reply to commentID and appends it locally.
func (v *PostView) Reply(ctx context.Context, commentID int64, content string) (model.Post, error) {
	content = strings.TrimSpace(content)
	postID, live := v.current()
	if !live {
		return model.Post{}, ErrClosed
	}
	if content == "" {
		return v.Post(), nil
	}
	id, err := v.gate.Current(ctx)
	if err != nil {
		return v.Post(), &UserError{Message: msgReplySignIn, Err: ErrSignInRequired}
	}

	reply, err := v.api.CreateReply(ctx, id.Token, postID, commentID, content)
	if err != nil {
		return model.Post{}, redirect(RouteHome, err)
	}
	if reply.UserInfo == nil {
		reply.UserInfo = &model.UserInfo{Name: id.Payload.Name}
	}
	return v.apply(func(p model.Post) (model.Post, bool) {
		return tree.AppendReply(p, commentID, *reply)
	})
}

func (v *PostView) DeleteComment(ctx context.Context, commentID int64) (model.Post, error) {
	if _, live := v.current(); !live {
		return model.Post{}, ErrClosed
	}
	id, err := v.gate.Current(ctx)
	if err != nil {
		return model.Post{}, redirect(RouteHome, err)
	}
	if err := v.api.DeleteComment(ctx, id.Token, commentID); err != nil {
		return model.Post{}, redirect(RouteHome, err)
	}
	return v.apply(func(p model.Post) (model.Post, bool) {
		return tree.DeleteComment(p, commentID)
	})
}

func (v *PostView) DeleteReply(ctx context.Context, replyID int64) (model.Post, error) {
	if _, live := v.current(); !live {
		return model.Post{}, ErrClosed
	}
	id, err := v.gate.Current(ctx)
	if err != nil {
		return model.Post{}, redirect(RouteHome, err)
	}
	if err := v.api.DeleteReply(ctx, id.Token, replyID); err != nil {
		return model.Post{}, redirect(RouteHome, err)
	}
	return v.apply(func(p model.Post) (model.Post, bool) {
		return tree.DeleteReply(p, replyID)
	})
}

// DeletePost deletes the open post and sends the user home.
func (v *PostView) DeletePost(ctx context.Context) (Route, error) {
	postID, live := v.current()
	if !live {
		return "", ErrClosed
	}
	id, err := v.gate.Current(ctx)
	if err != nil {
		return "", redirect(RouteHome, err)
	}
	if err := v.api.DeletePost(ctx, id.Token, postID); err != nil {
		return "", redirect(RouteHome, err)
	}
	v.Close()
	return RouteHome, nil
}

func (v *PostView) current() (int64, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.post.ID, v.live
}

// apply runs a tree transition against the latest snapshot, unless the view
// was closed while the remote call was in flight.
func (v *PostView) apply(transition func(model.Post) (model.Post, bool)) (model.Post, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.live {
		return model.Post{}, ErrClosed
	}
	if next, ok := transition(v.post); ok {
		v.post = next
	}
	return v.post, nil
}
