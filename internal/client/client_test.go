package client

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alphabot-ai/blogcli/internal/mockapi"
	"github.com/alphabot-ai/blogcli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*mockapi.Server, *Client) {
	t.Helper()
	api := mockapi.NewServer("test-secret", time.Hour, nil)
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)
	return api, New(ts.URL + "/v1")
}

func TestAuthorizationHeaderIsRawToken(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := New(ts.URL)
	require.NoError(t, c.DeletePost(context.Background(), "abc.def.ghi", 7))
	assert.Equal(t, "abc.def.ghi", got)
}

func TestListParamsQuery(t *testing.T) {
	var query map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_ = json.NewEncoder(w).Encode(model.PostPage{Count: 0})
	}))
	defer ts.Close()

	_, err := New(ts.URL).ListPosts(context.Background(), ListParams{Page: 2, Limit: 10, Sort: "desc", UserID: 4})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, query["page"])
	assert.Equal(t, []string{"10"}, query["limit"])
	assert.Equal(t, []string{"desc"}, query["sort"])
	assert.Equal(t, []string{"4"}, query["user_id"])

	_, err = New(ts.URL).ListPosts(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestErrorMessageFromBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"Code":400,"Error":"bad","Message":"Header is required"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).CreatePost(context.Background(), "t", "", "body")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Header is required", apiErr.Message)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestErrorMessageRawBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := New(ts.URL).GetPost(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestNetworkError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = New("http://"+addr).GetPost(context.Background(), 1)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "get post", netErr.Op)
	assert.Equal(t, 0, StatusOf(err))
}

func TestSentinelMapping(t *testing.T) {
	api, c := newMock(t)
	ctx := context.Background()

	_, err := c.CreatePost(ctx, "", "h", "b")
	assert.True(t, errors.Is(err, ErrUnauthorized))

	owner, err := api.CreateUser("owner@example.com", "secret1", model.RoleBlogger)
	require.NoError(t, err)
	other, err := api.CreateUser("other@example.com", "secret1", model.RoleBlogger)
	require.NoError(t, err)
	postID := api.SeedPost(owner, "h", "b")

	otherToken, err := api.IssueToken(other, time.Hour)
	require.NoError(t, err)
	err = c.DeletePost(ctx, otherToken, postID)
	assert.True(t, errors.Is(err, ErrForbidden))

	_, err = c.GetPost(ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
}

func TestSignUpVerifyLogin(t *testing.T) {
	api, c := newMock(t)
	ctx := context.Background()

	require.NoError(t, c.SignUp(ctx, "new@example.com", "hunter22", model.RoleReader))
	code, ok := api.VerificationCode("new@example.com")
	require.True(t, ok)

	_, err := c.Verify(ctx, "new@example.com", "not-it")
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))

	tok, err := c.Verify(ctx, "new@example.com", code)
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	_, err = c.Verify(ctx, "nobody@example.com", "000000")
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	tok, err = c.Login(ctx, "new@example.com", "hunter22", true)
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	_, err = c.Login(ctx, "new@example.com", "wrong", false)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestPostCommentReplyRoundTrip(t *testing.T) {
	api, c := newMock(t)
	ctx := context.Background()

	uid, err := api.CreateUser("blogger@example.com", "secret1", model.RoleBlogger)
	require.NoError(t, err)
	tok, err := api.IssueToken(uid, time.Hour)
	require.NoError(t, err)

	post, err := c.CreatePost(ctx, tok, "Hello", "World")
	require.NoError(t, err)
	assert.Equal(t, uid, post.UserID)

	updated, err := c.UpdatePost(ctx, tok, post.ID, "Hello again", "World")
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Header)

	comment, err := c.CreateComment(ctx, tok, post.ID, "first")
	require.NoError(t, err)
	reply, err := c.CreateReply(ctx, tok, post.ID, comment.ID, "answer")
	require.NoError(t, err)
	assert.Equal(t, comment.ID, reply.CommentID)

	full, err := c.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, full.AllComments.Comments, 1)
	assert.Equal(t, int64(1), full.AllComments.Count)
	assert.Equal(t, int64(1), full.AllComments.Comments[0].AllReplies.Count)
	assert.Equal(t, "blogger", full.AllComments.Comments[0].UserInfo.Name)

	require.NoError(t, c.DeleteReply(ctx, tok, reply.ID))
	require.NoError(t, c.DeleteComment(ctx, tok, comment.ID))
	require.NoError(t, c.DeletePost(ctx, tok, post.ID))

	page, err := c.ListPosts(ctx, ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Count)
}
