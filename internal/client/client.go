// Package client provides a Go client for the blog API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alphabot-ai/blogcli/internal/model"

	"go.uber.org/zap"
)

// Client is a blog API client. It holds no session state: authenticated
// calls take the raw token as an argument.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	log        *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a new blog API client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListParams selects a page of posts. Zero values are omitted from the query.
type ListParams struct {
	Page   int
	Limit  int
	Sort   string
	UserID int64
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.UserID != 0 {
		q.Set("user_id", strconv.FormatInt(p.UserID, 10))
	}
	return q
}

// ListPosts fetches one page of posts.
func (c *Client) ListPosts(ctx context.Context, params ListParams) (*model.PostPage, error) {
	path := "/posts"
	if q := params.query().Encode(); q != "" {
		path += "?" + q
	}
	var page model.PostPage
	if err := c.do(ctx, "list posts", http.MethodGet, path, "", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPost fetches a post with its comments and replies.
func (c *Client) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := c.do(ctx, "get post", http.MethodGet, fmt.Sprintf("/posts/%d", id), "", nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, token, header, body string) (*model.Post, error) {
	reqBody := map[string]string{"header": header, "body": body}
	var post model.Post
	if err := c.do(ctx, "create post", http.MethodPost, "/posts", token, reqBody, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost replaces a post's header and body.
func (c *Client) UpdatePost(ctx context.Context, token string, id int64, header, body string) (*model.Post, error) {
	reqBody := map[string]string{"header": header, "body": body}
	var post model.Post
	if err := c.do(ctx, "update post", http.MethodPut, fmt.Sprintf("/posts/%d", id), token, reqBody, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost deletes a post you own.
func (c *Client) DeletePost(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "delete post", http.MethodDelete, fmt.Sprintf("/posts/%d", id), token, nil, nil)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (string, error) {
	reqBody := map[string]any{
		"email":       email,
		"password":    password,
		"remember_me": rememberMe,
	}
	var result tokenResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", reqBody, &result); err != nil {
		return "", err
	}
	return result.AccessToken, nil
}

// SignUp registers an account. The server emails a verification code.
func (c *Client) SignUp(ctx context.Context, email, password string, role model.Role) error {
	reqBody := map[string]string{
		"email":    email,
		"password": password,
		"role":     string(role),
	}
	return c.do(ctx, "signup", http.MethodPost, "/auth/signup", "", reqBody, nil)
}

// Verify confirms the emailed code and returns an access token.
func (c *Client) Verify(ctx context.Context, email, code string) (string, error) {
	reqBody := map[string]string{"email": email, "code": code}
	var result tokenResponse
	if err := c.do(ctx, "verify", http.MethodPost, "/auth/verify", "", reqBody, &result); err != nil {
		return "", err
	}
	return result.AccessToken, nil
}

// CreateComment comments on a post.
func (c *Client) CreateComment(ctx context.Context, token string, postID int64, content string) (*model.Comment, error) {
	reqBody := map[string]any{"content": content, "post_id": postID}
	var comment model.Comment
	if err := c.do(ctx, "create comment", http.MethodPost, "/comments", token, reqBody, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment deletes a comment you own.
func (c *Client) DeleteComment(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "delete comment", http.MethodDelete, fmt.Sprintf("/comments/%d", id), token, nil, nil)
}

// CreateReply replies to a comment.
func (c *Client) CreateReply(ctx context.Context, token string, postID, commentID int64, content string) (*model.Reply, error) {
	reqBody := map[string]any{
		"content":    content,
		"comment_id": commentID,
		"post_id":    postID,
	}
	var reply model.Reply
	if err := c.do(ctx, "create reply", http.MethodPost, "/replies", token, reqBody, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// DeleteReply deletes a reply you own.
func (c *Client) DeleteReply(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "delete reply", http.MethodDelete, fmt.Sprintf("/replies/%d", id), token, nil, nil)
}

// do performs a request and decodes a 2xx JSON body into out when out is
// non-nil. The token, when set, goes into Authorization as-is.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("request",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{Op: op, Status: resp.StatusCode, Message: errorMessage(respBody)}
		c.log.Warn("api error", zap.String("op", op), zap.Int("status", resp.StatusCode), zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// errorMessage pulls message (or error) out of a JSON error body. Field
// matching is case-insensitive, so {"Message": ...} bodies work too.
func errorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(string(body))
}
