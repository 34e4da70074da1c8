// Package mockapi is an in-memory stand-in for the blog API. It backs the
// client and view tests and the blogmock command for local development.
package mockapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabot-ai/blogcli/internal/model"
	"github.com/alphabot-ai/blogcli/internal/rate"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	ID           int64
	Email        string
	Name         string
	Role         model.Role
	PasswordHash []byte
}

type pendingUser struct {
	user
	Code string
}

type post struct {
	ID        int64
	Header    string
	Body      string
	UserID    int64
	CreatedAt time.Time
}

type comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

type reply struct {
	ID        int64
	PostID    int64
	CommentID int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

type Server struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	log      *zap.Logger
	limiter  rate.Limiter

	mu       sync.Mutex
	nextID   int64
	users    map[int64]*user
	byEmail  map[string]*user
	pending  map[string]*pendingUser
	posts    map[int64]*post
	comments map[int64]*comment
	replies  map[int64]*reply
}

type Option func(*Server)

// WithAuthLimiter throttles the /auth endpoints per client address.
func WithAuthLimiter(l rate.Limiter) Option {
	return func(s *Server) { s.limiter = l }
}

// WithClock replaces time.Now for token issuance and validation.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func NewServer(secret string, tokenTTL time.Duration, log *zap.Logger, opts ...Option) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
		log:      log,
		limiter:  rate.NewWindow(0, time.Minute, nil),
		users:    make(map[int64]*user),
		byEmail:  make(map[string]*user),
		pending:  make(map[string]*pendingUser),
		posts:    make(map[int64]*post),
		comments: make(map[int64]*comment),
		replies:  make(map[int64]*reply),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1")
	segments := splitPath(path)
	s.log.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))

	switch {
	case len(segments) == 1 && segments[0] == "posts":
		if r.Method == http.MethodGet {
			s.handleListPosts(w, r)
			return
		}
		if r.Method == http.MethodPost {
			s.handleCreatePost(w, r)
			return
		}
	case len(segments) == 2 && segments[0] == "posts":
		switch r.Method {
		case http.MethodGet:
			s.handleGetPost(w, r, segments[1])
			return
		case http.MethodPut:
			s.handleUpdatePost(w, r, segments[1])
			return
		case http.MethodDelete:
			s.handleDeletePost(w, r, segments[1])
			return
		}
	case len(segments) == 2 && segments[0] == "auth":
		if !s.allow(w, r) {
			return
		}
		if r.Method == http.MethodPost {
			switch segments[1] {
			case "login":
				s.handleLogin(w, r)
				return
			case "signup":
				s.handleSignUp(w, r)
				return
			case "verify":
				s.handleVerify(w, r)
				return
			}
		}
	case len(segments) == 1 && segments[0] == "comments":
		if r.Method == http.MethodPost {
			s.handleCreateComment(w, r)
			return
		}
	case len(segments) == 2 && segments[0] == "comments":
		if r.Method == http.MethodDelete {
			s.handleDeleteComment(w, r, segments[1])
			return
		}
	case len(segments) == 1 && segments[0] == "replies":
		if r.Method == http.MethodPost {
			s.handleCreateReply(w, r)
			return
		}
	case len(segments) == 2 && segments[0] == "replies":
		if r.Method == http.MethodDelete {
			s.handleDeleteReply(w, r, segments[1])
			return
		}
	default:
		notFound(w)
		return
	}
	methodNotAllowed(w)
}

// CreateUser registers an already-verified user and returns its id.
func (s *Server) CreateUser(email, password string, role model.Role) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; ok {
		return 0, errors.New("email already registered")
	}
	u := &user{Email: email, Name: nameFromEmail(email), Role: role, PasswordHash: hash}
	s.addUserLocked(u)
	return u.ID, nil
}

// IssueToken signs a token for an existing user.
func (s *Server) IssueToken(userID int64, ttl time.Duration) (string, error) {
	s.mu.Lock()
	u, ok := s.users[userID]
	s.mu.Unlock()
	if !ok {
		return "", errors.New("unknown user")
	}
	return s.issueToken(u, ttl)
}

// VerificationCode returns the pending signup code for email, if any.
func (s *Server) VerificationCode(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[email]
	if !ok {
		return "", false
	}
	return p.Code, true
}

// SeedPost stores a post directly, bypassing auth.
func (s *Server) SeedPost(userID int64, header, body string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &post{ID: s.id(), Header: header, Body: body, UserID: userID, CreatedAt: s.now()}
	s.posts[p.ID] = p
	return p.ID
}

// SeedComment stores a comment directly, bypassing auth.
func (s *Server) SeedComment(userID, postID int64, content string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &comment{ID: s.id(), PostID: postID, UserID: userID, Content: content, CreatedAt: s.now()}
	s.comments[c.ID] = c
	return c.ID
}

// SeedReply stores a reply directly, bypassing auth.
func (s *Server) SeedReply(userID, postID, commentID int64, content string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rp := &reply{ID: s.id(), PostID: postID, CommentID: commentID, UserID: userID, Content: content, CreatedAt: s.now()}
	s.replies[rp.ID] = rp
	return rp.ID
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseIntDefault(q.Get("page"), 1)
	limit := parseIntDefault(q.Get("limit"), 10)
	userID := parseInt64Default(q.Get("user_id"), 0)
	if page < 1 || limit < 1 {
		writeError(w, http.StatusBadRequest, errors.New("page and limit must be positive"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*post
	for _, p := range s.posts {
		if userID != 0 && p.UserID != userID {
			continue
		}
		matched = append(matched, p)
	}
	asc := strings.EqualFold(q.Get("sort"), "asc")
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			if asc {
				return matched[i].ID < matched[j].ID
			}
			return matched[i].ID > matched[j].ID
		}
		if asc {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	out := model.PostPage{Posts: []model.Post{}, Count: int64(len(matched))}
	for _, p := range pageOf(matched, page, limit) {
		out.Posts = append(out.Posts, s.postJSONLocked(p, false))
	}
	writeJSON(w, http.StatusOK, out)
}

// pageOf returns the page'th window of limit items. Pages past the end are
// empty, however large page is.
func pageOf(items []*post, page, limit int) []*post {
	n := len(items)
	if page-1 > n/limit {
		return nil
	}
	start := min((page-1)*limit, n)
	return items[start : start+min(limit, n-start)]
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid post id"))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("post not found"))
		return
	}
	writeJSON(w, http.StatusOK, s.postJSONLocked(p, true))
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	if u.Role != model.RoleBlogger {
		writeError(w, http.StatusForbidden, errors.New("only bloggers can create posts"))
		return
	}
	var req struct {
		Header string `json:"header"`
		Body   string `json:"body"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Header) == "" || strings.TrimSpace(req.Body) == "" {
		writeError(w, http.StatusBadRequest, errors.New("header and body required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := &post{ID: s.id(), Header: req.Header, Body: req.Body, UserID: u.ID, CreatedAt: s.now()}
	s.posts[p.ID] = p
	writeJSON(w, http.StatusCreated, s.postJSONLocked(p, false))
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request, idStr string) {
	u, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid post id"))
		return
	}
	var req struct {
		Header string `json:"header"`
		Body   string `json:"body"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("post not found"))
		return
	}
	if p.UserID != u.ID {
		writeError(w, http.StatusForbidden, errors.New("you can only update your own posts"))
		return
	}
	if strings.TrimSpace(req.Header) != "" {
		p.Header = req.Header
	}
	if strings.TrimSpace(req.Body) != "" {
		p.Body = req.Body
	}
	writeJSON(w, http.StatusOK, s.postJSONLocked(p, false))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, idStr string) {
	u, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid post id"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("post not found"))
		return
	}
	if p.UserID != u.ID {
		writeError(w, http.StatusForbidden, errors.New("you can only delete your own posts"))
		return
	}
	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	for rid, rp := range s.replies {
		if rp.PostID == id {
			delete(s.replies, rid)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"code": http.StatusOK, "message": "post deleted"})
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, errors.New("invalid email"))
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, errors.New("password must be at least 6 characters"))
		return
	}
	if !model.Role(req.Role).Valid() {
		writeError(w, http.StatusBadRequest, errors.New("role must be blogger or reader"))
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	code, err := verificationCode()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[req.Email]; ok {
		writeError(w, http.StatusBadRequest, errors.New("email already registered"))
		return
	}
	s.pending[req.Email] = &pendingUser{
		user: user{Email: req.Email, Name: nameFromEmail(req.Email), Role: model.Role(req.Role), PasswordHash: hash},
		Code: code,
	}
	s.log.Info("verification code issued", zap.String("email", req.Email), zap.String("code", code))
	writeJSON(w, http.StatusOK, map[string]any{"code": http.StatusOK, "message": "verification code sent"})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	s.mu.Lock()
	p, ok := s.pending[req.Email]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, errors.New("user not found"))
		return
	}
	if p.Code != strings.TrimSpace(req.Code) {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, errors.New("invalid verification code"))
		return
	}
	delete(s.pending, req.Email)
	u := p.user
	s.addUserLocked(&u)
	s.mu.Unlock()

	tok, err := s.issueToken(&u, s.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": tok})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"remember_me"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	s.mu.Lock()
	u, ok := s.byEmail[email]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusBadRequest, errors.New("incorrect email or password"))
		return
	}

	ttl := s.tokenTTL
	if req.RememberMe {
		ttl *= 7
	}
	tok, err := s.issueToken(u, ttl)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": tok})
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
		PostID  int64  `json:"post_id"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.PostID == 0 || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, errors.New("post_id and content required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[req.PostID]; !ok {
		writeError(w, http.StatusNotFound, errors.New("post not found"))
		return
	}
	c := &comment{ID: s.id(), PostID: req.PostID, UserID: u.ID, Content: strings.TrimSpace(req.Content), CreatedAt: s.now()}
	s.comments[c.ID] = c
	writeJSON(w, http.StatusCreated, s.commentJSONLocked(c, false))
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request, idStr string) {
	u, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid comment id"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("comment not found"))
		return
	}
	if c.UserID != u.ID {
		writeError(w, http.StatusForbidden, errors.New("you can only delete your own comments"))
		return
	}
	delete(s.comments, id)
	for rid, rp := range s.replies {
		if rp.CommentID == id {
			delete(s.replies, rid)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"code": http.StatusOK, "message": "comment deleted"})
}

func (s *Server) handleCreateReply(w http.ResponseWriter, r *http.Request) {
	u, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	var req struct {
		Content   string `json:"content"`
		CommentID int64  `json:"comment_id"`
		PostID    int64  `json:"post_id"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.CommentID == 0 || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, errors.New("comment_id and content required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[req.CommentID]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("comment not found"))
		return
	}
	if req.PostID != 0 && req.PostID != c.PostID {
		writeError(w, http.StatusBadRequest, errors.New("comment does not belong to post"))
		return
	}
	rp := &reply{ID: s.id(), PostID: c.PostID, CommentID: c.ID, UserID: u.ID, Content: strings.TrimSpace(req.Content), CreatedAt: s.now()}
	s.replies[rp.ID] = rp
	writeJSON(w, http.StatusCreated, s.replyJSONLocked(rp))
}

func (s *Server) handleDeleteReply(w http.ResponseWriter, r *http.Request, idStr string) {
	u, ok := s.requireAuth(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid reply id"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rp, ok := s.replies[id]
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("reply not found"))
		return
	}
	if rp.UserID != u.ID {
		writeError(w, http.StatusForbidden, errors.New("you can only delete your own replies"))
		return
	}
	delete(s.replies, id)
	writeJSON(w, http.StatusOK, map[string]any{"code": http.StatusOK, "message": "reply deleted"})
}

func (s *Server) allow(w http.ResponseWriter, r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	ok, retry := s.limiter.Allow(host)
	if ok {
		return true
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds()+0.5)))
	writeError(w, http.StatusTooManyRequests, errors.New("too many attempts, slow down"))
	return false
}

// requireAuth reads the raw token from Authorization. A "Bearer " prefix is
// tolerated.
func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request) (*user, bool) {
	raw := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if raw == "" {
		writeError(w, http.StatusUnauthorized, errors.New("missing authorization token"))
		return nil, false
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		writeError(w, http.StatusUnauthorized, fmt.Errorf("invalid token: %w", err))
		return nil, false
	}
	idf, _ := claims["user_id"].(float64)

	s.mu.Lock()
	u, ok := s.users[int64(idf)]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusUnauthorized, errors.New("unknown user"))
		return nil, false
	}
	return u, true
}

func (s *Server) issueToken(u *user, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"jti":     uuid.NewString(),
		"user_id": u.ID,
		"role":    string(u.Role),
		"name":    u.Name,
		"email":   u.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) addUserLocked(u *user) {
	u.ID = s.id()
	s.users[u.ID] = u
	s.byEmail[u.Email] = u
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) userInfoLocked(userID int64) *model.UserInfo {
	if u, ok := s.users[userID]; ok {
		return &model.UserInfo{Name: u.Name}
	}
	return &model.UserInfo{Name: "deleted"}
}

func (s *Server) postJSONLocked(p *post, withComments bool) model.Post {
	out := model.Post{
		ID:        p.ID,
		Header:    p.Header,
		Body:      p.Body,
		UserID:    p.UserID,
		UserInfo:  s.userInfoLocked(p.UserID),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	if !withComments {
		return out
	}
	var cs []*comment
	for _, c := range s.comments {
		if c.PostID == p.ID {
			cs = append(cs, c)
		}
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
	out.AllComments = model.CommentList{Count: int64(len(cs)), Comments: []model.Comment{}}
	for _, c := range cs {
		out.AllComments.Comments = append(out.AllComments.Comments, s.commentJSONLocked(c, true))
	}
	return out
}

func (s *Server) commentJSONLocked(c *comment, withReplies bool) model.Comment {
	out := model.Comment{
		ID:         c.ID,
		PostID:     c.PostID,
		UserID:     c.UserID,
		UserInfo:   s.userInfoLocked(c.UserID),
		Content:    c.Content,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
		AllReplies: model.ReplyList{Replies: []model.Reply{}},
	}
	if !withReplies {
		return out
	}
	var rs []*reply
	for _, rp := range s.replies {
		if rp.CommentID == c.ID {
			rs = append(rs, rp)
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
	for _, rp := range rs {
		out.AllReplies.Replies = append(out.AllReplies.Replies, s.replyJSONLocked(rp))
	}
	out.AllReplies.Count = int64(len(rs))
	return out
}

func (s *Server) replyJSONLocked(rp *reply) model.Reply {
	return model.Reply{
		ID:        rp.ID,
		PostID:    rp.PostID,
		CommentID: rp.CommentID,
		UserID:    rp.UserID,
		UserInfo:  s.userInfoLocked(rp.UserID),
		Content:   rp.Content,
		CreatedAt: rp.CreatedAt.Format(time.RFC3339),
	}
}

func verificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func nameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

func readJSON(body io.ReadCloser, dest any) error {
	defer body.Close()
	dec := json.NewDecoder(io.LimitReader(body, 1<<20))
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"code": status, "message": err.Error()})
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, errors.New("not found"))
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func parseIntDefault(value string, def int) int {
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

func parseInt64Default(value string, def int64) int64 {
	if value == "" {
		return def
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
