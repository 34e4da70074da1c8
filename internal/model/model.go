package model

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleBlogger Role = "blogger"
	RoleReader  Role = "reader"
)

func (r Role) Valid() bool {
	return r == RoleBlogger || r == RoleReader
}

type UserInfo struct {
	Name string `json:"name"`
}

type Post struct {
	ID          int64       `json:"id"`
	Header      string      `json:"header"`
	Body        string      `json:"body"`
	UserID      int64       `json:"user_id"`
	UserInfo    *UserInfo   `json:"user_info"`
	CreatedAt   string      `json:"created_at"`
	AllComments CommentList `json:"all_comments"`
}

type CommentList struct {
	Count    int64     `json:"count"`
	Comments []Comment `json:"comments"`
}

type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	UserID     int64     `json:"user_id"`
	UserInfo   *UserInfo `json:"user_info"`
	Content    string    `json:"content"`
	CreatedAt  string    `json:"created_at"`
	AllReplies ReplyList `json:"all_replies"`
}

type ReplyList struct {
	Count   int64   `json:"count"`
	Replies []Reply `json:"replies"`
}

type Reply struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	CommentID int64     `json:"comment_id"`
	UserID    int64     `json:"user_id"`
	UserInfo  *UserInfo `json:"user_info"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
}

type PostPage struct {
	Posts []Post `json:"posts"`
	Count int64  `json:"count"`
}

// AuthorName returns the display name attached to a post, comment or reply,
// or "unknown" when the server omitted user_info.
func AuthorName(info *UserInfo) string {
	if info == nil || info.Name == "" {
		return "unknown"
	}
	return info.Name
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseTime parses the created_at strings the API emits.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}
