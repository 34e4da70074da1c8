// Package tree derives the next post snapshot after a comment or reply was
// created or deleted on the server, without refetching the post.
//
// Every function returns a new Post and leaves its argument untouched. The
// bool result reports whether anything changed; when it is false the
// returned post is the input.
package tree

import "github.com/alphabot-ai/blogcli/internal/model"

// DeleteComment drops the comment and its replies, decrementing the post's count.
func DeleteComment(p model.Post, commentID int64) (model.Post, bool) {
	idx := commentIndex(p.AllComments.Comments, commentID)
	if idx < 0 {
		return p, false
	}

	comments := make([]model.Comment, 0, len(p.AllComments.Comments)-1)
	comments = append(comments, p.AllComments.Comments[:idx]...)
	comments = append(comments, p.AllComments.Comments[idx+1:]...)

	next := p
	next.AllComments = model.CommentList{
		Count:    decrement(p.AllComments.Count),
		Comments: comments,
	}
	return next, true
}

// DeleteReply drops the reply from whichever comment holds it.
func DeleteReply(p model.Post, replyID int64) (model.Post, bool) {
	for ci, c := range p.AllComments.Comments {
		ri := replyIndex(c.AllReplies.Replies, replyID)
		if ri < 0 {
			continue
		}

		replies := make([]model.Reply, 0, len(c.AllReplies.Replies)-1)
		replies = append(replies, c.AllReplies.Replies[:ri]...)
		replies = append(replies, c.AllReplies.Replies[ri+1:]...)

		c.AllReplies = model.ReplyList{
			Count:   decrement(c.AllReplies.Count),
			Replies: replies,
		}
		return withComment(p, ci, c), true
	}
	return p, false
}

// AppendReply adds reply to the end of the comment's replies.
func AppendReply(p model.Post, commentID int64, reply model.Reply) (model.Post, bool) {
	ci := commentIndex(p.AllComments.Comments, commentID)
	if ci < 0 {
		return p, false
	}

	c := p.AllComments.Comments[ci]
	replies := make([]model.Reply, 0, len(c.AllReplies.Replies)+1)
	replies = append(replies, c.AllReplies.Replies...)
	replies = append(replies, reply)

	c.AllReplies = model.ReplyList{
		Count:   c.AllReplies.Count + 1,
		Replies: replies,
	}
	return withComment(p, ci, c), true
}

// AppendComment adds a freshly created comment with an empty reply list.
func AppendComment(p model.Post, comment model.Comment) (model.Post, bool) {
	if commentIndex(p.AllComments.Comments, comment.ID) >= 0 {
		return p, false
	}

	comment.AllReplies = model.ReplyList{Count: 0, Replies: []model.Reply{}}

	comments := make([]model.Comment, 0, len(p.AllComments.Comments)+1)
	comments = append(comments, p.AllComments.Comments...)
	comments = append(comments, comment)

	next := p
	next.AllComments = model.CommentList{
		Count:    p.AllComments.Count + 1,
		Comments: comments,
	}
	return next, true
}

// withComment copies the comment slice and swaps in c at index i.
func withComment(p model.Post, i int, c model.Comment) model.Post {
	comments := make([]model.Comment, len(p.AllComments.Comments))
	copy(comments, p.AllComments.Comments)
	comments[i] = c

	next := p
	next.AllComments = model.CommentList{
		Count:    p.AllComments.Count,
		Comments: comments,
	}
	return next
}

func commentIndex(comments []model.Comment, id int64) int {
	for i := range comments {
		if comments[i].ID == id {
			return i
		}
	}
	return -1
}

func replyIndex(replies []model.Reply, id int64) int {
	for i := range replies {
		if replies[i].ID == id {
			return i
		}
	}
	return -1
}

func decrement(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return n - 1
}
