package models

import (
	"time"

	"github.com/lib/pq"
)

// Post is a social micro-post authored by a user.
type Post struct {
	ID        string    `db:"id" json:"id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PostDetail joins a post with author fields and engagement counters.
type PostDetail struct {
	Post
	AuthorName  string         `db:"author_name" json:"author_name"`
	AuthorEmail string         `db:"author_email" json:"author_email"`
	LikeCount   int            `db:"like_count" json:"like_count"`
	ReplyCount  int            `db:"reply_count" json:"reply_count"`
	LikedBy     pq.StringArray `db:"liked_by" json:"liked_by"`
}

// Reply is a threaded comment on a post.
type Reply struct {
	ID        string    `db:"id" json:"id"`
	PostID    string    `db:"post_id" json:"post_id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ReplyDetail joins a reply with author display fields.
type ReplyDetail struct {
	Reply
	AuthorName  string `db:"author_name" json:"author_name"`
	AuthorEmail string `db:"author_email" json:"author_email"`
}

// PostLike marks a per-user approval on a post. At most one row exists
// per (post, user) pair.
type PostLike struct {
	ID        string    `db:"id" json:"id"`
	PostID    string    `db:"post_id" json:"post_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
