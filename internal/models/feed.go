package models

import "time"

// Feed item discriminants.
const (
	FeedItemPost          = "post"
	FeedItemLectureReview = "lecture-review"
)

// FeedItem wraps either a post or a lecture review in the merged feed.
type FeedItem struct {
	Type          string               `json:"type"`
	CreatedAt     time.Time            `json:"created_at"`
	Post          *PostDetail          `json:"post,omitempty"`
	LectureReview *LectureReviewDetail `json:"lecture_review,omitempty"`
}

// ID returns the identifier of the wrapped entry, used as a stable
// tie-break when items share a timestamp.
func (f FeedItem) ID() string {
	switch {
	case f.Post != nil:
		return f.Post.ID
	case f.LectureReview != nil:
		return f.LectureReview.ID
	default:
		return ""
	}
}
