package comments

import (
	"time"
)

// MaxTextLength is the maximum comment body length in graphemes
const MaxTextLength = 500

// Comment is a reply by a user to a post
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Text      string    `json:"text" db:"text"`
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	PostID    int64     `json:"postId" db:"post_id"`
}

// CreateCommentRequest represents input for commenting on a post
type CreateCommentRequest struct {
	Text   string `json:"text"`
	PostID int64  `json:"postId"`
}

// UpdateCommentRequest represents input for editing a comment
type UpdateCommentRequest struct {
	Text string `json:"text"`
}

// View is the public representation of a comment
type View struct {
	CreatedAt time.Time `json:"createdAt"`
	Text      string    `json:"text"`
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	PostID    int64     `json:"postId"`
}

// ToView converts a comment to its public representation
func ToView(c *Comment) View {
	return View{
		ID:        c.ID,
		UserID:    c.UserID,
		PostID:    c.PostID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

// ToViews converts a slice of comments
func ToViews(list []*Comment) []View {
	views := make([]View, 0, len(list))
	for _, c := range list {
		views = append(views, ToView(c))
	}
	return views
}
