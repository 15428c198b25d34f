package posts

import (
	"time"
)

// MaxTextLength is the maximum post body length in graphemes
const MaxTextLength = 1000

// Post is a text entry owned by a user.
// Deleting a post removes its comments and reactions.
type Post struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Text      string    `json:"text" db:"text"`
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
}

// CreatePostRequest represents input for creating a new post
type CreatePostRequest struct {
	Text string `json:"text"`
}

// UpdatePostRequest represents input for editing a post body
type UpdatePostRequest struct {
	Text string `json:"text"`
}

// View is the public representation of a post
type View struct {
	CreatedAt time.Time `json:"createdAt"`
	Text      string    `json:"text"`
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
}

// ToView converts a post to its public representation
func ToView(p *Post) View {
	return View{
		ID:        p.ID,
		UserID:    p.UserID,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
	}
}

// ToViews converts a slice of posts
func ToViews(list []*Post) []View {
	views := make([]View, 0, len(list))
	for _, p := range list {
		views = append(views, ToView(p))
	}
	return views
}
