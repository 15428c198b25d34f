package reactions

import (
	"time"

	"Tether/internal/core/apperr"
)

// Kind is the type of a reaction
type Kind string

const (
	KindLike    Kind = "like"
	KindDislike Kind = "dislike"
	KindHeart   Kind = "heart"
	KindLaugh   Kind = "laugh"
	KindSad     Kind = "sad"
	KindAngry   Kind = "angry"
)

// Kinds lists every valid reaction kind
var Kinds = []Kind{KindLike, KindDislike, KindHeart, KindLaugh, KindSad, KindAngry}

// Validate reports whether k is one of Kinds
func (k Kind) Validate() error {
	for _, known := range Kinds {
		if k == known {
			return nil
		}
	}
	return apperr.NewValidationError("kind", "must be one of like, dislike, heart, laugh, sad, angry")
}

// Reaction is a user's reaction to a post.
// A user holds at most one reaction per post.
type Reaction struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Kind      Kind      `json:"kind" db:"kind"`
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	PostID    int64     `json:"postId" db:"post_id"`
}

// CreateReactionRequest represents input for reacting to a post
type CreateReactionRequest struct {
	Kind   Kind  `json:"kind"`
	PostID int64 `json:"postId"`
}

// UpdateReactionRequest represents input for changing a reaction's kind
type UpdateReactionRequest struct {
	Kind Kind `json:"kind"`
}

// View is the public representation of a reaction
type View struct {
	CreatedAt time.Time `json:"createdAt"`
	Kind      Kind      `json:"kind"`
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	PostID    int64     `json:"postId"`
}

// Summary is the per-kind tally of a post's reactions
type Summary struct {
	Counts map[Kind]int `json:"counts"`
	Total  int          `json:"total"`
}

// ToView converts a reaction to its public representation
func ToView(r *Reaction) View {
	return View{
		ID:        r.ID,
		UserID:    r.UserID,
		PostID:    r.PostID,
		Kind:      r.Kind,
		CreatedAt: r.CreatedAt,
	}
}

// ToViews converts a slice of reactions
func ToViews(list []*Reaction) []View {
	views := make([]View, 0, len(list))
	for _, r := range list {
		views = append(views, ToView(r))
	}
	return views
}

// Summarize tallies reactions by kind
func Summarize(list []*Reaction) Summary {
	summary := Summary{Counts: make(map[Kind]int, len(Kinds))}
	for _, r := range list {
		summary.Counts[r.Kind]++
		summary.Total++
	}
	return summary
}
