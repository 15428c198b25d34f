package interactions

import (
	"time"

	"Tether/internal/core/apperr"
)

// Status describes the relationship between the two users of an interaction
type Status string

const (
	StatusFriend     Status = "friend"
	StatusSubscriber Status = "subscriber"
	StatusBlocked    Status = "blocked"
)

// Validate reports whether s is a known status
func (s Status) Validate() error {
	switch s {
	case StatusFriend, StatusSubscriber, StatusBlocked:
		return nil
	}
	return apperr.NewValidationError("status", "must be one of friend, subscriber, blocked")
}

// Interaction is a relationship between an unordered pair of users.
// (User1ID, User2ID) and (User2ID, User1ID) name the same pair.
// User1ID is the user who set the current status.
type Interaction struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Status    Status    `json:"status" db:"status"`
	ID        int64     `json:"id" db:"id"`
	User1ID   int64     `json:"user1Id" db:"user1_id"`
	User2ID   int64     `json:"user2Id" db:"user2_id"`
}

// Involves reports whether userID is either side of the pair
func (i *Interaction) Involves(userID int64) bool {
	return userID != 0 && (i.User1ID == userID || i.User2ID == userID)
}

// CanChange reports whether userID may change or remove the interaction.
// Either participant may change a friend or subscriber relation; a block
// can only be lifted by the user who set it, recorded as User1ID.
func (i *Interaction) CanChange(userID int64) bool {
	if i.Status == StatusBlocked {
		return userID != 0 && i.User1ID == userID
	}
	return i.Involves(userID)
}

// Connects reports whether the interaction is between a and b, in either order
func (i *Interaction) Connects(a, b int64) bool {
	return (i.User1ID == a && i.User2ID == b) || (i.User1ID == b && i.User2ID == a)
}

// CreateInteractionRequest represents input for relating two users.
// User1ID defaults to the caller when zero.
type CreateInteractionRequest struct {
	Status  Status `json:"status"`
	User1ID int64  `json:"user1Id,omitempty"`
	User2ID int64  `json:"user2Id"`
}

// UpdateStatusRequest represents input for changing an interaction's status
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// View is the public representation of an interaction
type View struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Status    Status    `json:"status"`
	ID        int64     `json:"id"`
	User1ID   int64     `json:"user1Id"`
	User2ID   int64     `json:"user2Id"`
}

func ToView(i *Interaction) View {
	return View{
		ID:        i.ID,
		User1ID:   i.User1ID,
		User2ID:   i.User2ID,
		Status:    i.Status,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func ToViews(list []*Interaction) []View {
	views := make([]View, 0, len(list))
	for _, i := range list {
		views = append(views, ToView(i))
	}
	return views
}
