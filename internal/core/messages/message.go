package messages

import "time"

// MaxTextLength is the maximum message length in characters
const MaxTextLength = 2000

// Message is a direct message from one user to another
type Message struct {
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	Text       string    `json:"text" db:"text"`
	ID         int64     `json:"id" db:"id"`
	SenderID   int64     `json:"senderId" db:"sender_id"`
	ReceiverID int64     `json:"receiverId" db:"receiver_id"`
}

// Involves reports whether userID sent or received the message
func (m *Message) Involves(userID int64) bool {
	return userID != 0 && (m.SenderID == userID || m.ReceiverID == userID)
}

// SendMessageRequest represents input for sending a message
type SendMessageRequest struct {
	Text       string `json:"text"`
	ReceiverID int64  `json:"receiverId"`
}

// EditMessageRequest represents input for editing a sent message
type EditMessageRequest struct {
	Text string `json:"text"`
}

// View is the public representation of a message
type View struct {
	CreatedAt  time.Time `json:"createdAt"`
	Text       string    `json:"text"`
	ID         int64     `json:"id"`
	SenderID   int64     `json:"senderId"`
	ReceiverID int64     `json:"receiverId"`
}

func ToView(m *Message) View {
	return View{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		CreatedAt:  m.CreatedAt,
	}
}

func ToViews(list []*Message) []View {
	views := make([]View, 0, len(list))
	for _, m := range list {
		views = append(views, ToView(m))
	}
	return views
}
