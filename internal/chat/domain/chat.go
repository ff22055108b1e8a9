package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatCollection mongo collection holding chat documents
const ChatCollection = "chats"

// MaxContentLength upper bound of a message body, in characters
const MaxContentLength = 1000

var (
	// ErrChatNotFound no chat matches the lookup
	ErrChatNotFound = errors.New("chat not found")
	// ErrMessageNotFound the chat exists but holds no such message
	ErrMessageNotFound = errors.New("message not found")
	// ErrNotParticipant the member is neither the chat's trainer nor its user
	ErrNotParticipant = errors.New("not a chat participant")
)

// Chat one conversation between a trainer and a user.
// (trainerId, userId) is unique.
type Chat struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TrainerID string             `bson:"trainerId" json:"trainerId"`
	UserID    string             `bson:"userId" json:"userId"`
	Messages  []Message          `bson:"messages" json:"messages"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Message embedded chat message
type Message struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Sender    string             `bson:"sender" json:"sender"`
	Content   string             `bson:"content" json:"content"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	IsRead    bool               `bson:"isRead" json:"isRead"`
}

// NewMessage build an unread message stamped now
func NewMessage(sender, content string) Message {
	return Message{
		ID:        primitive.NewObjectID(),
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// FindMessage locate an embedded message by id
func (c *Chat) FindMessage(messageID primitive.ObjectID) (*Message, bool) {
	for i := range c.Messages {
		if c.Messages[i].ID == messageID {
			return &c.Messages[i], true
		}
	}
	return nil, false
}

// LastMessage newest message, nil for an empty chat
func (c *Chat) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// UnreadFromUser count messages sent by the chat's user the trainer has not read
func (c *Chat) UnreadFromUser() int {
	count := 0
	for _, m := range c.Messages {
		if m.Sender == c.UserID && !m.IsRead {
			count++
		}
	}
	return count
}

// Partner the other participant of memberID, empty when memberID is not in the chat
func (c *Chat) Partner(memberID string) string {
	switch memberID {
	case c.TrainerID:
		return c.UserID
	case c.UserID:
		return c.TrainerID
	}
	return ""
}
