package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCollection mongo collection holding user profiles
const UserCollection = "users"

// UserProfile basic profile fields shown next to a chat
type UserProfile struct {
	ID              string `bson:"-" json:"_id"`
	FullName        string `bson:"fullName" json:"fullName,omitempty"`
	Email           string `bson:"email" json:"email,omitempty"`
	ProfileImageURL string `bson:"profileImageUrl" json:"profileImageUrl,omitempty"`
}

// LastMessage preview of the newest message in a chat
type LastMessage struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
}

// ChatSummary one row of a trainer's chat list
type ChatSummary struct {
	ChatID      primitive.ObjectID `json:"chatId"`
	User        UserProfile        `json:"user"`
	LastMessage *LastMessage       `json:"lastMessage"`
	UnreadCount int                `json:"unreadCount"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// Summarize project a chat into its list row; profile may be nil
func Summarize(c *Chat, profile *UserProfile) ChatSummary {
	s := ChatSummary{
		ChatID:      c.ID,
		User:        UserProfile{ID: c.UserID},
		UnreadCount: c.UnreadFromUser(),
		UpdatedAt:   c.UpdatedAt,
	}
	if profile != nil {
		s.User = *profile
		s.User.ID = c.UserID
	}
	if last := c.LastMessage(); last != nil {
		s.LastMessage = &LastMessage{
			Content:   last.Content,
			Timestamp: last.Timestamp,
			Sender:    last.Sender,
		}
	}
	return s
}
