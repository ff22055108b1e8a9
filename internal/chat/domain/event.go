package domain

import "time"

// ChatEventType kind of chat event published to the event log
type ChatEventType string

const (
	// EventMessageCreated a message was added to a chat (the chat may be new)
	EventMessageCreated ChatEventType = "chat.message.created"
	// EventMessageUpdated a message content was edited
	EventMessageUpdated ChatEventType = "chat.message.updated"
	// EventMessagesRead messages of a chat were marked read
	EventMessagesRead ChatEventType = "chat.messages.read"
)

// ChatEvent event log record, keyed by chat id
type ChatEvent struct {
	Type       ChatEventType `json:"type"`
	ChatID     string        `json:"chat_id"`
	TrainerID  string        `json:"trainer_id"`
	UserID     string        `json:"user_id"`
	MessageID  string        `json:"message_id,omitempty"`
	Sender     string        `json:"sender,omitempty"`
	Content    string        `json:"content,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewChatEvent event about msg in chat; msg may be nil
func NewChatEvent(t ChatEventType, chat *Chat, msg *Message) ChatEvent {
	ev := ChatEvent{
		Type:       t,
		ChatID:     chat.ID.Hex(),
		TrainerID:  chat.TrainerID,
		UserID:     chat.UserID,
		OccurredAt: time.Now().UTC(),
	}
	if msg != nil {
		ev.MessageID = msg.ID.Hex()
		ev.Sender = msg.Sender
		ev.Content = msg.Content
	}
	return ev
}

// NotificationPreviewLength max characters of message text in a notification
const NotificationPreviewLength = 80

// ChatNotification queued for a recipient who is not connected
type ChatNotification struct {
	RecipientID string    `json:"recipient_id"`
	SenderID    string    `json:"sender_id"`
	ChatID      string    `json:"chat_id,omitempty"`
	Preview     string    `json:"preview"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewChatNotification build a notification, truncating content to the preview length
func NewChatNotification(recipientID, senderID, chatID, content string) ChatNotification {
	preview := []rune(content)
	if len(preview) > NotificationPreviewLength {
		preview = append(preview[:NotificationPreviewLength], '…')
	}
	return ChatNotification{
		RecipientID: recipientID,
		SenderID:    senderID,
		ChatID:      chatID,
		Preview:     string(preview),
		CreatedAt:   time.Now().UTC(),
	}
}
