package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleChat() *Chat {
	return &Chat{
		ID:        primitive.NewObjectID(),
		TrainerID: "T1",
		UserID:    "U1",
		Messages: []Message{
			{ID: primitive.NewObjectID(), Sender: "U1", Content: "Hi", IsRead: true},
			{ID: primitive.NewObjectID(), Sender: "T1", Content: "Hello"},
			{ID: primitive.NewObjectID(), Sender: "U1", Content: "Plan for today?"},
			{ID: primitive.NewObjectID(), Sender: "U1", Content: "Leg day?"},
		},
		UpdatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestChatUnreadFromUser(t *testing.T) {
	c := sampleChat()
	// trainer messages never count, read user messages never count
	assert.Equal(t, 2, c.UnreadFromUser())

	c.Messages = nil
	assert.Equal(t, 0, c.UnreadFromUser())
}

func TestChatFindMessage(t *testing.T) {
	c := sampleChat()

	m, ok := c.FindMessage(c.Messages[1].ID)
	require.True(t, ok)
	assert.Equal(t, "Hello", m.Content)

	m.Content = "Hello!"
	assert.Equal(t, "Hello!", c.Messages[1].Content)

	_, ok = c.FindMessage(primitive.NewObjectID())
	assert.False(t, ok)
}

func TestChatPartner(t *testing.T) {
	c := sampleChat()
	assert.Equal(t, "U1", c.Partner("T1"))
	assert.Equal(t, "T1", c.Partner("U1"))
	assert.Equal(t, "", c.Partner("X"))
}

func TestSummarize(t *testing.T) {
	c := sampleChat()

	s := Summarize(c, &UserProfile{FullName: "Uma User", Email: "uma@example.com"})
	assert.Equal(t, c.ID, s.ChatID)
	assert.Equal(t, "U1", s.User.ID)
	assert.Equal(t, "Uma User", s.User.FullName)
	assert.Equal(t, 2, s.UnreadCount)
	require.NotNil(t, s.LastMessage)
	assert.Equal(t, "Leg day?", s.LastMessage.Content)
	assert.Equal(t, "U1", s.LastMessage.Sender)
	assert.Equal(t, c.UpdatedAt, s.UpdatedAt)

	empty := &Chat{ID: primitive.NewObjectID(), TrainerID: "T1", UserID: "U2"}
	s = Summarize(empty, nil)
	assert.Nil(t, s.LastMessage)
	assert.Equal(t, "U2", s.User.ID)
	assert.Equal(t, 0, s.UnreadCount)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"lastMessage":null`)
}

func TestNewChatNotificationPreview(t *testing.T) {
	long := strings.Repeat("é", NotificationPreviewLength+20)
	n := NewChatNotification("U1", "T1", "c1", long)
	assert.Equal(t, NotificationPreviewLength+1, len([]rune(n.Preview)))

	n = NewChatNotification("U1", "T1", "", "short")
	assert.Equal(t, "short", n.Preview)
}

func TestNewSocketEvent(t *testing.T) {
	ev, err := NewSocketEvent(ReceiveMessage, ReceiveMessagePayload{From: "T1", Message: "hey"})
	require.NoError(t, err)
	assert.Equal(t, ReceiveMessage, ev.Event)

	var p ReceiveMessagePayload
	require.NoError(t, json.Unmarshal(ev.Data, &p))
	assert.Equal(t, "T1", p.From)
	assert.Equal(t, "hey", p.Message)
	assert.Equal(t, "chat:user:U1", UserChannel("U1"))
}
