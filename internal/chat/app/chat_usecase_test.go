package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"fitness_chat_service/internal/chat/domain"
	errprocess "fitness_chat_service/pkg/err"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type chatMocks struct {
	chatRepo *MockChatRepository
	userRepo *MockUserRepository
	presence *MockPresence
	events   *MockEventPublisher
	notifier *MockNotifier
}

func newChatUseCase() (ChatUseCase, *chatMocks) {
	m := &chatMocks{
		chatRepo: new(MockChatRepository),
		userRepo: new(MockUserRepository),
		presence: new(MockPresence),
		events:   new(MockEventPublisher),
		notifier: new(MockNotifier),
	}
	return NewChatUseCase(m.chatRepo, m.userRepo, m.presence, m.events, m.notifier), m
}

func assertStatus(t *testing.T, err error, wantStatus int, wantMsg string) {
	t.Helper()
	require.Error(t, err)
	status, msg := errprocess.Status(err)
	assert.Equal(t, wantStatus, status)
	assert.Equal(t, wantMsg, msg)
}

func chatWith(trainerID, userID string, msgs ...domain.Message) *domain.Chat {
	return &domain.Chat{
		ID:        primitive.NewObjectID(),
		TrainerID: trainerID,
		UserID:    userID,
		Messages:  msgs,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestChatUseCase_CreateOrAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		tests := []struct {
			name               string
			trainer, user, txt string
		}{
			{"no trainer", "", "U1", "Hi"},
			{"no user", "T1", "", "Hi"},
			{"no content", "T1", "U1", ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc, m := newChatUseCase()
				_, err := uc.CreateOrAppend(ctx, tt.trainer, tt.user, tt.txt, "U1")
				assertStatus(t, err, http.StatusBadRequest, "trainerId, userId, and content are required.")
				m.chatRepo.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("blank content", func(t *testing.T) {
		uc, m := newChatUseCase()
		_, err := uc.CreateOrAppend(ctx, "T1", "U1", "   \n\t", "U1")
		assertStatus(t, err, http.StatusBadRequest, "Message cannot be empty")
		m.chatRepo.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("content too long", func(t *testing.T) {
		uc, m := newChatUseCase()
		_, err := uc.CreateOrAppend(ctx, "T1", "U1", strings.Repeat("a", domain.MaxContentLength+1), "U1")
		assertStatus(t, err, http.StatusBadRequest, "Message is too long (max 1000 characters)")
		m.chatRepo.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("trainer sends, offline user is notified", func(t *testing.T) {
		uc, m := newChatUseCase()
		stored := chatWith("T1", "U1")
		m.chatRepo.On("AppendMessage", ctx, "T1", "U1", mock.MatchedBy(func(msg domain.Message) bool {
			return msg.Sender == "T1" && msg.Content == "Hi there" && !msg.IsRead
		})).Run(func(args mock.Arguments) {
			stored.Messages = append(stored.Messages, args.Get(3).(domain.Message))
		}).Return(stored, nil).Once()
		m.events.On("PublishChatEvent", ctx, mock.MatchedBy(func(ev domain.ChatEvent) bool {
			return ev.Type == domain.EventMessageCreated && ev.Sender == "T1" && ev.Content == "Hi there"
		})).Return(nil).Once()
		m.presence.On("IsOnline", ctx, "U1").Return(false, nil).Once()
		m.notifier.On("Notify", ctx, mock.MatchedBy(func(n domain.ChatNotification) bool {
			return n.RecipientID == "U1" && n.SenderID == "T1" && n.Preview == "Hi there"
		})).Return(nil).Once()

		chat, err := uc.CreateOrAppend(ctx, "T1", "U1", "  Hi there  ", "T1")

		require.NoError(t, err)
		require.Len(t, chat.Messages, 1)
		assert.Equal(t, "Hi there", chat.Messages[0].Content)
		assert.False(t, chat.Messages[0].ID.IsZero())
		m.chatRepo.AssertExpectations(t)
		m.events.AssertExpectations(t)
		m.presence.AssertExpectations(t)
		m.notifier.AssertExpectations(t)
	})

	t.Run("outsider actor falls back to user, online trainer is not notified", func(t *testing.T) {
		uc, m := newChatUseCase()
		m.chatRepo.On("AppendMessage", ctx, "T1", "U1", mock.MatchedBy(func(msg domain.Message) bool {
			return msg.Sender == "U1"
		})).Return(chatWith("T1", "U1", domain.NewMessage("U1", "Hi")), nil).Once()
		m.events.On("PublishChatEvent", ctx, mock.Anything).Return(nil).Once()
		m.presence.On("IsOnline", ctx, "T1").Return(true, nil).Once()

		_, err := uc.CreateOrAppend(ctx, "T1", "U1", "Hi", "someone-else")

		require.NoError(t, err)
		m.chatRepo.AssertExpectations(t)
		m.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("side effect failures do not fail the request", func(t *testing.T) {
		uc, m := newChatUseCase()
		m.chatRepo.On("AppendMessage", ctx, "T1", "U1", mock.Anything).
			Return(chatWith("T1", "U1", domain.NewMessage("U1", "Hi")), nil).Once()
		m.events.On("PublishChatEvent", ctx, mock.Anything).Return(errors.New("kafka down")).Once()
		m.presence.On("IsOnline", ctx, "T1").Return(false, errors.New("redis down")).Once()
		m.notifier.On("Notify", ctx, mock.Anything).Return(errors.New("rabbit down")).Once()

		chat, err := uc.CreateOrAppend(ctx, "T1", "U1", "Hi", "U1")

		require.NoError(t, err)
		assert.Len(t, chat.Messages, 1)
		m.notifier.AssertExpectations(t)
	})

	t.Run("datastore failure hides the cause", func(t *testing.T) {
		uc, m := newChatUseCase()
		m.chatRepo.On("AppendMessage", ctx, "T1", "U1", mock.Anything).
			Return(nil, errors.New("connection refused 10.0.0.3:27017")).Once()

		_, err := uc.CreateOrAppend(ctx, "T1", "U1", "Hi", "U1")

		assertStatus(t, err, http.StatusInternalServerError, "Error creating or adding message")
		m.events.AssertNotCalled(t, "PublishChatEvent", mock.Anything, mock.Anything)
	})
}

func TestChatUseCase_GetChat(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		uc, m := newChatUseCase()
		_, err := uc.GetChat(ctx, "T1", "")
		assertStatus(t, err, http.StatusBadRequest, "trainerId and userId are required.")
		m.chatRepo.AssertNotCalled(t, "FindByPair", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		uc, m := newChatUseCase()
		m.chatRepo.On("FindByPair", ctx, "T1", "U9").Return(nil, domain.ErrChatNotFound).Once()

		_, err := uc.GetChat(ctx, "T1", "U9")

		assertStatus(t, err, http.StatusNotFound, "Chat not found.")
		assert.ErrorIs(t, err, domain.ErrChatNotFound)
	})

	t.Run("found", func(t *testing.T) {
		uc, m := newChatUseCase()
		want := chatWith("T1", "U1", domain.NewMessage("U1", "Hi"))
		m.chatRepo.On("FindByPair", ctx, "T1", "U1").Return(want, nil).Once()

		got, err := uc.GetChat(ctx, "T1", "U1")

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestChatUseCase_UpdateMessage(t *testing.T) {
	ctx := context.Background()
	chatID := primitive.NewObjectID()
	msgID := primitive.NewObjectID()

	t.Run("missing fields", func(t *testing.T) {
		uc, m := newChatUseCase()
		_, err := uc.UpdateMessage(ctx, chatID.Hex(), "", "Hi!")
		assertStatus(t, err, http.StatusBadRequest, "chatId, messageId, and content are required.")
		m.chatRepo.AssertNotCalled(t, "UpdateMessageContent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed id", func(t *testing.T) {
		uc, _ := newChatUseCase()
		_, err := uc.UpdateMessage(ctx, "not-an-id", msgID.Hex(), "Hi!")
		assertStatus(t, err, http.StatusBadRequest, "chatId is not a valid id.")
	})

	t.Run("chat not found", func(t *testing.T) {
		uc, m := newChatUseCase()
		m.chatRepo.On("UpdateMessageContent", ctx, chatID, msgID, "Hi!").Return(nil, domain.ErrChatNotFound).Once()

		_, err := uc.UpdateMessage(ctx, chatID.Hex(), msgID.Hex(), "Hi!")

		assertStatus(t, err, http.StatusNotFound, "Chat not found.")
	})

	t.Run("message not found", func(t *testing.T) {
		uc, m := newChatUseCase()
		m.chatRepo.On("UpdateMessageContent", ctx, chatID, msgID, "Hi!").Return(nil, domain.ErrMessageNotFound).Once()

		_, err := uc.UpdateMessage(ctx, chatID.Hex(), msgID.Hex(), "Hi!")

		assertStatus(t, err, http.StatusNotFound, "Message not found.")
	})

	t.Run("updated", func(t *testing.T) {
		uc, m := newChatUseCase()
		first := domain.NewMessage("U1", "Hi!")
		first.ID = msgID
		second := domain.NewMessage("U1", "How are you")
		chat := chatWith("T1", "U1", first, second)
		chat.ID = chatID

		m.chatRepo.On("UpdateMessageContent", ctx, chatID, msgID, "Hi!").Return(chat, nil).Once()
		m.events.On("PublishChatEvent", ctx, mock.MatchedBy(func(ev domain.ChatEvent) bool {
			return ev.Type == domain.EventMessageUpdated && ev.MessageID == msgID.Hex() && ev.Content == "Hi!"
		})).Return(nil).Once()

		got, err := uc.UpdateMessage(ctx, chatID.Hex(), msgID.Hex(), " Hi! ")

		require.NoError(t, err)
		assert.Equal(t, "How are you", got.Messages[1].Content)
		m.chatRepo.AssertExpectations(t)
		m.events.AssertExpectations(t)
	})
}

func TestChatUseCase_ListTrainerChats(t *testing.T) {
	ctx := context.Background()

	t.Run("missing trainer", func(t *testing.T) {
		uc, _ := newChatUseCase()
		_, err := uc.ListTrainerChats(ctx, "")
		assertStatus(t, err, http.StatusBadRequest, "trainerId is required.")
	})

	t.Run("summaries keep repository order", func(t *testing.T) {
		uc, m := newChatUseCase()
		read := domain.NewMessage("U1", "old")
		read.IsRead = true
		recent := chatWith("T1", "U1", read, domain.NewMessage("U1", "ping"), domain.NewMessage("T1", "pong"))
		empty := chatWith("T1", "U2")

		m.chatRepo.On("FindByTrainer", ctx, "T1").Return([]domain.Chat{*recent, *empty}, nil).Once()
		m.userRepo.On("FindProfiles", ctx, []string{"U1", "U2"}).Return(map[string]domain.UserProfile{
			"U1": {FullName: "Una User", Email: "una@example.com"},
		}, nil).Once()

		got, err := uc.ListTrainerChats(ctx, "T1")

		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, recent.ID, got[0].ChatID)
		assert.Equal(t, "U1", got[0].User.ID)
		assert.Equal(t, "Una User", got[0].User.FullName)
		assert.Equal(t, 1, got[0].UnreadCount)
		require.NotNil(t, got[0].LastMessage)
		assert.Equal(t, "pong", got[0].LastMessage.Content)
		assert.Equal(t, "T1", got[0].LastMessage.Sender)

		assert.Equal(t, "U2", got[1].User.ID)
		assert.Empty(t, got[1].User.FullName)
		assert.Nil(t, got[1].LastMessage)
		assert.Zero(t, got[1].UnreadCount)
	})

	t.Run("no chats", func(t *testing.T) {
		uc, m := newChatUseCase()
		m.chatRepo.On("FindByTrainer", ctx, "T2").Return([]domain.Chat{}, nil).Once()

		got, err := uc.ListTrainerChats(ctx, "T2")

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		m.userRepo.AssertNotCalled(t, "FindProfiles", mock.Anything, mock.Anything)
	})

	t.Run("datastore failure", func(t *testing.T) {
		uc, m := newChatUseCase()
		m.chatRepo.On("FindByTrainer", ctx, "T1").Return(nil, errors.New("timeout")).Once()

		_, err := uc.ListTrainerChats(ctx, "T1")

		assertStatus(t, err, http.StatusInternalServerError, "Error fetching trainer chats")
	})
}

func TestChatUseCase_MarkRead(t *testing.T) {
	ctx := context.Background()
	chatID := primitive.NewObjectID()

	t.Run("not found", func(t *testing.T) {
		uc, m := newChatUseCase()
		m.chatRepo.On("MarkRead", ctx, chatID, "T1").Return(nil, domain.ErrChatNotFound).Once()

		_, err := uc.MarkRead(ctx, chatID.Hex(), "T1")

		assertStatus(t, err, http.StatusNotFound, "Chat not found.")
	})

	t.Run("not a participant", func(t *testing.T) {
		uc, m := newChatUseCase()
		m.chatRepo.On("MarkRead", ctx, chatID, "T9").Return(nil, domain.ErrNotParticipant).Once()

		_, err := uc.MarkRead(ctx, chatID.Hex(), "T9")

		assertStatus(t, err, http.StatusForbidden, "Not a participant of this chat.")
		m.events.AssertNotCalled(t, "PublishChatEvent", mock.Anything, mock.Anything)
	})

	t.Run("marked", func(t *testing.T) {
		uc, m := newChatUseCase()
		msg := domain.NewMessage("U1", "Hi")
		msg.IsRead = true
		chat := chatWith("T1", "U1", msg)
		chat.ID = chatID

		m.chatRepo.On("MarkRead", ctx, chatID, "T1").Return(chat, nil).Once()
		m.events.On("PublishChatEvent", ctx, mock.MatchedBy(func(ev domain.ChatEvent) bool {
			return ev.Type == domain.EventMessagesRead && ev.Sender == "T1" && ev.MessageID == ""
		})).Return(nil).Once()

		got, err := uc.MarkRead(ctx, chatID.Hex(), "T1")

		require.NoError(t, err)
		assert.Zero(t, got.UnreadFromUser())
		m.events.AssertExpectations(t)
	})
}
