package app

import (
	"context"
	"errors"

	"fitness_chat_service/internal/chat/domain"
	"fitness_chat_service/internal/chat/repository"
	"fitness_chat_service/pkg"
	errprocess "fitness_chat_service/pkg/err"
	"fitness_chat_service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Presence tracks which members hold a live socket
type Presence interface {
	SetOnline(ctx context.Context, memberID, connID string) error
	Refresh(ctx context.Context, memberID string) error
	SetOffline(ctx context.Context, memberID, connID string) error
	IsOnline(ctx context.Context, memberID string) (bool, error)
}

// EventPublisher chat event log
type EventPublisher interface {
	PublishChatEvent(ctx context.Context, ev domain.ChatEvent) error
}

// Notifier offline notification queue
type Notifier interface {
	Notify(ctx context.Context, n domain.ChatNotification) error
}

// ChatUseCase chat persistence operations exposed over REST
type ChatUseCase interface {
	CreateOrAppend(ctx context.Context, trainerID, userID, content, actorID string) (*domain.Chat, error)
	GetChat(ctx context.Context, trainerID, userID string) (*domain.Chat, error)
	UpdateMessage(ctx context.Context, chatID, messageID, content string) (*domain.Chat, error)
	ListTrainerChats(ctx context.Context, trainerID string) ([]domain.ChatSummary, error)
	MarkRead(ctx context.Context, chatID, readerID string) (*domain.Chat, error)
}

type chatUseCase struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	presence Presence
	events   EventPublisher
	notifier Notifier
}

// NewChatUseCase presence, events and notifier may be nil
func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	presence Presence,
	events EventPublisher,
	notifier Notifier,
) ChatUseCase {
	return &chatUseCase{
		chatRepo: chatRepo,
		userRepo: userRepo,
		presence: presence,
		events:   events,
		notifier: notifier,
	}
}

// CreateOrAppend add a message to the (trainerID, userID) chat, creating it on first message.
// The sender is actorID when it is one of the participants, otherwise userID.
func (uc *chatUseCase) CreateOrAppend(ctx context.Context, trainerID, userID, content, actorID string) (*domain.Chat, error) {
	if trainerID == "" || userID == "" || content == "" {
		return nil, errprocess.BadRequest("trainerId, userId, and content are required.")
	}
	text, err := ValidateContent(content)
	if err != nil {
		return nil, err
	}

	sender := userID
	if pkg.Contains([]string{trainerID, userID}, actorID) {
		sender = actorID
	}

	msg := domain.NewMessage(sender, text)
	chat, err := uc.chatRepo.AppendMessage(ctx, trainerID, userID, msg)
	if err != nil {
		return nil, errprocess.Internal("Error creating or adding message", err)
	}
	logger.Log.Debug("message appended",
		zap.String("chat_id", chat.ID.Hex()),
		zap.String("message_id", msg.ID.Hex()),
		zap.String("sender", sender))

	uc.publish(ctx, domain.NewChatEvent(domain.EventMessageCreated, chat, &msg))
	uc.notifyIfOffline(ctx, chat.Partner(sender), sender, chat.ID.Hex(), text)
	return chat, nil
}

// GetChat the chat of a (trainerID, userID) pair
func (uc *chatUseCase) GetChat(ctx context.Context, trainerID, userID string) (*domain.Chat, error) {
	if trainerID == "" || userID == "" {
		return nil, errprocess.BadRequest("trainerId and userId are required.")
	}
	chat, err := uc.chatRepo.FindByPair(ctx, trainerID, userID)
	if errors.Is(err, domain.ErrChatNotFound) {
		return nil, errprocess.NotFound("Chat not found.", err)
	}
	if err != nil {
		return nil, errprocess.Internal("Error fetching chat", err)
	}
	return chat, nil
}

// UpdateMessage overwrite the content of one message, siblings are untouched
func (uc *chatUseCase) UpdateMessage(ctx context.Context, chatID, messageID, content string) (*domain.Chat, error) {
	if chatID == "" || messageID == "" || content == "" {
		return nil, errprocess.BadRequest("chatId, messageId, and content are required.")
	}
	text, err := ValidateContent(content)
	if err != nil {
		return nil, err
	}
	chatOID, err := parseID("chatId", chatID)
	if err != nil {
		return nil, err
	}
	msgOID, err := parseID("messageId", messageID)
	if err != nil {
		return nil, err
	}

	chat, err := uc.chatRepo.UpdateMessageContent(ctx, chatOID, msgOID, text)
	switch {
	case errors.Is(err, domain.ErrChatNotFound):
		return nil, errprocess.NotFound("Chat not found.", err)
	case errors.Is(err, domain.ErrMessageNotFound):
		return nil, errprocess.NotFound("Message not found.", err)
	case err != nil:
		return nil, errprocess.Internal("Error updating message", err)
	}

	msg, _ := chat.FindMessage(msgOID)
	uc.publish(ctx, domain.NewChatEvent(domain.EventMessageUpdated, chat, msg))
	return chat, nil
}

// ListTrainerChats summaries of every chat of trainerID, most recently updated first
func (uc *chatUseCase) ListTrainerChats(ctx context.Context, trainerID string) ([]domain.ChatSummary, error) {
	if trainerID == "" {
		return nil, errprocess.BadRequest("trainerId is required.")
	}
	chats, err := uc.chatRepo.FindByTrainer(ctx, trainerID)
	if err != nil {
		return nil, errprocess.Internal("Error fetching trainer chats", err)
	}

	ids := make([]string, 0, len(chats))
	for _, c := range chats {
		if !pkg.Contains(ids, c.UserID) {
			ids = append(ids, c.UserID)
		}
	}

	profiles := map[string]domain.UserProfile{}
	if uc.userRepo != nil && len(ids) > 0 {
		found, err := uc.userRepo.FindProfiles(ctx, ids)
		if err != nil {
			return nil, errprocess.Internal("Error fetching trainer chats", err)
		}
		profiles = found
	}

	summaries := make([]domain.ChatSummary, 0, len(chats))
	for i := range chats {
		var profile *domain.UserProfile
		if p, ok := profiles[chats[i].UserID]; ok {
			profile = &p
		}
		summaries = append(summaries, domain.Summarize(&chats[i], profile))
	}
	return summaries, nil
}

// MarkRead flag every message of the chat not sent by readerID as read
func (uc *chatUseCase) MarkRead(ctx context.Context, chatID, readerID string) (*domain.Chat, error) {
	if chatID == "" {
		return nil, errprocess.BadRequest("chatId is required.")
	}
	if readerID == "" {
		return nil, errprocess.BadRequest("reader is required.")
	}
	chatOID, err := parseID("chatId", chatID)
	if err != nil {
		return nil, err
	}

	chat, err := uc.chatRepo.MarkRead(ctx, chatOID, readerID)
	switch {
	case errors.Is(err, domain.ErrChatNotFound):
		return nil, errprocess.NotFound("Chat not found.", err)
	case errors.Is(err, domain.ErrNotParticipant):
		return nil, errprocess.Forbidden("Not a participant of this chat.", err)
	case err != nil:
		return nil, errprocess.Internal("Error marking messages read", err)
	}

	ev := domain.NewChatEvent(domain.EventMessagesRead, chat, nil)
	ev.Sender = readerID
	uc.publish(ctx, ev)
	return chat, nil
}

func (uc *chatUseCase) publish(ctx context.Context, ev domain.ChatEvent) {
	if uc.events == nil {
		return
	}
	if err := uc.events.PublishChatEvent(ctx, ev); err != nil {
		logger.Log.Error("publish chat event", zap.String("type", string(ev.Type)), zap.String("chat_id", ev.ChatID), zap.Error(err))
	}
}

func (uc *chatUseCase) notifyIfOffline(ctx context.Context, recipientID, senderID, chatID, content string) {
	notifyOffline(ctx, uc.presence, uc.notifier, recipientID, senderID, chatID, content)
}

// notifyOffline queue a notification when recipientID has no live socket.
// Presence lookup failures count as offline.
func notifyOffline(ctx context.Context, presence Presence, notifier Notifier, recipientID, senderID, chatID, content string) {
	if notifier == nil || recipientID == "" {
		return
	}
	if presence != nil {
		online, err := presence.IsOnline(ctx, recipientID)
		if err != nil {
			logger.Log.Warn("presence lookup", zap.String("member_id", recipientID), zap.Error(err))
		}
		if online {
			return
		}
	}
	if err := notifier.Notify(ctx, domain.NewChatNotification(recipientID, senderID, chatID, content)); err != nil {
		logger.Log.Error("notify offline member", zap.String("member_id", recipientID), zap.Error(err))
	}
}

func parseID(field, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, errprocess.BadRequest(field + " is not a valid id.")
	}
	return oid, nil
}
