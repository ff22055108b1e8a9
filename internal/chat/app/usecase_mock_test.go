package app

import (
	"context"

	"fitness_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockChatRepository Mock ChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockChatRepository) AppendMessage(ctx context.Context, trainerID, userID string, msg domain.Message) (*domain.Chat, error) {
	args := m.Called(ctx, trainerID, userID, msg)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatRepository) FindByPair(ctx context.Context, trainerID, userID string) (*domain.Chat, error) {
	args := m.Called(ctx, trainerID, userID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatRepository) FindByID(ctx context.Context, chatID primitive.ObjectID) (*domain.Chat, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatRepository) UpdateMessageContent(ctx context.Context, chatID, messageID primitive.ObjectID, content string) (*domain.Chat, error) {
	args := m.Called(ctx, chatID, messageID, content)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatRepository) MarkRead(ctx context.Context, chatID primitive.ObjectID, readerID string) (*domain.Chat, error) {
	args := m.Called(ctx, chatID, readerID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatRepository) FindByTrainer(ctx context.Context, trainerID string) ([]domain.Chat, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserRepository Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindProfiles(ctx context.Context, ids []string) (map[string]domain.UserProfile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) != nil {
		return args.Get(0).(map[string]domain.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPresence Mock Presence
type MockPresence struct {
	mock.Mock
}

func (m *MockPresence) SetOnline(ctx context.Context, memberID, connID string) error {
	args := m.Called(ctx, memberID, connID)
	return args.Error(0)
}

func (m *MockPresence) Refresh(ctx context.Context, memberID string) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

func (m *MockPresence) SetOffline(ctx context.Context, memberID, connID string) error {
	args := m.Called(ctx, memberID, connID)
	return args.Error(0)
}

func (m *MockPresence) IsOnline(ctx context.Context, memberID string) (bool, error) {
	args := m.Called(ctx, memberID)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher Mock EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishChatEvent(ctx context.Context, ev domain.ChatEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// MockNotifier Mock Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, n domain.ChatNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// MockPubSub Mock PubSub
type MockPubSub struct {
	mock.Mock
}

func (m *MockPubSub) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

func (m *MockPubSub) Subscribe(ctx context.Context, channel string, handler func(payload []byte)) error {
	args := m.Called(ctx, channel, handler)
	return args.Error(0)
}
