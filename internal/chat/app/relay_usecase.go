package app

import (
	"context"
	"time"

	"fitness_chat_service/internal/chat/domain"
	errprocess "fitness_chat_service/pkg/err"
	"fitness_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// PubSub cross-node delivery of socket events
type PubSub interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string, handler func(payload []byte)) error
}

// RelayUseCase socket relay between members. Relayed messages are not persisted.
type RelayUseCase struct {
	pubsub   PubSub
	presence Presence
	notifier Notifier
}

// NewRelayUseCase presence and notifier may be nil
func NewRelayUseCase(pubsub PubSub, presence Presence, notifier Notifier) *RelayUseCase {
	return &RelayUseCase{
		pubsub:   pubsub,
		presence: presence,
		notifier: notifier,
	}
}

// Connect subscribe memberID's channel and mark it online.
// deliver receives every event published to the member until ctx is done.
func (uc *RelayUseCase) Connect(ctx context.Context, memberID, connID string, deliver func(payload []byte)) error {
	if err := uc.pubsub.Subscribe(ctx, domain.UserChannel(memberID), deliver); err != nil {
		return err
	}
	if uc.presence != nil {
		if err := uc.presence.SetOnline(ctx, memberID, connID); err != nil {
			logger.Log.Warn("set online", zap.String("member_id", memberID), zap.Error(err))
		}
	}
	return nil
}

// KeepAlive extend memberID's presence
func (uc *RelayUseCase) KeepAlive(ctx context.Context, memberID string) {
	if uc.presence == nil {
		return
	}
	if err := uc.presence.Refresh(ctx, memberID); err != nil {
		logger.Log.Warn("refresh presence", zap.String("member_id", memberID), zap.Error(err))
	}
}

// Disconnect drop memberID's presence held by connID
func (uc *RelayUseCase) Disconnect(ctx context.Context, memberID, connID string) {
	if uc.presence == nil {
		return
	}
	if err := uc.presence.SetOffline(ctx, memberID, connID); err != nil {
		logger.Log.Warn("set offline", zap.String("member_id", memberID), zap.Error(err))
	}
}

// Relay deliver a sendMessage from fromID as receiveMessage to the recipient.
// There is no acknowledgement; an offline recipient gets a queued notification instead.
func (uc *RelayUseCase) Relay(ctx context.Context, fromID string, req domain.SendMessagePayload) (domain.ReceiveMessagePayload, error) {
	if req.To == "" || req.Message == "" {
		return domain.ReceiveMessagePayload{}, errprocess.BadRequest("to and message are required.")
	}
	text, err := ValidateContent(req.Message)
	if err != nil {
		return domain.ReceiveMessagePayload{}, err
	}

	payload := domain.ReceiveMessagePayload{
		From:    fromID,
		Message: text,
		Time:    time.Now().UTC(),
	}
	ev, err := domain.NewSocketEvent(domain.ReceiveMessage, payload)
	if err != nil {
		return domain.ReceiveMessagePayload{}, err
	}
	if err := uc.pubsub.Publish(ctx, domain.UserChannel(req.To), ev); err != nil {
		return domain.ReceiveMessagePayload{}, errprocess.Internal("Error relaying message", err)
	}

	notifyOffline(ctx, uc.presence, uc.notifier, req.To, fromID, "", text)
	return payload, nil
}
