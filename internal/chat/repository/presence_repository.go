package repository

import (
	"context"
	"time"

	"fitness_chat_service/pkg/database"
)

// PresenceRepository which members hold an open socket.
// Each member maps to the set of its live connection ids.
type PresenceRepository struct {
	store database.RedisRepository[string]
	ttl   time.Duration
}

// NewPresenceRepository presence sets expire after ttl unless refreshed
func NewPresenceRepository(store database.RedisRepository[string], ttl time.Duration) *PresenceRepository {
	return &PresenceRepository{store: store, ttl: ttl}
}

func presenceKey(memberID string) string {
	return "presence:" + memberID
}

// SetOnline add connID to memberID's live connections
func (p *PresenceRepository) SetOnline(ctx context.Context, memberID, connID string) error {
	return p.store.AddMember(ctx, presenceKey(memberID), connID, p.ttl)
}

// Refresh push the expiry of memberID's connections forward
func (p *PresenceRepository) Refresh(ctx context.Context, memberID string) error {
	return p.store.ExtendTTL(ctx, presenceKey(memberID), p.ttl)
}

// SetOffline drop connID; other connections of the member stay online
func (p *PresenceRepository) SetOffline(ctx context.Context, memberID, connID string) error {
	return p.store.RemoveMember(ctx, presenceKey(memberID), connID)
}

// IsOnline report whether memberID has at least one live connection
func (p *PresenceRepository) IsOnline(ctx context.Context, memberID string) (bool, error) {
	n, err := p.store.CountMembers(ctx, presenceKey(memberID))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
