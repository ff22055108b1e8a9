package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitness_chat_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatRepository definition chat document storage
type ChatRepository interface {
	// EnsureIndexes create the (trainerId, userId) unique index and the trainer list index
	EnsureIndexes(ctx context.Context) error
	// AppendMessage push msg onto the pair's chat, creating the chat on first message
	AppendMessage(ctx context.Context, trainerID, userID string, msg domain.Message) (*domain.Chat, error)
	FindByPair(ctx context.Context, trainerID, userID string) (*domain.Chat, error)
	FindByID(ctx context.Context, chatID primitive.ObjectID) (*domain.Chat, error)
	// UpdateMessageContent overwrite one embedded message's content
	UpdateMessageContent(ctx context.Context, chatID, messageID primitive.ObjectID, content string) (*domain.Chat, error)
	// MarkRead flag every message not sent by readerID as read; readerID must be the trainer or the user
	MarkRead(ctx context.Context, chatID primitive.ObjectID, readerID string) (*domain.Chat, error)
	// FindByTrainer all chats of a trainer, most recently updated first
	FindByTrainer(ctx context.Context, trainerID string) ([]domain.Chat, error)
}

type mongoChatRepository struct {
	coll *mongo.Collection
}

// NewMongoChatRepository create a ChatRepository on db
func NewMongoChatRepository(db *mongo.Database) ChatRepository {
	return &mongoChatRepository{
		coll: db.Collection(domain.ChatCollection),
	}
}

func (r *mongoChatRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("trainer_user_unique"),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("trainer_updated_id"),
		},
	})
	if err != nil {
		return fmt.Errorf("create chat indexes: %w", err)
	}
	return nil
}

func (r *mongoChatRepository) AppendMessage(ctx context.Context, trainerID, userID string, msg domain.Message) (*domain.Chat, error) {
	now := time.Now().UTC()
	filter := bson.M{"trainerId": trainerID, "userId": userID}
	update := bson.M{
		"$push":        bson.M{"messages": msg},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var chat domain.Chat
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&chat)
	if mongo.IsDuplicateKeyError(err) {
		// two upserts raced on a new pair; the loser retries as a plain append
		err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&chat)
	}
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return &chat, nil
}

func (r *mongoChatRepository) FindByPair(ctx context.Context, trainerID, userID string) (*domain.Chat, error) {
	return r.findOne(ctx, bson.M{"trainerId": trainerID, "userId": userID})
}

func (r *mongoChatRepository) FindByID(ctx context.Context, chatID primitive.ObjectID) (*domain.Chat, error) {
	return r.findOne(ctx, bson.M{"_id": chatID})
}

func (r *mongoChatRepository) findOne(ctx context.Context, filter bson.M) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.coll.FindOne(ctx, filter).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrChatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find chat: %w", err)
	}
	return &chat, nil
}

func (r *mongoChatRepository) UpdateMessageContent(ctx context.Context, chatID, messageID primitive.ObjectID, content string) (*domain.Chat, error) {
	filter := bson.M{"_id": chatID, "messages._id": messageID}
	update := bson.M{"$set": bson.M{
		"messages.$.content": content,
		"updatedAt":          time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var chat domain.Chat
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		exists, countErr := r.exists(ctx, chatID)
		if countErr != nil {
			return nil, fmt.Errorf("update message: %w", countErr)
		}
		if !exists {
			return nil, domain.ErrChatNotFound
		}
		return nil, domain.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update message: %w", err)
	}
	return &chat, nil
}

func (r *mongoChatRepository) MarkRead(ctx context.Context, chatID primitive.ObjectID, readerID string) (*domain.Chat, error) {
	update := bson.M{"$set": bson.M{"messages.$[m].isRead": true}}
	opts := options.FindOneAndUpdate().
		SetArrayFilters(options.ArrayFilters{Filters: []interface{}{
			bson.M{"m.sender": bson.M{"$ne": readerID}, "m.isRead": false},
		}}).
		SetReturnDocument(options.After)

	filter := bson.M{
		"_id": chatID,
		"$or": bson.A{bson.M{"trainerId": readerID}, bson.M{"userId": readerID}},
	}

	var chat domain.Chat
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		exists, countErr := r.exists(ctx, chatID)
		if countErr != nil {
			return nil, fmt.Errorf("mark read: %w", countErr)
		}
		if !exists {
			return nil, domain.ErrChatNotFound
		}
		return nil, domain.ErrNotParticipant
	}
	if err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}
	return &chat, nil
}

func (r *mongoChatRepository) exists(ctx context.Context, chatID primitive.ObjectID) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": chatID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *mongoChatRepository) FindByTrainer(ctx context.Context, trainerID string) ([]domain.Chat, error) {
	// _id breaks ties between chats updated in the same millisecond
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"trainerId": trainerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find trainer chats: %w", err)
	}
	defer cur.Close(ctx)

	chats := []domain.Chat{}
	if err := cur.All(ctx, &chats); err != nil {
		return nil, fmt.Errorf("decode trainer chats: %w", err)
	}
	return chats, nil
}
