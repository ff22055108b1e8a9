package repository

import (
	"context"
	"fmt"

	"fitness_chat_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository read side of the user collection
type UserRepository interface {
	// FindProfiles profiles keyed by id. Ids that are not ObjectIDs or have no user are absent.
	FindProfiles(ctx context.Context, ids []string) (map[string]domain.UserProfile, error)
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository create a UserRepository on db
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{
		coll: db.Collection(domain.UserCollection),
	}
}

func (r *mongoUserRepository) FindProfiles(ctx context.Context, ids []string) (map[string]domain.UserProfile, error) {
	profiles := make(map[string]domain.UserProfile, len(ids))

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return profiles, nil
	}

	opts := options.Find().SetProjection(bson.M{"fullName": 1, "email": 1, "profileImageUrl": 1})
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID                 primitive.ObjectID `bson:"_id"`
			domain.UserProfile `bson:",inline"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		row.UserProfile.ID = row.ID.Hex()
		profiles[row.UserProfile.ID] = row.UserProfile
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("profile cursor: %w", err)
	}

	return profiles, nil
}
