// File: database/repository/system/settings.go
package systemRepo

import (
	"context"
	"errors"
	"time"

	"mindhaven/database"
	"mindhaven/models"
	"mindhaven/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SystemRepository persists the single bootstrap settings document.
type SystemRepository interface {
	Get(ctx context.Context) (*models.SystemSettings, error)
	// MarkInitialized records initialization exactly once; a concurrent
	// caller that loses the upsert race still observes initialized state.
	MarkInitialized(ctx context.Context, adminID string) error
}

type mongoSystemRepo struct {
	coll *mongo.Collection
}

// NewMongoSystemRepo constructs a new MongoDB SystemRepository.
func NewMongoSystemRepo() SystemRepository {
	return &mongoSystemRepo{
		coll: database.DB().Collection("system"),
	}
}

func (r *mongoSystemRepo) Get(ctx context.Context) (*models.SystemSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var settings models.SystemSettings
	err := r.coll.FindOne(ctx, bson.M{"id": models.SystemSettingsID}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.SystemSettings{ID: models.SystemSettingsID}, nil
		}
		return nil, utils.NewStorageError("get system settings", err)
	}
	return &settings, nil
}

func (r *mongoSystemRepo) MarkInitialized(ctx context.Context, adminID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": models.SystemSettingsID, "initialized": bson.M{"$ne": true}}
	update := bson.M{"$set": bson.M{
		"id":             models.SystemSettingsID,
		"initialized":    true,
		"initialized_at": time.Now(),
		"initialized_by": adminID,
	}}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return utils.NewStorageError("mark system initialized", err)
	}
	return nil
}
