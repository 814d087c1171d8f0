// File: database/repository/subscription/crud.go
package subscriptionRepo

import (
	"context"
	"errors"
	"time"

	"mindhaven/models"
	"mindhaven/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, sub); err != nil {
		return utils.NewStorageError("insert subscription", err)
	}
	return nil
}

func (r *mongoSubscriptionRepo) GetByID(ctx context.Context, id string) (*models.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sub models.Subscription
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("subscription", id)
		}
		return nil, utils.NewStorageError("get subscription", err)
	}
	return &sub, nil
}

func (r *mongoSubscriptionRepo) GetByUserID(ctx context.Context, userID string) ([]models.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, utils.NewStorageError("list user subscriptions", err)
	}
	defer cursor.Close(ctx)

	var subs []models.Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, utils.NewStorageError("decode subscriptions", err)
	}
	return subs, nil
}

func (r *mongoSubscriptionRepo) Activate(ctx context.Context, id, roomID string, prefs map[string]string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.SubscriptionPendingSetup}
	update := bson.M{"$set": bson.M{
		"status":             models.SubscriptionActive,
		"setup_complete":     true,
		"room_id":            roomID,
		"client_preferences": prefs,
		"updated_at":         time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, utils.NewStorageError("activate subscription", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *mongoSubscriptionRepo) SetPractitioner(ctx context.Context, id, practitionerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.SubscriptionActive}
	update := bson.M{"$set": bson.M{
		"practitioner_id": practitionerID,
		"updated_at":      time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, utils.NewStorageError("assign practitioner", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *mongoSubscriptionRepo) TransitionStatus(ctx context.Context, id string, from, to models.SubscriptionStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, utils.NewStorageError("transition subscription", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *mongoSubscriptionRepo) ExpireLapsed(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":            models.SubscriptionActive,
		"next_billing_date": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{"status": models.SubscriptionExpired, "updated_at": time.Now()}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, utils.NewStorageError("expire subscriptions", err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoSubscriptionRepo) ListAll(ctx context.Context) ([]models.Subscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, utils.NewStorageError("list subscriptions", err)
	}
	defer cursor.Close(ctx)

	var subs []models.Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, utils.NewStorageError("decode subscriptions", err)
	}
	return subs, nil
}
