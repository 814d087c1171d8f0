// File: database/repository/room/crud.go
package roomRepo

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

// ErrRoomExists reports that the unique subscription index refused a
// second room for the same subscription.
var ErrRoomExists = errors.New("room already exists for subscription")

func (r *mongoRoomRepo) Create(ctx context.Context, room *models.ConsultationRoom) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.roomColl.InsertOne(ctx, room); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrRoomExists
		}
		return utils.NewStorageError("insert room", err)
	}
	return nil
}

func (r *mongoRoomRepo) GetByID(ctx context.Context, id string) (*models.ConsultationRoom, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var room models.ConsultationRoom
	err := r.roomColl.FindOne(ctx, bson.M{"id": id}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("room", id)
		}
		return nil, utils.NewStorageError("get room", err)
	}
	return &room, nil
}

func (r *mongoRoomRepo) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*models.ConsultationRoom, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var room models.ConsultationRoom
	err := r.roomColl.FindOne(ctx, bson.M{"subscription_id": subscriptionID}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("room for subscription", subscriptionID)
		}
		return nil, utils.NewStorageError("get room by subscription", err)
	}
	return &room, nil
}

func (r *mongoRoomRepo) GetByClientID(ctx context.Context, clientID string) ([]models.ConsultationRoom, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "last_activity", Value: -1}})
	cursor, err := r.roomColl.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, utils.NewStorageError("list client rooms", err)
	}
	defer cursor.Close(ctx)

	var rooms []models.ConsultationRoom
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, utils.NewStorageError("decode rooms", err)
	}
	return rooms, nil
}

func (r *mongoRoomRepo) SetPractitioner(ctx context.Context, roomID, practitionerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"practitioner_id": practitionerID}}
	res, err := r.roomColl.UpdateOne(ctx, bson.M{"id": roomID}, update)
	if err != nil {
		return utils.NewStorageError("set room practitioner", err)
	}
	if res.MatchedCount == 0 {
		return utils.NewNotFoundError("room", roomID)
	}
	return nil
}

func (r *mongoRoomRepo) TouchActivity(ctx context.Context, roomID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"last_activity": time.Now()}}
	if _, err := r.roomColl.UpdateOne(ctx, bson.M{"id": roomID}, update); err != nil {
		return utils.NewStorageError("touch room activity", err)
	}
	return nil
}

func (r *mongoRoomRepo) AppendMessage(ctx context.Context, msg *models.Message) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.messageColl.InsertOne(ctx, msg); err != nil {
		return utils.NewStorageError("insert message", err)
	}
	return nil
}

func (r *mongoRoomRepo) ListMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.messageColl.Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, utils.NewStorageError("list messages", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, utils.NewStorageError("decode messages", err)
	}
	return messages, nil
}

func (r *mongoRoomRepo) MarkRead(ctx context.Context, roomID, viewerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"room_id": roomID,
		"sender":  bson.M{"$ne": viewerID},
		"read":    false,
	}
	update := bson.M{"$set": bson.M{"read": true}}
	res, err := r.messageColl.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, utils.NewStorageError("mark messages read", err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoRoomRepo) CountUnread(ctx context.Context, roomID, viewerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"room_id": roomID,
		"sender":  bson.M{"$ne": viewerID},
		"read":    false,
	}
	count, err := r.messageColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, utils.NewStorageError("count unread messages", err)
	}
	return count, nil
}
