// File: database/repository/room/indexes.go
package roomRepo

import (
	"context"
	"time"

	"mindhaven/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureRoomIndexes creates the indexes the room collections rely on. The
// unique index on subscription_id is load-bearing: it is what makes a
// second concurrent setup of the same subscription unable to create a
// duplicate room.
func EnsureRoomIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db := database.DB()

	_, err := db.Collection("rooms").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subscription_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "client_id", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("messages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "timestamp", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "read", Value: 1}},
		},
	})
	return err
}
