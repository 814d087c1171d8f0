// File: database/repository/room/interface.go
package roomRepo

import (
	"context"

	"mindhaven/database"
	"mindhaven/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// RoomRepository defines data access for consultation rooms and their
// messages. Messages are append-only; read-flags are the single mutable
// field on them.
type RoomRepository interface {
	Create(ctx context.Context, room *models.ConsultationRoom) error
	GetByID(ctx context.Context, id string) (*models.ConsultationRoom, error)
	// GetBySubscriptionID supports the idempotent re-run of setup: an
	// existing room for the subscription is adopted, never duplicated.
	GetBySubscriptionID(ctx context.Context, subscriptionID string) (*models.ConsultationRoom, error)
	GetByClientID(ctx context.Context, clientID string) ([]models.ConsultationRoom, error)
	SetPractitioner(ctx context.Context, roomID, practitionerID string) error
	TouchActivity(ctx context.Context, roomID string) error

	AppendMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, roomID string) ([]models.Message, error)
	// MarkRead flips read on every unread message in the room not sent by
	// viewerID, returning the number of messages flipped.
	MarkRead(ctx context.Context, roomID, viewerID string) (int64, error)
	CountUnread(ctx context.Context, roomID, viewerID string) (int64, error)
}

type mongoRoomRepo struct {
	roomColl    *mongo.Collection
	messageColl *mongo.Collection
}

// NewMongoRoomRepo constructs a new MongoDB RoomRepository.
func NewMongoRoomRepo() RoomRepository {
	db := database.DB()
	return &mongoRoomRepo{
		roomColl:    db.Collection("rooms"),
		messageColl: db.Collection("messages"),
	}
}
