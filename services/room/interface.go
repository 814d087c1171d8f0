package room

import (
	"context"

	roomRepo "mindhaven/database/repository/room"
	userRepo "mindhaven/database/repository/user"
	"mindhaven/models"
)

// RoomService manages consultation-room messaging. Rooms themselves are
// provisioned by the subscription lifecycle; this service only reads them
// and appends to their message history.
type RoomService interface {
	GetRoom(ctx context.Context, roomID, viewerID string) (*models.ConsultationRoom, error)
	GetRoomsForClient(ctx context.Context, clientID string) ([]models.ConsultationRoom, error)
	SendMessage(ctx context.Context, roomID, senderID string, content string) (*models.Message, error)
	MarkAsRead(ctx context.Context, roomID, viewerID string) (int64, error)
	ListMessages(ctx context.Context, roomID, viewerID string) ([]models.Message, error)
	// StreamMessages returns the room history plus a live channel of
	// subsequent messages. The returned teardown must be called when the
	// view closes; cancelling ctx tears the stream down as well.
	StreamMessages(ctx context.Context, roomID, viewerID string) ([]models.Message, <-chan models.Message, func(), error)
	UnreadCount(ctx context.Context, roomID, viewerID string) (int64, error)
}

// MessageBus fans sent messages out to open room viewers.
type MessageBus interface {
	Publish(ctx context.Context, roomID string, msg models.Message) error
	// Subscribe returns a live message channel for the room and a teardown
	// that closes the channel and releases the subscription.
	Subscribe(ctx context.Context, roomID string) (<-chan models.Message, func(), error)
}

// DefaultRoomService implements RoomService.
type DefaultRoomService struct {
	Repo  roomRepo.RoomRepository
	Users userRepo.UserRepository
	Bus   MessageBus
}
