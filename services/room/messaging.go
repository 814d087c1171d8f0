package room

import (
	"context"
	"strings"
	"time"

	"mindhaven/models"
	"mindhaven/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxMessageLength caps a single chat entry.
const MaxMessageLength = 4000

// participant resolves the viewer's side of the room, or fails with
// AuthorizationError when they are neither the client nor the assigned
// practitioner.
func participant(r *models.ConsultationRoom, viewerID string) (models.SenderType, error) {
	switch viewerID {
	case r.ClientID:
		return models.SenderClient, nil
	case models.SystemSender:
		return models.SenderSystem, nil
	}
	if r.PractitionerID != "" && viewerID == r.PractitionerID {
		return models.SenderPractitioner, nil
	}
	return "", utils.NewAuthorizationError("user %s is not a participant of this room", viewerID)
}

func (s *DefaultRoomService) GetRoom(ctx context.Context, roomID, viewerID string) (*models.ConsultationRoom, error) {
	r, err := s.Repo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if _, err := participant(r, viewerID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *DefaultRoomService) GetRoomsForClient(ctx context.Context, clientID string) ([]models.ConsultationRoom, error) {
	return s.Repo.GetByClientID(ctx, clientID)
}

// SendMessage appends a text message to the room, bumps its activity
// timestamp and fans the message out to open viewers.
func (s *DefaultRoomService) SendMessage(ctx context.Context, roomID, senderID string, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, utils.NewValidationError("message content is empty")
	}
	if len(content) > MaxMessageLength {
		return nil, utils.NewValidationError("message exceeds %d characters", MaxMessageLength)
	}

	r, err := s.Repo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	senderType, err := participant(r, senderID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:         uuid.New().String(),
		RoomID:     roomID,
		Type:       models.MessageText,
		Content:    content,
		Sender:     senderID,
		SenderName: s.senderName(ctx, senderID, senderType),
		SenderType: senderType,
		Timestamp:  time.Now(),
		Read:       false,
	}
	if err := s.Repo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.Repo.TouchActivity(ctx, roomID); err != nil {
		utils.GetLogger().Warn("failed to bump room activity",
			zap.String("roomId", roomID), zap.Error(err))
	}

	if s.Bus != nil {
		if err := s.Bus.Publish(ctx, roomID, *msg); err != nil {
			utils.GetLogger().Warn("failed to publish room message",
				zap.String("roomId", roomID), zap.Error(err))
		}
	}
	return msg, nil
}

func (s *DefaultRoomService) senderName(ctx context.Context, senderID string, senderType models.SenderType) string {
	if senderType == models.SenderSystem {
		return "MindHaven"
	}
	u, err := s.Users.GetByID(ctx, senderID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// MarkAsRead flips the read flag on every message in the room the viewer
// did not send. Triggered on room view, so this is read-upon-render, not
// a delivery receipt.
func (s *DefaultRoomService) MarkAsRead(ctx context.Context, roomID, viewerID string) (int64, error) {
	r, err := s.Repo.GetByID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if _, err := participant(r, viewerID); err != nil {
		return 0, err
	}
	return s.Repo.MarkRead(ctx, roomID, viewerID)
}

// ListMessages returns the room history ascending by timestamp.
func (s *DefaultRoomService) ListMessages(ctx context.Context, roomID, viewerID string) ([]models.Message, error) {
	r, err := s.Repo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if _, err := participant(r, viewerID); err != nil {
		return nil, err
	}
	return s.Repo.ListMessages(ctx, roomID)
}

// StreamMessages returns history plus a live tail. The caller owns the
// teardown; every subscribe is paired with an unsubscribe when the view
// closes.
func (s *DefaultRoomService) StreamMessages(ctx context.Context, roomID, viewerID string) ([]models.Message, <-chan models.Message, func(), error) {
	r, err := s.Repo.GetByID(ctx, roomID)
	if err != nil {
		return nil, nil, nil, err
	}
	if _, err := participant(r, viewerID); err != nil {
		return nil, nil, nil, err
	}
	if s.Bus == nil {
		history, err := s.Repo.ListMessages(ctx, roomID)
		if err != nil {
			return nil, nil, nil, err
		}
		ch := make(chan models.Message)
		close(ch)
		return history, ch, func() {}, nil
	}

	// Subscribe before reading history so nothing published in between is
	// lost. A message can then land in both; the live tail drops ids the
	// history already holds.
	live, stop, err := s.Bus.Subscribe(ctx, roomID)
	if err != nil {
		return nil, nil, nil, err
	}
	history, err := s.Repo.ListMessages(ctx, roomID)
	if err != nil {
		stop()
		return nil, nil, nil, err
	}
	seen := make(map[string]struct{}, len(history))
	for _, m := range history {
		seen[m.ID] = struct{}{}
	}

	out := make(chan models.Message)
	go func() {
		defer close(out)
		for m := range live {
			if _, dup := seen[m.ID]; dup {
				continue
			}
			select {
			case out <- m:
			case <-ctx.Done():
				return
			}
		}
	}()
	return history, out, stop, nil
}

func (s *DefaultRoomService) UnreadCount(ctx context.Context, roomID, viewerID string) (int64, error) {
	r, err := s.Repo.GetByID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if _, err := participant(r, viewerID); err != nil {
		return 0, err
	}
	return s.Repo.CountUnread(ctx, roomID, viewerID)
}
