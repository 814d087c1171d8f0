package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	roomRepo "mindhaven/database/repository/room"
	"mindhaven/models"
	"mindhaven/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateSubscription enrolls the user in a program. Price, features and
// practitioner type are copied off the program so later catalog edits do
// not change what the client purchased.
func (s *DefaultLifecycleService) CreateSubscription(ctx context.Context, userID, programID string) (*models.Subscription, error) {
	program, err := s.Programs.GetByID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if !program.IsActive {
		return nil, utils.NewValidationError("program %q is not available for enrollment", program.Title)
	}

	now := time.Now()
	features := make([]string, len(program.Features))
	copy(features, program.Features)

	sub := &models.Subscription{
		ID:               uuid.New().String(),
		UserID:           userID,
		PlanID:           program.ID,
		PlanTitle:        program.Title,
		PlanCategory:     program.Category,
		Price:            program.Price,
		PractitionerType: program.PractitionerType,
		Features:         features,
		Status:           models.SubscriptionPendingSetup,
		SetupComplete:    false,
		CreatedAt:        now,
		UpdatedAt:        now,
		NextBillingDate:  now.AddDate(0, 1, 0),
	}

	if err := s.Subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	summary := models.SubscriptionSummary{
		SubscriptionID: sub.ID,
		PlanID:         sub.PlanID,
		PlanTitle:      sub.PlanTitle,
		Status:         sub.Status,
		CreatedAt:      sub.CreatedAt,
	}
	if err := s.Users.AppendSubscriptionSummary(ctx, userID, summary); err != nil {
		return nil, err
	}

	return sub, nil
}

// CompleteSetup activates a pending subscription: it provisions the
// consultation room, writes the welcome message and only then flips the
// subscription to active. If the room writes fail the subscription stays
// pending_setup; an orphaned room from a half-finished earlier attempt is
// adopted rather than duplicated.
func (s *DefaultLifecycleService) CompleteSetup(ctx context.Context, subscriptionID string, preferences map[string]string) (*models.Subscription, error) {
	sub, err := s.Subs.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubscriptionPendingSetup {
		return nil, utils.NewInvalidStateError("subscription", string(sub.Status), "complete setup")
	}

	room, err := s.ensureRoom(ctx, sub)
	if err != nil {
		return nil, err
	}

	activated, err := s.Subs.Activate(ctx, sub.ID, room.ID, preferences)
	if err != nil {
		return nil, err
	}
	if !activated {
		// A concurrent setup won the activation; the room it references is
		// the same one we just ensured, so simply report the conflict.
		return nil, utils.NewInvalidStateError("subscription", string(models.SubscriptionActive), "complete setup")
	}

	sub.Status = models.SubscriptionActive
	sub.SetupComplete = true
	sub.RoomID = room.ID
	sub.ClientPreferences = preferences
	sub.UpdatedAt = time.Now()

	utils.GetLogger().Info("subscription activated",
		zap.String("subscriptionId", sub.ID),
		zap.String("roomId", room.ID),
	)
	return sub, nil
}

// ensureRoom returns the subscription's consultation room, creating it and
// its welcome message when absent. The unique index on subscription_id
// turns a creation race into an adoption of the winner's room.
func (s *DefaultLifecycleService) ensureRoom(ctx context.Context, sub *models.Subscription) (*models.ConsultationRoom, error) {
	existing, err := s.Rooms.GetBySubscriptionID(ctx, sub.ID)
	if err == nil {
		return existing, s.ensureWelcomeMessage(ctx, existing, sub)
	}
	var notFound *utils.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	room := &models.ConsultationRoom{
		ID:               uuid.New().String(),
		SubscriptionID:   sub.ID,
		ClientID:         sub.UserID,
		PlanTitle:        sub.PlanTitle,
		PlanCategory:     sub.PlanCategory,
		PractitionerType: sub.PractitionerType,
		Status:           models.RoomStatusOpen,
		Settings:         models.DefaultRoomSettings(),
		LastActivity:     time.Now(),
		CreatedAt:        time.Now(),
	}
	if err := s.Rooms.Create(ctx, room); err != nil {
		if errors.Is(err, roomRepo.ErrRoomExists) {
			winner, err := s.Rooms.GetBySubscriptionID(ctx, sub.ID)
			if err != nil {
				return nil, err
			}
			return winner, s.ensureWelcomeMessage(ctx, winner, sub)
		}
		return nil, err
	}

	if err := s.writeWelcomeMessage(ctx, room, sub); err != nil {
		// The room stays behind as an orphan; the subscription was not
		// activated, so a retry adopts it and re-attempts the message.
		return nil, err
	}
	return room, nil
}

func (s *DefaultLifecycleService) ensureWelcomeMessage(ctx context.Context, room *models.ConsultationRoom, sub *models.Subscription) error {
	msgs, err := s.Rooms.ListMessages(ctx, room.ID)
	if err != nil {
		return err
	}
	if len(msgs) > 0 {
		return nil
	}
	return s.writeWelcomeMessage(ctx, room, sub)
}

func (s *DefaultLifecycleService) writeWelcomeMessage(ctx context.Context, room *models.ConsultationRoom, sub *models.Subscription) error {
	welcome := &models.Message{
		ID:     uuid.New().String(),
		RoomID: room.ID,
		Type:   models.MessageSystem,
		Content: fmt.Sprintf(
			"Welcome to your %s consultation room! Your %s will reach out here to get started.",
			sub.PlanTitle, sub.PractitionerType,
		),
		Sender:     models.SystemSender,
		SenderName: "MindHaven",
		SenderType: models.SenderSystem,
		Timestamp:  time.Now(),
		Read:       false,
	}
	return s.Rooms.AppendMessage(ctx, welcome)
}

// AssignPractitioner attaches a practitioner to an active subscription and
// mirrors the assignment onto the consultation room.
func (s *DefaultLifecycleService) AssignPractitioner(ctx context.Context, subscriptionID, practitionerID string) error {
	ok, err := s.Subs.SetPractitioner(ctx, subscriptionID, practitionerID)
	if err != nil {
		return err
	}
	if !ok {
		sub, err := s.Subs.GetByID(ctx, subscriptionID)
		if err != nil {
			return err
		}
		return utils.NewInvalidStateError("subscription", string(sub.Status), "assign practitioner")
	}

	sub, err := s.Subs.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.RoomID != "" {
		if err := s.Rooms.SetPractitioner(ctx, sub.RoomID, practitionerID); err != nil {
			return err
		}
	}
	return nil
}

// Pause suspends an active subscription.
func (s *DefaultLifecycleService) Pause(ctx context.Context, subscriptionID string) error {
	return s.transitionFromActive(ctx, subscriptionID, models.SubscriptionPaused, "pause")
}

// Cancel ends a subscription. The record is never deleted, only moved to
// cancelled.
func (s *DefaultLifecycleService) Cancel(ctx context.Context, subscriptionID string) error {
	return s.transitionFromActive(ctx, subscriptionID, models.SubscriptionCancelled, "cancel")
}

func (s *DefaultLifecycleService) transitionFromActive(ctx context.Context, id string, to models.SubscriptionStatus, op string) error {
	ok, err := s.Subs.TransitionStatus(ctx, id, models.SubscriptionActive, to)
	if err != nil {
		return err
	}
	if !ok {
		sub, err := s.Subs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return utils.NewInvalidStateError("subscription", string(sub.Status), op)
	}
	return nil
}

func (s *DefaultLifecycleService) GetSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	return s.Subs.GetByID(ctx, id)
}

func (s *DefaultLifecycleService) GetForUser(ctx context.Context, userID string) ([]models.Subscription, error) {
	return s.Subs.GetByUserID(ctx, userID)
}
