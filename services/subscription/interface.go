package subscription

import (
	"context"

	programRepo "mindhaven/database/repository/program"
	roomRepo "mindhaven/database/repository/room"
	subscriptionRepo "mindhaven/database/repository/subscription"
	userRepo "mindhaven/database/repository/user"
	"mindhaven/models"
)

// LifecycleService walks a subscription from purchase through setup to
// activation, and onwards to paused/cancelled/expired. Activation is the
// only step with a cross-entity ordering requirement: the consultation
// room must exist before the subscription reports active.
type LifecycleService interface {
	CreateSubscription(ctx context.Context, userID, programID string) (*models.Subscription, error)
	CompleteSetup(ctx context.Context, subscriptionID string, preferences map[string]string) (*models.Subscription, error)
	AssignPractitioner(ctx context.Context, subscriptionID, practitionerID string) error
	Pause(ctx context.Context, subscriptionID string) error
	Cancel(ctx context.Context, subscriptionID string) error
	GetSubscription(ctx context.Context, id string) (*models.Subscription, error)
	GetForUser(ctx context.Context, userID string) ([]models.Subscription, error)
}

// DefaultLifecycleService implements LifecycleService.
type DefaultLifecycleService struct {
	Subs     subscriptionRepo.SubscriptionRepository
	Programs programRepo.ProgramRepository
	Rooms    roomRepo.RoomRepository
	Users    userRepo.UserRepository
}
