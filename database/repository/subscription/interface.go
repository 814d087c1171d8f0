// File: database/repository/subscription/interface.go
package subscriptionRepo

import (
	"context"
	"time"

	"mindhaven/database"
	"mindhaven/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SubscriptionRepository defines data access for client subscriptions.
// Guarded updates carry their status precondition in the filter so a stale
// caller loses with no write instead of overwriting a newer transition.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	GetByID(ctx context.Context, id string) (*models.Subscription, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Subscription, error)
	// Activate flips a pending_setup subscription to active, recording the
	// room id and client preferences. Returns false when the subscription
	// was not in pending_setup.
	Activate(ctx context.Context, id, roomID string, prefs map[string]string) (bool, error)
	// SetPractitioner assigns a practitioner to an active subscription.
	// Returns false when the subscription was not active.
	SetPractitioner(ctx context.Context, id, practitionerID string) (bool, error)
	// TransitionStatus moves a subscription from one status to another.
	// Returns false when the current status did not match from.
	TransitionStatus(ctx context.Context, id string, from, to models.SubscriptionStatus) (bool, error)
	// ExpireLapsed sweeps active subscriptions whose billing date is older
	// than cutoff into expired, returning how many were transitioned.
	ExpireLapsed(ctx context.Context, cutoff time.Time) (int64, error)
	ListAll(ctx context.Context) ([]models.Subscription, error)
}

type mongoSubscriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoSubscriptionRepo constructs a new MongoDB SubscriptionRepository.
func NewMongoSubscriptionRepo() SubscriptionRepository {
	return &mongoSubscriptionRepo{
		coll: database.DB().Collection("subscriptions"),
	}
}
