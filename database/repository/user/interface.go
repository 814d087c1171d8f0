// File: database/repository/user/interface.go
package userRepo

import (
	"context"

	"mindhaven/database"
	"mindhaven/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines data access for platform accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	// AppendSubscriptionSummary adds a compact subscription entry to the
	// user's profile index.
	AppendSubscriptionSummary(ctx context.Context, userID string, summary models.SubscriptionSummary) error
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	return &mongoUserRepo{
		coll: database.DB().Collection("users"),
	}
}
