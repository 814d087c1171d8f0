package user

import (
	"context"

	"mindhaven/models"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// UpdateFCMToken registers the device token pushes are delivered to. An
// empty token clears it.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	return s.Repo.UpdateFields(ctx, userID, map[string]interface{}{
		"fcm_token": token,
	})
}
