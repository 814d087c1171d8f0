package admin

import (
	"context"

	subscriptionRepo "mindhaven/database/repository/subscription"
	systemRepo "mindhaven/database/repository/system"
	userRepo "mindhaven/database/repository/user"
	"mindhaven/models"
	"mindhaven/services/catalog"
	"mindhaven/utils"

	"go.uber.org/zap"
)

// AdminService covers platform bootstrap and the administrator's read
// surface over accounts and subscriptions.
type AdminService interface {
	// EnsureInitialized runs once at startup. The first boot seeds the
	// starter catalog; later boots observe the persisted flag and do
	// nothing. Safe under concurrent instances.
	EnsureInitialized(ctx context.Context) error
	SystemStatus(ctx context.Context) (*models.SystemSettings, error)
	ListClients(ctx context.Context) ([]models.User, error)
	ListPractitioners(ctx context.Context) ([]models.User, error)
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
}

// DefaultAdminService implements AdminService.
type DefaultAdminService struct {
	System  systemRepo.SystemRepository
	Users   userRepo.UserRepository
	Subs    subscriptionRepo.SubscriptionRepository
	Catalog catalog.CatalogService
}

func (s *DefaultAdminService) EnsureInitialized(ctx context.Context) error {
	settings, err := s.System.Get(ctx)
	if err != nil {
		return err
	}
	if settings.Initialized {
		return nil
	}

	for i := range starterPrograms {
		p := starterPrograms[i]
		if _, err := s.Catalog.CreateProgram(ctx, &p); err != nil {
			utils.GetLogger().Warn("failed to seed starter program",
				zap.String("title", p.Title), zap.Error(err))
		}
	}

	if err := s.System.MarkInitialized(ctx, "system"); err != nil {
		return err
	}
	utils.GetLogger().Info("platform initialized with starter catalog",
		zap.Int("programs", len(starterPrograms)))
	return nil
}

func (s *DefaultAdminService) SystemStatus(ctx context.Context) (*models.SystemSettings, error) {
	return s.System.Get(ctx)
}

func (s *DefaultAdminService) ListClients(ctx context.Context) ([]models.User, error) {
	return s.Users.ListByRole(ctx, models.RoleClient)
}

func (s *DefaultAdminService) ListPractitioners(ctx context.Context) ([]models.User, error) {
	return s.Users.ListByRole(ctx, models.RolePractitioner)
}

func (s *DefaultAdminService) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	return s.Subs.ListAll(ctx)
}
