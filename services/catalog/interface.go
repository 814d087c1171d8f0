package catalog

import (
	"context"

	programRepo "mindhaven/database/repository/program"
	"mindhaven/models"
)

// CatalogService manages the wellness program catalog. Read-mostly;
// written by administrators.
type CatalogService interface {
	CreateProgram(ctx context.Context, program *models.Program) (*models.Program, error)
	UpdateProgram(ctx context.Context, program *models.Program) error
	SetProgramActive(ctx context.Context, id string, active bool) error
	GetProgram(ctx context.Context, id string) (*models.Program, error)
	ListPrograms(ctx context.Context, activeOnly bool) ([]models.Program, error)
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo programRepo.ProgramRepository
}
