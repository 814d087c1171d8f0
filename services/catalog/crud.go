package catalog

import (
	"context"
	"strings"
	"time"

	"mindhaven/models"
	"mindhaven/utils"

	"github.com/google/uuid"
)

func (s *DefaultCatalogService) CreateProgram(ctx context.Context, program *models.Program) (*models.Program, error) {
	if strings.TrimSpace(program.Title) == "" {
		return nil, utils.NewValidationError("program title is required")
	}
	if program.Price <= 0 {
		return nil, utils.NewValidationError("program price must be positive")
	}
	if !models.ValidCategory(program.Category) {
		return nil, utils.NewValidationError("unknown program category %q", program.Category)
	}

	program.ID = uuid.New().String()
	program.CreatedAt = time.Now()
	program.UpdatedAt = program.CreatedAt

	if err := s.Repo.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *DefaultCatalogService) UpdateProgram(ctx context.Context, program *models.Program) error {
	if program.ID == "" {
		return utils.NewValidationError("program id is required")
	}
	if !models.ValidCategory(program.Category) {
		return utils.NewValidationError("unknown program category %q", program.Category)
	}
	return s.Repo.Update(ctx, program)
}

func (s *DefaultCatalogService) SetProgramActive(ctx context.Context, id string, active bool) error {
	return s.Repo.SetActive(ctx, id, active)
}

func (s *DefaultCatalogService) GetProgram(ctx context.Context, id string) (*models.Program, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultCatalogService) ListPrograms(ctx context.Context, activeOnly bool) ([]models.Program, error) {
	return s.Repo.List(ctx, activeOnly)
}
