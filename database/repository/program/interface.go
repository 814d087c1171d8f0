// File: database/repository/program/interface.go
package programRepo

import (
	"context"

	"mindhaven/database"
	"mindhaven/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ProgramRepository defines data access for catalog programs.
type ProgramRepository interface {
	Create(ctx context.Context, program *models.Program) error
	GetByID(ctx context.Context, id string) (*models.Program, error)
	Update(ctx context.Context, program *models.Program) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, activeOnly bool) ([]models.Program, error)
}

type mongoProgramRepo struct {
	coll *mongo.Collection
}

// NewMongoProgramRepo constructs a new MongoDB ProgramRepository.
func NewMongoProgramRepo() ProgramRepository {
	return &mongoProgramRepo{
		coll: database.DB().Collection("programs"),
	}
}
