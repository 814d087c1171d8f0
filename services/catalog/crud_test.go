package catalog

import (
	"context"
	"sync"
	"testing"

	"mindhaven/models"
	"mindhaven/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProgramRepo struct {
	mu       sync.Mutex
	programs map[string]*models.Program
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[string]*models.Program)}
}

func (f *fakeProgramRepo) Create(ctx context.Context, p *models.Program) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.programs[p.ID] = &cp
	return nil
}

func (f *fakeProgramRepo) GetByID(ctx context.Context, id string) (*models.Program, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.programs[id]
	if !ok {
		return nil, utils.NewNotFoundError("program", id)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProgramRepo) Update(ctx context.Context, p *models.Program) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.programs[p.ID]; !ok {
		return utils.NewNotFoundError("program", p.ID)
	}
	cp := *p
	f.programs[p.ID] = &cp
	return nil
}

func (f *fakeProgramRepo) SetActive(ctx context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.programs[id]
	if !ok {
		return utils.NewNotFoundError("program", id)
	}
	p.IsActive = active
	return nil
}

func (f *fakeProgramRepo) List(ctx context.Context, activeOnly bool) ([]models.Program, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Program
	for _, p := range f.programs {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func TestCreateProgramValidation(t *testing.T) {
	svc := &DefaultCatalogService{Repo: newFakeProgramRepo()}
	ctx := context.Background()

	var vErr *utils.ValidationError

	_, err := svc.CreateProgram(ctx, &models.Program{Price: 100, Category: models.CategoryTherapy})
	require.ErrorAs(t, err, &vErr, "title required")

	_, err = svc.CreateProgram(ctx, &models.Program{Title: "Therapy", Category: models.CategoryTherapy})
	require.ErrorAs(t, err, &vErr, "price must be positive")

	_, err = svc.CreateProgram(ctx, &models.Program{Title: "Therapy", Price: 100, Category: "astrology"})
	require.ErrorAs(t, err, &vErr, "category must be known")

	created, err := svc.CreateProgram(ctx, &models.Program{
		Title:    "Therapy",
		Price:    100,
		Category: models.CategoryTherapy,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestListProgramsActiveOnly(t *testing.T) {
	repo := newFakeProgramRepo()
	svc := &DefaultCatalogService{Repo: repo}
	ctx := context.Background()

	_, err := svc.CreateProgram(ctx, &models.Program{Title: "Active", Price: 50, Category: models.CategoryCoaching, IsActive: true})
	require.NoError(t, err)
	retired, err := svc.CreateProgram(ctx, &models.Program{Title: "Retired", Price: 50, Category: models.CategoryFitness, IsActive: true})
	require.NoError(t, err)
	require.NoError(t, svc.SetProgramActive(ctx, retired.ID, false))

	active, err := svc.ListPrograms(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListPrograms(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
