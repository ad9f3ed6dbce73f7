package mocks

import (
	"context"

	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/service"
)

// MockCreatorService is a CreatorService whose behaviour is set per test.
// Unset funcs return empty results.
type MockCreatorService struct {
	CreateFunc func(ctx context.Context, dto *models.CreatorDTO) (*models.CreatorDTO, error)
	GetOneFunc func(ctx context.Context, id int64) (*models.CreatorDTO, error)
	GetAllFunc func(ctx context.Context) ([]*models.CreatorDTO, error)
	UpdateFunc func(ctx context.Context, dto *models.CreatorDTO) (*models.CreatorDTO, error)
	DeleteFunc func(ctx context.Context, id int64) error
	Calls      int
}

// Verify interface compliance
var _ service.CreatorService = (*MockCreatorService)(nil)

func NewMockCreatorService() *MockCreatorService {
	return &MockCreatorService{}
}

func (m *MockCreatorService) Create(ctx context.Context, dto *models.CreatorDTO) (*models.CreatorDTO, error) {
	m.Calls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, dto)
	}
	return dto, nil
}

func (m *MockCreatorService) GetOne(ctx context.Context, id int64) (*models.CreatorDTO, error) {
	m.Calls++
	if m.GetOneFunc != nil {
		return m.GetOneFunc(ctx, id)
	}
	return &models.CreatorDTO{ID: id}, nil
}

func (m *MockCreatorService) GetAll(ctx context.Context) ([]*models.CreatorDTO, error) {
	m.Calls++
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return make([]*models.CreatorDTO, 0), nil
}

func (m *MockCreatorService) Update(ctx context.Context, dto *models.CreatorDTO) (*models.CreatorDTO, error) {
	m.Calls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, dto)
	}
	return dto, nil
}

func (m *MockCreatorService) Delete(ctx context.Context, id int64) error {
	m.Calls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockHealthChecker reports Err from every check
type MockHealthChecker struct {
	Err error
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Err
}
