package mocks

import (
	"context"

	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type BranchRepository struct {
	mock.Mock
}

func (m *BranchRepository) CreateBranch(ctx context.Context, branch *models.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *BranchRepository) ListBranches(ctx context.Context) ([]models.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Branch), args.Error(1)
}
