package mocks

import (
	"context"

	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserRepository) UpdateUser(ctx context.Context, id int64, email, role, passwordHash *string) error {
	args := m.Called(ctx, id, email, role, passwordHash)
	return args.Error(0)
}

func (m *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepository) AddFunds(ctx context.Context, id int64, amount float64) (float64, error) {
	args := m.Called(ctx, id, amount)
	return args.Get(0).(float64), args.Error(1)
}

func (m *UserRepository) SetFunds(ctx context.Context, id int64, funds float64) error {
	args := m.Called(ctx, id, funds)
	return args.Error(0)
}
