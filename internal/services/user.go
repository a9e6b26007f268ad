package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	appErrors "github.com/joaquinrv/tienda-platform/internal/errors"
	"github.com/joaquinrv/tienda-platform/internal/models"
	repository "github.com/joaquinrv/tienda-platform/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	TopUpFunds(ctx context.Context, userID int64, amount float64) (float64, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, req *models.AdminUpdateUserRequest) error
	DeleteUser(ctx context.Context, id int64) error
	SetFunds(ctx context.Context, id int64, funds float64) error
}

type userService struct {
	repo      repository.UserRepository
	rateLimit repository.RateLimitRepository
	jwtKey    []byte
	tokenTTL  time.Duration
}

func NewUserService(repo repository.UserRepository, rateLimit repository.RateLimitRepository, jwtKey []byte, tokenTTL time.Duration) UserService {
	return &userService{
		repo:      repo,
		rateLimit: rateLimit,
		jwtKey:    jwtKey,
		tokenTTL:  tokenTTL,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to check existing users").WithError(err)
	}

	if exists {
		return nil, appErrors.DuplicateEntryError("Username or email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	// Registration never creates admins.
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		Funds:    0,
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	allowed, remaining, retryAfter, err := s.rateLimit.CheckLoginRateLimit(ctx, req.Username)
	if err != nil {
		return nil, appErrors.InternalError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid username or password",
			RemainingTries: remaining,
		}, nil
	}

	claims := &models.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		Role:      user.Role,
		ExpiresIn: int(time.Until(claims.ExpiresAt.Time).Seconds()),
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("User not found").WithError(err)
	}

	return user, nil
}

func (s *userService) TopUpFunds(ctx context.Context, userID int64, amount float64) (float64, error) {

	if amount <= 0 {
		return 0, appErrors.ValidationError("Amount must be positive")
	}

	if amount > models.MaxFunds {
		return 0, appErrors.ValidationError("Amount exceeds the allowed maximum")
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return 0, appErrors.NotFoundError("User not found").WithError(err)
	}

	funds, err := s.repo.AddFunds(ctx, userID, amount)
	if errors.Is(err, repository.ErrFundsCeiling) {
		return 0, appErrors.BadRequestError("Balance would exceed the allowed maximum")
	}
	if err != nil {
		return 0, appErrors.DatabaseError("Failed to update funds").WithError(err)
	}

	return funds, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch users").WithError(err)
	}

	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, req *models.AdminUpdateUserRequest) error {

	if req.Email == nil && req.Role == nil && req.Password == nil {
		return appErrors.BadRequestError("Nothing to update")
	}

	var passwordHash *string

	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return appErrors.InternalError("Failed to secure password").WithError(err)
		}
		s := string(hashed)
		passwordHash = &s
	}

	err := s.repo.UpdateUser(ctx, id, req.Email, req.Role, passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFoundError("User not found")
	}
	if err != nil {
		return appErrors.DatabaseError("Failed to update user").WithError(err)
	}

	return nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {

	err := s.repo.DeleteUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFoundError("User not found")
	}
	if err != nil {
		return appErrors.DatabaseError("Failed to delete user").WithError(err)
	}

	return nil
}

func (s *userService) SetFunds(ctx context.Context, id int64, funds float64) error {

	if funds < 0 || funds > models.MaxFunds {
		return appErrors.ValidationError("Funds out of allowed range")
	}

	err := s.repo.SetFunds(ctx, id, funds)
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NotFoundError("User not found")
	}
	if err != nil {
		return appErrors.DatabaseError("Failed to set funds").WithError(err)
	}

	return nil
}
