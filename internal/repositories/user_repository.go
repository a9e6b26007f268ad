package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/joaquinrv/tienda-platform/internal/utils"
)

// ErrFundsCeiling is returned when a balance change would push an account
// past models.MaxFunds.
var ErrFundsCeiling = errors.New("funds ceiling exceeded")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, email, role, passwordHash *string) error
	DeleteUser(ctx context.Context, id int64) error
	AddFunds(ctx context.Context, id int64, amount float64) (float64, error)
	SetFunds(ctx context.Context, id int64, funds float64) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO users(username, email, password, role, funds, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	return r.DB.QueryRowContext(dbCtx, query, user.Username, user.Email, user.Password, user.Role, user.Funds).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := `SELECT id, username, email, password, role, funds, created_at, updated_at
			  FROM users
			  WHERE username = $1`

	err := r.DB.QueryRowContext(dbCtx, query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.Password, &user.Role, &user.Funds, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}

	query := `SELECT id, username, email, role, funds, created_at, updated_at
			  FROM users
			  WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.Funds, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`

	err := r.DB.QueryRowContext(dbCtx, query, username, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, username, email, role, funds, created_at, updated_at
			  FROM users
			  ORDER BY id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	defer rows.Close()

	var users []models.User

	for rows.Next() {
		var user models.User

		err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.Funds, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateUser applies only the provided fields, mirroring the admin form
// where any subset of email, role and password may be edited.
func (r *userRepository) UpdateUser(ctx context.Context, id int64, email, role, passwordHash *string) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var sets []string
	var args []any

	if email != nil {
		args = append(args, *email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if role != nil {
		args = append(args, *role)
		sets = append(sets, fmt.Sprintf("role = $%d", len(args)))
	}
	if passwordHash != nil {
		args = append(args, *passwordHash)
		sets = append(sets, fmt.Sprintf("password = $%d", len(args)))
	}

	if len(sets) == 0 {
		return errors.New("nothing to update")
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.DB.ExecContext(dbCtx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// AddFunds credits an account through a conditional update so that two
// concurrent top-ups can never jointly pass the ceiling.
func (r *userRepository) AddFunds(ctx context.Context, id int64, amount float64) (float64, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var funds float64

	query := `
		UPDATE users SET funds = funds + $1, updated_at = NOW()
		WHERE id = $2 AND funds + $1 <= $3
		RETURNING funds`

	err := r.DB.QueryRowContext(dbCtx, query, amount, id, models.MaxFunds).Scan(&funds)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrFundsCeiling
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add funds: %w", err)
	}

	return funds, nil
}

func (r *userRepository) SetFunds(ctx context.Context, id int64, funds float64) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// Same ceiling guard as AddFunds; the service validates the range first,
	// so zero rows here means the user does not exist.
	result, err := r.DB.ExecContext(dbCtx, `UPDATE users SET funds = $1, updated_at = NOW() WHERE id = $2 AND $1 <= $3`, funds, id, models.MaxFunds)
	if err != nil {
		return fmt.Errorf("failed to set funds: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
