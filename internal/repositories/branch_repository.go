package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joaquinrv/tienda-platform/internal/models"
	"github.com/joaquinrv/tienda-platform/internal/utils"
)

type BranchRepository interface {
	CreateBranch(ctx context.Context, branch *models.Branch) error
	ListBranches(ctx context.Context) ([]models.Branch, error)
}

type branchRepository struct {
	DB *sql.DB
}

func NewBranchRepo(db *sql.DB) BranchRepository {
	return &branchRepository{DB: db}
}

func (r *branchRepository) CreateBranch(ctx context.Context, branch *models.Branch) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO branches (name, lat, lng, image_url, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`

	return r.DB.QueryRowContext(dbCtx, query, branch.Name, branch.Lat, branch.Lng, branch.ImageURL).
		Scan(&branch.ID, &branch.CreatedAt)
}

func (r *branchRepository) ListBranches(ctx context.Context) ([]models.Branch, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, lat, lng, image_url, created_at FROM branches ORDER BY id`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	defer rows.Close()

	var branches []models.Branch

	for rows.Next() {
		var branch models.Branch

		err := rows.Scan(&branch.ID, &branch.Name, &branch.Lat, &branch.Lng, &branch.ImageURL, &branch.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}

		branches = append(branches, branch)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return branches, nil
}
