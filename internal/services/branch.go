package service

import (
	"context"

	appErrors "github.com/joaquinrv/tienda-platform/internal/errors"
	"github.com/joaquinrv/tienda-platform/internal/models"
	repository "github.com/joaquinrv/tienda-platform/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultBranchImageURL is used when a branch is created without one.
const DefaultBranchImageURL = "https://static.tienda.example/branches/default.png"

type BranchService interface {
	CreateBranch(ctx context.Context, req *models.CreateBranchRequest) (*models.Branch, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
}

type branchService struct {
	repo      repository.BranchRepository
	sanitizer *bluemonday.Policy
}

func NewBranchService(repo repository.BranchRepository) BranchService {
	return &branchService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *branchService) CreateBranch(ctx context.Context, req *models.CreateBranchRequest) (*models.Branch, error) {

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = DefaultBranchImageURL
	}

	branch := &models.Branch{
		Name:     s.sanitizer.Sanitize(req.Name),
		Lat:      *req.Lat,
		Lng:      *req.Lng,
		ImageURL: imageURL,
	}

	if err := s.repo.CreateBranch(ctx, branch); err != nil {
		return nil, appErrors.DatabaseError("Failed to create branch").WithError(err)
	}

	return branch, nil
}

func (s *branchService) ListBranches(ctx context.Context) ([]models.Branch, error) {

	branches, err := s.repo.ListBranches(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch branches").WithError(err)
	}

	return branches, nil
}
