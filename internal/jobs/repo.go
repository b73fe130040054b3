package jobs

import (
	"context"
	"errors"

	"wevolve-backend/match/model"
)

var (
	ErrNotFound  = errors.New("job not found")
	ErrDuplicate = errors.New("job id already exists")
)

// Repo stores normalized postings keyed by job id.
type Repo interface {
	Create(ctx context.Context, posting model.JobPosting) error
	GetByID(ctx context.Context, jobID string) (model.JobPosting, error)
	// List returns every posting ordered by job id.
	List(ctx context.Context) ([]model.JobPosting, error)
	// Skills returns the distinct required skills of all postings, sorted.
	Skills(ctx context.Context) ([]string, error)
}
