package jobs

import (
	"context"
	"slices"
	"sort"
	"sync"

	"wevolve-backend/match/model"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	jobs map[string]model.JobPosting
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{jobs: make(map[string]model.JobPosting)}
}

func (r *MemoryRepo) Create(ctx context.Context, posting model.JobPosting) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[posting.JobID]; ok {
		return ErrDuplicate
	}
	posting.RequiredSkills = slices.Clone(posting.RequiredSkills)
	r.jobs[posting.JobID] = posting
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (model.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return model.JobPosting{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	posting, ok := r.jobs[jobID]
	if !ok {
		return model.JobPosting{}, ErrNotFound
	}
	posting.RequiredSkills = slices.Clone(posting.RequiredSkills)
	return posting, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]model.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.JobPosting, 0, len(r.jobs))
	for _, posting := range r.jobs {
		posting.RequiredSkills = slices.Clone(posting.RequiredSkills)
		out = append(out, posting)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JobID < out[j].JobID })
	return out, nil
}

func (r *MemoryRepo) Skills(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	out := []string{}
	for _, posting := range r.jobs {
		for _, s := range posting.RequiredSkills {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}
