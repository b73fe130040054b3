package uploads

import (
	"context"
	"slices"
	"sync"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string][]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string][]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume.DetectedSkills = slices.Clone(resume.DetectedSkills)
	r.byUser[resume.UserID] = append(r.byUser[resume.UserID], resume)
	return nil
}

func (r *MemoryRepo) LatestByUser(ctx context.Context, userID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.byUser[userID]
	if len(list) == 0 {
		return Resume{}, ErrNotFound
	}
	return list[len(list)-1], nil
}
