package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"wevolve-backend/match/model"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	users   map[string]User
	byEmail map[string]string
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:   make(map[string]User),
		byEmail: make(map[string]string),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := emailKey(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return ErrEmailTaken
	}
	now := r.now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	r.byEmail[key] = user.ID
	return nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, user User) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := emailKey(user.Email)
	now := r.now()
	if id, ok := r.byEmail[key]; ok {
		existing := r.users[id]
		if user.FullName != "" {
			existing.FullName = user.FullName
		}
		existing.UpdatedAt = now
		r.users[id] = existing
		return existing, nil
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	r.byEmail[key] = user.ID
	return user, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.users[id], nil
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, userID string, profile model.CandidateProfile) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	user.Profile = profile
	user.UpdatedAt = r.now()
	r.users[userID] = user
	return user, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
