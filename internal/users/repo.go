package users

import (
	"context"

	"wevolve-backend/match/model"
)

// Repo persists users. Emails are unique case-insensitively.
type Repo interface {
	Create(ctx context.Context, user User) error
	// Upsert inserts user or, when the email exists, refreshes its name and
	// returns the stored record.
	Upsert(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdateProfile(ctx context.Context, userID string, profile model.CandidateProfile) (User, error)
}
