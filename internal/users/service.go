package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"wevolve-backend/internal/shared/auth"
	"wevolve-backend/match/model"
	"wevolve-backend/match/normalize"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(pw, storedHash string) bool
}

type Service struct {
	Repo      Repo
	Passwords PasswordHasher
}

func NewService(repo Repo, passwords PasswordHasher) *Service {
	return &Service{Repo: repo, Passwords: passwords}
}

// Registration is a sign-up request. Profile is normalized before storage.
type Registration struct {
	FullName string
	Email    string
	Password string
	Profile  normalize.RawProfile
}

// Register normalizes the profile, hashes the password and creates the user.
func (s *Service) Register(ctx context.Context, reg Registration) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	profile, err := normalize.NormalizeProfile(reg.Profile)
	if err != nil {
		return User{}, err
	}
	hash, err := s.Passwords.Hash(reg.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return User{}, model.NewValidationError("password", err.Error())
	}
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(reg.FullName),
		Email:        strings.ToLower(strings.TrimSpace(reg.Email)),
		PasswordHash: hash,
		Provider:     ProviderPassword,
		Profile:      profile,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

// Authenticate returns the user owning email when password matches.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	user, err := s.Repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if !s.Passwords.Verify(password, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile applies the supplied fields of patch over the stored profile
// and normalizes the result. Nil fields keep their stored value.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch normalize.RawProfile) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	profile, err := normalize.NormalizeProfile(mergeProfile(user.Profile, patch))
	if err != nil {
		return User{}, err
	}
	return s.Repo.UpdateProfile(ctx, userID, profile)
}

// AddSkills merges skills into the stored profile, keeping existing order.
func (s *Service) AddSkills(ctx context.Context, userID string, skills []string) (User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	merged := append(append([]string{}, user.Profile.Skills...), skills...)
	return s.UpdateProfile(ctx, userID, normalize.RawProfile{Skills: merged})
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// UpsertFromOAuth finds or creates the user for a verified external identity.
func (s *Service) UpsertFromOAuth(ctx context.Context, email, fullName, provider string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return User{}, errors.New("email is required")
	}
	user, err := s.Repo.Upsert(ctx, User{
		ID:       uuid.NewString(),
		FullName: strings.TrimSpace(fullName),
		Email:    email,
		Provider: provider,
		Profile: model.CandidateProfile{
			Skills:             []string{},
			PreferredLocations: []string{},
			PreferredRoles:     []string{},
		},
	})
	if err != nil {
		return User{}, fmt.Errorf("upsert oauth user: %w", err)
	}
	return user, nil
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil || s.Passwords == nil {
		return errors.New("users service not configured")
	}
	return nil
}

func mergeProfile(current model.CandidateProfile, patch normalize.RawProfile) normalize.RawProfile {
	merged := normalize.RawProfile{
		Skills:             current.Skills,
		ExperienceYears:    current.ExperienceYears,
		PreferredLocations: current.PreferredLocations,
		PreferredRoles:     current.PreferredRoles,
		ExpectedSalary:     current.ExpectedSalary,
		Education: &normalize.RawEducation{
			Degree: current.Education.Degree,
			Field:  current.Education.Field,
			CGPA:   current.Education.CGPA,
		},
	}
	if supplied(patch.Skills) {
		merged.Skills = patch.Skills
	}
	if supplied(patch.ExperienceYears) {
		merged.ExperienceYears = patch.ExperienceYears
	}
	if patch.PreferredLocations != nil {
		merged.PreferredLocations = patch.PreferredLocations
	}
	if patch.PreferredRoles != nil {
		merged.PreferredRoles = patch.PreferredRoles
	}
	if supplied(patch.ExpectedSalary) {
		merged.ExpectedSalary = patch.ExpectedSalary
	}

	degree, field, cgpa := patch.Degree, patch.Field, patch.CGPA
	if patch.Education != nil {
		degree, field, cgpa = patch.Education.Degree, patch.Education.Field, patch.Education.CGPA
	}
	if degree != nil {
		merged.Education.Degree = degree
	}
	if field != nil {
		merged.Education.Field = field
	}
	if supplied(cgpa) {
		merged.Education.CGPA = cgpa
	}
	return merged
}

// supplied treats nil and blank strings as absent numeric input.
func supplied(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}
