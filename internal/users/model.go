package users

import (
	"time"

	"wevolve-backend/match/model"
)

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// User is a registered candidate. Profile is always stored normalized.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Provider     string
	Profile      model.CandidateProfile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// View is the JSON shape clients read. The "requirment" key is what the web
// client was built against.
type View struct {
	ID          string                 `json:"_id"`
	FullName    string                 `json:"fullname"`
	Email       string                 `json:"email"`
	Requirement model.CandidateProfile `json:"requirment"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// View renders u without credentials.
func (u User) View() View {
	profile := u.Profile
	profile.Skills = nonNil(profile.Skills)
	profile.PreferredLocations = nonNil(profile.PreferredLocations)
	profile.PreferredRoles = nonNil(profile.PreferredRoles)
	return View{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		Requirement: profile,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
