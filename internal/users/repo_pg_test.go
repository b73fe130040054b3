package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"wevolve-backend/match/model"
)

var userRowColumns = []string{"id", "full_name", "email", "password_hash", "provider", "profile", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)
	user := User{ID: "u1", FullName: "A", Email: "a@example.com", PasswordHash: "h"}

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "A", "a@example.com", "h", ProviderPassword, sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	if err := repo.Create(context.Background(), user); err != ErrEmailTaken {
		t.Fatalf("Create error = %v, want ErrEmailTaken", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByEmailDecodesProfile(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	profile := `{"skills":["go"],"experience_years":3,"education":{"degree":"BSc","field":"CS","cgpa":8},"preferred_locations":["pune"],"preferred_roles":[],"expected_salary":100}`

	mock.ExpectQuery("SELECT (.+) FROM users WHERE lower\\(email\\) = lower\\(\\$1\\)").
		WithArgs("A@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "A", "a@example.com", "h", "password", []byte(profile), now, now))

	user, err := repo.GetByEmail(context.Background(), "A@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.ID != "u1" || user.Profile.ExperienceYears != 3 || user.Profile.Education.Degree != "BSc" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(user.Profile.Skills) != 1 || user.Profile.Skills[0] != "go" {
		t.Fatalf("unexpected skills: %v", user.Profile.Skills)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("GetByID error = %v, want ErrNotFound", err)
	}
}

func TestPGRepoUpdateProfile(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	profile := model.CandidateProfile{Skills: []string{"sql"}, ExpectedSalary: 5}

	mock.ExpectQuery("UPDATE users SET profile").
		WithArgs("u1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("u1", "A", "a@example.com", "h", "password", []byte(`{"skills":["sql"],"expected_salary":5}`), now, now))

	user, err := repo.UpdateProfile(context.Background(), "u1", profile)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.Profile.ExpectedSalary != 5 {
		t.Fatalf("unexpected profile: %+v", user.Profile)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpsertReturnsStoredRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO users (.+) ON CONFLICT").
		WithArgs(sqlmock.AnyArg(), "Dev", "dev@example.com", "", ProviderGoogle, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow("existing", "Dev", "dev@example.com", "", "password", []byte(`{}`), now, now))

	user, err := repo.Upsert(context.Background(), User{ID: "new", FullName: "Dev", Email: "dev@example.com", Provider: ProviderGoogle})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if user.ID != "existing" {
		t.Fatalf("expected stored id, got %s", user.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
