package health

import (
	"context"
	"database/sql"
	"time"

	"wevolve-backend/internal/shared/storage/db"
)

const pingTimeout = 2 * time.Second

// Service reports process and dependency health.
type Service struct {
	DB      *sql.DB
	Version func(ctx context.Context) (int64, error)
}

// NewService constructs a health service. database may be nil when the
// process runs on in-memory repositories.
func NewService(database *sql.DB) *Service {
	s := &Service{DB: database}
	if database != nil {
		s.Version = func(ctx context.Context) (int64, error) {
			return db.MigrationVersion(ctx, database)
		}
	}
	return s
}

// Status is the health payload.
type Status struct {
	OK               bool   `json:"ok"`
	Storage          string `json:"storage"`
	Database         string `json:"database,omitempty"`
	MigrationVersion int64  `json:"migrationVersion,omitempty"`
}

// Check pings the database when one is configured.
func (s *Service) Check(ctx context.Context) Status {
	if s.DB == nil {
		return Status{OK: true, Storage: "memory"}
	}
	st := Status{OK: true, Storage: "postgres", Database: "up"}
	if err := db.Ping(ctx, s.DB, pingTimeout); err != nil {
		st.OK = false
		st.Database = "down"
		return st
	}
	if s.Version != nil {
		if v, err := s.Version(ctx); err == nil {
			st.MigrationVersion = v
		}
	}
	return st
}
