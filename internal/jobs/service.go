package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"wevolve-backend/match/model"
	"wevolve-backend/match/normalize"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Create normalizes raw and stores it. A blank job id is replaced with a
// generated one.
func (s *Service) Create(ctx context.Context, raw normalize.RawPosting) (model.JobPosting, error) {
	if s == nil || s.Repo == nil {
		return model.JobPosting{}, errors.New("jobs service not configured")
	}
	if id, err := normalize.Text("job_id", raw.JobID); err == nil && id == "" {
		raw.JobID = uuid.NewString()
	}
	posting, err := normalize.NormalizePosting(raw)
	if err != nil {
		return model.JobPosting{}, err
	}
	if err := s.Repo.Create(ctx, posting); err != nil {
		return model.JobPosting{}, err
	}
	return posting, nil
}

func (s *Service) Get(ctx context.Context, jobID string) (model.JobPosting, error) {
	if s == nil || s.Repo == nil {
		return model.JobPosting{}, errors.New("jobs service not configured")
	}
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return model.JobPosting{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, jobID)
}

func (s *Service) List(ctx context.Context) ([]model.JobPosting, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("jobs service not configured")
	}
	return s.Repo.List(ctx)
}

// Vocabulary is the set of skills any posting asks for. Resume skill
// detection matches against it.
func (s *Service) Vocabulary(ctx context.Context) ([]string, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("jobs service not configured")
	}
	return s.Repo.Skills(ctx)
}

// ImportReport summarizes a bulk import.
type ImportReport struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// Import validates document against the import schema, normalizes every
// posting and then stores them. Any invalid posting aborts the import before
// anything is written; postings whose id already exists are skipped.
func (s *Service) Import(ctx context.Context, document []byte) (ImportReport, error) {
	if s == nil || s.Repo == nil {
		return ImportReport{}, errors.New("jobs service not configured")
	}
	postings, err := ParseImport(document)
	if err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{Created: []string{}, Skipped: []string{}}
	for _, posting := range postings {
		if err := s.Repo.Create(ctx, posting); err != nil {
			if errors.Is(err, ErrDuplicate) {
				report.Skipped = append(report.Skipped, posting.JobID)
				continue
			}
			return report, fmt.Errorf("import job %s: %w", posting.JobID, err)
		}
		report.Created = append(report.Created, posting.JobID)
	}
	return report, nil
}

// ParseImport validates and normalizes an import document without storing it.
func ParseImport(document []byte) ([]model.JobPosting, error) {
	if err := ValidateImport(document); err != nil {
		return nil, err
	}
	var items []map[string]any
	if err := json.Unmarshal(document, &items); err != nil {
		return nil, fmt.Errorf("decode import document: %w", err)
	}
	out := make([]model.JobPosting, 0, len(items))
	for i, item := range items {
		raw, err := normalize.DecodePosting(item)
		if err != nil {
			return nil, fmt.Errorf("posting %d: %w", i, err)
		}
		posting, err := normalize.NormalizePosting(raw)
		if err != nil {
			return nil, fmt.Errorf("posting %d: %w", i, err)
		}
		out = append(out, posting)
	}
	return out, nil
}

// Seed stores the development postings, ignoring ones already present.
func (s *Service) Seed(ctx context.Context) error {
	for _, raw := range SeedPostings() {
		if _, err := s.Create(ctx, raw); err != nil && !errors.Is(err, ErrDuplicate) {
			return fmt.Errorf("seed job %v: %w", raw.JobID, err)
		}
	}
	return nil
}
