package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"wevolve-backend/match/model"
)

const jobColumns = `job_id, title, company, location, experience_min, experience_max, salary_min, salary_max, required_skills`

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, posting model.JobPosting) error {
	const query = `
INSERT INTO jobs (job_id, title, company, location, experience_min, experience_max, salary_min, salary_max, required_skills, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	skills := posting.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	rawSkills, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		posting.JobID,
		posting.Title,
		posting.Company,
		posting.Location,
		posting.ExperienceRequired.Min,
		posting.ExperienceRequired.Max,
		posting.SalaryRange.Min,
		posting.SalaryRange.Max,
		rawSkills,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, jobID string) (model.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1 LIMIT 1`
	posting, err := scanPosting(r.DB.QueryRowContext(ctx, query, jobID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.JobPosting{}, ErrNotFound
	}
	return posting, err
}

func (r *PGRepo) List(ctx context.Context) ([]model.JobPosting, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY job_id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.JobPosting{}
	for rows.Next() {
		posting, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, posting)
	}
	return out, rows.Err()
}

func (r *PGRepo) Skills(ctx context.Context) ([]string, error) {
	const query = `
SELECT DISTINCT skill
FROM jobs, jsonb_array_elements_text(required_skills) AS skill
ORDER BY skill`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var skill string
		if err := rows.Scan(&skill); err != nil {
			return nil, err
		}
		out = append(out, skill)
	}
	return out, rows.Err()
}

func scanPosting(row interface{ Scan(dest ...any) error }) (model.JobPosting, error) {
	var p model.JobPosting
	var skills []byte
	err := row.Scan(
		&p.JobID,
		&p.Title,
		&p.Company,
		&p.Location,
		&p.ExperienceRequired.Min,
		&p.ExperienceRequired.Max,
		&p.SalaryRange.Min,
		&p.SalaryRange.Max,
		&skills,
	)
	if err != nil {
		return model.JobPosting{}, err
	}
	p.RequiredSkills = []string{}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &p.RequiredSkills); err != nil {
			return model.JobPosting{}, fmt.Errorf("decode skills job=%s: %w", p.JobID, err)
		}
	}
	return p, nil
}
