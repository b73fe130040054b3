package uploads

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, file_name, mime_type, size_bytes, storage_key, detected_skills, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	skills := resume.DetectedSkills
	if skills == nil {
		skills = []string{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.FileName,
		resume.MimeType,
		resume.SizeBytes,
		resume.StorageKey,
		raw,
		resume.CreatedAt,
	)
	return err
}

func (r *PGRepo) LatestByUser(ctx context.Context, userID string) (Resume, error) {
	const query = `
SELECT id, user_id, file_name, mime_type, size_bytes, storage_key, detected_skills, created_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1`
	var resume Resume
	var skills []byte
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&resume.ID,
		&resume.UserID,
		&resume.FileName,
		&resume.MimeType,
		&resume.SizeBytes,
		&resume.StorageKey,
		&skills,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	resume.DetectedSkills = []string{}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &resume.DetectedSkills); err != nil {
			return Resume{}, fmt.Errorf("decode skills resume=%s: %w", resume.ID, err)
		}
	}
	return resume, nil
}
