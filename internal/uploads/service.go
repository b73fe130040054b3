package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"wevolve-backend/internal/extract"
	"wevolve-backend/internal/shared/storage/object"
	"wevolve-backend/internal/shared/telemetry"
	"wevolve-backend/internal/shared/util"
	"wevolve-backend/internal/users"
)

const (
	MaxUploadBytes = 10 << 20
	namespace      = "resumes"
	presignExpires = 15 * time.Minute
)

var (
	ErrInvalidInput = errors.New("invalid upload")
	ErrTooLarge     = errors.New("file exceeds 10MB limit")
	ErrForbiddenKey = errors.New("storage key does not belong to user")
)

var allowedMimeTypes = map[string]struct{}{
	extract.MimePDF:  {},
	extract.MimeDOCX: {},
}

// VocabularySource lists the skills resumes are matched against.
type VocabularySource interface {
	Vocabulary(ctx context.Context) ([]string, error)
}

// SkillMerger adds detected skills to a user's profile.
type SkillMerger interface {
	AddSkills(ctx context.Context, userID string, skills []string) (users.User, error)
}

// Presigner issues direct-upload URLs.
type Presigner interface {
	PresignPut(ctx context.Context, key string, expires time.Duration) (string, error)
}

type Service struct {
	Store     object.ObjectStore
	Repo      Repo
	Skills    VocabularySource
	Users     SkillMerger
	Presigner Presigner
	now       func() time.Time
}

func NewService(store object.ObjectStore, repo Repo, skills VocabularySource, merger SkillMerger) *Service {
	return &Service{
		Store:  store,
		Repo:   repo,
		Skills: skills,
		Users:  merger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Result is returned for every processed resume. User is set when the
// detected skills were merged into the profile.
type Result struct {
	Resume         Resume      `json:"resume"`
	DetectedSkills []string    `json:"detected_skills"`
	User           *users.View `json:"user,omitempty"`
}

// Upload stores a PDF or DOCX resume, extracts its text and detects skills
// from the job-board vocabulary.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader, merge bool) (Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return Result{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return Result{}, ErrTooLarge
	}
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	mimeType := extract.NormalizeMimeType(http.DetectContentType(data), fileName, data)
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return Result{}, fmt.Errorf("%w: only PDF and DOCX files are accepted", ErrInvalidInput)
	}

	text, err := extract.ExtractTextFromBytes(ctx, data, mimeType, fileName)
	if err != nil {
		telemetry.Error("resume.extract_failed", map[string]any{"user_id": userID, "mime": mimeType, "error": err})
		return Result{}, fmt.Errorf("%w: could not read document", ErrInvalidInput)
	}

	obj, err := s.Store.Put(ctx, namespace, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("store resume: %w", err)
	}

	result, err := s.record(ctx, Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  obj.Size,
		StorageKey: obj.Key,
	}, text, merge)
	if err != nil {
		if delErr := s.Store.Delete(ctx, obj.Key); delErr != nil && !errors.Is(delErr, object.ErrNotFound) {
			telemetry.Error("resume.cleanup_failed", map[string]any{"user_id": userID, "key": obj.Key, "error": delErr})
		}
		return Result{}, err
	}
	return result, nil
}

// Presign returns a key and a direct-upload URL for fileName.
func (s *Service) Presign(ctx context.Context, userID, fileName string) (string, string, error) {
	if s.Presigner == nil {
		return "", "", errors.New("direct uploads not configured")
	}
	if _, ok := allowedMimeTypes[extract.NormalizeMimeType("", fileName, nil)]; !ok {
		return "", "", fmt.Errorf("%w: only PDF and DOCX files are accepted", ErrInvalidInput)
	}
	key, err := object.BuildKey(namespace, userID, fileName)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	url, err := s.Presigner.PresignPut(ctx, key, presignExpires)
	if err != nil {
		return "", "", err
	}
	return key, url, nil
}

// ProcessStored runs extraction and detection for a resume uploaded directly
// to the object store under key.
func (s *Service) ProcessStored(ctx context.Context, userID, key string, merge bool) (Result, error) {
	owned := path.Join(namespace, util.HashUserKey(userID)) + "/"
	if !strings.HasPrefix(key, owned) || strings.Contains(key, "..") {
		return Result{}, ErrForbiddenKey
	}
	fileName := path.Base(key)
	if i := strings.Index(fileName, "_"); i >= 0 {
		fileName = fileName[i+1:]
	}
	mimeType := extract.NormalizeMimeType("", fileName, nil)
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return Result{}, fmt.Errorf("%w: only PDF and DOCX files are accepted", ErrInvalidInput)
	}

	text, err := extract.ExtractText(ctx, s.Store, key, mimeType, fileName)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}
	return s.record(ctx, Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		MimeType:   mimeType,
		StorageKey: key,
	}, text, merge)
}

// Latest returns the newest resume of userID.
func (s *Service) Latest(ctx context.Context, userID string) (Resume, error) {
	return s.Repo.LatestByUser(ctx, userID)
}

func (s *Service) record(ctx context.Context, resume Resume, text string, merge bool) (Result, error) {
	vocabulary, err := s.Skills.Vocabulary(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load skill vocabulary: %w", err)
	}
	resume.DetectedSkills = extract.DetectSkills(text, vocabulary)
	resume.CreatedAt = s.now()
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Result{}, fmt.Errorf("save resume: %w", err)
	}

	result := Result{Resume: resume, DetectedSkills: resume.DetectedSkills}
	if merge && len(resume.DetectedSkills) > 0 {
		user, err := s.Users.AddSkills(ctx, resume.UserID, resume.DetectedSkills)
		if err != nil {
			return Result{}, fmt.Errorf("merge skills: %w", err)
		}
		view := user.View()
		result.User = &view
	}

	telemetry.Info("resume.processed", map[string]any{
		"user_id":   resume.UserID,
		"resume_id": resume.ID,
		"skills":    len(resume.DetectedSkills),
		"merged":    result.User != nil,
	})
	return result, nil
}
