package matches

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"wevolve-backend/internal/jobs"
	"wevolve-backend/internal/queue"
	"wevolve-backend/internal/shared/metrics"
	"wevolve-backend/internal/shared/telemetry"
	"wevolve-backend/internal/users"
	"wevolve-backend/match/engine"
	"wevolve-backend/match/model"
)

const publishTimeout = 2 * time.Second

// UserSource loads a stored user.
type UserSource interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

// JobSource loads a stored posting.
type JobSource interface {
	Get(ctx context.Context, jobID string) (model.JobPosting, error)
}

type Service struct {
	Users  UserSource
	Jobs   JobSource
	Engine *engine.Engine
	Events queue.Client
	now    func() time.Time
}

func NewService(usersSrc UserSource, jobsSrc JobSource, eng *engine.Engine, events queue.Client) *Service {
	if events == nil {
		events = queue.NopClient{}
	}
	return &Service{
		Users:  usersSrc,
		Jobs:   jobsSrc,
		Engine: eng,
		Events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Match scores the stored profile of userID against posting jobID. Both are
// loaded concurrently; a missing job returns jobs.ErrNotFound and the engine
// is not run.
func (s *Service) Match(ctx context.Context, userID, jobID, requestID string) (model.MatchResult, error) {
	metrics.IncMatchRequested()
	start := time.Now()

	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		metrics.IncMatchFailed()
		return model.MatchResult{}, model.NewValidationError("job_id", "is required")
	}

	var user users.User
	var posting model.JobPosting
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.Users.GetByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		posting, err = s.Jobs.Get(gctx, jobID)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.IncMatchFailed()
		return model.MatchResult{}, err
	}

	result := s.Engine.Score(user.Profile, posting)
	telemetry.Debug("match.scored", map[string]any{
		"user_id":     userID,
		"job_id":      posting.JobID,
		"match_score": result.MatchScore,
		"skills":      result.Breakdown.Skills,
		"experience":  result.Breakdown.Experience,
		"location":    result.Breakdown.Location,
		"salary":      result.Breakdown.Salary,
	})

	metrics.IncMatchCompleted()
	metrics.ObserveMatchScore(result.MatchScore)
	metrics.ObserveMatchDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	s.publish(ctx, userID, posting.JobID, requestID, result)
	return result, nil
}

// publish emits match.computed. Broker failures are logged and counted, never
// returned.
func (s *Service) publish(ctx context.Context, userID, jobID, requestID string, result model.MatchResult) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := queue.Message{
		Type:       queue.EventMatchComputed,
		UserID:     userID,
		JobID:      jobID,
		MatchScore: result.MatchScore,
		Breakdown: map[string]int{
			string(model.DimensionSkills):     result.Breakdown.Skills,
			string(model.DimensionExperience): result.Breakdown.Experience,
			string(model.DimensionLocation):   result.Breakdown.Location,
			string(model.DimensionSalary):     result.Breakdown.Salary,
		},
		MissingSkills: result.MissingSkills,
		RequestID:     requestID,
		ComputedAt:    s.now().Format(time.RFC3339),
		Version:       queue.MessageVersion,
	}
	if err := s.Events.Send(pubCtx, msg); err != nil {
		metrics.IncMatchEventDropped()
		telemetry.Error("match.event_dropped", map[string]any{
			"user_id":    userID,
			"job_id":     jobID,
			"request_id": requestID,
			"error":      err,
		})
	}
}

// IsNotFound reports whether err means the user or the job does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, jobs.ErrNotFound) || errors.Is(err, users.ErrNotFound)
}
