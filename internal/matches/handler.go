package matches

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wevolve-backend/internal/jobs"
	"wevolve-backend/internal/shared/server/middleware"
	"wevolve-backend/internal/shared/server/respond"
	"wevolve-backend/internal/shared/telemetry"
	"wevolve-backend/match/model"
	"wevolve-backend/match/normalize"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

type matchRequest struct {
	JobID any `json:"job_id" validate:"required"`
}

// RegisterRoutes attaches POST /match; rg must carry the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/match", h.match)
}

func (h *Handler) match(c *gin.Context) {
	var req matchRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	jobID, err := normalize.Text("job_id", req.JobID)
	if err != nil {
		respond.Validation(c, err)
		return
	}
	c.Set(middleware.JobIDKey, jobID)

	result, err := h.Svc.Match(c.Request.Context(), middleware.UserIDFromContext(c), jobID, middleware.RequestIDFromContext(c))
	if err != nil {
		if _, ok := model.AsValidationError(err); ok {
			respond.Validation(c, err)
			return
		}
		if IsNotFound(err) {
			message := "user not found"
			if errors.Is(err, jobs.ErrNotFound) {
				message = "job not found"
			}
			respond.Error(c, http.StatusNotFound, "not_found", message, gin.H{"job_id": jobID})
			return
		}
		telemetry.Error("match.failed", map[string]any{"job_id": jobID, "error": err})
		respond.Error(c, http.StatusInternalServerError, "internal", "match failed", nil)
		return
	}

	c.Set(middleware.MatchScoreKey, result.MatchScore)
	respond.Success(c, http.StatusOK, result, "match computed")
}
