package jobs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

type createRequest struct {
	normalize.RawPosting
	ExperienceRequired *normalize.RawRange `json:"experience_required" validate:"required"`
	SalaryRange        any                 `json:"salary_range" validate:"required"`
}

// RegisterPublicRoutes attaches the read-only job routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/alljobs", h.list)
	rg.GET("/:jobId", h.get)
}

// RegisterRoutes attaches the authenticated job routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.create)
}

func (h *Handler) list(c *gin.Context) {
	postings, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, ToViews(postings), "jobs fetched")
}

func (h *Handler) get(c *gin.Context) {
	posting, err := h.Svc.Get(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, ToView(posting), "job fetched")
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	raw := req.RawPosting
	raw.ExperienceRequired = req.ExperienceRequired
	raw.SalaryRange = req.SalaryRange

	posting, err := h.Svc.Create(c.Request.Context(), raw)
	if err != nil {
		h.writeError(c, err)
		return
	}
	telemetry.Info("job.created", map[string]any{"job_id": posting.JobID})
	respond.Success(c, http.StatusCreated, ToView(posting), "job created")
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if _, ok := model.AsValidationError(err); ok {
		respond.Validation(c, err)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	case errors.Is(err, ErrDuplicate):
		respond.Error(c, http.StatusConflict, "conflict", "job id already exists", nil)
	default:
		telemetry.Error("jobs.failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, "internal", "request failed", nil)
	}
}
