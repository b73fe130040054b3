package uploads

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wevolve-backend/internal/shared/server/middleware"
	"wevolve-backend/internal/shared/server/respond"
)

// multipart overhead allowed on top of the file itself
const formOverhead = 1 << 20

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

type presignRequest struct {
	FileName string `json:"fileName" validate:"required,max=128"`
}

type presignResponse struct {
	UploadURL        string `json:"uploadUrl"`
	Key              string `json:"key"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

type processRequest struct {
	Key string `json:"key" validate:"required"`
}

// RegisterRoutes attaches the resume routes; rg must carry the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume", h.upload)
	rg.GET("/resume", h.latest)
	if h.Svc.Presigner != nil {
		rg.POST("/resume/presign", h.presign)
		rg.POST("/resume/process", h.process)
	}
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+formOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "too_large", ErrTooLarge.Error(), nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", gin.H{"field": "file"})
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "too_large", ErrTooLarge.Error(), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	result, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file, mergeRequested(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.Success(c, http.StatusCreated, result, "resume processed")
}

func (h *Handler) latest(c *gin.Context) {
	resume, err := h.Svc.Latest(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, resume, "latest resume")
}

func (h *Handler) presign(c *gin.Context) {
	var req presignRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	key, url, err := h.Svc.Presign(c.Request.Context(), middleware.UserIDFromContext(c), req.FileName)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, presignResponse{
		UploadURL:        url,
		Key:              key,
		ExpiresInSeconds: int64(presignExpires.Seconds()),
	}, "upload url issued")
}

func (h *Handler) process(c *gin.Context) {
	var req processRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	result, err := h.Svc.ProcessStored(c.Request.Context(), middleware.UserIDFromContext(c), req.Key, mergeRequested(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.Success(c, http.StatusCreated, result, "resume processed")
}

func mergeRequested(c *gin.Context) bool {
	merge, _ := strconv.ParseBool(c.Query("merge"))
	return merge
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "too_large", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), gin.H{"field": "file"})
	case errors.Is(err, ErrForbiddenKey):
		respond.Error(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to process resume", nil)
	}
}
