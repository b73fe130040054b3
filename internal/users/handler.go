package users

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wevolve-backend/internal/shared/server/middleware"
	"wevolve-backend/internal/shared/server/respond"
	"wevolve-backend/internal/shared/telemetry"
	"wevolve-backend/match/model"
	"wevolve-backend/match/normalize"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Sign(userID, email, name string) (string, error)
	TTL() time.Duration
}

type Handler struct {
	Svc           *Service
	Tokens        TokenIssuer
	SecureCookies bool
}

func NewHandler(svc *Service, tokens TokenIssuer, secureCookies bool) *Handler {
	return &Handler{Svc: svc, Tokens: tokens, SecureCookies: secureCookies}
}

type registerRequest struct {
	FullName string `json:"fullname" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	normalize.RawProfile
	Requirement *normalize.RawProfile `json:"requirment"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateRequest struct {
	normalize.RawProfile
	Requirement *normalize.RawProfile `json:"requirment"`
}

type authResponse struct {
	User        View   `json:"User"`
	AccessToken string `json:"accessToken"`
}

// RegisterPublicRoutes attaches the routes that do not need a session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
}

// RegisterRoutes attaches the session routes; rg must carry the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/logout", h.logout)
	rg.GET("/me", h.me)
	rg.POST("/update", h.update)
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	profile := req.RawProfile
	if req.Requirement != nil {
		profile = *req.Requirement
	}
	user, err := h.Svc.Register(c.Request.Context(), Registration{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Profile:  profile,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	telemetry.Info("user.registered", map[string]any{"user_id": user.ID})
	h.issueSession(c, http.StatusCreated, user, "user registered")
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	user, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.issueSession(c, http.StatusOK, user, "login successful")
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.SecureCookies, true)
	respond.Success(c, http.StatusOK, gin.H{}, "logged out")
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, user.View(), "current user")
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	patch := req.RawProfile
	if req.Requirement != nil {
		patch = *req.Requirement
	}
	user, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserIDFromContext(c), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, user.View(), "profile updated")
}

func (h *Handler) issueSession(c *gin.Context, status int, user User, message string) {
	token, err := h.Tokens.Sign(user.ID, user.Email, user.FullName)
	if err != nil {
		telemetry.Error("auth.sign_failed", map[string]any{"user_id": user.ID, "error": err})
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to issue token", nil)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, int(h.Tokens.TTL().Seconds()), "/", "", h.SecureCookies, true)
	respond.Success(c, status, authResponse{User: user.View(), AccessToken: token}, message)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if _, ok := model.AsValidationError(err); ok {
		respond.Validation(c, err)
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
	case errors.Is(err, ErrEmailTaken):
		respond.Error(c, http.StatusConflict, "conflict", "email already registered", nil)
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid email or password", nil)
	default:
		telemetry.Error("users.failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, "internal", "request failed", nil)
	}
}
