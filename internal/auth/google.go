package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"wevolve-backend/internal/shared/server/middleware"
	"wevolve-backend/internal/shared/server/respond"
	"wevolve-backend/internal/shared/telemetry"
	"wevolve-backend/internal/users"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// UserUpserter finds or creates the account for a verified identity.
type UserUpserter interface {
	UpsertFromOAuth(ctx context.Context, email, fullName, provider string) (users.User, error)
}

// TokenIssuer signs the session token handed to the web client.
type TokenIssuer interface {
	Sign(userID, email, name string) (string, error)
	TTL() time.Duration
}

// GoogleService handles Google OAuth flows.
type GoogleService struct {
	oauthConfig   *oauth2.Config
	uiRedirect    string
	userInfoURL   string
	stateTTL      time.Duration
	stateStore    *stateStore
	users         UserUpserter
	tokens        TokenIssuer
	secureCookies bool
}

// NewGoogleService builds a GoogleService.
func NewGoogleService(clientID, clientSecret, redirectURL, uiRedirect string, usersSvc UserUpserter, tokens TokenIssuer, secureCookies bool) *GoogleService {
	return &GoogleService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		uiRedirect:    uiRedirect,
		userInfoURL:   defaultUserInfoURL,
		stateTTL:      5 * time.Minute,
		stateStore:    newStateStore(),
		users:         usersSvc,
		tokens:        tokens,
		secureCookies: secureCookies,
	}
}

// RegisterRoutes attaches Google auth routes.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) configured() bool {
	return s.oauthConfig.ClientID != "" && s.oauthConfig.ClientSecret != "" && s.oauthConfig.RedirectURL != ""
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusServiceUnavailable, "auth_not_configured", "Google auth not configured", nil)
		return
	}

	state := uuid.NewString()
	s.stateStore.put(state, time.Now().Add(s.stateTTL))

	c.Redirect(http.StatusFound, s.oauthConfig.AuthCodeURL(state))
}

func (s *GoogleService) callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}

	if !s.stateStore.consume(state) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		telemetry.Error("auth.google.userinfo_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}
	if info.Email == "" || (info.VerifiedEmail != nil && !*info.VerifiedEmail) {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "google account has no verified email", nil)
		return
	}

	user, err := s.users.UpsertFromOAuth(ctx, info.Email, info.Name, users.ProviderGoogle)
	if err != nil {
		telemetry.Error("auth.google.upsert_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load account", nil)
		return
	}

	jwt, err := s.tokens.Sign(user.ID, user.Email, user.FullName)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to issue token", nil)
		return
	}

	redirectURL, err := appendToken(s.uiRedirect, jwt)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to redirect", nil)
		return
	}

	telemetry.Info("auth.google.login", map[string]any{"user_id": user.ID})
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, jwt, int(s.tokens.TTL().Seconds()), "/", "", s.secureCookies, true)
	c.Redirect(http.StatusFound, redirectURL)
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail *bool  `json:"verified_email"`
	Name          string `json:"name"`
}

func (s *GoogleService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return googleUserInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return googleUserInfo{}, err
	}

	// v2 userinfo reports "id" rather than "sub".
	if info.Sub == "" {
		info.Sub = info.ID
	}
	return info, nil
}

type stateStore struct {
	items map[string]time.Time
	mu    sync.Mutex
}

func newStateStore() *stateStore {
	return &stateStore{items: make(map[string]time.Time)}
}

func (s *stateStore) put(state string, exp time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, v := range s.items {
		if now.After(v) {
			delete(s.items, k)
		}
	}
	s.items[state] = exp
}

func (s *stateStore) consume(state string) bool {
	s.mu.Lock()
	exp, ok := s.items[state]
	if ok {
		delete(s.items, state)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	return !time.Now().After(exp)
}

func appendToken(rawURL, token string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
