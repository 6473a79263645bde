package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"biogram-server/internal/apperr"
	"biogram-server/internal/middleware"
	"biogram-server/internal/models"
	"biogram-server/internal/utils"
)

const refreshTokenCookie = "refresh_token"

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	base
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(d Deps) *AuthHandler {
	return &AuthHandler{base: newBase(d)}
}

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Username        string `form:"username" json:"username" binding:"required,min=3,max=150"`
	Email           string `form:"email" json:"email" binding:"required,email,max=255"`
	Password        string `form:"password" json:"password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" binding:"required"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	Next     string `form:"next" json:"next"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	ExpiresAt    time.Time            `json:"expiresAt"`
	User         models.UserSanitized `json:"user"`
	Next         string               `json:"next,omitempty"`
}

// Register handles user registration and signs the new user in.
func (h *AuthHandler) Register(c *gin.Context) {
	const back = "/auth/register"

	var req RegisterRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, back)
		return
	}
	if !h.writable(c, back) {
		return
	}

	user, err := h.register(c, req)
	if err != nil {
		h.fail(c, err, back)
		return
	}

	resp, err := h.openSession(c, user)
	if err != nil {
		h.fail(c, err, back)
		return
	}
	resp.Next = "/dashboard"
	utils.Done(c, http.StatusCreated, "Account created successfully.", resp, resp.Next)
}

func (h *AuthHandler) register(c *gin.Context, req RegisterRequest) (*models.User, error) {
	ctx := c.Request.Context()
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if req.Password != req.ConfirmPassword {
		return nil, apperr.Validation("confirm_password", "Passwords do not match.")
	}
	taken, err := h.repos.Users.ExistsUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("username", "A user with that username already exists.")
	}
	taken, err = h.repos.Users.ExistsEmail(ctx, email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Validation("email", "A user with that email already exists.")
	}

	user := &models.User{Username: username, Email: email, Role: models.RoleUser}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := h.repos.Users.Create(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			// lost a race with a concurrent registration
			return nil, apperr.Validation("username", "A user with that username or email already exists.")
		}
		return nil, err
	}
	h.log.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	const back = "/auth/login"

	var req LoginRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, back)
		return
	}

	user, err := h.repos.Users.GetByUsername(c.Request.Context(), strings.TrimSpace(req.Username))
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		models.CheckMissingUserPassword(req.Password)
		h.fail(c, apperr.ErrAuthentication, back)
		return
	case err != nil:
		h.fail(c, err, back)
		return
	case !user.CheckPassword(req.Password):
		h.fail(c, apperr.ErrAuthentication, back)
		return
	}

	resp, err := h.openSession(c, user)
	if err != nil {
		h.fail(c, err, back)
		return
	}
	resp.Next = SafeNext(req.Next)
	utils.Done(c, http.StatusOK, "Login successful.", resp, resp.Next)
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `form:"refreshToken" json:"refreshToken" binding:"required"`
}

// RefreshToken rotates the session behind a refresh token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie(refreshTokenCookie)
	if err != nil || token == "" {
		var req RefreshTokenRequest
		if err := utils.BindAndValidate(c, &req); err != nil {
			h.fail(c, err, "")
			return
		}
		token = req.RefreshToken
	}

	claims, err := utils.ValidateRefreshToken(token, h.cfg.JWT.RefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	ctx := c.Request.Context()
	session, err := h.repos.Sessions.GetActiveByToken(ctx, models.HashToken(token))
	if errors.Is(err, apperr.ErrNotFound) || (err == nil && session.UserID != claims.UserID) {
		utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		return
	}
	if err != nil {
		h.fail(c, err, "")
		return
	}

	user, err := h.repos.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if err := h.repos.Sessions.Revoke(ctx, session.ID); err != nil {
		h.fail(c, err, "")
		return
	}

	resp, err := h.openSession(c, user)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	utils.Success(c, "Access token refreshed successfully", resp)
}

// Logout revokes the current session. Cookies are cleared either way.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, _ := middleware.GetSessionIDFromContext(c)
	if err := h.repos.Sessions.Revoke(c.Request.Context(), sessionID); err != nil && !errors.Is(err, apperr.ErrNotFound) {
		h.log.Warn("failed to revoke session", zap.String("session_id", sessionID), zap.Error(err))
	}
	h.clearAuthCookies(c)
	utils.Done(c, http.StatusOK, "You have been logged out.", nil, "/")
}

// openSession persists a session and sets the token cookies.
func (h *AuthHandler) openSession(c *gin.Context, user *models.User) (*LoginResponse, error) {
	session := &models.Session{
		UserID:    user.ID,
		ExpiresAt: h.now().Add(time.Duration(h.cfg.JWT.RefreshExpirationHours) * time.Hour),
	}
	session.ID = models.NewID()

	accessToken, refreshToken, err := utils.GenerateTokens(user, session.ID, h.cfg)
	if err != nil {
		return nil, err
	}
	session.TokenHash = models.HashToken(refreshToken)
	if err := h.repos.Sessions.Create(c.Request.Context(), session); err != nil {
		return nil, err
	}

	secure := !h.cfg.IsDev()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, accessToken, h.cfg.JWT.ExpirationMinutes*60, "/", "", secure, true)
	c.SetCookie(refreshTokenCookie, refreshToken, h.cfg.JWT.RefreshExpirationHours*60*60, "/", "", secure, true)

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    session.ExpiresAt,
		User:         user.Sanitize(),
	}, nil
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	secure := !h.cfg.IsDev()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", secure, true)
}

// SafeNext returns next when it is a same-site path, and "/" otherwise.
func SafeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}
