package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/config"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/utils"
)

// AccessTokenCookie carries the access token for browser clients.
const AccessTokenCookie = "access_token"

// Context keys set by the middlewares in this package.
const (
	ctxUserID    = "userID"
	ctxUserRole  = "userRole"
	ctxSessionID = "sessionID"
	ctxOwnerID   = "ownerID"
)

// AuthMiddleware creates a middleware for JWT authentication. The token's
// session must still be active, so logout takes effect immediately.
func AuthMiddleware(cfg *config.Config, sessions store.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, msg := authenticate(c, cfg, sessions)
		if claims == nil {
			utils.Unauthorized(c, msg)
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// IdentifyMiddleware records the signed-in user when there is one and
// lets anonymous requests through.
func IdentifyMiddleware(cfg *config.Config, sessions store.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, _ := authenticate(c, cfg, sessions); claims != nil {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// OwnerMiddleware resolves whose health data a page shows. Authenticated
// users see their own; anonymous visitors see the demo patient when the
// data source is public, and are rejected otherwise.
func OwnerMiddleware(cfg *config.Config, repos *store.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, _ := authenticate(c, cfg, repos.Sessions); claims != nil {
			setIdentity(c, claims)
			c.Set(ctxOwnerID, claims.UserID)
			c.Next()
			return
		}

		if !repos.Capabilities.Public {
			utils.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		c.Set(ctxOwnerID, cfg.Share.DemoPatientID)
		c.Next()
	}
}

// RoleAuthMiddleware creates a middleware for role-based authorization.
// It should be used *after* AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			utils.InternalServerError(c, "User role not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				c.Next()
				return
			}
		}

		utils.Forbidden(c, "You do not have permission to access this resource.")
		c.Abort()
	}
}

// authenticate returns the claims of a valid access token bound to an
// active session, or nil and the reason it was refused.
func authenticate(c *gin.Context, cfg *config.Config, sessions store.SessionRepository) (*utils.Claims, string) {
	tokenString, msg := accessToken(c)
	if tokenString == "" {
		return nil, msg
	}

	claims, err := utils.ValidateAccessToken(tokenString, cfg.JWT.Secret)
	if err != nil {
		return nil, "Invalid or expired token"
	}

	active, err := sessions.IsActive(c.Request.Context(), claims.SessionID)
	if err != nil || !active {
		return nil, "Session has ended"
	}
	return claims, ""
}

func accessToken(c *gin.Context) (string, string) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", "Invalid authorization header format"
		}
		return parts[1], ""
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie, ""
	}
	return "", "Authorization header required"
}

func setIdentity(c *gin.Context, claims *utils.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUserRole, claims.Role)
	c.Set(ctxSessionID, claims.SessionID)
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return getString(c, ctxUserID)
}

// GetSessionIDFromContext returns the session the request authenticated with.
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	return getString(c, ctxSessionID)
}

// GetOwnerIDFromContext returns the owner resolved by OwnerMiddleware.
func GetOwnerIDFromContext(c *gin.Context) (string, bool) {
	return getString(c, ctxOwnerID)
}

// GetUserRoleFromContext returns the authenticated user's role.
func GetUserRoleFromContext(c *gin.Context) (models.Role, bool) {
	userRole, exists := c.Get(ctxUserRole)
	if !exists {
		return "", false
	}
	role, ok := userRole.(models.Role)
	return role, ok
}

func getString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
