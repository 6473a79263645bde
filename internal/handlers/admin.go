package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"biogram-server/internal/apperr"
	"biogram-server/internal/blobstore"
	"biogram-server/internal/middleware"
	"biogram-server/internal/models"
	"biogram-server/internal/utils"
)

// AdminHandler handles administrative requests on any user's data.
type AdminHandler struct {
	base
	deleters map[string]func(ctx context.Context, ownerID, id string) error
}

// NewAdminHandler creates a new AdminHandler. Documents are removed
// together with their blobs.
func NewAdminHandler(d Deps, blobs blobstore.Store) *AdminHandler {
	h := &AdminHandler{base: newBase(d)}
	r := h.repos
	docs := NewDocumentHandler(d, blobs)
	h.deleters = map[string]func(ctx context.Context, ownerID, id string) error{
		"records":     r.Records.Delete,
		"medications": r.Medications.Delete,
		"lab-results": r.Labs.Delete,
		"vitals":      r.Vitals.Delete,
		"wearables":   r.Wearables.Delete,
		"notes":       r.Notes.Delete,
		"documents":   docs.remove,
	}
	return h
}

// UserDetail is a user with their profile.
type UserDetail struct {
	User    models.UserSanitized `json:"user"`
	Profile *models.Profile      `json:"profile,omitempty"`
}

// GetUsers handles fetching all users.
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.repos.Users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}

	sanitizedUsers := make([]models.UserSanitized, len(users))
	for i := range users {
		sanitizedUsers[i] = users[i].Sanitize()
	}
	utils.Success(c, "Users fetched successfully", sanitizedUsers)
}

// GetUserByID handles fetching a single user by ID.
func (h *AdminHandler) GetUserByID(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := h.repos.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	profile, err := h.repos.Users.GetProfile(ctx, user.ID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		h.fail(c, err, "")
		return
	}
	utils.Success(c, "User fetched successfully", UserDetail{User: user.Sanitize(), Profile: profile})
}

// DeleteRecord removes one row of kind owned by the user in the path.
func (h *AdminHandler) DeleteRecord(c *gin.Context) {
	del, ok := h.deleters[c.Param("kind")]
	if !ok {
		h.fail(c, apperr.Validation("kind", "Unknown record kind."), "")
		return
	}
	if !h.writable(c, "") {
		return
	}

	userID, recordID := c.Param("id"), c.Param("recordId")
	if err := del(c.Request.Context(), userID, recordID); err != nil {
		h.fail(c, err, "")
		return
	}

	adminID, _ := middleware.GetUserIDFromContext(c)
	h.log.Info("record deleted by admin",
		zap.String("admin_id", adminID),
		zap.String("user_id", userID),
		zap.String("kind", c.Param("kind")),
		zap.String("record_id", recordID),
	)
	utils.Success(c, "Record deleted successfully", nil)
}

// RevokeSessions signs a user out everywhere.
func (h *AdminHandler) RevokeSessions(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := h.repos.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if err := h.repos.Sessions.RevokeAllForUser(ctx, user.ID); err != nil {
		h.fail(c, err, "")
		return
	}
	utils.Success(c, "Sessions revoked successfully", nil)
}
