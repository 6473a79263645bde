package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

// ProfileHandler serves the profile settings page.
type ProfileHandler struct {
	base
}

func NewProfileHandler(d Deps) *ProfileHandler {
	return &ProfileHandler{base: newBase(d)}
}

// UpdateProfileRequest represents the profile settings form.
type UpdateProfileRequest struct {
	Email            string `form:"email" json:"email" binding:"omitempty,email,max=255"`
	DateOfBirth      string `form:"date_of_birth" json:"date_of_birth"`
	Phone            string `form:"phone" json:"phone" binding:"max=20"`
	EmergencyContact string `form:"emergency_contact" json:"emergency_contact" binding:"max=100"`
	BloodType        string `form:"blood_type" json:"blood_type" binding:"max=10"`
	Allergies        string `form:"allergies" json:"allergies"`
}

// Show renders the profile settings page.
func (h *ProfileHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	owner := h.owner(c)

	user, err := h.repos.Users.GetByID(ctx, owner)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	profile, err := h.repos.Users.GetProfile(ctx, owner)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		h.fail(c, err, "")
		return
	}

	h.render(c, views.ProfileSettings{
		Page:    h.page(c, "Profile Settings"),
		User:    user.Sanitize(),
		Profile: profile,
	})
}

// Update saves the profile settings form.
func (h *ProfileHandler) Update(c *gin.Context) {
	const back = "/profile-settings"

	var req UpdateProfileRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, back)
		return
	}
	if !h.writable(c, back) {
		return
	}

	ctx := c.Request.Context()
	owner := h.owner(c)

	dob, err := utils.ParseOptionalDate("date_of_birth", req.DateOfBirth)
	if err != nil {
		h.fail(c, err, back)
		return
	}

	user, err := h.repos.Users.GetByID(ctx, owner)
	if err != nil {
		h.fail(c, err, back)
		return
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && email != user.Email {
		taken, err := h.repos.Users.ExistsEmail(ctx, email, owner)
		if err != nil {
			h.fail(c, err, back)
			return
		}
		if taken {
			h.fail(c, apperr.Validation("email", "A user with that email already exists."), back)
			return
		}
		user.Email = email
	}

	profile := &models.Profile{
		UserID:           owner,
		DateOfBirth:      dob,
		Phone:            strings.TrimSpace(req.Phone),
		EmergencyContact: strings.TrimSpace(req.EmergencyContact),
		BloodType:        strings.TrimSpace(req.BloodType),
		Allergies:        strings.TrimSpace(req.Allergies),
	}
	if err := h.repos.Users.UpdateProfile(ctx, user, profile); err != nil {
		h.fail(c, err, back)
		return
	}

	utils.Done(c, http.StatusOK, "Profile updated successfully.", views.ProfileSettings{
		User:    user.Sanitize(),
		Profile: profile,
	}, back)
}
