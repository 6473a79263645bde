package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"biogram-server/internal/middleware"
	"biogram-server/internal/sharing"
	"biogram-server/internal/store"
	"biogram-server/internal/summary"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

const doctorSummaryPath = "/doctor-summary"

// SharingHandler issues access codes to patients and turns redeemed codes
// into doctor access tokens.
type SharingHandler struct {
	base
	gate *sharing.Gate
}

func NewSharingHandler(d Deps, gate *sharing.Gate) *SharingHandler {
	return &SharingHandler{base: newBase(d), gate: gate}
}

// RedeemRequest represents the doctor access form.
type RedeemRequest struct {
	Code string `form:"code" json:"code" binding:"required,max=32"`
}

// RedeemResponse is returned to API clients that redeem a code.
type RedeemResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Next        string    `json:"next"`
}

// ShareWithDoctor issues a code for the owner and the link that prefills it.
func (h *SharingHandler) ShareWithDoctor(c *gin.Context) {
	issued, err := h.gate.Issue(c.Request.Context(), h.owner(c))
	if err != nil {
		h.fail(c, err, "")
		return
	}

	h.render(c, views.ShareCode{
		Page:      h.page(c, "Share with Doctor"),
		Code:      issued.Code,
		Link:      h.cfg.AppURL + middleware.DoctorAccessPath + "?code=" + url.QueryEscape(issued.Code),
		ExpiresAt: issued.ExpiresAt,
		SingleUse: issued.SingleUse,
	})
}

// DoctorAccess renders the code entry form.
func (h *SharingHandler) DoctorAccess(c *gin.Context) {
	h.render(c, views.DoctorAccess{
		Page: h.page(c, "Doctor Access"),
		Code: c.Query("code"),
	})
}

// Redeem exchanges a code for a doctor access token. Every failure reads
// the same to the caller.
func (h *SharingHandler) Redeem(c *gin.Context) {
	var req RedeemRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, middleware.DoctorAccessPath)
		return
	}

	grant, err := h.gate.Redeem(c.Request.Context(), req.Code)
	if errors.Is(err, sharing.ErrInvalidCode) {
		h.log.Info("doctor access code rejected", zap.String("remote_ip", c.ClientIP()))
		if utils.IsFormRequest(c) {
			utils.AddFlash(c, utils.FlashError, sharing.ErrInvalidCode.Error())
			utils.SeeOther(c, middleware.DoctorAccessPath)
			return
		}
		utils.Unauthorized(c, sharing.ErrInvalidCode.Error())
		return
	}
	if err != nil {
		h.fail(c, err, middleware.DoctorAccessPath)
		return
	}

	token, expiresAt, err := utils.GenerateDoctorToken(grant.PatientID, grant.ID, h.cfg.Share.DoctorAccessTTL, h.cfg)
	if err != nil {
		h.fail(c, err, middleware.DoctorAccessPath)
		return
	}
	h.log.Info("doctor access granted",
		zap.String("grant_id", grant.ID),
		zap.Bool("demo", grant.Demo),
		zap.Time("expires_at", expiresAt),
	)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.DoctorAccessCookie, token, int(h.cfg.Share.DoctorAccessTTL.Seconds()), "/", "", !h.cfg.IsDev(), true)

	if utils.IsFormRequest(c) {
		utils.SeeOther(c, doctorSummaryPath)
		return
	}
	utils.Success(c, "Access granted", RedeemResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Next:        doctorSummaryPath,
	})
}

// DoctorSummary renders the patient summary unlocked by the doctor access
// token.
func (h *SharingHandler) DoctorSummary(c *gin.Context) {
	patientID, ok := middleware.GetDoctorPatientID(c)
	if !ok {
		utils.SeeOther(c, middleware.DoctorAccessPath)
		return
	}
	ctx := c.Request.Context()

	visits, err := h.repos.Records.RecentVisits(ctx, patientID, summary.DoctorVisits)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	var wearables summary.WearableAggregate
	latest, err := h.repos.Wearables.Latest(ctx, patientID)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if latest != nil {
		days, err := h.repos.Wearables.List(ctx, patientID, store.LastDays(latest.Date, summary.DoctorWearableDays))
		if err != nil {
			h.fail(c, err, "")
			return
		}
		wearables = summary.AggregateWearables(days)
	}
	patient, err := h.patientHeader(c, patientID)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	view := views.DoctorSummary{
		Page:         h.page(c, "Patient Summary"),
		Patient:      patient,
		RecentVisits: summary.Timeline(visits),
		Medications:  summary.DedupeMedications(visits),
		LabPanels:    summary.LabPanels(visits),
		Wearables:    wearables,
	}
	if until, ok := middleware.GetDoctorAccessUntil(c); ok {
		view.AccessUntil = &until
	}
	h.render(c, view)
}
