package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/apperr"
	"biogram-server/internal/middleware"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/summary"
	"biogram-server/internal/views"
)

// dashboardEvents is how many recent records the dashboard shows.
const dashboardEvents = 5

var navigation = []views.Link{
	{Title: "Dashboard", Path: "/dashboard"},
	{Title: "Timeline", Path: "/health/timeline"},
	{Title: "Medications", Path: "/health/medications"},
	{Title: "Lab Results", Path: "/health/lab-results"},
	{Title: "Vitals", Path: "/health/vitals"},
	{Title: "Wearables", Path: "/health/wearable"},
	{Title: "Insights", Path: "/health/insights"},
	{Title: "Notes", Path: "/health/notes"},
	{Title: "Share with Doctor", Path: "/share-with-doctor"},
}

// DashboardHandler serves the landing and dashboard pages.
type DashboardHandler struct {
	base
}

func NewDashboardHandler(d Deps) *DashboardHandler {
	return &DashboardHandler{base: newBase(d)}
}

// Health is the liveness check.
func (h *DashboardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "source": h.repos.Capabilities.Source})
}

// Home renders the landing page, naming the signed-in user when there is one.
func (h *DashboardHandler) Home(c *gin.Context) {
	view := views.Home{
		Page:       h.page(c, "Biogram"),
		Navigation: navigation,
	}
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		user, err := h.repos.Users.GetByID(c.Request.Context(), userID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			h.fail(c, err, "")
			return
		}
		if user != nil {
			sanitized := user.Sanitize()
			view.User = &sanitized
		}
	}
	h.render(c, view)
}

// Dashboard renders the owner's overview.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	owner := h.owner(c)

	patient, err := h.patientHeader(c, owner)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	insights, err := h.repos.Insights.List(ctx, owner, false)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	problems, err := h.repos.Problems.List(ctx, owner)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	records, err := h.repos.Records.List(ctx, owner, store.RecordFilter{Limit: dashboardEvents})
	if err != nil {
		h.fail(c, err, "")
		return
	}
	latest, err := h.repos.Vitals.Latest(ctx, owner)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	active := true
	meds, err := h.repos.Medications.List(ctx, owner, &active)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	notes, err := h.repos.Notes.List(ctx, owner)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	h.render(c, views.Dashboard{
		Page:              h.page(c, "Dashboard"),
		Patient:           patient,
		Insights:          summary.GroupInsights(insights),
		ActiveProblems:    problems,
		RecentEvents:      summary.Timeline(records),
		LatestVitals:      latest,
		ActiveMedications: len(meds),
		PinnedNotes:       pinned(notes),
	})
}

// patientHeader returns nil when the patient has no account row.
func (b *base) patientHeader(c *gin.Context, patientID string) (*views.PatientHeader, error) {
	ctx := c.Request.Context()
	user, err := b.repos.Users.GetByID(ctx, patientID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	profile, err := b.repos.Users.GetProfile(ctx, patientID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	return views.NewPatientHeader(user, profile), nil
}

// pinned keeps the leading pinned notes of a default-ordered list.
func pinned(notes []models.QuickNote) []models.QuickNote {
	out := []models.QuickNote{}
	for _, n := range notes {
		if !n.IsPinned {
			break
		}
		out = append(out, n)
	}
	return out
}
