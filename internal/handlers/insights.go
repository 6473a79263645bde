package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/models"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

const insightsPath = "/health/insights"

// InsightHandler lists and completes AI insights.
type InsightHandler struct {
	base
}

func NewInsightHandler(d Deps) *InsightHandler {
	return &InsightHandler{base: newBase(d)}
}

// List renders pending insights, or all of them with ?all=true.
func (h *InsightHandler) List(c *gin.Context) {
	all := parseCheckboxQuery(c.Query("all"))
	insights, err := h.repos.Insights.List(c.Request.Context(), h.owner(c), all)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if insights == nil {
		insights = []models.AIInsight{}
	}

	pending := 0
	for _, in := range insights {
		if !in.IsCompleted {
			pending++
		}
	}
	h.render(c, views.Insights{
		Page:             h.page(c, "Health Insights"),
		Insights:         insights,
		IncludeCompleted: all,
		Pending:          pending,
	})
}

// Complete marks an insight as done.
func (h *InsightHandler) Complete(c *gin.Context) {
	if !h.writable(c, insightsPath) {
		return
	}
	if err := h.repos.Insights.Complete(c.Request.Context(), h.owner(c), c.Param("id"), h.now()); err != nil {
		h.fail(c, err, insightsPath)
		return
	}
	utils.Done(c, http.StatusOK, "Insight marked as completed.", gin.H{"id": c.Param("id")}, insightsPath)
}
