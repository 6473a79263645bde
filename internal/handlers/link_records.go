package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/summary"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

const linkRecordsPath = "/link-records"

// LinkRecordsHandler imports conditions from outside providers as problems.
type LinkRecordsHandler struct {
	base
}

func NewLinkRecordsHandler(d Deps) *LinkRecordsHandler {
	return &LinkRecordsHandler{base: newBase(d)}
}

// ProblemRequest represents an imported condition with its SOAP summary.
type ProblemRequest struct {
	Condition  string `form:"condition" json:"condition" binding:"required,max=200"`
	ICD10      string `form:"icd10" json:"icd10" binding:"max=20"`
	Onset      string `form:"onset" json:"onset"`
	Status     string `form:"status" json:"status" binding:"max=50"`
	Subjective string `form:"subjective" json:"subjective"`
	Objective  string `form:"objective" json:"objective"`
	Assessment string `form:"assessment" json:"assessment"`
	Plan       string `form:"plan" json:"plan"`
}

// Show renders linked problems next to the most recent records.
func (h *LinkRecordsHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	owner := h.owner(c)

	problems, err := h.repos.Problems.List(ctx, owner)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if problems == nil {
		problems = []models.Problem{}
	}
	records, err := h.repos.Records.List(ctx, owner, store.RecordFilter{Limit: dashboardEvents})
	if err != nil {
		h.fail(c, err, "")
		return
	}

	h.render(c, views.LinkRecords{
		Page:          h.page(c, "Link Records"),
		Problems:      problems,
		RecentRecords: summary.Timeline(records),
	})
}

// Create links a condition to the owner's problem list.
func (h *LinkRecordsHandler) Create(c *gin.Context) {
	var req ProblemRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, linkRecordsPath)
		return
	}
	if !h.writable(c, linkRecordsPath) {
		return
	}
	onset, err := utils.ParseOptionalDate("onset", req.Onset)
	if err != nil {
		h.fail(c, err, linkRecordsPath)
		return
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "active"
	}
	problem := &models.Problem{
		UserID:     h.owner(c),
		Condition:  strings.TrimSpace(req.Condition),
		ICD10:      strings.ToUpper(strings.TrimSpace(req.ICD10)),
		Onset:      onset,
		Status:     status,
		Subjective: strings.TrimSpace(req.Subjective),
		Objective:  strings.TrimSpace(req.Objective),
		Assessment: strings.TrimSpace(req.Assessment),
		Plan:       strings.TrimSpace(req.Plan),
	}
	if err := h.repos.Problems.Create(c.Request.Context(), problem); err != nil {
		h.fail(c, err, linkRecordsPath)
		return
	}
	utils.Done(c, http.StatusCreated, "Record linked successfully.", problem, linkRecordsPath)
}
