package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/export"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

const (
	labsPath = "/health/lab-results"
	// labPageLimit caps the lab results page; the export is uncapped.
	labPageLimit = 50
)

// LabHandler handles lab result requests.
type LabHandler struct {
	base
}

func NewLabHandler(d Deps) *LabHandler {
	return &LabHandler{base: newBase(d)}
}

// LabResultRequest represents the lab result form.
type LabResultRequest struct {
	TestName       string `form:"test_name" json:"test_name" binding:"required,max=200"`
	Value          string `form:"value" json:"value" binding:"required,max=100"`
	Unit           string `form:"unit" json:"unit" binding:"max=50"`
	ReferenceRange string `form:"reference_range" json:"reference_range" binding:"max=100"`
	Status         string `form:"status" json:"status" binding:"omitempty,oneof=normal abnormal critical pending"`
	TestDate       string `form:"test_date" json:"test_date" binding:"required"`
	Provider       string `form:"provider" json:"provider" binding:"max=100"`
	Notes          string `form:"notes" json:"notes"`
}

func (req LabResultRequest) apply(lab *models.LabResult) error {
	date, err := utils.ParseDate("test_date", req.TestDate)
	if err != nil {
		return err
	}
	status := models.LabStatus(req.Status)
	if status == "" {
		status = models.LabPending
	}
	lab.TestName = strings.TrimSpace(req.TestName)
	lab.Value = strings.TrimSpace(req.Value)
	lab.Unit = strings.TrimSpace(req.Unit)
	lab.ReferenceRange = strings.TrimSpace(req.ReferenceRange)
	lab.Status = status
	lab.TestDate = date
	lab.Provider = strings.TrimSpace(req.Provider)
	lab.Notes = strings.TrimSpace(req.Notes)
	return nil
}

func (h *LabHandler) dateRange(c *gin.Context) (store.DateRange, error) {
	from, to, err := utils.DateRangeQuery(c.Query("from"), c.Query("to"))
	return store.DateRange{From: from, To: to}, err
}

// List renders lab results, optionally within ?from= and ?to=.
func (h *LabHandler) List(c *gin.Context) {
	dr, err := h.dateRange(c)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	ctx := c.Request.Context()
	owner := h.owner(c)
	results, err := h.repos.Labs.List(ctx, owner, dr, labPageLimit)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	names, err := h.repos.Labs.TestNames(ctx, owner)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	view := views.LabResults{
		Page:      h.page(c, "Lab Results"),
		Results:   results,
		TestNames: names,
	}
	if !dr.From.IsZero() {
		view.From = &dr.From
	}
	if !dr.To.IsZero() {
		view.To = &dr.To
	}
	h.render(c, view)
}

// Export downloads the lab results as a spreadsheet.
func (h *LabHandler) Export(c *gin.Context) {
	dr, err := h.dateRange(c)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	results, err := h.repos.Labs.List(c.Request.Context(), h.owner(c), dr, 0)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	data, err := export.LabResultsWorkbook(results)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	filename := fmt.Sprintf("lab-results-%s.xlsx", h.now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentTypeXLSX, data)
}

func (h *LabHandler) Create(c *gin.Context) {
	var req LabResultRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, labsPath)
		return
	}
	if !h.writable(c, labsPath) {
		return
	}

	lab := &models.LabResult{UserID: h.owner(c)}
	if err := req.apply(lab); err != nil {
		h.fail(c, err, labsPath)
		return
	}
	if err := h.repos.Labs.Create(c.Request.Context(), lab); err != nil {
		h.fail(c, err, labsPath)
		return
	}
	utils.Done(c, http.StatusCreated, "Lab result added successfully.", lab, labsPath)
}

func (h *LabHandler) Update(c *gin.Context) {
	var req LabResultRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, labsPath)
		return
	}
	if !h.writable(c, labsPath) {
		return
	}

	ctx := c.Request.Context()
	lab, err := h.repos.Labs.Get(ctx, h.owner(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, labsPath)
		return
	}
	if err := req.apply(lab); err != nil {
		h.fail(c, err, labsPath)
		return
	}
	if err := h.repos.Labs.Update(ctx, lab); err != nil {
		h.fail(c, err, labsPath)
		return
	}
	utils.Done(c, http.StatusOK, "Lab result updated successfully.", lab, labsPath)
}

func (h *LabHandler) Delete(c *gin.Context) {
	if !h.writable(c, labsPath) {
		return
	}
	if err := h.repos.Labs.Delete(c.Request.Context(), h.owner(c), c.Param("id")); err != nil {
		h.fail(c, err, labsPath)
		return
	}
	utils.Done(c, http.StatusOK, "Lab result deleted successfully.", nil, labsPath)
}
