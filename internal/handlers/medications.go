package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/models"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

const medicationsPath = "/health/medications"

// MedicationHandler handles medication requests.
type MedicationHandler struct {
	base
}

func NewMedicationHandler(d Deps) *MedicationHandler {
	return &MedicationHandler{base: newBase(d)}
}

// MedicationRequest represents the medication form.
type MedicationRequest struct {
	Name        string `form:"name" json:"name" binding:"required,max=200"`
	Dosage      string `form:"dosage" json:"dosage" binding:"required,max=100"`
	Frequency   string `form:"frequency" json:"frequency" binding:"required,oneof=daily twice_daily three_times four_times weekly as_needed"`
	StartDate   string `form:"start_date" json:"start_date" binding:"required"`
	EndDate     string `form:"end_date" json:"end_date"`
	Prescriber  string `form:"prescriber" json:"prescriber" binding:"max=100"`
	Purpose     string `form:"purpose" json:"purpose"`
	SideEffects string `form:"side_effects" json:"side_effects"`
}

// SetActiveRequest toggles a medication.
type SetActiveRequest struct {
	IsActive utils.Checkbox `form:"is_active" json:"is_active"`
}

func (req MedicationRequest) apply(med *models.Medication) error {
	start, err := utils.ParseDate("start_date", req.StartDate)
	if err != nil {
		return err
	}
	end, err := utils.ParseOptionalDate("end_date", req.EndDate)
	if err != nil {
		return err
	}
	med.Name = strings.TrimSpace(req.Name)
	med.Dosage = strings.TrimSpace(req.Dosage)
	med.Frequency = models.Frequency(req.Frequency)
	med.StartDate = start
	med.EndDate = end
	med.Prescriber = strings.TrimSpace(req.Prescriber)
	med.Purpose = strings.TrimSpace(req.Purpose)
	med.SideEffects = strings.TrimSpace(req.SideEffects)
	return nil
}

// List renders active and inactive medications.
func (h *MedicationHandler) List(c *gin.Context) {
	meds, err := h.repos.Medications.List(c.Request.Context(), h.owner(c), nil)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	view := views.Medications{
		Page:     h.page(c, "Medications"),
		Active:   []models.Medication{},
		Inactive: []models.Medication{},
	}
	for _, m := range meds {
		if m.IsActive {
			view.Active = append(view.Active, m)
		} else {
			view.Inactive = append(view.Inactive, m)
		}
	}
	h.render(c, view)
}

func (h *MedicationHandler) Create(c *gin.Context) {
	var req MedicationRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, medicationsPath)
		return
	}
	if !h.writable(c, medicationsPath) {
		return
	}

	med := &models.Medication{UserID: h.owner(c), IsActive: true}
	if err := req.apply(med); err != nil {
		h.fail(c, err, medicationsPath)
		return
	}
	if err := h.repos.Medications.Create(c.Request.Context(), med); err != nil {
		h.fail(c, err, medicationsPath)
		return
	}
	utils.Done(c, http.StatusCreated, "Medication added successfully.", med, medicationsPath)
}

func (h *MedicationHandler) Update(c *gin.Context) {
	var req MedicationRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, medicationsPath)
		return
	}
	if !h.writable(c, medicationsPath) {
		return
	}

	ctx := c.Request.Context()
	med, err := h.repos.Medications.Get(ctx, h.owner(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, medicationsPath)
		return
	}
	if err := req.apply(med); err != nil {
		h.fail(c, err, medicationsPath)
		return
	}
	if err := h.repos.Medications.Update(ctx, med); err != nil {
		h.fail(c, err, medicationsPath)
		return
	}
	utils.Done(c, http.StatusOK, "Medication updated successfully.", med, medicationsPath)
}

// SetActive starts or stops a medication without deleting it.
func (h *MedicationHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, medicationsPath)
		return
	}
	if !h.writable(c, medicationsPath) {
		return
	}

	active := bool(req.IsActive)
	if err := h.repos.Medications.SetActive(c.Request.Context(), h.owner(c), c.Param("id"), active); err != nil {
		h.fail(c, err, medicationsPath)
		return
	}
	msg := "Medication marked as inactive."
	if active {
		msg = "Medication marked as active."
	}
	utils.Done(c, http.StatusOK, msg, gin.H{"id": c.Param("id"), "isActive": active}, medicationsPath)
}

func (h *MedicationHandler) Delete(c *gin.Context) {
	if !h.writable(c, medicationsPath) {
		return
	}
	if err := h.repos.Medications.Delete(c.Request.Context(), h.owner(c), c.Param("id")); err != nil {
		h.fail(c, err, medicationsPath)
		return
	}
	utils.Done(c, http.StatusOK, "Medication deleted successfully.", nil, medicationsPath)
}
