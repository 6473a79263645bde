package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

const vitalsPath = "/health/vitals"

// VitalHandler handles vital sign requests.
type VitalHandler struct {
	base
}

func NewVitalHandler(d Deps) *VitalHandler {
	return &VitalHandler{base: newBase(d)}
}

// VitalSignRequest represents the vitals form. Blank form fields bind to
// zero and are treated as not measured.
type VitalSignRequest struct {
	Systolic         *int     `form:"systolic" json:"systolic" binding:"omitempty,min=0,max=300"`
	Diastolic        *int     `form:"diastolic" json:"diastolic" binding:"omitempty,min=0,max=200"`
	HeartRate        *int     `form:"heart_rate" json:"heart_rate" binding:"omitempty,min=0,max=300"`
	Temperature      *float64 `form:"temperature" json:"temperature" binding:"omitempty,min=0,max=50"`
	Weight           *float64 `form:"weight" json:"weight" binding:"omitempty,min=0,max=700"`
	Height           *float64 `form:"height" json:"height" binding:"omitempty,min=0,max=300"`
	OxygenSaturation *int     `form:"oxygen_saturation" json:"oxygen_saturation" binding:"omitempty,min=0,max=100"`
	RespiratoryRate  *int     `form:"respiratory_rate" json:"respiratory_rate" binding:"omitempty,min=0,max=100"`
	RecordedAt       string   `form:"recorded_at" json:"recorded_at"`
	Source           string   `form:"source" json:"source" binding:"omitempty,oneof=manual wearable clinic"`
}

func nilIfZero[T int | float64](v *T) *T {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func (h *VitalHandler) build(req VitalSignRequest, owner string) (*models.VitalSign, error) {
	recordedAt := h.now()
	if req.RecordedAt != "" {
		t, err := utils.ParseDateTime("recorded_at", req.RecordedAt)
		if err != nil {
			return nil, err
		}
		recordedAt = t
	}
	source := models.VitalSource(req.Source)
	if source == "" {
		source = models.SourceManual
	}

	v := &models.VitalSign{
		UserID:           owner,
		Systolic:         nilIfZero(req.Systolic),
		Diastolic:        nilIfZero(req.Diastolic),
		HeartRate:        nilIfZero(req.HeartRate),
		Temperature:      nilIfZero(req.Temperature),
		Weight:           nilIfZero(req.Weight),
		Height:           nilIfZero(req.Height),
		OxygenSaturation: nilIfZero(req.OxygenSaturation),
		RespiratoryRate:  nilIfZero(req.RespiratoryRate),
		RecordedAt:       recordedAt,
		Source:           source,
	}
	if v.Systolic == nil && v.Diastolic == nil && v.HeartRate == nil && v.Temperature == nil &&
		v.Weight == nil && v.Height == nil && v.OxygenSaturation == nil && v.RespiratoryRate == nil {
		return nil, apperr.Validation("systolic", "Enter at least one measurement.")
	}
	if (v.Systolic == nil) != (v.Diastolic == nil) {
		return nil, apperr.Validation("diastolic", "Blood pressure needs both systolic and diastolic values.")
	}
	v.DeriveBMI()
	return v, nil
}

// List renders vitals, optionally within ?from= and ?to=.
func (h *VitalHandler) List(c *gin.Context) {
	from, to, err := utils.DateRangeQuery(c.Query("from"), c.Query("to"))
	if err != nil {
		h.fail(c, err, "")
		return
	}

	ctx := c.Request.Context()
	owner := h.owner(c)
	readings, err := h.repos.Vitals.List(ctx, owner, store.DateRange{From: from, To: to})
	if err != nil {
		h.fail(c, err, "")
		return
	}
	latest, err := h.repos.Vitals.Latest(ctx, owner)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	h.render(c, views.Vitals{
		Page:     h.page(c, "Vital Signs"),
		Latest:   latest,
		Readings: readings,
	})
}

func (h *VitalHandler) Create(c *gin.Context) {
	var req VitalSignRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, vitalsPath)
		return
	}
	if !h.writable(c, vitalsPath) {
		return
	}

	vital, err := h.build(req, h.owner(c))
	if err != nil {
		h.fail(c, err, vitalsPath)
		return
	}
	if err := h.repos.Vitals.Create(c.Request.Context(), vital); err != nil {
		h.fail(c, err, vitalsPath)
		return
	}
	utils.Done(c, http.StatusCreated, "Vital signs recorded successfully.", vital, vitalsPath)
}

func (h *VitalHandler) Delete(c *gin.Context) {
	if !h.writable(c, vitalsPath) {
		return
	}
	if err := h.repos.Vitals.Delete(c.Request.Context(), h.owner(c), c.Param("id")); err != nil {
		h.fail(c, err, vitalsPath)
		return
	}
	utils.Done(c, http.StatusOK, "Vital signs deleted successfully.", nil, vitalsPath)
}
