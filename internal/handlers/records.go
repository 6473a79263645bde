package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/summary"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

const timelinePath = "/health/timeline"

var eventTypes = []models.EventType{
	models.EventVisit,
	models.EventLab,
	models.EventEmergency,
	models.EventMedication,
	models.EventNote,
	models.EventProcedure,
}

// RecordHandler handles health record requests.
type RecordHandler struct {
	base
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(d Deps) *RecordHandler {
	return &RecordHandler{base: newBase(d)}
}

// RecordRequest represents the request body for creating or updating a
// health record. Visit is accepted from JSON clients only.
type RecordRequest struct {
	EventType   string               `form:"event_type" json:"event_type" binding:"required,oneof=visit lab emergency medication note procedure"`
	Title       string               `form:"title" json:"title" binding:"required,max=200"`
	Description string               `form:"description" json:"description"`
	Date        string               `form:"date" json:"date"`
	Provider    string               `form:"provider" json:"provider" binding:"max=100"`
	Location    string               `form:"location" json:"location" binding:"max=200"`
	IsImportant utils.Checkbox       `form:"is_important" json:"is_important"`
	Visit       *models.VisitDetails `form:"-" json:"visit"`
}

func (h *RecordHandler) apply(record *models.HealthRecord, req RecordRequest) error {
	date, err := utils.ParseDateOrDefault("date", req.Date, h.now())
	if err != nil {
		return err
	}
	record.EventType = models.EventType(req.EventType)
	record.Title = strings.TrimSpace(req.Title)
	record.Description = strings.TrimSpace(req.Description)
	record.Date = date
	record.Provider = strings.TrimSpace(req.Provider)
	record.Location = strings.TrimSpace(req.Location)
	record.IsImportant = bool(req.IsImportant)
	if req.Visit != nil {
		record.SetDetails(*req.Visit)
	}
	return nil
}

// Timeline lists the owner's records newest first. ?event_type and
// ?important narrow the list.
func (h *RecordHandler) Timeline(c *gin.Context) {
	filter := store.RecordFilter{
		EventType: models.EventType(c.Query("event_type")),
		Important: parseCheckboxQuery(c.Query("important")),
	}
	if filter.EventType != "" && !filter.EventType.Valid() {
		h.fail(c, apperr.Validation("event_type", "Unknown event type."), "")
		return
	}

	records, err := h.repos.Records.List(c.Request.Context(), h.owner(c), filter)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	h.render(c, views.Timeline{
		Page:       h.page(c, "Health Timeline"),
		Events:     summary.Timeline(records),
		EventTypes: eventTypes,
		Filter:     string(filter.EventType),
	})
}

// Create adds a record to the owner's timeline.
func (h *RecordHandler) Create(c *gin.Context) {
	var req RecordRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, timelinePath)
		return
	}
	if !h.writable(c, timelinePath) {
		return
	}

	record := &models.HealthRecord{UserID: h.owner(c)}
	if err := h.apply(record, req); err != nil {
		h.fail(c, err, timelinePath)
		return
	}
	if err := h.repos.Records.Create(c.Request.Context(), record); err != nil {
		h.fail(c, err, timelinePath)
		return
	}

	utils.Done(c, http.StatusCreated, "Health record added successfully.", record, timelinePath)
}

// Get returns one of the owner's records.
func (h *RecordHandler) Get(c *gin.Context) {
	record, err := h.repos.Records.Get(c.Request.Context(), h.owner(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	utils.Success(c, "Health record retrieved successfully", record)
}

// Update replaces the editable fields of a record.
func (h *RecordHandler) Update(c *gin.Context) {
	var req RecordRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, timelinePath)
		return
	}
	if !h.writable(c, timelinePath) {
		return
	}

	ctx := c.Request.Context()
	record, err := h.repos.Records.Get(ctx, h.owner(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, timelinePath)
		return
	}
	if err := h.apply(record, req); err != nil {
		h.fail(c, err, timelinePath)
		return
	}
	if err := h.repos.Records.Update(ctx, record); err != nil {
		h.fail(c, err, timelinePath)
		return
	}

	utils.Done(c, http.StatusOK, "Health record updated successfully.", record, timelinePath)
}

// Delete removes one of the owner's records.
func (h *RecordHandler) Delete(c *gin.Context) {
	if !h.writable(c, timelinePath) {
		return
	}
	if err := h.repos.Records.Delete(c.Request.Context(), h.owner(c), c.Param("id")); err != nil {
		h.fail(c, err, timelinePath)
		return
	}
	utils.Done(c, http.StatusOK, "Health record deleted successfully.", nil, timelinePath)
}

func parseCheckboxQuery(v string) bool {
	var b utils.Checkbox
	_ = b.UnmarshalParam(v)
	return bool(b)
}
