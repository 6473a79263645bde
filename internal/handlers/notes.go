package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biogram-server/internal/models"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

const notesPath = "/health/notes"

// NoteHandler handles quick note requests.
type NoteHandler struct {
	base
}

func NewNoteHandler(d Deps) *NoteHandler {
	return &NoteHandler{base: newBase(d)}
}

// NoteRequest represents the quick note form.
type NoteRequest struct {
	Content  string         `form:"content" json:"content" binding:"required"`
	IsPinned utils.Checkbox `form:"is_pinned" json:"is_pinned"`
}

// List renders notes, pinned first.
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.repos.Notes.List(c.Request.Context(), h.owner(c))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if notes == nil {
		notes = []models.QuickNote{}
	}
	h.render(c, views.Notes{Page: h.page(c, "Quick Notes"), Notes: notes})
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req NoteRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, notesPath)
		return
	}
	if !h.writable(c, notesPath) {
		return
	}

	note := &models.QuickNote{
		UserID:   h.owner(c),
		Content:  strings.TrimSpace(req.Content),
		IsPinned: bool(req.IsPinned),
	}
	if err := h.repos.Notes.Create(c.Request.Context(), note); err != nil {
		h.fail(c, err, notesPath)
		return
	}
	utils.Done(c, http.StatusCreated, "Note saved.", note, notesPath)
}

func (h *NoteHandler) Update(c *gin.Context) {
	var req NoteRequest
	if err := utils.BindAndValidate(c, &req); err != nil {
		h.fail(c, err, notesPath)
		return
	}
	if !h.writable(c, notesPath) {
		return
	}

	ctx := c.Request.Context()
	note, err := h.repos.Notes.Get(ctx, h.owner(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, notesPath)
		return
	}
	note.Content = strings.TrimSpace(req.Content)
	note.IsPinned = bool(req.IsPinned)
	if err := h.repos.Notes.Update(ctx, note); err != nil {
		h.fail(c, err, notesPath)
		return
	}
	utils.Done(c, http.StatusOK, "Note updated.", note, notesPath)
}

// TogglePin flips the pinned flag of a note.
func (h *NoteHandler) TogglePin(c *gin.Context) {
	if !h.writable(c, notesPath) {
		return
	}

	ctx := c.Request.Context()
	note, err := h.repos.Notes.Get(ctx, h.owner(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, notesPath)
		return
	}
	note.IsPinned = !note.IsPinned
	if err := h.repos.Notes.Update(ctx, note); err != nil {
		h.fail(c, err, notesPath)
		return
	}

	msg := "Note unpinned."
	if note.IsPinned {
		msg = "Note pinned."
	}
	utils.Done(c, http.StatusOK, msg, note, notesPath)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	if !h.writable(c, notesPath) {
		return
	}
	if err := h.repos.Notes.Delete(c.Request.Context(), h.owner(c), c.Param("id")); err != nil {
		h.fail(c, err, notesPath)
		return
	}
	utils.Done(c, http.StatusOK, "Note deleted.", nil, notesPath)
}
