package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"biogram-server/internal/apperr"
	"biogram-server/internal/blobstore"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

const (
	documentsPath = "/upload-documents"
	// documentRecords is how many recent records an upload can be attached to.
	documentRecords = 20
)

// DocumentHandler uploads and serves the owner's documents. Rows live in
// the repository and bytes in the blob store.
type DocumentHandler struct {
	base
	blobs blobstore.Store
}

func NewDocumentHandler(d Deps, blobs blobstore.Store) *DocumentHandler {
	return &DocumentHandler{base: newBase(d), blobs: blobs}
}

// List renders the upload page.
func (h *DocumentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	owner := h.owner(c)

	docs, err := h.repos.Documents.List(ctx, owner)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	records, err := h.repos.Records.List(ctx, owner, store.RecordFilter{Limit: documentRecords})
	if err != nil {
		h.fail(c, err, "")
		return
	}

	links := make([]views.Link, 0, len(records))
	for _, r := range records {
		links = append(links, views.Link{
			Title: fmt.Sprintf("%s (%s)", r.Title, r.Date.Format("2006-01-02")),
			Path:  "/health/records/" + r.ID,
		})
	}
	h.render(c, views.UploadDocuments{
		Page:      h.page(c, "Upload Documents"),
		Documents: docs,
		MaxBytes:  h.cfg.UploadMaxBytes,
		Records:   links,
	})
}

// multipartOverhead allows for the form fields and part headers sent
// alongside the file.
const multipartOverhead = 64 << 10

// Upload stores the multipart "file" field, optionally attached to the
// record named by "record_id".
func (h *DocumentHandler) Upload(c *gin.Context) {
	if !h.writable(c, documentsPath) {
		return
	}

	tooLarge := apperr.Validation("file", fmt.Sprintf("Files may be at most %d MB.", h.cfg.UploadMaxBytes>>20))
	if limit := h.cfg.UploadMaxBytes; limit > 0 {
		if c.Request.ContentLength > limit+multipartOverhead {
			h.fail(c, tooLarge, documentsPath)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			h.fail(c, tooLarge, documentsPath)
			return
		}
		h.fail(c, apperr.Validation("file", "Choose a file to upload."), documentsPath)
		return
	}
	defer file.Close()

	if header.Size <= 0 {
		h.fail(c, apperr.Validation("file", "The uploaded file is empty."), documentsPath)
		return
	}
	if h.cfg.UploadMaxBytes > 0 && header.Size > h.cfg.UploadMaxBytes {
		h.fail(c, tooLarge, documentsPath)
		return
	}

	ctx := c.Request.Context()
	owner := h.owner(c)

	doc := &models.Document{
		UserID:      owner,
		FileName:    filepath.Base(header.Filename),
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
	if doc.ContentType == "" {
		doc.ContentType = "application/octet-stream"
	}
	if recordID := strings.TrimSpace(c.PostForm("record_id")); recordID != "" {
		if _, err := h.repos.Records.Get(ctx, owner, recordID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				err = apperr.Validation("record_id", "Select one of your health records.")
			}
			h.fail(c, err, documentsPath)
			return
		}
		doc.RecordID = &recordID
	}

	doc.ID = models.NewID()
	doc.BlobKey = blobstore.DocumentKey(owner, doc.ID)
	if err := h.blobs.Put(ctx, doc.BlobKey, doc.ContentType, file, doc.Size); err != nil {
		h.fail(c, err, documentsPath)
		return
	}
	if err := h.repos.Documents.Create(ctx, doc); err != nil {
		if derr := h.blobs.Delete(ctx, doc.BlobKey); derr != nil {
			h.log.Warn("failed to remove orphaned blob", zap.String("key", doc.BlobKey), zap.Error(derr))
		}
		h.fail(c, err, documentsPath)
		return
	}

	h.log.Info("document uploaded",
		zap.String("user_id", owner),
		zap.String("document_id", doc.ID),
		zap.Int64("size", doc.Size),
	)
	utils.Done(c, http.StatusCreated, "Document uploaded successfully.", doc, documentsPath)
}

// Download streams a document back to its owner.
func (h *DocumentHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()
	doc, err := h.repos.Documents.Get(ctx, h.owner(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "")
		return
	}

	body, err := h.blobs.Get(ctx, doc.BlobKey)
	if errors.Is(err, blobstore.ErrNotFound) {
		h.fail(c, apperr.ErrNotFound, "")
		return
	}
	if err != nil {
		h.fail(c, err, "")
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, doc.Size, doc.ContentType, body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.FileName),
	})
}

// Delete removes the row first; a blob left behind is only logged.
func (h *DocumentHandler) Delete(c *gin.Context) {
	if !h.writable(c, documentsPath) {
		return
	}

	if err := h.remove(c.Request.Context(), h.owner(c), c.Param("id")); err != nil {
		h.fail(c, err, documentsPath)
		return
	}
	utils.Done(c, http.StatusOK, "Document deleted.", nil, documentsPath)
}

func (h *DocumentHandler) remove(ctx context.Context, ownerID, id string) error {
	doc, err := h.repos.Documents.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := h.repos.Documents.Delete(ctx, ownerID, doc.ID); err != nil {
		return err
	}
	if err := h.blobs.Delete(ctx, doc.BlobKey); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		h.log.Warn("failed to delete document blob", zap.String("key", doc.BlobKey), zap.Error(err))
	}
	return nil
}
