package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"biogram-server/internal/apperr"
	"biogram-server/internal/config"
	"biogram-server/internal/middleware"
	"biogram-server/internal/store"
	"biogram-server/internal/utils"
	"biogram-server/internal/views"
)

// Deps are shared by every handler.
type Deps struct {
	Repos *store.Repositories
	Cfg   *config.Config
	Log   *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type base struct {
	repos *store.Repositories
	cfg   *config.Config
	log   *zap.Logger
	now   func() time.Time
}

func newBase(d Deps) base {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return base{repos: d.Repos, cfg: d.Cfg, log: log, now: now}
}

// page builds the chrome for a GET page and consumes pending flashes.
func (b *base) page(c *gin.Context, title string) views.Page {
	return views.Page{
		Title:    title,
		Flashes:  utils.PopFlashes(c),
		Demo:     b.repos.Capabilities.Source == store.SourceDemo,
		ReadOnly: !b.repos.Capabilities.Writable,
	}
}

func (b *base) render(c *gin.Context, view interface{}) {
	utils.Success(c, "OK", view)
}

// owner is the user whose data the request reads or writes.
func (b *base) owner(c *gin.Context) string {
	id, _ := middleware.GetOwnerIDFromContext(c)
	return id
}

// writable rejects the request when the data source is read-only.
func (b *base) writable(c *gin.Context, back string) bool {
	if b.repos.Capabilities.Writable {
		return true
	}
	b.fail(c, apperr.ErrReadOnly, back)
	return false
}

// fail maps err onto the response. Form posts get an error flash and a
// redirect to back; API clients get the envelope.
func (b *base) fail(c *gin.Context, err error, back string) {
	if errors.Is(err, apperr.ErrAuthorization) {
		utils.SeeOther(c, middleware.DoctorAccessPath)
		return
	}

	status, message, field := http.StatusInternalServerError, "Something went wrong. Please try again.", ""
	if ve, ok := apperr.AsValidation(err); ok {
		status, message, field = http.StatusBadRequest, ve.Message, ve.Field
	} else {
		switch {
		case errors.Is(err, apperr.ErrAuthentication):
			status, message = http.StatusUnauthorized, apperr.ErrAuthentication.Error()
		case errors.Is(err, apperr.ErrNotFound):
			status, message = http.StatusNotFound, "Not found."
		case errors.Is(err, apperr.ErrConflict):
			status, message = http.StatusConflict, "That record already exists."
		case errors.Is(err, apperr.ErrReadOnly):
			status, message = http.StatusForbidden, "The demo data source is read-only."
		default:
			b.log.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
	}

	if utils.IsFormRequest(c) && back != "" {
		if field != "" {
			message = field + ": " + message
		}
		utils.AddFlash(c, utils.FlashError, message)
		utils.SeeOther(c, back)
		return
	}
	if field != "" || status == http.StatusBadRequest {
		utils.ValidationFailed(c, field, message)
		return
	}
	utils.Error(c, status, message)
}
