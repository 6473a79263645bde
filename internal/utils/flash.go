package utils

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "flash"
	flashMaxAge = 60
	flashKey    = "flash.pending"
)

// Flash levels.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// FlashMessage is a one-shot notice shown on the next page view.
type FlashMessage struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// AddFlash queues a message for the next page the client renders.
func AddFlash(c *gin.Context, level, message string) {
	pending := append(pendingFlashes(c), FlashMessage{Level: level, Message: message})
	c.Set(flashKey, pending)
	raw, err := json.Marshal(pending)
	if err != nil {
		return
	}
	setFlashCookie(c, base64.RawURLEncoding.EncodeToString(raw), flashMaxAge)
}

// PopFlashes returns and clears the messages carried by the request.
func PopFlashes(c *gin.Context) []FlashMessage {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	setFlashCookie(c, "", -1)
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	var messages []FlashMessage
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil
	}
	return messages
}

func pendingFlashes(c *gin.Context) []FlashMessage {
	if v, ok := c.Get(flashKey); ok {
		if pending, ok := v.([]FlashMessage); ok {
			return pending
		}
	}
	return nil
}

func setFlashCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, value, maxAge, "/", "", false, true)
}
