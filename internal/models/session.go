package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Session is a persisted login. Access tokens carry its ID so that logout
// and revocation take effect before the token expires.
type Session struct {
	BaseModel
	UserID    string    `gorm:"size:36;index;not null" json:"userId"`
	TokenHash string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// HashToken returns the digest stored in place of a raw refresh token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Active reports whether the session can still authenticate requests.
func (s *Session) Active(now time.Time) bool {
	return !s.IsRevoked && now.Before(s.ExpiresAt)
}
