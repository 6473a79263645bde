package models

// QuickNote is a free-text note. Pinned notes sort first.
type QuickNote struct {
	BaseModel
	UserID   string `gorm:"size:36;index;not null" json:"userId"`
	Content  string `gorm:"type:text;not null" json:"content"`
	IsPinned bool   `gorm:"default:false" json:"isPinned"`
}
