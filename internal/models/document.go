package models

// Document is an uploaded file. The bytes live in the blob store under BlobKey.
type Document struct {
	BaseModel
	UserID      string  `gorm:"size:36;index;not null" json:"userId"`
	RecordID    *string `gorm:"size:36;index" json:"recordId,omitempty"`
	FileName    string  `gorm:"size:255;not null" json:"fileName"`
	ContentType string  `gorm:"size:100;not null" json:"contentType"`
	Size        int64   `json:"size"`
	BlobKey     string  `gorm:"size:255;not null" json:"-"`
}
