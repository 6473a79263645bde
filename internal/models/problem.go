package models

import "time"

// Problem is an active condition with its SOAP summary.
type Problem struct {
	BaseModel
	UserID     string     `gorm:"size:36;index;not null" json:"userId"`
	Condition  string     `gorm:"size:200;not null" json:"condition"`
	ICD10      string     `gorm:"column:icd10;size:20" json:"icd10"`
	Onset      *time.Time `gorm:"type:date" json:"onset,omitempty"`
	Status     string     `gorm:"size:50" json:"status"`
	Subjective string     `gorm:"type:text" json:"subjective"`
	Objective  string     `gorm:"type:text" json:"objective"`
	Assessment string     `gorm:"type:text" json:"assessment"`
	Plan       string     `gorm:"type:text" json:"plan"`
}
