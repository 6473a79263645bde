package models

import "time"

// LabStatus represents the interpretation of a lab value
type LabStatus string

const (
	LabNormal   LabStatus = "normal"
	LabAbnormal LabStatus = "abnormal"
	LabCritical LabStatus = "critical"
	LabPending  LabStatus = "pending"
)

// Valid reports whether s is one of the known statuses.
func (s LabStatus) Valid() bool {
	switch s {
	case LabNormal, LabAbnormal, LabCritical, LabPending:
		return true
	}
	return false
}

// LabResult is a single lab measurement
type LabResult struct {
	BaseModel
	UserID         string    `gorm:"size:36;index;not null" json:"userId"`
	TestName       string    `gorm:"size:200;not null;index" json:"testName"`
	Value          string    `gorm:"size:100;not null" json:"value"`
	Unit           string    `gorm:"size:50" json:"unit"`
	ReferenceRange string    `gorm:"size:100" json:"referenceRange"`
	Status         LabStatus `gorm:"size:20;default:'pending'" json:"status"`
	TestDate       time.Time `gorm:"index" json:"testDate"`
	Provider       string    `gorm:"size:100" json:"provider"`
	Notes          string    `gorm:"type:text" json:"notes"`
}
