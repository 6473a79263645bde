package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// VitalSource records where a measurement came from
type VitalSource string

const (
	SourceManual   VitalSource = "manual"
	SourceWearable VitalSource = "wearable"
	SourceClinic   VitalSource = "clinic"
)

// Valid reports whether s is one of the known sources.
func (s VitalSource) Valid() bool {
	return s == SourceManual || s == SourceWearable || s == SourceClinic
}

// VitalSign is one measurement event. Weight is in kilograms and height in
// centimetres; BMI is derived from them.
type VitalSign struct {
	BaseModel
	UserID            string      `gorm:"size:36;index;not null" json:"userId"`
	Systolic          *int        `json:"systolic,omitempty"`
	Diastolic         *int        `json:"diastolic,omitempty"`
	HeartRate         *int        `json:"heartRate,omitempty"`
	Temperature       *float64    `json:"temperature,omitempty"`
	Weight            *float64    `json:"weight,omitempty"`
	Height            *float64    `json:"height,omitempty"`
	BMI               *float64    `json:"bmi,omitempty"`
	OxygenSaturation  *int        `json:"oxygenSaturation,omitempty"`
	RespiratoryRate   *int        `json:"respiratoryRate,omitempty"`
	RecordedAt        time.Time   `gorm:"index" json:"recordedAt"`
	Source            VitalSource `gorm:"size:50;default:'manual'" json:"source"`
}

// DeriveBMI sets BMI from weight and height, or clears it when either is missing.
func (v *VitalSign) DeriveBMI() {
	if v.Weight == nil || v.Height == nil || *v.Height <= 0 {
		v.BMI = nil
		return
	}
	meters := *v.Height / 100
	bmi := math.Round(*v.Weight/(meters*meters)*100) / 100
	v.BMI = &bmi
}

// BeforeSave keeps BMI consistent with the stored weight and height.
func (v *VitalSign) BeforeSave(tx *gorm.DB) error {
	v.DeriveBMI()
	return nil
}
