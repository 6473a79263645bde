package models

import (
	"time"

	"gorm.io/datatypes"
)

// EventType represents the kind of clinical event a HealthRecord captures
type EventType string

const (
	EventVisit      EventType = "visit"
	EventLab        EventType = "lab"
	EventEmergency  EventType = "emergency"
	EventMedication EventType = "medication"
	EventNote       EventType = "note"
	EventProcedure  EventType = "procedure"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventVisit, EventLab, EventEmergency, EventMedication, EventNote, EventProcedure:
		return true
	}
	return false
}

// HealthRecord represents a single clinical event in a user's history
type HealthRecord struct {
	BaseModel
	UserID      string                           `gorm:"size:36;index;not null" json:"userId"`
	EventType   EventType                        `gorm:"size:20;not null" json:"eventType"`
	Title       string                           `gorm:"size:200;not null" json:"title"`
	Description string                           `gorm:"type:text" json:"description"`
	Date        time.Time                        `gorm:"index" json:"date"`
	Provider    string                           `gorm:"size:100" json:"provider"`
	Location    string                           `gorm:"size:200" json:"location"`
	IsImportant bool                             `gorm:"default:false" json:"isImportant"`
	Visit       datatypes.JSONType[VisitDetails] `json:"visit"`

	Documents []Document `gorm:"foreignKey:RecordID;constraint:OnDelete:SET NULL" json:"documents,omitempty"`
}

// VisitDetails is the structured SOAP note attached to visit records.
type VisitDetails struct {
	Specialty      string            `json:"specialty,omitempty"`
	ChiefComplaint string            `json:"chiefComplaint,omitempty"`
	Subjective     string            `json:"subjective,omitempty"`
	Objective      VisitObjective    `json:"objective"`
	Assessment     []string          `json:"assessment,omitempty"`
	Plan           []string          `json:"plan,omitempty"`
	Medications    []VisitMedication `json:"medications,omitempty"`
}

// VisitObjective holds the measured part of a visit note.
type VisitObjective struct {
	Vitals       map[string]string `json:"vitals,omitempty"`
	PhysicalExam string            `json:"physicalExam,omitempty"`
	Labs         []LabEntry        `json:"labs,omitempty"`
	Imaging      string            `json:"imaging,omitempty"`
}

// LabEntry is one line of a lab panel embedded in a visit note.
type LabEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VisitMedication is a prescription listed in a visit note.
type VisitMedication struct {
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	Purpose   string `json:"purpose"`
}

// Details returns the visit note stored on the record.
func (r *HealthRecord) Details() VisitDetails {
	return r.Visit.Data()
}

// SetDetails replaces the visit note stored on the record.
func (r *HealthRecord) SetDetails(d VisitDetails) {
	r.Visit = datatypes.NewJSONType(d)
}
