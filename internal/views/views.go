// Package views holds one view model per page. Handlers fill them and
// serialize them as the page payload.
package views

import (
	"time"

	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/summary"
	"biogram-server/internal/utils"
)

// Page is the chrome shared by every page.
type Page struct {
	Title   string               `json:"title"`
	Flashes []utils.FlashMessage `json:"flashes,omitempty"`
	// Demo is set when content comes from the seeded data source.
	Demo     bool `json:"demo"`
	ReadOnly bool `json:"readOnly"`
}

// Link is a navigation entry.
type Link struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

type Home struct {
	Page
	User       *models.UserSanitized `json:"user,omitempty"`
	Navigation []Link                `json:"navigation"`
}

// PatientHeader identifies whose data a page shows.
type PatientHeader struct {
	Username  string     `json:"username"`
	BloodType string     `json:"bloodType,omitempty"`
	Allergies string     `json:"allergies,omitempty"`
	BirthDate *time.Time `json:"dateOfBirth,omitempty"`
}

type Dashboard struct {
	Page
	Patient           *PatientHeader          `json:"patient,omitempty"`
	Insights          summary.InsightGroups   `json:"insights"`
	ActiveProblems    []models.Problem        `json:"activeProblems"`
	RecentEvents      []summary.TimelineEvent `json:"recentEvents"`
	LatestVitals      *models.VitalSign       `json:"latestVitals,omitempty"`
	ActiveMedications int                     `json:"activeMedications"`
	PinnedNotes       []models.QuickNote      `json:"pinnedNotes"`
}

type Timeline struct {
	Page
	Events     []summary.TimelineEvent `json:"timelineEvents"`
	EventTypes []models.EventType      `json:"eventTypes"`
	Filter     string                  `json:"filter,omitempty"`
}

type Wearable struct {
	Page
	From         time.Time                 `json:"startDate"`
	To           time.Time                 `json:"endDate"`
	Days         []models.WearableData     `json:"wearableData"`
	Aggregates   summary.WearableAggregate `json:"aggregates"`
	LatestVitals *models.VitalSign         `json:"latestVitals,omitempty"`
	Advisories   []summary.Advisory        `json:"insights"`
}

type Medications struct {
	Page
	Active   []models.Medication `json:"activeMedications"`
	Inactive []models.Medication `json:"inactiveMedications"`
}

type LabResults struct {
	Page
	Results   []models.LabResult `json:"labResults"`
	TestNames []string           `json:"testNames"`
	From      *time.Time         `json:"from,omitempty"`
	To        *time.Time         `json:"to,omitempty"`
}

type Vitals struct {
	Page
	Latest   *models.VitalSign  `json:"latest,omitempty"`
	Readings []models.VitalSign `json:"readings"`
}

type Notes struct {
	Page
	Notes []models.QuickNote `json:"notes"`
}

type Insights struct {
	Page
	Insights         []models.AIInsight `json:"insights"`
	IncludeCompleted bool               `json:"includeCompleted"`
	Pending          int                `json:"pending"`
}

// SupportedDevice is a device family the bridge accepts syncs from.
type SupportedDevice struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type ConnectDevices struct {
	Page
	Connected []store.DeviceSync `json:"connectedDevices"`
	Supported []SupportedDevice  `json:"supportedDevices"`
	// SyncTopic is where this user's gateway publishes daily aggregates.
	SyncTopic string `json:"syncTopic,omitempty"`
}

type LinkRecords struct {
	Page
	Problems      []models.Problem        `json:"problems"`
	RecentRecords []summary.TimelineEvent `json:"recentRecords"`
}

type UploadDocuments struct {
	Page
	Documents []models.Document `json:"documents"`
	MaxBytes  int64             `json:"maxBytes"`
	// Records lists what a new upload may be attached to.
	Records []Link `json:"records"`
}

type ProfileSettings struct {
	Page
	User    models.UserSanitized `json:"user"`
	Profile *models.Profile      `json:"profile,omitempty"`
}

type ShareCode struct {
	Page
	Code      string     `json:"code"`
	Link      string     `json:"link"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	SingleUse bool       `json:"singleUse"`
}

type DoctorAccess struct {
	Page
	// Code prefills the entry form from a shared link.
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

type DoctorSummary struct {
	Page
	Patient      *PatientHeader            `json:"patient,omitempty"`
	RecentVisits []summary.TimelineEvent   `json:"recentVisits"`
	Medications  []summary.Medication      `json:"medications"`
	LabPanels    []summary.LabPanel        `json:"labPanels"`
	Wearables    summary.WearableAggregate `json:"wearables"`
	AccessUntil  *time.Time                `json:"accessUntil,omitempty"`
}

// NewPatientHeader summarizes user and profile; profile may be nil.
func NewPatientHeader(user *models.User, profile *models.Profile) *PatientHeader {
	if user == nil {
		return nil
	}
	h := &PatientHeader{Username: user.Username}
	if profile != nil {
		h.BloodType = profile.BloodType
		h.Allergies = profile.Allergies
		h.BirthDate = profile.DateOfBirth
	}
	return h
}
