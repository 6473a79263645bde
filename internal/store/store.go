// Package store declares the repositories the handlers depend on. Every
// method that touches health data takes the owning user id and must never
// return or modify rows owned by anyone else.
package store

import (
	"context"
	"time"

	"biogram-server/internal/models"
)

// Source names the backing implementation.
type Source string

const (
	SourceDatabase Source = "database"
	SourceDemo     Source = "demo"
)

// Capabilities describe what the selected implementation allows.
type Capabilities struct {
	Source Source
	// Writable is false for seeded content.
	Writable bool
	// Public stores may be read without a session, as the demo patient.
	Public bool
}

// DateRange bounds a query by day, inclusive of the whole To day. Zero
// values are open ends.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// LastDays returns the window of n days ending on end, inclusive.
func LastDays(end time.Time, n int) DateRange {
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return DateRange{From: end.AddDate(0, 0, -(n - 1)), To: end}
}

// RecordFilter narrows a health record listing.
type RecordFilter struct {
	EventType models.EventType
	Important bool
	Limit     int
}

// UserRepository stores accounts and their profiles.
type UserRepository interface {
	// Create inserts the user and an empty profile atomically.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsUsername(ctx context.Context, username string) (bool, error)
	// ExistsEmail ignores the account identified by exceptID.
	ExistsEmail(ctx context.Context, email, exceptID string) (bool, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, user *models.User, profile *models.Profile) error
	List(ctx context.Context) ([]models.User, error)
}

// SessionRepository stores login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetActiveByToken(ctx context.Context, tokenHash string) (*models.Session, error)
	IsActive(ctx context.Context, id string) (bool, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

type HealthRecordRepository interface {
	Create(ctx context.Context, record *models.HealthRecord) error
	List(ctx context.Context, ownerID string, filter RecordFilter) ([]models.HealthRecord, error)
	Get(ctx context.Context, ownerID, id string) (*models.HealthRecord, error)
	Update(ctx context.Context, record *models.HealthRecord) error
	Delete(ctx context.Context, ownerID, id string) error
	// RecentVisits returns the n most recent visit records in default order.
	RecentVisits(ctx context.Context, ownerID string, n int) ([]models.HealthRecord, error)
}

type MedicationRepository interface {
	Create(ctx context.Context, med *models.Medication) error
	// List returns all medications when active is nil.
	List(ctx context.Context, ownerID string, active *bool) ([]models.Medication, error)
	Get(ctx context.Context, ownerID, id string) (*models.Medication, error)
	Update(ctx context.Context, med *models.Medication) error
	SetActive(ctx context.Context, ownerID, id string, active bool) error
	Delete(ctx context.Context, ownerID, id string) error
}

type LabResultRepository interface {
	Create(ctx context.Context, result *models.LabResult) error
	List(ctx context.Context, ownerID string, r DateRange, limit int) ([]models.LabResult, error)
	TestNames(ctx context.Context, ownerID string) ([]string, error)
	Get(ctx context.Context, ownerID, id string) (*models.LabResult, error)
	Update(ctx context.Context, result *models.LabResult) error
	Delete(ctx context.Context, ownerID, id string) error
}

type VitalSignRepository interface {
	Create(ctx context.Context, vital *models.VitalSign) error
	List(ctx context.Context, ownerID string, r DateRange) ([]models.VitalSign, error)
	// Latest returns nil when the owner has no vitals.
	Latest(ctx context.Context, ownerID string) (*models.VitalSign, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// WearableRepository stores daily device aggregates. Writes for an existing
// (user, date, device) overwrite that row's metrics.
type WearableRepository interface {
	// Upsert reports whether a new row was created.
	Upsert(ctx context.Context, day *models.WearableData) (bool, error)
	List(ctx context.Context, ownerID string, r DateRange) ([]models.WearableData, error)
	// Latest returns nil when the owner has no wearable data.
	Latest(ctx context.Context, ownerID string) (*models.WearableData, error)
	Devices(ctx context.Context, ownerID string) ([]DeviceSync, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// DeviceSync is the most recent sync seen from one device.
type DeviceSync struct {
	DeviceName string    `json:"deviceName"`
	LastSync   time.Time `json:"lastSync"`
	Days       int       `json:"days"`
}

type InsightRepository interface {
	Create(ctx context.Context, insight *models.AIInsight) error
	List(ctx context.Context, ownerID string, includeCompleted bool) ([]models.AIInsight, error)
	Complete(ctx context.Context, ownerID, id string, at time.Time) error
}

type QuickNoteRepository interface {
	Create(ctx context.Context, note *models.QuickNote) error
	List(ctx context.Context, ownerID string) ([]models.QuickNote, error)
	Get(ctx context.Context, ownerID, id string) (*models.QuickNote, error)
	Update(ctx context.Context, note *models.QuickNote) error
	Delete(ctx context.Context, ownerID, id string) error
}

type ProblemRepository interface {
	Create(ctx context.Context, problem *models.Problem) error
	List(ctx context.Context, ownerID string) ([]models.Problem, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	List(ctx context.Context, ownerID string) ([]models.Document, error)
	Get(ctx context.Context, ownerID, id string) (*models.Document, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Repositories bundles every repository behind one data source.
type Repositories struct {
	Capabilities Capabilities

	Users       UserRepository
	Sessions    SessionRepository
	Records     HealthRecordRepository
	Medications MedicationRepository
	Labs        LabResultRepository
	Vitals      VitalSignRepository
	Wearables   WearableRepository
	Insights    InsightRepository
	Notes       QuickNoteRepository
	Problems    ProblemRepository
	Documents   DocumentRepository
}
