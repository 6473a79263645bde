// Package demostore serves seeded, read-only demo content for one patient.
package demostore

import (
	"context"
	"sort"
	"strings"
	"time"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/summary"
)

// Clock returns the current time. Wearable days are generated relative to it.
type Clock func() time.Time

type data struct {
	owner    string
	now      Clock
	user     models.User
	profile  models.Profile
	records  []models.HealthRecord
	meds     []models.Medication
	labs     []models.LabResult
	vitals   []models.VitalSign
	insights []models.AIInsight
	notes    []models.QuickNote
	problems []models.Problem
}

// New returns repositories answering for patientID only. now may be nil.
func New(patientID string, now Clock) *store.Repositories {
	if now == nil {
		now = time.Now
	}
	d := &data{
		owner:    patientID,
		now:      now,
		records:  seedRecords(patientID),
		meds:     seedMedications(patientID),
		labs:     seedLabResults(patientID),
		vitals:   seedVitals(patientID),
		insights: seedInsights(patientID),
		notes:    seedNotes(patientID),
		problems: seedProblems(patientID),
	}
	d.user, d.profile = seedUser(patientID)
	models.SortHealthRecords(d.records)
	models.SortMedications(d.meds)
	models.SortLabResults(d.labs)
	models.SortVitalSigns(d.vitals)
	models.SortInsights(d.insights)
	models.SortQuickNotes(d.notes)

	return &store.Repositories{
		Capabilities: store.Capabilities{Source: store.SourceDemo, Writable: false, Public: true},
		Users:        userRepo{d},
		Sessions:     sessionRepo{},
		Records:      recordRepo{d},
		Medications:  medicationRepo{d},
		Labs:         labRepo{d},
		Vitals:       vitalRepo{d},
		Wearables:    wearableRepo{d},
		Insights:     insightRepo{d},
		Notes:        noteRepo{d},
		Problems:     problemRepo{d},
		Documents:    documentRepo{},
	}
}

func (d *data) owns(ownerID string) bool {
	return ownerID == d.owner
}

// filter copies the rows of src that keep accepts.
func filter[T any](src []T, keep func(*T) bool) []T {
	out := make([]T, 0, len(src))
	for i := range src {
		if keep(&src[i]) {
			out = append(out, src[i])
		}
	}
	return out
}

func find[T any](src []T, id func(*T) string, want string) (*T, error) {
	for i := range src {
		if id(&src[i]) == want {
			v := src[i]
			return &v, nil
		}
	}
	return nil, apperr.ErrNotFound
}

type userRepo struct{ d *data }

func (r userRepo) Create(context.Context, *models.User) error { return apperr.ErrReadOnly }

func (r userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if id != r.d.owner {
		return nil, apperr.ErrNotFound
	}
	u := r.d.user
	return &u, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if username != r.d.user.Username {
		return nil, apperr.ErrNotFound
	}
	u := r.d.user
	return &u, nil
}

func (r userRepo) ExistsUsername(_ context.Context, username string) (bool, error) {
	return username == r.d.user.Username, nil
}

func (r userRepo) ExistsEmail(_ context.Context, email, exceptID string) (bool, error) {
	return strings.EqualFold(email, r.d.user.Email) && exceptID != r.d.owner, nil
}

func (r userRepo) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	if userID != r.d.owner {
		return nil, apperr.ErrNotFound
	}
	p := r.d.profile
	return &p, nil
}

func (r userRepo) UpdateProfile(context.Context, *models.User, *models.Profile) error {
	return apperr.ErrReadOnly
}

func (r userRepo) List(context.Context) ([]models.User, error) {
	return []models.User{r.d.user}, nil
}

// sessionRepo refuses logins: demo content is read without a session.
type sessionRepo struct{}

func (sessionRepo) Create(context.Context, *models.Session) error { return apperr.ErrReadOnly }

func (sessionRepo) GetActiveByToken(context.Context, string) (*models.Session, error) {
	return nil, apperr.ErrNotFound
}

func (sessionRepo) IsActive(context.Context, string) (bool, error) { return false, nil }
func (sessionRepo) Revoke(context.Context, string) error           { return nil }
func (sessionRepo) RevokeAllForUser(context.Context, string) error { return nil }

type recordRepo struct{ d *data }

func (r recordRepo) Create(context.Context, *models.HealthRecord) error { return apperr.ErrReadOnly }

func (r recordRepo) List(_ context.Context, ownerID string, f store.RecordFilter) ([]models.HealthRecord, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	out := filter(r.d.records, func(rec *models.HealthRecord) bool {
		if f.EventType != "" && rec.EventType != f.EventType {
			return false
		}
		return !f.Important || rec.IsImportant
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r recordRepo) Get(_ context.Context, ownerID, id string) (*models.HealthRecord, error) {
	if !r.d.owns(ownerID) {
		return nil, apperr.ErrNotFound
	}
	return find(r.d.records, func(rec *models.HealthRecord) string { return rec.ID }, id)
}

func (r recordRepo) Update(context.Context, *models.HealthRecord) error { return apperr.ErrReadOnly }
func (r recordRepo) Delete(context.Context, string, string) error       { return apperr.ErrReadOnly }

func (r recordRepo) RecentVisits(_ context.Context, ownerID string, n int) ([]models.HealthRecord, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	return summary.RecentVisits(r.d.records, n), nil
}

type medicationRepo struct{ d *data }

func (r medicationRepo) Create(context.Context, *models.Medication) error { return apperr.ErrReadOnly }

func (r medicationRepo) List(_ context.Context, ownerID string, active *bool) ([]models.Medication, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	return filter(r.d.meds, func(m *models.Medication) bool {
		return active == nil || m.IsActive == *active
	}), nil
}

func (r medicationRepo) Get(_ context.Context, ownerID, id string) (*models.Medication, error) {
	if !r.d.owns(ownerID) {
		return nil, apperr.ErrNotFound
	}
	return find(r.d.meds, func(m *models.Medication) string { return m.ID }, id)
}

func (r medicationRepo) Update(context.Context, *models.Medication) error { return apperr.ErrReadOnly }

func (r medicationRepo) SetActive(context.Context, string, string, bool) error {
	return apperr.ErrReadOnly
}

func (r medicationRepo) Delete(context.Context, string, string) error { return apperr.ErrReadOnly }

type labRepo struct{ d *data }

func (r labRepo) Create(context.Context, *models.LabResult) error { return apperr.ErrReadOnly }

func (r labRepo) List(_ context.Context, ownerID string, dr store.DateRange, limit int) ([]models.LabResult, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	out := filter(r.d.labs, func(l *models.LabResult) bool { return dr.Contains(l.TestDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r labRepo) TestNames(_ context.Context, ownerID string) ([]string, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	seen := map[string]bool{}
	var names []string
	for _, l := range r.d.labs {
		if !seen[l.TestName] {
			seen[l.TestName] = true
			names = append(names, l.TestName)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r labRepo) Get(_ context.Context, ownerID, id string) (*models.LabResult, error) {
	if !r.d.owns(ownerID) {
		return nil, apperr.ErrNotFound
	}
	return find(r.d.labs, func(l *models.LabResult) string { return l.ID }, id)
}

func (r labRepo) Update(context.Context, *models.LabResult) error { return apperr.ErrReadOnly }
func (r labRepo) Delete(context.Context, string, string) error    { return apperr.ErrReadOnly }

type vitalRepo struct{ d *data }

func (r vitalRepo) Create(context.Context, *models.VitalSign) error { return apperr.ErrReadOnly }

func (r vitalRepo) List(_ context.Context, ownerID string, dr store.DateRange) ([]models.VitalSign, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	return filter(r.d.vitals, func(v *models.VitalSign) bool { return dr.Contains(v.RecordedAt) }), nil
}

func (r vitalRepo) Latest(_ context.Context, ownerID string) (*models.VitalSign, error) {
	if !r.d.owns(ownerID) || len(r.d.vitals) == 0 {
		return nil, nil
	}
	v := r.d.vitals[0]
	return &v, nil
}

func (r vitalRepo) Delete(context.Context, string, string) error { return apperr.ErrReadOnly }

type wearableRepo struct{ d *data }

func (r wearableRepo) days() []models.WearableData {
	days := seedWearables(r.d.owner, r.d.now())
	models.SortWearableData(days)
	return days
}

func (r wearableRepo) Upsert(context.Context, *models.WearableData) (bool, error) {
	return false, apperr.ErrReadOnly
}

func (r wearableRepo) List(_ context.Context, ownerID string, dr store.DateRange) ([]models.WearableData, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	return filter(r.days(), func(w *models.WearableData) bool { return dr.Contains(w.Date) }), nil
}

func (r wearableRepo) Latest(_ context.Context, ownerID string) (*models.WearableData, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	days := r.days()
	return &days[0], nil
}

func (r wearableRepo) Devices(_ context.Context, ownerID string) ([]store.DeviceSync, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	days := r.days()
	return []store.DeviceSync{{DeviceName: days[0].DeviceName, LastSync: days[0].SyncTime, Days: len(days)}}, nil
}

func (r wearableRepo) Delete(context.Context, string, string) error { return apperr.ErrReadOnly }

type insightRepo struct{ d *data }

func (r insightRepo) Create(context.Context, *models.AIInsight) error { return apperr.ErrReadOnly }

func (r insightRepo) List(_ context.Context, ownerID string, includeCompleted bool) ([]models.AIInsight, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	return filter(r.d.insights, func(i *models.AIInsight) bool {
		return includeCompleted || !i.IsCompleted
	}), nil
}

func (r insightRepo) Complete(context.Context, string, string, time.Time) error {
	return apperr.ErrReadOnly
}

type noteRepo struct{ d *data }

func (r noteRepo) Create(context.Context, *models.QuickNote) error { return apperr.ErrReadOnly }

func (r noteRepo) List(_ context.Context, ownerID string) ([]models.QuickNote, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	return filter(r.d.notes, func(*models.QuickNote) bool { return true }), nil
}

func (r noteRepo) Get(_ context.Context, ownerID, id string) (*models.QuickNote, error) {
	if !r.d.owns(ownerID) {
		return nil, apperr.ErrNotFound
	}
	return find(r.d.notes, func(n *models.QuickNote) string { return n.ID }, id)
}

func (r noteRepo) Update(context.Context, *models.QuickNote) error { return apperr.ErrReadOnly }
func (r noteRepo) Delete(context.Context, string, string) error    { return apperr.ErrReadOnly }

type problemRepo struct{ d *data }

func (r problemRepo) Create(context.Context, *models.Problem) error { return apperr.ErrReadOnly }

func (r problemRepo) List(_ context.Context, ownerID string) ([]models.Problem, error) {
	if !r.d.owns(ownerID) {
		return nil, nil
	}
	return filter(r.d.problems, func(*models.Problem) bool { return true }), nil
}

// documentRepo has no seeded documents.
type documentRepo struct{}

func (r documentRepo) Create(context.Context, *models.Document) error { return apperr.ErrReadOnly }

func (r documentRepo) List(context.Context, string) ([]models.Document, error) { return nil, nil }

func (r documentRepo) Get(context.Context, string, string) (*models.Document, error) {
	return nil, apperr.ErrNotFound
}

func (r documentRepo) Delete(context.Context, string, string) error { return apperr.ErrReadOnly }
