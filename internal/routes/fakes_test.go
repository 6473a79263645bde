package routes

import (
	"context"
	"sync"
	"time"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/store/demostore"
)

// memRepos is a writable, private data source kept in memory. Labs, vitals,
// insights and problems come from an empty demo store.
func memRepos(now func() time.Time) *store.Repositories {
	mu := &sync.Mutex{}
	demo := demostore.New("nobody", now)
	return &store.Repositories{
		Capabilities: store.Capabilities{Source: store.SourceDatabase, Writable: true},
		Users:        &memUsers{mu: mu, profiles: map[string]*models.Profile{}},
		Sessions:     &memSessions{mu: mu, now: now},
		Records:      &memRecords{mu: mu},
		Medications:  demo.Medications,
		Labs:         demo.Labs,
		Vitals:       demo.Vitals,
		Wearables:    &memWearables{mu: mu},
		Insights:     demo.Insights,
		Notes:        &memNotes{mu: mu},
		Problems:     demo.Problems,
		Documents:    &memDocuments{mu: mu},
	}
}

type memUsers struct {
	mu       *sync.Mutex
	users    []models.User
	profiles map[string]*models.Profile
}

func (r *memUsers) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return apperr.ErrConflict
		}
	}
	if u.ID == "" {
		u.ID = models.NewID()
	}
	r.users = append(r.users, *u)
	r.profiles[u.ID] = &models.Profile{UserID: u.ID}
	return nil
}

func (r *memUsers) find(keep func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if keep(&r.users[i]) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *memUsers) ExistsUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	return err == nil, nil
}

func (r *memUsers) ExistsEmail(_ context.Context, email, exceptID string) (bool, error) {
	_, err := r.find(func(u *models.User) bool { return u.Email == email && u.ID != exceptID })
	return err == nil, nil
}

func (r *memUsers) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memUsers) UpdateProfile(_ context.Context, user *models.User, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i].Email = user.Email
			cp := *profile
			r.profiles[user.ID] = &cp
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (r *memUsers) List(context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.User(nil), r.users...), nil
}

type memSessions struct {
	mu       *sync.Mutex
	now      func() time.Time
	sessions []models.Session
}

func (r *memSessions) Create(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, *s)
	return nil
}

func (r *memSessions) GetActiveByToken(_ context.Context, hash string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.TokenHash == hash && s.Active(r.now()) {
			return &s, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *memSessions) IsActive(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			return s.Active(r.now()), nil
		}
	}
	return false, nil
}

func (r *memSessions) revokeWhere(keep func(*models.Session) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if keep(&r.sessions[i]) {
			r.sessions[i].IsRevoked = true
		}
	}
}

func (r *memSessions) Revoke(_ context.Context, id string) error {
	r.revokeWhere(func(s *models.Session) bool { return s.ID == id })
	return nil
}

func (r *memSessions) RevokeAllForUser(_ context.Context, userID string) error {
	r.revokeWhere(func(s *models.Session) bool { return s.UserID == userID })
	return nil
}

type memRecords struct {
	mu      *sync.Mutex
	records []models.HealthRecord
}

func (r *memRecords) Create(_ context.Context, rec *models.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = models.NewID()
	rec.CreatedAt = time.Now()
	r.records = append(r.records, *rec)
	return nil
}

func (r *memRecords) List(_ context.Context, ownerID string, f store.RecordFilter) ([]models.HealthRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.HealthRecord
	for _, rec := range r.records {
		if rec.UserID != ownerID || (f.EventType != "" && rec.EventType != f.EventType) || (f.Important && !rec.IsImportant) {
			continue
		}
		out = append(out, rec)
	}
	models.SortHealthRecords(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memRecords) Get(_ context.Context, ownerID, id string) (*models.HealthRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.UserID == ownerID && rec.ID == id {
			return &rec, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *memRecords) Update(_ context.Context, rec *models.HealthRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].UserID == rec.UserID && r.records[i].ID == rec.ID {
			r.records[i] = *rec
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (r *memRecords) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].UserID == ownerID && r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (r *memRecords) RecentVisits(ctx context.Context, ownerID string, n int) ([]models.HealthRecord, error) {
	return r.List(ctx, ownerID, store.RecordFilter{EventType: models.EventVisit, Limit: n})
}

type memWearables struct {
	mu   *sync.Mutex
	days []models.WearableData
}

func (r *memWearables) Upsert(_ context.Context, day *models.WearableData) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.days {
		d := &r.days[i]
		if d.UserID == day.UserID && d.DeviceName == day.DeviceName && d.Date.Equal(day.Date) {
			d.ApplyMetrics(day)
			day.ID = d.ID
			return false, nil
		}
	}
	day.ID = models.NewID()
	r.days = append(r.days, *day)
	return true, nil
}

func (r *memWearables) List(_ context.Context, ownerID string, dr store.DateRange) ([]models.WearableData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.WearableData
	for _, d := range r.days {
		if d.UserID == ownerID && dr.Contains(d.Date) {
			out = append(out, d)
		}
	}
	models.SortWearableData(out)
	return out, nil
}

func (r *memWearables) Latest(ctx context.Context, ownerID string) (*models.WearableData, error) {
	days, _ := r.List(ctx, ownerID, store.DateRange{})
	if len(days) == 0 {
		return nil, nil
	}
	return &days[0], nil
}

func (r *memWearables) Devices(ctx context.Context, ownerID string) ([]store.DeviceSync, error) {
	days, _ := r.List(ctx, ownerID, store.DateRange{})
	byName := map[string]*store.DeviceSync{}
	var out []store.DeviceSync
	for _, d := range days {
		ds, ok := byName[d.DeviceName]
		if !ok {
			out = append(out, store.DeviceSync{DeviceName: d.DeviceName})
			ds = &out[len(out)-1]
			byName[d.DeviceName] = ds
		}
		ds.Days++
		if d.SyncTime.After(ds.LastSync) {
			ds.LastSync = d.SyncTime
		}
	}
	return out, nil
}

func (r *memWearables) Delete(context.Context, string, string) error { return apperr.ErrNotFound }

type memNotes struct {
	mu    *sync.Mutex
	notes []models.QuickNote
}

func (r *memNotes) Create(_ context.Context, n *models.QuickNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = models.NewID()
	n.CreatedAt = time.Now()
	r.notes = append(r.notes, *n)
	return nil
}

func (r *memNotes) List(_ context.Context, ownerID string) ([]models.QuickNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.QuickNote
	for _, n := range r.notes {
		if n.UserID == ownerID {
			out = append(out, n)
		}
	}
	models.SortQuickNotes(out)
	return out, nil
}

func (r *memNotes) Get(_ context.Context, ownerID, id string) (*models.QuickNote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notes {
		if n.UserID == ownerID && n.ID == id {
			return &n, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *memNotes) Update(_ context.Context, n *models.QuickNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notes {
		if r.notes[i].UserID == n.UserID && r.notes[i].ID == n.ID {
			r.notes[i] = *n
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (r *memNotes) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notes {
		if r.notes[i].UserID == ownerID && r.notes[i].ID == id {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

type memDocuments struct {
	mu   *sync.Mutex
	docs []models.Document
}

func (r *memDocuments) Create(_ context.Context, d *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, *d)
	return nil
}

func (r *memDocuments) List(_ context.Context, ownerID string) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Document
	for _, d := range r.docs {
		if d.UserID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDocuments) Get(_ context.Context, ownerID, id string) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d.UserID == ownerID && d.ID == id {
			return &d, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *memDocuments) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.docs {
		if r.docs[i].UserID == ownerID && r.docs[i].ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}
