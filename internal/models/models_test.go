package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSortHealthRecords_DateDescInsertionTieBreak(t *testing.T) {
	base := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	records := []HealthRecord{
		{BaseModel: BaseModel{ID: "a", CreatedAt: base}, Date: day("2025-09-28")},
		{BaseModel: BaseModel{ID: "b", CreatedAt: base.Add(time.Second)}, Date: day("2025-10-20")},
		{BaseModel: BaseModel{ID: "c", CreatedAt: base.Add(3 * time.Second)}, Date: day("2025-10-15")},
		{BaseModel: BaseModel{ID: "d", CreatedAt: base.Add(2 * time.Second)}, Date: day("2025-10-15")},
	}

	SortHealthRecords(records)

	var ids []string
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids)
}

func TestSortQuickNotes_PinnedFirst(t *testing.T) {
	base := time.Now()
	notes := []QuickNote{
		{BaseModel: BaseModel{ID: "old-pinned", CreatedAt: base.Add(-time.Hour)}, IsPinned: true},
		{BaseModel: BaseModel{ID: "new", CreatedAt: base}},
		{BaseModel: BaseModel{ID: "new-pinned", CreatedAt: base}, IsPinned: true},
	}

	SortQuickNotes(notes)

	assert.Equal(t, "new-pinned", notes[0].ID)
	assert.Equal(t, "old-pinned", notes[1].ID)
	assert.Equal(t, "new", notes[2].ID)
}

func TestVitalSign_DeriveBMI(t *testing.T) {
	weight, height := 80.0, 180.0
	v := VitalSign{Weight: &weight, Height: &height}
	require.NoError(t, v.BeforeSave(nil))
	require.NotNil(t, v.BMI)
	assert.Equal(t, 24.69, *v.BMI)

	v.Height = nil
	v.DeriveBMI()
	assert.Nil(t, v.BMI)
}

func TestWearableData_ApplyMetricsKeepsIdentity(t *testing.T) {
	steps := 9000
	existing := WearableData{BaseModel: BaseModel{ID: "w1"}, UserID: "u1", DeviceName: "Fitbit", Date: day("2025-10-01")}
	existing.ApplyMetrics(&WearableData{UserID: "other", DeviceName: "Garmin", Steps: &steps})

	assert.Equal(t, "w1", existing.ID)
	assert.Equal(t, "u1", existing.UserID)
	assert.Equal(t, "Fitbit", existing.DeviceName)
	assert.Equal(t, 9000, *existing.Steps)
}

func TestEnums_Valid(t *testing.T) {
	assert.True(t, EventVisit.Valid())
	assert.False(t, EventType("surgery").Valid())
	assert.True(t, FrequencyAsNeeded.Valid())
	assert.False(t, Frequency("hourly").Valid())
	assert.True(t, LabCritical.Valid())
	assert.False(t, LabStatus("unknown").Valid())
	assert.True(t, InsightTrend.Valid())
	assert.True(t, PriorityFollowup.Valid())
	assert.True(t, SourceClinic.Valid())
}

func TestUser_PasswordAndSession(t *testing.T) {
	u := User{}
	require.NoError(t, u.SetPassword("s3cret-pass"))
	assert.True(t, u.CheckPassword("s3cret-pass"))
	assert.False(t, u.CheckPassword("wrong"))

	now := time.Now()
	s := Session{ExpiresAt: now.Add(time.Minute)}
	assert.True(t, s.Active(now))
	s.IsRevoked = true
	assert.False(t, s.Active(now))
	assert.Len(t, HashToken("abc"), 64)
}

func TestCheckMissingUserPassword_MatchesRealCost(t *testing.T) {
	assert.False(t, CheckMissingUserPassword("not-a-real-account"))
	assert.False(t, CheckMissingUserPassword(""))

	u := User{}
	require.NoError(t, u.SetPassword("s3cret-pass"))
	realCost, err := bcrypt.Cost([]byte(u.Password))
	require.NoError(t, err)
	decoyCost, err := bcrypt.Cost(decoyHash())
	require.NoError(t, err)
	assert.Equal(t, realCost, decoyCost)
}

func TestHealthRecord_Details(t *testing.T) {
	r := HealthRecord{}
	r.SetDetails(VisitDetails{Specialty: "Cardiology", Medications: []VisitMedication{{Name: "Warfarin"}}})
	assert.Equal(t, "Cardiology", r.Details().Specialty)
	assert.Equal(t, "Warfarin", r.Details().Medications[0].Name)
}
