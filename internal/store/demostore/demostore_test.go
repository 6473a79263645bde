package demostore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
)

const patient = "demo-patient"

var fixedNow = time.Date(2025, 11, 3, 15, 0, 0, 0, time.UTC)

func newRepos() *store.Repositories {
	return New(patient, func() time.Time { return fixedNow })
}

func TestNew_Capabilities(t *testing.T) {
	repos := newRepos()
	assert.Equal(t, store.SourceDemo, repos.Capabilities.Source)
	assert.False(t, repos.Capabilities.Writable)
	assert.True(t, repos.Capabilities.Public)
}

func TestRecords_DefaultOrder(t *testing.T) {
	records, err := newRepos().Records.List(context.Background(), patient, store.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 6)

	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].Date.After(records[i-1].Date), "records must be newest first")
	}
	assert.Equal(t, "2025-10-28", records[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-09-28", records[5].Date.Format("2006-01-02"))
}

func TestRecords_RecentVisits(t *testing.T) {
	visits, err := newRepos().Records.RecentVisits(context.Background(), patient, 3)
	require.NoError(t, err)
	require.Len(t, visits, 3)

	assert.Equal(t, "Gastroenterology", visits[0].Details().Specialty)
	assert.Equal(t, "Primary Care", visits[1].Details().Specialty)
	assert.Equal(t, "Orthopedics", visits[2].Details().Specialty)
}

func TestRecords_OtherOwnerSeesNothing(t *testing.T) {
	repos := newRepos()
	ctx := context.Background()

	records, err := repos.Records.List(ctx, "someone-else", store.RecordFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = repos.Records.Get(ctx, "someone-else", "demo-visit-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	rec, err := repos.Records.Get(ctx, patient, "demo-visit-1")
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", rec.Details().Specialty)
}

func TestWrites_AreReadOnly(t *testing.T) {
	repos := newRepos()
	ctx := context.Background()

	assert.ErrorIs(t, repos.Records.Create(ctx, &models.HealthRecord{UserID: patient}), apperr.ErrReadOnly)
	assert.ErrorIs(t, repos.Medications.SetActive(ctx, patient, "demo-med-1", false), apperr.ErrReadOnly)
	assert.ErrorIs(t, repos.Notes.Delete(ctx, patient, "demo-note-1"), apperr.ErrReadOnly)
	assert.ErrorIs(t, repos.Users.Create(ctx, &models.User{}), apperr.ErrReadOnly)
	_, err := repos.Wearables.Upsert(ctx, &models.WearableData{UserID: patient})
	assert.ErrorIs(t, err, apperr.ErrReadOnly)
}

func TestWearables_RelativeToClock(t *testing.T) {
	repos := newRepos()
	ctx := context.Background()

	latest, err := repos.Wearables.Latest(ctx, patient)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "2025-11-03", latest.Date.Format("2006-01-02"))

	week, err := repos.Wearables.List(ctx, patient, store.LastDays(fixedNow, 7))
	require.NoError(t, err)
	assert.Len(t, week, 7)

	devices, err := repos.Wearables.Devices(ctx, patient)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, 14, devices[0].Days)
}

func TestMedications_ActiveFilter(t *testing.T) {
	repos := newRepos()
	inactive := false

	meds, err := repos.Medications.List(context.Background(), patient, &inactive)
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "Lisinopril", meds[0].Name)
	assert.NotNil(t, meds[0].EndDate)
}

func TestLabs_TestNamesAndLimit(t *testing.T) {
	repos := newRepos()
	ctx := context.Background()

	names, err := repos.Labs.TestNames(ctx, patient)
	require.NoError(t, err)
	assert.Contains(t, names, "HbA1c")
	assert.IsIncreasing(t, names)

	labs, err := repos.Labs.List(ctx, patient, store.DateRange{}, 3)
	require.NoError(t, err)
	require.Len(t, labs, 3)
	assert.Equal(t, "2025-10-25", labs[0].TestDate.Format("2006-01-02"))
}

func TestVitals_BMIDerived(t *testing.T) {
	latest, err := newRepos().Vitals.Latest(context.Background(), patient)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.NotNil(t, latest.BMI)
	assert.InDelta(t, 29.6, *latest.BMI, 0.1)
}

func TestInsights_NewestFirst(t *testing.T) {
	insights, err := newRepos().Insights.List(context.Background(), patient, false)
	require.NoError(t, err)
	require.NotEmpty(t, insights)
	assert.Equal(t, "Blood Pressure Trending Up", insights[0].Title)
}
