package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
)

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                          "/",
		"/health/timeline":          "/health/timeline",
		"/health/timeline?x=1":      "/health/timeline?x=1",
		"//evil.example.com":        "/",
		"https://evil.example.com/": "/",
		"/\\evil.example.com":       "/",
		"dashboard":                 "/",
		"  /dashboard  ":            "/dashboard",
	}
	for in, want := range cases {
		assert.Equal(t, want, SafeNext(in), "input %q", in)
	}
}

func TestSyncTopic(t *testing.T) {
	assert.Equal(t, "biogram/wearables/u1/sync", syncTopic("biogram/wearables/+/sync", "u1"))
	assert.Equal(t, "", syncTopic("biogram/wearables/sync", "u1"))
	assert.Equal(t, "", syncTopic("", "u1"))
}

func TestPinned_KeepsLeadingPinnedNotes(t *testing.T) {
	notes := []models.QuickNote{
		{Content: "a", IsPinned: true},
		{Content: "b", IsPinned: true},
		{Content: "c"},
		{Content: "d", IsPinned: true},
	}
	got := pinned(notes)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Content)
	assert.Equal(t, "b", got[1].Content)

	assert.NotNil(t, pinned(nil))
}

func TestNilIfZero(t *testing.T) {
	zero, five := 0, 5
	assert.Nil(t, nilIfZero(&zero))
	assert.Nil(t, nilIfZero[int](nil))
	assert.Equal(t, &five, nilIfZero(&five))

	f := 0.0
	assert.Nil(t, nilIfZero(&f))
}

func TestParseCheckboxQuery(t *testing.T) {
	assert.True(t, parseCheckboxQuery("true"))
	assert.True(t, parseCheckboxQuery("on"))
	assert.False(t, parseCheckboxQuery(""))
	assert.False(t, parseCheckboxQuery("false"))
}

func TestVitalBuild(t *testing.T) {
	now := time.Date(2025, 10, 30, 8, 0, 0, 0, time.UTC)
	h := NewVitalHandler(Deps{Now: func() time.Time { return now }})
	ptr := func(v int) *int { return &v }
	fptr := func(v float64) *float64 { return &v }

	t.Run("defaults", func(t *testing.T) {
		v, err := h.build(VitalSignRequest{HeartRate: ptr(72)}, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", v.UserID)
		assert.Equal(t, now, v.RecordedAt)
		assert.Equal(t, models.SourceManual, v.Source)
	})

	t.Run("no measurements", func(t *testing.T) {
		_, err := h.build(VitalSignRequest{HeartRate: ptr(0)}, "u1")
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "systolic", ve.Field)
	})

	t.Run("half a blood pressure", func(t *testing.T) {
		_, err := h.build(VitalSignRequest{Systolic: ptr(120)}, "u1")
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "diastolic", ve.Field)
	})

	t.Run("bmi", func(t *testing.T) {
		v, err := h.build(VitalSignRequest{Weight: fptr(70), Height: fptr(175)}, "u1")
		require.NoError(t, err)
		require.NotNil(t, v.BMI)
		assert.InDelta(t, 22.9, *v.BMI, 0.05)
	})
}
