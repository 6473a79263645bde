package sharing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoGate(store Store) *Gate {
	return NewGate(store, Options{
		CodeTTL:       time.Hour,
		SingleUse:     true,
		DemoCode:      "VH-4829",
		DemoPatientID: "demo-patient",
	})
}

func TestNormalize(t *testing.T) {
	for _, in := range []string{"vh-4829", "VH4829", "VH-4829", "  vh 48-29 "} {
		assert.Equal(t, "VH4829", Normalize(in), in)
	}
}

func TestRedeem_DemoCodeVariants(t *testing.T) {
	gate := demoGate(NewMemoryStore())
	ctx := context.Background()

	for _, in := range []string{"vh-4829", "VH4829", "VH-4829"} {
		grant, err := gate.Redeem(ctx, in)
		require.NoError(t, err, in)
		assert.Equal(t, "demo-patient", grant.PatientID)
		assert.True(t, grant.Demo)
	}

	_, err := gate.Redeem(ctx, "VH-4830")
	assert.ErrorIs(t, err, ErrInvalidCode)
	_, err = gate.Redeem(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestRedeem_DemoCodeIsReusable(t *testing.T) {
	gate := demoGate(NewMemoryStore())

	first, err := gate.Redeem(context.Background(), "VH-4829")
	require.NoError(t, err)
	second, err := gate.Redeem(context.Background(), "VH-4829")
	require.NoError(t, err)
	assert.Equal(t, first.PatientID, second.PatientID)
}

func TestRedeem_NoDemoCodeConfigured(t *testing.T) {
	gate := NewGate(NewMemoryStore(), Options{CodeTTL: time.Hour, SingleUse: true})

	_, err := gate.Redeem(context.Background(), "VH-4829")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestIssue_DemoPatientGetsDemoCode(t *testing.T) {
	issued, err := demoGate(NewMemoryStore()).Issue(context.Background(), "demo-patient")
	require.NoError(t, err)
	assert.Equal(t, "VH-4829", issued.Code)
	assert.True(t, issued.Demo)
	assert.Nil(t, issued.ExpiresAt)
}

func TestIssue_GeneratedCodeIsSingleUse(t *testing.T) {
	gate := demoGate(NewMemoryStore())
	ctx := context.Background()

	issued, err := gate.Issue(ctx, "patient-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(issued.Code, "VH-"))
	assert.Len(t, issued.Code, len("VH-")+codeLength)
	require.NotNil(t, issued.ExpiresAt)

	grant, err := gate.Redeem(ctx, strings.ToLower(issued.Code))
	require.NoError(t, err)
	assert.Equal(t, "patient-1", grant.PatientID)
	assert.False(t, grant.Demo)

	_, err = gate.Redeem(ctx, issued.Code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestIssue_MultiUseWhenConfigured(t *testing.T) {
	gate := NewGate(NewMemoryStore(), Options{CodeTTL: time.Hour})
	ctx := context.Background()

	issued, err := gate.Issue(ctx, "patient-1")
	require.NoError(t, err)
	_, err = gate.Redeem(ctx, issued.Code)
	require.NoError(t, err)
	_, err = gate.Redeem(ctx, issued.Code)
	require.NoError(t, err)
}

func TestRedeem_ExpiredCode(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	gate := demoGate(store)
	gate.now = func() time.Time { return now }

	issued, err := gate.Issue(context.Background(), "patient-1")
	require.NoError(t, err)

	now = now.Add(time.Hour)
	_, err = gate.Redeem(context.Background(), issued.Code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestGenerate_UsesAlphabet(t *testing.T) {
	gate := demoGate(NewMemoryStore())
	gate.rand = strings.NewReader("\x00\x01\x1f\x20\xff\x10\x08\x09")

	code, err := gate.generate()
	require.NoError(t, err)
	assert.Equal(t, "VH-AB9A9SJK", code)
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisStore(client)
}

func TestRedisStore_PutTake(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	grant := Grant{ID: "g1", PatientID: "patient-1", SingleUse: true}
	require.NoError(t, store.Put(ctx, "abc", grant, time.Minute))
	assert.True(t, mr.Exists("share:grant:abc"))

	got, err := store.Take(ctx, "abc", false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "patient-1", got.PatientID)
	assert.True(t, mr.Exists("share:grant:abc"))

	got, err = store.Take(ctx, "abc", true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, mr.Exists("share:grant:abc"))

	got, err = store.Take(ctx, "abc", true)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_Expiry(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc", Grant{ID: "g1"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := store.Take(ctx, "abc", false)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGate_WithRedisStore(t *testing.T) {
	_, store := setupTestRedis(t)
	gate := demoGate(store)
	ctx := context.Background()

	issued, err := gate.Issue(ctx, "patient-7")
	require.NoError(t, err)

	grant, err := gate.Redeem(ctx, " "+issued.Code+" ")
	require.NoError(t, err)
	assert.Equal(t, "patient-7", grant.PatientID)

	_, err = gate.Redeem(ctx, issued.Code)
	assert.ErrorIs(t, err, ErrInvalidCode)
}
