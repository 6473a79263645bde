package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
)

type fakeInsights struct {
	created []*models.AIInsight
	err     error
}

func (f *fakeInsights) Create(ctx context.Context, i *models.AIInsight) error {
	if f.err != nil {
		return f.err
	}
	i.ID = models.NewID()
	f.created = append(f.created, i)
	return nil
}

func (f *fakeInsights) List(ctx context.Context, owner string, all bool) ([]models.AIInsight, error) {
	return nil, nil
}

func (f *fakeInsights) Complete(ctx context.Context, owner, id string, at time.Time) error {
	return nil
}

type fakeRecords struct {
	owned map[string]string
	err   error
}

func (f *fakeRecords) Get(ctx context.Context, ownerID, id string) (*models.HealthRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.owned[id] != ownerID {
		return nil, apperr.ErrNotFound
	}
	return &models.HealthRecord{BaseModel: models.BaseModel{ID: id}, UserID: ownerID}, nil
}

type fakeReader struct {
	queue     []kafka.Message
	committed []int64
	cancel    context.CancelFunc
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.queue) == 0 {
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func TestInsightConsumer_Handle(t *testing.T) {
	repo := &fakeInsights{}
	c := NewInsightConsumer(nil, repo, &fakeRecords{owned: map[string]string{"rec-1": "user-1"}}, zap.NewNop())

	err := c.Handle(context.Background(), kafka.Message{Value: []byte(`{
		"user_id": "user-1",
		"kind": "trend",
		"title": "  BP trending down  ",
		"description": "Home readings averaged 128/82.",
		"related_record_id": "rec-1"
	}`)})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	got := repo.created[0]
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, models.InsightTrend, got.Kind)
	assert.Equal(t, models.PriorityRoutine, got.Priority)
	assert.Equal(t, "BP trending down", got.Title)
	require.NotNil(t, got.RelatedRecordID)
	assert.Equal(t, "rec-1", *got.RelatedRecordID)
	assert.False(t, got.IsCompleted)
}

func TestInsightConsumer_HandleDropsForeignRecordLink(t *testing.T) {
	repo := &fakeInsights{}
	records := &fakeRecords{owned: map[string]string{"rec-9": "user-2"}}
	c := NewInsightConsumer(nil, repo, records, zap.NewNop())

	err := c.Handle(context.Background(), kafka.Message{Value: []byte(
		`{"user_id":"user-1","kind":"trend","title":"BP trend","related_record_id":"rec-9"}`)})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Nil(t, repo.created[0].RelatedRecordID)
}

func TestInsightConsumer_HandleRecordLookupError(t *testing.T) {
	repo := &fakeInsights{}
	c := NewInsightConsumer(nil, repo, &fakeRecords{err: errors.New("connection refused")}, zap.NewNop())

	err := c.Handle(context.Background(), kafka.Message{Value: []byte(
		`{"user_id":"user-1","kind":"trend","title":"BP trend","related_record_id":"rec-1"}`)})
	require.Error(t, err)
	var ve *apperr.ValidationError
	assert.False(t, errors.As(err, &ve))
	assert.Empty(t, repo.created)
}

func TestInsightConsumer_HandleInvalid(t *testing.T) {
	c := NewInsightConsumer(nil, &fakeInsights{}, &fakeRecords{}, zap.NewNop())

	cases := map[string]string{
		"not json":     `{`,
		"missing user": `{"kind":"trend","title":"x"}`,
		"bad kind":     `{"user_id":"u","kind":"gossip","title":"x"}`,
		"bad priority": `{"user_id":"u","kind":"trend","priority":"someday","title":"x"}`,
		"no title":     `{"user_id":"u","kind":"trend"}`,
	}
	for name, body := range cases {
		err := c.Handle(context.Background(), kafka.Message{Value: []byte(body)})
		var ve *apperr.ValidationError
		assert.True(t, errors.As(err, &ve), name)
	}
}

func TestInsightConsumer_RunSkipsInvalidAndCommits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		queue: []kafka.Message{
			{Offset: 1, Value: []byte(`{"user_id":"u","kind":"action","priority":"urgent","title":"Call clinic"}`)},
			{Offset: 2, Value: []byte(`garbage`)},
			{Offset: 3, Value: []byte(`{"user_id":"u","kind":"reminder","title":"Refill"}`)},
		},
	}
	repo := &fakeInsights{}

	err := NewInsightConsumer(reader, repo, &fakeRecords{}, zap.NewNop()).Run(ctx)
	require.NoError(t, err)
	assert.Len(t, repo.created, 2)
	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
	assert.True(t, reader.closed)
}

func TestInsightConsumer_RunStopsOnStorageError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		queue:  []kafka.Message{{Offset: 7, Value: []byte(`{"user_id":"u","kind":"trend","title":"x"}`)}},
	}
	repo := &fakeInsights{err: errors.New("connection refused")}

	err := NewInsightConsumer(reader, repo, &fakeRecords{}, zap.NewNop()).Run(ctx)
	require.Error(t, err)
	assert.Empty(t, reader.committed)
}

type fakeWearables struct {
	rows map[string]*models.WearableData
}

func (f *fakeWearables) Upsert(ctx context.Context, day *models.WearableData) (bool, error) {
	key := day.UserID + "|" + day.Date.Format("2006-01-02") + "|" + day.DeviceName
	if existing, ok := f.rows[key]; ok {
		existing.ApplyMetrics(day)
		*day = *existing
		return false, nil
	}
	copied := *day
	f.rows[key] = &copied
	return true, nil
}

func (f *fakeWearables) List(ctx context.Context, owner string, r store.DateRange) ([]models.WearableData, error) {
	return nil, nil
}

func (f *fakeWearables) Latest(ctx context.Context, owner string) (*models.WearableData, error) {
	return nil, nil
}

func (f *fakeWearables) Devices(ctx context.Context, owner string) ([]store.DeviceSync, error) {
	return nil, nil
}

func (f *fakeWearables) Delete(ctx context.Context, owner, id string) error { return nil }

func TestUserFromTopic(t *testing.T) {
	id, err := UserFromTopic("biogram/wearables/user-1/sync")
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	for _, topic := range []string{"sync", "biogram/wearables//sync", "biogram/wearables/user-1/status"} {
		_, err := UserFromTopic(topic)
		assert.Error(t, err, topic)
	}
}

func TestWearableBridge_HandleOverwritesDuplicateDay(t *testing.T) {
	repo := &fakeWearables{rows: map[string]*models.WearableData{}}
	bridge := NewWearableBridge(repo, zap.NewNop())
	bridge.now = func() time.Time { return time.Date(2025, 10, 28, 7, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	require.NoError(t, bridge.Handle(ctx, "biogram/wearables/user-1/sync",
		[]byte(`{"date":"2025-10-27","device_name":"Fitbit Charge 6","steps":4200,"sleep_hours":6.5}`)))
	require.NoError(t, bridge.Handle(ctx, "biogram/wearables/user-1/sync",
		[]byte(`{"date":"2025-10-27","device_name":"Fitbit Charge 6","steps":8100,"sleep_hours":7.25}`)))

	require.Len(t, repo.rows, 1)
	row := repo.rows["user-1|2025-10-27|Fitbit Charge 6"]
	require.NotNil(t, row)
	assert.Equal(t, 8100, *row.Steps)
	assert.Equal(t, 7.25, *row.SleepHours)
	assert.Equal(t, 7, row.SyncTime.Hour())
}

func TestWearableBridge_HandleRejects(t *testing.T) {
	bridge := NewWearableBridge(&fakeWearables{rows: map[string]*models.WearableData{}}, zap.NewNop())
	ctx := context.Background()

	cases := map[string]string{
		"bad date":     `{"date":"27/10/2025","device_name":"Fitbit"}`,
		"no device":    `{"date":"2025-10-27"}`,
		"stress range": `{"date":"2025-10-27","device_name":"Fitbit","stress_level":11}`,
		"negative":     `{"date":"2025-10-27","device_name":"Fitbit","steps":-5}`,
	}
	for name, body := range cases {
		err := bridge.Handle(ctx, "biogram/wearables/user-1/sync", []byte(body))
		var ve *apperr.ValidationError
		assert.True(t, errors.As(err, &ve), name)
	}
}

type fakeSubscriber struct {
	topic        string
	handler      MessageHandler
	ready        chan struct{}
	disconnected bool
}

func (s *fakeSubscriber) Subscribe(topic string, qos byte, handler MessageHandler) error {
	s.topic = topic
	s.handler = handler
	close(s.ready)
	return nil
}

func (s *fakeSubscriber) Disconnect() { s.disconnected = true }

func TestWearableBridge_Run(t *testing.T) {
	repo := &fakeWearables{rows: map[string]*models.WearableData{}}
	bridge := NewWearableBridge(repo, zap.NewNop())
	sub := &fakeSubscriber{ready: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bridge.Run(ctx, sub, "biogram/wearables/+/sync") }()

	select {
	case <-sub.ready:
	case <-time.After(time.Second):
		t.Fatal("bridge never subscribed")
	}
	require.NoError(t, sub.handler("biogram/wearables/u9/sync", []byte(`{"date":"2025-10-01","device_name":"Oura"}`)))
	cancel()

	require.NoError(t, <-done)
	assert.True(t, sub.disconnected)
	assert.Equal(t, "biogram/wearables/+/sync", sub.topic)
	assert.Len(t, repo.rows, 1)
}
