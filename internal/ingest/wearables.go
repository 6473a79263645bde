package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
	"biogram-server/internal/utils"
)

// WearableSync is one day's aggregate published by a device gateway on
// biogram/wearables/<user id>/sync.
type WearableSync struct {
	Date           string     `json:"date" binding:"required"`
	DeviceName     string     `json:"device_name" binding:"required,max=100"`
	Steps          *int       `json:"steps" binding:"omitempty,gte=0"`
	CaloriesBurned *int       `json:"calories_burned" binding:"omitempty,gte=0"`
	ActiveMinutes  *int       `json:"active_minutes" binding:"omitempty,gte=0,lte=1440"`
	SleepHours     *float64   `json:"sleep_hours" binding:"omitempty,gte=0,lte=24"`
	HeartRateAvg   *int       `json:"heart_rate_avg" binding:"omitempty,gte=0"`
	HeartRateMin   *int       `json:"heart_rate_min" binding:"omitempty,gte=0"`
	HeartRateMax   *int       `json:"heart_rate_max" binding:"omitempty,gte=0"`
	StressLevel    *int       `json:"stress_level" binding:"omitempty,gte=1,lte=10"`
	SyncTime       *time.Time `json:"sync_time"`
}

type subscriber interface {
	Subscribe(topic string, qos byte, handler MessageHandler) error
	Disconnect()
}

// WearableBridge upserts device syncs arriving over MQTT.
type WearableBridge struct {
	wearables store.WearableRepository
	log       *zap.Logger
	now       func() time.Time
}

func NewWearableBridge(wearables store.WearableRepository, log *zap.Logger) *WearableBridge {
	return &WearableBridge{wearables: wearables, log: log, now: time.Now}
}

// Run subscribes to topic and blocks until ctx is cancelled.
func (b *WearableBridge) Run(ctx context.Context, sub subscriber, topic string) error {
	err := sub.Subscribe(topic, 1, func(topic string, payload []byte) error {
		return b.Handle(ctx, topic, payload)
	})
	if err != nil {
		return err
	}
	b.log.Info("wearable bridge subscribed", zap.String("topic", topic))

	<-ctx.Done()
	sub.Disconnect()
	return nil
}

// UserFromTopic extracts the user id from .../<user id>/sync.
func UserFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 2 || parts[len(parts)-1] != "sync" || parts[len(parts)-2] == "" {
		return "", apperr.Validation("topic", fmt.Sprintf("unexpected topic %q", topic))
	}
	return parts[len(parts)-2], nil
}

// Handle stores one sync. A repeated (date, device) overwrites that day.
func (b *WearableBridge) Handle(ctx context.Context, topic string, payload []byte) error {
	userID, err := UserFromTopic(topic)
	if err != nil {
		return err
	}

	var body WearableSync
	if err := json.Unmarshal(payload, &body); err != nil {
		return apperr.Validation("", "malformed JSON: "+err.Error())
	}
	if err := utils.Validate(&body); err != nil {
		return err
	}
	date, err := utils.ParseDate("date", body.Date)
	if err != nil {
		return err
	}

	day := &models.WearableData{
		UserID:        userID,
		DeviceName:    strings.TrimSpace(body.DeviceName),
		Date:          date,
		Steps:         body.Steps,
		Calories:      body.CaloriesBurned,
		ActiveMinutes: body.ActiveMinutes,
		SleepHours:    body.SleepHours,
		HeartRateAvg:  body.HeartRateAvg,
		HeartRateMin:  body.HeartRateMin,
		HeartRateMax:  body.HeartRateMax,
		StressLevel:   body.StressLevel,
		SyncTime:      b.now(),
	}
	if body.SyncTime != nil {
		day.SyncTime = *body.SyncTime
	}

	created, err := b.wearables.Upsert(ctx, day)
	if err != nil {
		return fmt.Errorf("upsert wearable day: %w", err)
	}
	b.log.Debug("wearable day stored",
		zap.String("user_id", userID),
		zap.String("device", day.DeviceName),
		zap.Time("date", date),
		zap.Bool("created", created),
	)
	return nil
}
