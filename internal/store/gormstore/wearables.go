package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
)

type wearableRepo struct {
	db *gorm.DB
}

// Upsert creates the day or overwrites the metrics of the row already
// stored for (user, date, device). A concurrent insert of the same key is
// retried once as an update. Date is stored as its calendar day.
func (r *wearableRepo) Upsert(ctx context.Context, day *models.WearableData) (bool, error) {
	day.Date = time.Date(day.Date.Year(), day.Date.Month(), day.Date.Day(), 0, 0, 0, 0, time.UTC)
	created, err := r.upsertOnce(ctx, day)
	if errors.Is(err, apperr.ErrConflict) {
		return r.upsertOnce(ctx, day)
	}
	return created, err
}

func (r *wearableRepo) upsertOnce(ctx context.Context, day *models.WearableData) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.WearableData
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND date = ? AND device_name = ?", day.UserID, day.Date, day.DeviceName).
			Limit(1).Find(&existing).Error
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			created = true
			return translate(tx.Create(day).Error)
		}
		row := existing[0]
		row.ApplyMetrics(day)
		if err := updateOwned(ctx, tx, &row, row.UserID); err != nil {
			return err
		}
		*day = row
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *wearableRepo) List(ctx context.Context, ownerID string, dr store.DateRange) ([]models.WearableData, error) {
	q := inRange(r.db.WithContext(ctx).Where("user_id = ?", ownerID), "date", dr)
	var days []models.WearableData
	err := q.Order(models.WearableOrder).Find(&days).Error
	return days, err
}

func (r *wearableRepo) Latest(ctx context.Context, ownerID string) (*models.WearableData, error) {
	var days []models.WearableData
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).
		Order(models.WearableOrder).Limit(1).Find(&days).Error
	if err != nil || len(days) == 0 {
		return nil, err
	}
	return &days[0], nil
}

func (r *wearableRepo) Devices(ctx context.Context, ownerID string) ([]store.DeviceSync, error) {
	var devices []store.DeviceSync
	err := r.db.WithContext(ctx).Model(&models.WearableData{}).
		Select("device_name, MAX(sync_time) AS last_sync, COUNT(*) AS days").
		Where("user_id = ?", ownerID).
		Group("device_name").
		Order("last_sync DESC").
		Scan(&devices).Error
	return devices, err
}

func (r *wearableRepo) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned[models.WearableData](ctx, r.db, ownerID, id)
}
