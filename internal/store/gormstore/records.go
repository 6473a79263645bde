package gormstore

import (
	"context"

	"gorm.io/gorm"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
	"biogram-server/internal/store"
)

type recordRepo struct {
	db *gorm.DB
}

func (r *recordRepo) Create(ctx context.Context, record *models.HealthRecord) error {
	return create(ctx, r.db, record)
}

func (r *recordRepo) List(ctx context.Context, ownerID string, filter store.RecordFilter) ([]models.HealthRecord, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if filter.EventType != "" {
		q = q.Where("event_type = ?", filter.EventType)
	}
	if filter.Important {
		q = q.Where("is_important = ?", true)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var records []models.HealthRecord
	err := q.Order(models.HealthRecordOrder).Find(&records).Error
	return records, err
}

func (r *recordRepo) Get(ctx context.Context, ownerID, id string) (*models.HealthRecord, error) {
	var record models.HealthRecord
	err := r.db.WithContext(ctx).
		Preload("Documents", "user_id = ?", ownerID).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&record).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *recordRepo) Update(ctx context.Context, record *models.HealthRecord) error {
	return updateOwned(ctx, r.db, record, record.UserID)
}

func (r *recordRepo) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned[models.HealthRecord](ctx, r.db, ownerID, id)
}

func (r *recordRepo) RecentVisits(ctx context.Context, ownerID string, n int) ([]models.HealthRecord, error) {
	return r.List(ctx, ownerID, store.RecordFilter{EventType: models.EventVisit, Limit: n})
}

type medicationRepo struct {
	db *gorm.DB
}

func (r *medicationRepo) Create(ctx context.Context, med *models.Medication) error {
	return create(ctx, r.db, med)
}

func (r *medicationRepo) List(ctx context.Context, ownerID string, active *bool) ([]models.Medication, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	var meds []models.Medication
	err := q.Order(models.MedicationOrder).Find(&meds).Error
	return meds, err
}

func (r *medicationRepo) Get(ctx context.Context, ownerID, id string) (*models.Medication, error) {
	return getOwned[models.Medication](ctx, r.db, ownerID, id)
}

func (r *medicationRepo) Update(ctx context.Context, med *models.Medication) error {
	return updateOwned(ctx, r.db, med, med.UserID)
}

func (r *medicationRepo) SetActive(ctx context.Context, ownerID, id string, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.Medication{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("is_active", active)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *medicationRepo) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned[models.Medication](ctx, r.db, ownerID, id)
}

type labRepo struct {
	db *gorm.DB
}

func (r *labRepo) Create(ctx context.Context, result *models.LabResult) error {
	return create(ctx, r.db, result)
}

func (r *labRepo) List(ctx context.Context, ownerID string, dr store.DateRange, limit int) ([]models.LabResult, error) {
	q := inRange(r.db.WithContext(ctx).Where("user_id = ?", ownerID), "test_date", dr)
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []models.LabResult
	err := q.Order(models.LabResultOrder).Find(&results).Error
	return results, err
}

func (r *labRepo) TestNames(ctx context.Context, ownerID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.LabResult{}).
		Where("user_id = ?", ownerID).
		Distinct("test_name").
		Order("test_name ASC").
		Pluck("test_name", &names).Error
	return names, err
}

func (r *labRepo) Get(ctx context.Context, ownerID, id string) (*models.LabResult, error) {
	return getOwned[models.LabResult](ctx, r.db, ownerID, id)
}

func (r *labRepo) Update(ctx context.Context, result *models.LabResult) error {
	return updateOwned(ctx, r.db, result, result.UserID)
}

func (r *labRepo) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned[models.LabResult](ctx, r.db, ownerID, id)
}

type vitalRepo struct {
	db *gorm.DB
}

func (r *vitalRepo) Create(ctx context.Context, vital *models.VitalSign) error {
	return create(ctx, r.db, vital)
}

func (r *vitalRepo) List(ctx context.Context, ownerID string, dr store.DateRange) ([]models.VitalSign, error) {
	q := inRange(r.db.WithContext(ctx).Where("user_id = ?", ownerID), "recorded_at", dr)
	var vitals []models.VitalSign
	err := q.Order(models.VitalSignOrder).Find(&vitals).Error
	return vitals, err
}

func (r *vitalRepo) Latest(ctx context.Context, ownerID string) (*models.VitalSign, error) {
	var vitals []models.VitalSign
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).
		Order(models.VitalSignOrder).Limit(1).Find(&vitals).Error
	if err != nil || len(vitals) == 0 {
		return nil, err
	}
	return &vitals[0], nil
}

func (r *vitalRepo) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned[models.VitalSign](ctx, r.db, ownerID, id)
}
