// Package gormstore implements the repositories on a relational database
// through gorm.
package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"biogram-server/internal/apperr"
	"biogram-server/internal/store"
)

// New wires every repository to db.
func New(db *gorm.DB) *store.Repositories {
	return &store.Repositories{
		Capabilities: store.Capabilities{Source: store.SourceDatabase, Writable: true},
		Users:        &userRepo{db: db},
		Sessions:     &sessionRepo{db: db},
		Records:      &recordRepo{db: db},
		Medications:  &medicationRepo{db: db},
		Labs:         &labRepo{db: db},
		Vitals:       &vitalRepo{db: db},
		Wearables:    &wearableRepo{db: db},
		Insights:     &insightRepo{db: db},
		Notes:        &noteRepo{db: db},
		Problems:     &problemRepo{db: db},
		Documents:    &documentRepo{db: db},
	}
}

// translate maps driver errors onto the shared taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.ErrConflict
	}
	return err
}

func create(ctx context.Context, db *gorm.DB, value any) error {
	return translate(db.WithContext(ctx).Create(value).Error)
}

func getOwned[T any](ctx context.Context, db *gorm.DB, ownerID, id string) (*T, error) {
	var v T
	if err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&v).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

// updateOwned writes every column of value except its identity and owner.
// value must carry its primary key.
func updateOwned(ctx context.Context, db *gorm.DB, value any, ownerID string) error {
	res := db.WithContext(ctx).Model(value).
		Where("user_id = ?", ownerID).
		Select("*").
		Omit("id", "user_id", "created_at", clause.Associations).
		Updates(value)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func deleteOwned[T any](ctx context.Context, db *gorm.DB, ownerID, id string) error {
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// inRange applies a day range to column.
func inRange(q *gorm.DB, column string, r store.DateRange) *gorm.DB {
	if !r.From.IsZero() {
		q = q.Where(column+" >= ?", r.From)
	}
	if !r.To.IsZero() {
		q = q.Where(column+" < ?", r.To.AddDate(0, 0, 1))
	}
	return q
}
