package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"biogram-server/internal/apperr"
	"biogram-server/internal/models"
)

type insightRepo struct {
	db *gorm.DB
}

func (r *insightRepo) Create(ctx context.Context, insight *models.AIInsight) error {
	return create(ctx, r.db, insight)
}

func (r *insightRepo) List(ctx context.Context, ownerID string, includeCompleted bool) ([]models.AIInsight, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if !includeCompleted {
		q = q.Where("is_completed = ?", false)
	}
	var insights []models.AIInsight
	err := q.Order(models.InsightOrder).Find(&insights).Error
	return insights, err
}

func (r *insightRepo) Complete(ctx context.Context, ownerID, id string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.AIInsight{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]any{"is_completed": true, "completed_at": at})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

type noteRepo struct {
	db *gorm.DB
}

func (r *noteRepo) Create(ctx context.Context, note *models.QuickNote) error {
	return create(ctx, r.db, note)
}

func (r *noteRepo) List(ctx context.Context, ownerID string) ([]models.QuickNote, error) {
	var notes []models.QuickNote
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).
		Order(models.QuickNoteOrder).Find(&notes).Error
	return notes, err
}

func (r *noteRepo) Get(ctx context.Context, ownerID, id string) (*models.QuickNote, error) {
	return getOwned[models.QuickNote](ctx, r.db, ownerID, id)
}

func (r *noteRepo) Update(ctx context.Context, note *models.QuickNote) error {
	return updateOwned(ctx, r.db, note, note.UserID)
}

func (r *noteRepo) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned[models.QuickNote](ctx, r.db, ownerID, id)
}

type problemRepo struct {
	db *gorm.DB
}

func (r *problemRepo) Create(ctx context.Context, problem *models.Problem) error {
	return create(ctx, r.db, problem)
}

func (r *problemRepo) List(ctx context.Context, ownerID string) ([]models.Problem, error) {
	var problems []models.Problem
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).
		Order(models.ProblemOrder).Find(&problems).Error
	return problems, err
}

type documentRepo struct {
	db *gorm.DB
}

func (r *documentRepo) Create(ctx context.Context, doc *models.Document) error {
	return create(ctx, r.db, doc)
}

func (r *documentRepo) List(ctx context.Context, ownerID string) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).
		Order(models.DocumentOrder).Find(&docs).Error
	return docs, err
}

func (r *documentRepo) Get(ctx context.Context, ownerID, id string) (*models.Document, error) {
	return getOwned[models.Document](ctx, r.db, ownerID, id)
}

func (r *documentRepo) Delete(ctx context.Context, ownerID, id string) error {
	return deleteOwned[models.Document](ctx, r.db, ownerID, id)
}
