package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"biogram-server/internal/models"
)

type sessionRepo struct {
	db *gorm.DB
}

func (r *sessionRepo) Create(ctx context.Context, session *models.Session) error {
	return create(ctx, r.db, session)
}

func (r *sessionRepo) GetActiveByToken(ctx context.Context, tokenHash string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND is_revoked = ? AND expires_at > ?", tokenHash, false, time.Now()).
		First(&session).Error
	if err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (r *sessionRepo) IsActive(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ? AND is_revoked = ? AND expires_at > ?", id, false, time.Now()).
		Count(&n).Error
	return n > 0, err
}

func (r *sessionRepo) Revoke(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", id).
		Update("is_revoked", true).Error
}

func (r *sessionRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
}
