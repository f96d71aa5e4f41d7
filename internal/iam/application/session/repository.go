package session

import (
	"context"
	"errors"
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sessões pertencem ao usuário; a equipe vem da tabela users.
var scopeColumns = permission.Columns{Owner: "user_sessions.user_uuid", Team: "users.team_uuid"}

type Repository interface {
	Create(ctx context.Context, s model.Session) (model.Session, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Session, error)
	ListActive(ctx context.Context, now time.Time, page pagination.Request, scope permission.Filter) ([]model.Session, int64, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
	RevokeByToken(ctx context.Context, token string, at time.Time) error
	RevokeAllForUser(ctx context.Context, userUUID uuid.UUID, except *uuid.UUID, at time.Time) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, s model.Session) (model.Session, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&s).Error; err != nil {
		return model.Session{}, err
	}
	return s, nil
}

func (r *repositoryImpl) scoped(ctx context.Context, scope permission.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Session{}).
		Joins("INNER JOIN users ON users.uuid = user_sessions.user_uuid")
	if where, args := scope.Predicate(scopeColumns); where != "" {
		query = query.Where(where, args...)
	}
	return query
}

func (r *repositoryImpl) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Session, error) {
	var s model.Session
	err := r.scoped(ctx, scope).Preload("User").Where("user_sessions.uuid = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Session{}, ErrNotFound
		}
		return model.Session{}, err
	}
	return s, nil
}

func (r *repositoryImpl) ListActive(ctx context.Context, now time.Time, page pagination.Request, scope permission.Filter) ([]model.Session, int64, error) {
	query := r.scoped(ctx, scope).
		Where("user_sessions.revoked_at IS NULL AND user_sessions.expires_at > ?", now)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.Session
	err := query.Preload("User").
		Order("user_sessions.last_activity DESC").
		Limit(page.Size).Offset(page.Offset()).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *repositoryImpl) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("uuid = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repositoryImpl) RevokeByToken(ctx context.Context, token string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("token = ? AND revoked_at IS NULL", token).
		Update("revoked_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repositoryImpl) RevokeAllForUser(ctx context.Context, userUUID uuid.UUID, except *uuid.UUID, at time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("user_uuid = ? AND revoked_at IS NULL AND expires_at > ?", userUUID, at)
	if except != nil {
		query = query.Where("uuid <> ?", *except)
	}
	result := query.Update("revoked_at", at)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at < ?", before, before).
		Delete(&model.Session{})
	return result.RowsAffected, result.Error
}
