package auditoria_log

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Save(ctx context.Context, entry *AuditLog) error
	Read(ctx context.Context, id uuid.UUID, scope Scope) (AuditLog, error)
	List(ctx context.Context, filter ListFilter, scope Scope) ([]AuditLog, int64, error)
}

// Scope restringe as consultas ao fragmento WHERE resolvido pelas permissões.
type Scope struct {
	Query string
	Args  []any
}

type ListFilter struct {
	Module     string
	Action     string
	UserUUID   *uuid.UUID
	EntityType string
	EntityID   string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// Save grava o log e as mudanças no mesmo Create (associação em transação).
func (r *repositoryImpl) Save(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repositoryImpl) Read(ctx context.Context, id uuid.UUID, scope Scope) (AuditLog, error) {
	var entry AuditLog
	query := r.db.WithContext(ctx).
		Preload("Changes", func(db *gorm.DB) *gorm.DB { return db.Order("field_name ASC") }).
		Where("uuid = ?", id)
	if scope.Query != "" {
		query = query.Where(scope.Query, scope.Args...)
	}
	if err := query.First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuditLog{}, ErrNotFound
		}
		return AuditLog{}, fmt.Errorf("falha ao ler log de auditoria: %w", err)
	}
	return entry, nil
}

func (r *repositoryImpl) List(ctx context.Context, f ListFilter, scope Scope) ([]AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&AuditLog{})
	if scope.Query != "" {
		query = query.Where(scope.Query, scope.Args...)
	}
	if f.Module != "" {
		query = query.Where("domain = ?", f.Module)
	}
	if f.Action != "" {
		query = query.Where("action = ?", f.Action)
	}
	if f.UserUUID != nil {
		query = query.Where("user_uuid = ?", *f.UserUUID)
	}
	if f.EntityType != "" {
		query = query.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != "" {
		query = query.Where("entity_id = ?", f.EntityID)
	}
	if f.From != nil {
		query = query.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := f.Page, f.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	var entries []AuditLog
	result := query.
		Preload("Changes").
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&entries)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return entries, total, nil
}
