package todo

import (
	"context"
	"errors"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/infra/database/postgres"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var scopeColumns = permission.Columns{Owner: "todos.owner_uuid", Team: "todos.team_uuid"}

type ListFilter struct {
	Completed *bool
	Priority  model.Priority
	CaseUUID  *uuid.UUID
	Page      pagination.Request
}

type Repository interface {
	Create(ctx context.Context, t model.Todo) (model.Todo, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Todo, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.Todo, int64, error)
	Update(ctx context.Context, t model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.Todo{}, mapError(err)
	}
	return t, nil
}

func (r *repositoryImpl) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Todo, error) {
	query := r.db.WithContext(ctx).Where("todos.uuid = ?", id)
	if where, args := scope.Predicate(scopeColumns); where != "" {
		query = query.Where(where, args...)
	}

	var t model.Todo
	if err := query.First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, err
	}
	return t, nil
}

func (r *repositoryImpl) List(ctx context.Context, f ListFilter, scope permission.Filter) ([]model.Todo, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Todo{})
	if where, args := scope.Predicate(scopeColumns); where != "" {
		query = query.Where(where, args...)
	}
	if f.Completed != nil {
		query = query.Where("todos.completed = ?", *f.Completed)
	}
	if f.Priority != "" {
		query = query.Where("todos.priority = ?", f.Priority)
	}
	if f.CaseUUID != nil {
		query = query.Where("todos.case_uuid = ?", *f.CaseUUID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.Todo
	err := query.Order("todos.completed ASC, todos.due_date ASC NULLS LAST, todos.create_at DESC").
		Limit(f.Page.Size).Offset(f.Page.Offset()).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repositoryImpl) Update(ctx context.Context, t model.Todo) (model.Todo, error) {
	result := r.db.WithContext(ctx).Model(&model.Todo{UUID: t.UUID}).
		Updates(map[string]interface{}{
			"title":        t.Title,
			"description":  t.Description,
			"priority":     t.Priority,
			"due_date":     t.DueDate,
			"case_uuid":    t.CaseUUID,
			"completed":    t.Completed,
			"completed_at": t.CompletedAt,
		})
	if result.Error != nil {
		return model.Todo{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.Todo{}, ErrNotFound
	}
	return r.Read(ctx, t.UUID, permission.Filter{Scope: permission.ScopeAll})
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Todo{}, "uuid = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func mapError(err error) error {
	if postgres.IsForeignKeyViolation(err) {
		return ErrCaseNotFound
	}
	return err
}
