package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/infra/database/postgres"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Visibilidade de usuários: own = o próprio registro, team = mesma equipe.
var scopeColumns = permission.Columns{Owner: "users.uuid", Team: "users.team_uuid"}

type ListFilter struct {
	Search   string
	RoleUUID *uuid.UUID
	TeamUUID *uuid.UUID
	Live     *bool
	Page     pagination.Request
}

type Repository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.User, int64, error)
	Update(ctx context.Context, user model.User) (model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{
		db: db,
	}
}

func (r *repositoryImpl) Create(ctx context.Context, user model.User) (model.User, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&user).Error; err != nil {
		return model.User{}, mapError(err)
	}
	return r.reload(ctx, user.UUID)
}

func (r *repositoryImpl) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.User, error) {
	query := r.db.WithContext(ctx).Preload("Role").Preload("Team").Where("users.uuid = ?", id)
	if where, args := scope.Predicate(scopeColumns); where != "" {
		query = query.Where(where, args...)
	}

	var u model.User
	if err := query.First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}
	return u, nil
}

func (r *repositoryImpl) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Preload("Role").
		Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}
	return u, nil
}

func (r *repositoryImpl) List(ctx context.Context, f ListFilter, scope permission.Filter) ([]model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})
	if where, args := scope.Predicate(scopeColumns); where != "" {
		query = query.Where(where, args...)
	}
	if f.Search != "" {
		like := postgres.Contains(f.Search)
		query = query.Where("(users.name ILIKE ? OR users.email ILIKE ?)", like, like)
	}
	if f.RoleUUID != nil {
		query = query.Where("users.role_uuid = ?", *f.RoleUUID)
	}
	if f.TeamUUID != nil {
		query = query.Where("users.team_uuid = ?", *f.TeamUUID)
	}
	if f.Live != nil {
		query = query.Where("users.live = ?", *f.Live)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Preload("Role").Preload("Team").
		Order("users.name ASC").
		Limit(f.Page.Size).Offset(f.Page.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *repositoryImpl) Update(ctx context.Context, user model.User) (model.User, error) {
	err := r.db.WithContext(ctx).Model(&model.User{UUID: user.UUID}).
		Select("role_uuid", "team_uuid", "name", "email", "password_hash", "live").
		Updates(map[string]interface{}{
			"role_uuid":     user.RoleUUID,
			"team_uuid":     user.TeamUUID,
			"name":          user.Name,
			"email":         user.Email,
			"password_hash": user.Password,
			"live":          user.Live,
		}).Error
	if err != nil {
		return model.User{}, mapError(err)
	}
	return r.reload(ctx, user.UUID)
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.User{}, "uuid = ?", id)
	if result.Error != nil {
		if postgres.IsForeignKeyViolation(result.Error) {
			return ErrInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repositoryImpl) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("uuid = ?", id).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repositoryImpl) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("uuid = ?", id).
		UpdateColumn("last_login_at", at).Error
}

func (r *repositoryImpl) reload(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.Read(ctx, id, permission.Filter{Scope: permission.ScopeAll})
}

func mapError(err error) error {
	switch {
	case postgres.IsUniqueViolation(err):
		if strings.Contains(postgres.Constraint(err), "email") {
			return ErrEmailDuplicated
		}
		return err
	case postgres.IsForeignKeyViolation(err):
		if strings.Contains(postgres.Constraint(err), "team") {
			return ErrTeamNotFound
		}
		return ErrRoleNotFound
	}
	return err
}
