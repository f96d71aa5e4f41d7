package team

import (
	"context"
	"errors"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/infra/database/postgres"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// own e team enxergam apenas a equipe do próprio usuário.
var scopeColumns = permission.Columns{Team: "teams.uuid"}

type Repository interface {
	Create(ctx context.Context, team model.Team) (model.Team, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Team, error)
	List(ctx context.Context, search string, page pagination.Request, scope permission.Filter) ([]model.Team, int64, error)
	Update(ctx context.Context, team model.Team) (model.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountMembers(ctx context.Context, id uuid.UUID) (int64, error)
	Members(ctx context.Context, id uuid.UUID) ([]model.User, error)
	SetMembership(ctx context.Context, userUUID uuid.UUID, teamUUID *uuid.UUID) error
	FindUser(ctx context.Context, userUUID uuid.UUID) (model.User, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Create(ctx context.Context, team model.Team) (model.Team, error) {
	if err := r.db.WithContext(ctx).Create(&team).Error; err != nil {
		if postgres.IsUniqueViolation(err) {
			return model.Team{}, ErrCodeDuplicated
		}
		return model.Team{}, err
	}
	return team, nil
}

func (r *repositoryImpl) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Team, error) {
	query := r.db.WithContext(ctx).Where("teams.uuid = ?", id)
	if where, args := scope.Predicate(scopeColumns); where != "" {
		query = query.Where(where, args...)
	}

	var t model.Team
	if err := query.First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Team{}, ErrNotFound
		}
		return model.Team{}, err
	}
	return t, nil
}

func (r *repositoryImpl) List(ctx context.Context, search string, page pagination.Request, scope permission.Filter) ([]model.Team, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Team{})
	if where, args := scope.Predicate(scopeColumns); where != "" {
		query = query.Where(where, args...)
	}
	if search != "" {
		like := postgres.Contains(search)
		query = query.Where("(teams.code ILIKE ? OR teams.name ILIKE ?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teams []model.Team
	if err := query.Order("teams.name ASC").Limit(page.Size).Offset(page.Offset()).Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *repositoryImpl) Update(ctx context.Context, team model.Team) (model.Team, error) {
	err := r.db.WithContext(ctx).Model(&model.Team{UUID: team.UUID}).
		Updates(map[string]interface{}{
			"code":        team.Code,
			"name":        team.Name,
			"description": team.Description,
			"live":        team.Live,
		}).Error
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return model.Team{}, ErrCodeDuplicated
		}
		return model.Team{}, err
	}
	return r.Read(ctx, team.UUID, permission.Filter{Scope: permission.ScopeAll})
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Team{}, "uuid = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repositoryImpl) CountMembers(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("team_uuid = ?", id).Count(&n).Error
	return n, err
}

func (r *repositoryImpl) Members(ctx context.Context, id uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Where("team_uuid = ?", id).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *repositoryImpl) SetMembership(ctx context.Context, userUUID uuid.UUID, teamUUID *uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("uuid = ?", userUUID).
		Update("team_uuid", teamUUID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repositoryImpl) FindUser(ctx context.Context, userUUID uuid.UUID) (model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("uuid = ?", userUUID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return u, nil
}
