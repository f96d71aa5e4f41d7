package disposition

import (
	"context"
	"errors"
	"time"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/infra/database/postgres"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var scopeColumns = permission.Columns{Owner: "dispositions.owner_uuid", Team: "dispositions.team_uuid"}

type ListFilter struct {
	Search     string
	Aplicacion string
	CaseUUID   *uuid.UUID
	FechaDesde *time.Time
	FechaHasta *time.Time
	Page       pagination.Request
}

// MonthCount é o total de disposições de um mês (1 a 12).
type MonthCount struct {
	Month int
	Total int64
}

type Repository interface {
	Create(ctx context.Context, d model.Disposition) (model.Disposition, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Disposition, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.Disposition, int64, error)
	Update(ctx context.Context, d model.Disposition) (model.Disposition, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByMonth(ctx context.Context, year int, scope permission.Filter) ([]MonthCount, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) scoped(ctx context.Context, scope permission.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Disposition{})
	if where, args := scope.Predicate(scopeColumns); where != "" {
		query = query.Where(where, args...)
	}
	return query
}

func (r *repositoryImpl) Create(ctx context.Context, d model.Disposition) (model.Disposition, error) {
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return model.Disposition{}, mapError(err)
	}
	return d, nil
}

func (r *repositoryImpl) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Disposition, error) {
	var d model.Disposition
	if err := r.scoped(ctx, scope).Where("dispositions.uuid = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Disposition{}, ErrNotFound
		}
		return model.Disposition{}, err
	}
	return d, nil
}

func (r *repositoryImpl) List(ctx context.Context, f ListFilter, scope permission.Filter) ([]model.Disposition, int64, error) {
	query := r.scoped(ctx, scope)
	if f.Search != "" {
		like := postgres.Contains(f.Search)
		query = query.Where("(dispositions.numero_caso ILIKE ? OR dispositions.nombre_script ILIKE ?)", like, like)
	}
	if f.Aplicacion != "" {
		query = query.Where("lower(dispositions.aplicacion) = lower(?)", f.Aplicacion)
	}
	if f.CaseUUID != nil {
		query = query.Where("dispositions.case_uuid = ?", *f.CaseUUID)
	}
	if f.FechaDesde != nil {
		query = query.Where("dispositions.fecha >= ?", *f.FechaDesde)
	}
	if f.FechaHasta != nil {
		query = query.Where("dispositions.fecha <= ?", *f.FechaHasta)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.Disposition
	err := query.Order("dispositions.fecha DESC, dispositions.create_at DESC").
		Limit(f.Page.Size).Offset(f.Page.Offset()).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repositoryImpl) Update(ctx context.Context, d model.Disposition) (model.Disposition, error) {
	result := r.db.WithContext(ctx).Model(&model.Disposition{UUID: d.UUID}).
		Updates(map[string]interface{}{
			"case_uuid":     d.CaseUUID,
			"numero_caso":   d.NumeroCaso,
			"nombre_script": d.NombreScript,
			"fecha":         d.Fecha,
			"aplicacion":    d.Aplicacion,
			"observaciones": d.Observaciones,
		})
	if result.Error != nil {
		return model.Disposition{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.Disposition{}, ErrNotFound
	}
	return r.Read(ctx, d.UUID, permission.Filter{Scope: permission.ScopeAll})
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Disposition{}, "uuid = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repositoryImpl) CountByMonth(ctx context.Context, year int, scope permission.Filter) ([]MonthCount, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var rows []MonthCount
	err := r.scoped(ctx, scope).
		Select("CAST(EXTRACT(MONTH FROM dispositions.fecha) AS INTEGER) AS month, COUNT(*) AS total").
		Where("dispositions.fecha >= ? AND dispositions.fecha < ?", start, end).
		Group("month").Order("month").
		Scan(&rows).Error
	return rows, err
}

func mapError(err error) error {
	if postgres.IsForeignKeyViolation(err) {
		return ErrCaseNotFound
	}
	return err
}
