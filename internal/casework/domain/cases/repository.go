package cases

import (
	"context"
	"errors"
	"time"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/casework/scoring"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/infra/database/postgres"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var scopeColumns = permission.Columns{Owner: "cases.owner_uuid", Team: "cases.team_uuid"}

type ListFilter struct {
	Estado        model.Estado
	Clasificacion scoring.Classification
	Aplicacion    string
	Search        string
	FechaDesde    *time.Time
	FechaHasta    *time.Time
	Page          pagination.Request
}

type Stats struct {
	Total             int64
	AveragePuntuacion float64
	ByClasificacion   map[string]int64
	ByEstado          map[string]int64
}

type Repository interface {
	Create(ctx context.Context, c model.Case) (model.Case, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Case, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.Case, int64, error)
	Update(ctx context.Context, c model.Case) (model.Case, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, scope permission.Filter) (Stats, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) scoped(ctx context.Context, scope permission.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Case{})
	if where, args := scope.Predicate(scopeColumns); where != "" {
		query = query.Where(where, args...)
	}
	return query
}

func (r *repositoryImpl) Create(ctx context.Context, c model.Case) (model.Case, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Case{}, mapError(err)
	}
	return c, nil
}

func (r *repositoryImpl) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Case, error) {
	var c model.Case
	if err := r.scoped(ctx, scope).Where("cases.uuid = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Case{}, ErrNotFound
		}
		return model.Case{}, err
	}
	return c, nil
}

func (r *repositoryImpl) List(ctx context.Context, f ListFilter, scope permission.Filter) ([]model.Case, int64, error) {
	query := r.scoped(ctx, scope)
	if f.Estado != "" {
		query = query.Where("cases.estado = ?", f.Estado)
	}
	if f.Clasificacion != "" {
		query = query.Where("cases.clasificacion = ?", f.Clasificacion)
	}
	if f.Aplicacion != "" {
		query = query.Where("lower(cases.aplicacion) = lower(?)", f.Aplicacion)
	}
	if f.Search != "" {
		like := postgres.Contains(f.Search)
		query = query.Where("(cases.numero_caso ILIKE ? OR cases.descripcion ILIKE ? OR cases.observaciones ILIKE ?)", like, like, like)
	}
	if f.FechaDesde != nil {
		query = query.Where("cases.fecha >= ?", *f.FechaDesde)
	}
	if f.FechaHasta != nil {
		query = query.Where("cases.fecha <= ?", *f.FechaHasta)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.Case
	err := query.Order("cases.fecha DESC, cases.create_at DESC").
		Limit(f.Page.Size).Offset(f.Page.Offset()).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update grava critérios, pontuação e classificação no mesmo UPDATE, de modo
// que nunca fiquem dessincronizados.
func (r *repositoryImpl) Update(ctx context.Context, c model.Case) (model.Case, error) {
	result := r.db.WithContext(ctx).Model(&model.Case{UUID: c.UUID}).
		Updates(map[string]interface{}{
			"numero_caso":          c.NumeroCaso,
			"descripcion":          c.Descripcion,
			"fecha":                c.Fecha,
			"aplicacion":           c.Aplicacion,
			"estado":               c.Estado,
			"observaciones":        c.Observaciones,
			"historial_caso":       c.HistorialCaso,
			"conocimiento_modulo":  c.ConocimientoModulo,
			"manipulacion_datos":   c.ManipulacionDatos,
			"claridad_descripcion": c.ClaridadDescripcion,
			"causa_fallo":          c.CausaFallo,
			"puntuacion":           c.Puntuacion,
			"clasificacion":        c.Clasificacion,
		})
	if result.Error != nil {
		return model.Case{}, mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.Case{}, ErrNotFound
	}
	return r.Read(ctx, c.UUID, permission.Filter{Scope: permission.ScopeAll})
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Case{}, "uuid = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type groupCount struct {
	Key   string
	Total int64
}

func (r *repositoryImpl) Stats(ctx context.Context, scope permission.Filter) (Stats, error) {
	stats := Stats{ByClasificacion: map[string]int64{}, ByEstado: map[string]int64{}}

	var summary struct {
		Total   int64
		Average float64
	}
	err := r.scoped(ctx, scope).
		Select("COUNT(*) AS total, COALESCE(AVG(cases.puntuacion), 0) AS average").
		Scan(&summary).Error
	if err != nil {
		return Stats{}, err
	}
	stats.Total = summary.Total
	stats.AveragePuntuacion = summary.Average

	var rows []groupCount
	err = r.scoped(ctx, scope).
		Select("cases.clasificacion AS key, COUNT(*) AS total").
		Group("cases.clasificacion").Scan(&rows).Error
	if err != nil {
		return Stats{}, err
	}
	for _, row := range rows {
		stats.ByClasificacion[row.Key] = row.Total
	}

	rows = nil
	err = r.scoped(ctx, scope).
		Select("cases.estado AS key, COUNT(*) AS total").
		Group("cases.estado").Scan(&rows).Error
	if err != nil {
		return Stats{}, err
	}
	for _, row := range rows {
		stats.ByEstado[row.Key] = row.Total
	}
	return stats, nil
}

func mapError(err error) error {
	if postgres.IsUniqueViolation(err) {
		return ErrNumeroDuplicated
	}
	return err
}
