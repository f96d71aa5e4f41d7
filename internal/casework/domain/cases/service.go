package cases

import (
	"context"
	"strings"
	"time"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/casework/scoring"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/metrics"

	"github.com/google/uuid"
)

// Patch carrega apenas os campos enviados. Qualquer critério presente
// dispara o recálculo da pontuação.
type Patch struct {
	NumeroCaso          *string
	Descripcion         *string
	Fecha               *time.Time
	Aplicacion          *string
	Estado              *model.Estado
	Observaciones       *string
	HistorialCaso       *int
	ConocimientoModulo  *int
	ManipulacionDatos   *int
	ClaridadDescripcion *int
	CausaFallo          *int
}

func (p Patch) touchesCriteria() bool {
	return p.HistorialCaso != nil || p.ConocimientoModulo != nil || p.ManipulacionDatos != nil ||
		p.ClaridadDescripcion != nil || p.CausaFallo != nil
}

type Service interface {
	Create(ctx context.Context, c model.Case, criteria scoring.Criteria) (model.Case, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Case, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.Case, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch, scope permission.Filter) (before, after model.Case, err error)
	Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Case, error)
	Stats(ctx context.Context, scope permission.Filter) (Stats, error)
	Preview(criteria scoring.Criteria) (scoring.Result, error)
}

type implService struct {
	Repository Repository
}

func NewService(repository Repository) Service {
	return &implService{
		Repository: repository,
	}
}

func (s *implService) Create(ctx context.Context, c model.Case, criteria scoring.Criteria) (model.Case, error) {
	if !criteria.Valid() {
		return model.Case{}, ErrInvalidCriteria
	}
	normalize(&c)
	if c.Estado == "" {
		c.Estado = model.EstadoNuevo
	}
	if err := check(c); err != nil {
		return model.Case{}, err
	}

	result := c.ApplyScore(criteria)
	created, err := s.Repository.Create(ctx, c)
	if err != nil {
		return model.Case{}, err
	}
	metrics.CasesScored.WithLabelValues(string(result.Classification)).Inc()
	return created, nil
}

func (s *implService) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Case, error) {
	return s.Repository.Read(ctx, id, scope)
}

func (s *implService) List(ctx context.Context, f ListFilter, scope permission.Filter) ([]model.Case, int64, error) {
	if f.Estado != "" && !model.IsValidEstado(f.Estado) {
		return nil, 0, ErrInvalidEstado
	}
	if f.Clasificacion != "" && !scoring.IsValidClassification(f.Clasificacion) {
		return nil, 0, ErrInvalidInput
	}
	if f.FechaDesde != nil && f.FechaHasta != nil && f.FechaDesde.After(*f.FechaHasta) {
		return nil, 0, ErrInvalidDateRange
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Aplicacion = strings.TrimSpace(f.Aplicacion)
	return s.Repository.List(ctx, f, scope)
}

func (s *implService) Update(ctx context.Context, id uuid.UUID, p Patch, scope permission.Filter) (model.Case, model.Case, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.Case{}, model.Case{}, err
	}

	next := before
	if p.NumeroCaso != nil {
		next.NumeroCaso = *p.NumeroCaso
	}
	if p.Descripcion != nil {
		next.Descripcion = *p.Descripcion
	}
	if p.Fecha != nil {
		next.Fecha = *p.Fecha
	}
	if p.Aplicacion != nil {
		next.Aplicacion = *p.Aplicacion
	}
	if p.Estado != nil {
		next.Estado = *p.Estado
	}
	if p.Observaciones != nil {
		next.Observaciones = *p.Observaciones
	}
	normalize(&next)
	if err := check(next); err != nil {
		return model.Case{}, model.Case{}, err
	}

	var result *scoring.Result
	if p.touchesCriteria() {
		criteria := before.Criteria()
		overlay(&criteria.HistorialCaso, p.HistorialCaso)
		overlay(&criteria.ConocimientoModulo, p.ConocimientoModulo)
		overlay(&criteria.ManipulacionDatos, p.ManipulacionDatos)
		overlay(&criteria.ClaridadDescripcion, p.ClaridadDescripcion)
		overlay(&criteria.CausaFallo, p.CausaFallo)
		if !criteria.Valid() {
			return model.Case{}, model.Case{}, ErrInvalidCriteria
		}
		res := next.ApplyScore(criteria)
		result = &res
	}

	after, err := s.Repository.Update(ctx, next)
	if err != nil {
		return model.Case{}, model.Case{}, err
	}
	if result != nil {
		metrics.CasesScored.WithLabelValues(string(result.Classification)).Inc()
	}
	return before, after, nil
}

func (s *implService) Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Case, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.Case{}, err
	}
	if err := s.Repository.Delete(ctx, id); err != nil {
		return model.Case{}, err
	}
	return before, nil
}

func (s *implService) Stats(ctx context.Context, scope permission.Filter) (Stats, error) {
	return s.Repository.Stats(ctx, scope)
}

func (s *implService) Preview(criteria scoring.Criteria) (scoring.Result, error) {
	if !criteria.Valid() {
		return scoring.Result{}, ErrInvalidCriteria
	}
	return scoring.Score(criteria), nil
}

func normalize(c *model.Case) {
	c.NumeroCaso = strings.TrimSpace(c.NumeroCaso)
	c.Descripcion = strings.TrimSpace(c.Descripcion)
	c.Aplicacion = strings.TrimSpace(c.Aplicacion)
	c.Observaciones = strings.TrimSpace(c.Observaciones)
}

func check(c model.Case) error {
	if c.NumeroCaso == "" || c.Descripcion == "" || c.Aplicacion == "" || c.Fecha.IsZero() {
		return ErrInvalidInput
	}
	if !model.IsValidEstado(c.Estado) {
		return ErrInvalidEstado
	}
	return nil
}

func overlay(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
