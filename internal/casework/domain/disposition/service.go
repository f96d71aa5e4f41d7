package disposition

import (
	"context"
	"strings"
	"time"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/iam/permission"

	"github.com/google/uuid"
)

const (
	minYear = 2000
	maxYear = 2100
)

type Patch struct {
	CaseUUID      *uuid.UUID
	ClearCase     bool
	NumeroCaso    *string
	NombreScript  *string
	Fecha         *time.Time
	Aplicacion    *string
	Observaciones *string
}

// Summary sempre traz os doze meses, inclusive os sem registros.
type Summary struct {
	Year   int
	Total  int64
	Months [12]int64
}

type Service interface {
	Create(ctx context.Context, d model.Disposition) (model.Disposition, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Disposition, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.Disposition, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch, scope permission.Filter) (before, after model.Disposition, err error)
	Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Disposition, error)
	Summary(ctx context.Context, year int, scope permission.Filter) (Summary, error)
}

type implService struct {
	Repository Repository
	now        func() time.Time
}

func NewService(repository Repository) Service {
	return &implService{
		Repository: repository,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *implService) Create(ctx context.Context, d model.Disposition) (model.Disposition, error) {
	normalize(&d)
	if err := check(d); err != nil {
		return model.Disposition{}, err
	}
	return s.Repository.Create(ctx, d)
}

func (s *implService) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Disposition, error) {
	return s.Repository.Read(ctx, id, scope)
}

func (s *implService) List(ctx context.Context, f ListFilter, scope permission.Filter) ([]model.Disposition, int64, error) {
	if f.FechaDesde != nil && f.FechaHasta != nil && f.FechaDesde.After(*f.FechaHasta) {
		return nil, 0, ErrInvalidDateRange
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Aplicacion = strings.TrimSpace(f.Aplicacion)
	return s.Repository.List(ctx, f, scope)
}

func (s *implService) Update(ctx context.Context, id uuid.UUID, p Patch, scope permission.Filter) (model.Disposition, model.Disposition, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.Disposition{}, model.Disposition{}, err
	}

	next := before
	switch {
	case p.ClearCase:
		next.CaseUUID = nil
	case p.CaseUUID != nil:
		next.CaseUUID = p.CaseUUID
	}
	if p.NumeroCaso != nil {
		next.NumeroCaso = *p.NumeroCaso
	}
	if p.NombreScript != nil {
		next.NombreScript = *p.NombreScript
	}
	if p.Fecha != nil {
		next.Fecha = *p.Fecha
	}
	if p.Aplicacion != nil {
		next.Aplicacion = *p.Aplicacion
	}
	if p.Observaciones != nil {
		next.Observaciones = *p.Observaciones
	}
	normalize(&next)
	if err := check(next); err != nil {
		return model.Disposition{}, model.Disposition{}, err
	}

	after, err := s.Repository.Update(ctx, next)
	if err != nil {
		return model.Disposition{}, model.Disposition{}, err
	}
	return before, after, nil
}

func (s *implService) Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Disposition, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.Disposition{}, err
	}
	if err := s.Repository.Delete(ctx, id); err != nil {
		return model.Disposition{}, err
	}
	return before, nil
}

// Summary usa o ano corrente quando year é zero.
func (s *implService) Summary(ctx context.Context, year int, scope permission.Filter) (Summary, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < minYear || year > maxYear {
		return Summary{}, ErrInvalidYear
	}

	rows, err := s.Repository.CountByMonth(ctx, year, scope)
	if err != nil {
		return Summary{}, err
	}

	out := Summary{Year: year}
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 {
			continue
		}
		out.Months[row.Month-1] = row.Total
		out.Total += row.Total
	}
	return out, nil
}

func normalize(d *model.Disposition) {
	d.NumeroCaso = strings.TrimSpace(d.NumeroCaso)
	d.NombreScript = strings.TrimSpace(d.NombreScript)
	d.Aplicacion = strings.TrimSpace(d.Aplicacion)
}

func check(d model.Disposition) error {
	if d.NumeroCaso == "" || d.NombreScript == "" || d.Aplicacion == "" || d.Fecha.IsZero() {
		return ErrInvalidInput
	}
	return nil
}
