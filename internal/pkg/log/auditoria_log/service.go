package auditoria_log

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Log(ctx context.Context, entry AuditLog) error
	Read(ctx context.Context, id uuid.UUID, scope Scope) (AuditLog, error)
	List(ctx context.Context, filter ListFilter, scope Scope) ([]AuditLog, int64, error)
}

type serviceImpl struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &serviceImpl{repo: repo}
}

func (s *serviceImpl) Log(ctx context.Context, entry AuditLog) error {
	if entry.Module == "" || entry.Action == "" {
		return ErrInvalidInput
	}
	if entry.Function == "" {
		entry.Function = entry.Action
	}
	return s.repo.Save(ctx, &entry)
}

func (s *serviceImpl) Read(ctx context.Context, id uuid.UUID, scope Scope) (AuditLog, error) {
	if id == uuid.Nil {
		return AuditLog{}, ErrInvalidInput
	}
	return s.repo.Read(ctx, id, scope)
}

func (s *serviceImpl) List(ctx context.Context, filter ListFilter, scope Scope) ([]AuditLog, int64, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, ErrInvalidInput
	}
	return s.repo.List(ctx, filter, scope)
}
