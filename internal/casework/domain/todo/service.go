package todo

import (
	"context"
	"strings"
	"time"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/iam/permission"

	"github.com/google/uuid"
)

type Patch struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	DueDate     *time.Time
	ClearDue    bool
	CaseUUID    *uuid.UUID
	ClearCase   bool
	Completed   *bool
}

type Service interface {
	Create(ctx context.Context, t model.Todo) (model.Todo, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Todo, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.Todo, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch, scope permission.Filter) (before, after model.Todo, err error)
	Toggle(ctx context.Context, id uuid.UUID, scope permission.Filter) (before, after model.Todo, err error)
	Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Todo, error)
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

func (s *implService) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return model.Todo{}, ErrInvalidInput
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedia
	}
	if !validPriority(t.Priority) {
		return model.Todo{}, ErrInvalidInput
	}
	t.SetCompleted(false, s.now())
	return s.Repository.Create(ctx, t)
}

func (s *implService) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Todo, error) {
	return s.Repository.Read(ctx, id, scope)
}

func (s *implService) List(ctx context.Context, f ListFilter, scope permission.Filter) ([]model.Todo, int64, error) {
	if f.Priority != "" && !validPriority(f.Priority) {
		return nil, 0, ErrInvalidInput
	}
	return s.Repository.List(ctx, f, scope)
}

func (s *implService) Update(ctx context.Context, id uuid.UUID, p Patch, scope permission.Filter) (model.Todo, model.Todo, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.Todo{}, model.Todo{}, err
	}

	next := before
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Priority != nil {
		next.Priority = *p.Priority
	}
	switch {
	case p.ClearDue:
		next.DueDate = nil
	case p.DueDate != nil:
		next.DueDate = p.DueDate
	}
	switch {
	case p.ClearCase:
		next.CaseUUID = nil
	case p.CaseUUID != nil:
		next.CaseUUID = p.CaseUUID
	}
	if p.Completed != nil && *p.Completed != before.Completed {
		next.SetCompleted(*p.Completed, s.now())
	}
	if next.Title == "" || !validPriority(next.Priority) {
		return model.Todo{}, model.Todo{}, ErrInvalidInput
	}

	after, err := s.Repository.Update(ctx, next)
	if err != nil {
		return model.Todo{}, model.Todo{}, err
	}
	return before, after, nil
}

func (s *implService) Toggle(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Todo, model.Todo, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.Todo{}, model.Todo{}, err
	}
	next := before
	next.SetCompleted(!before.Completed, s.now())

	after, err := s.Repository.Update(ctx, next)
	if err != nil {
		return model.Todo{}, model.Todo{}, err
	}
	return before, after, nil
}

func (s *implService) Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Todo, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.Todo{}, err
	}
	if err := s.Repository.Delete(ctx, id); err != nil {
		return model.Todo{}, err
	}
	return before, nil
}

func validPriority(p model.Priority) bool {
	switch p {
	case model.PriorityBaja, model.PriorityMedia, model.PriorityAlta:
		return true
	default:
		return false
	}
}
