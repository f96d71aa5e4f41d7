package team

import (
	"context"
	"strings"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
)

type Patch struct {
	Code        *string
	Name        *string
	Description *string
	Live        *bool
}

type Service interface {
	Create(ctx context.Context, team model.Team) (model.Team, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Team, error)
	List(ctx context.Context, search string, page pagination.Request, scope permission.Filter) ([]model.Team, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch, scope permission.Filter) (before, after model.Team, err error)
	Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Team, error)
	Members(ctx context.Context, id uuid.UUID, scope permission.Filter) ([]model.User, error)
	AddMember(ctx context.Context, id, userUUID uuid.UUID, scope permission.Filter) (model.User, error)
	RemoveMember(ctx context.Context, id, userUUID uuid.UUID, scope permission.Filter) error
}

type implService struct {
	Repository Repository
}

func NewService(repository Repository) Service {
	return &implService{
		Repository: repository,
	}
}

func (s *implService) Create(ctx context.Context, team model.Team) (model.Team, error) {
	team.Code = normalizeCode(team.Code)
	team.Name = strings.TrimSpace(team.Name)
	if team.Code == "" || team.Name == "" {
		return model.Team{}, ErrInvalidInput
	}
	team.Live = true
	return s.Repository.Create(ctx, team)
}

func (s *implService) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Team, error) {
	return s.Repository.Read(ctx, id, scope)
}

func (s *implService) List(ctx context.Context, search string, page pagination.Request, scope permission.Filter) ([]model.Team, int64, error) {
	return s.Repository.List(ctx, strings.TrimSpace(search), page, scope)
}

func (s *implService) Update(ctx context.Context, id uuid.UUID, p Patch, scope permission.Filter) (model.Team, model.Team, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.Team{}, model.Team{}, err
	}

	next := before
	if p.Code != nil {
		next.Code = normalizeCode(*p.Code)
	}
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Live != nil {
		next.Live = *p.Live
	}
	if next.Code == "" || next.Name == "" {
		return model.Team{}, model.Team{}, ErrInvalidInput
	}

	after, err := s.Repository.Update(ctx, next)
	if err != nil {
		return model.Team{}, model.Team{}, err
	}
	return before, after, nil
}

func (s *implService) Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Team, error) {
	before, err := s.Repository.Read(ctx, id, scope)
	if err != nil {
		return model.Team{}, err
	}
	n, err := s.Repository.CountMembers(ctx, id)
	if err != nil {
		return model.Team{}, err
	}
	if n > 0 {
		return model.Team{}, ErrHasMembers
	}
	if err := s.Repository.Delete(ctx, id); err != nil {
		return model.Team{}, err
	}
	return before, nil
}

func (s *implService) Members(ctx context.Context, id uuid.UUID, scope permission.Filter) ([]model.User, error) {
	if _, err := s.Repository.Read(ctx, id, scope); err != nil {
		return nil, err
	}
	return s.Repository.Members(ctx, id)
}

func (s *implService) AddMember(ctx context.Context, id, userUUID uuid.UUID, scope permission.Filter) (model.User, error) {
	if _, err := s.Repository.Read(ctx, id, scope); err != nil {
		return model.User{}, err
	}
	u, err := s.Repository.FindUser(ctx, userUUID)
	if err != nil {
		return model.User{}, err
	}
	if err := s.Repository.SetMembership(ctx, userUUID, &id); err != nil {
		return model.User{}, err
	}
	u.TeamUUID = &id
	return u, nil
}

func (s *implService) RemoveMember(ctx context.Context, id, userUUID uuid.UUID, scope permission.Filter) error {
	if _, err := s.Repository.Read(ctx, id, scope); err != nil {
		return err
	}
	u, err := s.Repository.FindUser(ctx, userUUID)
	if err != nil {
		return err
	}
	if u.TeamUUID == nil || *u.TeamUUID != id {
		return ErrNotMember
	}
	return s.Repository.SetMembership(ctx, userUUID, nil)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
