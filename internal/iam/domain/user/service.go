package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/util"

	"github.com/google/uuid"
)

// PasswordHasher é satisfeito por util.UsePassword().
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Patch representa uma alteração parcial; campos nil não mudam.
// ClearTeam remove o vínculo de equipe.
type Patch struct {
	Name      *string
	Email     *string
	Password  *string
	RoleUUID  *uuid.UUID
	TeamUUID  *uuid.UUID
	ClearTeam bool
}

type Service interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.User, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch, scope permission.Filter) (before, after model.User, err error)
	SetStatus(ctx context.Context, id uuid.UUID, live bool, scope permission.Filter) (before, after model.User, err error)
	Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, password string) error
	TouchLogin(ctx context.Context, id uuid.UUID) error
}

type serviceImpl struct {
	Repository Repository
	hasher     PasswordHasher
}

func NewService(repository Repository, hasher PasswordHasher) Service {
	if hasher == nil {
		hasher = util.UsePassword()
	}
	return &serviceImpl{
		Repository: repository,
		hasher:     hasher,
	}
}

func (s *serviceImpl) Create(ctx context.Context, u model.User) (model.User, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = normalizeEmail(u.Email)
	if u.Name == "" || u.Email == "" || u.Password == "" || u.RoleUUID == uuid.Nil {
		return model.User{}, ErrInvalidInput
	}

	hash, err := s.hasher.Hash(u.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	u.Password = hash
	u.Live = true

	return s.Repository.Create(ctx, u)
}

func (s *serviceImpl) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.User, error) {
	if id == uuid.Nil {
		return model.User{}, ErrInvalidInput
	}
	return s.Repository.Read(ctx, id, scope)
}

func (s *serviceImpl) FindByEmail(ctx context.Context, email string) (model.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return model.User{}, ErrInvalidInput
	}
	return s.Repository.FindByEmail(ctx, email)
}

func (s *serviceImpl) List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.User, int64, error) {
	return s.Repository.List(ctx, filter, scope)
}

func (s *serviceImpl) Update(ctx context.Context, id uuid.UUID, p Patch, scope permission.Filter) (model.User, model.User, error) {
	before, err := s.Read(ctx, id, scope)
	if err != nil {
		return model.User{}, model.User{}, err
	}

	next := before
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		next.Email = normalizeEmail(*p.Email)
	}
	if p.RoleUUID != nil {
		next.RoleUUID = *p.RoleUUID
	}
	if p.ClearTeam {
		next.TeamUUID = nil
	} else if p.TeamUUID != nil {
		team := *p.TeamUUID
		next.TeamUUID = &team
	}
	if p.Password != nil {
		hash, err := s.hasher.Hash(*p.Password)
		if err != nil {
			return model.User{}, model.User{}, fmt.Errorf("hash password: %w", err)
		}
		next.Password = hash
	}
	if next.Name == "" || next.Email == "" {
		return model.User{}, model.User{}, ErrInvalidInput
	}

	after, err := s.Repository.Update(ctx, next)
	if err != nil {
		return model.User{}, model.User{}, err
	}
	return before, after, nil
}

func (s *serviceImpl) SetStatus(ctx context.Context, id uuid.UUID, live bool, scope permission.Filter) (model.User, model.User, error) {
	if !live && id == scope.UserUUID {
		return model.User{}, model.User{}, ErrSelfDeactivate
	}
	before, err := s.Read(ctx, id, scope)
	if err != nil {
		return model.User{}, model.User{}, err
	}
	next := before
	next.Live = live

	after, err := s.Repository.Update(ctx, next)
	if err != nil {
		return model.User{}, model.User{}, err
	}
	return before, after, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.User, error) {
	before, err := s.Read(ctx, id, scope)
	if err != nil {
		return model.User{}, err
	}
	if err := s.Repository.Delete(ctx, id); err != nil {
		return model.User{}, err
	}
	return before, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, id uuid.UUID, password string) error {
	if len(password) < 8 {
		return ErrInvalidInput
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Repository.UpdatePassword(ctx, id, hash)
}

func (s *serviceImpl) TouchLogin(ctx context.Context, id uuid.UUID) error {
	return s.Repository.TouchLogin(ctx, id, time.Now().UTC())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
