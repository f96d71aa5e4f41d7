package role

import (
	"context"
	"strings"

	"case-management-system/internal/iam/domain/model"

	"github.com/google/uuid"
)

// CacheInvalidator é satisfeito pelo middleware de autorização.
type CacheInvalidator interface {
	InvalidateRole(roleUUID uuid.UUID)
}

type Service interface {
	Catalogue(ctx context.Context) ([]model.Permission, error)
	List(ctx context.Context) ([]model.Role, error)
	Read(ctx context.Context, id uuid.UUID) (model.Role, error)
	Create(ctx context.Context, role model.Role, permissionUUIDs []uuid.UUID) (model.Role, error)
	Update(ctx context.Context, id uuid.UUID, name, description *string) (before, after model.Role, err error)
	ReplacePermissions(ctx context.Context, id uuid.UUID, permissionUUIDs []uuid.UUID) (before, after model.Role, err error)
	Delete(ctx context.Context, id uuid.UUID) (model.Role, error)
}

type serviceImpl struct {
	repository Repository
	cache      CacheInvalidator
}

func NewService(repository Repository, cache CacheInvalidator) Service {
	return &serviceImpl{repository: repository, cache: cache}
}

func (s *serviceImpl) Catalogue(ctx context.Context) ([]model.Permission, error) {
	return s.repository.Catalogue(ctx)
}

func (s *serviceImpl) List(ctx context.Context) ([]model.Role, error) {
	return s.repository.List(ctx)
}

func (s *serviceImpl) Read(ctx context.Context, id uuid.UUID) (model.Role, error) {
	return s.repository.Read(ctx, id)
}

func (s *serviceImpl) Create(ctx context.Context, role model.Role, permissionUUIDs []uuid.UUID) (model.Role, error) {
	role.Name = normalizeName(role.Name)
	if role.Name == "" {
		return model.Role{}, ErrInvalidInput
	}
	role.System = false
	return s.repository.Create(ctx, role, unique(permissionUUIDs))
}

func (s *serviceImpl) Update(ctx context.Context, id uuid.UUID, name, description *string) (model.Role, model.Role, error) {
	before, err := s.repository.Read(ctx, id)
	if err != nil {
		return model.Role{}, model.Role{}, err
	}

	next := before
	if name != nil {
		n := normalizeName(*name)
		if n == "" {
			return model.Role{}, model.Role{}, ErrInvalidInput
		}
		if before.System && n != before.Name {
			return model.Role{}, model.Role{}, ErrSystemRole
		}
		next.Name = n
	}
	if description != nil {
		next.Description = *description
	}

	after, err := s.repository.Update(ctx, next)
	if err != nil {
		return model.Role{}, model.Role{}, err
	}
	return before, after, nil
}

func (s *serviceImpl) ReplacePermissions(ctx context.Context, id uuid.UUID, permissionUUIDs []uuid.UUID) (model.Role, model.Role, error) {
	before, err := s.repository.Read(ctx, id)
	if err != nil {
		return model.Role{}, model.Role{}, err
	}
	after, err := s.repository.ReplacePermissions(ctx, id, unique(permissionUUIDs))
	if err != nil {
		return model.Role{}, model.Role{}, err
	}
	if s.cache != nil {
		s.cache.InvalidateRole(id)
	}
	return before, after, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id uuid.UUID) (model.Role, error) {
	before, err := s.repository.Read(ctx, id)
	if err != nil {
		return model.Role{}, err
	}
	if before.System {
		return model.Role{}, ErrSystemRole
	}
	n, err := s.repository.CountUsers(ctx, id)
	if err != nil {
		return model.Role{}, err
	}
	if n > 0 {
		return model.Role{}, ErrHasUsers
	}
	if err := s.repository.Delete(ctx, id); err != nil {
		return model.Role{}, err
	}
	if s.cache != nil {
		s.cache.InvalidateRole(id)
	}
	return before, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func unique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
