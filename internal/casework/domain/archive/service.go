package archive

import (
	"context"
	"strings"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/iam/permission"

	"github.com/google/uuid"
)

type Service interface {
	Archive(ctx context.Context, caseUUID, archivedBy uuid.UUID, reason string, scope permission.Filter) (model.ArchivedCase, model.Case, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.ArchivedCase, int64, error)
	Restore(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, model.Case, error)
	Purge(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, error)
}

type implService struct {
	Repository Repository
}

func NewService(repository Repository) Service {
	return &implService{
		Repository: repository,
	}
}

func (s *implService) Archive(ctx context.Context, caseUUID, archivedBy uuid.UUID, reason string, scope permission.Filter) (model.ArchivedCase, model.Case, error) {
	return s.Repository.Archive(ctx, caseUUID, archivedBy, strings.TrimSpace(reason), scope)
}

func (s *implService) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, error) {
	return s.Repository.Read(ctx, id, scope)
}

func (s *implService) List(ctx context.Context, f ListFilter, scope permission.Filter) ([]model.ArchivedCase, int64, error) {
	f.Search = strings.TrimSpace(f.Search)
	return s.Repository.List(ctx, f, scope)
}

func (s *implService) Restore(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, model.Case, error) {
	return s.Repository.Restore(ctx, id, scope)
}

func (s *implService) Purge(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, error) {
	return s.Repository.Delete(ctx, id, scope)
}
