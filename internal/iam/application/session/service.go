package session

import (
	"context"
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
)

type Service interface {
	Open(ctx context.Context, s model.Session) (model.Session, error)
	Close(ctx context.Context, token string) error
	RevokeAll(ctx context.Context, userUUID uuid.UUID) (int64, error)
	List(ctx context.Context, page pagination.Request, scope permission.Filter) ([]model.Session, int64, error)
	Revoke(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Session, error)
	RevokeOthers(ctx context.Context, userUUID, current uuid.UUID) (int64, error)
	PurgeExpired(ctx context.Context, retention time.Duration) (int64, error)
}

type serviceImpl struct {
	repository Repository
	now        func() time.Time
}

func NewService(repository Repository) Service {
	return &serviceImpl{
		repository: repository,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Open grava a sessão com last_activity igual ao momento do login.
func (s *serviceImpl) Open(ctx context.Context, sess model.Session) (model.Session, error) {
	if sess.UserUUID == uuid.Nil || sess.Token == "" || sess.ExpiresAt.IsZero() {
		return model.Session{}, ErrInvalidInput
	}
	sess.LastActivity = s.now()
	sess.RevokedAt = nil
	return s.repository.Create(ctx, sess)
}

func (s *serviceImpl) Close(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidInput
	}
	return s.repository.RevokeByToken(ctx, token, s.now())
}

func (s *serviceImpl) RevokeAll(ctx context.Context, userUUID uuid.UUID) (int64, error) {
	return s.repository.RevokeAllForUser(ctx, userUUID, nil, s.now())
}

func (s *serviceImpl) List(ctx context.Context, page pagination.Request, scope permission.Filter) ([]model.Session, int64, error) {
	return s.repository.ListActive(ctx, s.now(), page, scope)
}

func (s *serviceImpl) Revoke(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.Session, error) {
	found, err := s.repository.Read(ctx, id, scope)
	if err != nil {
		return model.Session{}, err
	}
	if err := s.repository.Revoke(ctx, id, s.now()); err != nil {
		return model.Session{}, err
	}
	return found, nil
}

func (s *serviceImpl) RevokeOthers(ctx context.Context, userUUID, current uuid.UUID) (int64, error) {
	return s.repository.RevokeAllForUser(ctx, userUUID, &current, s.now())
}

// PurgeExpired remove sessões expiradas ou revogadas há mais de retention.
func (s *serviceImpl) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	if retention < 0 {
		retention = 0
	}
	return s.repository.DeleteExpired(ctx, s.now().Add(-retention))
}
