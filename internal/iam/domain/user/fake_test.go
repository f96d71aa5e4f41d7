package user

import (
	"context"
	"strings"
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/iam/permission/permissiontest"

	"github.com/google/uuid"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

type fakeRepository struct {
	users   map[uuid.UUID]model.User
	touched []uuid.UUID
}

func newFakeRepository(users ...model.User) *fakeRepository {
	f := &fakeRepository{users: map[uuid.UUID]model.User{}}
	for _, u := range users {
		f.users[u.UUID] = u
	}
	return f
}

func (f *fakeRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return model.User{}, ErrEmailDuplicated
		}
	}
	u.UUID = uuid.New()
	u.CreateAt = time.Now().UTC()
	u.UpdateAt = u.CreateAt
	f.users[u.UUID] = u
	return u, nil
}

func (f *fakeRepository) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.User, error) {
	u, ok := f.users[id]
	if !ok || !permissiontest.Allows(scope, u.UUID, u.TeamUUID) {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (f *fakeRepository) List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range f.users {
		if permissiontest.Allows(scope, u.UUID, u.TeamUUID) {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) Update(ctx context.Context, u model.User) (model.User, error) {
	if _, ok := f.users[u.UUID]; !ok {
		return model.User{}, ErrNotFound
	}
	f.users[u.UUID] = u
	return u, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Password = hash
	f.users[id] = u
	return nil
}

func (f *fakeRepository) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}
