package user

import (
	"context"
	"errors"
	"testing"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"

	"github.com/google/uuid"
)

var scopeAll = permission.Filter{Scope: permission.ScopeAll}

func TestServiceCreateHashesAndNormalizes(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, plainHasher{})

	created, err := svc.Create(context.Background(), model.User{
		Name: "  Ana ", Email: " Ana@CMS.local ", Password: "segredo123", RoleUUID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Email != "ana@cms.local" || created.Name != "Ana" {
		t.Errorf("not normalized: %+v", created)
	}
	if created.Password != "hashed:segredo123" {
		t.Errorf("password not hashed: %s", created.Password)
	}
	if !created.Live {
		t.Error("new users start active")
	}

	if _, err := svc.Create(context.Background(), model.User{Name: "x", Email: "y@z.com", Password: "12345678"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing role: got %v", err)
	}
}

func TestServiceUpdatePatch(t *testing.T) {
	team := uuid.New()
	u := model.User{UUID: uuid.New(), Name: "Ana", Email: "ana@cms.local", Password: "old", RoleUUID: uuid.New(), TeamUUID: &team, Live: true}
	repo := newFakeRepository(u)
	svc := NewService(repo, plainHasher{})

	name := "Ana Maria"
	pwd := "novasenha1"
	before, after, err := svc.Update(context.Background(), u.UUID, Patch{Name: &name, Password: &pwd, ClearTeam: true}, scopeAll)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if before.Name != "Ana" || after.Name != "Ana Maria" {
		t.Errorf("before/after mismatch: %s / %s", before.Name, after.Name)
	}
	if after.TeamUUID != nil {
		t.Error("team should be cleared")
	}
	if after.Password != "hashed:novasenha1" {
		t.Errorf("password = %s", after.Password)
	}
	if after.Email != u.Email {
		t.Error("untouched fields must be kept")
	}
}

func TestServiceOutOfScopeIsNotFound(t *testing.T) {
	other := model.User{UUID: uuid.New(), Name: "Bia", Email: "bia@cms.local", RoleUUID: uuid.New()}
	svc := NewService(newFakeRepository(other), plainHasher{})
	own := permission.Filter{Scope: permission.ScopeOwn, UserUUID: uuid.New()}

	if _, err := svc.Read(context.Background(), other.UUID, own); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read: got %v", err)
	}
	if _, err := svc.Delete(context.Background(), other.UUID, own); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: got %v", err)
	}
}

func TestServiceSetStatusRejectsSelfDeactivation(t *testing.T) {
	u := model.User{UUID: uuid.New(), Name: "Ana", Email: "ana@cms.local", Live: true}
	svc := NewService(newFakeRepository(u), plainHasher{})
	self := permission.Filter{Scope: permission.ScopeAll, UserUUID: u.UUID}

	if _, _, err := svc.SetStatus(context.Background(), u.UUID, false, self); !errors.Is(err, ErrSelfDeactivate) {
		t.Fatalf("got %v", err)
	}
	_, after, err := svc.SetStatus(context.Background(), u.UUID, true, self)
	if err != nil || !after.Live {
		t.Fatalf("activate: %v %+v", err, after)
	}
}

func TestServiceChangePassword(t *testing.T) {
	u := model.User{UUID: uuid.New(), Email: "ana@cms.local", Password: "old"}
	repo := newFakeRepository(u)
	svc := NewService(repo, plainHasher{})

	if err := svc.ChangePassword(context.Background(), u.UUID, "curta"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("short password: got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), u.UUID, "comprida1"); err != nil {
		t.Fatal(err)
	}
	if repo.users[u.UUID].Password != "hashed:comprida1" {
		t.Errorf("password = %s", repo.users[u.UUID].Password)
	}
}

func TestServiceFindByEmail(t *testing.T) {
	u := model.User{UUID: uuid.New(), Email: "ana@cms.local"}
	svc := NewService(newFakeRepository(u), plainHasher{})

	found, err := svc.FindByEmail(context.Background(), " ANA@cms.local")
	if err != nil || found.UUID != u.UUID {
		t.Fatalf("FindByEmail: %v", err)
	}
	if _, err := svc.FindByEmail(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank email: got %v", err)
	}
}
