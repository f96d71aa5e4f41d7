package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"case-management-system/internal/iam/domain/model"

	"github.com/google/uuid"
)

type fakeRoles struct {
	roles []model.Role
}

func (f fakeRoles) List(ctx context.Context) ([]model.Role, error) {
	return f.roles, nil
}

type fakeUsers struct {
	created []model.User
}

func (f *fakeUsers) Create(ctx context.Context, u model.User) (model.User, error) {
	u.UUID = uuid.New()
	f.created = append(f.created, u)
	return u, nil
}

type fakeSessions struct {
	retention time.Duration
}

func (f *fakeSessions) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	f.retention = retention
	return 4, nil
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"--create-admin", "--admin-email=root@example.com", "--admin-password", "s3cr3t-pw", "--sessions-purge", "--sessions-retention=48h"})
	if err != nil {
		t.Fatal(err)
	}
	if !opts.CreateAdmin || opts.AdminEmail != "root@example.com" || opts.AdminPassword != "s3cr3t-pw" {
		t.Errorf("opts = %+v", opts)
	}
	if !opts.SessionsPurge || opts.SessionsRetention != 48*time.Hour {
		t.Errorf("retention = %v", opts.SessionsRetention)
	}
	if !opts.anyOperation() || !opts.requiresDatabase() {
		t.Error("admin and purge need the database")
	}

	opts, _ = parseOptions([]string{"--db-backup", "--local=/tmp/x.sql"})
	if opts.requiresDatabase() {
		t.Error("backup runs pg_dump, not gorm")
	}
	opts, _ = parseOptions([]string{"--access-log-purge"})
	if !opts.requiresDatabase() || opts.AccessLogRetention != 90*24*time.Hour {
		t.Errorf("access log defaults = %+v", opts)
	}

	if _, err := parseOptions([]string{"--unknown"}); err == nil {
		t.Error("unknown flag must fail")
	}
}

func TestCreateAdminUsesSeededRole(t *testing.T) {
	adminRole := model.Role{UUID: uuid.New(), Name: model.RoleAdministrador}
	roles := fakeRoles{roles: []model.Role{{UUID: uuid.New(), Name: model.RoleAnalista}, adminRole}}
	users := &fakeUsers{}

	u, err := createAdmin(context.Background(), roles, users, adminInput{Email: "root@example.com", Password: "long-enough"})
	if err != nil {
		t.Fatal(err)
	}
	if u.RoleUUID != adminRole.UUID || u.Name != "Administrador" || u.TeamUUID != nil {
		t.Errorf("user = %+v", u)
	}
}

func TestCreateAdminFailures(t *testing.T) {
	users := &fakeUsers{}
	if _, err := createAdmin(context.Background(), fakeRoles{}, users, adminInput{Email: "a@b.c", Password: "long-enough"}); !errors.Is(err, ErrAdminRoleMissing) {
		t.Errorf("no seed: %v", err)
	}
	if _, err := createAdmin(context.Background(), fakeRoles{}, users, adminInput{Email: "a@b.c", Password: "short"}); err == nil {
		t.Error("short password must fail")
	}
	if _, err := createAdmin(context.Background(), fakeRoles{}, users, adminInput{Password: "long-enough"}); err == nil {
		t.Error("missing email must fail")
	}
	if len(users.created) != 0 {
		t.Errorf("created %d users", len(users.created))
	}
}

func TestPurgeSessionsPassesRetention(t *testing.T) {
	s := &fakeSessions{}
	n, err := purgeSessions(context.Background(), s, time.Hour)
	if err != nil || n != 4 || s.retention != time.Hour {
		t.Errorf("n=%d err=%v retention=%v", n, err, s.retention)
	}
}
