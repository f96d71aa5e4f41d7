package migrations_test

import (
	"testing"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/infra/database/admin"
	"case-management-system/internal/infra/database/dbtest"
	"case-management-system/internal/infra/database/migrations"
)

func TestSchemaAndSeedsAreIdempotent(t *testing.T) {
	db := dbtest.Setup(t)

	status, err := admin.Check(db)
	if err != nil {
		t.Fatal(err)
	}
	if !status.Ready() {
		t.Fatalf("missing tables: %v", status.Missing)
	}

	var before int64
	db.Model(&model.Permission{}).Count(&before)

	// segundo seed não pode duplicar nada
	if err := migrations.NewManager(db, "").ApplySeed(); err != nil {
		t.Fatal(err)
	}
	var after int64
	db.Model(&model.Permission{}).Count(&after)
	if before != after || after == 0 {
		t.Errorf("permissions before=%d after=%d", before, after)
	}

	var roles []model.Role
	if err := db.Preload("Permissions").Order("name").Find(&roles).Error; err != nil {
		t.Fatal(err)
	}
	if len(roles) != 3 {
		t.Fatalf("roles = %d", len(roles))
	}
	for _, r := range roles {
		if !r.System || len(r.Permissions) == 0 {
			t.Errorf("role %s: system=%v perms=%d", r.Name, r.System, len(r.Permissions))
		}
		if r.Name == model.RoleAdministrador && int64(len(r.Permissions))*3 != after {
			t.Errorf("administrador has %d of %d all-scope permissions", len(r.Permissions), after/3)
		}
	}
}
