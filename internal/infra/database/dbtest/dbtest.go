// Package dbtest sobe um PostgreSQL descartável (testcontainers) já migrado
// e com seeds, para os testes de integração dos repositórios.
package dbtest

import (
	"context"
	"os"
	"testing"
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/infra/database/migrations"
	"case-management-system/internal/infra/database/postgres"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const (
	image    = "docker.io/postgres:17-alpine"
	database = "cases_test"
	user     = "cms"
	password = "test-password"
)

// Setup pula o teste sem TEST_INTEGRATION. O container é encerrado no Cleanup.
func Setup(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("teste de integração ignorado: TEST_INTEGRATION não definida")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase(database),
		tcpostgres.WithUsername(user),
		tcpostgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("falha ao subir PostgreSQL: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("falha ao encerrar container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host do container: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("porta do container: %v", err)
	}

	cfg := postgres.Config{
		Host:     host,
		Port:     port.Port(),
		User:     user,
		Password: password,
		DBName:   database,
		SSLMode:  postgres.SSLDisable,
	}
	db, err := postgres.Open(cfg, false)
	if err != nil {
		t.Fatalf("conexão: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	manager := migrations.NewManager(db, cfg.MigrateURL())
	if err := manager.ApplyUpdate(); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	if err := manager.ApplySeed(); err != nil {
		t.Fatalf("seeds: %v", err)
	}
	return db
}

// CreateUser grava um usuário com o papel semeado informado.
func CreateUser(t *testing.T, db *gorm.DB, roleName, email string, team *uuid.UUID) model.User {
	t.Helper()

	var role model.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		t.Fatalf("papel %s: %v", roleName, err)
	}
	u := model.User{RoleUUID: role.UUID, TeamUUID: team, Name: email, Email: email, Password: "x", Live: true}
	if err := db.Omit("Role", "Team").Create(&u).Error; err != nil {
		t.Fatalf("usuário %s: %v", email, err)
	}
	return u
}

// CreateTeam grava uma equipe ativa.
func CreateTeam(t *testing.T, db *gorm.DB, code string) model.Team {
	t.Helper()

	team := model.Team{Code: code, Name: code, Live: true}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("equipe %s: %v", code, err)
	}
	return team
}
