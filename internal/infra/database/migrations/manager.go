// Package migrations aplica o schema (golang-migrate) e os seeds embutidos no binário.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

const (
	schemaDir = "sql/schema"
	seedDir   = "sql/seed"
)

//go:embed sql/schema/*.sql sql/seed/*.sql
var embeddedMigrations embed.FS

type seedFile struct {
	Name      string
	Content   string
	Timestamp time.Time
}

type Manager struct {
	db         *gorm.DB
	migrateURL string
}

// NewManager recebe a URL pgx5:// usada pelo golang-migrate (postgres.Config.MigrateURL).
func NewManager(db *gorm.DB, migrateURL string) *Manager {
	return &Manager{db: db, migrateURL: migrateURL}
}

// ApplyUpdate leva o schema à última versão. Sem mudanças não é erro.
func (m *Manager) ApplyUpdate() error {
	source, err := iofs.New(embeddedMigrations, schemaDir)
	if err != nil {
		return fmt.Errorf("falha ao abrir migrations embutidas: %w", err)
	}

	mg, err := migrate.NewWithSourceInstance("iofs", source, m.migrateURL)
	if err != nil {
		return fmt.Errorf("falha ao inicializar golang-migrate: %w", err)
	}
	defer mg.Close()

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("falha ao aplicar migrations: %w", err)
	}

	version, dirty, _ := mg.Version()
	slog.Info("schema atualizado",
		slog.String("component", "DATABASE"),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}

// ApplySeed executa, em uma transação, os seeds ainda não registrados em schema_seeds.
func (m *Manager) ApplySeed() error {
	files, err := loadSeeds(embeddedMigrations)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureSeedsTable(tx); err != nil {
			return err
		}

		applied, err := fetchApplied(tx)
		if err != nil {
			return err
		}

		for _, file := range files {
			if applied[file.Name] {
				continue
			}
			if err := executeSeed(tx, file); err != nil {
				return err
			}
			slog.Info("seed aplicado", slog.String("component", "DATABASE"), slog.String("file", file.Name))
		}
		return nil
	})
}

func loadSeeds(fsys fs.FS) ([]seedFile, error) {
	entries, err := fs.ReadDir(fsys, seedDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("falha ao ler diretório de seeds: %w", err)
	}

	files := make([]seedFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		name := entry.Name()
		content, err := fs.ReadFile(fsys, path.Join(seedDir, name))
		if err != nil {
			return nil, fmt.Errorf("falha ao ler seed %s: %w", name, err)
		}

		ts, err := parseTimestamp(name)
		if err != nil {
			return nil, err
		}
		files = append(files, seedFile{Name: name, Content: string(content), Timestamp: ts})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Timestamp.Equal(files[j].Timestamp) {
			return files[i].Name < files[j].Name
		}
		return files[i].Timestamp.Before(files[j].Timestamp)
	})
	return files, nil
}

// parseTimestamp exige o padrão YYYYMMDDHHMMSS_nome.sql.
func parseTimestamp(name string) (time.Time, error) {
	ts, _, ok := strings.Cut(path.Base(name), "_")
	if !ok || len(ts) != 14 {
		return time.Time{}, fmt.Errorf("seed %s não segue o padrão 'YYYYMMDDHHMMSS_nome.sql'", name)
	}

	parsed, err := time.Parse("20060102150405", ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("falha ao interpretar data do seed %s: %w", name, err)
	}
	return parsed, nil
}

func ensureSeedsTable(tx *gorm.DB) error {
	const createTable = `
CREATE TABLE IF NOT EXISTS schema_seeds (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	return tx.Exec(createTable).Error
}

func fetchApplied(tx *gorm.DB) (map[string]bool, error) {
	var names []string
	if err := tx.Raw("SELECT name FROM schema_seeds").Scan(&names).Error; err != nil {
		return nil, fmt.Errorf("falha ao consultar seeds aplicados: %w", err)
	}

	applied := make(map[string]bool, len(names))
	for _, name := range names {
		applied[name] = true
	}
	return applied, nil
}

func executeSeed(tx *gorm.DB, file seedFile) error {
	if err := tx.Exec(file.Content).Error; err != nil {
		return fmt.Errorf("falha ao aplicar seed %s: %w", file.Name, err)
	}
	if err := tx.Exec("INSERT INTO schema_seeds (name) VALUES (?)", file.Name).Error; err != nil {
		return fmt.Errorf("falha ao registrar seed %s: %w", file.Name, err)
	}
	return nil
}
