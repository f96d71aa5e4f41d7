// Package admin reúne as operações de manutenção do banco expostas pela CLI.
package admin

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"case-management-system/internal/infra/database/postgres"

	"gorm.io/gorm"
)

// ExpectedTables são as tabelas criadas pelas migrations de schema.
var ExpectedTables = []string{
	"access_log",
	"archived_cases",
	"audit_entity_changes",
	"audit_log",
	"cases",
	"dispositions",
	"knowledge_attachments",
	"knowledge_documents",
	"permissions",
	"role_permissions",
	"roles",
	"schema_migrations",
	"schema_seeds",
	"teams",
	"todos",
	"user_sessions",
	"users",
}

type Status struct {
	Tables    []string
	Missing   []string
	CheckedAt time.Time
}

// Ready indica schema completo.
func (s Status) Ready() bool {
	return len(s.Missing) == 0
}

func Check(db *gorm.DB) (Status, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return Status{}, fmt.Errorf("falha ao obter conexão subjacente: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return Status{}, fmt.Errorf("banco de dados indisponível: %w", err)
	}

	tables, err := listTables(db)
	if err != nil {
		return Status{}, err
	}
	return Status{Tables: tables, Missing: missingTables(tables), CheckedAt: time.Now()}, nil
}

// DeleteAll remove todas as tabelas do schema atual, inclusive o controle de versão.
func DeleteAll(db *gorm.DB) error {
	tables, err := listTables(db)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			query := fmt.Sprintf("DROP TABLE IF EXISTS %q CASCADE", table)
			if err := tx.Exec(query).Error; err != nil {
				return fmt.Errorf("falha ao remover tabela %s: %w", table, err)
			}
		}
		return nil
	})
}

func listTables(db *gorm.DB) ([]string, error) {
	var tables []string
	err := db.Raw(`
SELECT tablename
FROM pg_catalog.pg_tables
WHERE schemaname = current_schema()
ORDER BY tablename;
`).Scan(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("falha ao listar tabelas: %w", err)
	}
	return tables, nil
}

func missingTables(found []string) []string {
	var missing []string
	for _, t := range ExpectedTables {
		if !slices.Contains(found, t) {
			missing = append(missing, t)
		}
	}
	return missing
}

type BackupOptions struct {
	Destination string
}

// Backup chama o pg_dump do PATH com as credenciais de databases.postgres.*.
func Backup(cfg postgres.Config, opts BackupOptions) error {
	if opts.Destination == "" {
		return errors.New("destino do backup não informado (use --local=<caminho>)")
	}
	if cfg.DBName == "" {
		return errors.New("nome do banco de dados não configurado")
	}

	destination := normalizeDestination(opts.Destination)
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("falha ao criar diretório do backup: %w", err)
	}

	cmd := exec.Command("pg_dump", dumpArgs(cfg, destination)...)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+cfg.Password)

	if output, err := cmd.CombinedOutput(); err != nil {
		if len(output) > 0 {
			return fmt.Errorf("pg_dump falhou: %w - %s", err, strings.TrimSpace(string(output)))
		}
		return fmt.Errorf("pg_dump falhou: %w", err)
	}
	return nil
}

func dumpArgs(cfg postgres.Config, destination string) []string {
	return []string{
		"-h", cfg.Host,
		"-p", cfg.Port,
		"-U", cfg.User,
		"-d", cfg.DBName,
		"-F", detectFormat(destination),
		"-f", destination,
	}
}

func normalizeDestination(path string) string {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		if cwd, err := os.Getwd(); err == nil {
			return filepath.Join(cwd, clean)
		}
	}
	return clean
}

// detectFormat: .sql vira texto puro, .tar vira tar; o resto usa o formato custom.
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sql":
		return "p"
	case ".tar":
		return "t"
	default:
		return "c"
	}
}
