package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"case-management-system/cmd/bootstrap"
	"case-management-system/internal/iam/application/session"
	"case-management-system/internal/iam/domain/role"
	"case-management-system/internal/iam/domain/user"
	"case-management-system/internal/infra/database/admin"
	"case-management-system/internal/infra/database/migrations"
	"case-management-system/internal/infra/database/postgres"
	"case-management-system/internal/pkg/log/acess_log"
	"case-management-system/internal/pkg/logger"
	"case-management-system/internal/pkg/util"

	"github.com/spf13/pflag"
	"gorm.io/gorm"
)

type options struct {
	Start             bool
	Stop              bool
	Seed              bool
	Update            bool
	DBCheck           bool
	DBDelete          bool
	DBBackup          bool
	BackupDestination string

	CreateAdmin   bool
	AdminEmail    string
	AdminPassword string
	AdminName     string

	SessionsPurge     bool
	SessionsRetention time.Duration

	AccessLogPurge     bool
	AccessLogRetention time.Duration
}

func Execute() error {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		return err
	}

	if !opts.anyOperation() {
		fmt.Println("Nenhuma operação informada. Use --help para listar as opções disponíveis.")
		return nil
	}

	if opts.Stop {
		if err := stopServer(); err != nil {
			return fmt.Errorf("falha ao parar servidor: %w", err)
		}
		fmt.Println("Servidor finalizado com sucesso.")
		return nil
	}

	if err := bootstrap.Environment(); err != nil {
		return err
	}
	log := logger.Component("CLI")
	ctx := context.Background()

	var db *gorm.DB
	if opts.requiresDatabase() {
		db = postgres.InitPostgres()
		defer postgres.Close()
	}
	manager := func() *migrations.Manager {
		return migrations.NewManager(db, postgres.ConfigFromViper().MigrateURL())
	}

	// schema antes dos seeds quando as duas flags vêm juntas
	if opts.Update {
		if err := manager().ApplyUpdate(); err != nil {
			return fmt.Errorf("falha ao aplicar migrations de atualização: %w", err)
		}
		log.Info("migrations de atualização aplicadas")
	}

	if opts.Seed {
		if err := manager().ApplySeed(); err != nil {
			return fmt.Errorf("falha ao aplicar seeds: %w", err)
		}
		log.Info("seeds aplicados")
	}

	if opts.DBCheck {
		status, err := admin.Check(db)
		if err != nil {
			return fmt.Errorf("falha ao checar banco de dados: %w", err)
		}
		log.Info("banco de dados ativo",
			slog.Int("tables", len(status.Tables)),
			slog.Any("missing", status.Missing),
			slog.Bool("ready", status.Ready()),
		)
	}

	if opts.DBDelete {
		if err := admin.DeleteAll(db); err != nil {
			return fmt.Errorf("falha ao deletar tabelas do banco: %w", err)
		}
		log.Info("todas as tabelas foram removidas")
	}

	if opts.DBBackup {
		dest := opts.BackupDestination
		if dest == "" {
			return errors.New("para executar o backup informe o destino com --local=<caminho>")
		}
		if abs, err := filepath.Abs(dest); err == nil {
			dest = abs
		}
		if err := admin.Backup(postgres.ConfigFromViper(), admin.BackupOptions{Destination: dest}); err != nil {
			return fmt.Errorf("falha ao executar backup: %w", err)
		}
		log.Info("backup gerado", slog.String("path", dest))
	}

	if opts.CreateAdmin {
		in := adminInput{Name: opts.AdminName, Email: opts.AdminEmail, Password: opts.AdminPassword}
		users := user.NewService(user.NewRepository(db), util.UsePassword())
		created, err := createAdmin(ctx, role.NewRepository(db), users, in)
		if err != nil {
			return fmt.Errorf("falha ao criar administrador: %w", err)
		}
		log.Info("administrador criado", slog.String("uuid", created.UUID.String()), slog.String("email", created.Email))
	}

	if opts.SessionsPurge {
		n, err := purgeSessions(ctx, session.NewService(session.NewRepository(db)), opts.SessionsRetention)
		if err != nil {
			return err
		}
		log.Info("sessões expiradas removidas", slog.Int64("removed", n))
	}

	if opts.AccessLogPurge {
		n, err := acess_log.NewService(acess_log.NewRepository(db)).Purge(ctx, opts.AccessLogRetention)
		if err != nil {
			return fmt.Errorf("falha ao limpar log de acesso: %w", err)
		}
		log.Info("log de acesso antigo removido", slog.Int64("removed", n))
	}

	if opts.Start {
		if err := startServer(); err != nil {
			return fmt.Errorf("falha ao iniciar servidor: %w", err)
		}
	}
	return nil
}

func parseOptions(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("case-management-system", pflag.ContinueOnError)
	fs.BoolVar(&opts.Start, "start", false, "Inicia o servidor HTTP")
	fs.BoolVar(&opts.Stop, "stop", false, "Finaliza o servidor HTTP")
	fs.BoolVar(&opts.Seed, "migration-seed", false, "Aplica os seeds (permissões e papéis)")
	fs.BoolVar(&opts.Update, "migration-update", false, "Aplica as migrations de schema")
	fs.BoolVar(&opts.DBCheck, "db-check", false, "Checa status do banco de dados")
	fs.BoolVar(&opts.DBDelete, "db-delete", false, "Remove todas as tabelas do banco de dados")
	fs.BoolVar(&opts.DBBackup, "db-backup", false, "Realiza backup do banco de dados")
	fs.StringVar(&opts.BackupDestination, "local", "", "Arquivo de destino do backup")
	fs.BoolVar(&opts.CreateAdmin, "create-admin", false, "Cria um usuário administrador")
	fs.StringVar(&opts.AdminEmail, "admin-email", "", "E-mail do administrador")
	fs.StringVar(&opts.AdminPassword, "admin-password", "", "Senha do administrador")
	fs.StringVar(&opts.AdminName, "admin-name", "", "Nome do administrador")
	fs.BoolVar(&opts.SessionsPurge, "sessions-purge", false, "Remove sessões expiradas ou revogadas")
	fs.DurationVar(&opts.SessionsRetention, "sessions-retention", 7*24*time.Hour, "Tempo mínimo que sessões encerradas ficam guardadas")
	fs.BoolVar(&opts.AccessLogPurge, "access-log-purge", false, "Remove linhas antigas do log de acesso")
	fs.DurationVar(&opts.AccessLogRetention, "access-log-retention", 90*24*time.Hour, "Idade mínima das linhas removidas do log de acesso")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func (o options) anyOperation() bool {
	return o.Start || o.Stop || o.Seed || o.Update || o.DBCheck || o.DBDelete || o.DBBackup ||
		o.CreateAdmin || o.SessionsPurge || o.AccessLogPurge
}

func (o options) requiresDatabase() bool {
	return o.Seed || o.Update || o.DBCheck || o.DBDelete || o.CreateAdmin || o.SessionsPurge || o.AccessLogPurge
}
