package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/viper"

	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Modos SSL aceitos pelo PostgreSQL
const (
	SSLDisable    = "disable"
	SSLRequire    = "require"
	SSLVerifyFull = "verify-full"
	SSLVerifyCA   = "verify-ca"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Config espelha as chaves databases.postgres.* do configs.json.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func ConfigFromViper() Config {
	return Config{
		Host:     viper.GetString("databases.postgres.host"),
		Port:     viper.GetString("databases.postgres.port"),
		User:     viper.GetString("databases.postgres.user"),
		Password: viper.GetString("databases.postgres.pwd"),
		DBName:   viper.GetString("databases.postgres.db_name"),
		SSLMode:  viper.GetString("databases.postgres.ssl_mode"),
	}
}

// InitPostgres abre a conexão GORM uma única vez. Falha de conexão encerra
// o processo, pois nenhuma operação funciona sem o banco.
func InitPostgres() *gorm.DB {
	once.Do(func() {
		log := slog.Default().With(slog.String("component", "DATABASE"))

		conn, err := Open(ConfigFromViper(), viper.GetString("app.env") == "dev")
		if err != nil {
			log.Error("erro ao abrir conexão com o banco de dados", slog.Any("error", err))
			os.Exit(1)
		}
		db = conn
		log.Info("Conexão GORM com PostgreSQL estabelecida com sucesso.")
	})

	return db
}

// Open conecta e testa a conexão sem tocar no singleton (usado pelos testes
// de integração).
func Open(cfg Config, verbose bool) (*gorm.DB, error) {
	level := gormLogger.Warn
	if verbose {
		level = gormLogger.Info
	}

	conn, err := gorm.Open(gormPostgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão GORM: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("erro ao obter *sql.DB do GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("erro ao testar conexão com o banco de dados: %w", err)
	}
	return conn, nil
}

func GetDB() *gorm.DB {
	return db
}

// Ping é usado pelo endpoint /health.
func Ping(ctx context.Context) error {
	if db == nil {
		return fmt.Errorf("conexão com o banco de dados não inicializada")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close encerra a conexão e permite nova inicialização.
func Close() {
	if db == nil {
		return
	}

	var sqlDB *sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("erro ao obter *sql.DB para fechamento", slog.String("component", "DATABASE"), slog.Any("error", err))
	} else if err := sqlDB.Close(); err != nil {
		slog.Error("erro ao fechar conexão com banco", slog.String("component", "DATABASE"), slog.Any("error", err))
	}

	db = nil
	once = sync.Once{}
}

// DSN monta a string de conexão no formato chave=valor do libpq.
func (c Config) DSN() string {
	name := c.DBName
	if name == "" {
		name = "cases"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, name, c.sslMode(),
	)
}

// MigrateURL monta a URL pgx5:// usada pelo golang-migrate.
func (c Config) MigrateURL() string {
	name := c.DBName
	if name == "" {
		name = "cases"
	}
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + name,
		RawQuery: "sslmode=" + c.sslMode(),
	}
	return u.String()
}

func (c Config) sslMode() string {
	if !isValidSSLMode(c.SSLMode) {
		return SSLDisable
	}
	return c.SSLMode
}

func isValidSSLMode(mode string) bool {
	switch mode {
	case SSLDisable, SSLRequire, SSLVerifyFull, SSLVerifyCA:
		return true
	default:
		return false
	}
}
