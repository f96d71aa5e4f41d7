// Package config carrega configs.json com viper, aplicando padrões e
// sobrescritas por variáveis de ambiente (prefixo CMS_).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "CMS"

var defaults = map[string]interface{}{
	"app.name":                       "case-management-system",
	"app.env":                        "dev",
	"server.http.port":               "8080",
	"databases.postgres.host":        "localhost",
	"databases.postgres.port":        "5432",
	"databases.postgres.user":        "postgres",
	"databases.postgres.pwd":         "",
	"databases.postgres.db_name":     "cases",
	"databases.postgres.ssl_mode":    "disable",
	"security.jwt_access_secret":     "",
	"security.jwt_refresh_secret":    "",
	"security.jwt_access_expiry_min": 480,
	"security.session_secret":        "",
	"security.cookie_secure":         false,
	"smtp.host":                      "",
	"smtp.port":                      "587",
	"smtp.username":                  "",
	"smtp.password":                  "",
	"smtp.encryption":                "tls",
	"smtp.address":                   "",
	"log.level":                      "info",
	"log.format":                     "json",
	"audit.enabled":                  true,
	"access_log.enabled":             true,
	"storage.uploads_path":           "uploads",
	"storage.max_upload_mb":          10,
	"test.ngrok.live":                false,
	"test.ngrok.token":               "",
}

// Load lê .env (opcional) e configs.json de "." ou "/etc/". A ausência do
// arquivo não é fatal: padrões e ambiente ainda se aplicam.
func Load() error {
	_ = godotenv.Load()

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	viper.SetConfigName("configs")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("erro no arquivo de configuração: %w", err)
		}
	}
	return nil
}

// EnvKey devolve a variável de ambiente que sobrescreve a chave.
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))
}
