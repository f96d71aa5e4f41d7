package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"case-management-system/cmd/server"
	"case-management-system/internal/casework/domain/archive"
	"case-management-system/internal/casework/domain/cases"
	"case-management-system/internal/casework/domain/disposition"
	"case-management-system/internal/casework/domain/knowledge"
	"case-management-system/internal/casework/domain/todo"
	"case-management-system/internal/iam/application/audit"
	"case-management-system/internal/iam/application/auth"
	"case-management-system/internal/iam/application/auth/cache"
	"case-management-system/internal/iam/application/session"
	"case-management-system/internal/iam/domain/role"
	"case-management-system/internal/iam/domain/team"
	"case-management-system/internal/iam/domain/user"
	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/infra/config"
	"case-management-system/internal/infra/database/postgres"
	"case-management-system/internal/infra/jwt"
	"case-management-system/internal/infra/storage"
	"case-management-system/internal/pkg/log/acess_log"
	"case-management-system/internal/pkg/log/auditoria_log"
	"case-management-system/internal/pkg/logger"
	"case-management-system/internal/pkg/mailer"
	"case-management-system/internal/pkg/util"

	"github.com/spf13/viper"
	"golang.ngrok.com/ngrok/v2"
	"gorm.io/gorm"
)

const otpTTL = 5 * time.Minute

// Application armazena as dependências centrais da aplicação.
type Application struct {
	server *server.HTTPServer
}

// Environment carrega a configuração e instala o slog padrão. Usado também
// pelas operações de CLI que não sobem o servidor.
func Environment() error {
	if err := config.Load(); err != nil {
		return err
	}
	logger.Setup(logger.Config{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	})
	return nil
}

func initLogs(db *gorm.DB) {
	log := logger.Component("BOOTSTRAP")

	if _, err := auditoria_log.New(db, auditoria_log.Config{Enabled: viper.GetBool("audit.enabled")}); err != nil {
		log.Warn("auditoria desativada", slog.Any("reason", err))
	}
	if _, err := acess_log.New(db, acess_log.Config{Enabled: viper.GetBool("access_log.enabled")}); err != nil {
		log.Warn("log de acesso restrito ao slog", slog.Any("reason", err))
	}
}

func initIamDomain(db *gorm.DB, tokens *jwt.TokenGenerator, mw middleware.Middleware) error {
	if _, err := team.New(db, mw); err != nil {
		return fmt.Errorf("team: %w", err)
	}
	if _, err := role.New(db, mw); err != nil {
		return fmt.Errorf("role: %w", err)
	}
	if _, err := user.New(db, mw, util.UsePassword()); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	if _, err := session.New(db, mw); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if _, err := audit.New(mw); err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	deps := auth.Dependencies{
		Users:     user.MustUse().Service,
		Tokens:    tokens,
		Passwords: util.UsePassword(),
		Sessions:  session.MustUse().Service,
		Mailer:    mailer.Use,
		OTP:       cache.NewOTPStore(otpTTL),
	}
	if _, err := auth.New(deps, mw); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

func initCaseworkDomain(db *gorm.DB, mw middleware.Middleware) error {
	files, err := storage.FromViper()
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if _, err := cases.New(db, mw); err != nil {
		return fmt.Errorf("cases: %w", err)
	}
	if _, err := todo.New(db, mw); err != nil {
		return fmt.Errorf("todo: %w", err)
	}
	if _, err := disposition.New(db, mw); err != nil {
		return fmt.Errorf("disposition: %w", err)
	}
	if _, err := archive.New(db, mw); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	if _, err := knowledge.New(db, mw, files); err != nil {
		return fmt.Errorf("knowledge: %w", err)
	}
	return nil
}

// New prepara a aplicação (config, db, di) e retorna a instância.
func New() (*Application, error) {
	if err := Environment(); err != nil {
		return nil, err
	}
	log := logger.Component("BOOTSTRAP")
	log.Info("configuração de ambiente carregada", slog.String("env", viper.GetString("app.env")))

	jwtConfig := jwt.Config{
		AccessSecret:  viper.GetString("security.jwt_access_secret"),
		RefreshSecret: viper.GetString("security.jwt_refresh_secret"),
		Issuer:        viper.GetString("app.name"),
		AccessExpiry:  time.Duration(viper.GetInt64("security.jwt_access_expiry_min")) * time.Minute,
	}
	// a aplicação não sobe sem o gerador de token
	if err := jwt.Init(jwtConfig); err != nil {
		return nil, fmt.Errorf("falha ao criar gerador de token: %w", err)
	}
	tokens := jwt.Use()

	mailerCfg := mailer.SMTPConfig{
		Host:       viper.GetString("smtp.host"),
		Port:       viper.GetString("smtp.port"),
		Username:   viper.GetString("smtp.username"),
		Password:   viper.GetString("smtp.password"),
		Encryption: viper.GetString("smtp.encryption"),
		Address:    viper.GetString("smtp.address"),
	}
	if _, err := mailer.New(mailerCfg); err != nil {
		log.Warn("envio de e-mails indisponível; códigos OTP não serão entregues", slog.Any("error", err))
	}

	db := postgres.InitPostgres()
	initLogs(db)

	secret := viper.GetString("security.session_secret")
	if secret == "" {
		return nil, errors.New("security.session_secret não configurado")
	}
	cookies := middleware.NewCookieSession(secret, viper.GetBool("security.cookie_secure"))
	mw, err := middleware.New(db, tokens, cookies)
	if err != nil {
		return nil, fmt.Errorf("middleware: %w", err)
	}

	if err := initIamDomain(db, tokens, mw); err != nil {
		return nil, err
	}
	if err := initCaseworkDomain(db, mw); err != nil {
		return nil, err
	}
	log.Info("contêiner de dependências inicializado")

	return &Application{server: server.NewHTTPServer()}, nil
}

func startNgrokForward(ctx context.Context, token string, port int) error {
	log := logger.Component("NGROK")

	agent, err := ngrok.NewAgent(
		ngrok.WithAuthtoken(token),
		ngrok.WithAutoConnect(true),
	)
	if err != nil {
		return fmt.Errorf("erro criando ngrok Agent: %w", err)
	}

	upstream := ngrok.WithUpstream(fmt.Sprintf("http://127.0.0.1:%d", port))
	endpoint, err := agent.Forward(ctx, upstream)
	if err != nil {
		var ngErr ngrok.Error
		if errors.As(err, &ngErr) {
			log.Error("erro ao criar forward", slog.String("code", ngErr.Code()), slog.Any("error", ngErr))
		}
		return fmt.Errorf("erro iniciando ngrok Forward: %w", err)
	}
	log.Info("endpoint online", slog.Any("url", endpoint.URL()))

	<-ctx.Done()

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := endpoint.CloseWithContext(closeCtx); err != nil {
		return fmt.Errorf("erro ao fechar endpoint ngrok: %w", err)
	}
	if err := agent.Disconnect(); err != nil {
		return fmt.Errorf("erro ao desconectar ngrok Agent: %w", err)
	}
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	log := logger.Component("BOOTSTRAP")
	log.Info("iniciando servidor", slog.String("env", viper.GetString("app.env")))

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	if viper.GetBool("test.ngrok.live") {
		token := viper.GetString("test.ngrok.token")
		if token == "" {
			log.Warn("test.ngrok.live=true mas test.ngrok.token está vazio; ngrok não será iniciado")
		} else {
			port := viper.GetInt("server.http.port")
			go func() {
				if err := startNgrokForward(ctx, token, port); err != nil {
					logger.Component("NGROK").Error("túnel encerrado com erro", slog.Any("error", err))
				}
			}()
		}
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("falha ao encerrar servidor: %w", err)
		}
		return <-errCh

	case err := <-errCh:
		return err
	}
}
