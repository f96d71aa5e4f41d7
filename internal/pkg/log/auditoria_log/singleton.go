package auditoria_log

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"case-management-system/internal/pkg/metrics"

	"gorm.io/gorm"
)

var (
	instance Service
	repo     Repository
	once     sync.Once
	initErr  error

	ErrLogNotInitialized = errors.New("audit logger not initialized")
)

// Config usada somente no New()
type Config struct {
	Enabled bool
}

// New inicializa apenas 1x (se Enabled=true)
func New(db *gorm.DB, cfg Config) (Service, error) {
	once.Do(func() {
		if db == nil {
			initErr = errors.New("database required for audit log")
			return
		}
		// a consulta continua disponível mesmo com a gravação desligada
		repo = NewRepository(db)
		if !cfg.Enabled {
			initErr = errors.New("audit logger disabled in config")
			return
		}
		instance = NewService(repo)
	})

	return instance, initErr
}

// MustUse simplesmente retorna a instância (pode ser nil)
func MustUse() Service {
	return instance
}

// UseReader retorna um serviço de consulta mesmo quando a gravação está desligada.
func UseReader() (Service, error) {
	if instance != nil {
		return instance, nil
	}
	if repo == nil {
		return nil, ErrLogNotInitialized
	}
	return NewService(repo), nil
}

// LogAsync registra auditoria em goroutine destacada. Falhas nunca chegam
// à requisição principal.
func LogAsync(ctx context.Context, entry AuditLog) {
	svc := instance
	if svc == nil {
		return
	}

	ctxDetached := context.WithoutCancel(ctx)
	go func() {
		if err := svc.Log(ctxDetached, entry); err != nil {
			metrics.AuditWriteFailures.Inc()
			slog.Error("falha ao gravar auditoria",
				slog.String("component", "AUDIT"),
				slog.String("module", entry.Module),
				slog.String("action", entry.Action),
				slog.Any("error", err),
			)
		}
	}()
}

// Record calcula o diff entre before e after e registra o log com as mudanças.
// before nil indica criação; after nil indica exclusão.
func Record(ctx context.Context, entry AuditLog, before, after interface{}) {
	entry.Changes = ToEntityChanges(Diff(Snapshot(before), Snapshot(after)))
	LogAsync(ctx, entry)
}
