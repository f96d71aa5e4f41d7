package acess_log

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"gorm.io/gorm"
)

var (
	instance *Service
	once     sync.Once
	initErr  error

	ErrLogNotInitialized = errors.New("access logger not initialized")
)

type Config struct {
	Enabled bool
}

// New inicializa apenas 1x. Desligado não é erro: Emit segue escrevendo só no slog.
func New(db *gorm.DB, cfg Config) (*Service, error) {
	once.Do(func() {
		if !cfg.Enabled {
			return
		}
		if db == nil {
			initErr = errors.New("database required for access log")
			return
		}
		instance = NewService(NewRepository(db))
	})

	return instance, initErr
}

// MustUse retorna a instância (nil quando desligado).
func MustUse() *Service {
	return instance
}

// Emit escreve a linha no slog e, se habilitado, grava a linha no banco em
// goroutine destacada.
func Emit(ctx context.Context, entry AccessLog) {
	slog.Default().LogAttrs(ctx, entry.Level(), "requisição HTTP", entry.Attrs()...)

	svc := instance
	if svc == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	go func() {
		if err := svc.Log(detached, entry); err != nil {
			slog.Warn("falha ao gravar log de acesso",
				slog.String("component", "ACCESS"),
				slog.String("trace_id", entry.RayTraceCode),
				slog.Any("error", err),
			)
		}
	}()
}
