package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"case-management-system/cmd/bootstrap"
	"case-management-system/internal/infra/database/postgres"
	"case-management-system/internal/pkg/logger"
	"case-management-system/internal/pkg/system"
)

const pidFile = "run/server.pid"

// startServer bloqueia até SIGINT/SIGTERM. O PID é gravado antes do boot para
// que uma segunda instância falhe cedo.
func startServer() error {
	pid := os.Getpid()
	if err := system.SavePID(pidFile, pid); err != nil {
		if errors.Is(err, system.ErrAlreadyRunning) {
			return fmt.Errorf("%w; use --stop antes de iniciar outra instância", err)
		}
		return err
	}
	defer system.RemovePID(pidFile)

	app, err := bootstrap.New()
	if err != nil {
		return fmt.Errorf("não foi possível criar a aplicação: %w", err)
	}
	defer postgres.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Component("CLI").Info("processo registrado", slog.Int("pid", pid), slog.String("pid_file", pidFile))
	return app.Start(ctx)
}

// stopServer envia SIGTERM ao PID registrado; arquivo de processo morto é descartado.
func stopServer() error {
	pid, err := system.LoadPID(pidFile)
	if err != nil {
		return err
	}
	defer system.RemovePID(pidFile)

	if err := system.TerminateProcess(pid); err != nil {
		return fmt.Errorf("processo %d não respondeu (PID obsoleto removido): %w", pid, err)
	}
	return nil
}
