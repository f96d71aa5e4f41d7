package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
)

var ErrAlreadyRunning = errors.New("server already running")

// SavePID grava o PID de forma atômica. Um arquivo existente só é
// sobrescrito quando o processo nele registrado não está mais vivo.
func SavePID(path string, pid int) error {
	if path == "" {
		return errors.New("caminho do arquivo PID não informado")
	}
	if pid <= 0 {
		return fmt.Errorf("PID inválido: %d", pid)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("falha ao criar diretório do PID: %w", err)
	}

	if old, err := LoadPID(path); err == nil && old != pid && processAlive(old) {
		return fmt.Errorf("%w: PID %d registrado em %s", ErrAlreadyRunning, old, path)
	}

	tmp, err := os.CreateTemp(dir, ".pid-*")
	if err != nil {
		return fmt.Errorf("falha ao criar arquivo PID temporário: %w", err)
	}
	if _, err := tmp.WriteString(strconv.Itoa(pid) + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("falha ao gravar PID: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("falha ao publicar arquivo PID: %w", err)
	}
	return nil
}

func LoadPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("falha ao ler arquivo PID: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("PID inválido em %s: %q", path, strings.TrimSpace(string(data)))
	}
	return pid, nil
}

// RemovePID ignora arquivo ausente.
func RemovePID(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}

// TerminateProcess pede encerramento gracioso; no Windows não há SIGTERM.
func TerminateProcess(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("não foi possível localizar o processo %d: %w", pid, err)
	}
	if runtime.GOOS == "windows" {
		return proc.Kill()
	}
	return proc.Signal(syscall.SIGTERM)
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
