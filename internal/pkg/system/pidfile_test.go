package system

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRemovePID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "server.pid")

	if err := SavePID(path, os.Getpid()); err != nil {
		t.Fatalf("SavePID() error = %v", err)
	}
	pid, err := LoadPID(path)
	if err != nil || pid != os.Getpid() {
		t.Fatalf("LoadPID() = %d, %v", pid, err)
	}

	RemovePID(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("pid file still present: %v", err)
	}
}

func TestSavePIDRefusesLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.pid")
	if err := os.WriteFile(path, []byte("1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if os.Getpid() == 1 || !processAlive(1) {
		t.Skip("pid 1 not signalable in this environment")
	}
	if err := SavePID(path, os.Getpid()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SavePID() = %v, want ErrAlreadyRunning", err)
	}
}

func TestLoadPIDInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.pid")
	_ = os.WriteFile(path, []byte("abc"), 0o644)
	if _, err := LoadPID(path); err == nil {
		t.Error("expected error for invalid PID content")
	}
	if err := SavePID("", 1); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSavePIDReplacesStaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.pid")
	if err := os.WriteFile(path, []byte("2147483646\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if processAlive(2147483646) {
		t.Skip("pid unexpectedly alive")
	}
	if err := SavePID(path, os.Getpid()); err != nil {
		t.Fatalf("SavePID() error = %v", err)
	}
	if pid, _ := LoadPID(path); pid != os.Getpid() {
		t.Errorf("LoadPID() = %d", pid)
	}
	if err := SavePID(path, 0); err == nil {
		t.Error("expected error for zero PID")
	}
}
