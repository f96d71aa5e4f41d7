// Package storage grava os anexos da base de conhecimento no disco local.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

var (
	ErrTooLarge = errors.New("file exceeds maximum size")
	ErrNotFound = errors.New("stored file not found")
	ErrBadKey   = errors.New("invalid storage key")
)

type Saved struct {
	Key      string
	Size     int64
	Checksum string
}

type Local struct {
	root     string
	maxBytes int64
}

// NewLocal cria o diretório raiz se necessário. maxBytes <= 0 desativa o limite.
func NewLocal(root string, maxBytes int64) (*Local, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("criar diretório de uploads %s: %w", root, err)
	}
	return &Local{root: root, maxBytes: maxBytes}, nil
}

// FromViper lê storage.uploads_path e storage.max_upload_mb.
func FromViper() (*Local, error) {
	return NewLocal(viper.GetString("storage.uploads_path"), viper.GetInt64("storage.max_upload_mb")<<20)
}

func (l *Local) MaxBytes() int64 {
	return l.maxBytes
}

// Save grava em arquivo temporário, faz fsync e renomeia. O arquivo só
// aparece no destino final quando completo e dentro do limite.
func (l *Local) Save(r io.Reader, prefix, fileName string) (Saved, error) {
	key := buildKey(prefix, fileName)
	full := filepath.Join(l.root, key)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return Saved{}, err
	}
	tmp := full + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return Saved{}, err
	}

	src := r
	if l.maxBytes > 0 {
		src = io.LimitReader(r, l.maxBytes+1)
	}
	hasher := sha256.New()
	size, err := io.Copy(f, io.TeeReader(src, hasher))
	if err == nil && l.maxBytes > 0 && size > l.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, full)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return Saved{}, err
	}

	return Saved{Key: key, Size: size, Checksum: hex.EncodeToString(hasher.Sum(nil))}, nil
}

func (l *Local) Open(key string) (*os.File, error) {
	full, err := l.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Delete ignora arquivos já removidos.
func (l *Local) Delete(key string) error {
	full, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *Local) path(key string) (string, error) {
	clean := filepath.Clean(key)
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrBadKey
	}
	return filepath.Join(l.root, clean), nil
}

// buildKey gera <prefix>/<timestamp>_<uuid curto>_<nome saneado>.
func buildKey(prefix, fileName string) string {
	ext := sanitize(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if ext != "" {
		ext = "." + ext
	}
	name := sanitize(strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)))
	if len(name) > 60 {
		name = name[:60]
	}
	if name == "" {
		name = "arquivo"
	}
	stamp := time.Now().UTC().Format("20060102150405")
	return filepath.Join(sanitize(prefix), fmt.Sprintf("%s_%s_%s%s", stamp, uuid.NewString()[:8], name, ext))
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), ".")
}
