package acess_log

import (
	"context"
	"errors"
	"net"
	"time"
)

var ErrInvalidEntry = errors.New("invalid access log entry")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Log descarta entradas sem método ou com IP que a coluna inet recusaria.
func (s *Service) Log(ctx context.Context, entry AccessLog) error {
	if entry.Method == "" || entry.Path == "" || net.ParseIP(entry.IP) == nil {
		return ErrInvalidEntry
	}
	return s.repo.Save(ctx, entry)
}

// Purge remove as linhas mais antigas que retention; retention <= 0 não apaga nada.
func (s *Service) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	return s.repo.DeleteBefore(ctx, s.now().Add(-retention))
}
