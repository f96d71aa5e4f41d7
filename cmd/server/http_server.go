package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"case-management-system/cmd/server/routes"
	"case-management-system/internal/pkg/logger"

	"github.com/spf13/viper"
)

type HTTPServer struct {
	server *http.Server
	log    *slog.Logger
}

func NewHTTPServer() *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%s", viper.GetString("server.http.port")),
			Handler:           routes.SetupRouter(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: logger.Component("SERVER"),
	}
}

func (s *HTTPServer) Start() error {
	s.log.Info("iniciando servidor", slog.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			s.log.Info("servidor finalizado")
			return nil
		}
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.log.Info("encerrando servidor")
	return s.server.Shutdown(ctx)
}
