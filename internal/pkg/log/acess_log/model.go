package acess_log

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// AccessLog é uma linha por requisição HTTP; rotas públicas ficam sem usuário.
type AccessLog struct {
	ID         uint       `gorm:"primaryKey"`
	UserUUID   *uuid.UUID `gorm:"type:uuid;index"`
	TeamUUID   *uuid.UUID `gorm:"type:uuid"`
	Identifier string     `gorm:"type:text"`

	RayTraceCode string `gorm:"size:100;not null"`

	Method       string `gorm:"size:10;not null"`
	Route        string `gorm:"type:text"`
	Path         string `gorm:"type:text;not null"`
	Host         string `gorm:"type:text;not null"`
	StatusCode   int    `gorm:"not null"`
	IP           string `gorm:"type:inet;not null"`
	UserAgent    string `gorm:"type:text"`
	Referer      string `gorm:"type:text"`
	ContentType  string `gorm:"type:text"`
	UserLanguage string `gorm:"type:text"`
	ResponseSize int    `gorm:"not null;default:0"`

	RequestTime time.Time `gorm:"not null"`
	LatencyMs   float64   `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (AccessLog) TableName() string {
	return "access_log"
}

// Level escolhe o nível do slog pelo status da resposta.
func (a AccessLog) Level() slog.Level {
	switch {
	case a.StatusCode >= 500:
		return slog.LevelError
	case a.StatusCode >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Attrs são os atributos da linha de log de acesso.
func (a AccessLog) Attrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("component", "ACCESS"),
		slog.String("trace_id", a.RayTraceCode),
		slog.String("method", a.Method),
		slog.String("path", a.Path),
		slog.Int("status", a.StatusCode),
		slog.Float64("latency_ms", a.LatencyMs),
		slog.String("ip", a.IP),
		slog.Int("size", a.ResponseSize),
	}
	if a.UserUUID != nil {
		attrs = append(attrs, slog.String("user_uuid", a.UserUUID.String()))
	}
	return attrs
}
