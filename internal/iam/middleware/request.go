package middleware

import (
	"time"

	"case-management-system/internal/pkg/log/acess_log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestMetadata gera (ou propaga) o X-Request-ID e guarda os dados da
// requisição no contexto para auditoria e log de acesso.
func RequestMetadata() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" || len(traceID) > 100 {
			traceID = uuid.NewString()
		}
		c.Header(TraceHeader, traceID)

		c.Set(MetadataContextKey, Metadata{
			RayTraceCode: traceID,
			IP:           c.ClientIP(),
			Agent:        c.Request.UserAgent(),
			Method:       c.Request.Method,
			Path:         c.Request.URL.Path,
			Host:         c.Request.Host,
			Referer:      c.Request.Referer(),
			ContentType:  c.ContentType(),
			UserLanguage: c.GetHeader("Accept-Language"),
			TimeRequest:  time.Now().UTC(),
		})
		c.Next()
	}
}

// AccessLog registra a requisição após os handlers, quando status e usuário
// já são conhecidos.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		meta := GetMetadata(c)
		entry := acess_log.AccessLog{
			RayTraceCode: meta.RayTraceCode,
			Method:       c.Request.Method,
			Route:        c.FullPath(),
			Path:         c.Request.URL.Path,
			Host:         c.Request.Host,
			StatusCode:   c.Writer.Status(),
			IP:           c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			Referer:      c.Request.Referer(),
			ContentType:  c.ContentType(),
			UserLanguage: c.GetHeader("Accept-Language"),
			ResponseSize: max(c.Writer.Size(), 0),
			RequestTime:  start.UTC(),
			LatencyMs:    float64(time.Since(start).Microseconds()) / 1000,
		}
		if login, ok := GetAuthenticatedUser(c); ok {
			entry.UserUUID = &login.User.UUID
			entry.TeamUUID = login.User.TeamUUID
			entry.Identifier = login.User.Email
		}
		acess_log.Emit(c.Request.Context(), entry)
	}
}
