package middleware

import (
	"encoding/json"
	"strings"

	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/log/auditoria_log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	UserContextKey     = "AuthenticatedUserKey"
	MetadataContextKey = "RequestMetadataKey"
	AccessContextKey   = "RouteAccessKey"

	TraceHeader = "X-Request-ID"
)

func SetAuthenticatedUser(c *gin.Context, userLogin *Login) {
	if userLogin != nil {
		c.Set(UserContextKey, userLogin)
	}
}

func GetAuthenticatedUser(c *gin.Context) (*Login, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil, false
	}
	userLogin, ok := value.(*Login)
	return userLogin, ok
}

func GetMetadata(c *gin.Context) Metadata {
	if value, ok := c.Get(MetadataContextKey); ok {
		if meta, ok := value.(Metadata); ok {
			return meta
		}
	}
	return Metadata{RayTraceCode: c.GetHeader(TraceHeader)}
}

func GetAccess(c *gin.Context) (Access, bool) {
	value, exists := c.Get(AccessContextKey)
	if !exists {
		return Access{}, false
	}
	access, ok := value.(Access)
	return access, ok
}

// TraceID devolve o código de rastreio da requisição para os RestErr.
func TraceID(c *gin.Context) *string {
	trace := GetMetadata(c).RayTraceCode
	if trace == "" {
		return nil
	}
	return &trace
}

// ScopeFilter monta o filtro de visibilidade da rota. Sem usuário ou sem
// RequirePermission o filtro resultante nega tudo.
func ScopeFilter(c *gin.Context) permission.Filter {
	login, ok := GetAuthenticatedUser(c)
	if !ok {
		return permission.Filter{}
	}
	access, ok := GetAccess(c)
	if !ok {
		return permission.Filter{}
	}
	return permission.Filter{
		Scope:    access.Scope,
		UserUUID: login.User.UUID,
		TeamUUID: login.User.TeamUUID,
	}
}

// AuditEntry pré-preenche o log de auditoria com o ator e os dados da requisição.
func AuditEntry(c *gin.Context, module, action, function string) auditoria_log.AuditLog {
	meta := GetMetadata(c)
	entry := auditoria_log.AuditLog{
		RayTraceCode: meta.RayTraceCode,
		Module:       module,
		Action:       action,
		Function:     function,
		IP:           meta.IP,
		UserAgent:    meta.Agent,
		Method:       meta.Method,
		Path:         meta.Path,
	}

	extra := map[string]string{}
	if meta.Host != "" {
		extra["host"] = meta.Host
	}
	if meta.Referer != "" {
		extra["referer"] = meta.Referer
	}
	if meta.UserLanguage != "" {
		extra["user_language"] = meta.UserLanguage
	}
	if len(extra) > 0 {
		if raw, err := json.Marshal(extra); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	if login, ok := GetAuthenticatedUser(c); ok {
		userUUID := login.User.UUID
		entry.UserUUID = &userUUID
		entry.TeamUUID = login.User.TeamUUID
		entry.Identifier = login.User.Email
	}
	return entry
}

func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// Actor devolve o usuário autenticado e a sua equipe, usados como dono dos
// registros criados na requisição.
func Actor(c *gin.Context) (uuid.UUID, *uuid.UUID) {
	login, ok := GetAuthenticatedUser(c)
	if !ok {
		return uuid.Nil, nil
	}
	return login.User.UUID, login.User.TeamUUID
}
