package middleware

import (
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"
)

// Login é o usuário autenticado da requisição, com sessão e permissões
// já resolvidas.
type Login struct {
	User        model.User
	Session     model.Session
	Permissions []permission.Permission
	Metadata    Metadata
}

type Metadata struct {
	RayTraceCode   string
	IP             string
	Agent          string
	Method         string
	Path           string
	Host           string
	Referer        string
	ContentType    string
	UserLanguage   string
	TimeRequest    time.Time
	RequestLatency time.Duration
}

// Access é o resultado de RequirePermission para a rota atual.
type Access struct {
	Module string
	Action string
	Scope  permission.Scope
}
