// Package middlewaretest fornece um Middleware sem banco nem JWT para os
// testes de controllers.
package middlewaretest

import (
	"fmt"
	"net/http"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/iam/permission"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Fake autentica sempre como User e concede Scopes[module] a qualquer ação
// do módulo. Módulo ausente no mapa resulta em 403.
type Fake struct {
	User        model.User
	Session     model.Session
	Scopes      map[string]permission.Scope
	Invalidated []uuid.UUID
}

func New(user model.User, scopes map[string]permission.Scope) *Fake {
	return &Fake{User: user, Scopes: scopes}
}

// Grant concede scope em todos os módulos informados.
func Grant(user model.User, scope permission.Scope, modules ...string) *Fake {
	scopes := make(map[string]permission.Scope, len(modules))
	for _, m := range modules {
		scopes[m] = scope
	}
	return New(user, scopes)
}

func (f *Fake) SetContextAutorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetAuthenticatedUser(c, &middleware.Login{
			User:        f.User,
			Session:     f.Session,
			Permissions: f.permissions(),
		})
		c.Next()
	}
}

func (f *Fake) RequirePermission(module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := f.Scopes[module]
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": fmt.Sprintf("missing %s", permission.Name(module, action))})
			return
		}
		c.Set(middleware.AccessContextKey, middleware.Access{Module: module, Action: action, Scope: scope})
		c.Next()
	}
}

func (f *Fake) RequireAny(names ...string) gin.HandlerFunc {
	return f.require(names, permission.HasAny)
}

func (f *Fake) RequireAll(names ...string) gin.HandlerFunc {
	return f.require(names, permission.HasAll)
}

func (f *Fake) require(names []string, check func([]permission.Permission, ...string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !check(f.permissions(), names...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": fmt.Sprintf("missing %v", names)})
			return
		}
		c.Next()
	}
}

func (f *Fake) InvalidateRole(roleUUID uuid.UUID) {
	f.Invalidated = append(f.Invalidated, roleUUID)
}

func (f *Fake) Cookies() *middleware.CookieSession {
	return nil
}

func (f *Fake) permissions() []permission.Permission {
	var perms []permission.Permission
	for module, scope := range f.Scopes {
		for _, action := range []string{"create", "read", "update", "delete"} {
			perms = append(perms, permission.Permission{Module: module, Action: action, Scope: scope})
		}
	}
	return perms
}
