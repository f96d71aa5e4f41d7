package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"case-management-system/internal/iam/permission"
	"case-management-system/internal/infra/jwt"
	"case-management-system/internal/pkg/metrics"
	"case-management-system/internal/pkg/rest_err"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

const (
	permissionCacheTTL   = 5 * time.Minute
	activityRefreshEvery = time.Minute
)

type Middleware interface {
	SetContextAutorization() gin.HandlerFunc
	RequirePermission(module, action string) gin.HandlerFunc
	RequireAny(names ...string) gin.HandlerFunc
	RequireAll(names ...string) gin.HandlerFunc
	InvalidateRole(roleUUID uuid.UUID)
	Cookies() *CookieSession
}

// TokenValidator é satisfeito por *jwt.TokenGenerator.
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.AccessTokenClaims, error)
}

type impl struct {
	repository Repository
	tokens     TokenValidator
	cookies    *CookieSession
	perms      *cache.Cache
	now        func() time.Time
}

func NewMiddleware(repository Repository, tokens TokenValidator, cookies *CookieSession) Middleware {
	return &impl{
		repository: repository,
		tokens:     tokens,
		cookies:    cookies,
		perms:      cache.New(permissionCacheTTL, 2*permissionCacheTTL),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (mw *impl) Cookies() *CookieSession {
	return mw.cookies
}

func (mw *impl) SetContextAutorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		trace := TraceID(c)

		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = mw.cookies.Token(c)
		}
		if token == "" {
			abort(c, rest_err.NewUnauthorizedError(trace, "Token ausente ou inválido."))
			return
		}

		claims, err := mw.tokens.ValidateAccessToken(token)
		if err != nil {
			abort(c, rest_err.NewUnauthorizedError(trace, "Token ausente ou inválido."))
			return
		}

		ctx := c.Request.Context()
		login, err := mw.repository.GetLogin(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abort(c, rest_err.NewUnauthorizedError(trace, "Sessão não encontrada."))
				return
			}
			abort(c, rest_err.NewInternalServerError(trace, "Falha ao validar token de acesso.", nil))
			return
		}

		if claims.Subject != login.User.UUID.String() {
			abort(c, rest_err.NewUnauthorizedError(trace, "Token não associado a nenhum usuário válido."))
			return
		}

		now := mw.now()
		if !login.Session.Active(now) {
			abort(c, rest_err.NewUnauthorizedError(trace, "Sessão expirada ou revogada. Efetue login novamente."))
			return
		}

		if !login.User.Live {
			abort(c, rest_err.NewForbiddenError(trace, "Usuário inativo."))
			return
		}

		grants, err := mw.rolePermissions(c, login.User.RoleUUID)
		if err != nil {
			slog.Error("falha ao carregar permissões do papel",
				slog.String("component", "MIDDLEWARE"),
				slog.String("role_uuid", login.User.RoleUUID.String()),
				slog.Any("error", err),
			)
			abort(c, rest_err.NewInternalServerError(trace, "Falha ao carregar permissões.", nil))
			return
		}
		login.Permissions = grants

		if now.Sub(login.Session.LastActivity) >= activityRefreshEvery {
			if err := mw.repository.TouchSession(ctx, login.Session.UUID, now); err != nil {
				slog.Warn("falha ao atualizar last_activity",
					slog.String("component", "MIDDLEWARE"),
					slog.Any("error", err),
				)
			} else {
				login.Session.LastActivity = now
			}
		}

		login.Metadata = GetMetadata(c)
		SetAuthenticatedUser(c, login)
		c.Next()
	}
}

func (mw *impl) RequirePermission(module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		login, ok := GetAuthenticatedUser(c)
		if !ok {
			abort(c, rest_err.NewUnauthorizedError(TraceID(c), "Usuário não autenticado."))
			return
		}

		scope, ok := permission.HighestScope(login.Permissions, module, action)
		if !ok {
			metrics.AuthorizationDenied.WithLabelValues(module, action).Inc()
			abort(c, rest_err.NewForbiddenError(TraceID(c),
				fmt.Sprintf("Acesso negado. Permissão necessária: %s.", permission.Name(module, action))))
			return
		}

		c.Set(AccessContextKey, Access{Module: module, Action: action, Scope: scope})
		c.Next()
	}
}

func (mw *impl) RequireAny(names ...string) gin.HandlerFunc {
	return mw.requireNames(names, permission.HasAny)
}

func (mw *impl) RequireAll(names ...string) gin.HandlerFunc {
	return mw.requireNames(names, permission.HasAll)
}

func (mw *impl) requireNames(names []string, check func([]permission.Permission, ...string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		login, ok := GetAuthenticatedUser(c)
		if !ok {
			abort(c, rest_err.NewUnauthorizedError(TraceID(c), "Usuário não autenticado."))
			return
		}
		if !check(login.Permissions, names...) {
			metrics.AuthorizationDenied.WithLabelValues("composite", "check").Inc()
			abort(c, rest_err.NewForbiddenError(TraceID(c),
				fmt.Sprintf("Acesso negado. Permissões necessárias: %v.", names)))
			return
		}
		c.Next()
	}
}

func (mw *impl) rolePermissions(c *gin.Context, roleUUID uuid.UUID) ([]permission.Permission, error) {
	key := roleUUID.String()
	if cached, ok := mw.perms.Get(key); ok {
		return cached.([]permission.Permission), nil
	}
	grants, err := mw.repository.RolePermissions(c.Request.Context(), roleUUID)
	if err != nil {
		return nil, err
	}
	mw.perms.Set(key, grants, cache.DefaultExpiration)
	return grants, nil
}

// InvalidateRole descarta o conjunto de permissões em cache do papel.
func (mw *impl) InvalidateRole(roleUUID uuid.UUID) {
	mw.perms.Delete(roleUUID.String())
}

func abort(c *gin.Context, err *rest_err.RestErr) {
	c.AbortWithStatusJSON(err.Code, err)
}
