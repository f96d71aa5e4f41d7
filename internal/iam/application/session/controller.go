package session

import (
	"errors"
	"log/slog"
	"net/http"

	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/pkg/log/auditoria_log"
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/rest_err"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const module = "sessions"

type Controller interface {
	Routes(routes gin.IRouter)
	List(c *gin.Context)
	Revoke(c *gin.Context)
	RevokeOthers(c *gin.Context)
}

type controllerImpl struct {
	service Service
	mw      middleware.Middleware
}

func NewController(service Service, mw middleware.Middleware) Controller {
	return &controllerImpl{service: service, mw: mw}
}

func (ctrl *controllerImpl) Routes(routes gin.IRouter) {
	mw := ctrl.mw
	group := routes.Group("/sessions", mw.SetContextAutorization())
	{
		group.GET("", mw.RequirePermission(module, "read"), ctrl.List)
		group.DELETE("/:uuid", mw.RequirePermission(module, "delete"), ctrl.Revoke)
		// qualquer usuário autenticado pode encerrar as próprias sessões
		group.POST("/revoke-others", ctrl.RevokeOthers)
	}
}

// @Summary      Lista sessões ativas
// @Tags         Session
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Página"
// @Param        size  query  int  false  "Itens por página (máximo 100)"
// @Success      200  {object}  pagination.Response[SessionResponseDto]
// @Failure      400  {object}  rest_err.RestErr
// @Router       /api/sessions [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req ListSessionRequestDto
	if err := c.ShouldBindQuery(&req); err != nil {
		restErr := rest_err.NewBadRequestError(trace, "Parâmetros de consulta inválidos.")
		c.JSON(restErr.Code, restErr)
		return
	}
	page, err := req.Request.Normalize()
	if err != nil {
		restErr := rest_err.NewBadRequestError(trace, "O tamanho da página não pode exceder 100.")
		c.JSON(restErr.Code, restErr)
		return
	}

	sessions, total, err := ctrl.service.List(c.Request.Context(), page, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	current := currentSession(c)
	items := make([]SessionResponseDto, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, ToResponse(s, current))
	}
	c.JSON(http.StatusOK, pagination.NewResponse(items, page, total))
}

// @Summary      Revoga uma sessão
// @Tags         Session
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID da sessão"
// @Success      204
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/sessions/{uuid} [delete]
func (ctrl *controllerImpl) Revoke(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		restErr := rest_err.NewBadRequestError(middleware.TraceID(c), "UUID inválido no caminho da requisição.")
		c.JSON(restErr.Code, restErr)
		return
	}

	revoked, err := ctrl.service.Revoke(c.Request.Context(), id, middleware.ScopeFilter(c))

	entry := middleware.AuditEntry(c, module, "delete", "session.Revoke")
	entry.EntityType = "session"
	entry.EntityID = id.String()
	entry.Success = err == nil
	auditoria_log.LogAsync(c.Request.Context(), entry)

	if err != nil {
		ctrl.fail(c, err)
		return
	}
	if revoked.UUID == currentSession(c) {
		_ = ctrl.mw.Cookies().Clear(c)
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Revoga as demais sessões do usuário
// @Description  Mantém apenas a sessão usada nesta requisição.
// @Tags         Session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  RevokeOthersResponseDto
// @Router       /api/sessions/revoke-others [post]
func (ctrl *controllerImpl) RevokeOthers(c *gin.Context) {
	login, ok := middleware.GetAuthenticatedUser(c)
	if !ok {
		restErr := rest_err.NewUnauthorizedError(middleware.TraceID(c), "Usuário não autenticado.")
		c.JSON(restErr.Code, restErr)
		return
	}

	n, err := ctrl.service.RevokeOthers(c.Request.Context(), login.User.UUID, login.Session.UUID)

	entry := middleware.AuditEntry(c, module, "delete", "session.RevokeOthers")
	entry.EntityType = "session"
	entry.EntityID = login.Session.UUID.String()
	entry.Success = err == nil
	auditoria_log.LogAsync(c.Request.Context(), entry)

	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, RevokeOthersResponseDto{Revoked: n})
}

func (ctrl *controllerImpl) fail(c *gin.Context, err error) {
	trace := middleware.TraceID(c)
	var restErr *rest_err.RestErr
	switch {
	case errors.Is(err, ErrNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Sessão não encontrada ou já revogada.")
	default:
		slog.Error("erro inesperado no módulo de sessões", slog.String("component", "SESSION"), slog.Any("error", err))
		restErr = rest_err.NewInternalServerError(trace, "Erro interno do servidor.", nil)
	}
	c.JSON(restErr.Code, restErr)
}

func currentSession(c *gin.Context) uuid.UUID {
	if login, ok := middleware.GetAuthenticatedUser(c); ok {
		return login.Session.UUID
	}
	return uuid.Nil
}
