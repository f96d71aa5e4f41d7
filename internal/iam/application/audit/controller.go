package audit

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/log/auditoria_log"
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/rest_err"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const module = "audit"

var scopeColumns = permission.Columns{Owner: "user_uuid", Team: "team_uuid"}

type Controller interface {
	Routes(routes gin.IRouter)
	List(c *gin.Context)
	Read(c *gin.Context)
	History(c *gin.Context)
}

type controllerImpl struct {
	service auditoria_log.Service
	mw      middleware.Middleware
}

func NewController(service auditoria_log.Service, mw middleware.Middleware) Controller {
	return &controllerImpl{service: service, mw: mw}
}

func (ctrl *controllerImpl) Routes(routes gin.IRouter) {
	mw := ctrl.mw
	group := routes.Group("/audit", mw.SetContextAutorization(), mw.RequirePermission(module, "read"))
	{
		group.GET("", ctrl.List)
		group.GET("/:uuid", ctrl.Read)
		group.GET("/entity/:entity_type/:entity_id", ctrl.History)
	}
}

// @Summary      Lista registros de auditoria
// @Tags         Audit
// @Produce      json
// @Security     BearerAuth
// @Param        module       query  string  false  "Módulo"
// @Param        action       query  string  false  "Ação"
// @Param        user_uuid    query  string  false  "Autor"
// @Param        entity_type  query  string  false  "Tipo da entidade"
// @Param        entity_id    query  string  false  "Identificador da entidade"
// @Param        from         query  string  false  "Início (YYYY-MM-DD ou RFC3339)"
// @Param        to           query  string  false  "Fim (YYYY-MM-DD ou RFC3339)"
// @Param        page         query  int     false  "Página"
// @Param        size         query  int     false  "Itens por página (máximo 100)"
// @Success      200  {object}  pagination.Response[AuditResponseDto]
// @Failure      400  {object}  rest_err.RestErr
// @Router       /api/audit [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req ListAuditRequestDto
	if err := c.ShouldBindQuery(&req); err != nil {
		restErr := rest_err.NewBadRequestError(trace, "Parâmetros de consulta inválidos.")
		c.JSON(restErr.Code, restErr)
		return
	}
	ctrl.list(c, req)
}

// @Summary      Histórico de uma entidade
// @Tags         Audit
// @Produce      json
// @Security     BearerAuth
// @Param        entity_type  path   string  true   "Tipo da entidade"
// @Param        entity_id    path   string  true   "Identificador da entidade"
// @Param        page         query  int     false  "Página"
// @Param        size         query  int     false  "Itens por página (máximo 100)"
// @Success      200  {object}  pagination.Response[AuditResponseDto]
// @Failure      400  {object}  rest_err.RestErr
// @Router       /api/audit/entity/{entity_type}/{entity_id} [get]
func (ctrl *controllerImpl) History(c *gin.Context) {
	var req ListAuditRequestDto
	if err := c.ShouldBindQuery(&req.Request); err != nil {
		restErr := rest_err.NewBadRequestError(middleware.TraceID(c), "Parâmetros de consulta inválidos.")
		c.JSON(restErr.Code, restErr)
		return
	}
	req.EntityType = c.Param("entity_type")
	req.EntityID = c.Param("entity_id")
	ctrl.list(c, req)
}

func (ctrl *controllerImpl) list(c *gin.Context, req ListAuditRequestDto) {
	trace := middleware.TraceID(c)

	page, err := req.Request.Normalize()
	if err != nil {
		restErr := rest_err.NewBadRequestError(trace, "O tamanho da página não pode exceder 100.")
		c.JSON(restErr.Code, restErr)
		return
	}
	filter, err := toFilter(req, page)
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	logs, total, err := ctrl.service.List(c.Request.Context(), filter, scopeOf(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	items := make([]AuditResponseDto, 0, len(logs))
	for _, l := range logs {
		items = append(items, ToResponse(l))
	}
	c.JSON(http.StatusOK, pagination.NewResponse(items, page, total))
}

// @Summary      Detalha um registro de auditoria
// @Tags         Audit
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do registro"
// @Success      200  {object}  AuditResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/audit/{uuid} [get]
func (ctrl *controllerImpl) Read(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		restErr := rest_err.NewBadRequestError(middleware.TraceID(c), "UUID inválido no caminho da requisição.")
		c.JSON(restErr.Code, restErr)
		return
	}

	entry, err := ctrl.service.Read(c.Request.Context(), id, scopeOf(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(entry))
}

func (ctrl *controllerImpl) fail(c *gin.Context, err error) {
	trace := middleware.TraceID(c)
	var restErr *rest_err.RestErr
	switch {
	case errors.Is(err, auditoria_log.ErrNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Registro de auditoria não encontrado.")
	case errors.Is(err, ErrInvalidFilter), errors.Is(err, auditoria_log.ErrInvalidInput):
		restErr = rest_err.NewBadRequestError(trace, "Filtro de auditoria inválido.")
	default:
		slog.Error("erro inesperado na consulta de auditoria", slog.String("component", "AUDIT"), slog.Any("error", err))
		restErr = rest_err.NewInternalServerError(trace, "Erro interno do servidor.", nil)
	}
	c.JSON(restErr.Code, restErr)
}

func scopeOf(c *gin.Context) auditoria_log.Scope {
	query, args := middleware.ScopeFilter(c).Predicate(scopeColumns)
	return auditoria_log.Scope{Query: query, Args: args}
}

func toFilter(req ListAuditRequestDto, page pagination.Request) (auditoria_log.ListFilter, error) {
	filter := auditoria_log.ListFilter{
		Module:     strings.TrimSpace(req.Module),
		Action:     strings.TrimSpace(req.Action),
		EntityType: strings.TrimSpace(req.EntityType),
		EntityID:   strings.TrimSpace(req.EntityID),
		Page:       page.Page,
		PageSize:   page.Size,
	}
	if req.UserUUID != "" {
		id, err := uuid.Parse(req.UserUUID)
		if err != nil {
			return filter, ErrInvalidFilter
		}
		filter.UserUUID = &id
	}

	var err error
	if filter.From, err = parseBound(req.From, false); err != nil {
		return filter, err
	}
	if filter.To, err = parseBound(req.To, true); err != nil {
		return filter, err
	}
	return filter, nil
}

// parseBound aceita data simples ou RFC3339; "to" em data simples cobre o dia inteiro.
func parseBound(raw string, end bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, ErrInvalidFilter
	}
	if end {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
