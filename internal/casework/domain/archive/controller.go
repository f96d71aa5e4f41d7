package archive

import (
	"errors"
	"log/slog"
	"net/http"

	"case-management-system/internal/casework/domain/cases"
	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/log/auditoria_log"
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/rest_err"
	"case-management-system/internal/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const module = "archive"

type Controller interface {
	Routes(routes gin.IRouter)
	Archive(c *gin.Context)
	Read(c *gin.Context)
	List(c *gin.Context)
	Restore(c *gin.Context)
	Purge(c *gin.Context)
}

type controllerImpl struct {
	service Service
	mw      middleware.Middleware
}

func NewController(service Service, mw middleware.Middleware) Controller {
	return &controllerImpl{
		service: service,
		mw:      mw,
	}
}

func (ctrl *controllerImpl) Routes(routes gin.IRouter) {
	mw := ctrl.mw
	group := routes.Group("/archive", mw.SetContextAutorization())
	{
		// arquivar apaga o caso, então exige também cases:delete
		group.POST("/cases/:uuid",
			mw.RequireAll(permission.Name(module, "create"), permission.Name("cases", "delete")),
			mw.RequirePermission(module, "create"),
			ctrl.Archive,
		)
		group.GET("", mw.RequirePermission(module, "read"), ctrl.List)
		group.GET("/:uuid", mw.RequirePermission(module, "read"), ctrl.Read)
		group.POST("/:uuid/restore", mw.RequirePermission(module, "update"), ctrl.Restore)
		group.DELETE("/:uuid", mw.RequirePermission(module, "delete"), ctrl.Purge)
	}
}

// @Summary      Arquiva um Caso
// @Description  Guarda o caso completo como snapshot e o remove da tabela de casos.
// @Tags         Archive
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string             true  "UUID do caso"
// @Param        request  body  ArchiveRequestDto  false "Motivo"
// @Success      201  {object}  ArchivedCaseResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/archive/cases/{uuid} [post]
func (ctrl *controllerImpl) Archive(c *gin.Context) {
	trace := middleware.TraceID(c)
	caseUUID, ok := pathUUID(c)
	if !ok {
		return
	}

	var req ArchiveRequestDto
	if c.Request.ContentLength != 0 {
		if restErr := validation.BindJSON(c, archiveRules, &req, trace); restErr != nil {
			c.JSON(restErr.Code, restErr)
			return
		}
	}

	actor, _ := middleware.Actor(c)
	archived, original, err := ctrl.service.Archive(c.Request.Context(), caseUUID, actor, req.Reason, middleware.ScopeFilter(c))

	entry := middleware.AuditEntry(c, module, "archive", "archive.Archive")
	entry.EntityType = "case"
	entry.EntityID = caseUUID.String()
	entry.Success = err == nil
	entry.InputData = auditoria_log.SerializeData(req)
	if err != nil {
		auditoria_log.LogAsync(c.Request.Context(), entry)
		ctrl.fail(c, err)
		return
	}
	entry.OutputData = auditoria_log.SerializeData(toAudit(archived))
	auditoria_log.Record(c.Request.Context(), entry, cases.ToResponse(original), nil)

	c.JSON(http.StatusCreated, ToResponse(archived, true))
}

// @Summary      Busca um Caso arquivado
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do arquivo"
// @Success      200  {object}  ArchivedCaseResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/archive/{uuid} [get]
func (ctrl *controllerImpl) Read(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	found, err := ctrl.service.Read(c.Request.Context(), id, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(found, true))
}

// @Summary      Lista Casos arquivados
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Página"
// @Param        size    query  int     false  "Itens por página (máximo 100)"
// @Param        search  query  string  false  "Trecho do número do caso ou do motivo"
// @Success      200  {object}  pagination.Response[ArchivedCaseResponseDto]
// @Failure      400  {object}  rest_err.RestErr
// @Router       /api/archive [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req ListArchiveRequestDto
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

	found, total, err := ctrl.service.List(c.Request.Context(), ListFilter{Search: req.Search, Page: page}, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	items := make([]ArchivedCaseResponseDto, 0, len(found))
	for _, item := range found {
		items = append(items, ToResponse(item, false))
	}
	c.JSON(http.StatusOK, pagination.NewResponse(items, page, total))
}

// @Summary      Restaura um Caso arquivado
// @Tags         Archive
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do arquivo"
// @Success      200  {object}  cases.CaseResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Failure      409  {object}  rest_err.RestErr  "Número do caso já reutilizado"
// @Router       /api/archive/{uuid}/restore [post]
func (ctrl *controllerImpl) Restore(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	archived, restored, err := ctrl.service.Restore(c.Request.Context(), id, middleware.ScopeFilter(c))

	entry := middleware.AuditEntry(c, module, "restore", "archive.Restore")
	entry.EntityType = "case"
	entry.Success = err == nil
	if err != nil {
		entry.EntityID = id.String()
		auditoria_log.LogAsync(c.Request.Context(), entry)
		ctrl.fail(c, err)
		return
	}
	entry.EntityID = restored.UUID.String()
	entry.InputData = auditoria_log.SerializeData(toAudit(archived))
	view := cases.ToResponse(restored)
	entry.OutputData = auditoria_log.SerializeData(view)
	auditoria_log.Record(c.Request.Context(), entry, nil, view)

	c.JSON(http.StatusOK, view)
}

// @Summary      Exclui definitivamente um Caso arquivado
// @Tags         Archive
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do arquivo"
// @Success      204
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/archive/{uuid} [delete]
func (ctrl *controllerImpl) Purge(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	before, err := ctrl.service.Purge(c.Request.Context(), id, middleware.ScopeFilter(c))

	entry := middleware.AuditEntry(c, module, "delete", "archive.Purge")
	entry.EntityType = "archived_case"
	entry.EntityID = id.String()
	entry.Success = err == nil
	if err != nil {
		auditoria_log.LogAsync(c.Request.Context(), entry)
		ctrl.fail(c, err)
		return
	}
	auditoria_log.Record(c.Request.Context(), entry, toAudit(before), nil)
	c.Status(http.StatusNoContent)
}

func (ctrl *controllerImpl) fail(c *gin.Context, err error) {
	trace := middleware.TraceID(c)
	var restErr *rest_err.RestErr
	switch {
	case errors.Is(err, ErrNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Caso arquivado não encontrado.")
	case errors.Is(err, ErrCaseNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Caso não encontrado.")
	case errors.Is(err, ErrNumeroReused):
		restErr = rest_err.NewConflictValidationError(trace, "O número do caso já está em uso por outro caso.", nil)
	default:
		slog.Error("erro inesperado no módulo de arquivo", slog.String("component", "ARCHIVE"), slog.Any("error", err))
		restErr = rest_err.NewInternalServerError(trace, "Erro interno do servidor.", nil)
	}
	c.JSON(restErr.Code, restErr)
}

func pathUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		restErr := rest_err.NewBadRequestError(middleware.TraceID(c), "UUID inválido no caminho da requisição.")
		c.JSON(restErr.Code, restErr)
		return uuid.Nil, false
	}
	return id, true
}
