package disposition

import (
	"errors"
	"log/slog"
	"net/http"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/pkg/log/auditoria_log"
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/rest_err"
	"case-management-system/internal/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const module = "dispositions"

type Controller interface {
	Routes(routes gin.IRouter)
	Create(c *gin.Context)
	Read(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Summary(c *gin.Context)
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
	group := routes.Group("/dispositions", mw.SetContextAutorization())
	{
		group.GET("/summary", mw.RequirePermission(module, "read"), ctrl.Summary)
		group.POST("", mw.RequirePermission(module, "create"), ctrl.Create)
		group.GET("", mw.RequirePermission(module, "read"), ctrl.List)
		group.GET("/:uuid", mw.RequirePermission(module, "read"), ctrl.Read)
		group.PATCH("/:uuid", mw.RequirePermission(module, "update"), ctrl.Update)
		group.DELETE("/:uuid", mw.RequirePermission(module, "delete"), ctrl.Delete)
	}
}

func (ctrl *controllerImpl) logAudit(c *gin.Context, action, function, entityID string, success bool, input interface{}, before, after *model.Disposition) {
	entry := middleware.AuditEntry(c, module, action, function)
	entry.EntityType = "disposition"
	entry.EntityID = entityID
	entry.Success = success
	entry.InputData = auditoria_log.SerializeData(input)

	var b, a interface{}
	if before != nil {
		b = ToResponse(*before)
	}
	if after != nil {
		a = ToResponse(*after)
		entry.OutputData = auditoria_log.SerializeData(a)
	}
	auditoria_log.Record(c.Request.Context(), entry, b, a)
}

// @Summary      Registra uma Disposição
// @Tags         Disposition
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateDispositionRequestDto true "Dados da disposição"
// @Success      201  {object}  DispositionResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr  "Caso vinculado não encontrado"
// @Router       /api/dispositions [post]
func (ctrl *controllerImpl) Create(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req CreateDispositionRequestDto
	if restErr := validation.BindJSON(c, createRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}
	fecha, err := model.ParseDate(req.Fecha)
	if err != nil {
		ctrl.fail(c, ErrInvalidInput)
		return
	}

	owner, team := middleware.Actor(c)
	d := model.Disposition{
		NumeroCaso:    req.NumeroCaso,
		NombreScript:  req.NombreScript,
		Fecha:         fecha,
		Aplicacion:    req.Aplicacion,
		Observaciones: req.Observaciones,
		OwnerUUID:     owner,
		TeamUUID:      team,
	}
	if req.CaseUUID != "" {
		caseUUID := uuid.MustParse(req.CaseUUID)
		d.CaseUUID = &caseUUID
	}

	created, err := ctrl.service.Create(c.Request.Context(), d)
	if err != nil {
		ctrl.logAudit(c, "create", "disposition.Create", "", false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "create", "disposition.Create", created.UUID.String(), true, req, nil, &created)
	c.JSON(http.StatusCreated, ToResponse(created))
}

// @Summary      Busca uma Disposição
// @Tags         Disposition
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID da disposição"
// @Success      200  {object}  DispositionResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/dispositions/{uuid} [get]
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
	c.JSON(http.StatusOK, ToResponse(found))
}

// @Summary      Lista Disposições
// @Tags         Disposition
// @Produce      json
// @Security     BearerAuth
// @Param        page         query  int     false  "Página"
// @Param        size         query  int     false  "Itens por página (máximo 100)"
// @Param        search       query  string  false  "Trecho do número do caso ou do script"
// @Param        aplicacion   query  string  false  "Aplicação"
// @Param        case_uuid    query  string  false  "Caso vinculado"
// @Param        fecha_desde  query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        fecha_hasta  query  string  false  "Data final (AAAA-MM-DD)"
// @Success      200  {object}  pagination.Response[DispositionResponseDto]
// @Failure      400  {object}  rest_err.RestErr
// @Router       /api/dispositions [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req ListDispositionRequestDto
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
	desde, errDesde := model.ParseOptionalDate(req.FechaDesde)
	hasta, errHasta := model.ParseOptionalDate(req.FechaHasta)
	if errDesde != nil || errHasta != nil {
		restErr := rest_err.NewBadRequestError(trace, "Data inválida, formato esperado: AAAA-MM-DD.")
		c.JSON(restErr.Code, restErr)
		return
	}

	filter := ListFilter{Search: req.Search, Aplicacion: req.Aplicacion, FechaDesde: desde, FechaHasta: hasta, Page: page}
	if req.CaseUUID != "" {
		caseUUID := uuid.MustParse(req.CaseUUID)
		filter.CaseUUID = &caseUUID
	}

	found, total, err := ctrl.service.List(c.Request.Context(), filter, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	items := make([]DispositionResponseDto, 0, len(found))
	for _, item := range found {
		items = append(items, ToResponse(item))
	}
	c.JSON(http.StatusOK, pagination.NewResponse(items, page, total))
}

// @Summary      Atualiza uma Disposição
// @Tags         Disposition
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string                       true  "UUID da disposição"
// @Param        request  body  UpdateDispositionRequestDto  true  "Campos a alterar"
// @Success      200  {object}  DispositionResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/dispositions/{uuid} [patch]
func (ctrl *controllerImpl) Update(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	var req UpdateDispositionRequestDto
	if restErr := validation.BindJSON(c, updateRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	patch := Patch{
		NumeroCaso:    req.NumeroCaso,
		NombreScript:  req.NombreScript,
		Aplicacion:    req.Aplicacion,
		Observaciones: req.Observaciones,
	}
	if req.Fecha != nil {
		fecha, err := model.ParseDate(*req.Fecha)
		if err != nil {
			ctrl.fail(c, ErrInvalidInput)
			return
		}
		patch.Fecha = &fecha
	}
	if req.CaseUUID != nil {
		if *req.CaseUUID == "" {
			patch.ClearCase = true
		} else {
			caseUUID := uuid.MustParse(*req.CaseUUID)
			patch.CaseUUID = &caseUUID
		}
	}

	before, after, err := ctrl.service.Update(c.Request.Context(), id, patch, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAudit(c, "update", "disposition.Update", id.String(), false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "update", "disposition.Update", id.String(), true, req, &before, &after)
	c.JSON(http.StatusOK, ToResponse(after))
}

// @Summary      Remove uma Disposição
// @Tags         Disposition
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID da disposição"
// @Success      204
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/dispositions/{uuid} [delete]
func (ctrl *controllerImpl) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	before, err := ctrl.service.Delete(c.Request.Context(), id, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAudit(c, "delete", "disposition.Delete", id.String(), false, nil, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "delete", "disposition.Delete", id.String(), true, nil, &before, nil)
	c.Status(http.StatusNoContent)
}

// @Summary      Resumo mensal de Disposições
// @Description  Total de disposições por mês no ano informado (padrão: ano corrente).
// @Tags         Disposition
// @Produce      json
// @Security     BearerAuth
// @Param        year  query  int  false  "Ano"
// @Success      200  {object}  SummaryResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Router       /api/dispositions/summary [get]
func (ctrl *controllerImpl) Summary(c *gin.Context) {
	var req SummaryRequestDto
	if err := c.ShouldBindQuery(&req); err != nil {
		ctrl.fail(c, ErrInvalidYear)
		return
	}

	summary, err := ctrl.service.Summary(c.Request.Context(), req.Year, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	months := make([]MonthCountDto, 0, len(summary.Months))
	for i, total := range summary.Months {
		months = append(months, MonthCountDto{Month: i + 1, Total: total})
	}
	c.JSON(http.StatusOK, SummaryResponseDto{Year: summary.Year, Total: summary.Total, Months: months})
}

func (ctrl *controllerImpl) fail(c *gin.Context, err error) {
	trace := middleware.TraceID(c)
	var restErr *rest_err.RestErr
	switch {
	case errors.Is(err, ErrNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Disposição não encontrada.")
	case errors.Is(err, ErrCaseNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Caso vinculado não encontrado.")
	case errors.Is(err, ErrInvalidYear):
		restErr = rest_err.NewBadRequestError(trace, "Ano inválido.")
	case errors.Is(err, ErrInvalidDateRange):
		restErr = rest_err.NewBadRequestError(trace, "fecha_desde não pode ser posterior a fecha_hasta.")
	case errors.Is(err, ErrInvalidInput):
		restErr = rest_err.NewBadRequestError(trace, "Dados de entrada inválidos.")
	default:
		slog.Error("erro inesperado no módulo de disposições", slog.String("component", "DISPOSITIONS"), slog.Any("error", err))
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
