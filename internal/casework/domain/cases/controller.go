package cases

import (
	"errors"
	"log/slog"
	"net/http"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/casework/scoring"
	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/pkg/log/auditoria_log"
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/rest_err"
	"case-management-system/internal/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const module = "cases"

type Controller interface {
	Routes(routes gin.IRouter)
	Create(c *gin.Context)
	Read(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Stats(c *gin.Context)
	Preview(c *gin.Context)
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
	group := routes.Group("/cases", mw.SetContextAutorization())
	{
		group.GET("/stats", mw.RequirePermission(module, "read"), ctrl.Stats)
		group.POST("/score/preview", mw.RequireAny(permission.Name(module, "create"), permission.Name(module, "update")), ctrl.Preview)
		group.POST("", mw.RequirePermission(module, "create"), ctrl.Create)
		group.GET("", mw.RequirePermission(module, "read"), ctrl.List)
		group.GET("/:uuid", mw.RequirePermission(module, "read"), ctrl.Read)
		group.PATCH("/:uuid", mw.RequirePermission(module, "update"), ctrl.Update)
		group.DELETE("/:uuid", mw.RequirePermission(module, "delete"), ctrl.Delete)
	}
}

func (ctrl *controllerImpl) logAudit(c *gin.Context, action, function, entityID string, success bool, input interface{}, before, after *model.Case) {
	entry := middleware.AuditEntry(c, module, action, function)
	entry.EntityType = "case"
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

// @Summary      Cria um Caso
// @Description  A pontuação e a classificação são calculadas a partir dos cinco critérios.
// @Tags         Case
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCaseRequestDto true "Dados do caso"
// @Success      201  {object}  CaseResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      409  {object}  rest_err.RestErr  "Número de caso já utilizado"
// @Router       /api/cases [post]
func (ctrl *controllerImpl) Create(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req CreateCaseRequestDto
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
	created, err := ctrl.service.Create(c.Request.Context(), model.Case{
		NumeroCaso:    req.NumeroCaso,
		Descripcion:   req.Descripcion,
		Fecha:         fecha,
		Aplicacion:    req.Aplicacion,
		Estado:        model.Estado(req.Estado),
		Observaciones: req.Observaciones,
		OwnerUUID:     owner,
		TeamUUID:      team,
	}, toCriteria(req.CriteriaRequestDto))
	if err != nil {
		ctrl.logAudit(c, "create", "cases.Create", "", false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "create", "cases.Create", created.UUID.String(), true, req, nil, &created)
	c.JSON(http.StatusCreated, ToResponse(created))
}

// @Summary      Busca um Caso
// @Tags         Case
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do caso"
// @Success      200  {object}  CaseResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/cases/{uuid} [get]
func (ctrl *controllerImpl) Read(c *gin.Context) {
	id, ok := pathUUID(c, "uuid")
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

// @Summary      Lista Casos
// @Tags         Case
// @Produce      json
// @Security     BearerAuth
// @Param        page           query  int     false  "Página"
// @Param        size           query  int     false  "Itens por página (máximo 100)"
// @Param        estado         query  string  false  "Estado"
// @Param        clasificacion  query  string  false  "Classificação"
// @Param        aplicacion     query  string  false  "Aplicação"
// @Param        search         query  string  false  "Trecho do número, descrição ou observações"
// @Param        fecha_desde    query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        fecha_hasta    query  string  false  "Data final (AAAA-MM-DD)"
// @Success      200  {object}  pagination.Response[CaseResponseDto]
// @Failure      400  {object}  rest_err.RestErr
// @Router       /api/cases [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req ListCaseRequestDto
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

	found, total, err := ctrl.service.List(c.Request.Context(), ListFilter{
		Estado:        model.Estado(req.Estado),
		Clasificacion: scoring.Classification(req.Clasificacion),
		Aplicacion:    req.Aplicacion,
		Search:        req.Search,
		FechaDesde:    desde,
		FechaHasta:    hasta,
		Page:          page,
	}, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	items := make([]CaseResponseDto, 0, len(found))
	for _, item := range found {
		items = append(items, ToResponse(item))
	}
	c.JSON(http.StatusOK, pagination.NewResponse(items, page, total))
}

// @Summary      Atualiza um Caso
// @Description  A pontuação só é recalculada quando algum critério é enviado.
// @Tags         Case
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string                true  "UUID do caso"
// @Param        request  body  UpdateCaseRequestDto  true  "Campos a alterar"
// @Success      200  {object}  CaseResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Failure      409  {object}  rest_err.RestErr
// @Router       /api/cases/{uuid} [patch]
func (ctrl *controllerImpl) Update(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	var req UpdateCaseRequestDto
	if restErr := validation.BindJSON(c, updateRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	patch := Patch{
		NumeroCaso:          req.NumeroCaso,
		Descripcion:         req.Descripcion,
		Aplicacion:          req.Aplicacion,
		Observaciones:       req.Observaciones,
		HistorialCaso:       req.HistorialCaso,
		ConocimientoModulo:  req.ConocimientoModulo,
		ManipulacionDatos:   req.ManipulacionDatos,
		ClaridadDescripcion: req.ClaridadDescripcion,
		CausaFallo:          req.CausaFallo,
	}
	if req.Fecha != nil {
		fecha, err := model.ParseDate(*req.Fecha)
		if err != nil {
			ctrl.fail(c, ErrInvalidInput)
			return
		}
		patch.Fecha = &fecha
	}
	if req.Estado != nil {
		estado := model.Estado(*req.Estado)
		patch.Estado = &estado
	}

	before, after, err := ctrl.service.Update(c.Request.Context(), id, patch, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAudit(c, "update", "cases.Update", id.String(), false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "update", "cases.Update", id.String(), true, req, &before, &after)
	c.JSON(http.StatusOK, ToResponse(after))
}

// @Summary      Remove um Caso
// @Tags         Case
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do caso"
// @Success      204
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/cases/{uuid} [delete]
func (ctrl *controllerImpl) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	before, err := ctrl.service.Delete(c.Request.Context(), id, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAudit(c, "delete", "cases.Delete", id.String(), false, nil, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "delete", "cases.Delete", id.String(), true, nil, &before, nil)
	c.Status(http.StatusNoContent)
}

// @Summary      Estatísticas dos Casos
// @Description  Contagens por classificação e por estado dentro do escopo do usuário.
// @Tags         Case
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatsResponseDto
// @Router       /api/cases/stats [get]
func (ctrl *controllerImpl) Stats(c *gin.Context) {
	stats, err := ctrl.service.Stats(c.Request.Context(), middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, StatsResponseDto{
		Total:             stats.Total,
		AveragePuntuacion: stats.AveragePuntuacion,
		ByClasificacion:   stats.ByClasificacion,
		ByEstado:          stats.ByEstado,
	})
}

// @Summary      Simula a pontuação
// @Description  Calcula pontuação e classificação sem gravar nada.
// @Tags         Case
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CriteriaRequestDto true "Critérios"
// @Success      200  {object}  scoring.Result
// @Failure      400  {object}  rest_err.RestErr
// @Router       /api/cases/score/preview [post]
func (ctrl *controllerImpl) Preview(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req CriteriaRequestDto
	if restErr := validation.BindJSON(c, criteriaRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}
	result, err := ctrl.service.Preview(toCriteria(req))
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ctrl *controllerImpl) fail(c *gin.Context, err error) {
	trace := middleware.TraceID(c)
	var restErr *rest_err.RestErr
	switch {
	case errors.Is(err, ErrNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Caso não encontrado.")
	case errors.Is(err, ErrNumeroDuplicated):
		restErr = rest_err.NewConflictValidationError(trace, "Número de caso já utilizado.", nil)
	case errors.Is(err, ErrInvalidCriteria):
		restErr = rest_err.NewBadRequestError(trace, "Os critérios devem estar entre 1 e 3.")
	case errors.Is(err, ErrInvalidEstado):
		restErr = rest_err.NewBadRequestError(trace, "Estado de caso inválido.")
	case errors.Is(err, ErrInvalidDateRange):
		restErr = rest_err.NewBadRequestError(trace, "fecha_desde não pode ser posterior a fecha_hasta.")
	case errors.Is(err, ErrInvalidInput):
		restErr = rest_err.NewBadRequestError(trace, "Dados de entrada inválidos.")
	default:
		slog.Error("erro inesperado no módulo de casos", slog.String("component", "CASES"), slog.Any("error", err))
		restErr = rest_err.NewInternalServerError(trace, "Erro interno do servidor.", nil)
	}
	c.JSON(restErr.Code, restErr)
}

func toCriteria(req CriteriaRequestDto) scoring.Criteria {
	return scoring.Criteria{
		HistorialCaso:       req.HistorialCaso,
		ConocimientoModulo:  req.ConocimientoModulo,
		ManipulacionDatos:   req.ManipulacionDatos,
		ClaridadDescripcion: req.ClaridadDescripcion,
		CausaFallo:          req.CausaFallo,
	}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		restErr := rest_err.NewBadRequestError(middleware.TraceID(c), "UUID inválido no caminho da requisição.")
		c.JSON(restErr.Code, restErr)
		return uuid.Nil, false
	}
	return id, true
}
