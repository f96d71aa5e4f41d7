package todo

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

const module = "todos"

type Controller interface {
	Routes(routes gin.IRouter)
	Create(c *gin.Context)
	Read(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Toggle(c *gin.Context)
	Delete(c *gin.Context)
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
	group := routes.Group("/todos", mw.SetContextAutorization())
	{
		group.POST("", mw.RequirePermission(module, "create"), ctrl.Create)
		group.GET("", mw.RequirePermission(module, "read"), ctrl.List)
		group.GET("/:uuid", mw.RequirePermission(module, "read"), ctrl.Read)
		group.PATCH("/:uuid", mw.RequirePermission(module, "update"), ctrl.Update)
		group.PATCH("/:uuid/toggle", mw.RequirePermission(module, "update"), ctrl.Toggle)
		group.DELETE("/:uuid", mw.RequirePermission(module, "delete"), ctrl.Delete)
	}
}

func (ctrl *controllerImpl) logAudit(c *gin.Context, action, function, entityID string, success bool, input interface{}, before, after *model.Todo) {
	entry := middleware.AuditEntry(c, module, action, function)
	entry.EntityType = "todo"
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

// @Summary      Cria uma Tarefa
// @Tags         Todo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTodoRequestDto true "Dados da tarefa"
// @Success      201  {object}  TodoResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr  "Caso vinculado não encontrado"
// @Router       /api/todos [post]
func (ctrl *controllerImpl) Create(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req CreateTodoRequestDto
	if restErr := validation.BindJSON(c, createRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}
	due, err := model.ParseOptionalDate(req.DueDate)
	if err != nil {
		ctrl.fail(c, ErrInvalidInput)
		return
	}

	owner, team := middleware.Actor(c)
	t := model.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		DueDate:     due,
		OwnerUUID:   owner,
		TeamUUID:    team,
	}
	if req.CaseUUID != "" {
		caseUUID := uuid.MustParse(req.CaseUUID)
		t.CaseUUID = &caseUUID
	}

	created, err := ctrl.service.Create(c.Request.Context(), t)
	if err != nil {
		ctrl.logAudit(c, "create", "todo.Create", "", false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "create", "todo.Create", created.UUID.String(), true, req, nil, &created)
	c.JSON(http.StatusCreated, ToResponse(created))
}

// @Summary      Busca uma Tarefa
// @Tags         Todo
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID da tarefa"
// @Success      200  {object}  TodoResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/todos/{uuid} [get]
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

// @Summary      Lista Tarefas
// @Tags         Todo
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "Página"
// @Param        size       query  int     false  "Itens por página (máximo 100)"
// @Param        completed  query  bool    false  "Concluídas"
// @Param        priority   query  string  false  "baja, media ou alta"
// @Param        case_uuid  query  string  false  "Caso vinculado"
// @Success      200  {object}  pagination.Response[TodoResponseDto]
// @Failure      400  {object}  rest_err.RestErr
// @Router       /api/todos [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req ListTodoRequestDto
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

	filter := ListFilter{Completed: req.Completed, Priority: model.Priority(req.Priority), Page: page}
	if req.CaseUUID != "" {
		caseUUID := uuid.MustParse(req.CaseUUID)
		filter.CaseUUID = &caseUUID
	}

	found, total, err := ctrl.service.List(c.Request.Context(), filter, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	items := make([]TodoResponseDto, 0, len(found))
	for _, item := range found {
		items = append(items, ToResponse(item))
	}
	c.JSON(http.StatusOK, pagination.NewResponse(items, page, total))
}

// @Summary      Atualiza uma Tarefa
// @Tags         Todo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string                true  "UUID da tarefa"
// @Param        request  body  UpdateTodoRequestDto  true  "Campos a alterar"
// @Success      200  {object}  TodoResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/todos/{uuid} [patch]
func (ctrl *controllerImpl) Update(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	var req UpdateTodoRequestDto
	if restErr := validation.BindJSON(c, updateRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	patch := Patch{Title: req.Title, Description: req.Description, Completed: req.Completed}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.DueDate != nil {
		due, err := model.ParseOptionalDate(*req.DueDate)
		if err != nil {
			ctrl.fail(c, ErrInvalidInput)
			return
		}
		patch.DueDate = due
		patch.ClearDue = due == nil
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
		ctrl.logAudit(c, "update", "todo.Update", id.String(), false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "update", "todo.Update", id.String(), true, req, &before, &after)
	c.JSON(http.StatusOK, ToResponse(after))
}

// @Summary      Alterna a conclusão da Tarefa
// @Tags         Todo
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID da tarefa"
// @Success      200  {object}  TodoResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/todos/{uuid}/toggle [patch]
func (ctrl *controllerImpl) Toggle(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	before, after, err := ctrl.service.Toggle(c.Request.Context(), id, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAudit(c, "update", "todo.Toggle", id.String(), false, nil, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "update", "todo.Toggle", id.String(), true, nil, &before, &after)
	c.JSON(http.StatusOK, ToResponse(after))
}

// @Summary      Remove uma Tarefa
// @Tags         Todo
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID da tarefa"
// @Success      204
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/todos/{uuid} [delete]
func (ctrl *controllerImpl) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	before, err := ctrl.service.Delete(c.Request.Context(), id, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAudit(c, "delete", "todo.Delete", id.String(), false, nil, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "delete", "todo.Delete", id.String(), true, nil, &before, nil)
	c.Status(http.StatusNoContent)
}

func (ctrl *controllerImpl) fail(c *gin.Context, err error) {
	trace := middleware.TraceID(c)
	var restErr *rest_err.RestErr
	switch {
	case errors.Is(err, ErrNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Tarefa não encontrada.")
	case errors.Is(err, ErrCaseNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Caso vinculado não encontrado.")
	case errors.Is(err, ErrInvalidInput):
		restErr = rest_err.NewBadRequestError(trace, "Dados de entrada inválidos.")
	default:
		slog.Error("erro inesperado no módulo de tarefas", slog.String("component", "TODOS"), slog.Any("error", err))
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
