package user

import (
	"errors"
	"log/slog"
	"net/http"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/pkg/log/auditoria_log"
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/rest_err"
	"case-management-system/internal/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const module = "users"

type Controller interface {
	Routes(routes gin.IRouter)
	Create(c *gin.Context)
	Read(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	SetStatus(c *gin.Context)
	Delete(c *gin.Context)
}

type controllerImpl struct {
	Service    Service
	Middleware middleware.Middleware
}

func NewController(service Service, mw middleware.Middleware) Controller {
	return &controllerImpl{
		Service:    service,
		Middleware: mw,
	}
}

func (ctrl *controllerImpl) Routes(routes gin.IRouter) {
	mw := ctrl.Middleware
	userGroup := routes.Group("/users", mw.SetContextAutorization())
	{
		userGroup.POST("", mw.RequirePermission(module, "create"), ctrl.Create)
		userGroup.GET("", mw.RequirePermission(module, "read"), ctrl.List)
		userGroup.GET("/:uuid", mw.RequirePermission(module, "read"), ctrl.Read)
		userGroup.PATCH("/:uuid", mw.RequirePermission(module, "update"), ctrl.Update)
		userGroup.PATCH("/:uuid/status", mw.RequirePermission(module, "update"), ctrl.SetStatus)
		userGroup.DELETE("/:uuid", mw.RequirePermission(module, "delete"), ctrl.Delete)
	}
}

// @Summary      Cria um novo Usuário
// @Description  Registra um usuário com papel obrigatório e equipe opcional. A senha é armazenada com argon2id.
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateUserRequestDto true "Dados do usuário"
// @Success      201  {object}  UserResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr  "Papel ou equipe não encontrado"
// @Failure      409  {object}  rest_err.RestErr  "E-mail já cadastrado"
// @Failure      500  {object}  rest_err.RestErr
// @Router       /api/users [post]
func (ctrl *controllerImpl) Create(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req CreateUserRequestDto
	if restErr := validation.BindJSON(c, createRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	newUser := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleUUID: uuid.MustParse(req.RoleUUID),
	}
	if req.TeamUUID != "" {
		team := uuid.MustParse(req.TeamUUID)
		newUser.TeamUUID = &team
	}

	created, err := ctrl.Service.Create(c.Request.Context(), newUser)
	if err != nil {
		ctrl.audit(c, "create", "user.Create", "", false, req.Email, nil, nil)
		restErr := toRestErr(trace, err)
		c.JSON(restErr.Code, restErr)
		return
	}

	response := ToResponse(created)
	ctrl.audit(c, "create", "user.Create", created.UUID.String(), true, req.Email, nil, &created)
	c.JSON(http.StatusCreated, response)
}

// @Summary      Busca um Usuário
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do usuário"
// @Success      200  {object}  UserResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Failure      500  {object}  rest_err.RestErr
// @Router       /api/users/{uuid} [get]
func (ctrl *controllerImpl) Read(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	found, err := ctrl.Service.Read(c.Request.Context(), id, middleware.ScopeFilter(c))
	if err != nil {
		restErr := toRestErr(trace, err)
		c.JSON(restErr.Code, restErr)
		return
	}
	c.JSON(http.StatusOK, ToResponse(found))
}

// @Summary      Lista Usuários
// @Description  Lista paginada restrita ao escopo da permissão users:read.
// @Tags         User
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "Página (padrão 1)"
// @Param        size       query  int     false  "Itens por página (padrão 10, máximo 100)"
// @Param        search     query  string  false  "Trecho do nome ou e-mail"
// @Param        role_uuid  query  string  false  "Filtra por papel"
// @Param        team_uuid  query  string  false  "Filtra por equipe"
// @Param        live       query  bool    false  "Filtra por situação"
// @Success      200  {object}  pagination.Response[UserResponseDto]
// @Failure      400  {object}  rest_err.RestErr
// @Failure      500  {object}  rest_err.RestErr
// @Router       /api/users [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req ListUserRequestDto
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

	filter := ListFilter{Search: req.Search, Live: req.Live, Page: page}
	if req.RoleUUID != "" {
		id := uuid.MustParse(req.RoleUUID)
		filter.RoleUUID = &id
	}
	if req.TeamUUID != "" {
		id := uuid.MustParse(req.TeamUUID)
		filter.TeamUUID = &id
	}

	users, total, err := ctrl.Service.List(c.Request.Context(), filter, middleware.ScopeFilter(c))
	if err != nil {
		restErr := toRestErr(trace, err)
		c.JSON(restErr.Code, restErr)
		return
	}

	items := make([]UserResponseDto, 0, len(users))
	for _, u := range users {
		items = append(items, ToResponse(u))
	}
	c.JSON(http.StatusOK, pagination.NewResponse(items, page, total))
}

// @Summary      Atualiza um Usuário
// @Description  Atualização parcial. Envie team_uuid vazio para remover o usuário da equipe.
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string                true  "UUID do usuário"
// @Param        request  body  UpdateUserRequestDto  true  "Campos a alterar"
// @Success      200  {object}  UserResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Failure      409  {object}  rest_err.RestErr
// @Failure      500  {object}  rest_err.RestErr
// @Router       /api/users/{uuid} [patch]
func (ctrl *controllerImpl) Update(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	var req UpdateUserRequestDto
	if restErr := validation.BindJSON(c, updateRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	patch := Patch{Name: req.Name, Email: req.Email, Password: req.Password}
	if req.RoleUUID != nil && *req.RoleUUID != "" {
		role := uuid.MustParse(*req.RoleUUID)
		patch.RoleUUID = &role
	}
	if req.TeamUUID != nil {
		if *req.TeamUUID == "" {
			patch.ClearTeam = true
		} else {
			team := uuid.MustParse(*req.TeamUUID)
			patch.TeamUUID = &team
		}
	}

	before, after, err := ctrl.Service.Update(c.Request.Context(), id, patch, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.audit(c, "update", "user.Update", id.String(), false, "", nil, nil)
		restErr := toRestErr(trace, err)
		c.JSON(restErr.Code, restErr)
		return
	}

	ctrl.audit(c, "update", "user.Update", id.String(), true, "", &before, &after)
	c.JSON(http.StatusOK, ToResponse(after))
}

// @Summary      Ativa ou desativa um Usuário
// @Tags         User
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string                true  "UUID do usuário"
// @Param        request  body  StatusUserRequestDto  true  "Nova situação"
// @Success      200  {object}  UserResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Failure      500  {object}  rest_err.RestErr
// @Router       /api/users/{uuid}/status [patch]
func (ctrl *controllerImpl) SetStatus(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	var req StatusUserRequestDto
	if err := c.ShouldBindJSON(&req); err != nil || req.Live == nil {
		restErr := rest_err.NewBadRequestValidationError(trace, "Dados de entrada inválidos.",
			[]rest_err.Causes{rest_err.NewCause("live", "campo obrigatório")})
		c.JSON(restErr.Code, restErr)
		return
	}

	before, after, err := ctrl.Service.SetStatus(c.Request.Context(), id, *req.Live, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.audit(c, "update", "user.SetStatus", id.String(), false, "", nil, nil)
		restErr := toRestErr(trace, err)
		c.JSON(restErr.Code, restErr)
		return
	}

	ctrl.audit(c, "update", "user.SetStatus", id.String(), true, "", &before, &after)
	c.JSON(http.StatusOK, ToResponse(after))
}

// @Summary      Remove um Usuário
// @Tags         User
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do usuário"
// @Success      204
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Failure      409  {object}  rest_err.RestErr  "Usuário referenciado por outros registros"
// @Failure      500  {object}  rest_err.RestErr
// @Router       /api/users/{uuid} [delete]
func (ctrl *controllerImpl) Delete(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	before, err := ctrl.Service.Delete(c.Request.Context(), id, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.audit(c, "delete", "user.Delete", id.String(), false, "", nil, nil)
		restErr := toRestErr(trace, err)
		c.JSON(restErr.Code, restErr)
		return
	}

	ctrl.audit(c, "delete", "user.Delete", id.String(), true, "", &before, nil)
	c.Status(http.StatusNoContent)
}

func (ctrl *controllerImpl) audit(c *gin.Context, action, function, entityID string, success bool, input string, before, after *model.User) {
	entry := middleware.AuditEntry(c, module, action, function)
	entry.EntityType = "user"
	entry.EntityID = entityID
	entry.Success = success
	entry.InputData = input
	if after != nil {
		entry.OutputData = auditoria_log.SerializeData(ToResponse(*after))
	}
	auditoria_log.Record(c.Request.Context(), entry, toAudit(before), toAudit(after))
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

func toRestErr(trace *string, err error) *rest_err.RestErr {
	switch {
	case errors.Is(err, ErrNotFound):
		return rest_err.NewNotFoundError(trace, "Usuário não encontrado.")
	case errors.Is(err, ErrRoleNotFound):
		return rest_err.NewNotFoundError(trace, "Papel não encontrado.")
	case errors.Is(err, ErrTeamNotFound):
		return rest_err.NewNotFoundError(trace, "Equipe não encontrada.")
	case errors.Is(err, ErrEmailDuplicated):
		return rest_err.NewConflictValidationError(trace, "E-mail já cadastrado.", nil)
	case errors.Is(err, ErrInUse):
		return rest_err.NewConflictValidationError(trace, "Usuário possui registros vinculados.", nil)
	case errors.Is(err, ErrSelfDeactivate):
		return rest_err.NewBadRequestError(trace, "Não é possível desativar o próprio usuário.")
	case errors.Is(err, ErrInvalidInput):
		return rest_err.NewBadRequestError(trace, "Dados de entrada inválidos.")
	default:
		slog.Error("erro inesperado no módulo de usuários", slog.String("component", "USER"), slog.Any("error", err))
		return rest_err.NewInternalServerError(trace, "Erro interno do servidor.", nil)
	}
}
