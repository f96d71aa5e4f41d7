package team

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

const module = "teams"

// Controller interface define os métodos do controller de equipes
type Controller interface {
	Routes(routes gin.IRouter)
	Create(c *gin.Context)
	Read(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Members(c *gin.Context)
	AddMember(c *gin.Context)
	RemoveMember(c *gin.Context)
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
	group := routes.Group("/teams", mw.SetContextAutorization())
	{
		group.POST("", mw.RequirePermission(module, "create"), ctrl.Create)
		group.GET("", mw.RequirePermission(module, "read"), ctrl.List)
		group.GET("/:uuid", mw.RequirePermission(module, "read"), ctrl.Read)
		group.PATCH("/:uuid", mw.RequirePermission(module, "update"), ctrl.Update)
		group.DELETE("/:uuid", mw.RequirePermission(module, "delete"), ctrl.Delete)
		group.GET("/:uuid/members", mw.RequirePermission(module, "read"), ctrl.Members)
		group.POST("/:uuid/members", mw.RequirePermission(module, "update"), ctrl.AddMember)
		group.DELETE("/:uuid/members/:user_uuid", mw.RequirePermission(module, "update"), ctrl.RemoveMember)
	}
}

func (ctrl *controllerImpl) logAudit(c *gin.Context, action, function, entityID string, success bool, input interface{}, before, after *model.Team) {
	entry := middleware.AuditEntry(c, module, action, function)
	entry.EntityType = "team"
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

// @Summary      Cria uma Equipe
// @Tags         Team
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTeamRequestDto true "Dados da equipe"
// @Success      201  {object}  TeamResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      409  {object}  rest_err.RestErr  "Código já utilizado"
// @Failure      500  {object}  rest_err.RestErr
// @Router       /api/teams [post]
func (ctrl *controllerImpl) Create(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req CreateTeamRequestDto
	if restErr := validation.BindJSON(c, createRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	created, err := ctrl.service.Create(c.Request.Context(), model.Team{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		ctrl.logAudit(c, "create", "team.Create", "", false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "create", "team.Create", created.UUID.String(), true, req, nil, &created)
	c.JSON(http.StatusCreated, ToResponse(created))
}

// @Summary      Busca uma Equipe
// @Tags         Team
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID da equipe"
// @Success      200  {object}  TeamResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/teams/{uuid} [get]
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

// @Summary      Lista Equipes
// @Tags         Team
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Página"
// @Param        size    query  int     false  "Itens por página (máximo 100)"
// @Param        search  query  string  false  "Trecho do código ou nome"
// @Success      200  {object}  pagination.Response[TeamResponseDto]
// @Failure      400  {object}  rest_err.RestErr
// @Router       /api/teams [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req ListTeamRequestDto
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

	teams, total, err := ctrl.service.List(c.Request.Context(), req.Search, page, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	items := make([]TeamResponseDto, 0, len(teams))
	for _, t := range teams {
		items = append(items, ToResponse(t))
	}
	c.JSON(http.StatusOK, pagination.NewResponse(items, page, total))
}

// @Summary      Atualiza uma Equipe
// @Tags         Team
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string                true  "UUID da equipe"
// @Param        request  body  UpdateTeamRequestDto  true  "Campos a alterar"
// @Success      200  {object}  TeamResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Failure      409  {object}  rest_err.RestErr
// @Router       /api/teams/{uuid} [patch]
func (ctrl *controllerImpl) Update(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	var req UpdateTeamRequestDto
	if restErr := validation.BindJSON(c, updateRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	before, after, err := ctrl.service.Update(c.Request.Context(), id, Patch{
		Code: req.Code, Name: req.Name, Description: req.Description, Live: req.Live,
	}, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAudit(c, "update", "team.Update", id.String(), false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "update", "team.Update", id.String(), true, req, &before, &after)
	c.JSON(http.StatusOK, ToResponse(after))
}

// @Summary      Remove uma Equipe
// @Description  Apenas equipes sem membros podem ser removidas.
// @Tags         Team
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID da equipe"
// @Success      204
// @Failure      404  {object}  rest_err.RestErr
// @Failure      409  {object}  rest_err.RestErr  "Equipe possui membros"
// @Router       /api/teams/{uuid} [delete]
func (ctrl *controllerImpl) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	before, err := ctrl.service.Delete(c.Request.Context(), id, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAudit(c, "delete", "team.Delete", id.String(), false, nil, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "delete", "team.Delete", id.String(), true, nil, &before, nil)
	c.Status(http.StatusNoContent)
}

// @Summary      Lista os membros da Equipe
// @Tags         Team
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID da equipe"
// @Success      200  {array}   MemberResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/teams/{uuid}/members [get]
func (ctrl *controllerImpl) Members(c *gin.Context) {
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	users, err := ctrl.service.Members(c.Request.Context(), id, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	items := make([]MemberResponseDto, 0, len(users))
	for _, u := range users {
		items = append(items, toMember(u))
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Adiciona um membro à Equipe
// @Description  Move o usuário para esta equipe (um usuário pertence a no máximo uma equipe).
// @Tags         Team
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string               true  "UUID da equipe"
// @Param        request  body  AddMemberRequestDto  true  "Usuário"
// @Success      200  {object}  MemberResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/teams/{uuid}/members [post]
func (ctrl *controllerImpl) AddMember(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	var req AddMemberRequestDto
	if restErr := validation.BindJSON(c, memberRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}
	userUUID := uuid.MustParse(req.UserUUID)

	u, err := ctrl.service.AddMember(c.Request.Context(), id, userUUID, middleware.ScopeFilter(c))
	entry := middleware.AuditEntry(c, module, "update", "team.AddMember")
	entry.EntityType = "team_member"
	entry.EntityID = id.String()
	entry.Success = err == nil
	entry.InputData = auditoria_log.SerializeData(req)
	if err != nil {
		auditoria_log.LogAsync(c.Request.Context(), entry)
		ctrl.fail(c, err)
		return
	}
	auditoria_log.Record(c.Request.Context(), entry, nil, map[string]interface{}{"user_uuid": userUUID.String()})
	c.JSON(http.StatusOK, toMember(u))
}

// @Summary      Remove um membro da Equipe
// @Tags         Team
// @Security     BearerAuth
// @Param        uuid       path  string  true  "UUID da equipe"
// @Param        user_uuid  path  string  true  "UUID do usuário"
// @Success      204
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/teams/{uuid}/members/{user_uuid} [delete]
func (ctrl *controllerImpl) RemoveMember(c *gin.Context) {
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}
	userUUID, ok := pathUUID(c, "user_uuid")
	if !ok {
		return
	}

	err := ctrl.service.RemoveMember(c.Request.Context(), id, userUUID, middleware.ScopeFilter(c))
	entry := middleware.AuditEntry(c, module, "update", "team.RemoveMember")
	entry.EntityType = "team_member"
	entry.EntityID = id.String()
	entry.Success = err == nil
	if err != nil {
		auditoria_log.LogAsync(c.Request.Context(), entry)
		ctrl.fail(c, err)
		return
	}
	auditoria_log.Record(c.Request.Context(), entry, map[string]interface{}{"user_uuid": userUUID.String()}, nil)
	c.Status(http.StatusNoContent)
}

func (ctrl *controllerImpl) fail(c *gin.Context, err error) {
	trace := middleware.TraceID(c)
	var restErr *rest_err.RestErr
	switch {
	case errors.Is(err, ErrNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Equipe não encontrada.")
	case errors.Is(err, ErrUserNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Usuário não encontrado.")
	case errors.Is(err, ErrNotMember):
		restErr = rest_err.NewNotFoundError(trace, "Usuário não pertence à equipe.")
	case errors.Is(err, ErrCodeDuplicated):
		restErr = rest_err.NewConflictValidationError(trace, "Código de equipe já utilizado.", nil)
	case errors.Is(err, ErrHasMembers):
		restErr = rest_err.NewConflictValidationError(trace, "A equipe possui membros e não pode ser removida.", nil)
	case errors.Is(err, ErrInvalidInput):
		restErr = rest_err.NewBadRequestError(trace, "Dados de entrada inválidos.")
	default:
		slog.Error("erro inesperado no módulo de equipes", slog.String("component", "TEAM"), slog.Any("error", err))
		restErr = rest_err.NewInternalServerError(trace, "Erro interno do servidor.", nil)
	}
	c.JSON(restErr.Code, restErr)
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
