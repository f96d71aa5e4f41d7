package role

import (
	"errors"
	"log/slog"
	"net/http"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/pkg/log/auditoria_log"
	"case-management-system/internal/pkg/rest_err"
	"case-management-system/internal/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const module = "roles"

type Controller interface {
	Routes(routes gin.IRouter)
	Catalogue(c *gin.Context)
	List(c *gin.Context)
	Read(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	ReplacePermissions(c *gin.Context)
	Delete(c *gin.Context)
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
	group := routes.Group("/roles", mw.SetContextAutorization())
	{
		group.GET("/permissions", mw.RequirePermission(module, "read"), ctrl.Catalogue)
		group.GET("", mw.RequirePermission(module, "read"), ctrl.List)
		group.GET("/:uuid", mw.RequirePermission(module, "read"), ctrl.Read)
		group.POST("", mw.RequirePermission(module, "create"), ctrl.Create)
		group.PATCH("/:uuid", mw.RequirePermission(module, "update"), ctrl.Update)
		group.PUT("/:uuid/permissions", mw.RequirePermission(module, "update"), ctrl.ReplacePermissions)
		group.DELETE("/:uuid", mw.RequirePermission(module, "delete"), ctrl.Delete)
	}
}

// @Summary      Catálogo de permissões
// @Tags         Role
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   PermissionResponseDto
// @Failure      500  {object}  rest_err.RestErr
// @Router       /api/roles/permissions [get]
func (ctrl *controllerImpl) Catalogue(c *gin.Context) {
	perms, err := ctrl.service.Catalogue(c.Request.Context())
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	items := make([]PermissionResponseDto, 0, len(perms))
	for _, p := range perms {
		items = append(items, toPermission(p))
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Lista Papéis com suas permissões
// @Tags         Role
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   RoleResponseDto
// @Failure      500  {object}  rest_err.RestErr
// @Router       /api/roles [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	roles, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	items := make([]RoleResponseDto, 0, len(roles))
	for _, r := range roles {
		items = append(items, ToResponse(r))
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Busca um Papel
// @Tags         Role
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do papel"
// @Success      200  {object}  RoleResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/roles/{uuid} [get]
func (ctrl *controllerImpl) Read(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	role, err := ctrl.service.Read(c.Request.Context(), id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(role))
}

// @Summary      Cria um Papel
// @Tags         Role
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreateRoleRequestDto  true  "Dados do papel"
// @Success      201  {object}  RoleResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr  "Permissão inexistente"
// @Failure      409  {object}  rest_err.RestErr
// @Router       /api/roles [post]
func (ctrl *controllerImpl) Create(c *gin.Context) {
	var req CreateRoleRequestDto
	if restErr := validation.BindJSON(c, createRules, &req, middleware.TraceID(c)); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	created, err := ctrl.service.Create(c.Request.Context(),
		model.Role{Name: req.Name, Description: req.Description}, parseUUIDs(req.PermissionUUIDs))
	if err != nil {
		ctrl.audit(c, "create", "role.Create", "", false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.audit(c, "create", "role.Create", created.UUID.String(), true, req, nil, &created)
	c.JSON(http.StatusCreated, ToResponse(created))
}

// @Summary      Atualiza nome e descrição de um Papel
// @Description  Papéis de sistema não podem ser renomeados.
// @Tags         Role
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string                true  "UUID do papel"
// @Param        request  body  UpdateRoleRequestDto  true  "Campos a alterar"
// @Success      200  {object}  RoleResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Failure      409  {object}  rest_err.RestErr
// @Router       /api/roles/{uuid} [patch]
func (ctrl *controllerImpl) Update(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req UpdateRoleRequestDto
	if restErr := validation.BindJSON(c, updateRules, &req, middleware.TraceID(c)); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	before, after, err := ctrl.service.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		ctrl.audit(c, "update", "role.Update", id.String(), false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.audit(c, "update", "role.Update", id.String(), true, req, &before, &after)
	c.JSON(http.StatusOK, ToResponse(after))
}

// @Summary      Substitui as permissões de um Papel
// @Description  Troca o conjunto completo de permissões. O cache de permissões do papel é invalidado.
// @Tags         Role
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string                        true  "UUID do papel"
// @Param        request  body  ReplacePermissionsRequestDto  true  "Permissões"
// @Success      200  {object}  RoleResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/roles/{uuid}/permissions [put]
func (ctrl *controllerImpl) ReplacePermissions(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req ReplacePermissionsRequestDto
	if restErr := validation.BindJSON(c, grantRules, &req, middleware.TraceID(c)); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	before, after, err := ctrl.service.ReplacePermissions(c.Request.Context(), id, parseUUIDs(req.PermissionUUIDs))
	if err != nil {
		ctrl.audit(c, "update", "role.ReplacePermissions", id.String(), false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.audit(c, "update", "role.ReplacePermissions", id.String(), true, req, &before, &after)
	c.JSON(http.StatusOK, ToResponse(after))
}

// @Summary      Remove um Papel
// @Tags         Role
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do papel"
// @Success      204
// @Failure      404  {object}  rest_err.RestErr
// @Failure      409  {object}  rest_err.RestErr  "Papel atribuído a usuários ou papel de sistema"
// @Router       /api/roles/{uuid} [delete]
func (ctrl *controllerImpl) Delete(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}

	before, err := ctrl.service.Delete(c.Request.Context(), id)
	if err != nil {
		ctrl.audit(c, "delete", "role.Delete", id.String(), false, nil, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.audit(c, "delete", "role.Delete", id.String(), true, nil, &before, nil)
	c.Status(http.StatusNoContent)
}

func (ctrl *controllerImpl) audit(c *gin.Context, action, function, entityID string, success bool, input interface{}, before, after *model.Role) {
	entry := middleware.AuditEntry(c, module, action, function)
	entry.EntityType = "role"
	entry.EntityID = entityID
	entry.Success = success
	entry.InputData = auditoria_log.SerializeData(input)
	if after != nil {
		entry.OutputData = auditoria_log.SerializeData(ToResponse(*after))
	}
	auditoria_log.Record(c.Request.Context(), entry, auditView(before), auditView(after))
}

func (ctrl *controllerImpl) fail(c *gin.Context, err error) {
	trace := middleware.TraceID(c)
	var restErr *rest_err.RestErr
	switch {
	case errors.Is(err, ErrNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Papel não encontrado.")
	case errors.Is(err, ErrPermissionNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Uma ou mais permissões não existem.")
	case errors.Is(err, ErrNameDuplicated):
		restErr = rest_err.NewConflictValidationError(trace, "Já existe um papel com este nome.", nil)
	case errors.Is(err, ErrHasUsers):
		restErr = rest_err.NewConflictValidationError(trace, "O papel está atribuído a usuários.", nil)
	case errors.Is(err, ErrSystemRole):
		restErr = rest_err.NewConflictValidationError(trace, "Papéis de sistema não podem ser renomeados ou removidos.", nil)
	case errors.Is(err, ErrInvalidInput):
		restErr = rest_err.NewBadRequestError(trace, "Dados de entrada inválidos.")
	default:
		slog.Error("erro inesperado no módulo de papéis", slog.String("component", "ROLE"), slog.Any("error", err))
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

// parseUUIDs assume valores já validados pela regra dive,uuid.
func parseUUIDs(values []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		out = append(out, uuid.MustParse(v))
	}
	return out
}
