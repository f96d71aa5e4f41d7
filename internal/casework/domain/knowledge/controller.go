package knowledge

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/pkg/log/auditoria_log"
	"case-management-system/internal/pkg/pagination"
	"case-management-system/internal/pkg/rest_err"
	"case-management-system/internal/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	module = "knowledge"

	// folga para os cabeçalhos do multipart além do limite do arquivo
	multipartOverhead = 1 << 20
)

type Controller interface {
	Routes(routes gin.IRouter)
	Create(c *gin.Context)
	Read(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Publish(c *gin.Context)
	Delete(c *gin.Context)
	Upload(c *gin.Context)
	Download(c *gin.Context)
	DeleteAttachment(c *gin.Context)
}

type controllerImpl struct {
	service  Service
	mw       middleware.Middleware
	maxBytes int64
}

func NewController(service Service, mw middleware.Middleware, maxBytes int64) Controller {
	return &controllerImpl{
		service:  service,
		mw:       mw,
		maxBytes: maxBytes,
	}
}

func (ctrl *controllerImpl) Routes(routes gin.IRouter) {
	mw := ctrl.mw
	group := routes.Group("/knowledge", mw.SetContextAutorization())
	{
		group.POST("", mw.RequirePermission(module, "create"), ctrl.Create)
		group.GET("", mw.RequirePermission(module, "read"), ctrl.List)
		group.GET("/:uuid", mw.RequirePermission(module, "read"), ctrl.Read)
		group.PATCH("/:uuid", mw.RequirePermission(module, "update"), ctrl.Update)
		group.PATCH("/:uuid/publish", mw.RequirePermission(module, "update"), ctrl.Publish)
		group.DELETE("/:uuid", mw.RequirePermission(module, "delete"), ctrl.Delete)
		group.POST("/:uuid/attachments", mw.RequirePermission(module, "update"), ctrl.Upload)
		group.GET("/:uuid/attachments/:attachment_uuid", mw.RequirePermission(module, "read"), ctrl.Download)
		group.DELETE("/:uuid/attachments/:attachment_uuid", mw.RequirePermission(module, "update"), ctrl.DeleteAttachment)
	}
}

func (ctrl *controllerImpl) logAudit(c *gin.Context, action, function, entityID string, success bool, input interface{}, before, after *model.KnowledgeDocument) {
	entry := middleware.AuditEntry(c, module, action, function)
	entry.EntityType = "knowledge_document"
	entry.EntityID = entityID
	entry.Success = success
	entry.InputData = auditoria_log.SerializeData(input)
	if after != nil {
		entry.OutputData = auditoria_log.SerializeData(ToResponse(*after))
	}
	auditoria_log.Record(c.Request.Context(), entry, toAudit(before), toAudit(after))
}

func (ctrl *controllerImpl) logAttachment(c *gin.Context, action, function string, docID uuid.UUID, success bool, before, after *model.KnowledgeAttachment) {
	entry := middleware.AuditEntry(c, module, action, function)
	entry.EntityType = "knowledge_attachment"
	entry.EntityID = docID.String()
	entry.Success = success

	var b, a interface{}
	if before != nil {
		b = toAttachment(*before)
	}
	if after != nil {
		a = toAttachment(*after)
		entry.OutputData = auditoria_log.SerializeData(a)
	}
	auditoria_log.Record(c.Request.Context(), entry, b, a)
}

// @Summary      Cria um Documento de conhecimento
// @Tags         Knowledge
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateDocumentRequestDto true "Dados do documento"
// @Success      201  {object}  DocumentResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr  "Caso vinculado não encontrado"
// @Router       /api/knowledge [post]
func (ctrl *controllerImpl) Create(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req CreateDocumentRequestDto
	if restErr := validation.BindJSON(c, createRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	owner, team := middleware.Actor(c)
	d := model.KnowledgeDocument{
		Title:        req.Title,
		Content:      req.Content,
		Summary:      req.Summary,
		DocumentType: model.DocumentType(req.DocumentType),
		Tags:         req.Tags,
		Published:    req.Published,
		OwnerUUID:    owner,
		TeamUUID:     team,
	}
	if req.CaseUUID != "" {
		caseUUID := uuid.MustParse(req.CaseUUID)
		d.CaseUUID = &caseUUID
	}

	created, err := ctrl.service.Create(c.Request.Context(), d)
	if err != nil {
		ctrl.logAudit(c, "create", "knowledge.Create", "", false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "create", "knowledge.Create", created.UUID.String(), true, req, nil, &created)
	c.JSON(http.StatusCreated, ToResponse(created))
}

// @Summary      Busca um Documento
// @Description  Cada leitura incrementa view_count.
// @Tags         Knowledge
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do documento"
// @Success      200  {object}  DocumentResponseDto
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/knowledge/{uuid} [get]
func (ctrl *controllerImpl) Read(c *gin.Context) {
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}
	found, err := ctrl.service.View(c.Request.Context(), id, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(found))
}

// @Summary      Pesquisa Documentos
// @Tags         Knowledge
// @Produce      json
// @Security     BearerAuth
// @Param        page           query  int     false  "Página"
// @Param        size           query  int     false  "Itens por página (máximo 100)"
// @Param        search         query  string  false  "Texto no título, resumo ou conteúdo"
// @Param        tag            query  string  false  "Tag"
// @Param        document_type  query  string  false  "guia, procedimiento, faq ou solucion"
// @Param        published      query  bool    false  "Publicados"
// @Param        case_uuid      query  string  false  "Caso vinculado"
// @Success      200  {object}  pagination.Response[DocumentResponseDto]
// @Failure      400  {object}  rest_err.RestErr
// @Router       /api/knowledge [get]
func (ctrl *controllerImpl) List(c *gin.Context) {
	trace := middleware.TraceID(c)

	var req ListDocumentRequestDto
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

	filter := ListFilter{
		Search:       req.Search,
		Tag:          req.Tag,
		DocumentType: model.DocumentType(req.DocumentType),
		Published:    req.Published,
		Page:         page,
	}
	if req.CaseUUID != "" {
		caseUUID := uuid.MustParse(req.CaseUUID)
		filter.CaseUUID = &caseUUID
	}

	found, total, err := ctrl.service.List(c.Request.Context(), filter, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}

	items := make([]DocumentResponseDto, 0, len(found))
	for _, item := range found {
		items = append(items, ToResponse(item))
	}
	c.JSON(http.StatusOK, pagination.NewResponse(items, page, total))
}

// @Summary      Atualiza um Documento
// @Description  Alterar título ou conteúdo incrementa a versão.
// @Tags         Knowledge
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string                    true  "UUID do documento"
// @Param        request  body  UpdateDocumentRequestDto  true  "Campos a alterar"
// @Success      200  {object}  DocumentResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/knowledge/{uuid} [patch]
func (ctrl *controllerImpl) Update(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	var req UpdateDocumentRequestDto
	if restErr := validation.BindJSON(c, updateRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}

	patch := Patch{Title: req.Title, Content: req.Content, Summary: req.Summary, Tags: req.Tags}
	if req.DocumentType != nil {
		t := model.DocumentType(*req.DocumentType)
		patch.DocumentType = &t
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
		ctrl.logAudit(c, "update", "knowledge.Update", id.String(), false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "update", "knowledge.Update", id.String(), true, req, &before, &after)
	c.JSON(http.StatusOK, ToResponse(after))
}

// @Summary      Publica ou despublica um Documento
// @Tags         Knowledge
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        uuid     path  string             true  "UUID do documento"
// @Param        request  body  PublishRequestDto  true  "Situação"
// @Success      200  {object}  DocumentResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/knowledge/{uuid}/publish [patch]
func (ctrl *controllerImpl) Publish(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	var req PublishRequestDto
	if restErr := validation.BindJSON(c, publishRules, &req, trace); restErr != nil {
		c.JSON(restErr.Code, restErr)
		return
	}
	if req.Published == nil {
		ctrl.fail(c, ErrInvalidInput)
		return
	}

	before, after, err := ctrl.service.SetPublished(c.Request.Context(), id, *req.Published, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAudit(c, "update", "knowledge.Publish", id.String(), false, req, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "update", "knowledge.Publish", id.String(), true, req, &before, &after)
	c.JSON(http.StatusOK, ToResponse(after))
}

// @Summary      Remove um Documento
// @Description  Remove também os anexos do disco.
// @Tags         Knowledge
// @Security     BearerAuth
// @Param        uuid  path  string  true  "UUID do documento"
// @Success      204
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/knowledge/{uuid} [delete]
func (ctrl *controllerImpl) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	before, err := ctrl.service.Delete(c.Request.Context(), id, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAudit(c, "delete", "knowledge.Delete", id.String(), false, nil, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAudit(c, "delete", "knowledge.Delete", id.String(), true, nil, &before, nil)
	c.Status(http.StatusNoContent)
}

// @Summary      Envia um anexo
// @Tags         Knowledge
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        uuid  path      string  true  "UUID do documento"
// @Param        file  formData  file    true  "Arquivo"
// @Success      201  {object}  AttachmentResponseDto
// @Failure      400  {object}  rest_err.RestErr
// @Failure      404  {object}  rest_err.RestErr
// @Failure      413  {object}  rest_err.RestErr
// @Router       /api/knowledge/{uuid}/attachments [post]
func (ctrl *controllerImpl) Upload(c *gin.Context) {
	trace := middleware.TraceID(c)
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}

	if ctrl.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ctrl.maxBytes+multipartOverhead)
	}
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctrl.fail(c, ErrFileTooLarge)
			return
		}
		restErr := rest_err.NewBadRequestValidationError(trace, "Dados de entrada inválidos.",
			[]rest_err.Causes{rest_err.NewCause("file", "campo obrigatório")})
		c.JSON(restErr.Code, restErr)
		return
	}
	if ctrl.maxBytes > 0 && header.Size > ctrl.maxBytes {
		ctrl.fail(c, ErrFileTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	defer file.Close()

	actor, _ := middleware.Actor(c)
	created, err := ctrl.service.AddAttachment(c.Request.Context(), id, Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
		UploadedBy:  actor,
	}, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAttachment(c, "update", "knowledge.Upload", id, false, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAttachment(c, "update", "knowledge.Upload", id, true, nil, &created)
	c.JSON(http.StatusCreated, toAttachment(created))
}

// @Summary      Baixa um anexo
// @Tags         Knowledge
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        uuid             path  string  true  "UUID do documento"
// @Param        attachment_uuid  path  string  true  "UUID do anexo"
// @Success      200  {file}    binary
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/knowledge/{uuid}/attachments/{attachment_uuid} [get]
func (ctrl *controllerImpl) Download(c *gin.Context) {
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}
	attachmentUUID, ok := pathUUID(c, "attachment_uuid")
	if !ok {
		return
	}

	a, file, err := ctrl.service.OpenAttachment(c.Request.Context(), id, attachmentUUID, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	defer file.Close()

	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, a.SizeBytes, contentType, file, map[string]string{
		"Content-Disposition": "attachment; filename=" + strconv.Quote(a.FileName),
	})
}

// @Summary      Remove um anexo
// @Tags         Knowledge
// @Security     BearerAuth
// @Param        uuid             path  string  true  "UUID do documento"
// @Param        attachment_uuid  path  string  true  "UUID do anexo"
// @Success      204
// @Failure      404  {object}  rest_err.RestErr
// @Router       /api/knowledge/{uuid}/attachments/{attachment_uuid} [delete]
func (ctrl *controllerImpl) DeleteAttachment(c *gin.Context) {
	id, ok := pathUUID(c, "uuid")
	if !ok {
		return
	}
	attachmentUUID, ok := pathUUID(c, "attachment_uuid")
	if !ok {
		return
	}

	removed, err := ctrl.service.DeleteAttachment(c.Request.Context(), id, attachmentUUID, middleware.ScopeFilter(c))
	if err != nil {
		ctrl.logAttachment(c, "update", "knowledge.DeleteAttachment", id, false, nil, nil)
		ctrl.fail(c, err)
		return
	}

	ctrl.logAttachment(c, "update", "knowledge.DeleteAttachment", id, true, &removed, nil)
	c.Status(http.StatusNoContent)
}

func (ctrl *controllerImpl) fail(c *gin.Context, err error) {
	trace := middleware.TraceID(c)
	var restErr *rest_err.RestErr
	switch {
	case errors.Is(err, ErrNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Documento não encontrado.")
	case errors.Is(err, ErrAttachmentNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Anexo não encontrado.")
	case errors.Is(err, ErrCaseNotFound):
		restErr = rest_err.NewNotFoundError(trace, "Caso vinculado não encontrado.")
	case errors.Is(err, ErrFileTooLarge):
		restErr = rest_err.NewPayloadTooLargeError(trace, "O arquivo excede o tamanho máximo permitido.")
	case errors.Is(err, ErrInvalidInput):
		restErr = rest_err.NewBadRequestError(trace, "Dados de entrada inválidos.")
	default:
		slog.Error("erro inesperado no módulo de conhecimento", slog.String("component", "KNOWLEDGE"), slog.Any("error", err))
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
